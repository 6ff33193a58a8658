package mocks

//go:generate mockgen -destination=./mock_indicator.go -package=mocks github.com/rxtech-lab/argo-features/internal/indicator Indicator
//go:generate mockgen -destination=./mock_predictor.go -package=mocks github.com/rxtech-lab/argo-features/internal/predictor PriceForecaster,DirectionClassifier,Trainer
//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/argo-features/internal/datasource DataSource
