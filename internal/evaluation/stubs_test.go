package evaluation

import (
	"context"
	"sync"

	"github.com/rxtech-lab/argo-features/internal/aggregator"
	"github.com/rxtech-lab/argo-features/internal/predictor"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/mocks"
)

type priceFunc func(bar types.Bar) (types.PriceForecast, error)

func (f priceFunc) Predict(bar types.Bar) (types.PriceForecast, error) {
	return f(bar)
}

type directionFunc func(bar types.Bar) (types.DirectionForecast, error)

func (f directionFunc) Predict(bar types.Bar) (types.DirectionForecast, error) {
	return f(bar)
}

func shiftPrice(delta float64) predictor.PriceForecaster {
	return priceFunc(func(bar types.Bar) (types.PriceForecast, error) {
		return types.PriceForecast{PredictedCloseNext: bar.Close + delta}, nil
	})
}

func fixedDirection(outcome types.Outcome, confidence float64) predictor.DirectionClassifier {
	return directionFunc(func(types.Bar) (types.DirectionForecast, error) {
		return types.DirectionForecast{Outcome: outcome, Confidence: confidence}, nil
	})
}

func oraclePrice() predictor.PriceForecaster {
	return priceFunc(func(bar types.Bar) (types.PriceForecast, error) {
		return types.PriceForecast{PredictedCloseNext: bar.CloseNext}, nil
	})
}

func oracleDirection() predictor.DirectionClassifier {
	return directionFunc(func(bar types.Bar) (types.DirectionForecast, error) {
		return types.DirectionForecast{Outcome: bar.Outcome, Confidence: 1}, nil
	})
}

// stubTrainer hands out fixed predictors and fails for training windows that
// start at one of failAt closes.
type stubTrainer struct {
	price     predictor.PriceForecaster
	direction predictor.DirectionClassifier
	failAt    map[float64]bool

	mu    sync.Mutex
	calls int
}

func (s *stubTrainer) TrainPriceForecaster(_ context.Context, bars []types.Bar) (predictor.PriceForecaster, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if len(bars) > 0 && s.failAt[bars[0].Close] {
		return nil, errTrain
	}

	return s.price, nil
}

func (s *stubTrainer) TrainDirectionClassifier(_ context.Context, bars []types.Bar) (predictor.DirectionClassifier, error) {
	if len(bars) > 0 && s.failAt[bars[0].Close] {
		return nil, errTrain
	}

	return s.direction, nil
}

var errTrain = stubError("training diverged")

type stubError string

func (e stubError) Error() string { return string(e) }

// risingBars returns n labeled bars whose close rises by 1 each bar.
func risingBars(n int) []types.Bar {
	return aggregator.Label(mocks.Monotonic(n+1, 100, 1))
}
