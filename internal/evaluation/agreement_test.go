package evaluation

import (
	"context"
	"math"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

func (suite *EvaluatorTestSuite) TestAgreementOracle() {
	report, err := suite.evaluator().Agreement(context.Background(), risingBars(10), oraclePrice(), oracleDirection())
	suite.Require().NoError(err)

	suite.Equal(10, report.Total)
	suite.Equal(100.0, report.PriceAccuracy)
	suite.Equal(100.0, report.DirectionAccuracy)
	suite.Equal(100.0, report.AgreementRate)
	suite.Equal(100.0, report.ConcordantAccuracy)
	suite.Equal(10, report.HighConfidence)
	suite.Equal(100.0, report.HighConfidenceAccuracy)

	suite.Equal(10.0, testutil.ToFloat64(suite.metrics.PredictionsTotal.WithLabelValues("price", "ok")))
	suite.Equal(10.0, testutil.ToFloat64(suite.metrics.PredictionsTotal.WithLabelValues("direction", "ok")))
}

func (suite *EvaluatorTestSuite) TestAgreementHandComputed() {
	bars := []types.Bar{
		{Close: 100, CloseNext: 101, Outcome: types.OutcomeUp},
		{Close: 101, CloseNext: 100, Outcome: types.OutcomeDown},
		{Close: 100, CloseNext: 100, Outcome: types.OutcomeDown},
		{Close: 100, CloseNext: 102, Outcome: types.OutcomeUp},
	}
	calls := []types.DirectionForecast{
		{Outcome: types.OutcomeUp, Confidence: 0.7},
		{Outcome: types.OutcomeUp, Confidence: 0.5},
		{Outcome: types.OutcomeDown, Confidence: 0.9},
		{Outcome: types.OutcomeUp, Confidence: 0.6},
	}
	byClose := 0
	direction := directionFunc(func(types.Bar) (types.DirectionForecast, error) {
		f := calls[byClose]
		byClose++

		return f, nil
	})

	report, err := suite.evaluator().Agreement(context.Background(), bars, shiftPrice(1), direction)
	suite.Require().NoError(err)

	suite.Equal(4, report.Total)
	suite.Equal(2, report.PriceCorrect)
	suite.Equal(50.0, report.PriceAccuracy)
	suite.Equal(3, report.DirectionCorrect)
	suite.Equal(75.0, report.DirectionAccuracy)
	suite.Equal(3, report.Agreeing)
	suite.Equal(75.0, report.AgreementRate)
	suite.Equal(2, report.Concordant)
	suite.InDelta(200.0/3, report.ConcordantAccuracy, 1e-9)
	suite.Equal(2, report.HighConfidence)
	suite.Equal(50.0, report.HighConfidenceRate)
	suite.Equal(2, report.HighConfidenceCorrect)
	suite.Equal(100.0, report.HighConfidenceAccuracy)
}

func (suite *EvaluatorTestSuite) TestAgreementNothingAgrees() {
	report, err := suite.evaluator().Agreement(context.Background(), risingBars(8), shiftPrice(1), fixedDirection(types.OutcomeDown, 1))
	suite.Require().NoError(err)

	suite.Zero(report.Agreeing)
	suite.Equal(0.0, report.ConcordantAccuracy)
	suite.False(math.IsNaN(report.ConcordantAccuracy))
	suite.Equal(0.0, report.HighConfidenceAccuracy)
	suite.Equal(100.0, report.PriceAccuracy)
	suite.Equal(0.0, report.DirectionAccuracy)
}

func (suite *EvaluatorTestSuite) TestAgreementSmallMoveIsNotHighConfidence() {
	report, err := suite.evaluator().Agreement(context.Background(), risingBars(5), shiftPrice(0.01), fixedDirection(types.OutcomeUp, 0.99))
	suite.Require().NoError(err)

	suite.Equal(5, report.Agreeing)
	suite.Zero(report.HighConfidence)
}

func (suite *EvaluatorTestSuite) TestAgreementSkipsUnlabeled() {
	bars := risingBars(3)
	bars = append(bars, types.Bar{Close: 200})

	report, err := suite.evaluator().Agreement(context.Background(), bars, oraclePrice(), oracleDirection())
	suite.Require().NoError(err)
	suite.Equal(3, report.Total)
}

func (suite *EvaluatorTestSuite) TestAgreementEmpty() {
	report, err := suite.evaluator().Agreement(context.Background(), nil, oraclePrice(), oracleDirection())
	suite.Require().NoError(err)
	suite.Equal(types.AgreementReport{}, report)

	suite.cfg.Strict = true
	_, err = suite.evaluator().Agreement(context.Background(), nil, oraclePrice(), oracleDirection())
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *EvaluatorTestSuite) TestAgreementPredictorFailures() {
	testCases := []struct {
		name      string
		price     priceFunc
		direction directionFunc
	}{
		{
			name:      "price error",
			price:     func(types.Bar) (types.PriceForecast, error) { return types.PriceForecast{}, errTrain },
			direction: directionFunc(oracleDirection().Predict),
		},
		{
			name: "non-finite price",
			price: func(types.Bar) (types.PriceForecast, error) {
				return types.PriceForecast{PredictedCloseNext: math.NaN()}, nil
			},
			direction: directionFunc(oracleDirection().Predict),
		},
		{
			name:  "confidence out of range",
			price: priceFunc(oraclePrice().Predict),
			direction: func(types.Bar) (types.DirectionForecast, error) {
				return types.DirectionForecast{Outcome: types.OutcomeUp, Confidence: 1.5}, nil
			},
		},
		{
			name:  "unknown outcome",
			price: priceFunc(oraclePrice().Predict),
			direction: func(types.Bar) (types.DirectionForecast, error) {
				return types.DirectionForecast{Confidence: 0.5}, nil
			},
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			report, err := suite.evaluator().Agreement(context.Background(), risingBars(4), tc.price, tc.direction)
			suite.Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodePredictionFailed))
			suite.Equal(types.AgreementReport{}, report)
		})
	}
}

func (suite *EvaluatorTestSuite) TestAgreementCanceled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suite.evaluator().Agreement(ctx, risingBars(4), oraclePrice(), oracleDirection())
	suite.True(errors.HasCode(err, errors.ErrCodeEvaluationCanceled))
}
