package evaluation

import (
	"context"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rxtech-lab/argo-features/internal/pipeline"
	"github.com/rxtech-lab/argo-features/internal/predictor/baseline"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/mocks"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"go.uber.org/mock/gomock"
)

func (suite *EvaluatorTestSuite) TestSignalsBaseline() {
	results := []pipeline.Result{
		{Resolution: 1, Bars: risingBars(20)},
		{Resolution: 5, Bars: risingBars(4)},
		{Resolution: 10, Bars: risingBars(20)},
	}

	signals, err := suite.evaluator().Signals(context.Background(), results, baseline.NewTrainer())
	suite.Require().NoError(err)
	suite.Require().Len(signals, 1)

	last := results[0].Bars[19]
	signal := signals[0]
	suite.Equal(1, signal.Resolution)
	suite.Equal(types.SignalTypeUp, signal.Type)
	suite.Equal(last.Time, signal.Time)
	suite.Equal(last.Close, signal.Close)
	suite.Equal(last.Close+1, signal.PredictedClose)
	suite.Equal(1.0, signal.Confidence)
	suite.Contains(signal.Reason, "up")

	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.SignalsTotal.WithLabelValues("up")))
}

func (suite *EvaluatorTestSuite) TestSignalsTrainOnAllButLast() {
	ctrl := gomock.NewController(suite.T())
	defer ctrl.Finish()

	bars := risingBars(12)
	last := bars[11]

	price := mocks.NewMockPriceForecaster(ctrl)
	price.EXPECT().Predict(last).Return(types.PriceForecast{PredictedCloseNext: last.Close - 1}, nil)

	direction := mocks.NewMockDirectionClassifier(ctrl)
	direction.EXPECT().Predict(last).Return(types.DirectionForecast{Outcome: types.OutcomeDown, Confidence: 0.8}, nil)

	trainer := mocks.NewMockTrainer(ctrl)
	trainer.EXPECT().TrainPriceForecaster(gomock.Any(), bars[:11]).Return(price, nil)
	trainer.EXPECT().TrainDirectionClassifier(gomock.Any(), bars[:11]).Return(direction, nil)

	signals, err := suite.evaluator().Signals(context.Background(), []pipeline.Result{{Resolution: 5, Bars: bars}}, trainer)
	suite.Require().NoError(err)
	suite.Require().Len(signals, 1)
	suite.Equal(types.SignalTypeDown, signals[0].Type)
	suite.Equal(0.8, signals[0].Confidence)
}

func (suite *EvaluatorTestSuite) TestSignalsSuppressed() {
	testCases := []struct {
		name      string
		delta     float64
		direction types.Outcome
	}{
		{name: "disagreement", delta: 1, direction: types.OutcomeDown},
		{name: "move too small", delta: 0.001, direction: types.OutcomeUp},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			trainer := &stubTrainer{price: shiftPrice(tc.delta), direction: fixedDirection(tc.direction, 0.9)}

			signals, err := suite.evaluator().Signals(context.Background(), []pipeline.Result{{Resolution: 1, Bars: risingBars(15)}}, trainer)
			suite.Require().NoError(err)
			suite.NotNil(signals)
			suite.Empty(signals)
		})
	}
}

func (suite *EvaluatorTestSuite) TestSignalsTrainingFailure() {
	bars := risingBars(15)
	trainer := &stubTrainer{failAt: map[float64]bool{bars[0].Close: true}}

	_, err := suite.evaluator().Signals(context.Background(), []pipeline.Result{{Resolution: 15, Bars: bars}}, trainer)
	suite.True(errors.HasCode(err, errors.ErrCodeTrainingFailed))
}

func (suite *EvaluatorTestSuite) TestSignalsCanceled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suite.evaluator().Signals(ctx, []pipeline.Result{{Resolution: 1, Bars: risingBars(15)}}, baseline.NewTrainer())
	suite.True(errors.HasCode(err, errors.ErrCodeEvaluationCanceled))
}

func (suite *EvaluatorTestSuite) TestSignalsMinBarsBelowTwo() {
	for _, minBars := range []int{0, -3, 1} {
		suite.cfg.Signal.MinBars = minBars
		results := []pipeline.Result{
			{Resolution: 1, Bars: []types.Bar{}},
			{Resolution: 5, Bars: risingBars(1)},
		}

		signals, err := suite.evaluator().Signals(context.Background(), results, baseline.NewTrainer())
		suite.Require().NoError(err, "min bars %d", minBars)
		suite.NotNil(signals)
		suite.Empty(signals)
	}
}
