package evaluation

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rxtech-lab/argo-features/internal/aggregator"
	"github.com/rxtech-lab/argo-features/internal/predictor/baseline"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/mocks"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"go.uber.org/mock/gomock"
)

func (suite *EvaluatorTestSuite) TestFoldCount() {
	testCases := []struct {
		n, window, test, expected int
	}{
		{n: 100, window: 50, test: 10, expected: 5},
		{n: 60, window: 50, test: 10, expected: 1},
		{n: 59, window: 50, test: 10, expected: 0},
		{n: 125, window: 50, test: 25, expected: 3},
		{n: 0, window: 1, test: 1, expected: 0},
		{n: 10, window: 0, test: 1, expected: 0},
	}

	for _, tc := range testCases {
		suite.Run(fmt.Sprintf("n=%d w=%d t=%d", tc.n, tc.window, tc.test), func() {
			suite.Equal(tc.expected, FoldCount(tc.n, tc.window, tc.test))
		})
	}
}

func (suite *EvaluatorTestSuite) TestWalkForwardPerfectDrift() {
	bars := risingBars(120)

	report, err := suite.evaluator().WalkForward(context.Background(), bars, 50, 10, baseline.NewTrainer(), Callbacks{})
	suite.Require().NoError(err)

	suite.Equal(50, report.WindowSize)
	suite.Equal(10, report.TestSize)
	suite.Require().Len(report.Folds, 7)
	suite.Equal(7, report.Completed)
	suite.Zero(report.Skipped)

	for i, fold := range report.Folds {
		suite.Equal(i, fold.Index)
		suite.Equal(i*10, fold.TrainStart)
		suite.Equal(i*10+50, fold.TrainEnd)
		suite.Equal(fold.TrainEnd, fold.TestStart)
		suite.Equal(fold.TestStart+10, fold.TestEnd)
		suite.LessOrEqual(fold.TestEnd, len(bars))
		suite.Equal(types.FoldStatusCompleted, fold.Status)
		suite.Equal(0.0, fold.RMSE)
		suite.Equal(1.0, fold.RSquared)
	}

	suite.Equal(0.0, report.MeanRMSE.Unwrap())
	suite.Equal(1.0, report.MeanRSquared.Unwrap())
	suite.Equal(7.0, testutil.ToFloat64(suite.metrics.FoldsTotal.WithLabelValues("completed")))
}

func (suite *EvaluatorTestSuite) TestWalkForwardSkipsFailedFold() {
	bars := risingBars(120)
	trainer := &stubTrainer{
		price:  shiftPrice(1),
		failAt: map[float64]bool{bars[20].Close: true},
	}

	report, err := suite.evaluator().WalkForward(context.Background(), bars, 50, 10, trainer, Callbacks{})
	suite.Require().NoError(err)

	suite.Equal(7, trainer.calls)
	suite.Equal(6, report.Completed)
	suite.Equal(1, report.Skipped)
	suite.Equal(types.FoldStatusSkipped, report.Folds[2].Status)
	suite.Contains(report.Folds[2].Err, "training diverged")
	suite.True(report.MeanRMSE.IsSome())
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.FoldsTotal.WithLabelValues("skipped")))
}

func (suite *EvaluatorTestSuite) TestWalkForwardAllFoldsSkipped() {
	ctrl := gomock.NewController(suite.T())
	defer ctrl.Finish()

	trainer := mocks.NewMockTrainer(ctrl)
	trainer.EXPECT().TrainPriceForecaster(gomock.Any(), gomock.Any()).Return(nil, errTrain).Times(3)

	report, err := suite.evaluator().WalkForward(context.Background(), risingBars(80), 50, 10, trainer, Callbacks{})
	suite.Require().NoError(err)

	suite.Equal(3, report.Skipped)
	suite.Zero(report.Completed)
	suite.True(report.MeanRMSE.IsNone())
	suite.True(report.MeanRSquared.IsNone())
}

func (suite *EvaluatorTestSuite) TestWalkForwardPredictionFailureSkipsFold() {
	ctrl := gomock.NewController(suite.T())
	defer ctrl.Finish()

	forecaster := mocks.NewMockPriceForecaster(ctrl)
	forecaster.EXPECT().Predict(gomock.Any()).Return(types.PriceForecast{}, errTrain).Times(1)

	trainer := mocks.NewMockTrainer(ctrl)
	trainer.EXPECT().TrainPriceForecaster(gomock.Any(), gomock.Any()).Return(forecaster, nil).Times(1)

	report, err := suite.evaluator().WalkForward(context.Background(), risingBars(60), 50, 10, trainer, Callbacks{})
	suite.Require().NoError(err)
	suite.Require().Len(report.Folds, 1)
	suite.Equal(types.FoldStatusSkipped, report.Folds[0].Status)
}

func (suite *EvaluatorTestSuite) TestWalkForwardNoFolds() {
	report, err := suite.evaluator().WalkForward(context.Background(), risingBars(59), 50, 10, baseline.NewTrainer(), Callbacks{})
	suite.Require().NoError(err)
	suite.NotNil(report.Folds)
	suite.Empty(report.Folds)
	suite.True(report.MeanRMSE.IsNone())

	suite.cfg.Strict = true
	_, err = suite.evaluator().WalkForward(context.Background(), risingBars(59), 50, 10, baseline.NewTrainer(), Callbacks{})
	suite.True(errors.IsInsufficientDataError(err))

	var insufficient *errors.InsufficientDataError
	suite.Require().True(errors.As(err, &insufficient))
	suite.Equal(60, insufficient.Required)
	suite.Equal(59, insufficient.Actual)
}

func (suite *EvaluatorTestSuite) TestWalkForwardInvalidSizes() {
	_, err := suite.evaluator().WalkForward(context.Background(), risingBars(10), 0, 5, baseline.NewTrainer(), Callbacks{})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

	_, err = suite.evaluator().WalkForward(context.Background(), risingBars(10), 5, -1, baseline.NewTrainer(), Callbacks{})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *EvaluatorTestSuite) TestWalkForwardCallbacks() {
	var started, ended atomic.Int32

	onStart := OnFoldStartCallback(func(index int, total int) error {
		suite.Equal(7, total)
		started.Add(1)

		return nil
	})
	onEnd := OnFoldEndCallback(func(result types.FoldResult) {
		ended.Add(1)
	})

	_, err := suite.evaluator().WalkForward(context.Background(), risingBars(120), 50, 10, baseline.NewTrainer(),
		Callbacks{OnFoldStart: &onStart, OnFoldEnd: &onEnd})
	suite.Require().NoError(err)
	suite.Equal(int32(7), started.Load())
	suite.Equal(int32(7), ended.Load())
}

func (suite *EvaluatorTestSuite) TestWalkForwardCallbackAborts() {
	onStart := OnFoldStartCallback(func(index int, total int) error {
		return errTrain
	})

	_, err := suite.evaluator().WalkForward(context.Background(), risingBars(120), 50, 10, baseline.NewTrainer(),
		Callbacks{OnFoldStart: &onStart})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeCallbackFailed))
}

func (suite *EvaluatorTestSuite) TestWalkForwardCanceled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suite.evaluator().WalkForward(ctx, risingBars(120), 50, 10, baseline.NewTrainer(), Callbacks{})
	suite.True(errors.HasCode(err, errors.ErrCodeEvaluationCanceled))
}

func (suite *EvaluatorTestSuite) TestWalkForwardParallelismDoesNotChangeResult() {
	gen := mocks.NewDataGenerator(11)
	cfg := mocks.DefaultConfig()
	cfg.Count = 401
	bars := aggregator.Label(gen.Generate(cfg))

	suite.cfg.Evaluation.ParallelFolds = 1
	sequential, err := suite.evaluator().WalkForward(context.Background(), bars, 100, 30, baseline.NewTrainer(), Callbacks{})
	suite.Require().NoError(err)

	suite.cfg.Evaluation.ParallelFolds = 8
	parallel, err := suite.evaluator().WalkForward(context.Background(), bars, 100, 30, baseline.NewTrainer(), Callbacks{})
	suite.Require().NoError(err)

	suite.Equal(FoldCount(len(bars), 100, 30), len(parallel.Folds))
	suite.Equal(sequential, parallel)
}

func (suite *EvaluatorTestSuite) TestErrorMetrics() {
	suite.Equal(0.0, RMSE(nil, nil))
	suite.Equal(0.0, RSquared(nil, nil))
	suite.Equal(1.0, RMSE([]float64{1, 3}, []float64{2, 2}))
	suite.Equal(0.0, RSquared([]float64{1, 2}, []float64{3, 3}))
	suite.Equal(1.0, RSquared([]float64{1, 2, 3}, []float64{1, 2, 3}))
}
