package evaluation

import (
	"context"
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-features/internal/predictor"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FoldCount returns the number of walk-forward folds over n bars:
// floor((n-windowSize)/testSize) when windowSize+testSize <= n, else 0.
func FoldCount(n, windowSize, testSize int) int {
	if windowSize <= 0 || testSize <= 0 || windowSize+testSize > n {
		return 0
	}

	return (n - windowSize) / testSize
}

// WalkForward trains a fresh price forecaster on [start, start+windowSize)
// and scores it on [start+windowSize, start+windowSize+testSize), advancing
// start by testSize. Folds whose training or prediction fails are skipped and
// excluded from the means.
func (e *Evaluator) WalkForward(ctx context.Context, bars []types.Bar, windowSize, testSize int, trainer predictor.Trainer, callbacks Callbacks) (types.WalkForwardReport, error) {
	if windowSize <= 0 {
		return types.WalkForwardReport{}, errors.Newf(errors.ErrCodeInvalidParameter, "window size must be a positive integer, got %d", windowSize)
	}

	if testSize <= 0 {
		return types.WalkForwardReport{}, errors.Newf(errors.ErrCodeInvalidParameter, "test size must be a positive integer, got %d", testSize)
	}

	total := FoldCount(len(bars), windowSize, testSize)

	report := types.WalkForwardReport{
		WindowSize:   windowSize,
		TestSize:     testSize,
		Folds:        make([]types.FoldResult, total),
		MeanRMSE:     optional.None[float64](),
		MeanRSquared: optional.None[float64](),
	}

	if total == 0 {
		if e.cfg.Strict {
			return types.WalkForwardReport{}, errors.NewInsufficientDataErrorf(windowSize+testSize, len(bars), "walk-forward",
				"walk-forward needs at least %d bars, got %d", windowSize+testSize, len(bars))
		}

		return report, nil
	}

	checked := predictor.CheckTrainer(trainer)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.cfg.Evaluation.ParallelFolds, 1))

	for index := range total {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := canceled(gctx); err != nil {
				return err
			}

			if callbacks.OnFoldStart != nil {
				if err := (*callbacks.OnFoldStart)(index, total); err != nil {
					return errors.Wrapf(errors.ErrCodeCallbackFailed, err, "fold %d start callback failed", index)
				}
			}

			result := e.runFold(gctx, bars, index, windowSize, testSize, checked)
			report.Folds[index] = result

			e.metrics.ObserveFold(string(result.Status))

			if callbacks.OnFoldEnd != nil {
				(*callbacks.OnFoldEnd)(result)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return types.WalkForwardReport{}, err
	}

	if err := canceled(ctx); err != nil {
		return types.WalkForwardReport{}, err
	}

	var sumRMSE, sumR2 float64

	for _, fold := range report.Folds {
		if fold.Status != types.FoldStatusCompleted {
			report.Skipped++

			continue
		}

		report.Completed++
		sumRMSE += fold.RMSE
		sumR2 += fold.RSquared
	}

	if report.Completed > 0 {
		report.MeanRMSE = optional.Some(sumRMSE / float64(report.Completed))
		report.MeanRSquared = optional.Some(sumR2 / float64(report.Completed))
	}

	e.logger.Debug("Walk-forward finished",
		zap.Int("folds", total),
		zap.Int("completed", report.Completed),
		zap.Int("skipped", report.Skipped),
	)

	return report, nil
}

func (e *Evaluator) runFold(ctx context.Context, bars []types.Bar, index, windowSize, testSize int, trainer predictor.Trainer) types.FoldResult {
	start := index * testSize

	result := types.FoldResult{
		Index:      index,
		TrainStart: start,
		TrainEnd:   start + windowSize,
		TestStart:  start + windowSize,
		TestEnd:    start + windowSize + testSize,
	}

	skip := func(err error) types.FoldResult {
		e.logger.Warn("Skipping walk-forward fold", zap.Int("fold", index), zap.Error(err))

		result.Status = types.FoldStatusSkipped
		result.Err = err.Error()

		return result
	}

	forecaster, err := trainer.TrainPriceForecaster(ctx, types.CloneBars(bars[result.TrainStart:result.TrainEnd]))
	if err != nil {
		return skip(err)
	}

	test := bars[result.TestStart:result.TestEnd]
	predicted := make([]float64, len(test))
	actual := make([]float64, len(test))

	for i, bar := range test {
		pf, err := forecaster.Predict(bar)
		e.metrics.ObservePrediction(predictorPrice, err)

		if err != nil {
			return skip(err)
		}

		predicted[i] = pf.PredictedCloseNext
		actual[i] = bar.CloseNext
	}

	result.Status = types.FoldStatusCompleted
	result.RMSE = RMSE(predicted, actual)
	result.RSquared = RSquared(predicted, actual)

	return result
}

// RMSE is the root mean squared error of predicted against actual, 0 for
// empty input.
func RMSE(predicted, actual []float64) float64 {
	if len(actual) == 0 {
		return 0
	}

	var sum float64

	for i := range actual {
		d := predicted[i] - actual[i]
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(actual)))
}

// RSquared is the coefficient of determination of predicted against actual.
// It is 0 when actual has no variance.
func RSquared(predicted, actual []float64) float64 {
	if len(actual) == 0 {
		return 0
	}

	var mean float64
	for _, v := range actual {
		mean += v
	}

	mean /= float64(len(actual))

	var ssRes, ssTot float64

	for i, v := range actual {
		ssRes += (v - predicted[i]) * (v - predicted[i])
		ssTot += (v - mean) * (v - mean)
	}

	if ssTot == 0 {
		return 0
	}

	return 1 - ssRes/ssTot
}
