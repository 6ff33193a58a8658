// Package evaluation scores price forecasters and direction classifiers
// against realized outcomes: agreement, walk-forward validation, a
// directional backtest and a lookback sweep.
package evaluation

import (
	"context"
	"math"
	"time"

	"github.com/rxtech-lab/argo-features/internal/config"
	"github.com/rxtech-lab/argo-features/internal/logger"
	"github.com/rxtech-lab/argo-features/internal/metrics"
	"github.com/rxtech-lab/argo-features/internal/predictor"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	predictorPrice     = "price"
	predictorDirection = "direction"
)

// OnFoldStartCallback is called before a walk-forward fold trains. Folds run
// concurrently, so it may be called from several goroutines. Returning an
// error aborts the run.
type OnFoldStartCallback func(index int, total int) error

// OnFoldEndCallback is called after a fold finished or was skipped.
type OnFoldEndCallback func(result types.FoldResult)

// Callbacks holds the walk-forward lifecycle callbacks.
// All fields are pointers - nil means no callback will be invoked.
type Callbacks struct {
	OnFoldStart *OnFoldStartCallback
	OnFoldEnd   *OnFoldEndCallback
}

// Evaluator scores predictors on the bars of one resolution. Its settings
// come from config.Config; strict mode turns undersized input into errors.
type Evaluator struct {
	cfg     config.Config
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewEvaluator creates an evaluator. metrics may be nil.
func NewEvaluator(cfg config.Config, log *logger.Logger, m *metrics.Metrics) *Evaluator {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Evaluator{cfg: cfg, logger: log, metrics: m}
}

// Evaluate trains both predictors on bars and runs every evaluation pass on
// the same bars. The walk-forward pass trains its own fold models.
func (e *Evaluator) Evaluate(ctx context.Context, resolution int, bars []types.Bar, trainer predictor.Trainer, callbacks Callbacks) (types.ResolutionReport, error) {
	start := time.Now()
	defer func() {
		e.metrics.ObserveStage(metrics.StageEvaluate, time.Since(start))
	}()

	report := types.ResolutionReport{
		Resolution:  resolution,
		Bars:        len(bars),
		BacktestPnL: decimal.Zero,
		Lookbacks:   []types.LookbackResult{},
	}

	wf, err := e.WalkForward(ctx, bars, e.cfg.Evaluation.WindowSize, e.cfg.Evaluation.TestSize, trainer, callbacks)
	if err != nil {
		return types.ResolutionReport{}, err
	}

	report.WalkForward = wf

	if len(bars) == 0 {
		if e.cfg.Strict {
			return types.ResolutionReport{}, errors.NewInsufficientDataErrorf(1, 0, "evaluate", "resolution %d has no bars to evaluate", resolution)
		}

		e.logger.Debug("Nothing to evaluate", zap.Int("resolution", resolution))

		return report, nil
	}

	checked := predictor.CheckTrainer(trainer)

	price, err := checked.TrainPriceForecaster(ctx, types.CloneBars(bars))
	if err != nil {
		return types.ResolutionReport{}, err
	}

	direction, err := checked.TrainDirectionClassifier(ctx, types.CloneBars(bars))
	if err != nil {
		return types.ResolutionReport{}, err
	}

	if report.Agreement, err = e.Agreement(ctx, bars, price, direction); err != nil {
		return types.ResolutionReport{}, err
	}

	if report.BacktestPnL, err = e.Backtest(ctx, bars, price, direction); err != nil {
		return types.ResolutionReport{}, err
	}

	if report.Lookbacks, err = e.LookbackSweep(ctx, bars, e.cfg.ReferenceDate, e.cfg.Lookbacks, price, direction); err != nil {
		return types.ResolutionReport{}, err
	}

	e.logger.Info("Evaluated resolution",
		zap.Int("resolution", resolution),
		zap.Int("bars", len(bars)),
		zap.Float64("agreement_rate", report.Agreement.AgreementRate),
		zap.String("backtest_pnl", report.BacktestPnL.String()),
	)

	return report, nil
}

// predictPair runs both predictors on bar and counts the calls.
func (e *Evaluator) predictPair(bar types.Bar, price predictor.PriceForecaster, direction predictor.DirectionClassifier) (types.PriceForecast, types.DirectionForecast, error) {
	pf, err := price.Predict(bar)
	e.metrics.ObservePrediction(predictorPrice, err)

	if err != nil {
		return types.PriceForecast{}, types.DirectionForecast{}, err
	}

	df, err := direction.Predict(bar)
	e.metrics.ObservePrediction(predictorDirection, err)

	if err != nil {
		return types.PriceForecast{}, types.DirectionForecast{}, err
	}

	return pf, df, nil
}

func canceled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeEvaluationCanceled, "evaluation canceled", err)
	}

	return nil
}

// relativeMove is |forecast-close|/close, 0 when close is 0.
func relativeMove(forecast, close float64) float64 {
	if close == 0 {
		return 0
	}

	return math.Abs(forecast-close) / math.Abs(close)
}

// percent is count*100/total, 0 when total is 0.
func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(count) * 100 / float64(total)
}
