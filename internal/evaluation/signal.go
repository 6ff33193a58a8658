package evaluation

import (
	"context"
	"fmt"

	"github.com/rxtech-lab/argo-features/internal/pipeline"
	"github.com/rxtech-lab/argo-features/internal/predictor"
	"github.com/rxtech-lab/argo-features/internal/types"
	"go.uber.org/zap"
)

// Signals trains both predictors on all but the last bar of every signal
// resolution and predicts the last bar. A signal is emitted when both
// predictors agree and the forecasted move exceeds the configured ratio.
// Resolutions missing from results or shorter than the minimum are skipped;
// at least two bars are always required.
func (e *Evaluator) Signals(ctx context.Context, results []pipeline.Result, trainer predictor.Trainer) ([]types.Signal, error) {
	checked := predictor.CheckTrainer(trainer)
	signals := []types.Signal{}

	for _, resolution := range e.cfg.Signal.Resolutions {
		if err := canceled(ctx); err != nil {
			return nil, err
		}

		result, ok := pipeline.Find(results, resolution)
		if !ok || len(result.Bars) < max(e.cfg.Signal.MinBars, 2) {
			e.logger.Debug("Not enough bars for a signal", zap.Int("resolution", resolution), zap.Int("bars", len(result.Bars)))

			continue
		}

		n := len(result.Bars)
		train := types.CloneBars(result.Bars[:n-1])
		current := result.Bars[n-1]

		price, err := checked.TrainPriceForecaster(ctx, train)
		if err != nil {
			return nil, err
		}

		direction, err := checked.TrainDirectionClassifier(ctx, train)
		if err != nil {
			return nil, err
		}

		pf, df, err := e.predictPair(current, price, direction)
		if err != nil {
			return nil, err
		}

		upPrice := pf.IsUp(current.Close)
		move := relativeMove(pf.PredictedCloseNext, current.Close)

		if upPrice != df.Outcome.IsUp() || move <= e.cfg.Signal.MinMoveRatio {
			continue
		}

		signalType := types.SignalTypeDown
		if upPrice {
			signalType = types.SignalTypeUp
		}

		signal := types.Signal{
			Time:           current.Time,
			Resolution:     resolution,
			Type:           signalType,
			Close:          current.Close,
			PredictedClose: pf.PredictedCloseNext,
			Confidence:     df.Confidence,
			Reason:         fmt.Sprintf("both predictors call %s with a %.4f%% forecasted move", signalType, move*100),
		}

		e.metrics.ObserveSignal(string(signalType))
		e.logger.Info("Signal",
			zap.Int("resolution", resolution),
			zap.String("type", string(signalType)),
			zap.Float64("close", current.Close),
			zap.Float64("predicted_close", pf.PredictedCloseNext),
		)

		signals = append(signals, signal)
	}

	return signals, nil
}
