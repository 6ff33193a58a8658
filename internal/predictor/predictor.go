// Package predictor defines the capability boundary between the evaluation
// engine and externally trained models.
package predictor

import (
	"context"
	"math"

	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// PriceForecaster predicts the next close of a bar. Predict must be a pure
// function of the trained state and the bar's pre-label fields.
type PriceForecaster interface {
	Predict(bar types.Bar) (types.PriceForecast, error)
}

// DirectionClassifier predicts the outcome of a bar with a confidence in [0, 1].
type DirectionClassifier interface {
	Predict(bar types.Bar) (types.DirectionForecast, error)
}

// Trainer builds fresh predictors from a training sequence. Each call must
// return an instance that shares no mutable state with earlier ones.
type Trainer interface {
	TrainPriceForecaster(ctx context.Context, bars []types.Bar) (PriceForecaster, error)
	TrainDirectionClassifier(ctx context.Context, bars []types.Bar) (DirectionClassifier, error)
}

// CheckedPriceForecaster rejects failed and non-finite forecasts.
type CheckedPriceForecaster struct {
	inner PriceForecaster
}

// CheckPrice wraps a forecaster so every failure carries ErrCodePredictionFailed.
func CheckPrice(inner PriceForecaster) *CheckedPriceForecaster {
	return &CheckedPriceForecaster{inner: inner}
}

// Predict implements PriceForecaster.
func (c *CheckedPriceForecaster) Predict(bar types.Bar) (types.PriceForecast, error) {
	forecast, err := c.inner.Predict(bar)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodePredictionFailed) {
			return types.PriceForecast{}, err
		}

		return types.PriceForecast{}, errors.Wrap(errors.ErrCodePredictionFailed, "price forecaster failed", err)
	}

	if !isFinite(forecast.PredictedCloseNext) {
		return types.PriceForecast{}, errors.Newf(errors.ErrCodePredictionFailed, "price forecaster returned a non-finite value: %v", forecast.PredictedCloseNext)
	}

	return forecast, nil
}

// CheckedDirectionClassifier rejects failed forecasts, unknown outcomes and
// confidences outside [0, 1].
type CheckedDirectionClassifier struct {
	inner DirectionClassifier
}

// CheckDirection wraps a classifier so every failure carries ErrCodePredictionFailed.
func CheckDirection(inner DirectionClassifier) *CheckedDirectionClassifier {
	return &CheckedDirectionClassifier{inner: inner}
}

// Predict implements DirectionClassifier.
func (c *CheckedDirectionClassifier) Predict(bar types.Bar) (types.DirectionForecast, error) {
	forecast, err := c.inner.Predict(bar)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodePredictionFailed) {
			return types.DirectionForecast{}, err
		}

		return types.DirectionForecast{}, errors.Wrap(errors.ErrCodePredictionFailed, "direction classifier failed", err)
	}

	if forecast.Outcome != types.OutcomeUp && forecast.Outcome != types.OutcomeDown {
		return types.DirectionForecast{}, errors.Newf(errors.ErrCodePredictionFailed, "direction classifier returned unknown outcome %q", forecast.Outcome)
	}

	if !isFinite(forecast.Confidence) || forecast.Confidence < 0 || forecast.Confidence > 1 {
		return types.DirectionForecast{}, errors.Newf(errors.ErrCodePredictionFailed, "direction classifier confidence must be in [0, 1], got %v", forecast.Confidence)
	}

	return forecast, nil
}

// CheckedTrainer wraps a trainer so training failures carry
// ErrCodeTrainingFailed and the returned predictors are checked.
type CheckedTrainer struct {
	inner Trainer
}

// CheckTrainer wraps inner.
func CheckTrainer(inner Trainer) *CheckedTrainer {
	return &CheckedTrainer{inner: inner}
}

// TrainPriceForecaster implements Trainer.
func (c *CheckedTrainer) TrainPriceForecaster(ctx context.Context, bars []types.Bar) (PriceForecaster, error) {
	forecaster, err := c.inner.TrainPriceForecaster(ctx, bars)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTrainingFailed, "failed to train price forecaster", err)
	}

	if forecaster == nil {
		return nil, errors.New(errors.ErrCodeTrainingFailed, "trainer returned no price forecaster")
	}

	return CheckPrice(forecaster), nil
}

// TrainDirectionClassifier implements Trainer.
func (c *CheckedTrainer) TrainDirectionClassifier(ctx context.Context, bars []types.Bar) (DirectionClassifier, error) {
	classifier, err := c.inner.TrainDirectionClassifier(ctx, bars)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTrainingFailed, "failed to train direction classifier", err)
	}

	if classifier == nil {
		return nil, errors.New(errors.ErrCodeTrainingFailed, "trainer returned no direction classifier")
	}

	return CheckDirection(classifier), nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
