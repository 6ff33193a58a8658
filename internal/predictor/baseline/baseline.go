// Package baseline provides deterministic reference predictors. They fit no
// model: each one summarizes its training bars with a single statistic.
package baseline

import (
	"context"

	"github.com/rxtech-lab/argo-features/internal/predictor"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// DriftForecaster predicts the next close as the current close plus the mean
// close-to-next move seen in training.
type DriftForecaster struct {
	drift float64
}

// NewDriftForecaster fits the mean drift of the labeled bars.
func NewDriftForecaster(bars []types.Bar) (*DriftForecaster, error) {
	var (
		sum float64
		n   int
	)

	for _, b := range bars {
		if !b.IsLabeled() {
			continue
		}

		sum += b.CloseNext - b.Close
		n++
	}

	if n == 0 {
		return nil, errors.NewInsufficientDataError(1, 0, "drift forecaster", "no labeled bars to train on")
	}

	return &DriftForecaster{drift: sum / float64(n)}, nil
}

// Drift returns the fitted mean move.
func (d *DriftForecaster) Drift() float64 {
	return d.drift
}

// Predict implements predictor.PriceForecaster.
func (d *DriftForecaster) Predict(bar types.Bar) (types.PriceForecast, error) {
	return types.PriceForecast{PredictedCloseNext: bar.Close + d.drift}, nil
}

type colour int

const (
	colourFlat colour = iota
	colourBullish
	colourBearish
)

func colourOf(b types.Bar) colour {
	switch {
	case b.IsBullish():
		return colourBullish
	case b.IsBearish():
		return colourBearish
	default:
		return colourFlat
	}
}

type tally struct {
	up    int
	total int
}

func (t tally) forecast() types.DirectionForecast {
	rate := float64(t.up) / float64(t.total)
	if rate > 0.5 {
		return types.DirectionForecast{Outcome: types.OutcomeUp, Confidence: rate}
	}

	return types.DirectionForecast{Outcome: types.OutcomeDown, Confidence: 1 - rate}
}

// FrequencyClassifier predicts the majority training outcome among bars of
// the same candle colour. The confidence is that majority's frequency.
// Colours unseen in training fall back to the overall frequency.
type FrequencyClassifier struct {
	byColour map[colour]tally
	overall  tally
}

// NewFrequencyClassifier counts outcomes of the labeled bars.
func NewFrequencyClassifier(bars []types.Bar) (*FrequencyClassifier, error) {
	c := &FrequencyClassifier{byColour: make(map[colour]tally)}

	for _, b := range bars {
		if !b.IsLabeled() {
			continue
		}

		t := c.byColour[colourOf(b)]
		t.total++
		c.overall.total++

		if b.Outcome.IsUp() {
			t.up++
			c.overall.up++
		}

		c.byColour[colourOf(b)] = t
	}

	if c.overall.total == 0 {
		return nil, errors.NewInsufficientDataError(1, 0, "frequency classifier", "no labeled bars to train on")
	}

	return c, nil
}

// Predict implements predictor.DirectionClassifier.
func (c *FrequencyClassifier) Predict(bar types.Bar) (types.DirectionForecast, error) {
	if t, ok := c.byColour[colourOf(bar)]; ok {
		return t.forecast(), nil
	}

	return c.overall.forecast(), nil
}

// Trainer builds baseline predictors.
type Trainer struct{}

// NewTrainer creates a baseline trainer.
func NewTrainer() *Trainer {
	return &Trainer{}
}

// TrainPriceForecaster implements predictor.Trainer.
func (t *Trainer) TrainPriceForecaster(ctx context.Context, bars []types.Bar) (predictor.PriceForecaster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	forecaster, err := NewDriftForecaster(bars)
	if err != nil {
		return nil, err
	}

	return forecaster, nil
}

// TrainDirectionClassifier implements predictor.Trainer.
func (t *Trainer) TrainDirectionClassifier(ctx context.Context, bars []types.Bar) (predictor.DirectionClassifier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	classifier, err := NewFrequencyClassifier(bars)
	if err != nil {
		return nil, err
	}

	return classifier, nil
}
