package indicator

import (
	"github.com/rxtech-lab/argo-features/internal/types"
)

// EMA indicator implements Exponential Moving Average calculation.
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator with default configuration.
func NewEMA() Indicator {
	return &EMA{
		period: 14, // Default period
	}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Config configures the EMA indicator. Expected parameters: period (int).
func (e *EMA) Config(params ...any) error {
	period, err := singlePeriod(params)
	if err != nil {
		return err
	}

	e.period = period

	return nil
}

// Apply fills Indicators.EMA.
func (e *EMA) Apply(bars []types.Bar) ([]types.Bar, error) {
	values, err := EMAValues(closes(bars), e.period)
	if err != nil {
		return nil, err
	}

	out := types.CloneBars(bars)
	for i := range out {
		out[i].Indicators.EMA = values[i]
	}

	return out, nil
}
