package indicator

import (
	"github.com/rxtech-lab/argo-features/internal/types"
)

// ATR indicator implements Average True Range with Wilder smoothing.
type ATR struct {
	period int
}

// NewATR creates a new ATR indicator with default configuration.
func NewATR() Indicator {
	return &ATR{
		period: 14, // Default period
	}
}

// Name returns the name of the indicator.
func (a *ATR) Name() types.IndicatorType {
	return types.IndicatorTypeATR
}

// Config configures the ATR indicator. Expected parameters: period (int).
func (a *ATR) Config(params ...any) error {
	period, err := singlePeriod(params)
	if err != nil {
		return err
	}

	a.period = period

	return nil
}

// Apply fills Indicators.ATR.
func (a *ATR) Apply(bars []types.Bar) ([]types.Bar, error) {
	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))

	for i, b := range bars {
		highs[i] = b.High
		lows[i] = b.Low
	}

	values, err := ATRValues(highs, lows, closes(bars), a.period)
	if err != nil {
		return nil, err
	}

	out := types.CloneBars(bars)
	for i := range out {
		out[i].Indicators.ATR = values[i]
	}

	return out, nil
}
