package indicator

import (
	"github.com/rxtech-lab/argo-features/internal/types"
)

// RSI indicator implements the Relative Strength Index over a sliding window
// of close-to-close deltas.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{
		period: 14, // Default period
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RSI) Config(params ...any) error {
	period, err := singlePeriod(params)
	if err != nil {
		return err
	}

	r.period = period

	return nil
}

// Apply fills Indicators.RSI.
func (r *RSI) Apply(bars []types.Bar) ([]types.Bar, error) {
	values, err := RSIValues(closes(bars), r.period)
	if err != nil {
		return nil, err
	}

	out := types.CloneBars(bars)
	for i := range out {
		out[i].Indicators.RSI = values[i]
	}

	return out, nil
}
