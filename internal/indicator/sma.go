package indicator

import (
	"github.com/rxtech-lab/argo-features/internal/types"
)

// SMA indicator implements Simple Moving Average calculation.
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator with default configuration.
func NewSMA() Indicator {
	return &SMA{
		period: 14, // Default period
	}
}

// Name returns the name of the indicator.
func (s *SMA) Name() types.IndicatorType {
	return types.IndicatorTypeSMA
}

// Config configures the SMA indicator. Expected parameters: period (int).
func (s *SMA) Config(params ...any) error {
	period, err := singlePeriod(params)
	if err != nil {
		return err
	}

	s.period = period

	return nil
}

// Apply fills Indicators.SMA.
func (s *SMA) Apply(bars []types.Bar) ([]types.Bar, error) {
	values, err := SMAValues(closes(bars), s.period)
	if err != nil {
		return nil, err
	}

	out := types.CloneBars(bars)
	for i := range out {
		out[i].Indicators.SMA = values[i]
	}

	return out, nil
}
