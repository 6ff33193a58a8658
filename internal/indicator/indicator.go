// Package indicator computes sliding-window numeric features over a bar
// sequence. Every indicator reads only the bars at or before the index it
// fills, except support/resistance which fits lines through pivots found
// over the whole sequence.
package indicator

import (
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// Indicator interface defines methods that any technical indicator must implement
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Config configures the indicator. Parameters are positional and type checked.
	Config(params ...any) error
	// Apply returns a copy of bars with the indicator's fields filled.
	// The input is never modified.
	Apply(bars []types.Bar) ([]types.Bar, error)
}

// closes extracts the close column of bars.
func closes(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}

	return out
}

func validatePeriod(name string, period int) error {
	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, period)
	}

	return nil
}

// intParam reads params[idx] as a positive int.
func intParam(params []any, idx int, name string) (int, error) {
	value, ok := params[idx].(int)
	if !ok {
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected int", name)
	}

	if err := validatePeriod(name, value); err != nil {
		return 0, err
	}

	return value, nil
}

// singlePeriod implements Config for indicators configured by one period.
func singlePeriod(params []any) (int, error) {
	if len(params) != 1 {
		return 0, errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	return intParam(params, 0, "period")
}
