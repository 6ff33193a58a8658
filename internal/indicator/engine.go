package indicator

import (
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// Engine applies an ordered list of indicators to a bar sequence. Each
// indicator sees the output of the previous one.
type Engine struct {
	indicators []Indicator
}

// NewEngine creates an engine that applies indicators in the given order.
func NewEngine(indicators ...Indicator) *Engine {
	return &Engine{indicators: indicators}
}

// NewEngineFromRegistry creates an engine from registered indicators. With no
// names, every indicator type is applied in types.AllIndicatorTypes order.
func NewEngineFromRegistry(registry IndicatorRegistry, names ...types.IndicatorType) (*Engine, error) {
	if len(names) == 0 {
		names = types.AllIndicatorTypes
	}

	indicators := make([]Indicator, 0, len(names))

	for _, name := range names {
		ind, err := registry.GetIndicator(name)
		if err != nil {
			return nil, err
		}

		indicators = append(indicators, ind)
	}

	return NewEngine(indicators...), nil
}

// Names returns the indicator names in application order.
func (e *Engine) Names() []types.IndicatorType {
	names := make([]types.IndicatorType, len(e.indicators))
	for i, ind := range e.indicators {
		names[i] = ind.Name()
	}

	return names
}

// Apply runs every indicator and returns the enriched copy.
func (e *Engine) Apply(bars []types.Bar) ([]types.Bar, error) {
	out := types.CloneBars(bars)

	for _, ind := range e.indicators {
		next, err := ind.Apply(out)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeIndicatorCalculation, err, "failed to apply %s", ind.Name())
		}

		out = next
	}

	return out, nil
}
