package indicator

import (
	"slices"
	"sync"

	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// IndicatorRegistry holds named indicators so an engine can be assembled
// from a list of names.
type IndicatorRegistry interface {
	RegisterIndicator(indicator Indicator) error
	GetIndicator(name types.IndicatorType) (Indicator, error)
	// ConfigureIndicator forwards params to the named indicator's Config.
	ConfigureIndicator(name types.IndicatorType, params ...any) error
	ListIndicators() []types.IndicatorType
	RemoveIndicator(name types.IndicatorType) error
}

type memoryRegistry struct {
	mu      sync.RWMutex
	entries map[types.IndicatorType]Indicator
}

// NewIndicatorRegistry creates an empty registry.
func NewIndicatorRegistry() IndicatorRegistry {
	return &memoryRegistry{entries: make(map[types.IndicatorType]Indicator)}
}

// NewDefaultRegistry creates a registry holding every feature indicator with
// its default parameters.
func NewDefaultRegistry() IndicatorRegistry {
	registry := NewIndicatorRegistry()

	for _, ind := range []Indicator{
		NewSupportResistance(),
		NewSMA(),
		NewEMA(),
		NewRSI(),
		NewATR(),
		NewBollingerBands(),
	} {
		// names are distinct
		_ = registry.RegisterIndicator(ind)
	}

	return registry
}

func (r *memoryRegistry) RegisterIndicator(ind Indicator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := ind.Name()
	if _, ok := r.entries[name]; ok {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "indicator %s is already registered", name)
	}

	r.entries[name] = ind

	return nil
}

func (r *memoryRegistry) GetIndicator(name types.IndicatorType) (Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ind, ok := r.entries[name]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "indicator %s is not registered", name)
	}

	return ind, nil
}

func (r *memoryRegistry) ConfigureIndicator(name types.IndicatorType, params ...any) error {
	ind, err := r.GetIndicator(name)
	if err != nil {
		return err
	}

	if err := ind.Config(params...); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid %s configuration", name)
	}

	return nil
}

// ListIndicators returns the registered names in sorted order.
func (r *memoryRegistry) ListIndicators() []types.IndicatorType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]types.IndicatorType, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func (r *memoryRegistry) RemoveIndicator(name types.IndicatorType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; !ok {
		return errors.Newf(errors.ErrCodeIndicatorNotFound, "indicator %s is not registered", name)
	}

	delete(r.entries, name)

	return nil
}
