package indicator

import (
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// DetectPivotHighs returns the indices i in [lookback, n-lookback) whose high
// is at least every high in [i-lookback, i+lookback]. Equal highs qualify.
func DetectPivotHighs(highs []float64, lookback int) ([]int, error) {
	return detectPivots(highs, lookback, func(candidate, other float64) bool {
		return other <= candidate
	})
}

// DetectPivotLows returns the indices i in [lookback, n-lookback) whose low
// is at most every low in [i-lookback, i+lookback]. Equal lows qualify.
func DetectPivotLows(lows []float64, lookback int) ([]int, error) {
	return detectPivots(lows, lookback, func(candidate, other float64) bool {
		return other >= candidate
	})
}

func detectPivots(values []float64, lookback int, holds func(candidate, other float64) bool) ([]int, error) {
	if err := validatePeriod("lookback", lookback); err != nil {
		return nil, err
	}

	pivots := []int{}

	for i := lookback; i < len(values)-lookback; i++ {
		pivot := true

		for j := i - lookback; j <= i+lookback; j++ {
			if !holds(values[i], values[j]) {
				pivot = false

				break
			}
		}

		if pivot {
			pivots = append(pivots, i)
		}
	}

	return pivots, nil
}

// LinearRegression fits y = slope*x + intercept by ordinary least squares.
// The slope is 0 when every x is equal. Empty input yields 0, 0.
func LinearRegression(xs, ys []float64) (slope, intercept float64) {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return 0, 0
	}

	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}

	mx /= float64(n)
	my /= float64(n)

	var num, den float64
	for i := range xs {
		num += (xs[i] - mx) * (ys[i] - my)
		den += (xs[i] - mx) * (xs[i] - mx)
	}

	if den != 0 {
		slope = num / den
	}

	return slope, my - slope*mx
}

// trendLine is a fitted line evaluated at bar indices.
type trendLine struct {
	slope     float64
	intercept float64
	defined   bool
}

func (l trendLine) at(i int) float64 {
	return l.slope*float64(i) + l.intercept
}

// fitPivots fits a line through the last count pivots of values.
func fitPivots(values []float64, pivots []int, count int) trendLine {
	if len(pivots) > count {
		pivots = pivots[len(pivots)-count:]
	}

	if len(pivots) == 0 {
		return trendLine{}
	}

	xs := make([]float64, len(pivots))
	ys := make([]float64, len(pivots))

	for k, idx := range pivots {
		xs[k] = float64(idx)
		ys[k] = values[idx]
	}

	slope, intercept := LinearRegression(xs, ys)

	return trendLine{slope: slope, intercept: intercept, defined: true}
}

// SupportResistance projects regression lines through recent pivot highs and
// lows and reports each bar's distance to them.
type SupportResistance struct {
	lookback    int // Half-width of the pivot window
	pivotsCount int // Number of most recent pivots fitted
}

// NewSupportResistance creates a new support/resistance indicator with default configuration.
func NewSupportResistance() Indicator {
	return &SupportResistance{
		lookback:    5,
		pivotsCount: 5,
	}
}

// Name returns the name of the indicator.
func (s *SupportResistance) Name() types.IndicatorType {
	return types.IndicatorTypeSupportResistance
}

// Config configures the indicator. Expected parameters: lookback (int), pivotsCount (int).
func (s *SupportResistance) Config(params ...any) error {
	if len(params) != 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 2 parameters: lookback (int), pivotsCount (int)")
	}

	lookback, err := intParam(params, 0, "lookback")
	if err != nil {
		return err
	}

	pivotsCount, err := intParam(params, 1, "pivotsCount")
	if err != nil {
		return err
	}

	s.lookback = lookback
	s.pivotsCount = pivotsCount

	return nil
}

// Apply fills the distance and broke fields. A side without pivots has no
// line: its distance stays 0 and its broke flag false.
func (s *SupportResistance) Apply(bars []types.Bar) ([]types.Bar, error) {
	out := types.CloneBars(bars)

	highs := make([]float64, len(out))
	lows := make([]float64, len(out))

	for i, b := range out {
		highs[i] = b.High
		lows[i] = b.Low
	}

	highPivots, err := DetectPivotHighs(highs, s.lookback)
	if err != nil {
		return nil, err
	}

	lowPivots, err := DetectPivotLows(lows, s.lookback)
	if err != nil {
		return nil, err
	}

	resistance := fitPivots(highs, highPivots, s.pivotsCount)
	support := fitPivots(lows, lowPivots, s.pivotsCount)

	for i := range out {
		bar := &out[i]
		bar.Indicators.DistanceToResistance = 0
		bar.Indicators.DistanceToSupport = 0
		bar.Indicators.BrokeResistance = false
		bar.Indicators.BrokeSupport = false

		if resistance.defined {
			res := resistance.at(i)
			bar.Indicators.DistanceToResistance = ratio(res-bar.Close, bar.Close)
			bar.Indicators.BrokeResistance = bar.High > res
		}

		if support.defined {
			sup := support.at(i)
			bar.Indicators.DistanceToSupport = ratio(bar.Close-sup, bar.Close)
			bar.Indicators.BrokeSupport = bar.Low < sup
		}
	}

	return out, nil
}

// ratio returns num/den, or 0 when den is 0.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}

	return num / den
}
