package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// neutralRSI is reported until the RSI window is full.
const neutralRSI = 50

// SMAValues returns the trailing simple mean of values over period. Indices with
// fewer than period values use the value itself.
func SMAValues(values []float64, period int) ([]float64, error) {
	if err := validatePeriod("period", period); err != nil {
		return nil, err
	}

	out := make([]float64, len(values))
	for i := range values {
		if i+1 < period {
			out[i] = values[i]

			continue
		}

		var sum float64
		for _, v := range values[i+1-period : i+1] {
			sum += v
		}

		out[i] = sum / float64(period)
	}

	return out, nil
}

// EMAValues returns the exponential moving average of values, seeded with the
// first value and smoothed with k = 2/(period+1).
func EMAValues(values []float64, period int) ([]float64, error) {
	if err := validatePeriod("period", period); err != nil {
		return nil, err
	}

	out := make([]float64, len(values))
	if len(values) == 0 {
		return out, nil
	}

	k := 2 / float64(period+1)
	out[0] = values[0]

	for i := 1; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}

	return out, nil
}

// RSIValues returns the relative strength index of values. Gains and losses are
// kept as running sums over the last period deltas and the delta leaving the
// window is subtracted each step. Indices before the window is full are 50.
func RSIValues(values []float64, period int) ([]float64, error) {
	if err := validatePeriod("period", period); err != nil {
		return nil, err
	}

	out := make([]float64, len(values))
	if len(values) == 0 {
		return out, nil
	}

	out[0] = neutralRSI

	var gain, loss float64

	for i := 1; i < len(values); i++ {
		diff := values[i] - values[i-1]
		gain += math.Max(diff, 0)
		loss += math.Max(-diff, 0)

		if i < period {
			out[i] = neutralRSI

			continue
		}

		avgGain := gain / float64(period)
		avgLoss := loss / float64(period)

		if avgLoss <= 0 {
			out[i] = 100
		} else {
			out[i] = 100 - 100/(1+avgGain/avgLoss)
		}

		leaving := values[i-period+1] - values[i-period]
		gain -= math.Max(leaving, 0)
		loss -= math.Max(-leaving, 0)
	}

	return out, nil
}

// TrueRange is the largest of the bar's range and its distance from the
// previous close.
func TrueRange(high, low, prevClose float64) float64 {
	return math.Max(high-low, math.Max(math.Abs(high-prevClose), math.Abs(low-prevClose)))
}

// ATRValues returns the average true range. The first period true ranges are
// averaged at index period and Wilder smoothing is applied afterwards.
// Earlier indices carry the raw true range, and index 0 its high-low range.
func ATRValues(highs, lows, closes []float64, period int) ([]float64, error) {
	if err := validatePeriod("period", period); err != nil {
		return nil, err
	}

	if len(highs) != len(lows) || len(lows) != len(closes) {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter,
			"ATR expects columns of equal length, got %d highs, %d lows and %d closes", len(highs), len(lows), len(closes))
	}

	out := make([]float64, len(closes))
	if len(closes) == 0 {
		return out, nil
	}

	out[0] = highs[0] - lows[0]

	var trSum float64

	for i := 1; i < len(closes); i++ {
		tr := TrueRange(highs[i], lows[i], closes[i-1])
		trSum += tr

		switch {
		case i == period:
			out[i] = trSum / float64(period)
		case i > period:
			out[i] = (out[i-1]*float64(period-1) + tr) / float64(period)
		default:
			out[i] = tr
		}
	}

	return out, nil
}

// Bollinger returns the upper and lower bands at k population standard
// deviations around the trailing mean. Both bands equal the value itself
// until the window is full.
func Bollinger(values []float64, period int, k float64) (upper, lower []float64, err error) {
	if err = validatePeriod("period", period); err != nil {
		return nil, nil, err
	}

	if k <= 0 || math.IsNaN(k) || math.IsInf(k, 0) {
		return nil, nil, errors.Newf(errors.ErrCodeInvalidStdDev, "stdDev must be a positive number, got %f", k)
	}

	upper = make([]float64, len(values))
	lower = make([]float64, len(values))

	for i := range values {
		if i+1 < period {
			upper[i] = values[i]
			lower[i] = values[i]

			continue
		}

		window := values[i+1-period : i+1]

		var sum float64
		for _, v := range window {
			sum += v
		}

		mean := sum / float64(period)

		var squaredDiffSum float64
		for _, v := range window {
			diff := v - mean
			squaredDiffSum += diff * diff
		}

		std := math.Sqrt(squaredDiffSum / float64(period))
		upper[i] = mean + k*std
		lower[i] = mean - k*std
	}

	return upper, lower, nil
}
