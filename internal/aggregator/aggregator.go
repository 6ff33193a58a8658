// Package aggregator resamples fine-grained bars into coarser fixed-size bars
// and assigns each bar its forward label.
package aggregator

import (
	"math"

	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// Aggregate partitions bars into consecutive groups of exactly groupSize raw
// bars, merges every full group into one bar and labels the result. A trailing
// partial group is discarded and the last grouped bar, which has no successor,
// is dropped by Label.
//
// Returns an empty slice when there are fewer than groupSize bars.
func Aggregate(bars []types.Bar, groupSize int) ([]types.Bar, error) {
	if groupSize <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "group size must be a positive integer, got %d", groupSize)
	}

	groups := len(bars) / groupSize
	grouped := make([]types.Bar, 0, groups)

	for g := 0; g < groups; g++ {
		grouped = append(grouped, merge(bars[g*groupSize:(g+1)*groupSize]))
	}

	return Label(grouped), nil
}

// Label returns a copy of bars in which every bar but the last carries the
// close of its successor and the implied outcome. The last bar cannot be
// labeled and is not part of the result.
func Label(bars []types.Bar) []types.Bar {
	if len(bars) < 2 {
		return []types.Bar{}
	}

	labeled := make([]types.Bar, len(bars)-1)
	for i := range labeled {
		bar := bars[i]
		bar.CloseNext = bars[i+1].Close
		bar.Outcome = types.OutcomeFor(bar.Close, bar.CloseNext)
		labeled[i] = bar
	}

	return labeled
}

// merge folds a non-empty group of raw bars into one bar.
func merge(group []types.Bar) types.Bar {
	first := group[0]
	last := group[len(group)-1]

	merged := types.Bar{
		Time:   first.Time,
		Open:   first.Open,
		Close:  last.Close,
		High:   math.Inf(-1),
		Low:    math.Inf(1),
		Volume: 0,
	}

	for _, b := range group {
		merged.High = math.Max(merged.High, b.High)
		merged.Low = math.Min(merged.Low, b.Low)
		merged.Volume += b.Volume
	}

	return merged
}
