package pattern

import (
	"math/bits"
	"sort"

	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// flagCount is the number of pattern flags carried by a bar.
const flagCount = 8

// Names lists the pattern flags in bit order.
var Names = [flagCount]string{
	"hammer",
	"inverted_hammer",
	"doji",
	"bullish_engulfing",
	"bearish_engulfing",
	"shooting_star",
	"morning_star",
	"evening_star",
}

// MineOptions controls which pattern combinations are reported.
type MineOptions struct {
	// MinOccurrences is the minimum number of bars a combination must appear on.
	MinOccurrences int `yaml:"min_occurrences" json:"min_occurrences" validate:"gte=0"`
	// TopN caps the result. Zero or negative returns every qualifying combination.
	TopN int `yaml:"top_n" json:"top_n"`
	// MinSize and MaxSize bound the number of flags in a combination.
	MinSize int `yaml:"min_size" json:"min_size" validate:"gte=0,lte=8"`
	MaxSize int `yaml:"max_size" json:"max_size" validate:"gte=0,lte=8"`
}

// DefaultMineOptions returns the options used when none are configured.
func DefaultMineOptions() MineOptions {
	return MineOptions{
		MinOccurrences: 10,
		TopN:           10,
		MinSize:        1,
		MaxSize:        flagCount,
	}
}

// Mask packs the pattern flags of a bar into a bitmask in Names order.
func Mask(flags types.PatternFlags) uint8 {
	var m uint8

	set := [flagCount]bool{
		flags.Hammer,
		flags.InvertedHammer,
		flags.Doji,
		flags.BullishEngulfing,
		flags.BearishEngulfing,
		flags.ShootingStar,
		flags.MorningStar,
		flags.EveningStar,
	}
	for bit, on := range set {
		if on {
			m |= 1 << bit
		}
	}

	return m
}

// MaskNames returns the flag names set in mask, in bit order.
func MaskNames(mask uint8) []string {
	names := make([]string, 0, bits.OnesCount8(mask))
	for bit := 0; bit < flagCount; bit++ {
		if mask&(1<<bit) != 0 {
			names = append(names, Names[bit])
		}
	}

	return names
}

type combination struct {
	mask  uint8
	count int
	hits  int
}

// Mine enumerates every combination of pattern flags and ranks those seen on
// at least MinOccurrences labeled bars by the share of UP outcomes. Ties are
// broken by occurrence count, then by bit order, so the result is stable.
// Unlabeled bars are ignored.
func Mine(bars []types.Bar, opts MineOptions) ([]types.PatternStat, error) {
	if opts.MinOccurrences < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "min occurrences must not be negative, got %d", opts.MinOccurrences)
	}

	if opts.MinSize < 1 {
		opts.MinSize = 1
	}

	if opts.MaxSize == 0 || opts.MaxSize > flagCount {
		opts.MaxSize = flagCount
	}

	if opts.MinSize > opts.MaxSize {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "min size %d is greater than max size %d", opts.MinSize, opts.MaxSize)
	}

	masks := make([]uint8, 0, len(bars))
	up := make([]bool, 0, len(bars))

	for _, bar := range bars {
		if !bar.IsLabeled() {
			continue
		}

		masks = append(masks, Mask(bar.Patterns))
		up = append(up, bar.Outcome.IsUp())
	}

	combos := make([]combination, 0, 1<<flagCount)

	for subset := 1; subset < 1<<flagCount; subset++ {
		size := bits.OnesCount8(uint8(subset))
		if size < opts.MinSize || size > opts.MaxSize {
			continue
		}

		c := combination{mask: uint8(subset)}
		for i, m := range masks {
			if m&c.mask == c.mask {
				c.count++
				if up[i] {
					c.hits++
				}
			}
		}

		if c.count == 0 || c.count < opts.MinOccurrences {
			continue
		}

		combos = append(combos, c)
	}

	sort.SliceStable(combos, func(i, j int) bool {
		ri := float64(combos[i].hits) / float64(combos[i].count)
		rj := float64(combos[j].hits) / float64(combos[j].count)

		if ri != rj {
			return ri > rj
		}

		if combos[i].count != combos[j].count {
			return combos[i].count > combos[j].count
		}

		return combos[i].mask < combos[j].mask
	})

	if opts.TopN > 0 && len(combos) > opts.TopN {
		combos = combos[:opts.TopN]
	}

	stats := make([]types.PatternStat, len(combos))
	for i, c := range combos {
		stats[i] = types.PatternStat{
			Patterns: MaskNames(c.mask),
			Count:    c.count,
			Hits:     c.hits,
			HitRate:  float64(c.hits) / float64(c.count),
		}
	}

	return stats, nil
}
