// Package pattern classifies candlestick shapes and mines co-occurring
// pattern sets by their historical hit rate.
package pattern

import (
	"math"

	"github.com/rxtech-lab/argo-features/internal/types"
)

const (
	// longWickRatio is the minimum wick length, relative to the body, of a hammer-like shadow.
	longWickRatio = 1.2
	// shortWickRatio is the maximum length, relative to the body, of the opposite shadow.
	shortWickRatio = 0.8
	// dojiBodyRatio is the maximum body/range ratio of a doji.
	dojiBodyRatio = 0.2
	// starBodyRatio is the maximum body/range ratio of the middle candle of a star.
	starBodyRatio = 0.5
	// rangeEpsilon keeps the star ratio finite on zero-range bars.
	rangeEpsilon = 1e-4
)

func body(b types.Bar) float64 {
	return math.Abs(b.Open - b.Close)
}

func upperWick(b types.Bar) float64 {
	return b.High - math.Max(b.Open, b.Close)
}

func lowerWick(b types.Bar) float64 {
	return math.Min(b.Open, b.Close) - b.Low
}

// IsHammer reports a small body with a long lower shadow and a short upper one.
func IsHammer(b types.Bar) bool {
	bd := body(b)

	return bd > 0 && lowerWick(b) > longWickRatio*bd && upperWick(b) < shortWickRatio*bd
}

// IsInvertedHammer reports a small body with a long upper shadow and a short lower one.
func IsInvertedHammer(b types.Bar) bool {
	bd := body(b)

	return bd > 0 && upperWick(b) > longWickRatio*bd && lowerWick(b) < shortWickRatio*bd
}

// IsShootingStar has the same shape as an inverted hammer. The two differ
// only in the trend they are read against.
func IsShootingStar(b types.Bar) bool {
	return IsInvertedHammer(b)
}

// IsDoji reports a body smaller than a fifth of the range. Zero-range bars are not dojis.
func IsDoji(b types.Bar) bool {
	rng := b.High - b.Low
	if rng <= 0 {
		return false
	}

	return body(b)/rng < dojiBodyRatio
}

// IsBullishEngulfing reports a bullish cur whose body contains the body of a bearish prev.
func IsBullishEngulfing(prev, cur types.Bar) bool {
	return prev.IsBearish() && cur.IsBullish() &&
		cur.Open < prev.Close && cur.Close > prev.Open
}

// IsBearishEngulfing reports a bearish cur whose body contains the body of a bullish prev.
func IsBearishEngulfing(prev, cur types.Bar) bool {
	return prev.IsBullish() && cur.IsBearish() &&
		cur.Open > prev.Close && cur.Close < prev.Open
}

func isDojiLike(b types.Bar) bool {
	return body(b)/(b.High-b.Low+rangeEpsilon) < starBodyRatio
}

// IsMorningStar evaluates the three bars ending at index i.
func IsMorningStar(bars []types.Bar, i int) bool {
	if i < 2 || i >= len(bars) {
		return false
	}

	a, b, c := bars[i-2], bars[i-1], bars[i]

	return a.IsBearish() && isDojiLike(b) && c.IsBullish() && c.Close > a.Open
}

// IsEveningStar evaluates the three bars ending at index i.
func IsEveningStar(bars []types.Bar, i int) bool {
	if i < 2 || i >= len(bars) {
		return false
	}

	a, b, c := bars[i-2], bars[i-1], bars[i]

	return a.IsBullish() && isDojiLike(b) && c.IsBearish() && c.Close < a.Open
}

// Detect returns a copy of bars with every pattern flag filled. Flags at
// index i only read bars i-2 through i.
func Detect(bars []types.Bar) []types.Bar {
	out := types.CloneBars(bars)

	for i := range out {
		cur := out[i]
		flags := types.PatternFlags{
			Hammer:         IsHammer(cur),
			InvertedHammer: IsInvertedHammer(cur),
			Doji:           IsDoji(cur),
			ShootingStar:   IsShootingStar(cur),
			MorningStar:    IsMorningStar(out, i),
			EveningStar:    IsEveningStar(out, i),
		}

		if i > 0 {
			flags.BullishEngulfing = IsBullishEngulfing(out[i-1], cur)
			flags.BearishEngulfing = IsBearishEngulfing(out[i-1], cur)
		}

		out[i].Patterns = flags
	}

	return out
}
