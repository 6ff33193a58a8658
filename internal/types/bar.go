package types

import "time"

// Outcome is the realized direction of the bar that follows a given bar.
type Outcome string

const (
	// OutcomeUnset marks a bar whose successor is not known yet.
	OutcomeUnset Outcome = ""
	// OutcomeUp means the next close is strictly above the current close.
	OutcomeUp Outcome = "UP"
	// OutcomeDown means the next close is equal to or below the current close.
	OutcomeDown Outcome = "DOWN"
)

// OutcomeFor returns the outcome implied by moving from close to closeNext.
func OutcomeFor(close, closeNext float64) Outcome {
	if closeNext > close {
		return OutcomeUp
	}

	return OutcomeDown
}

// IsUp reports whether the outcome is UP.
func (o Outcome) IsUp() bool {
	return o == OutcomeUp
}

// PatternFlags holds the candlestick shapes detected on a bar.
type PatternFlags struct {
	Hammer           bool `yaml:"hammer" json:"hammer" parquet:"hammer"`
	InvertedHammer   bool `yaml:"inverted_hammer" json:"inverted_hammer" parquet:"inverted_hammer"`
	Doji             bool `yaml:"doji" json:"doji" parquet:"doji"`
	BullishEngulfing bool `yaml:"bullish_engulfing" json:"bullish_engulfing" parquet:"bullish_engulfing"`
	BearishEngulfing bool `yaml:"bearish_engulfing" json:"bearish_engulfing" parquet:"bearish_engulfing"`
	ShootingStar     bool `yaml:"shooting_star" json:"shooting_star" parquet:"shooting_star"`
	MorningStar      bool `yaml:"morning_star" json:"morning_star" parquet:"morning_star"`
	EveningStar      bool `yaml:"evening_star" json:"evening_star" parquet:"evening_star"`
}

// IndicatorValues holds the numeric features computed by the indicator engine.
type IndicatorValues struct {
	// DistanceToResistance is (resistance - close) / close.
	DistanceToResistance float64 `yaml:"distance_to_resistance" json:"distance_to_resistance" parquet:"distance_to_resistance"`
	// DistanceToSupport is (close - support) / close.
	DistanceToSupport float64 `yaml:"distance_to_support" json:"distance_to_support" parquet:"distance_to_support"`

	BrokeResistance bool    `yaml:"broke_resistance" json:"broke_resistance" parquet:"broke_resistance"`
	BrokeSupport    bool    `yaml:"broke_support" json:"broke_support" parquet:"broke_support"`
	SMA             float64 `yaml:"sma" json:"sma" parquet:"sma"`
	EMA             float64 `yaml:"ema" json:"ema" parquet:"ema"`
	RSI             float64 `yaml:"rsi" json:"rsi" parquet:"rsi"`
	ATR             float64 `yaml:"atr" json:"atr" parquet:"atr"`
	BollingerUpper  float64 `yaml:"bollinger_upper" json:"bollinger_upper" parquet:"bollinger_upper"`
	BollingerLower  float64 `yaml:"bollinger_lower" json:"bollinger_lower" parquet:"bollinger_lower"`
}

// Bar is one OHLCV candle at a single resolution together with its forward
// label and the features derived from its look-back window.
type Bar struct {
	// Time is the open time of the bar. Zero when the source carried no timestamp.
	Time   time.Time `yaml:"time" json:"time"`
	Open   float64   `yaml:"open" json:"open"`
	High   float64   `yaml:"high" json:"high"`
	Low    float64   `yaml:"low" json:"low"`
	Close  float64   `yaml:"close" json:"close"`
	Volume float64   `yaml:"volume" json:"volume"`

	// CloseNext is the close of the following bar in the same sequence.
	CloseNext float64 `yaml:"close_next" json:"close_next"`
	// Outcome is UP iff CloseNext > Close. Unset until the bar is labeled.
	Outcome Outcome `yaml:"outcome" json:"outcome"`

	Patterns   PatternFlags    `yaml:"patterns" json:"patterns"`
	Indicators IndicatorValues `yaml:"indicators" json:"indicators"`
}

// IsBullish reports whether the bar closed above its open.
func (b Bar) IsBullish() bool {
	return b.Close > b.Open
}

// IsBearish reports whether the bar closed below its open.
func (b Bar) IsBearish() bool {
	return b.Close < b.Open
}

// IsLabeled reports whether the forward label has been assigned.
func (b Bar) IsLabeled() bool {
	return b.Outcome != OutcomeUnset
}

// FeatureNames lists the columns returned by FeatureVector, in order.
var FeatureNames = []string{
	"open", "high", "low", "close", "volume",
	"hammer", "inverted_hammer", "doji", "bullish_engulfing", "bearish_engulfing",
	"shooting_star", "morning_star", "evening_star",
	"distance_to_resistance", "distance_to_support", "broke_resistance", "broke_support",
	"sma", "ema", "rsi", "atr", "bollinger_upper", "bollinger_lower",
}

// FeatureVector returns the pre-label features of the bar. CloseNext and
// Outcome are never part of it.
func (b Bar) FeatureVector() []float64 {
	p := b.Patterns
	ind := b.Indicators

	return []float64{
		b.Open, b.High, b.Low, b.Close, b.Volume,
		boolToFloat(p.Hammer), boolToFloat(p.InvertedHammer), boolToFloat(p.Doji),
		boolToFloat(p.BullishEngulfing), boolToFloat(p.BearishEngulfing),
		boolToFloat(p.ShootingStar), boolToFloat(p.MorningStar), boolToFloat(p.EveningStar),
		ind.DistanceToResistance, ind.DistanceToSupport,
		boolToFloat(ind.BrokeResistance), boolToFloat(ind.BrokeSupport),
		ind.SMA, ind.EMA, ind.RSI, ind.ATR, ind.BollingerUpper, ind.BollingerLower,
	}
}

// CloneBars returns a shallow copy of bars. Bar is a value type, so the copy
// can be modified without touching the input.
func CloneBars(bars []Bar) []Bar {
	out := make([]Bar, len(bars))
	copy(out, bars)

	return out
}

func boolToFloat(v bool) float64 {
	if v {
		return 1
	}

	return 0
}
