package types

// IndicatorType names a feature indicator in the registry.
type IndicatorType string

const (
	IndicatorTypeSupportResistance IndicatorType = "support_resistance"
	IndicatorTypeSMA               IndicatorType = "sma"
	IndicatorTypeEMA               IndicatorType = "ema"
	IndicatorTypeRSI               IndicatorType = "rsi"
	IndicatorTypeATR               IndicatorType = "atr"
	IndicatorTypeBollingerBands    IndicatorType = "bollinger_bands"
)

// AllIndicatorTypes is the default enrichment order.
var AllIndicatorTypes = []IndicatorType{
	IndicatorTypeSupportResistance,
	IndicatorTypeSMA,
	IndicatorTypeEMA,
	IndicatorTypeRSI,
	IndicatorTypeATR,
	IndicatorTypeBollingerBands,
}
