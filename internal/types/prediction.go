package types

// PriceForecast is the output of a price forecaster for one bar.
type PriceForecast struct {
	PredictedCloseNext float64 `json:"predicted_close_next"`
}

// IsUp reports whether the forecast implies a rise relative to close.
func (p PriceForecast) IsUp(close float64) bool {
	return p.PredictedCloseNext > close
}

// DirectionForecast is the output of a direction classifier for one bar.
type DirectionForecast struct {
	Outcome Outcome `json:"outcome"`
	// Confidence is in [0, 1].
	Confidence float64 `json:"confidence"`
}
