package types

import "time"

// SignalType is the direction of an emitted signal.
type SignalType string

const (
	// SignalTypeUp is emitted when both predictors expect the next close to rise
	SignalTypeUp SignalType = "up"
	// SignalTypeDown is emitted when both predictors expect the next close to fall
	SignalTypeDown SignalType = "down"
)

// Signal is a directional call on the most recent bar of one resolution.
type Signal struct {
	// Time is the time of the bar the signal was computed on
	Time time.Time `yaml:"time" json:"time"`
	// Resolution is the aggregation group size the bar belongs to
	Resolution int `yaml:"resolution" json:"resolution"`
	// Type is the agreed direction
	Type SignalType `yaml:"type" json:"type"`
	// Close is the close of the bar the signal was computed on
	Close float64 `yaml:"close" json:"close"`
	// PredictedClose is the price forecaster's next close
	PredictedClose float64 `yaml:"predicted_close" json:"predicted_close"`
	// Confidence is the direction classifier's confidence
	Confidence float64 `yaml:"confidence" json:"confidence"`
	// Reason is a human readable explanation
	Reason string `yaml:"reason" json:"reason"`
}
