package errors

import "fmt"

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInsufficientData     ErrorCode = 102
	ErrCodeInvalidType          ErrorCode = 103
	ErrCodeInvalidPeriod        ErrorCode = 104
	ErrCodeMissingParameter     ErrorCode = 105
	ErrCodeInvalidVersion       ErrorCode = 106
	ErrCodeInvalidStdDev        ErrorCode = 107

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeWriteFailed           ErrorCode = 203

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302

	// Predictor errors (400-499)
	ErrCodePredictionFailed ErrorCode = 400
	ErrCodeTrainingFailed   ErrorCode = 401

	// Evaluation errors (500-599)
	ErrCodeEvaluationCanceled ErrorCode = 500
	ErrCodeCallbackFailed     ErrorCode = 501
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:                "unknown",
	ErrCodeInvalidParameter:       "invalid_parameter",
	ErrCodeInvalidConfiguration:   "invalid_configuration",
	ErrCodeInsufficientData:       "insufficient_data",
	ErrCodeInvalidType:            "invalid_type",
	ErrCodeInvalidPeriod:          "invalid_period",
	ErrCodeMissingParameter:       "missing_parameter",
	ErrCodeInvalidVersion:         "invalid_version",
	ErrCodeInvalidStdDev:          "invalid_std_dev",
	ErrCodeDataNotFound:           "data_not_found",
	ErrCodeDataSourceUnavailable:  "data_source_unavailable",
	ErrCodeQueryFailed:            "query_failed",
	ErrCodeWriteFailed:            "write_failed",
	ErrCodeIndicatorNotFound:      "indicator_not_found",
	ErrCodeIndicatorAlreadyExists: "indicator_already_exists",
	ErrCodeIndicatorCalculation:   "indicator_calculation",
	ErrCodePredictionFailed:       "prediction_failed",
	ErrCodeTrainingFailed:         "training_failed",
	ErrCodeEvaluationCanceled:     "evaluation_canceled",
	ErrCodeCallbackFailed:         "callback_failed",
}

// String returns the snake_case name of the code, or "code_<n>" for codes
// outside the table.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}

	return fmt.Sprintf("code_%d", int(c))
}
