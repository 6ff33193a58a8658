package types

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
)

// AgreementReport scores two predictors against realized outcomes.
// Percentages are count*100/total; conditional accuracies divide by the
// conditional count and are 0 when that count is 0.
type AgreementReport struct {
	Total int `json:"total"`

	PriceCorrect      int     `json:"price_correct"`
	PriceAccuracy     float64 `json:"price_accuracy"`
	DirectionCorrect  int     `json:"direction_correct"`
	DirectionAccuracy float64 `json:"direction_accuracy"`

	// Agreeing counts bars where both predictors call the same direction.
	Agreeing           int     `json:"agreeing"`
	AgreementRate      float64 `json:"agreement_rate"`
	Concordant         int     `json:"concordant"`
	ConcordantAccuracy float64 `json:"concordant_accuracy"`

	// HighConfidence is the subset of agreeing bars that pass both the
	// confidence and the forecasted-move thresholds.
	HighConfidence         int     `json:"high_confidence"`
	HighConfidenceRate     float64 `json:"high_confidence_rate"`
	HighConfidenceCorrect  int     `json:"high_confidence_correct"`
	HighConfidenceAccuracy float64 `json:"high_confidence_accuracy"`
}

// FoldStatus tells whether a walk-forward fold contributed to the means.
type FoldStatus string

const (
	FoldStatusCompleted FoldStatus = "completed"
	FoldStatusSkipped   FoldStatus = "skipped"
)

// FoldResult is the out-of-sample score of one walk-forward fold.
// Train and test ranges are half-open index ranges.
type FoldResult struct {
	Index      int        `json:"index"`
	TrainStart int        `json:"train_start"`
	TrainEnd   int        `json:"train_end"`
	TestStart  int        `json:"test_start"`
	TestEnd    int        `json:"test_end"`
	Status     FoldStatus `json:"status"`
	RMSE       float64    `json:"rmse"`
	RSquared   float64    `json:"r_squared"`
	// Err is the reason a skipped fold was skipped.
	Err string `json:"error,omitempty"`
}

// WalkForwardReport aggregates the folds of a rolling-origin validation.
// The means are None when no fold completed.
type WalkForwardReport struct {
	WindowSize   int                      `json:"window_size"`
	TestSize     int                      `json:"test_size"`
	Folds        []FoldResult             `json:"folds"`
	Completed    int                      `json:"completed"`
	Skipped      int                      `json:"skipped"`
	MeanRMSE     optional.Option[float64] `json:"mean_rmse"`
	MeanRSquared optional.Option[float64] `json:"mean_r_squared"`
}

// Lookback names a trailing duration used by the lookback sweep.
type Lookback struct {
	Name     string        `yaml:"name" json:"name" validate:"required"`
	Duration time.Duration `yaml:"duration" json:"duration" validate:"gt=0"`
}

// LookbackResult is the directional backtest P&L on one lookback slice.
type LookbackResult struct {
	Name string          `json:"name"`
	Bars int             `json:"bars"`
	PnL  decimal.Decimal `json:"pnl"`
}

// PatternStat is the historical hit rate of a set of co-occurring patterns.
type PatternStat struct {
	// Patterns are the flag names joined in the combination.
	Patterns []string `json:"patterns"`
	// Count is the number of bars where every pattern in the set is present.
	Count int `json:"count"`
	// Hits is the number of those bars whose outcome was UP.
	Hits int `json:"hits"`
	// HitRate is Hits / Count.
	HitRate float64 `json:"hit_rate"`
}

// ResolutionReport gathers every evaluation output of one resolution.
type ResolutionReport struct {
	Resolution  int               `json:"resolution"`
	Bars        int               `json:"bars"`
	Agreement   AgreementReport   `json:"agreement"`
	WalkForward WalkForwardReport `json:"walk_forward"`
	BacktestPnL decimal.Decimal   `json:"backtest_pnl"`
	Lookbacks   []LookbackResult  `json:"lookbacks"`
}

// Report is the result of one evaluation run over several resolutions.
type Report struct {
	// ID is the unique identifier for this run.
	ID string `json:"id"`
	// Timestamp is when this run was executed.
	Timestamp   time.Time          `json:"timestamp"`
	Resolutions []ResolutionReport `json:"resolutions"`
}
