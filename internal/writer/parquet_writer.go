package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rxtech-lab/argo-features/internal/logger"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"go.uber.org/zap"
)

// Row is the flat on-disk layout of one enriched bar.
type Row struct {
	Resolution int       `parquet:"resolution"`
	Time       time.Time `parquet:"time,timestamp"`
	Open       float64   `parquet:"open"`
	High       float64   `parquet:"high"`
	Low        float64   `parquet:"low"`
	Close      float64   `parquet:"close"`
	Volume     float64   `parquet:"volume"`
	CloseNext  float64   `parquet:"close_next"`
	Outcome    string    `parquet:"outcome"`

	Hammer           bool `parquet:"hammer"`
	InvertedHammer   bool `parquet:"inverted_hammer"`
	Doji             bool `parquet:"doji"`
	BullishEngulfing bool `parquet:"bullish_engulfing"`
	BearishEngulfing bool `parquet:"bearish_engulfing"`
	ShootingStar     bool `parquet:"shooting_star"`
	MorningStar      bool `parquet:"morning_star"`
	EveningStar      bool `parquet:"evening_star"`

	DistanceToResistance float64 `parquet:"distance_to_resistance"`
	DistanceToSupport    float64 `parquet:"distance_to_support"`
	BrokeResistance      bool    `parquet:"broke_resistance"`
	BrokeSupport         bool    `parquet:"broke_support"`
	SMA                  float64 `parquet:"sma"`
	EMA                  float64 `parquet:"ema"`
	RSI                  float64 `parquet:"rsi"`
	ATR                  float64 `parquet:"atr"`
	BollingerUpper       float64 `parquet:"bollinger_upper"`
	BollingerLower       float64 `parquet:"bollinger_lower"`
}

// ToRow flattens bar into a Row.
func ToRow(resolution int, bar types.Bar) Row {
	return Row{
		Resolution: resolution,
		Time:       bar.Time,
		Open:       bar.Open,
		High:       bar.High,
		Low:        bar.Low,
		Close:      bar.Close,
		Volume:     bar.Volume,
		CloseNext:  bar.CloseNext,
		Outcome:    string(bar.Outcome),

		Hammer:           bar.Patterns.Hammer,
		InvertedHammer:   bar.Patterns.InvertedHammer,
		Doji:             bar.Patterns.Doji,
		BullishEngulfing: bar.Patterns.BullishEngulfing,
		BearishEngulfing: bar.Patterns.BearishEngulfing,
		ShootingStar:     bar.Patterns.ShootingStar,
		MorningStar:      bar.Patterns.MorningStar,
		EveningStar:      bar.Patterns.EveningStar,

		DistanceToResistance: bar.Indicators.DistanceToResistance,
		DistanceToSupport:    bar.Indicators.DistanceToSupport,
		BrokeResistance:      bar.Indicators.BrokeResistance,
		BrokeSupport:         bar.Indicators.BrokeSupport,
		SMA:                  bar.Indicators.SMA,
		EMA:                  bar.Indicators.EMA,
		RSI:                  bar.Indicators.RSI,
		ATR:                  bar.Indicators.ATR,
		BollingerUpper:       bar.Indicators.BollingerUpper,
		BollingerLower:       bar.Indicators.BollingerLower,
	}
}

// Bar rebuilds the enriched bar stored in r.
func (r Row) Bar() types.Bar {
	return types.Bar{
		Time:      r.Time,
		Open:      r.Open,
		High:      r.High,
		Low:       r.Low,
		Close:     r.Close,
		Volume:    r.Volume,
		CloseNext: r.CloseNext,
		Outcome:   types.Outcome(r.Outcome),
		Patterns: types.PatternFlags{
			Hammer:           r.Hammer,
			InvertedHammer:   r.InvertedHammer,
			Doji:             r.Doji,
			BullishEngulfing: r.BullishEngulfing,
			BearishEngulfing: r.BearishEngulfing,
			ShootingStar:     r.ShootingStar,
			MorningStar:      r.MorningStar,
			EveningStar:      r.EveningStar,
		},
		Indicators: types.IndicatorValues{
			DistanceToResistance: r.DistanceToResistance,
			DistanceToSupport:    r.DistanceToSupport,
			BrokeResistance:      r.BrokeResistance,
			BrokeSupport:         r.BrokeSupport,
			SMA:                  r.SMA,
			EMA:                  r.EMA,
			RSI:                  r.RSI,
			ATR:                  r.ATR,
			BollingerUpper:       r.BollingerUpper,
			BollingerLower:       r.BollingerLower,
		},
	}
}

// ParquetWriter writes one Parquet file per resolution into a directory.
type ParquetWriter struct {
	dir    string
	logger *logger.Logger
}

func NewParquetWriter(dir string, log *logger.Logger) *ParquetWriter {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &ParquetWriter{dir: dir, logger: log}
}

// Path returns the file a resolution is written to.
func (w *ParquetWriter) Path(resolution int) string {
	return filepath.Join(w.dir, fmt.Sprintf("bars_%d.parquet", resolution))
}

// Write stores bars under resolution and returns the file path. An existing
// file is replaced.
func (w *ParquetWriter) Write(resolution int, bars []types.Bar) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to create output directory %s", w.dir)
	}

	rows := make([]Row, len(bars))
	for i, bar := range bars {
		rows[i] = ToRow(resolution, bar)
	}

	path := w.Path(resolution)
	if err := parquet.WriteFile(path, rows); err != nil {
		return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to write %s", path)
	}

	w.logger.Debug("Wrote enriched bars", zap.String("path", path), zap.Int("resolution", resolution), zap.Int("bars", len(bars)))

	return path, nil
}

// Read loads the rows of a file written by Write.
func Read(path string) ([]types.Bar, error) {
	rows, err := parquet.ReadFile[Row](path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to read %s", path)
	}

	bars := make([]types.Bar, len(rows))
	for i, row := range rows {
		bars[i] = row.Bar()
	}

	return bars, nil
}
