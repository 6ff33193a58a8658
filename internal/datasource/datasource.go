package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-features/internal/types"
)

// Format is the on-disk layout of a raw bar file.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// DataSource loads raw 1-unit OHLCV bars. Bars are always yielded in
// ascending time order and carry no labels or features.
type DataSource interface {
	// Initialize points the data source at a CSV or Parquet file
	Initialize(path string) error
	// ReadAll reads the bars inside the optional time range and yields them to the caller
	ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.Bar, error) bool)
	// Count returns the number of bars inside the optional time range
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close closes the data source and releases any resources
	Close() error
}

// Collect drains ReadAll into a slice.
func Collect(ds DataSource, start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.Bar, error) {
	bars := []types.Bar{}

	for bar, err := range ds.ReadAll(start, end) {
		if err != nil {
			return nil, err
		}

		bars = append(bars, bar)
	}

	return bars, nil
}
