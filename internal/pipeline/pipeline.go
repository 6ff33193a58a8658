// Package pipeline turns raw bars into enriched bars at every configured
// resolution: aggregation, pattern detection, then the indicator engine.
package pipeline

import (
	"context"
	"slices"
	"time"

	"github.com/rxtech-lab/argo-features/internal/aggregator"
	"github.com/rxtech-lab/argo-features/internal/config"
	"github.com/rxtech-lab/argo-features/internal/indicator"
	"github.com/rxtech-lab/argo-features/internal/logger"
	"github.com/rxtech-lab/argo-features/internal/metrics"
	"github.com/rxtech-lab/argo-features/internal/pattern"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result holds the enriched bars of one resolution.
type Result struct {
	Resolution int
	Bars       []types.Bar
}

// Find returns the result of resolution.
func Find(results []Result, resolution int) (Result, bool) {
	for _, r := range results {
		if r.Resolution == resolution {
			return r, true
		}
	}

	return Result{}, false
}

// Runner enriches raw bars at every configured resolution.
type Runner struct {
	cfg     config.Config
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewRunner creates a runner. metrics may be nil.
func NewRunner(cfg config.Config, log *logger.Logger, m *metrics.Metrics) *Runner {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Runner{cfg: cfg, logger: log, metrics: m}
}

// Run enriches raw at every configured resolution concurrently. Results are
// sorted by resolution; duplicate resolutions are processed once.
func (r *Runner) Run(ctx context.Context, raw []types.Bar) ([]Result, error) {
	resolutions := slices.Clone(r.cfg.Resolutions)
	slices.Sort(resolutions)
	resolutions = slices.Compact(resolutions)

	results := make([]Result, len(resolutions))

	g, gctx := errgroup.WithContext(ctx)

	for i, resolution := range resolutions {
		g.Go(func() error {
			result, err := r.RunResolution(gctx, raw, resolution)
			if err != nil {
				return err
			}

			results[i] = result

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// RunResolution enriches raw at a single resolution. raw is never modified.
func (r *Runner) RunResolution(ctx context.Context, raw []types.Bar, resolution int) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeEvaluationCanceled, "pipeline canceled", err)
	}

	start := time.Now()

	bars, err := aggregator.Aggregate(raw, resolution)
	if err != nil {
		return Result{}, err
	}

	r.metrics.ObserveStage(metrics.StageAggregate, time.Since(start))

	if len(bars) == 0 {
		if r.cfg.Strict {
			return Result{}, errors.NewInsufficientDataErrorf(2*resolution, len(raw), "aggregate",
				"resolution %d needs at least %d raw bars, got %d", resolution, 2*resolution, len(raw))
		}

		r.logger.Debug("Resolution produced no bars", zap.Int("resolution", resolution), zap.Int("raw", len(raw)))

		return Result{Resolution: resolution, Bars: []types.Bar{}}, nil
	}

	start = time.Now()
	bars = pattern.Detect(bars)
	r.metrics.ObserveStage(metrics.StagePatterns, time.Since(start))

	engine, err := NewIndicatorEngine(r.cfg.Indicators)
	if err != nil {
		return Result{}, err
	}

	start = time.Now()

	bars, err = engine.Apply(bars)
	if err != nil {
		return Result{}, err
	}

	r.metrics.ObserveStage(metrics.StageIndicators, time.Since(start))
	r.metrics.AddBars(resolution, len(bars))

	r.logger.Debug("Enriched resolution",
		zap.Int("resolution", resolution),
		zap.Int("bars", len(bars)),
	)

	return Result{Resolution: resolution, Bars: bars}, nil
}

// NewIndicatorEngine builds a fresh engine with every indicator configured
// from cfg.
func NewIndicatorEngine(cfg config.IndicatorConfig) (*indicator.Engine, error) {
	registry := indicator.NewDefaultRegistry()

	params := map[types.IndicatorType][]any{
		types.IndicatorTypeSupportResistance: {cfg.SupportResistance.Lookback, cfg.SupportResistance.PivotsCount},
		types.IndicatorTypeSMA:               {cfg.SMAPeriod},
		types.IndicatorTypeEMA:               {cfg.EMAPeriod},
		types.IndicatorTypeRSI:               {cfg.RSIPeriod},
		types.IndicatorTypeATR:               {cfg.ATRPeriod},
		types.IndicatorTypeBollingerBands:    {cfg.Bollinger.Period, cfg.Bollinger.StdDev},
	}

	for _, name := range types.AllIndicatorTypes {
		if err := registry.ConfigureIndicator(name, params[name]...); err != nil {
			return nil, err
		}
	}

	return indicator.NewEngineFromRegistry(registry)
}
