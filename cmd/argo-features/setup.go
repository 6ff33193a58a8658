package main

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-features/internal/config"
	"github.com/rxtech-lab/argo-features/internal/datasource"
	"github.com/rxtech-lab/argo-features/internal/logger"
	"github.com/rxtech-lab/argo-features/internal/metrics"
	"github.com/rxtech-lab/argo-features/internal/pipeline"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// runEnv is what every data command needs: config, logger and metrics.
type runEnv struct {
	cfg     config.Config
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func newRunEnv(cmd *cli.Command) (*runEnv, error) {
	cfg := config.Default()

	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	level := zapcore.WarnLevel
	if cmd.Bool("verbose") {
		level = zapcore.DebugLevel
	}

	log, err := logger.NewLoggerWithLevel(level, "stderr")
	if err != nil {
		return nil, err
	}

	return &runEnv{cfg: cfg, logger: log, metrics: metrics.NewMetrics()}, nil
}

// loadBars reads every raw bar of the data file.
func (env *runEnv) loadBars(path string) ([]types.Bar, error) {
	ds, err := datasource.NewDataSource(":memory:", env.logger)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	if err := ds.Initialize(path); err != nil {
		return nil, err
	}

	bars, err := datasource.Collect(ds, optional.None[time.Time](), optional.None[time.Time]())
	if err != nil {
		return nil, err
	}

	env.logger.Debug("Loaded raw bars", zap.String("path", path), zap.Int("bars", len(bars)))

	return bars, nil
}

// enrich loads the data file and runs the pipeline over it.
func (env *runEnv) enrich(ctx context.Context, path string) ([]pipeline.Result, error) {
	raw, err := env.loadBars(path)
	if err != nil {
		return nil, err
	}

	return pipeline.NewRunner(env.cfg, env.logger, env.metrics).Run(ctx, raw)
}

// finish flushes the logger and writes the metrics textfile when requested.
func (env *runEnv) finish(cmd *cli.Command) error {
	_ = env.logger.Sync()

	if path := cmd.String("metrics-out"); path != "" {
		return env.metrics.WriteTextfile(path)
	}

	return nil
}
