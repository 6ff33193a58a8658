package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-features/internal/config"
	"github.com/rxtech-lab/argo-features/internal/evaluation"
	"github.com/rxtech-lab/argo-features/internal/pattern"
	"github.com/rxtech-lab/argo-features/internal/predictor/baseline"
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/internal/writer"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	schemaName       = "argo-features-config.json"
	sampleConfigName = "argo-features-config.yaml"
)

func evaluateAction(ctx context.Context, cmd *cli.Command) error {
	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}

	if cmd.IsSet("window") {
		env.cfg.Evaluation.WindowSize = int(cmd.Int("window"))
	}

	if cmd.IsSet("test") {
		env.cfg.Evaluation.TestSize = int(cmd.Int("test"))
	}

	if err := env.cfg.Validate(); err != nil {
		return err
	}

	results, err := env.enrich(ctx, cmd.String("data"))
	if err != nil {
		return err
	}

	totalFolds := 0
	for _, r := range results {
		totalFolds += evaluation.FoldCount(len(r.Bars), env.cfg.Evaluation.WindowSize, env.cfg.Evaluation.TestSize)
	}

	bar := progressbar.NewOptions(totalFolds,
		progressbar.OptionSetWriter(cmd.Root().ErrWriter),
		progressbar.OptionSetDescription("walk-forward folds"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	onFoldEnd := evaluation.OnFoldEndCallback(func(types.FoldResult) {
		_ = bar.Add(1)
	})

	evaluator := evaluation.NewEvaluator(env.cfg, env.logger, env.metrics)
	trainer := baseline.NewTrainer()

	report := types.Report{
		ID:          uuid.New().String(),
		Timestamp:   time.Now(),
		Resolutions: make([]types.ResolutionReport, 0, len(results)),
	}

	for _, r := range results {
		rr, err := evaluator.Evaluate(ctx, r.Resolution, r.Bars, trainer, evaluation.Callbacks{OnFoldEnd: &onFoldEnd})
		if err != nil {
			return err
		}

		report.Resolutions = append(report.Resolutions, rr)
	}

	_ = bar.Finish()

	fmt.Fprintln(cmd.Root().Writer, renderReport(report))

	if path := cmd.String("json"); path != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
	}

	return env.finish(cmd)
}

func patternsAction(ctx context.Context, cmd *cli.Command) error {
	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}

	results, err := env.enrich(ctx, cmd.String("data"))
	if err != nil {
		return err
	}

	for _, r := range results {
		stats, err := pattern.Mine(r.Bars, env.cfg.Mining)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.Root().Writer, renderPatterns(r.Resolution, stats))
	}

	return env.finish(cmd)
}

func signalAction(ctx context.Context, cmd *cli.Command) error {
	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}

	// only the signal resolutions are needed
	env.cfg.Resolutions = env.cfg.Signal.Resolutions

	results, err := env.enrich(ctx, cmd.String("data"))
	if err != nil {
		return err
	}

	evaluator := evaluation.NewEvaluator(env.cfg, env.logger, env.metrics)

	signals, err := evaluator.Signals(ctx, results, baseline.NewTrainer())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, renderSignals(signals))

	return env.finish(cmd)
}

func exportAction(ctx context.Context, cmd *cli.Command) error {
	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}

	results, err := env.enrich(ctx, cmd.String("data"))
	if err != nil {
		return err
	}

	w := writer.NewParquetWriter(cmd.String("out"), env.logger)

	for _, r := range results {
		path, err := w.Write(r.Resolution, r.Bars)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.Root().Writer, "%dm: %d bars -> %s\n", r.Resolution, len(r.Bars), path)
	}

	return env.finish(cmd)
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	cfg := config.Default()

	schemaJSON, err := cfg.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	dir := cmd.String("out")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	schemaPath := filepath.Join(dir, schemaName)
	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0o644); err != nil {
		return fmt.Errorf("failed to write schema to file: %w", err)
	}

	// an existing sample config is never overwritten
	samplePath := filepath.Join(dir, sampleConfigName)
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		yamlBytes, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal sample config to yaml: %w", err)
		}

		yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), yamlBytes...)
		if err := os.WriteFile(samplePath, yamlBytes, 0o644); err != nil {
			return fmt.Errorf("failed to write sample config to file: %w", err)
		}

		fmt.Fprintf(cmd.Root().Writer, "Sample config generated at %s\n", samplePath)
	}

	fmt.Fprintf(cmd.Root().Writer, "Schema generated at %s\n", schemaPath)

	return nil
}
