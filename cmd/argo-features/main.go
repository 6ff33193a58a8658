package main

import (
	"context"
	"log"
	"os"

	"github.com/rxtech-lab/argo-features/internal/version"
	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "argo-features",
		Usage:   "Engineer candle features and score price and direction predictors",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config `FILE`; defaults are used when omitted",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log debug output",
			},
			&cli.StringFlag{
				Name:  "metrics-out",
				Usage: "Write Prometheus metrics in text format to `FILE` when the command finishes",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "evaluate",
				Usage: "Run agreement, walk-forward, backtest and lookback evaluation per resolution",
				Flags: []cli.Flag{
					dataFlag(),
					&cli.IntFlag{
						Name:  "window",
						Usage: "Walk-forward training bars per fold (overrides the config)",
					},
					&cli.IntFlag{
						Name:  "test",
						Usage: "Walk-forward test bars per fold (overrides the config)",
					},
					&cli.StringFlag{
						Name:  "json",
						Usage: "Also write the full report as JSON to `FILE`",
					},
				},
				Action: evaluateAction,
			},
			{
				Name:   "patterns",
				Usage:  "Rank co-occurring candlestick patterns by historical hit rate",
				Flags:  []cli.Flag{dataFlag()},
				Action: patternsAction,
			},
			{
				Name:   "signal",
				Usage:  "Emit directional signals for the most recent bar of each signal resolution",
				Flags:  []cli.Flag{dataFlag()},
				Action: signalAction,
			},
			{
				Name:  "export",
				Usage: "Write enriched bars of every resolution as Parquet",
				Flags: []cli.Flag{
					dataFlag(),
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output `DIR`",
						Value:   "features",
					},
				},
				Action: exportAction,
			},
			{
				Name:  "schema",
				Usage: "Write the config JSON schema and a sample config",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output `DIR`",
						Value:   "config",
					},
				},
				Action: schemaAction,
			},
		},
	}
}

func dataFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "data",
		Aliases:  []string{"d"},
		Usage:    "Raw 1-unit bars as CSV or Parquet `FILE` (columns time, open, high, low, close, volume)",
		Required: true,
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
