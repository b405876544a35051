package main

import (
	"context"
	"log"
	"os"

	"github.com/rxtech-lab/argo-forecast/internal/config"
	"github.com/rxtech-lab/argo-forecast/internal/version"
	"github.com/urfave/cli/v3"
)

func sharedFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the pipeline config `FILE` (YAML)",
		},
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "Local price series: CSV text or a .parquet archive",
		},
		&cli.StringSliceFlag{
			Name:    "url",
			Aliases: []string{"u"},
			Usage:   "Mirror `URL` to download the series from, tried in order (repeatable)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write the report to `FILE` (.yaml, .yml, .json or .xlsx)",
		},
		&cli.StringFlag{
			Name:  "archive",
			Usage: "Archive the loaded observations to a Parquet `FILE`",
		},
		&cli.StringFlag{
			Name:  "metrics",
			Usage: "Write pipeline metrics in Prometheus text format to `FILE`",
		},
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "forecast",
		Usage:   "Analyze a daily price series and benchmark forecasts against a random walk",
		Version: version.GetVersion(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, config.LoadDotEnv(".env")
		},
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Print return statistics of the series",
				Flags:  sharedFlags(),
				Action: statsAction,
			},
			{
				Name:   "benchmark",
				Usage:  "Benchmark the window-mean model against the random walk baseline",
				Flags:  sharedFlags(),
				Action: benchmarkAction,
			},
			{
				Name:   "predict",
				Usage:  "Forecast the next horizon of returns and prices",
				Flags:  sharedFlags(),
				Action: predictAction,
			},
			{
				Name:  "schema",
				Usage: "Generate the config JSON schema and a sample config",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"d"},
						Usage:   "Output `DIR`; prints the schema to stdout when empty",
					},
				},
				Action: schemaAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
