package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rxtech-lab/argo-forecast/internal/config"
	"github.com/rxtech-lab/argo-forecast/internal/forecast"
	"github.com/rxtech-lab/argo-forecast/internal/logger"
	"github.com/rxtech-lab/argo-forecast/internal/metrics"
	"github.com/rxtech-lab/argo-forecast/internal/pipeline"
	"github.com/rxtech-lab/argo-forecast/internal/report"
	"github.com/rxtech-lab/argo-forecast/internal/store"
	"github.com/rxtech-lab/argo-forecast/internal/types"
	"github.com/rxtech-lab/argo-forecast/pkg/errors"
	"github.com/rxtech-lab/argo-forecast/pkg/source"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	schemaFileName = "forecast-config.json"
	sampleFileName = "forecast-config.yaml"
)

// run is the state shared by the analysis commands.
type run struct {
	config   config.PipelineConfig
	logger   *logger.Logger
	recorder *metrics.Recorder
	session  *pipeline.Session
	out      io.Writer
}

func newRun(ctx context.Context, cmd *cli.Command) (*run, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if input := cmd.String("input"); input != "" {
		cfg.Source.Path = input
	}

	if urls := cmd.StringSlice("url"); len(urls) > 0 {
		cfg.Source.Mirrors = urls
	}

	log, err := logger.NewLoggerWithConfig(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	recorder := metrics.NewRecorder()
	session := pipeline.NewSession(cfg, pipeline.WithLogger(log), pipeline.WithMetrics(recorder))

	r := &run{
		config:   cfg,
		logger:   log,
		recorder: recorder,
		session:  session,
		out:      cmd.Root().Writer,
	}

	if r.out == nil {
		r.out = os.Stdout
	}

	if err := r.load(ctx); err != nil {
		return nil, err
	}

	if path := cmd.String("archive"); path != "" {
		if err := store.Archive(path, cfg.Symbol, session.Observations(), log); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *run) load(ctx context.Context) error {
	src := r.config.Source

	switch {
	case strings.EqualFold(filepath.Ext(src.Path), ".parquet"):
		reader, err := store.OpenReader(src.Path, r.logger)
		if err != nil {
			return err
		}
		defer reader.Close()

		observations, err := reader.ReadObservations(r.config.Symbol, optional.None[time.Time](), optional.None[time.Time]())
		if err != nil {
			return err
		}

		return r.session.LoadObservations(observations)
	case src.Path != "":
		return r.session.Load(ctx, source.NewFileSource(src.Path))
	case len(src.Mirrors) > 0:
		return r.session.Load(ctx, source.NewHTTPSource(src.Mirrors, source.HTTPOptions{
			Timeout:           src.Timeout,
			RequestsPerSecond: src.RequestsPerSecond,
			MaxElapsed:        src.MaxElapsed,
		}, r.logger))
	default:
		return errors.New(errors.ErrCodeInvalidParameter, "no input: pass --input, --url or set source in the config")
	}
}

func (r *run) report() report.Report {
	return report.Report{
		Symbol:      r.config.Symbol,
		Source:      r.session.SourceName(),
		GeneratedAt: time.Now().UTC(),
		Summary:     r.session.Summary(),
		Warnings:    r.session.Warnings(),
		Statistics:  r.session.Statistics().View(),
		Benchmark:   nil,
		Forecast:    nil,
	}
}

func (r *run) finish(cmd *cli.Command, rep report.Report) error {
	defer r.logger.Sync()

	if path := cmd.String("output"); path != "" {
		if err := report.Write(path, rep); err != nil {
			return err
		}

		r.logger.Info("Report written", zap.String("path", path))
	}

	if path := cmd.String("metrics"); path != "" {
		if err := prometheus.WriteToTextfile(path, r.recorder.Registry()); err != nil {
			return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to write metrics to %s", path)
		}
	}

	return nil
}

// trainedModel prepares the dataset and fits both the baseline and the window-mean model.
func (r *run) trainedModel(ctx context.Context) (forecast.SequenceModel, error) {
	if _, err := r.session.Prepare(); err != nil {
		return nil, err
	}

	if err := r.session.TrainBaseline(); err != nil {
		return nil, err
	}

	model := forecast.NewWindowMean(r.config.ModelWeight)
	if err := r.session.TrainModel(ctx, model); err != nil {
		return nil, err
	}

	return model, nil
}

func statsAction(ctx context.Context, cmd *cli.Command) error {
	r, err := newRun(ctx, cmd)
	if err != nil {
		return err
	}

	rep := r.report()

	fmt.Fprintf(r.out, "%s: %d observations, %s, %s\n",
		rep.Symbol, rep.Summary.Count, rep.Summary.DateRange(), rep.Summary.PriceRange())

	if len(rep.Warnings) > 0 {
		fmt.Fprintf(r.out, "skipped %d malformed row(s)\n", len(rep.Warnings))
	}

	if err := printYAML(r.out, rep.Statistics); err != nil {
		return err
	}

	return r.finish(cmd, rep)
}

func benchmarkAction(ctx context.Context, cmd *cli.Command) error {
	r, err := newRun(ctx, cmd)
	if err != nil {
		return err
	}

	model, err := r.trainedModel(ctx)
	if err != nil {
		return err
	}

	summary, err := r.session.Benchmark(ctx, model)
	if err != nil {
		return err
	}

	self := r.session.SelfEvaluate()

	if err := printYAML(r.out, summary); err != nil {
		return err
	}

	fmt.Fprintf(r.out, "random walk self evaluation: rmse %.4f, mae %.4f, direction %.1f%%\n",
		self.RMSE, self.MAE, self.DirectionAccuracy)
	fmt.Fprintln(r.out, summary.Comparison.Verdict())

	rep := r.report()
	rep.Benchmark = &summary

	return r.finish(cmd, rep)
}

func predictAction(ctx context.Context, cmd *cli.Command) error {
	r, err := newRun(ctx, cmd)
	if err != nil {
		return err
	}

	model, err := r.trainedModel(ctx)
	if err != nil {
		return err
	}

	result, err := r.session.Forecast(ctx, model)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "%s last close $%.2f\n", r.config.Symbol, result.LastPrice)

	for i, projection := range result.Projections {
		fmt.Fprintf(r.out, "Day +%d  %+.2f%%  $%.2f  (%+.2f%% cumulative, random walk %+.2f%%)\n",
			projection.Day, projection.Return*100, projection.Price, projection.Change*100, baselineAt(result, i)*100)
	}

	rep := r.report()
	rep.Forecast = &result

	return r.finish(cmd, rep)
}

func baselineAt(result types.Forecast, i int) float64 {
	if i < len(result.Baseline) {
		return result.Baseline[i]
	}

	return 0
}

func schemaAction(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Default()

	schemaJSON, err := cfg.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	dir := cmd.String("dir")
	if dir == "" {
		_, err := fmt.Fprintln(cmd.Root().Writer, schemaJSON)

		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, schemaFileName), []byte(schemaJSON), 0644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	samplePath := filepath.Join(dir, sampleFileName)
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		yamlBytes, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal sample config: %w", err)
		}

		yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaFileName+"\n"), yamlBytes...)
		if err := os.WriteFile(samplePath, yamlBytes, 0644); err != nil {
			return fmt.Errorf("failed to write sample config: %w", err)
		}
	}

	return nil
}

func printYAML(w io.Writer, value any) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
