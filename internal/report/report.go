// Package report writes pipeline results as YAML, JSON or an Excel workbook.
package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-forecast/internal/types"
	"github.com/rxtech-lab/argo-forecast/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Report is everything one pipeline run produced.
type Report struct {
	Symbol      string                  `yaml:"symbol" json:"symbol"`
	Source      string                  `yaml:"source" json:"source"`
	GeneratedAt time.Time               `yaml:"generated_at" json:"generated_at"`
	Summary     types.DataSummary       `yaml:"summary" json:"summary"`
	Warnings    []types.ParseWarning    `yaml:"warnings,omitempty" json:"warnings,omitempty"`
	Statistics  types.StatisticsView    `yaml:"statistics" json:"statistics"`
	Benchmark   *types.BenchmarkSummary `yaml:"benchmark,omitempty" json:"benchmark,omitempty"`
	Forecast    *types.Forecast         `yaml:"forecast,omitempty" json:"forecast,omitempty"`
}

// Format is an output encoding.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatExcel Format = "xlsx"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatExcel, nil
	default:
		return "", errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported report format %q", filepath.Ext(path))
	}
}

// Encode renders the report as YAML or JSON.
func Encode(report Report, format Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(report)
	case FormatJSON:
		data, err = json.MarshalIndent(report, "", "  ")
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedFormat, "cannot encode report as %q", format)
	}

	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to encode report", err)
	}

	return data, nil
}

// Write saves the report to path in the format named by its extension.
func Write(path string, report Report) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to create %s", dir)
		}
	}

	if format == FormatExcel {
		return writeWorkbook(path, report)
	}

	data, err := Encode(report, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to write %s", path)
	}

	return nil
}
