// Package source fetches raw price text for the parser.
package source

import (
	"context"
	"os"

	"github.com/rxtech-lab/argo-forecast/pkg/errors"
)

// Source produces the raw bytes of a daily price series.
type Source interface {
	// Fetch returns the raw content. Implementations never return an empty slice without an error.
	Fetch(ctx context.Context) ([]byte, error)
	// Name identifies the source in logs and reports.
	Name() string
}

// FileSource reads a local file.
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Fetch implements Source.
func (f *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeSourceUnavailable, err, "failed to read %s", f.Path)
	}

	if len(data) == 0 {
		return nil, errors.Newf(errors.ErrCodeSourceEmpty, "%s is empty", f.Path)
	}

	return data, nil
}

// Name implements Source.
func (f *FileSource) Name() string {
	return f.Path
}

// TextSource serves text already held in memory.
type TextSource struct {
	Label string
	Text  string
}

// Fetch implements Source.
func (t TextSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if t.Text == "" {
		return nil, errors.New(errors.ErrCodeSourceEmpty, "text source is empty")
	}

	return []byte(t.Text), nil
}

// Name implements Source.
func (t TextSource) Name() string {
	if t.Label == "" {
		return "text"
	}

	return t.Label
}
