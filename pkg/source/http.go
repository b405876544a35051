package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rxtech-lab/argo-forecast/internal/logger"
	"github.com/rxtech-lab/argo-forecast/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPOptions configures an HTTPSource.
type HTTPOptions struct {
	Timeout           time.Duration
	RequestsPerSecond float64
	MaxElapsed        time.Duration
}

// StatusError is returned for a non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// HTTPSource downloads from a list of mirrors in order and returns the first non-empty body.
type HTTPSource struct {
	mirrors    []string
	client     *http.Client
	limiter    *rate.Limiter
	maxElapsed time.Duration
	logger     *logger.Logger
}

// NewHTTPSource creates an HTTPSource. Zero options fall back to 30s timeout,
// 2 requests per second and a one minute retry budget per mirror.
func NewHTTPSource(mirrors []string, opts HTTPOptions, log *logger.Logger) *HTTPSource {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}

	if opts.MaxElapsed <= 0 {
		opts.MaxElapsed = time.Minute
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &HTTPSource{
		mirrors:    mirrors,
		client:     &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		maxElapsed: opts.MaxElapsed,
		logger:     log,
	}
}

// Name implements Source.
func (h *HTTPSource) Name() string {
	return strings.Join(h.mirrors, ",")
}

// Fetch implements Source.
func (h *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	if len(h.mirrors) == 0 {
		return nil, errors.New(errors.ErrCodeSourceUnavailable, "no mirrors configured")
	}

	var lastErr error

	for _, mirror := range h.mirrors {
		body, err := h.fetchMirror(ctx, mirror)
		if err == nil {
			h.logger.Debug("Fetched price data", zap.String("url", mirror), zap.Int("bytes", len(body)))

			return body, nil
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		h.logger.Warn("Mirror failed", zap.String("url", mirror), zap.Error(err))
		lastErr = err
	}

	if errors.HasCode(lastErr, errors.ErrCodeSourceEmpty) {
		return nil, errors.Wrap(errors.ErrCodeSourceEmpty, "every mirror returned an empty body", lastErr)
	}

	return nil, errors.Wrapf(errors.ErrCodeSourceUnavailable, lastErr, "all %d mirrors failed", len(h.mirrors))
}

func (h *HTTPSource) fetchMirror(ctx context.Context, mirror string) ([]byte, error) {
	var body []byte

	operation := func() error {
		if err := h.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, mirror, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := h.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			statusErr := &StatusError{URL: mirror, StatusCode: resp.StatusCode}
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(statusErr)
			}

			return statusErr
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if len(strings.TrimSpace(string(data))) == 0 {
			return backoff.Permanent(errors.Newf(errors.ErrCodeSourceEmpty, "%s returned an empty body", mirror))
		}

		body = data

		return nil
	}

	strategy := backoff.NewExponentialBackOff()
	strategy.MaxElapsedTime = h.maxElapsed

	if err := backoff.Retry(operation, backoff.WithContext(strategy, ctx)); err != nil {
		return nil, err
	}

	return body, nil
}
