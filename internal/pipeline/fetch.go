package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"go-sheet-dashboard/internal/config"
	"go-sheet-dashboard/internal/logger"
)

// Fetch errors
var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrBodyTooLarge         = errors.New("response body exceeds limit")
	errTransport            = errors.New("transport failure")
)

// FetchError reports a failure reaching the data source.
type FetchError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher retrieves the raw source text.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
	Source() string
}

// NewFetcher returns a file or HTTP fetcher for the configured source.
func NewFetcher(src config.SourceConfig, cfg config.FetchConfig, log *logger.Logger) Fetcher {
	if src.IsLocalFile() {
		return NewFileFetcher(src.File, cfg.MaxBodyBytes)
	}
	return NewHTTPFetcher(src.URL, cfg, log)
}

// HTTPFetcher downloads the CSV export with config-driven retry logic.
type HTTPFetcher struct {
	client *http.Client
	url    string
	cfg    config.FetchConfig
	log    *logger.Logger
}

// NewHTTPFetcher creates an HTTP fetcher for url.
func NewHTTPFetcher(url string, cfg config.FetchConfig, log *logger.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: cfg.GetTimeout()},
		url:    url,
		cfg:    cfg,
		log:    log,
	}
}

// WithClient replaces the HTTP client.
func (f *HTTPFetcher) WithClient(c *http.Client) *HTTPFetcher {
	f.client = c
	return f
}

func (f *HTTPFetcher) Source() string { return f.url }

// Fetch GETs the source. Retryable statuses and transport failures are
// retried per cfg.Retry; everything else fails on the first attempt.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]byte, error) {
	var body []byte

	err := retryOperation(ctx, f.cfg.Retry, f.log, func(attempt int) error {
		b, err := f.fetchOnce(ctx)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, http.NoBody)
	if err != nil {
		return nil, permanent(&FetchError{Source: f.url, Err: fmt.Errorf("failed to create request: %w", err)})
	}

	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}
	req.Header.Set("Accept", "text/csv,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, permanent(&FetchError{Source: f.url, Err: ctx.Err()})
		}
		return nil, &FetchError{Source: f.url, Err: fmt.Errorf("%w: %w", errTransport, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{
			Source:     f.url,
			StatusCode: resp.StatusCode,
			Err:        ErrUnexpectedStatusCode,
		}
	}

	body, err := readLimited(resp.Body, f.cfg.MaxBodyBytes)
	if err != nil {
		return nil, &FetchError{Source: f.url, Err: err}
	}

	return body, nil
}

// FileFetcher reads the CSV from a local path.
type FileFetcher struct {
	path     string
	maxBytes int64
}

// NewFileFetcher creates a fetcher for a local CSV file.
func NewFileFetcher(path string, maxBytes int64) *FileFetcher {
	return &FileFetcher{path: path, maxBytes: maxBytes}
}

func (f *FileFetcher) Source() string { return f.path }

// Fetch reads the whole file.
func (f *FileFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Source: f.path, Err: err}
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, &FetchError{Source: f.path, Err: fmt.Errorf("failed to open CSV file: %w", err)}
	}
	defer file.Close()

	body, err := readLimited(file, f.maxBytes)
	if err != nil {
		return nil, &FetchError{Source: f.path, Err: err}
	}

	return body, nil
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}

	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: %d bytes", ErrBodyTooLarge, limit)
	}

	return body, nil
}
