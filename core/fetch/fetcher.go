// Package fetch implements the Fetcher interface.
// It performs HTTP GET requests with fixed browser-like headers and resolves
// the text encoding before parsing. Failures are returned as a non-success
// FetchResult, never as a panic or an error the caller must propagate.
package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/finpipe/core"
	"go.uber.org/zap"
	"resty.dev/v3"
)

const (
	defaultTimeout = 15 * time.Second

	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	acceptHTML     = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguage = "ko-KR,ko;q=0.8,en-US;q=0.5,en;q=0.3"
)

// HTTPFetcher fetches and decodes web pages via HTTP.
type HTTPFetcher struct {
	client  *resty.Client
	timeout time.Duration
	log     *zap.Logger
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithTimeout bounds every fetch. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithLogger sets the logger used for absorbed failures.
func WithLogger(l *zap.Logger) Option {
	return func(f *HTTPFetcher) {
		if l != nil {
			f.log = l
		}
	}
}

// New creates an HTTPFetcher with a sensible timeout.
func New(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		timeout: defaultTimeout,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = resty.New().
		SetTimeout(f.timeout).
		SetHeaders(map[string]string{
			"User-Agent":      userAgent,
			"Accept":          acceptHTML,
			"Accept-Language": acceptLanguage,
		})
	return f
}

// Fetch retrieves url, decodes it according to mode and parses the result.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, mode core.EncodingMode) *core.FetchResult {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		fe := core.NewTransportError(url, err)
		f.log.Warn("fetch failed", zap.String("url", url), zap.String("type", string(fe.Type)), zap.Error(err))
		return &core.FetchResult{URL: url, Status: core.StatusTransportError, Err: fe}
	}

	if !resp.IsSuccess() {
		fe := core.ClassifyStatus(url, resp.StatusCode())
		f.log.Warn("fetch returned non-success status", zap.String("url", url), zap.Int("status", resp.StatusCode()))
		return &core.FetchResult{
			URL:        url,
			Status:     core.StatusHTTPError,
			StatusCode: resp.StatusCode(),
			Err:        fe,
		}
	}

	text, used, encErr := decodeBody(url, resp.Bytes(), resp.Header().Get("Content-Type"), mode)
	if encErr != nil {
		f.log.Warn("decoding fell back to utf-8", zap.String("url", url), zap.Error(encErr))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		fe := core.NewEncodingError(url, used, err)
		f.log.Warn("parsing HTML failed", zap.String("url", url), zap.Error(err))
		return &core.FetchResult{
			URL:        url,
			Status:     core.StatusTransportError,
			StatusCode: resp.StatusCode(),
			Encoding:   used,
			Err:        fe,
		}
	}

	return &core.FetchResult{
		URL:        url,
		Status:     core.StatusSuccess,
		StatusCode: resp.StatusCode(),
		Document:   doc,
		Body:       text,
		Encoding:   used,
	}
}
