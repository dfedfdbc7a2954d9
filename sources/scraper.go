package sources

import (
	"context"

	"github.com/gaurav-prasanna/finpipe/core"
	"go.uber.org/zap"
)

// Section addresses one fragment of one page.
type Section struct {
	URL   string
	Mode  core.EncodingMode
	Query core.PathQuery
	// Clean post-processes the markdown; it is skipped for empty output.
	Clean func(string) string
}

// Scraper runs the shared pipeline. Parsers embed it.
type Scraper struct {
	tk  Toolkit
	log *zap.Logger
}

// NewScraper creates a Scraper for the named source.
func NewScraper(id ID, tk Toolkit) Scraper {
	tk = tk.withDefaults()
	return Scraper{tk: tk, log: tk.Logger.With(zap.String("source", string(id)))}
}

// Toolkit returns the toolkit the scraper was built with.
func (s Scraper) Toolkit() Toolkit { return s.tk }

// Log returns the source-scoped logger.
func (s Scraper) Log() *zap.Logger { return s.log }

// Page fetches url. The result is nil when the page is unavailable.
func (s Scraper) Page(ctx context.Context, url string, mode core.EncodingMode) *core.FetchResult {
	res := s.tk.Fetcher.Fetch(ctx, url, mode)
	if res == nil {
		return nil
	}
	if !res.OK() {
		s.log.Debug("page unavailable", zap.String("url", url), zap.Stringer("status", res.Status), zap.Error(res.Err))
		return nil
	}
	return res
}

// Markdown extracts q from a fetched page and normalizes it.
// A nil page, a missing node or a conversion failure all yield "".
func (s Scraper) Markdown(page *core.FetchResult, q core.PathQuery) string {
	if page == nil {
		return ""
	}
	frag := s.tk.Extractor.Extract(page.Document, q)
	if !frag.Found {
		s.log.Debug("structure mismatch", zap.Error(core.NewStructureError(page.URL, q)))
		return ""
	}
	md, err := s.tk.Normalizer.Normalize(frag.HTML)
	if err != nil {
		s.log.Warn("normalize failed", zap.String("url", page.URL), zap.Error(err))
		return ""
	}
	return md
}

// Section fetches one page and returns the cleaned markdown of one fragment.
func (s Scraper) Section(ctx context.Context, sec Section) string {
	md := s.Markdown(s.Page(ctx, sec.URL, sec.Mode), sec.Query)
	if md == "" || sec.Clean == nil {
		return md
	}
	return sec.Clean(md)
}

// Sections fetches url once and extracts each query from the same document.
// The result has one entry per query, "" where nothing matched.
func (s Scraper) Sections(ctx context.Context, url string, mode core.EncodingMode, queries ...core.PathQuery) []string {
	page := s.Page(ctx, url, mode)
	out := make([]string, len(queries))
	for i, q := range queries {
		out[i] = s.Markdown(page, q)
	}
	return out
}
