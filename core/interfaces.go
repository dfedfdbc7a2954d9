// Package core defines the pipeline interfaces for finpipe.
// Each stage of the pipeline is a clean, testable interface:
// fetch → extract → normalize, with rendering at the edge.
package core

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// FetchStatus is the outcome class of a single fetch.
type FetchStatus int

const (
	StatusSuccess FetchStatus = iota
	StatusHTTPError
	StatusTransportError
)

func (s FetchStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusHTTPError:
		return "http_error"
	case StatusTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// FetchResult holds the decoded page and response metadata from a fetch.
// Document and Body are only set when Status is StatusSuccess.
type FetchResult struct {
	URL        string
	Status     FetchStatus
	StatusCode int
	Document   *goquery.Document
	Body       string
	Encoding   string
	Err        error
}

// OK reports whether the fetch produced a document.
func (r *FetchResult) OK() bool {
	return r != nil && r.Status == StatusSuccess && r.Document != nil
}

// EncodingMode selects how a response body is decoded.
// The zero value is AutoDetect.
type EncodingMode struct {
	legacy string
}

// AutoDetect trusts a plausible HTTP charset, otherwise sniffs the bytes,
// otherwise falls back to UTF-8.
var AutoDetect = EncodingMode{}

// LegacyEncoding decodes with the given charset label regardless of what the
// server declares. Undecodable bytes are dropped.
func LegacyEncoding(label string) EncodingMode {
	return EncodingMode{legacy: label}
}

// Legacy returns the forced charset label, or "" in auto-detect mode.
func (m EncodingMode) Legacy() string { return m.legacy }

// EUCKR is the charset Naver Finance serves without declaring it.
var EUCKR = LegacyEncoding("euc-kr")

// Fragment is a serialized subtree selected by a PathQuery.
type Fragment struct {
	Found bool
	HTML  string
}

// Market identifies where a ticker trades.
type Market string

const (
	MarketDomestic Market = "domestic"
	MarketOverseas Market = "overseas"
)

// TickerMatch is one security found by a ticker search.
type TickerMatch struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Market Market `json:"market"`
}

// OutputMeta describes where a rendered result came from.
type OutputMeta struct {
	Source    string `json:"source"`
	Operation string `json:"operation"`
	Param     string `json:"param,omitempty"`
	FetchedAt string `json:"fetched_at"` // ISO8601
}

// Output is the unit handed to a Renderer.
type Output struct {
	Meta     OutputMeta
	Markdown string
	Records  any
}

// Fetcher retrieves and decodes a page. It never returns nil; failures are
// reported through FetchResult.Status.
type Fetcher interface {
	Fetch(ctx context.Context, url string, mode EncodingMode) *FetchResult
}

// Extractor selects the first node matching a query and serializes it.
type Extractor interface {
	Extract(doc *goquery.Document, q PathQuery) Fragment
}

// Normalizer converts an HTML fragment into Markdown (the canonical format).
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts an Output into a final byte format.
type Renderer interface {
	Render(out Output) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
