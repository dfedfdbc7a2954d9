// Package extract implements the Extractor interface.
// It isolates one fragment of a parsed page by:
//  1. Walking the tree once, stopping at the first node the query matches
//  2. Serializing that subtree verbatim (attributes and nested tags kept)
package extract

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/gaurav-prasanna/finpipe/core"
)

// QueryExtractor selects fragments by PathQuery. It holds no state.
type QueryExtractor struct{}

// New creates a QueryExtractor.
func New() *QueryExtractor {
	return &QueryExtractor{}
}

// Extract returns the first node matching q serialized to HTML. The document
// is never mutated.
func (e *QueryExtractor) Extract(doc *goquery.Document, q core.PathQuery) core.Fragment {
	node := First(doc, q)
	if node == nil {
		return core.Fragment{}
	}

	html, err := goquery.OuterHtml(node)
	if err != nil {
		return core.Fragment{}
	}
	return core.Fragment{Found: true, HTML: html}
}

// First returns the first match of q as a single-node selection, or nil.
func First(doc *goquery.Document, q core.PathQuery) *goquery.Selection {
	if doc == nil || len(doc.Nodes) == 0 || q.Matcher() == nil {
		return nil
	}
	n := cascadia.Query(doc.Nodes[0], q.Matcher())
	if n == nil {
		return nil
	}
	return doc.FindNodes(n)
}

// All returns every match of q in document order.
func All(doc *goquery.Document, q core.PathQuery) *goquery.Selection {
	if doc == nil || len(doc.Nodes) == 0 || q.Matcher() == nil {
		return &goquery.Selection{}
	}
	return doc.FindNodes(cascadia.QueryAll(doc.Nodes[0], q.Matcher())...)
}
