// Package fnguide reads company reports from FnGuide's company pages.
package fnguide

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/gaurav-prasanna/finpipe/core/urls"
	"github.com/gaurav-prasanna/finpipe/sources"
)

// Report selects one FnGuide company page.
type Report int

const (
	Snapshot Report = iota
	Overview
	Financials
	Ratios
	Indicators
	Consensus
	Ownership
	Industry
	Competitors
	Disclosures
	Earnings
)

// Reports lists every report kind.
func Reports() []Report {
	return []Report{Snapshot, Overview, Financials, Ratios, Indicators, Consensus, Ownership, Industry, Competitors, Disclosures, Earnings}
}

func (r Report) String() string {
	switch r {
	case Snapshot:
		return "snapshot"
	case Overview:
		return "overview"
	case Financials:
		return "financials"
	case Ratios:
		return "ratios"
	case Indicators:
		return "indicators"
	case Consensus:
		return "consensus"
	case Ownership:
		return "ownership"
	case Industry:
		return "industry"
	case Competitors:
		return "competitors"
	case Disclosures:
		return "disclosures"
	case Earnings:
		return "earnings"
	default:
		return fmt.Sprintf("report(%d)", int(r))
	}
}

var (
	compBody       = core.MustQuery("#compBody")
	disclosureBody = core.MustQuery("#compBody > div:nth-of-type(2)")

	scriptLinks = regexp.MustCompile(`\(javascript:[^)]*\)`)
	aspLinks    = regexp.MustCompile(`\([^)]*\.asp\?[^)]*\)`)
)

// page maps a report to its ASP page and fragment.
func page(r Report) (string, core.PathQuery, bool) {
	switch r {
	case Snapshot:
		return "SVD_Main.asp", compBody, true
	case Overview:
		return "SVD_Corp.asp", compBody, true
	case Financials:
		return "SVD_Finance.asp", compBody, true
	case Ratios:
		return "SVD_FinanceRatio.asp", compBody, true
	case Indicators:
		return "SVD_Invest.asp", compBody, true
	case Consensus:
		return "SVD_Consensus.asp", compBody, true
	case Ownership:
		return "SVD_shareanalysis.asp", compBody, true
	case Industry:
		return "SVD_ujanal.asp", compBody, true
	case Competitors:
		return "SVD_Comparison.asp", compBody, true
	case Disclosures:
		return "SVD_Disclosure.asp", disclosureBody, true
	case Earnings:
		return "SVD_ProResultCorp.asp", compBody, true
	}
	return "", core.PathQuery{}, false
}

// Parser reads FnGuide reports.
type Parser struct {
	sources.Scraper
	base string
}

// New creates a Parser.
func New(tk sources.Toolkit) *Parser {
	return &Parser{
		Scraper: sources.NewScraper(sources.FnGuide, tk),
		base:    tk.Endpoints.FnGuide,
	}
}

// Source implements sources.Parser.
func (p *Parser) Source() sources.ID { return sources.FnGuide }

// Report returns one company report for ticker as markdown.
func (p *Parser) Report(ctx context.Context, r Report, ticker string) string {
	endpoint, q, ok := page(r)
	if !ok || ticker == "" {
		return ""
	}
	return p.Section(ctx, sources.Section{
		URL:   p.reportURL(endpoint, ticker),
		Mode:  core.AutoDetect,
		Query: q,
		Clean: Clean,
	})
}

func (p *Parser) reportURL(endpoint, ticker string) string {
	return urls.Join(p.base, endpoint) + "?pGB=1&gicode=A" + url.QueryEscape(ticker) +
		"&cID=&MenuYn=Y&ReportGB=&NewMenuID=101&stkGb=701"
}

// Clean drops script and ASP link targets, which carry no content.
func Clean(md string) string {
	md = scriptLinks.ReplaceAllString(md, "")
	return aspLinks.ReplaceAllString(md, "")
}
