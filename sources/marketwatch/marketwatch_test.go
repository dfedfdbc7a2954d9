package marketwatch

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/finpipe/sources/sourcestest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func TestEarningsLinks(t *testing.T) {
	d := doc(t, `
<a href="/investing/stock/aapl/earnings">Apple earnings overview</a>
<a href="/story/apple-q3-earnings-call-transcript">Apple Q3 2024 earnings call transcript</a>
<a href="/story/other">Listen to the Apple earnings call live</a>
<a href="/earnings">Short</a>
<a href="/story/unrelated">Apple launches a new phone today</a>
<a href="javascript:void(0)">Earnings call replay for investors</a>
<a href="https://example.com/earnings-call/aapl">`+strings.Repeat("é", 90)+`</a>`)

	got := EarningsLinks(d, "https://www.marketwatch.com/investing/stock/aapl")

	require.Len(t, got, 4)
	assert.Equal(t, Link{Title: "Apple earnings overview", URL: "https://www.marketwatch.com/investing/stock/aapl/earnings"}, got[0])
	assert.Equal(t, "https://www.marketwatch.com/story/apple-q3-earnings-call-transcript", got[1].URL)
	assert.Equal(t, "https://www.marketwatch.com/story/other", got[2].URL)
	assert.Equal(t, "https://example.com/earnings-call/aapl", got[3].URL)
	assert.Equal(t, shownTitleLen, len([]rune(got[3].Title)))
}

func TestEarningsLinks_Cap(t *testing.T) {
	var b strings.Builder
	for range 12 {
		b.WriteString(`<a href="/x/earnings">Quarterly earnings recap</a>`)
	}

	got := EarningsLinks(doc(t, b.String()), "https://www.marketwatch.com/")

	assert.Len(t, got, maxEarningsLinks)
}

func TestParser_Collect(t *testing.T) {
	srv := sourcestest.NewServer(t)
	srv.Handle("/investing/stock/aapl", sourcestest.HTML(
		`<a href="/investing/stock/aapl/earnings">Apple earnings overview</a>`))
	p := New(srv.Toolkit())

	got := p.Collect(context.Background(), "AAPL")

	require.Len(t, got.Filings, len(forms))
	assert.Equal(t, Link{
		Title: "10-K Annual Report",
		URL:   "https://www.sec.gov/edgar/search/?r=el#/q=AAPL&forms=10-K",
	}, got.Filings[0])
	assert.Equal(t, "https://www.sec.gov/edgar/search/?r=el#/q=AAPL&forms=DEF%2014A", got.Filings[3].URL)
	require.Len(t, got.Earnings, 1)
	assert.Equal(t, srv.URL+"/investing/stock/aapl/earnings", got.Earnings[0].URL)
	assert.Equal(t, []Link{
		{Title: "SEC EDGAR search", URL: "https://www.sec.gov/edgar/search/?r=el#/q=AAPL"},
		{Title: "MarketWatch AAPL", URL: srv.URL + "/investing/stock/aapl"},
		{Title: "MarketWatch Earnings", URL: srv.URL + "/investing/stock/aapl/earnings"},
	}, got.Base)
}

func TestParser_Overseas_PageUnavailable(t *testing.T) {
	srv := sourcestest.NewServer(t)
	srv.Handle("/investing/stock/tsla", sourcestest.Status(http.StatusForbidden))
	p := New(srv.Toolkit())

	got := p.Overseas(context.Background(), "TSLA")

	assert.True(t, strings.HasPrefix(got, "# TSLA disclosures and earnings calls\n"))
	assert.Contains(t, got, "## SEC filings")
	assert.Contains(t, got, "[8-K Current Report](https://www.sec.gov/edgar/search/?r=el#/q=TSLA&forms=8-K)")
	assert.NotContains(t, got, "## Earnings calls")
	assert.Contains(t, got, "## Links")
	assert.Contains(t, got, "[MarketWatch TSLA]("+srv.URL+"/investing/stock/tsla)")
	assert.Empty(t, p.Overseas(context.Background(), "  "))
}

func TestDisclosures_Markdown(t *testing.T) {
	d := Disclosures{
		Symbol:   "NVDA",
		Filings:  []Link{{Title: "10-K Annual Report", URL: "https://f"}},
		Earnings: []Link{{Title: "NVIDIA earnings call", URL: "https://e"}},
		Base:     []Link{{Title: "SEC EDGAR search", URL: "https://b"}},
	}

	want := "# NVDA disclosures and earnings calls\n\n" +
		"## SEC filings\n\n[10-K Annual Report](https://f)\n\n" +
		"## Earnings calls\n\n[NVIDIA earnings call](https://e)\n\n" +
		"## Links\n\n[SEC EDGAR search](https://b)"
	assert.Equal(t, want, d.Markdown())
}
