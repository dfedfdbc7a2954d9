package yahoo

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/finpipe/core"
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

func TestCleanTable(t *testing.T) {
	var b strings.Builder
	b.WriteString("intro text\n\n| Symbol | Name |\n| --- | --- |\n")
	for range 30 {
		b.WriteString("  | [^GSPC](/quote/%5EGSPC/) | S&P 500 |  \n")
	}

	got := CleanTable(b.String())

	lines := strings.Split(got, "\n")
	require.Len(t, lines, maxTableLines)
	assert.Equal(t, "| Symbol | Name |", lines[0])
	assert.Equal(t, "| [^GSPC] | S&P 500 |", lines[2])
	assert.NotContains(t, got, "/quote/")
}

func TestRegionFilter(t *testing.T) {
	md := strings.Join([]string{
		"| Symbol | Name |",
		"| ^N225 | Nikkei 225 |",
		"| ^GSPC | S&P 500 |",
		"| ^HSI | Hang Seng Index |",
		"| ^FTSE | FTSE 100 |",
		"| ^KS11 | KOSPI Composite Index |",
	}, "\n")

	assert.Equal(t, "| ^N225 | Nikkei 225 |\n| ^HSI | Hang Seng Index |\n| ^KS11 | KOSPI Composite Index |",
		regionFilter(asianMarkers)(md))
	assert.Equal(t, "| ^FTSE | FTSE 100 |", regionFilter(europeanMarkers)(md))
}

func TestRegionFilter_MaxLines(t *testing.T) {
	md := strings.Repeat("| DAX |\n", 40)

	got := regionFilter(europeanMarkers)(md)

	assert.Len(t, strings.Split(got, "\n"), maxRegionLines)
}

const indicesPage = `<html><body><table>
<tr><th>Symbol</th><th>Name</th><th>Price</th></tr>
<tr><td><a href="/quote/%5EGSPC/">^GSPC</a></td><td>S&amp;P 500</td><td>5,300.12</td></tr>
<tr><td><a href="/quote/%5EN225/">^N225</a></td><td>Nikkei 225</td><td>38,900.02</td></tr>
<tr><td><a href="/quote/%5EGDAXI/">^GDAXI</a></td><td>DAX Performance Index</td><td>18,400.00</td></tr>
</table></body></html>`

func TestParser_Get(t *testing.T) {
	srv := sourcestest.NewServer(t)
	srv.Handle("/world-indices/", sourcestest.HTML(indicesPage))
	p := New(srv.Toolkit())
	ctx := context.Background()

	world := p.Get(ctx, WorldIndices)
	assert.Contains(t, world, "S&P 500")
	assert.Contains(t, world, "Nikkei 225")
	assert.NotContains(t, world, "/quote/")

	asian := p.Get(ctx, AsianIndices)
	assert.Contains(t, asian, "Nikkei 225")
	assert.NotContains(t, asian, "S&P 500")

	european := p.Get(ctx, EuropeanIndices)
	assert.Contains(t, european, "DAX")
	assert.NotContains(t, european, "Nikkei")

	assert.Equal(t, 3, srv.Hits("/world-indices/"))
}

func TestParser_Get_Unavailable(t *testing.T) {
	srv := sourcestest.NewServer(t)
	srv.Handle("/bonds/", sourcestest.Status(http.StatusForbidden))
	p := New(srv.Toolkit())

	assert.Empty(t, p.Get(context.Background(), Treasury))
	assert.Empty(t, p.Get(context.Background(), Board(77)))
}

func TestQuoteText(t *testing.T) {
	d := doc(t, `<h1>Apple Inc. (AAPL)</h1>
<div class="price-main">189.84</div>
<div class="price-change">+1.23 (+0.65%)</div>
<div class="price-note">`+strings.Repeat("x", 60)+`</div>
<div class="price-empty"> </div>`)

	assert.Equal(t, "**Apple Inc. (AAPL)**\n189.84\n+1.23 (+0.65%)", QuoteText(d, "AAPL"))
}

func TestQuoteText_FallbackTitleAndNoPrices(t *testing.T) {
	assert.Equal(t, "**MSFT**\n415.10", QuoteText(doc(t, `<div class="live-price">415.10</div>`), "MSFT"))
	assert.Empty(t, QuoteText(doc(t, `<h1>Microsoft</h1><p>no quote</p>`), "MSFT"))
}

func TestParser_StockQuote(t *testing.T) {
	srv := sourcestest.NewServer(t)
	srv.Handle("/quote/AAPL/", sourcestest.HTML(`<h1>Apple Inc.</h1><div class="price">189.84</div>`))
	p := New(srv.Toolkit())

	assert.Equal(t, "**Apple Inc.**\n189.84", p.StockQuote(context.Background(), "AAPL"))
	assert.Empty(t, p.StockQuote(context.Background(), "NOPE"))
	assert.Empty(t, p.StockQuote(context.Background(), " "))
}

func TestParser_CryptoQuote_AppendsDollarPair(t *testing.T) {
	srv := sourcestest.NewServer(t)
	srv.Handle("/quote/BTC-USD/", sourcestest.HTML(`<h1>Bitcoin USD</h1><div class="price">67,012.35</div>`))
	p := New(srv.Toolkit())
	ctx := context.Background()

	bare := p.CryptoQuote(ctx, "BTC")
	paired := p.CryptoQuote(ctx, "BTC-USD")

	assert.Equal(t, "**Bitcoin USD**\n67,012.35", bare)
	assert.Equal(t, bare, paired)
	assert.Equal(t, 2, srv.Hits("/quote/BTC-USD/"))
}

const lookupPage = `<table>
<tr><th>Symbol</th><th>Name</th></tr>
<tr><td><a href="/quote/AAPL">AAPL</a></td><td> Apple Inc. </td></tr>
<tr><td>no link</td><td>Ignored</td></tr>
<tr><td><a href="/quote/X">ABCDEFGHIJKL</a></td><td>Too long</td></tr>
<tr><td><a href="/quote/AAPL.BA">AAPL.BA</a></td></tr>
<tr><td><a href="/quote/APC.F">APC.F</a></td><td>Apple Inc. Frankfurt</td></tr>
</table>`

func TestLookupRows(t *testing.T) {
	got := LookupRows(doc(t, lookupPage))

	assert.Equal(t, []core.TickerMatch{
		{Code: "AAPL", Name: "Apple Inc.", Market: core.MarketOverseas},
		{Code: "APC.F", Name: "Apple Inc. Frankfurt", Market: core.MarketOverseas},
	}, got)
}

func TestLookupRows_CapsAtTenRows(t *testing.T) {
	var b strings.Builder
	b.WriteString("<table><tr><th>Symbol</th><th>Name</th></tr>")
	for range 15 {
		b.WriteString(`<tr><td><a href="#">T</a></td><td>Name</td></tr>`)
	}
	b.WriteString("</table>")

	assert.Len(t, LookupRows(doc(t, b.String())), lookupRows)
	assert.Empty(t, LookupRows(doc(t, "<p>nothing</p>")))
}

func TestParser_Lookup(t *testing.T) {
	srv := sourcestest.NewServer(t)
	srv.Handle("/lookup?s=apple", sourcestest.HTML(lookupPage))
	p := New(srv.Toolkit())
	ctx := context.Background()

	assert.Len(t, p.Lookup(ctx, "apple"), 2)
	assert.Empty(t, p.Lookup(ctx, "pear"))
	assert.NotNil(t, p.Lookup(ctx, ""))
}
