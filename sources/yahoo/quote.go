package yahoo

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/gaurav-prasanna/finpipe/core/extract"
)

const (
	cryptoSuffix  = "-USD"
	maxPriceBlock = 5
	maxPriceText  = 50
)

var (
	priceBlocks = core.MustQuery(`div[class*="price"]`)
	titleField  = core.MustQuery("h1")
)

// StockQuote returns the title and price blocks of a quote page.
func (p *Parser) StockQuote(ctx context.Context, symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return ""
	}
	page := p.Page(ctx, p.quoteURL(symbol), core.AutoDetect)
	if page == nil {
		return ""
	}
	return QuoteText(page.Document, symbol)
}

// CryptoQuote is StockQuote for a coin priced in US dollars. BTC and BTC-USD
// read the same page.
func (p *Parser) CryptoQuote(ctx context.Context, symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return ""
	}
	if !strings.HasSuffix(symbol, cryptoSuffix) {
		symbol += cryptoSuffix
	}
	return p.StockQuote(ctx, symbol)
}

// QuoteText renders a quote page as a bold title followed by short price
// lines. A page without price blocks yields "".
func QuoteText(doc *goquery.Document, fallbackTitle string) string {
	blocks := extract.All(doc, priceBlocks)
	if blocks.Length() == 0 {
		return ""
	}
	var prices []string
	blocks.Slice(0, min(blocks.Length(), maxPriceBlock)).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" && len(text) < maxPriceText {
			prices = append(prices, text)
		}
	})

	title := fallbackTitle
	if h := extract.First(doc, titleField); h != nil {
		if t := strings.TrimSpace(h.Text()); t != "" {
			title = t
		}
	}
	return "**" + title + "**\n" + strings.Join(prices, "\n")
}
