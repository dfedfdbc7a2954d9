package crypto

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"resty.dev/v3"
)

const (
	searchLimit     = 10
	defaultTopLimit = 20
	defaultCurrency = "krw"
)

// Coin is one CoinGecko asset.
type Coin struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	ID            string          `json:"id"`
	MarketCapRank int             `json:"market_cap_rank"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
}

type searchResponse struct {
	Coins []struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		Symbol        string `json:"symbol"`
		MarketCapRank *int   `json:"market_cap_rank"`
	} `json:"coins"`
}

type marketCoin struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Symbol        string          `json:"symbol"`
	MarketCapRank *int            `json:"market_cap_rank"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
}

// geckoClient talks to the CoinGecko JSON API.
type geckoClient struct {
	client *resty.Client
}

func newGeckoClient(baseURL string, timeout time.Duration) *geckoClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &geckoClient{client: c}
}

func (g *geckoClient) search(ctx context.Context, query string) ([]Coin, error) {
	var result searchResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("query", query).
		SetResult(&result).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("searching coins for %q: %w", query, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("coingecko search returned status %d", resp.StatusCode())
	}

	coins := make([]Coin, 0, min(len(result.Coins), searchLimit))
	for _, c := range result.Coins {
		if len(coins) == searchLimit {
			break
		}
		coins = append(coins, Coin{
			Symbol:        strings.ToUpper(c.Symbol),
			Name:          c.Name,
			ID:            c.ID,
			MarketCapRank: rank(c.MarketCapRank),
		})
	}
	return coins, nil
}

func (g *geckoClient) markets(ctx context.Context, limit int, currency string) ([]Coin, error) {
	var result []marketCoin
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"vs_currency": strings.ToLower(currency),
			"order":       "market_cap_desc",
			"per_page":    strconv.Itoa(limit),
			"page":        "1",
		}).
		SetResult(&result).
		Get("/coins/markets")
	if err != nil {
		return nil, fmt.Errorf("fetching coin markets: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("coingecko markets returned status %d", resp.StatusCode())
	}

	coins := make([]Coin, 0, len(result))
	for _, c := range result {
		coins = append(coins, Coin{
			Symbol:        strings.ToUpper(c.Symbol),
			Name:          c.Name,
			ID:            c.ID,
			MarketCapRank: rank(c.MarketCapRank),
			CurrentPrice:  c.CurrentPrice,
		})
	}
	return coins, nil
}

// rank maps an unranked coin (null) to zero.
func rank(r *int) int {
	if r == nil {
		return 0
	}
	return *r
}
