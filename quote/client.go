package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://www.alphavantage.co"

// ErrSymbolNotFound reports that the quote service knows no such symbol.
var ErrSymbolNotFound = errors.New("symbol not found")

// Quote is the result of a price lookup.
type Quote struct {
	Symbol string
	Name   string
	Price  decimal.Decimal
}

// Client looks up quotes from Alpha Vantage. GLOBAL_QUOTE supplies the
// price and SYMBOL_SEARCH the company name; names never change, so they
// are memoized in-process.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	mu    sync.Mutex
	names map[string]string
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		names:      make(map[string]string),
	}
}

type globalQuoteResponse struct {
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
}

type symbolSearchResponse struct {
	BestMatches []struct {
		Symbol string `json:"1. symbol"`
		Name   string `json:"2. name"`
	} `json:"bestMatches"`
}

// Lookup returns the current quote for symbol, or ErrSymbolNotFound.
func (c *Client) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	var result globalQuoteResponse
	params := url.Values{"function": {"GLOBAL_QUOTE"}, "symbol": {symbol}}
	if err := c.get(ctx, params, &result); err != nil {
		return nil, err
	}

	if result.GlobalQuote.Price == "" {
		return nil, ErrSymbolNotFound
	}

	price, err := decimal.NewFromString(result.GlobalQuote.Price)
	if err != nil {
		return nil, fmt.Errorf("unparseable price %q for %s: %w", result.GlobalQuote.Price, symbol, err)
	}

	name, err := c.name(ctx, symbol)
	if err != nil {
		return nil, err
	}

	return &Quote{Symbol: symbol, Name: name, Price: price}, nil
}

func (c *Client) name(ctx context.Context, symbol string) (string, error) {
	c.mu.Lock()
	if n, ok := c.names[symbol]; ok {
		c.mu.Unlock()
		return n, nil
	}
	c.mu.Unlock()

	var result symbolSearchResponse
	params := url.Values{"function": {"SYMBOL_SEARCH"}, "keywords": {symbol}}
	if err := c.get(ctx, params, &result); err != nil {
		return "", err
	}

	// Fall back to the symbol itself when the search has no exact match.
	name := symbol
	for _, m := range result.BestMatches {
		if strings.EqualFold(m.Symbol, symbol) {
			name = m.Name
			break
		}
	}

	c.mu.Lock()
	c.names[symbol] = name
	c.mu.Unlock()
	return name, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out interface{}) error {
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/query?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build quote request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("quote service returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode quote response: %w", err)
	}
	return nil
}
