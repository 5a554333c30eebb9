package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key")
	c.baseURL = srv.URL
	return c
}

func TestClient_Lookup(t *testing.T) {
	var searchCalls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		switch r.URL.Query().Get("function") {
		case "GLOBAL_QUOTE":
			assert.Equal(t, "NVDA", r.URL.Query().Get("symbol"))
			fmt.Fprint(w, `{"Global Quote": {"01. symbol": "NVDA", "05. price": "189.9800"}}`)
		case "SYMBOL_SEARCH":
			searchCalls++
			fmt.Fprint(w, `{"bestMatches": [{"1. symbol": "NVDA", "2. name": "NVIDIA Corporation"}]}`)
		default:
			t.Errorf("unexpected function %q", r.URL.Query().Get("function"))
		}
	})

	q, err := c.Lookup(context.Background(), "NVDA")

	assert.NoError(t, err)
	assert.Equal(t, "NVDA", q.Symbol)
	assert.Equal(t, "NVIDIA Corporation", q.Name)
	assert.Equal(t, "189.98", q.Price.StringFixed(2))

	// A second lookup must not hit SYMBOL_SEARCH again.
	_, err = c.Lookup(context.Background(), "NVDA")
	assert.NoError(t, err)
	assert.Equal(t, 1, searchCalls)
}

func TestClient_Lookup_UnknownSymbol(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Alpha Vantage answers an empty Global Quote for unknown symbols.
		fmt.Fprint(w, `{"Global Quote": {}}`)
	})

	_, err := c.Lookup(context.Background(), "NOPE")

	assert.ErrorIs(t, err, ErrSymbolNotFound)
}

func TestClient_Lookup_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Lookup(context.Background(), "NVDA")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSymbolNotFound)
}

func TestClient_Lookup_NameFallsBackToSymbol(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("function") {
		case "GLOBAL_QUOTE":
			fmt.Fprint(w, `{"Global Quote": {"01. symbol": "XYZ", "05. price": "1.0000"}}`)
		case "SYMBOL_SEARCH":
			fmt.Fprint(w, `{"bestMatches": []}`)
		}
	})

	q, err := c.Lookup(context.Background(), "XYZ")

	assert.NoError(t, err)
	assert.Equal(t, "XYZ", q.Name)
}
