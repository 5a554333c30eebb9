package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// tradeCommand is the typed form for buys and sells. Shares stay a string
// until parseShares validates them, so fractional and non-numeric input get
// their own messages instead of a generic bind error.
type tradeCommand struct {
	Symbol string `form:"symbol"`
	Shares string `form:"shares"`
}

type quoteCommand struct {
	Symbol string `form:"symbol"`
}

func (h *Handler) Index(c *gin.Context) {
	view, err := h.trading.Portfolio(c.Request.Context(), userID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Cash":      view.Cash,
		"Positions": view.Positions,
		"Total":     view.Total,
	})
}

func (h *Handler) BuyForm(c *gin.Context) {
	c.HTML(http.StatusOK, "buy.html", nil)
}

func (h *Handler) Buy(c *gin.Context) {
	cmd, ok := h.bindTrade(c)
	if !ok {
		return
	}
	if err := h.trading.Buy(c.Request.Context(), userID(c), cmd.symbol, cmd.shares); err != nil {
		h.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) SellForm(c *gin.Context) {
	symbols, err := h.trading.HeldSymbols(c.Request.Context(), userID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "sell.html", gin.H{"Symbols": symbols})
}

func (h *Handler) Sell(c *gin.Context) {
	cmd, ok := h.bindTrade(c)
	if !ok {
		return
	}
	if err := h.trading.Sell(c.Request.Context(), userID(c), cmd.symbol, cmd.shares); err != nil {
		h.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) QuoteForm(c *gin.Context) {
	c.HTML(http.StatusOK, "quote.html", nil)
}

func (h *Handler) Quote(c *gin.Context) {
	var form quoteCommand
	if err := c.ShouldBind(&form); err != nil || form.Symbol == "" {
		apology(c, http.StatusBadRequest, "missing symbol")
		return
	}

	q, err := h.trading.Quote(c.Request.Context(), form.Symbol)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "quoted.html", gin.H{
		"Name":   q.Name,
		"Symbol": q.Symbol,
		"Price":  q.Price,
	})
}

func (h *Handler) History(c *gin.Context) {
	txns, err := h.trading.History(c.Request.Context(), userID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "history.html", gin.H{"Transactions": txns})
}

type parsedTrade struct {
	symbol string
	shares int64
}

// bindTrade validates the buy/sell form and renders the apology itself when
// the input is bad.
func (h *Handler) bindTrade(c *gin.Context) (parsedTrade, bool) {
	var form tradeCommand
	if err := c.ShouldBind(&form); err != nil {
		apology(c, http.StatusBadRequest, "invalid form")
		return parsedTrade{}, false
	}
	if form.Symbol == "" {
		apology(c, http.StatusBadRequest, "missing symbol")
		return parsedTrade{}, false
	}
	if form.Shares == "" {
		apology(c, http.StatusBadRequest, "missing shares")
		return parsedTrade{}, false
	}
	shares, err := parseShares(form.Shares)
	if err != nil {
		apology(c, http.StatusBadRequest, err.Error())
		return parsedTrade{}, false
	}
	return parsedTrade{symbol: form.Symbol, shares: shares}, true
}

// parseShares accepts only positive whole numbers, so "1.5" and "abc" are
// rejected before any business logic runs.
func parseShares(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.New("shares must be a whole number")
	}
	if n < 1 {
		return 0, errors.New("shares must be greater than 0")
	}
	return n, nil
}
