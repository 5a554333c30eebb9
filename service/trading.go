package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"stocksim/models"
	"stocksim/quote"
)

// Position is one row of the portfolio view.
type Position struct {
	Symbol string
	Name   string
	Shares int64
	Price  decimal.Decimal
	Value  decimal.Decimal
}

// PortfolioView is everything the index page renders: cash, per-holding
// market values, and the grand total (cash plus all holdings).
type PortfolioView struct {
	Cash      decimal.Decimal
	Positions []Position
	Total     decimal.Decimal
}

// TradingService implements buys, sells, quotes, and the read-only views.
// Every multi-table mutation runs inside a single Store.Transact call, so a
// failure part way through leaves cash, holdings, and the transaction log
// untouched.
type TradingService struct {
	store  Store
	quotes Quoter
	log    *logrus.Logger
}

func NewTradingService(store Store, quotes Quoter, log *logrus.Logger) *TradingService {
	return &TradingService{store: store, quotes: quotes, log: log}
}

// Buy purchases shares of symbol at the current looked-up price: debits
// cash, refreshes the ticker cache, appends a +shares transaction, and
// creates or grows the holding.
func (s *TradingService) Buy(ctx context.Context, userID uint, symbol string, shares int64) error {
	if shares < 1 {
		return ErrInvalidShares
	}
	symbol = normalizeSymbol(symbol)

	q, err := s.lookup(ctx, symbol)
	if err != nil {
		return err
	}
	cost := q.Price.Mul(decimal.NewFromInt(shares))

	err = s.store.Transact(ctx, func(tx Store) error {
		user, err := tx.GetUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		if user.Cash.LessThan(cost) {
			return ErrInsufficientCash
		}

		if err := tx.UpdateCash(ctx, userID, user.Cash.Sub(cost)); err != nil {
			return fmt.Errorf("failed to debit cash: %w", err)
		}
		if err := tx.UpsertTicker(ctx, symbol, q.Name, q.Price); err != nil {
			return fmt.Errorf("failed to update ticker cache: %w", err)
		}
		if err := tx.AppendTransaction(ctx, &models.Transaction{
			UserID: userID,
			Symbol: symbol,
			Shares: shares,
			Price:  q.Price,
		}); err != nil {
			return fmt.Errorf("failed to log transaction: %w", err)
		}

		holding, err := tx.GetHolding(ctx, userID, symbol)
		if err != nil {
			return fmt.Errorf("failed to load holding: %w", err)
		}
		total := shares
		if holding != nil {
			total += holding.Shares
		}
		if err := tx.SetHoldingShares(ctx, userID, symbol, total); err != nil {
			return fmt.Errorf("failed to update holding: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"symbol":  symbol,
		"shares":  shares,
		"price":   q.Price,
	}).Info("buy executed")
	return nil
}

// Sell disposes of shares of symbol at the current looked-up price: credits
// cash, refreshes the ticker cache, appends a -shares transaction, and
// shrinks the holding, deleting it when it reaches exactly zero.
func (s *TradingService) Sell(ctx context.Context, userID uint, symbol string, shares int64) error {
	if shares < 1 {
		return ErrInvalidShares
	}
	symbol = normalizeSymbol(symbol)

	q, err := s.lookup(ctx, symbol)
	if err != nil {
		return err
	}
	proceeds := q.Price.Mul(decimal.NewFromInt(shares))

	err = s.store.Transact(ctx, func(tx Store) error {
		holding, err := tx.GetHolding(ctx, userID, symbol)
		if err != nil {
			return fmt.Errorf("failed to load holding: %w", err)
		}
		if holding == nil {
			return ErrNoPosition
		}
		if holding.Shares < shares {
			return ErrInsufficientShares
		}

		user, err := tx.GetUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		if err := tx.UpdateCash(ctx, userID, user.Cash.Add(proceeds)); err != nil {
			return fmt.Errorf("failed to credit cash: %w", err)
		}
		if err := tx.UpsertTicker(ctx, symbol, q.Name, q.Price); err != nil {
			return fmt.Errorf("failed to update ticker cache: %w", err)
		}
		if err := tx.AppendTransaction(ctx, &models.Transaction{
			UserID: userID,
			Symbol: symbol,
			Shares: -shares,
			Price:  q.Price,
		}); err != nil {
			return fmt.Errorf("failed to log transaction: %w", err)
		}

		remaining := holding.Shares - shares
		if remaining == 0 {
			if err := tx.DeleteHolding(ctx, userID, symbol); err != nil {
				return fmt.Errorf("failed to delete holding: %w", err)
			}
			return nil
		}
		if err := tx.SetHoldingShares(ctx, userID, symbol, remaining); err != nil {
			return fmt.Errorf("failed to update holding: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"symbol":  symbol,
		"shares":  shares,
		"price":   q.Price,
	}).Info("sell executed")
	return nil
}

// Quote looks up a symbol without touching any state. Any lookup failure is
// reported as ErrUnknownSymbol; the quote page does not distinguish a bad
// symbol from a dead quote service.
func (s *TradingService) Quote(ctx context.Context, symbol string) (*quote.Quote, error) {
	q, err := s.quotes.Lookup(ctx, normalizeSymbol(symbol))
	if err != nil {
		return nil, ErrUnknownSymbol
	}
	return q, nil
}

// Portfolio refreshes every cached ticker price, then computes the current
// user's market values. The refresh is unconditional, one lookup per cached
// symbol; a failed lookup keeps the stale cached price rather than failing
// the whole page.
func (s *TradingService) Portfolio(ctx context.Context, userID uint) (*PortfolioView, error) {
	tickers, err := s.store.ListTickers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickers: %w", err)
	}

	latest := make(map[string]models.Ticker, len(tickers))
	for _, t := range tickers {
		latest[t.Symbol] = t

		q, err := s.quotes.Lookup(ctx, t.Symbol)
		if err != nil {
			s.log.WithError(err).WithField("symbol", t.Symbol).Warn("price refresh failed, keeping cached price")
			continue
		}
		if err := s.store.UpsertTicker(ctx, t.Symbol, q.Name, q.Price); err != nil {
			return nil, fmt.Errorf("failed to update ticker cache: %w", err)
		}
		t.Name, t.Price = q.Name, q.Price
		latest[t.Symbol] = t
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	holdings, err := s.store.ListHoldings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	view := &PortfolioView{Cash: user.Cash, Total: user.Cash}
	for _, h := range holdings {
		name, price := h.Symbol, decimal.Zero
		if t, ok := latest[h.Symbol]; ok {
			name, price = t.Name, t.Price
		}
		value := price.Mul(decimal.NewFromInt(h.Shares))
		view.Positions = append(view.Positions, Position{
			Symbol: h.Symbol,
			Name:   name,
			Shares: h.Shares,
			Price:  price,
			Value:  value,
		})
		view.Total = view.Total.Add(value)
	}
	return view, nil
}

// History returns the user's transactions in the order they were logged.
func (s *TradingService) History(ctx context.Context, userID uint) ([]models.Transaction, error) {
	txns, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

// HeldSymbols lists the symbols the user currently holds, for the sell form.
func (s *TradingService) HeldSymbols(ctx context.Context, userID uint) ([]string, error) {
	holdings, err := s.store.ListHoldings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		symbols = append(symbols, h.Symbol)
	}
	return symbols, nil
}

func (s *TradingService) lookup(ctx context.Context, symbol string) (*quote.Quote, error) {
	q, err := s.quotes.Lookup(ctx, symbol)
	if errors.Is(err, quote.ErrSymbolNotFound) {
		return nil, ErrUnknownSymbol
	}
	if err != nil {
		return nil, fmt.Errorf("quote lookup failed: %w", err)
	}
	return q, nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
