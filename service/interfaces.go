package service

import (
	"context"

	"github.com/shopspring/decimal"

	"stocksim/models"
	"stocksim/quote"
)

// Store is the typed persistence surface the services run on. Lookup
// methods return (nil, nil) when the row does not exist.
type Store interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateCash(ctx context.Context, userID uint, cash decimal.Decimal) error

	UpsertTicker(ctx context.Context, symbol, name string, price decimal.Decimal) error
	ListTickers(ctx context.Context) ([]models.Ticker, error)

	GetHolding(ctx context.Context, userID uint, symbol string) (*models.Holding, error)
	ListHoldings(ctx context.Context, userID uint) ([]models.Holding, error)
	SetHoldingShares(ctx context.Context, userID uint, symbol string, shares int64) error
	DeleteHolding(ctx context.Context, userID uint, symbol string) error

	AppendTransaction(ctx context.Context, txn *models.Transaction) error
	ListTransactions(ctx context.Context, userID uint) ([]models.Transaction, error)

	// Transact runs fn inside a single database transaction. Writes made
	// through the Store passed to fn are rolled back if fn returns an error.
	Transact(ctx context.Context, fn func(Store) error) error
}

// Quoter resolves a ticker symbol to its current quote.
type Quoter interface {
	Lookup(ctx context.Context, symbol string) (*quote.Quote, error)
}
