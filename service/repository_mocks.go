package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"stocksim/models"
	"stocksim/quote"
)

// MockStore is a mock implementation of Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockStore) UpdateCash(ctx context.Context, userID uint, cash decimal.Decimal) error {
	args := m.Called(ctx, userID, cash)
	return args.Error(0)
}

func (m *MockStore) UpsertTicker(ctx context.Context, symbol, name string, price decimal.Decimal) error {
	args := m.Called(ctx, symbol, name, price)
	return args.Error(0)
}

func (m *MockStore) ListTickers(ctx context.Context) ([]models.Ticker, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ticker), args.Error(1)
}

func (m *MockStore) GetHolding(ctx context.Context, userID uint, symbol string) (*models.Holding, error) {
	args := m.Called(ctx, userID, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Holding), args.Error(1)
}

func (m *MockStore) ListHoldings(ctx context.Context, userID uint) ([]models.Holding, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Holding), args.Error(1)
}

func (m *MockStore) SetHoldingShares(ctx context.Context, userID uint, symbol string, shares int64) error {
	args := m.Called(ctx, userID, symbol, shares)
	return args.Error(0)
}

func (m *MockStore) DeleteHolding(ctx context.Context, userID uint, symbol string) error {
	args := m.Called(ctx, userID, symbol)
	return args.Error(0)
}

func (m *MockStore) AppendTransaction(ctx context.Context, txn *models.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockStore) ListTransactions(ctx context.Context, userID uint) ([]models.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

// Transact runs fn against the same mock, so expectations set on the mock
// cover writes made inside the transaction.
func (m *MockStore) Transact(ctx context.Context, fn func(Store) error) error {
	return fn(m)
}

// MockQuoter is a mock implementation of Quoter.
type MockQuoter struct {
	mock.Mock
}

func (m *MockQuoter) Lookup(ctx context.Context, symbol string) (*quote.Quote, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Quote), args.Error(1)
}
