package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stocksim/models"
	"stocksim/service"
)

// gormStore implements service.Store on GORM/Postgres.
type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) service.Store {
	return &gormStore{db: db}
}

func (s *gormStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	return &user, nil
}

func (s *gormStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %q: %w", username, err)
	}
	return &user, nil
}

func (s *gormStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormStore) UpdateCash(ctx context.Context, userID uint, cash decimal.Decimal) error {
	return s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("cash", cash).Error
}

func (s *gormStore) UpsertTicker(ctx context.Context, symbol, name string, price decimal.Decimal) error {
	ticker := models.Ticker{Symbol: symbol, Name: name, Price: price}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "price", "updated_at"}),
	}).Create(&ticker).Error
}

func (s *gormStore) ListTickers(ctx context.Context) ([]models.Ticker, error) {
	var tickers []models.Ticker
	if err := s.db.WithContext(ctx).Order("symbol").Find(&tickers).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickers: %w", err)
	}
	return tickers, nil
}

func (s *gormStore) GetHolding(ctx context.Context, userID uint, symbol string) (*models.Holding, error) {
	var holding models.Holding
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		First(&holding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load holding %s: %w", symbol, err)
	}
	return &holding, nil
}

func (s *gormStore) ListHoldings(ctx context.Context, userID uint) ([]models.Holding, error) {
	var holdings []models.Holding
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("symbol").
		Find(&holdings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	return holdings, nil
}

func (s *gormStore) SetHoldingShares(ctx context.Context, userID uint, symbol string, shares int64) error {
	holding := models.Holding{UserID: userID, Symbol: symbol, Shares: shares}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"shares", "updated_at"}),
	}).Create(&holding).Error
}

func (s *gormStore) DeleteHolding(ctx context.Context, userID uint, symbol string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&models.Holding{}).Error
}

func (s *gormStore) AppendTransaction(ctx context.Context, txn *models.Transaction) error {
	return s.db.WithContext(ctx).Create(txn).Error
}

func (s *gormStore) ListTransactions(ctx context.Context, userID uint) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

// Transact runs fn against a store bound to a single database transaction.
func (s *gormStore) Transact(ctx context.Context, fn func(service.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
