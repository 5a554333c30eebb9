package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"stocksim/models"
)

// AccountService handles registration and authentication.
type AccountService struct {
	store        Store
	startingCash decimal.Decimal
}

func NewAccountService(store Store, startingCash decimal.Decimal) *AccountService {
	return &AccountService{store: store, startingCash: startingCash}
}

// Register creates a user with a bcrypt password hash and the starting cash
// balance. Returns ErrUsernameTaken if the username exists.
func (s *AccountService) Register(ctx context.Context, username, password string) (*models.User, error) {
	existing, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Cash:         s.startingCash,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords both return ErrInvalidCredentials so the response never
// reveals which part was wrong.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
