package service

import "errors"

// Business-rule violations, mapped to apology pages at the handler boundary.
var (
	ErrUnknownSymbol      = errors.New("invalid symbol")
	ErrInvalidShares      = errors.New("shares must be a positive whole number")
	ErrInsufficientCash   = errors.New("not enough cash")
	ErrNoPosition         = errors.New("you have no shares of this company")
	ErrInsufficientShares = errors.New("not enough shares to sell")
	ErrUsernameTaken      = errors.New("username is not available")
	ErrInvalidCredentials = errors.New("invalid username and/or password")
)
