package domain

import (
	"errors"
	"fmt"
)

var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email is already registered")
	ErrInvalidEmail = errors.New("invalid email format")

	// Account errors
	ErrAccountNotFound  = errors.New("bank account not found")
	ErrAccountNameEmpty = errors.New("bank account name is empty")

	// Ledger errors
	ErrInvalidAmount = errors.New("amount is invalid")
	ErrSameAccount   = errors.New("cannot transfer to the same bank account")
)

// InsufficientFundsError is returned when a withdraw or transfer would
// drive an account balance below zero.
type InsufficientFundsError struct {
	AccountID int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("bank account id: %d does not have enough fund", e.AccountID)
}

// IsInsufficientFunds reports whether err wraps an InsufficientFundsError.
func IsInsufficientFunds(err error) bool {
	var target *InsufficientFundsError
	return errors.As(err, &target)
}
