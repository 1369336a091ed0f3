package domain

import "time"

// User is a registered account owner. Users are created once at
// registration and are immutable afterwards.
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time

	// Accounts is populated on registration with the default account.
	// It is not loaded on ordinary lookups.
	Accounts []*Account
}
