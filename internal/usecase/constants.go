package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a single store transaction so a
	// stalled operation cannot hold row locks indefinitely.
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultAccountName is the name of the account created alongside a
	// new user.
	DefaultAccountName = "default"
)
