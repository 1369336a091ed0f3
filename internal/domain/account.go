package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a bank account owned by a single user. Its balance is only
// ever mutated by the ledger use case, inside a store transaction.
type Account struct {
	ID        int64
	Name      string
	Balance   decimal.Decimal
	OwnerID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
