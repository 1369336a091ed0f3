package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinsonleung/bankgo/internal/domain"
)

// UserRepository defines data access for users.
type UserRepository interface {
	CreateTx(ctx context.Context, tx Tx, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AccountRepository defines data access for bank accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	CreateTx(ctx context.Context, tx Tx, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	ListByOwner(ctx context.Context, ownerID int64, name string) ([]*domain.Account, error)
	// LockByIDs locks the given account rows for the duration of tx.
	LockByIDs(ctx context.Context, tx Tx, ids []int64) ([]*domain.Account, error)
	// AdjustBalance atomically adds the signed delta to the balance and
	// returns the post-update row. Must run inside the supplied tx.
	AdjustBalance(ctx context.Context, tx Tx, id int64, delta decimal.Decimal) (*domain.Account, error)
}

// TransactionRepository defines data access for the transaction log.
type TransactionRepository interface {
	// Append inserts a new log entry inside tx. The store assigns ID and
	// CreatedAt; both are filled in on the passed entry.
	Append(ctx context.Context, tx Tx, txn *domain.Transaction) error
	// ListByAccount returns entries in creation order, oldest first.
	ListByAccount(ctx context.Context, accountID int64) ([]*domain.Transaction, error)
}

// Tx represents a database transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager handles transaction lifecycle.
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// IDGenerator generates unique transfer correlation IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation on transient store failures such as
// deadlocks and serialization errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// LedgerMetrics records ledger operation outcomes.
type LedgerMetrics interface {
	ObserveDeposit(amount decimal.Decimal)
	ObserveWithdraw(amount decimal.Decimal)
	ObserveTransfer(amount decimal.Decimal)
	ObserveRejection(operation string)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
