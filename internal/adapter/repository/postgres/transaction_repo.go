package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kinsonleung/bankgo/internal/domain"
	"github.com/kinsonleung/bankgo/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository. The
// transactions table is append-only: entries are inserted, never updated
// or deleted.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Append inserts a ledger entry inside the caller's transaction. The
// store assigns the entry ID and the creation timestamp.
func (r *TransactionRepository) Append(ctx context.Context, tx usecase.Tx, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transactions (type, amount, bank_account_id, transfer_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	var createdAt pgtype.Timestamptz

	err := pgxTx.QueryRow(ctx, query,
		string(txn.Type),
		decimalToNumeric(txn.Amount),
		txn.AccountID,
		txn.TransferID,
	).Scan(&txn.ID, &createdAt)
	if err != nil {
		return err
	}

	txn.CreatedAt = createdAt.Time

	return nil
}

// ListByAccount retrieves the account's entries in creation order,
// oldest first. Read-only; runs outside any transaction.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID int64) ([]*domain.Transaction, error) {
	query := `
		SELECT id, type, amount, bank_account_id, transfer_id, created_at
		FROM transactions
		WHERE bank_account_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*domain.Transaction{}
	for rows.Next() {
		var (
			txn       domain.Transaction
			typ       string
			amount    pgtype.Numeric
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(&txn.ID, &typ, &amount, &txn.AccountID, &txn.TransferID, &createdAt)
		if err != nil {
			return nil, err
		}

		txn.Type = domain.TransactionType(typ)
		txn.Amount = numericToDecimal(amount)
		txn.CreatedAt = createdAt.Time

		entries = append(entries, &txn)
	}

	return entries, rows.Err()
}
