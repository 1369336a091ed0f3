package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry. The sign of the balance
// change is implied by the type; Amount is always a positive magnitude.
type TransactionType string

const (
	TransactionDeposit     TransactionType = "DEPOSIT"
	TransactionWithdraw    TransactionType = "WITHDRAW"
	TransactionTransferOut TransactionType = "TRANSFER_OUT"
	TransactionTransferIn  TransactionType = "TRANSFER_IN"
)

var validTransactionTypes = map[TransactionType]bool{
	TransactionDeposit:     true,
	TransactionWithdraw:    true,
	TransactionTransferOut: true,
	TransactionTransferIn:  true,
}

// IsValid checks if the type is one of the four ledger entry types.
func (t TransactionType) IsValid() bool {
	return validTransactionTypes[t]
}

// SignedAmount returns the amount with the sign implied by the type.
func (t TransactionType) SignedAmount(amount decimal.Decimal) decimal.Decimal {
	switch t {
	case TransactionWithdraw, TransactionTransferOut:
		return amount.Neg()
	default:
		return amount
	}
}

// Transaction is an append-only ledger entry. Entries are never updated
// or deleted; the committed entries of an account are the source of
// truth for reconstructing its balance.
type Transaction struct {
	ID        int64
	Type      TransactionType
	Amount    decimal.Decimal
	AccountID int64

	// TransferID links the TRANSFER_OUT/TRANSFER_IN pair produced by a
	// single transfer. Nil for deposits and withdrawals.
	TransferID *string

	CreatedAt time.Time
}
