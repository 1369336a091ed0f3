package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinsonleung/bankgo/internal/domain"
)

// LedgerUseCase orchestrates the balance-mutating operations. Each public
// operation is a single store transaction: the balance update(s) and log
// append(s) commit together or not at all.
type LedgerUseCase struct {
	txManager       TxManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	idGen           IDGenerator
	retrier         Retrier
	metrics         LedgerMetrics
	txTimeout       time.Duration
}

// NewLedgerUseCase creates a new LedgerUseCase. txTimeout bounds each
// transaction attempt; a non-positive value falls back to
// DefaultTransactionTimeout.
func NewLedgerUseCase(
	txManager TxManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	idGen IDGenerator,
	retrier Retrier,
	metrics LedgerMetrics,
	txTimeout time.Duration,
) *LedgerUseCase {
	if txTimeout <= 0 {
		txTimeout = DefaultTransactionTimeout
	}

	return &LedgerUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		idGen:           idGen,
		retrier:         retrier,
		metrics:         metrics,
		txTimeout:       txTimeout,
	}
}

// TransferResult holds both updated accounts of a committed transfer.
type TransferResult struct {
	From *domain.Account
	To   *domain.Account
}

// Deposit credits amount to the account and appends one DEPOSIT entry.
func (uc *LedgerUseCase) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (*domain.Account, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		uc.metrics.ObserveRejection("deposit")
		return nil, err
	}

	var account *domain.Account

	err := uc.retrier.Retry(ctx, func() error {
		opCtx, cancel := context.WithTimeout(ctx, uc.txTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(opCtx)
		if err != nil {
			return err
		}
		defer tx.Rollback(opCtx)

		updated, err := uc.accountRepo.AdjustBalance(opCtx, tx, accountID, amount)
		if err != nil {
			return err
		}

		err = uc.transactionRepo.Append(opCtx, tx, &domain.Transaction{
			Type:      domain.TransactionDeposit,
			Amount:    amount,
			AccountID: accountID,
		})
		if err != nil {
			return err
		}

		if err := tx.Commit(opCtx); err != nil {
			return err
		}

		account = updated

		return nil
	})
	if err != nil {
		uc.metrics.ObserveRejection("deposit")
		return nil, err
	}

	uc.metrics.ObserveDeposit(amount)

	return account, nil
}

// Withdraw debits amount from the account and appends one WITHDRAW entry.
// The insufficient-funds check runs inside the transaction, after the
// debit, so concurrent withdrawals against the same account cannot both
// pass against a stale balance.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) (*domain.Account, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		uc.metrics.ObserveRejection("withdraw")
		return nil, err
	}

	var account *domain.Account

	err := uc.retrier.Retry(ctx, func() error {
		opCtx, cancel := context.WithTimeout(ctx, uc.txTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(opCtx)
		if err != nil {
			return err
		}
		defer tx.Rollback(opCtx)

		updated, err := uc.accountRepo.AdjustBalance(opCtx, tx, accountID, amount.Neg())
		if err != nil {
			return err
		}

		if updated.Balance.IsNegative() {
			return &domain.InsufficientFundsError{AccountID: accountID}
		}

		err = uc.transactionRepo.Append(opCtx, tx, &domain.Transaction{
			Type:      domain.TransactionWithdraw,
			Amount:    amount,
			AccountID: accountID,
		})
		if err != nil {
			return err
		}

		if err := tx.Commit(opCtx); err != nil {
			return err
		}

		account = updated

		return nil
	})
	if err != nil {
		uc.metrics.ObserveRejection("withdraw")
		return nil, err
	}

	uc.metrics.ObserveWithdraw(amount)

	return account, nil
}

// Transfer moves amount between two accounts: one debit, one credit, one
// TRANSFER_OUT entry and one TRANSFER_IN entry, all in one transaction.
// The net effect on the two balances of a committed transfer is zero; a
// rejected transfer leaves both accounts and both logs untouched.
func (uc *LedgerUseCase) Transfer(ctx context.Context, fromAccountID, toAccountID int64, amount decimal.Decimal) (*TransferResult, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		uc.metrics.ObserveRejection("transfer")
		return nil, err
	}

	if fromAccountID == toAccountID {
		uc.metrics.ObserveRejection("transfer")
		return nil, domain.ErrSameAccount
	}

	// Lock rows in sorted ID order so two opposing transfers cannot
	// deadlock on each other.
	ids := []int64{fromAccountID, toAccountID}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var result *TransferResult

	err := uc.retrier.Retry(ctx, func() error {
		opCtx, cancel := context.WithTimeout(ctx, uc.txTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(opCtx)
		if err != nil {
			return err
		}
		defer tx.Rollback(opCtx)

		locked, err := uc.accountRepo.LockByIDs(opCtx, tx, ids)
		if err != nil {
			return err
		}

		if len(locked) != len(ids) {
			return domain.ErrAccountNotFound
		}

		transferID := uc.idGen.Generate()

		from, err := uc.accountRepo.AdjustBalance(opCtx, tx, fromAccountID, amount.Neg())
		if err != nil {
			return err
		}

		if from.Balance.IsNegative() {
			return &domain.InsufficientFundsError{AccountID: fromAccountID}
		}

		err = uc.transactionRepo.Append(opCtx, tx, &domain.Transaction{
			Type:       domain.TransactionTransferOut,
			Amount:     amount,
			AccountID:  fromAccountID,
			TransferID: &transferID,
		})
		if err != nil {
			return err
		}

		to, err := uc.accountRepo.AdjustBalance(opCtx, tx, toAccountID, amount)
		if err != nil {
			return err
		}

		err = uc.transactionRepo.Append(opCtx, tx, &domain.Transaction{
			Type:       domain.TransactionTransferIn,
			Amount:     amount,
			AccountID:  toAccountID,
			TransferID: &transferID,
		})
		if err != nil {
			return err
		}

		if err := tx.Commit(opCtx); err != nil {
			return err
		}

		result = &TransferResult{From: from, To: to}

		return nil
	})
	if err != nil {
		uc.metrics.ObserveRejection("transfer")
		return nil, err
	}

	uc.metrics.ObserveTransfer(amount)

	return result, nil
}

// TransactionHistory returns the account's ledger entries in creation
// order. An empty slice means no history; an unknown account is not
// distinguished from an account without entries.
func (uc *LedgerUseCase) TransactionHistory(ctx context.Context, accountID int64) ([]*domain.Transaction, error) {
	return uc.transactionRepo.ListByAccount(ctx, accountID)
}
