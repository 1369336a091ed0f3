package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinsonleung/bankgo/internal/domain"
	"github.com/kinsonleung/bankgo/internal/usecase"
	"github.com/kinsonleung/bankgo/internal/usecase/mocks"
)

type ledgerFixture struct {
	uc       *usecase.LedgerUseCase
	accounts *mocks.MockAccountRepository
	entries  *mocks.MockTransactionRepository
	metrics  *mocks.MockLedgerMetrics
}

func newLedgerFixture() *ledgerFixture {
	accounts := mocks.NewMockAccountRepository()
	entries := mocks.NewMockTransactionRepository()
	metrics := mocks.NewMockLedgerMetrics()

	uc := usecase.NewLedgerUseCase(
		mocks.NewMockTxManager(accounts, entries),
		accounts,
		entries,
		mocks.NewMockIDGenerator(),
		mocks.NewMockRetrier(),
		metrics,
		0,
	)

	return &ledgerFixture{uc: uc, accounts: accounts, entries: entries, metrics: metrics}
}

func (f *ledgerFixture) seedAccount(t *testing.T, balance int64) *domain.Account {
	t.Helper()
	account := &domain.Account{Name: "default", Balance: decimal.NewFromInt(balance), OwnerID: 1}
	f.accounts.Put(account)
	return account
}

// balanceFromLog reconstructs a balance from the committed log entries.
func (f *ledgerFixture) balanceFromLog(t *testing.T, accountID int64) decimal.Decimal {
	t.Helper()
	entries, err := f.entries.ListByAccount(context.Background(), accountID)
	if err != nil {
		t.Fatalf("unexpected error listing entries: %v", err)
	}
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Type.SignedAmount(e.Amount))
	}
	return sum
}

func (f *ledgerFixture) mustBalance(t *testing.T, accountID int64, want int64) {
	t.Helper()
	account, err := f.accounts.GetByID(context.Background(), accountID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(want)) {
		t.Fatalf("expected balance %d, got %s", want, account.Balance)
	}
	if !f.balanceFromLog(t, accountID).Equal(account.Balance) {
		t.Fatalf("balance %s does not match log sum %s", account.Balance, f.balanceFromLog(t, accountID))
	}
}

func TestLedgerDeposit(t *testing.T) {
	f := newLedgerFixture()
	account := f.seedAccount(t, 0)

	updated, err := f.uc.Deposit(context.Background(), account.ID, decimal.NewFromInt(20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !updated.Balance.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected balance 20, got %s", updated.Balance)
	}

	entries, _ := f.entries.ListByAccount(context.Background(), account.ID)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Type != domain.TransactionDeposit {
		t.Fatalf("expected DEPOSIT entry, got %s", entries[0].Type)
	}
	if !entries[0].Amount.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected entry amount 20, got %s", entries[0].Amount)
	}
	if entries[0].TransferID != nil {
		t.Fatalf("expected no transfer ID on deposit entry")
	}

	f.mustBalance(t, account.ID, 20)

	if f.metrics.Deposits != 1 {
		t.Fatalf("expected deposit metric, got %d", f.metrics.Deposits)
	}
}

func TestLedgerDepositUnknownAccount(t *testing.T) {
	f := newLedgerFixture()

	_, err := f.uc.Deposit(context.Background(), 999, decimal.NewFromInt(20))
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestLedgerWithdraw(t *testing.T) {
	f := newLedgerFixture()
	account := f.seedAccount(t, 50)

	updated, err := f.uc.Withdraw(context.Background(), account.ID, decimal.NewFromInt(30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !updated.Balance.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected balance 20, got %s", updated.Balance)
	}

	entries, _ := f.entries.ListByAccount(context.Background(), account.ID)
	if len(entries) != 1 || entries[0].Type != domain.TransactionWithdraw {
		t.Fatalf("expected one WITHDRAW entry, got %+v", entries)
	}
}

func TestLedgerWithdrawInsufficientFunds(t *testing.T) {
	f := newLedgerFixture()
	account := f.seedAccount(t, 10)

	_, err := f.uc.Withdraw(context.Background(), account.ID, decimal.NewFromInt(25))
	if !domain.IsInsufficientFunds(err) {
		t.Fatalf("expected insufficient funds error, got %v", err)
	}

	// Full rollback: balance and log untouched.
	f.mustBalance(t, account.ID, 10)

	entries, _ := f.entries.ListByAccount(context.Background(), account.ID)
	if len(entries) != 0 {
		t.Fatalf("expected no entries after rejected withdraw, got %d", len(entries))
	}
}

func TestLedgerTransfer(t *testing.T) {
	f := newLedgerFixture()
	source := f.seedAccount(t, 100)
	dest := f.seedAccount(t, 5)

	result, err := f.uc.Transfer(context.Background(), source.ID, dest.ID, decimal.NewFromInt(40))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.From.Balance.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected source balance 60, got %s", result.From.Balance)
	}
	if !result.To.Balance.Equal(decimal.NewFromInt(45)) {
		t.Fatalf("expected destination balance 45, got %s", result.To.Balance)
	}

	// Money conservation: the two deltas cancel out.
	sourceDelta := result.From.Balance.Sub(decimal.NewFromInt(100))
	destDelta := result.To.Balance.Sub(decimal.NewFromInt(5))
	if !sourceDelta.Add(destDelta).IsZero() {
		t.Fatalf("expected zero net delta, got %s", sourceDelta.Add(destDelta))
	}

	outEntries, _ := f.entries.ListByAccount(context.Background(), source.ID)
	inEntries, _ := f.entries.ListByAccount(context.Background(), dest.ID)
	if len(outEntries) != 1 || outEntries[0].Type != domain.TransactionTransferOut {
		t.Fatalf("expected one TRANSFER_OUT entry, got %+v", outEntries)
	}
	if len(inEntries) != 1 || inEntries[0].Type != domain.TransactionTransferIn {
		t.Fatalf("expected one TRANSFER_IN entry, got %+v", inEntries)
	}

	if outEntries[0].TransferID == nil || inEntries[0].TransferID == nil {
		t.Fatal("expected transfer entries to carry a transfer ID")
	}
	if *outEntries[0].TransferID != *inEntries[0].TransferID {
		t.Fatalf("expected both entries to share a transfer ID, got %s and %s",
			*outEntries[0].TransferID, *inEntries[0].TransferID)
	}
}

func TestLedgerTransferInsufficientFunds(t *testing.T) {
	f := newLedgerFixture()
	source := f.seedAccount(t, 30)
	dest := f.seedAccount(t, 0)

	_, err := f.uc.Transfer(context.Background(), source.ID, dest.ID, decimal.NewFromInt(31))

	var insufficient *domain.InsufficientFundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected insufficient funds error, got %v", err)
	}
	if insufficient.AccountID != source.ID {
		t.Fatalf("expected error to name source account %d, got %d", source.ID, insufficient.AccountID)
	}

	// Both balances and both logs unchanged.
	f.mustBalance(t, source.ID, 30)
	f.mustBalance(t, dest.ID, 0)
}

func TestLedgerTransferUnknownAccount(t *testing.T) {
	f := newLedgerFixture()
	source := f.seedAccount(t, 100)

	_, err := f.uc.Transfer(context.Background(), source.ID, 999, decimal.NewFromInt(10))
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	f.mustBalance(t, source.ID, 100)
}

func TestLedgerTransferSameAccount(t *testing.T) {
	f := newLedgerFixture()
	account := f.seedAccount(t, 100)

	_, err := f.uc.Transfer(context.Background(), account.ID, account.ID, decimal.NewFromInt(10))
	if !errors.Is(err, domain.ErrSameAccount) {
		t.Fatalf("expected ErrSameAccount, got %v", err)
	}
}

func TestLedgerRejectsNonPositiveAmounts(t *testing.T) {
	f := newLedgerFixture()
	account := f.seedAccount(t, 100)

	// No store access may happen for an invalid amount.
	f.accounts.AdjustBalanceFunc = func(ctx context.Context, tx usecase.Tx, id int64, delta decimal.Decimal) (*domain.Account, error) {
		t.Fatal("AdjustBalance should not be called for invalid amounts")
		return nil, nil
	}

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		if _, err := f.uc.Deposit(context.Background(), account.ID, amount); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("deposit: expected ErrInvalidAmount for %s, got %v", amount, err)
		}
		if _, err := f.uc.Withdraw(context.Background(), account.ID, amount); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("withdraw: expected ErrInvalidAmount for %s, got %v", amount, err)
		}
		if _, err := f.uc.Transfer(context.Background(), account.ID, account.ID+1, amount); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("transfer: expected ErrInvalidAmount for %s, got %v", amount, err)
		}
	}

	if f.metrics.Rejections["deposit"] != 2 {
		t.Fatalf("expected 2 deposit rejections, got %d", f.metrics.Rejections["deposit"])
	}
}

func TestLedgerAppliesConfiguredTransactionTimeout(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	entries := mocks.NewMockTransactionRepository()
	txManager := mocks.NewMockTxManager(accounts, entries)

	timeout := 250 * time.Millisecond

	var deadline time.Time
	var hasDeadline bool
	txManager.BeginFunc = func(ctx context.Context) (usecase.Tx, error) {
		deadline, hasDeadline = ctx.Deadline()
		return &mocks.MockTx{}, nil
	}

	uc := usecase.NewLedgerUseCase(
		txManager, accounts, entries,
		mocks.NewMockIDGenerator(), mocks.NewMockRetrier(), mocks.NewMockLedgerMetrics(),
		timeout,
	)

	account := &domain.Account{Name: "default", Balance: decimal.Zero, OwnerID: 1}
	accounts.Put(account)

	if _, err := uc.Deposit(context.Background(), account.ID, decimal.NewFromInt(20)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !hasDeadline {
		t.Fatal("expected the transaction context to carry a deadline")
	}
	if remaining := time.Until(deadline); remaining > timeout {
		t.Fatalf("expected deadline within %s, got %s remaining", timeout, remaining)
	}
}

func TestLedgerTransactionHistory(t *testing.T) {
	f := newLedgerFixture()
	account := f.seedAccount(t, 0)

	history, err := f.uc.TransactionHistory(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(history))
	}

	f.uc.Deposit(context.Background(), account.ID, decimal.NewFromInt(10))
	f.uc.Deposit(context.Background(), account.ID, decimal.NewFromInt(15))
	f.uc.Withdraw(context.Background(), account.ID, decimal.NewFromInt(5))

	history, err = f.uc.TransactionHistory(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history))
	}

	// Creation order, oldest first.
	for i := 1; i < len(history); i++ {
		if history[i].ID <= history[i-1].ID {
			t.Fatalf("expected ascending creation order, got IDs %d then %d", history[i-1].ID, history[i].ID)
		}
	}
}

// TestLedgerScenario walks the registration-to-overdraft flow end to end
// against the in-memory repositories.
func TestLedgerScenario(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	entries := mocks.NewMockTransactionRepository()
	users := mocks.NewMockUserRepository()
	txManager := mocks.NewMockTxManager(accounts, entries)

	userUC := usecase.NewUserUseCase(txManager, users, accounts)
	ledgerUC := usecase.NewLedgerUseCase(
		txManager, accounts, entries,
		mocks.NewMockIDGenerator(), mocks.NewMockRetrier(), mocks.NewMockLedgerMetrics(), 0,
	)

	ctx := context.Background()

	user, err := userUC.CreateUser(ctx, usecase.CreateUserInput{Name: "Kinson", Email: "me@kinsonleung.com"})
	if err != nil {
		t.Fatalf("unexpected error creating user: %v", err)
	}
	if len(user.Accounts) != 1 {
		t.Fatalf("expected a default account, got %d", len(user.Accounts))
	}

	source := user.Accounts[0]
	if !source.Balance.IsZero() {
		t.Fatalf("expected default account balance 0, got %s", source.Balance)
	}

	if _, err := ledgerUC.Deposit(ctx, source.ID, decimal.NewFromInt(20)); err != nil {
		t.Fatalf("unexpected error depositing: %v", err)
	}

	dest := &domain.Account{Name: "savings", Balance: decimal.Zero, OwnerID: user.ID}
	accounts.Put(dest)

	result, err := ledgerUC.Transfer(ctx, source.ID, dest.ID, decimal.NewFromInt(20))
	if err != nil {
		t.Fatalf("unexpected error transferring: %v", err)
	}
	if !result.From.Balance.IsZero() {
		t.Fatalf("expected source balance 0, got %s", result.From.Balance)
	}
	if !result.To.Balance.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected destination balance 20, got %s", result.To.Balance)
	}

	_, err = ledgerUC.Withdraw(ctx, source.ID, decimal.NewFromInt(5))
	if !domain.IsInsufficientFunds(err) {
		t.Fatalf("expected insufficient funds withdrawing from empty account, got %v", err)
	}

	updated, _ := accounts.GetByID(ctx, source.ID)
	if !updated.Balance.IsZero() {
		t.Fatalf("expected source balance to remain 0, got %s", updated.Balance)
	}
}
