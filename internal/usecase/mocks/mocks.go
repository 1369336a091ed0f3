// Package mocks provides in-memory test doubles for the usecase
// interfaces. Default behavior acts on in-memory state; individual
// methods can be overridden through the exported Func fields.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinsonleung/bankgo/internal/domain"
	"github.com/kinsonleung/bankgo/internal/usecase"
)

// MockTx is an in-memory transaction. Rollback restores the snapshot
// taken at Begin unless the transaction has committed.
type MockTx struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	committed  bool
	onRollback func()
}

func (t *MockTx) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.committed = true
	return nil
}

func (t *MockTx) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.committed && t.onRollback != nil {
		t.onRollback()
		t.onRollback = nil
	}
	return nil
}

// MockTxManager hands out MockTx instances that snapshot the attached
// repositories, so a rolled-back operation really leaves no trace.
type MockTxManager struct {
	BeginFunc func(ctx context.Context) (usecase.Tx, error)

	accountRepo     *MockAccountRepository
	transactionRepo *MockTransactionRepository
}

func NewMockTxManager(accounts *MockAccountRepository, transactions *MockTransactionRepository) *MockTxManager {
	return &MockTxManager{
		accountRepo:     accounts,
		transactionRepo: transactions,
	}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}

	var accountSnap map[int64]domain.Account
	var entrySnap []domain.Transaction

	if m.accountRepo != nil {
		accountSnap = m.accountRepo.snapshot()
	}
	if m.transactionRepo != nil {
		entrySnap = m.transactionRepo.snapshot()
	}

	return &MockTx{
		onRollback: func() {
			if m.accountRepo != nil {
				m.accountRepo.restore(accountSnap)
			}
			if m.transactionRepo != nil {
				m.transactionRepo.restore(entrySnap)
			}
		},
	}, nil
}

// MockAccountRepository is an in-memory implementation of
// usecase.AccountRepository.
type MockAccountRepository struct {
	mu       sync.Mutex
	accounts map[int64]domain.Account
	nextID   int64

	CreateFunc        func(ctx context.Context, account *domain.Account) error
	CreateTxFunc      func(ctx context.Context, tx usecase.Tx, account *domain.Account) error
	GetByIDFunc       func(ctx context.Context, id int64) (*domain.Account, error)
	ListByOwnerFunc   func(ctx context.Context, ownerID int64, name string) ([]*domain.Account, error)
	LockByIDsFunc     func(ctx context.Context, tx usecase.Tx, ids []int64) ([]*domain.Account, error)
	AdjustBalanceFunc func(ctx context.Context, tx usecase.Tx, id int64, delta decimal.Decimal) (*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[int64]domain.Account)}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	account.ID = m.nextID
	m.accounts[account.ID] = *account
	return nil
}

func (m *MockAccountRepository) CreateTx(ctx context.Context, tx usecase.Tx, account *domain.Account) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, account)
	}
	return m.Create(ctx, account)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		return &acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) ListByOwner(ctx context.Context, ownerID int64, name string) ([]*domain.Account, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	accounts := []*domain.Account{}
	for id := int64(1); id <= m.nextID; id++ {
		acc, ok := m.accounts[id]
		if !ok || acc.OwnerID != ownerID {
			continue
		}
		if name != "" && acc.Name != name {
			continue
		}
		copied := acc
		accounts = append(accounts, &copied)
	}
	return accounts, nil
}

func (m *MockAccountRepository) LockByIDs(ctx context.Context, tx usecase.Tx, ids []int64) ([]*domain.Account, error) {
	if m.LockByIDsFunc != nil {
		return m.LockByIDsFunc(ctx, tx, ids)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			copied := acc
			accounts = append(accounts, &copied)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) AdjustBalance(ctx context.Context, tx usecase.Tx, id int64, delta decimal.Decimal) (*domain.Account, error) {
	if m.AdjustBalanceFunc != nil {
		return m.AdjustBalanceFunc(ctx, tx, id, delta)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	acc.Balance = acc.Balance.Add(delta)
	acc.UpdatedAt = time.Now().UTC()
	m.accounts[id] = acc
	return &acc, nil
}

// Put seeds an account, assigning an ID when none is set.
func (m *MockAccountRepository) Put(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if account.ID == 0 {
		m.nextID++
		account.ID = m.nextID
	} else if account.ID > m.nextID {
		m.nextID = account.ID
	}
	m.accounts[account.ID] = *account
}

func (m *MockAccountRepository) snapshot() map[int64]domain.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := make(map[int64]domain.Account, len(m.accounts))
	for id, acc := range m.accounts {
		snap[id] = acc
	}
	return snap
}

func (m *MockAccountRepository) restore(snap map[int64]domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = make(map[int64]domain.Account, len(snap))
	for id, acc := range snap {
		m.accounts[id] = acc
	}
}

// MockTransactionRepository is an in-memory implementation of
// usecase.TransactionRepository.
type MockTransactionRepository struct {
	mu      sync.Mutex
	entries []domain.Transaction
	nextID  int64

	AppendFunc        func(ctx context.Context, tx usecase.Tx, txn *domain.Transaction) error
	ListByAccountFunc func(ctx context.Context, accountID int64) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Append(ctx context.Context, tx usecase.Tx, txn *domain.Transaction) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	txn.ID = m.nextID
	txn.CreatedAt = time.Now().UTC()
	m.entries = append(m.entries, *txn)
	return nil
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID int64) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := []*domain.Transaction{}
	for i := range m.entries {
		if m.entries[i].AccountID == accountID {
			copied := m.entries[i]
			entries = append(entries, &copied)
		}
	}
	return entries, nil
}

func (m *MockTransactionRepository) snapshot() []domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := make([]domain.Transaction, len(m.entries))
	copy(snap, m.entries)
	return snap
}

func (m *MockTransactionRepository) restore(snap []domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make([]domain.Transaction, len(snap))
	copy(m.entries, snap)
	m.nextID = int64(len(snap))
}

// MockUserRepository is an in-memory implementation of
// usecase.UserRepository.
type MockUserRepository struct {
	mu     sync.Mutex
	users  map[int64]domain.User
	nextID int64

	CreateTxFunc   func(ctx context.Context, tx usecase.Tx, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[int64]domain.User)}
}

func (m *MockUserRepository) CreateTx(ctx context.Context, tx usecase.Tx, user *domain.User) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = *user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		return &user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// MockIDGenerator produces deterministic transfer IDs.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("transfer-%d", m.counter)
}

// MockRetrier runs the operation once unless overridden.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockLedgerMetrics counts observations.
type MockLedgerMetrics struct {
	mu         sync.Mutex
	Deposits   int
	Withdraws  int
	Transfers  int
	Rejections map[string]int
}

func NewMockLedgerMetrics() *MockLedgerMetrics {
	return &MockLedgerMetrics{Rejections: make(map[string]int)}
}

func (m *MockLedgerMetrics) ObserveDeposit(amount decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deposits++
}

func (m *MockLedgerMetrics) ObserveWithdraw(amount decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Withdraws++
}

func (m *MockLedgerMetrics) ObserveTransfer(amount decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transfers++
}

func (m *MockLedgerMetrics) ObserveRejection(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rejections[operation]++
}
