package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinsonleung/bankgo/internal/domain"
)

// AccountUseCase handles bank account management.
type AccountUseCase struct {
	accountRepo AccountRepository
	userRepo    UserRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, userRepo UserRepository) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		userRepo:    userRepo,
	}
}

// CreateAccountInput represents input for creating a bank account.
type CreateAccountInput struct {
	Name       string
	OwnerEmail string
}

// CreateAccount creates a new bank account for the user identified by
// OwnerEmail. The balance starts at zero.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	owner, err := uc.userRepo.GetByEmail(ctx, input.OwnerEmail)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		Name:      input.Name,
		Balance:   decimal.Zero,
		OwnerID:   owner.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// ListAccountsInput represents input for listing a user's accounts.
type ListAccountsInput struct {
	OwnerID int64
	// Name filters to exact name matches when non-empty.
	Name string
}

// ListByOwner returns the owner's accounts. An empty slice is a valid
// result; the caller decides whether empty means not found.
func (uc *AccountUseCase) ListByOwner(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	return uc.accountRepo.ListByOwner(ctx, input.OwnerID, input.Name)
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}
