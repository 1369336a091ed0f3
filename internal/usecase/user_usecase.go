package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinsonleung/bankgo/internal/domain"
)

// UserUseCase handles user registration and lookup.
type UserUseCase struct {
	txManager   TxManager
	userRepo    UserRepository
	accountRepo AccountRepository
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(txManager TxManager, userRepo UserRepository, accountRepo AccountRepository) *UserUseCase {
	return &UserUseCase{
		txManager:   txManager,
		userRepo:    userRepo,
		accountRepo: accountRepo,
	}
}

// CreateUserInput represents input for registering a user.
type CreateUserInput struct {
	Name  string
	Email string
}

// CreateUser registers a user together with a default zero-balance
// account. Both inserts share one store transaction, so a failure on
// either side leaves nothing behind.
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	user := &domain.User{
		Name:      input.Name,
		Email:     input.Email,
		CreatedAt: now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.userRepo.CreateTx(ctx, tx, user); err != nil {
		return nil, err
	}

	account := &domain.Account{
		Name:      DefaultAccountName,
		Balance:   decimal.Zero,
		OwnerID:   user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.CreateTx(ctx, tx, account); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	user.Accounts = []*domain.Account{account}

	return user, nil
}

// GetUser retrieves a user by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
