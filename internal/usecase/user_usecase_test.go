package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kinsonleung/bankgo/internal/domain"
	"github.com/kinsonleung/bankgo/internal/usecase"
	"github.com/kinsonleung/bankgo/internal/usecase/mocks"
)

func TestUserUseCase_CreateUser(t *testing.T) {
	users := mocks.NewMockUserRepository()
	accounts := mocks.NewMockAccountRepository()
	txManager := mocks.NewMockTxManager(accounts, nil)

	uc := usecase.NewUserUseCase(txManager, users, accounts)

	user, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{
		Name:  "Kinson",
		Email: "me@kinsonleung.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.ID == 0 {
		t.Fatal("expected store-assigned user ID")
	}

	if len(user.Accounts) != 1 {
		t.Fatalf("expected one default account, got %d", len(user.Accounts))
	}

	account := user.Accounts[0]
	if account.Name != usecase.DefaultAccountName {
		t.Fatalf("expected account name %q, got %q", usecase.DefaultAccountName, account.Name)
	}
	if !account.Balance.IsZero() {
		t.Fatalf("expected default balance 0, got %s", account.Balance)
	}
	if account.OwnerID != user.ID {
		t.Fatalf("expected account owned by %d, got %d", user.ID, account.OwnerID)
	}
}

func TestUserUseCase_CreateUserInvalidEmail(t *testing.T) {
	uc := usecase.NewUserUseCase(
		mocks.NewMockTxManager(nil, nil),
		mocks.NewMockUserRepository(),
		mocks.NewMockAccountRepository(),
	)

	_, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{Name: "Kinson", Email: "not-an-email"})
	if !errors.Is(err, domain.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestUserUseCase_CreateUserDuplicateEmail(t *testing.T) {
	users := mocks.NewMockUserRepository()
	accounts := mocks.NewMockAccountRepository()
	txManager := mocks.NewMockTxManager(accounts, nil)

	uc := usecase.NewUserUseCase(txManager, users, accounts)

	if _, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{Name: "Kinson", Email: "me@kinsonleung.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{Name: "Other", Email: "me@kinsonleung.com"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserUseCase_CreateUserRollsBackOnAccountFailure(t *testing.T) {
	users := mocks.NewMockUserRepository()
	accounts := mocks.NewMockAccountRepository()
	txManager := mocks.NewMockTxManager(accounts, nil)

	accountErr := errors.New("insert failed")
	accounts.CreateTxFunc = func(ctx context.Context, tx usecase.Tx, account *domain.Account) error {
		return accountErr
	}

	uc := usecase.NewUserUseCase(txManager, users, accounts)

	_, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{Name: "Kinson", Email: "me@kinsonleung.com"})
	if !errors.Is(err, accountErr) {
		t.Fatalf("expected account insert error, got %v", err)
	}
}

func TestUserUseCase_GetUser(t *testing.T) {
	users := mocks.NewMockUserRepository()
	users.CreateTx(context.Background(), nil, &domain.User{Name: "Kinson", Email: "me@kinsonleung.com"})

	uc := usecase.NewUserUseCase(mocks.NewMockTxManager(nil, nil), users, mocks.NewMockAccountRepository())

	user, err := uc.GetUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "me@kinsonleung.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := uc.GetUser(context.Background(), 42); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
