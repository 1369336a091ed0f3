package dto

import (
	"github.com/shopspring/decimal"

	"github.com/kinsonleung/bankgo/internal/usecase"
)

// CreateUserRequest represents a request to register a user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Name:  r.Name,
		Email: r.Email,
	}
}

// CreateBankAccountRequest represents a request to open an additional
// bank account for an existing user.
type CreateBankAccountRequest struct {
	BankAccountName string `json:"bankAccountName"`
	OwnerEmail      string `json:"ownerEmail"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBankAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:       r.BankAccountName,
		OwnerEmail: r.OwnerEmail,
	}
}

// DepositRequest represents a request to deposit into a bank account.
type DepositRequest struct {
	BankAccountID int64           `json:"bankAccountId"`
	Amount        decimal.Decimal `json:"amount"`
}

// WithdrawRequest represents a request to withdraw from a bank account.
type WithdrawRequest struct {
	BankAccountID int64           `json:"bankAccountId"`
	Amount        decimal.Decimal `json:"amount"`
}

// TransferRequest represents a request to move funds between two bank
// accounts.
type TransferRequest struct {
	FromAccountID int64           `json:"fromAccountId"`
	ToAccountID   int64           `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
}
