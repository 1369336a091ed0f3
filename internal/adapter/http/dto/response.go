package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kinsonleung/bankgo/internal/domain"
)

// UserResponse represents a user in API responses. BankAccounts is only
// populated on registration, where the default account is returned along
// with the new user.
type UserResponse struct {
	ID           int64                  `json:"id"`
	Name         string                 `json:"name"`
	Email        string                 `json:"email"`
	CreatedAt    time.Time              `json:"createdAt"`
	BankAccounts []*BankAccountResponse `json:"bankAccounts,omitempty"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		CreatedAt:    u.CreatedAt,
		BankAccounts: BankAccountsFromDomain(u.Accounts),
	}
}

// BankAccountResponse represents a bank account in API responses.
type BankAccountResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	OwnerID   int64           `json:"ownerId"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// BankAccountFromDomain converts a domain account to a response.
func BankAccountFromDomain(a *domain.Account) *BankAccountResponse {
	return &BankAccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Balance:   a.Balance,
		OwnerID:   a.OwnerID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// BankAccountsFromDomain converts domain accounts to responses.
func BankAccountsFromDomain(accounts []*domain.Account) []*BankAccountResponse {
	if accounts == nil {
		return nil
	}
	result := make([]*BankAccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = BankAccountFromDomain(a)
	}
	return result
}

// TransferResponse carries both accounts touched by a transfer, with
// their balances after the move.
type TransferResponse struct {
	From *BankAccountResponse `json:"from"`
	To   *BankAccountResponse `json:"to"`
}

// TransactionResponse represents a transaction log entry in API responses.
type TransactionResponse struct {
	ID            int64           `json:"id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BankAccountID int64           `json:"bankAccountId"`
	TransferID    *string         `json:"transferId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID,
		Type:          string(t.Type),
		Amount:        t.Amount,
		BankAccountID: t.AccountID,
		TransferID:    t.TransferID,
		CreatedAt:     t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
