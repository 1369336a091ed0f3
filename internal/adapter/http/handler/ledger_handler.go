package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/kinsonleung/bankgo/internal/adapter/http/dto"
	"github.com/kinsonleung/bankgo/internal/domain"
	"github.com/kinsonleung/bankgo/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (*domain.Account, error)
	Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) (*domain.Account, error)
	Transfer(ctx context.Context, fromAccountID, toAccountID int64, amount decimal.Decimal) (*usecase.TransferResult, error)
	TransactionHistory(ctx context.Context, accountID int64) ([]*domain.Transaction, error)
}

// LedgerHandler handles the balance-mutating HTTP requests and the
// transaction history lookup.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Deposit credits an amount to a bank account.
func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.ledgerUC.Deposit(r.Context(), req.BankAccountID, req.Amount)
	if err != nil {
		writeError(w, bodyRefStatus(err), fmt.Sprintf("Deposit failed, %s", err))
		return
	}

	writeJSON(w, http.StatusOK, dto.BankAccountFromDomain(account))
}

// Withdraw debits an amount from a bank account.
func (h *LedgerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.ledgerUC.Withdraw(r.Context(), req.BankAccountID, req.Amount)
	if err != nil {
		writeError(w, bodyRefStatus(err), fmt.Sprintf("Withdraw failed, %s", err))
		return
	}

	writeJSON(w, http.StatusOK, dto.BankAccountFromDomain(account))
}

// Transfer moves an amount between two bank accounts.
func (h *LedgerHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.ledgerUC.Transfer(r.Context(), req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		writeError(w, bodyRefStatus(err), fmt.Sprintf("Transfer failed, %s", err))
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferResponse{
		From: dto.BankAccountFromDomain(result.From),
		To:   dto.BankAccountFromDomain(result.To),
	})
}

// History lists a bank account's transaction log in creation order.
func (h *LedgerHandler) History(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseIDParam(r, "bankAccountId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bank account id")
		return
	}

	transactions, err := h.ledgerUC.TransactionHistory(r.Context(), accountID)
	if err != nil {
		writeError(w, mapDomainError(err), fmt.Sprintf("List transactions failed, %s", err))
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(transactions))
}
