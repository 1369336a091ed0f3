package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/kinsonleung/bankgo/internal/adapter/http/dto"
	"github.com/kinsonleung/bankgo/internal/domain"
	"github.com/kinsonleung/bankgo/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	ListByOwner(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
}

// AccountHandler handles bank-account HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create opens an additional bank account for an existing user.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		if errors.Is(err, domain.ErrAccountNameEmpty) {
			writeError(w, http.StatusBadRequest, "Bank account name is empty")
			return
		}
		writeError(w, bodyRefStatus(err), fmt.Sprintf("Create bank account failed, %s", err))
		return
	}

	writeJSON(w, http.StatusOK, dto.BankAccountFromDomain(account))
}

// ListByUser lists a user's bank accounts, optionally filtered by the
// name query parameter.
func (h *AccountHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ownerID, err := parseIDParam(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	accounts, err := h.accountUC.ListByOwner(r.Context(), usecase.ListAccountsInput{
		OwnerID: ownerID,
		Name:    r.URL.Query().Get("name"),
	})
	if err != nil {
		writeError(w, mapDomainError(err), fmt.Sprintf("List bank accounts failed, %s", err))
		return
	}

	if len(accounts) == 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No bank account found, userId: %d", ownerID))
		return
	}

	writeJSON(w, http.StatusOK, dto.BankAccountsFromDomain(accounts))
}
