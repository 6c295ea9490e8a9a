package dto

import (
	"github.com/arduabooks/backend/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating a chart-of-accounts entry.
type CreateAccountRequest struct {
	Code        string `json:"code" binding:"required,max=20"`
	Name        string `json:"name" binding:"required,max=255"`
	AccountType string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string `json:"accountID"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	AccountType   string `json:"accountType"`
	NormalBalance string `json:"normalBalance"`
	IsActive      bool   `json:"isActive"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		Code:          a.Code,
		Name:          a.Name,
		AccountType:   string(a.AccountType),
		NormalBalance: string(a.AccountType.NormalBalance()),
		IsActive:      a.IsActive,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
