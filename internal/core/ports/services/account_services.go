package services

import (
	"context"

	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/arduabooks/backend/internal/dto"
)

// PostingAccounts holds the resolved chart-of-accounts rows the posting engine
// writes against. Codes come from configuration; each must resolve to exactly one
// active account.
type PostingAccounts struct {
	Receivable domain.Account // Accounts receivable (asset)
	Revenue    domain.Account // Consulting revenue (income)
	Cash       domain.Account // Cash / undeposited funds (asset)
	Unapplied  domain.Account // Unapplied payments clearing (liability)
}

// AccountSvcFacade defines chart-of-accounts operations.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, userID string) error

	// ResolvePostingAccounts resolves the configured posting account codes.
	// Fails with ErrAccountNotConfigured when any code has no active account.
	ResolvePostingAccounts(ctx context.Context) (*PostingAccounts, error)
}
