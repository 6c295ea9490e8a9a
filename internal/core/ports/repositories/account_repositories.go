package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/arduabooks/backend/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByCodes retrieves accounts keyed by their chart-of-accounts code.
	// A code missing from the result means no active account carries it.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts ordered by type then code.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account. Fails with ErrDuplicate on code collision.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveAccountInTx persists a new account inside the caller's transaction.
	SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// DeactivateAccount flags an account inactive. Accounts are never deleted.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountRepositoryFacade combines account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
