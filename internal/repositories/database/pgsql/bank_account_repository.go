package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/arduabooks/backend/internal/apperrors"
	"github.com/arduabooks/backend/internal/core/domain"
	portsrepo "github.com/arduabooks/backend/internal/core/ports/repositories"
	"github.com/arduabooks/backend/internal/models"
	"github.com/arduabooks/backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBankAccountRepository struct {
	BaseRepository
}

// newPgxBankAccountRepository creates a new repository for bank account data.
func newPgxBankAccountRepository(pool *pgxpool.Pool) portsrepo.BankAccountRepositoryWithTx {
	return &PgxBankAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBankAccountRepository implements portsrepo.BankAccountRepositoryWithTx
var _ portsrepo.BankAccountRepositoryWithTx = (*PgxBankAccountRepository)(nil)

const bankAccountColumns = `bank_account_id, account_id, type, institution, number_masked, opening_balance, created_at, created_by, last_updated_at, last_updated_by`

// SaveBankAccountInTx inserts a new bank account wrapper inside the caller's
// transaction. Each ledger account can back at most one bank account.
func (r *PgxBankAccountRepository) SaveBankAccountInTx(ctx context.Context, tx pgx.Tx, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)

	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.BankAccountID,
		m.AccountID,
		m.Type,
		m.Institution,
		m.NumberMasked,
		m.OpeningBalance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: ledger account %s is already wrapped by a bank account", apperrors.ErrDuplicate, m.AccountID)
		}
		return apperrors.NewAppError(500, "failed to save bank account "+m.BankAccountID, err)
	}
	return nil
}

// FindBankAccountByID retrieves a bank account.
func (r *PgxBankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE bank_account_id = $1;
	`
	m, err := scanBankAccount(r.Pool.QueryRow(ctx, query, bankAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank account "+bankAccountID, err)
	}
	d := mapping.ToDomainBankAccount(m)
	return &d, nil
}

// ListBankAccounts retrieves all bank accounts ordered by institution.
func (r *PgxBankAccountRepository) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		ORDER BY institution, number_masked;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list bank accounts", err)
	}
	defer rows.Close()

	accounts := []models.BankAccount{}
	for rows.Next() {
		m, err := scanBankAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank account row", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank account rows", err)
	}
	return mapping.ToDomainBankAccountSlice(accounts), nil
}

func scanBankAccount(row pgx.Row) (models.BankAccount, error) {
	var m models.BankAccount
	err := row.Scan(
		&m.BankAccountID,
		&m.AccountID,
		&m.Type,
		&m.Institution,
		&m.NumberMasked,
		&m.OpeningBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
