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

type PgxClientRepository struct {
	pool *pgxpool.Pool
}

// newPgxClientRepository creates a new repository for client data.
func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{pool: pool}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepositoryFacade
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `client_id, name, email, phone, billing_address, default_rate, payment_terms_day, is_active, created_at, created_by, last_updated_at, last_updated_by`

// SaveClient inserts a new client.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)

	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ClientID,
		m.Name,
		m.Email,
		m.Phone,
		m.BillingAddress,
		m.DefaultRate,
		m.PaymentTermsDay,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: client %s already exists", apperrors.ErrDuplicate, m.ClientID)
		}
		return apperrors.NewAppError(500, "failed to save client "+m.ClientID, err)
	}
	return nil
}

// FindClientByID retrieves a client.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE client_id = $1;
	`
	m, err := scanClient(r.pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find client "+clientID, err)
	}
	d := mapping.ToDomainClient(m)
	return &d, nil
}

// ListClients retrieves clients ordered by name.
func (r *PgxClientRepository) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT ` + clientColumns + `
		FROM clients
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list clients", err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan client row", err)
		}
		clients = append(clients, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating client rows", err)
	}
	return mapping.ToDomainClientSlice(clients), nil
}

func scanClient(row pgx.Row) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.BillingAddress,
		&m.DefaultRate,
		&m.PaymentTermsDay,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
