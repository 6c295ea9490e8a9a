package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arduabooks/backend/internal/apperrors"
	"github.com/arduabooks/backend/internal/core/domain"
	portsrepo "github.com/arduabooks/backend/internal/core/ports/repositories"
	"github.com/arduabooks/backend/internal/models"
	"github.com/arduabooks/backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// invoiceSeqLockClass namespaces the per-year advisory locks taken while assigning
// invoice sequence numbers, so they cannot collide with other advisory lock users.
const invoiceSeqLockClass = 4217

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryWithTx
var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, client_id, invoice_number, invoice_year, sequence, issue_date, due_date, status, notes, subtotal, tax_amount, total, posting_status, created_at, created_by, last_updated_at, last_updated_by`

const invoiceLineColumns = `line_id, invoice_id, line_type, description, quantity, unit_price, line_total, created_at, created_by, last_updated_at, last_updated_by`

// SaveInvoice inserts a new draft invoice. The partial unique index on
// (client_id) WHERE status = 'DRAFT' turns a concurrent duplicate draft into
// ErrDraftExists.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.InvoiceID,
		m.ClientID,
		nullableString(m.InvoiceNumber),
		nullableInt(m.InvoiceYear),
		nullableInt(m.Sequence),
		m.IssueDate,
		m.DueDate,
		m.Status,
		m.Notes,
		m.Subtotal,
		m.TaxAmount,
		m.Total,
		m.PostingStatus,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "invoices_one_draft_per_client" {
				return fmt.Errorf("%w: client %s already has a draft invoice", apperrors.ErrDraftExists, m.ClientID)
			}
			return fmt.Errorf("%w: invoice %s already exists", apperrors.ErrDuplicate, m.InvoiceID)
		}
		return fmt.Errorf("failed to save invoice %s: %w", m.InvoiceID, err)
	}
	return nil
}

// FindInvoiceByID retrieves an invoice header.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE invoice_id = $1;
	`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice "+invoiceID, err)
	}
	d := mapping.ToDomainInvoice(m)
	return &d, nil
}

// FindInvoiceByIDForUpdate locks and retrieves the invoice row inside the caller's
// transaction. Every lifecycle mutation goes through this lock.
func (r *PgxInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE invoice_id = $1
		FOR UPDATE;
	`
	m, err := scanInvoice(tx.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock invoice "+invoiceID, err)
	}
	d := mapping.ToDomainInvoice(m)
	return &d, nil
}

// FindLinesByInvoiceID retrieves an invoice's lines in creation order.
func (r *PgxInvoiceRepository) FindLinesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	query := `
		SELECT ` + invoiceLineColumns + `
		FROM invoice_lines
		WHERE invoice_id = $1
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for invoice "+invoiceID, err)
	}
	defer rows.Close()

	lines := []models.InvoiceLine{}
	for rows.Next() {
		m, err := scanInvoiceLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice line row for invoice "+invoiceID, err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice line rows for invoice "+invoiceID, err)
	}
	return mapping.ToDomainInvoiceLineSlice(lines), nil
}

// FindLineByID retrieves a single invoice line.
func (r *PgxInvoiceRepository) FindLineByID(ctx context.Context, lineID string) (*domain.InvoiceLine, error) {
	query := `
		SELECT ` + invoiceLineColumns + `
		FROM invoice_lines
		WHERE line_id = $1;
	`
	m, err := scanInvoiceLine(r.Pool.QueryRow(ctx, query, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice line "+lineID, err)
	}
	d := mapping.ToDomainInvoiceLine(m)
	return &d, nil
}

// ListInvoices retrieves invoices, optionally filtered by client and status, newest
// issue date first.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, clientID *string, status *domain.InvoiceStatus, limit, offset int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1::text IS NULL OR client_id = $1)
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY issue_date DESC, created_at DESC
		LIMIT $3 OFFSET $4;
	`
	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := r.Pool.Query(ctx, query, clientID, statusArg, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list invoices", err)
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		invoices = append(invoices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}
	return mapping.ToDomainInvoiceSlice(invoices), nil
}

// UpdateInvoiceInTx writes the mutable header fields of a locked invoice row.
func (r *PgxInvoiceRepository) UpdateInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)

	query := `
		UPDATE invoices
		SET invoice_number = $2,
		    invoice_year = $3,
		    sequence = $4,
		    issue_date = $5,
		    due_date = $6,
		    status = $7,
		    notes = $8,
		    subtotal = $9,
		    tax_amount = $10,
		    total = $11,
		    posting_status = $12,
		    last_updated_at = $13,
		    last_updated_by = $14
		WHERE invoice_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.InvoiceID,
		nullableString(m.InvoiceNumber),
		nullableInt(m.InvoiceYear),
		nullableInt(m.Sequence),
		m.IssueDate,
		m.DueDate,
		m.Status,
		m.Notes,
		m.Subtotal,
		m.TaxAmount,
		m.Total,
		m.PostingStatus,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "invoices_one_draft_per_client" {
			return fmt.Errorf("%w: client %s already has a draft invoice", apperrors.ErrDraftExists, m.ClientID)
		}
		return apperrors.NewAppError(500, "failed to update invoice "+m.InvoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + m.InvoiceID + " not found for update")
	}
	return nil
}

// SaveLineInTx inserts an invoice line.
func (r *PgxInvoiceRepository) SaveLineInTx(ctx context.Context, tx pgx.Tx, line domain.InvoiceLine) error {
	m := mapping.ToModelInvoiceLine(line)

	query := `
		INSERT INTO invoice_lines (` + invoiceLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.LineID,
		m.InvoiceID,
		m.LineType,
		m.Description,
		m.Quantity,
		m.UnitPrice,
		m.LineTotal,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert invoice line "+m.LineID, err)
	}
	return nil
}

// DeleteLineInTx removes an invoice line.
func (r *PgxInvoiceRepository) DeleteLineInTx(ctx context.Context, tx pgx.Tx, lineID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM invoice_lines WHERE line_id = $1;`, lineID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete invoice line "+lineID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice line " + lineID + " not found")
	}
	return nil
}

// DeleteInvoiceInTx removes a draft invoice and any remaining lines.
func (r *PgxInvoiceRepository) DeleteInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1;`, invoiceID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines of invoice "+invoiceID, err)
	}
	cmdTag, err := tx.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete invoice "+invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + invoiceID + " not found")
	}
	return nil
}

// RecomputeTotalsInTx rewrites the cached subtotal/tax/total columns from the
// current line set and returns the refreshed invoice.
func (r *PgxInvoiceRepository) RecomputeTotalsInTx(ctx context.Context, tx pgx.Tx, invoiceID string, userID string) (*domain.Invoice, error) {
	query := `
		UPDATE invoices i
		SET subtotal = s.line_sum,
		    total = s.line_sum + i.tax_amount,
		    last_updated_at = $2,
		    last_updated_by = $3
		FROM (
			SELECT COALESCE(SUM(line_total), 0) AS line_sum
			FROM invoice_lines
			WHERE invoice_id = $1
		) s
		WHERE i.invoice_id = $1
		RETURNING ` + prefixedInvoiceColumns("i") + `;
	`
	m, err := scanInvoice(tx.QueryRow(ctx, query, invoiceID, time.Now().UTC(), userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to recompute totals for invoice "+invoiceID, err)
	}
	d := mapping.ToDomainInvoice(m)
	return &d, nil
}

// NextSequenceInTx computes max(sequence)+1 for the year. A transaction-scoped
// advisory lock keyed by year serializes concurrent issuances so the scan cannot
// race; the lock releases when the surrounding transaction ends.
func (r *PgxInvoiceRepository) NextSequenceInTx(ctx context.Context, tx pgx.Tx, year int) (int, error) {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2);`, invoiceSeqLockClass, year); err != nil {
		return 0, apperrors.NewAppError(500, fmt.Sprintf("failed to acquire sequence lock for year %d", year), err)
	}

	var next int
	query := `
		SELECT COALESCE(MAX(sequence), 0) + 1
		FROM invoices
		WHERE invoice_year = $1;
	`
	if err := tx.QueryRow(ctx, query, year).Scan(&next); err != nil {
		return 0, apperrors.NewAppError(500, fmt.Sprintf("failed to compute next sequence for year %d", year), err)
	}
	return next, nil
}

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	var number *string
	var year, sequence *int
	err := row.Scan(
		&m.InvoiceID,
		&m.ClientID,
		&number,
		&year,
		&sequence,
		&m.IssueDate,
		&m.DueDate,
		&m.Status,
		&m.Notes,
		&m.Subtotal,
		&m.TaxAmount,
		&m.Total,
		&m.PostingStatus,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if number != nil {
		m.InvoiceNumber = *number
	}
	if year != nil {
		m.InvoiceYear = *year
	}
	if sequence != nil {
		m.Sequence = *sequence
	}
	return m, err
}

func scanInvoiceLine(row pgx.Row) (models.InvoiceLine, error) {
	var m models.InvoiceLine
	err := row.Scan(
		&m.LineID,
		&m.InvoiceID,
		&m.LineType,
		&m.Description,
		&m.Quantity,
		&m.UnitPrice,
		&m.LineTotal,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func prefixedInvoiceColumns(alias string) string {
	return alias + `.invoice_id, ` + alias + `.client_id, ` + alias + `.invoice_number, ` + alias + `.invoice_year, ` + alias + `.sequence, ` +
		alias + `.issue_date, ` + alias + `.due_date, ` + alias + `.status, ` + alias + `.notes, ` + alias + `.subtotal, ` +
		alias + `.tax_amount, ` + alias + `.total, ` + alias + `.posting_status, ` + alias + `.created_at, ` + alias + `.created_by, ` +
		alias + `.last_updated_at, ` + alias + `.last_updated_by`
}

// nullableString maps the zero value to NULL so unissued invoices do not collide on
// the unique invoice_number index.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
