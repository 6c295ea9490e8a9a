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
	"github.com/shopspring/decimal"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryWithTx {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryWithTx
var _ portsrepo.PaymentRepositoryWithTx = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, client_id, date, amount, method, memo, unapplied_amount, posting_status, created_at, created_by, last_updated_at, last_updated_by`

const applicationColumns = `application_id, payment_id, invoice_id, amount, created_at, created_by, last_updated_at, last_updated_by`

// SavePaymentInTx inserts a payment with its unapplied amount already set by the
// service layer.
func (r *PgxPaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)

	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.ClientID,
		m.Date,
		m.Amount,
		m.Method,
		m.Memo,
		m.UnappliedAmount,
		m.PostingStatus,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: payment %s already exists", apperrors.ErrDuplicate, m.PaymentID)
		}
		return apperrors.NewAppError(500, "failed to save payment "+m.PaymentID, err)
	}
	return nil
}

// FindPaymentByID retrieves a payment.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE payment_id = $1;
	`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment "+paymentID, err)
	}
	d := mapping.ToDomainPayment(m)
	return &d, nil
}

// FindPaymentByIDForUpdate locks and retrieves the payment row inside the caller's
// transaction. Allocation always works against this lock.
func (r *PgxPaymentRepository) FindPaymentByIDForUpdate(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE payment_id = $1
		FOR UPDATE;
	`
	m, err := scanPayment(tx.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock payment "+paymentID, err)
	}
	d := mapping.ToDomainPayment(m)
	return &d, nil
}

// UpdatePaymentInTx writes the mutable payment fields.
func (r *PgxPaymentRepository) UpdatePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)

	query := `
		UPDATE payments
		SET unapplied_amount = $2,
		    posting_status = $3,
		    memo = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE payment_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.UnappliedAmount,
		m.PostingStatus,
		m.Memo,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment "+m.PaymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("payment " + m.PaymentID + " not found for update")
	}
	return nil
}

// SaveApplicationInTx inserts a payment application.
func (r *PgxPaymentRepository) SaveApplicationInTx(ctx context.Context, tx pgx.Tx, app domain.PaymentApplication) error {
	m := mapping.ToModelPaymentApplication(app)

	query := `
		INSERT INTO payment_applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		m.ApplicationID,
		m.PaymentID,
		m.InvoiceID,
		m.Amount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save application "+m.ApplicationID, err)
	}
	return nil
}

// FindApplicationsByPaymentID retrieves a payment's applications in creation order.
func (r *PgxPaymentRepository) FindApplicationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentApplication, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM payment_applications
		WHERE payment_id = $1
		ORDER BY created_at, application_id;
	`
	rows, err := r.Pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query applications for payment "+paymentID, err)
	}
	defer rows.Close()

	apps := []models.PaymentApplication{}
	for rows.Next() {
		var m models.PaymentApplication
		err := rows.Scan(
			&m.ApplicationID,
			&m.PaymentID,
			&m.InvoiceID,
			&m.Amount,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan application row for payment "+paymentID, err)
		}
		apps = append(apps, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating application rows for payment "+paymentID, err)
	}
	return mapping.ToDomainPaymentApplicationSlice(apps), nil
}

// ListPayments retrieves payments, optionally filtered by client, newest first.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, clientID *string, limit, offset int) ([]domain.Payment, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE ($1::text IS NULL OR client_id = $1)
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, clientID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list payments", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments = append(payments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}
	return mapping.ToDomainPaymentSlice(payments), nil
}

// SumApplicationsForInvoiceInTx returns the total applied to an invoice across all
// payments, inside the current transaction.
func (r *PgxPaymentRepository) SumApplicationsForInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payment_applications
		WHERE invoice_id = $1;
	`
	if err := tx.QueryRow(ctx, query, invoiceID).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum applications for invoice "+invoiceID, err)
	}
	return sum, nil
}

// CountApplicationsForInvoiceInTx returns how many applications reference the invoice.
func (r *PgxPaymentRepository) CountApplicationsForInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceID string) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM payment_applications
		WHERE invoice_id = $1;
	`
	if err := tx.QueryRow(ctx, query, invoiceID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count applications for invoice "+invoiceID, err)
	}
	return count, nil
}

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.ClientID,
		&m.Date,
		&m.Amount,
		&m.Method,
		&m.Memo,
		&m.UnappliedAmount,
		&m.PostingStatus,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
