package repositories

import (
	"context"

	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PaymentReader defines read operations for payments and applications.
type PaymentReader interface {
	// FindPaymentByID retrieves a payment.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// FindApplicationsByPaymentID retrieves a payment's applications in creation order.
	FindApplicationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentApplication, error)

	// ListPayments retrieves payments, optionally filtered by client, newest first.
	ListPayments(ctx context.Context, clientID *string, limit, offset int) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payments. Allocation runs inside a
// transaction holding a FOR UPDATE lock on the payment row.
type PaymentWriter interface {
	// SavePaymentInTx inserts a payment with unapplied amount equal to its total.
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error

	// FindPaymentByIDForUpdate locks and retrieves the payment row.
	FindPaymentByIDForUpdate(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.Payment, error)

	// UpdatePaymentInTx writes the mutable payment fields (unapplied amount,
	// posting status).
	UpdatePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error

	// SaveApplicationInTx inserts a payment application.
	SaveApplicationInTx(ctx context.Context, tx pgx.Tx, app domain.PaymentApplication) error

	// SumApplicationsForInvoiceInTx returns the total applied to an invoice across
	// all payments, inside the current transaction.
	SumApplicationsForInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceID string) (decimal.Decimal, error)

	// CountApplicationsForInvoiceInTx returns how many applications reference the
	// invoice; used to guard ISSUED -> DRAFT.
	CountApplicationsForInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceID string) (int, error)
}

// PaymentRepositoryFacade combines payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}

// PaymentRepositoryWithTx extends PaymentRepositoryFacade with transaction capabilities.
type PaymentRepositoryWithTx interface {
	PaymentRepositoryFacade
	TransactionManager
}
