package repositories

import (
	"context"

	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// InvoiceReader defines read operations for invoices and their lines.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice header.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindLinesByInvoiceID retrieves an invoice's lines in creation order.
	FindLinesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error)

	// FindLineByID retrieves a single invoice line.
	FindLineByID(ctx context.Context, lineID string) (*domain.InvoiceLine, error)

	// ListInvoices retrieves invoices, optionally filtered by client and status,
	// newest issue date first.
	ListInvoices(ctx context.Context, clientID *string, status *domain.InvoiceStatus, limit, offset int) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoices. Mutations of an invoice's
// state or line set run inside a transaction holding a FOR UPDATE lock on the
// invoice row, acquired through FindInvoiceByIDForUpdate.
type InvoiceWriter interface {
	// SaveInvoice inserts a new draft invoice. The partial unique index on
	// (client_id) WHERE status = 'DRAFT' turns a concurrent duplicate draft into
	// ErrDraftExists.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// FindInvoiceByIDForUpdate locks and retrieves the invoice row.
	FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error)

	// UpdateInvoiceInTx writes the mutable header fields (number, dates, status,
	// posting status, cached totals).
	UpdateInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error

	// SaveLineInTx inserts an invoice line.
	SaveLineInTx(ctx context.Context, tx pgx.Tx, line domain.InvoiceLine) error

	// DeleteLineInTx removes an invoice line.
	DeleteLineInTx(ctx context.Context, tx pgx.Tx, lineID string) error

	// DeleteInvoiceInTx removes a draft invoice and any remaining lines.
	DeleteInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceID string) error

	// RecomputeTotalsInTx rewrites the cached subtotal/tax/total columns from the
	// current line set and returns the new totals.
	RecomputeTotalsInTx(ctx context.Context, tx pgx.Tx, invoiceID string, userID string) (*domain.Invoice, error)

	// NextSequenceInTx computes max(sequence)+1 for the year under a per-year
	// advisory lock held until the surrounding transaction commits.
	NextSequenceInTx(ctx context.Context, tx pgx.Tx, year int) (int, error)
}

// InvoiceRepositoryFacade combines invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction capabilities.
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
