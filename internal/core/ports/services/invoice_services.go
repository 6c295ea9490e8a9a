package services

import (
	"context"

	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/arduabooks/backend/internal/dto"
)

// InvoiceSvcFacade is the invoice lifecycle controller: the state machine over
// DRAFT/ISSUED/PAID/VOID plus line attachment. Every mutating operation runs in a
// single database transaction with the invoice row locked first.
type InvoiceSvcFacade interface {
	// CreateDraft creates an empty draft invoice. Fails with ErrDraftExists when
	// the client already has one.
	CreateDraft(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)

	// GetInvoice retrieves an invoice with its lines.
	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves invoices with optional filters.
	ListInvoices(ctx context.Context, clientID *string, status *domain.InvoiceStatus, limit, offset int) ([]domain.Invoice, error)

	// Issue transitions DRAFT -> ISSUED: assigns the year-scoped invoice number,
	// sets issue/due dates, marks attached items BILLED and forward-posts to the
	// ledger. allowEmpty is the explicit confirmation for zero-line invoices.
	Issue(ctx context.Context, invoiceID string, allowEmpty bool, userID string) (*dto.IssueResult, error)

	// Void transitions DRAFT/ISSUED -> VOID: reverse-posts when issued and reverts
	// source items to UNBILLED, clearing both sides of the item<->line link.
	Void(ctx context.Context, invoiceID string, userID string) error

	// ReturnToDraft transitions ISSUED -> DRAFT when no payments are applied:
	// reverse-posts and makes the invoice editable again. Item links are kept.
	ReturnToDraft(ctx context.Context, invoiceID string, userID string) error

	// DeleteDraft detaches every line, reverts source items to UNBILLED and deletes
	// the draft invoice with its lines.
	DeleteDraft(ctx context.Context, invoiceID string, userID string) error

	// AttachItems attaches unbilled items to a draft invoice as a single
	// all-or-nothing batch and recomputes cached totals.
	AttachItems(ctx context.Context, invoiceID string, req dto.AttachItemsRequest, userID string) (*domain.Invoice, error)

	// AddManualLine adds a GENERAL or ADJUSTMENT line to a draft invoice and
	// recomputes cached totals. Manual lines have no source item to link.
	AddManualLine(ctx context.Context, invoiceID string, req dto.AddInvoiceLineRequest, userID string) (*domain.Invoice, error)

	// DetachLine removes one line from a draft invoice, clears both sides of the
	// source item link, reverts the item to UNBILLED and recomputes totals.
	DetachLine(ctx context.Context, lineID string, userID string) error
}
