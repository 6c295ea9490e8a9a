package services

import (
	"context"
	"time"

	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade defines read access to the ledger store. Journal entries are
// written only by the posting engine as part of a document transition; manual
// ledger edits are never permitted.
type LedgerSvcFacade interface {
	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, []domain.JournalLine, error)

	// EntriesForDocument lists all entries posted for a business document.
	EntriesForDocument(ctx context.Context, ref domain.DocumentRef) ([]domain.JournalEntry, error)

	// LinesForAccount lists ledger lines for an account within an optional date range.
	LinesForAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.JournalLine, error)
}

// PostingSvcFacade is the posting engine: the only component permitted to create or
// reverse journal entries for business documents. Callers own the transaction and
// must hold a row lock on the document for the duration of the call.
type PostingSvcFacade interface {
	// Post records a balanced entry for the document after validating entry-count
	// parity against the intended transition. Returns "" with no error when the
	// document is already in the target state (no-op success).
	Post(ctx context.Context, tx pgx.Tx, intent domain.PostingIntent, ref domain.DocumentRef, description string, lines []domain.LineSpec, userID string) (string, error)

	// Reverse mirrors the document's most recent forward entry (debits and credits
	// swapped per line, accounts preserved) through the same parity check.
	Reverse(ctx context.Context, tx pgx.Tx, ref domain.DocumentRef, description string, userID string) (string, error)

	// PostInvoiceIssued posts Dr AR / Cr Revenue for the invoice total.
	PostInvoiceIssued(ctx context.Context, tx pgx.Tx, invoice domain.Invoice, userID string) (string, error)

	// ReverseInvoice posts the mirror of the invoice's issuance entry.
	ReverseInvoice(ctx context.Context, tx pgx.Tx, invoice domain.Invoice, userID string) (string, error)

	// PostPaymentReceived posts Dr Cash for the payment total, Cr AR for the
	// applied portion and Cr Unapplied-Payments for the remainder.
	PostPaymentReceived(ctx context.Context, tx pgx.Tx, payment domain.Payment, appliedTotal decimal.Decimal, userID string) (string, error)
}
