package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/arduabooks/backend/internal/apperrors"
	"github.com/arduabooks/backend/internal/core/domain"
	portsrepo "github.com/arduabooks/backend/internal/core/ports/repositories"
	portssvc "github.com/arduabooks/backend/internal/core/ports/services"
	"github.com/arduabooks/backend/internal/middleware"
	"github.com/arduabooks/backend/internal/utils/accounting"
)

// postingService is the posting engine: the only component that creates or reverses
// journal entries for business documents. Idempotency rests on entry-count parity
// per document: an odd count means posted, an even count means unposted or fully
// reversed. Callers own the transaction and hold a row lock on the document, so the
// parity read and the entry write are atomic.
type postingService struct {
	ledgerRepo portsrepo.LedgerRepositoryWithTx
	accountSvc portssvc.AccountSvcFacade
}

// NewPostingService creates a new PostingService.
func NewPostingService(ledgerRepo portsrepo.LedgerRepositoryWithTx, accountSvc portssvc.AccountSvcFacade) portssvc.PostingSvcFacade {
	return &postingService{
		ledgerRepo: ledgerRepo,
		accountSvc: accountSvc,
	}
}

// Ensure postingService implements the portssvc.PostingSvcFacade interface
var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// Post records a balanced entry for the document after checking entry-count parity
// against the intended transition. Returns "" with no error when the document is
// already in the target state, so a double-submitted request lands as a no-op.
func (s *postingService) Post(ctx context.Context, tx pgx.Tx, intent domain.PostingIntent, ref domain.DocumentRef, description string, lines []domain.LineSpec, userID string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	count, err := s.ledgerRepo.CountEntriesForDocumentInTx(ctx, tx, ref)
	if err != nil {
		return "", err
	}
	posted := count%2 == 1

	switch intent {
	case domain.PostForward:
		if posted {
			logger.Info("Document already posted, skipping", slog.String("document", ref.String()))
			return "", nil
		}
	case domain.PostReverse:
		if !posted {
			logger.Info("Document already unposted, skipping", slog.String("document", ref.String()))
			return "", nil
		}
	default:
		return "", fmt.Errorf("%w: unknown posting intent %q", apperrors.ErrValidation, intent)
	}

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return "", err
	}

	entry, journalLines := buildEntry(domain.JournalEntrySpec{
		Description: description,
		Source:      ref,
		PostedAt:    time.Now().UTC(),
		PostedBy:    userID,
		Lines:       lines,
	})
	if err := s.ledgerRepo.SaveEntryInTx(ctx, tx, entry, journalLines); err != nil {
		return "", err
	}

	logger.Info("Posted journal entry",
		slog.String("entry_id", entry.EntryID),
		slog.String("document", ref.String()),
		slog.String("intent", string(intent)),
	)
	return entry.EntryID, nil
}

// Reverse mirrors the document's most recent forward entry: debits and credits
// swapped per line, accounts and line order preserved.
func (s *postingService) Reverse(ctx context.Context, tx pgx.Tx, ref domain.DocumentRef, description string, userID string) (string, error) {
	count, err := s.ledgerRepo.CountEntriesForDocumentInTx(ctx, tx, ref)
	if err != nil {
		return "", err
	}
	if count%2 == 0 {
		middleware.GetLoggerFromCtx(ctx).Info("Document already unposted, skipping", slog.String("document", ref.String()))
		return "", nil
	}

	_, lines, err := s.ledgerRepo.FindLatestEntryForDocumentInTx(ctx, tx, ref)
	if err != nil {
		return "", err
	}

	return s.Post(ctx, tx, domain.PostReverse, ref, description, accounting.MirrorLines(lines), userID)
}

// PostInvoiceIssued posts Dr accounts-receivable / Cr revenue for the invoice
// total. A zero-total invoice produces no ledger entry.
func (s *postingService) PostInvoiceIssued(ctx context.Context, tx pgx.Tx, invoice domain.Invoice, userID string) (string, error) {
	if invoice.Total.IsZero() {
		return "", nil
	}

	accounts, err := s.accountSvc.ResolvePostingAccounts(ctx)
	if err != nil {
		return "", err
	}

	lines := []domain.LineSpec{
		{AccountID: accounts.Receivable.AccountID, Debit: invoice.Total},
		{AccountID: accounts.Revenue.AccountID, Credit: invoice.Total},
	}
	description := fmt.Sprintf("Invoice %s issued", invoice.InvoiceNumber)
	return s.Post(ctx, tx, domain.PostForward, invoice.Ref(), description, lines, userID)
}

// ReverseInvoice posts the mirror of the invoice's issuance entry.
func (s *postingService) ReverseInvoice(ctx context.Context, tx pgx.Tx, invoice domain.Invoice, userID string) (string, error) {
	description := fmt.Sprintf("Invoice %s reversed", invoice.InvoiceNumber)
	return s.Reverse(ctx, tx, invoice.Ref(), description, userID)
}

// PostPaymentReceived posts Dr cash for the payment total, Cr accounts-receivable
// for the applied portion and Cr unapplied-payments for the remainder. Zero-amount
// lines are omitted.
func (s *postingService) PostPaymentReceived(ctx context.Context, tx pgx.Tx, payment domain.Payment, appliedTotal decimal.Decimal, userID string) (string, error) {
	if appliedTotal.IsNegative() || appliedTotal.GreaterThan(payment.Amount) {
		return "", fmt.Errorf("%w: applied total %s outside payment amount %s",
			apperrors.ErrValidation, appliedTotal.String(), payment.Amount.String())
	}

	accounts, err := s.accountSvc.ResolvePostingAccounts(ctx)
	if err != nil {
		return "", err
	}

	unapplied := payment.Amount.Sub(appliedTotal)
	lines := []domain.LineSpec{
		{AccountID: accounts.Cash.AccountID, Debit: payment.Amount},
	}
	if !appliedTotal.IsZero() {
		lines = append(lines, domain.LineSpec{AccountID: accounts.Receivable.AccountID, Credit: appliedTotal})
	}
	if !unapplied.IsZero() {
		lines = append(lines, domain.LineSpec{AccountID: accounts.Unapplied.AccountID, Credit: unapplied})
	}

	description := fmt.Sprintf("Payment %s received", payment.PaymentID)
	return s.Post(ctx, tx, domain.PostForward, payment.Ref(), description, lines, userID)
}
