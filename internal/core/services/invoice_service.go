package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/arduabooks/backend/internal/apperrors"
	"github.com/arduabooks/backend/internal/core/domain"
	portsrepo "github.com/arduabooks/backend/internal/core/ports/repositories"
	portssvc "github.com/arduabooks/backend/internal/core/ports/services"
	"github.com/arduabooks/backend/internal/dto"
	"github.com/arduabooks/backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// invoiceService is the invoice lifecycle controller. Every mutating operation runs
// in one database transaction that locks the invoice row first, then touches lines,
// source items and the ledger, so concurrent requests serialize on the invoice.
type invoiceService struct {
	invoiceRepo     portsrepo.InvoiceRepositoryWithTx
	billingItemRepo portsrepo.BillingItemRepositoryFacade
	paymentRepo     portsrepo.PaymentRepositoryWithTx
	clientRepo      portsrepo.ClientRepositoryFacade
	postingSvc      portssvc.PostingSvcFacade
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryWithTx,
	billingItemRepo portsrepo.BillingItemRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryWithTx,
	clientRepo portsrepo.ClientRepositoryFacade,
	postingSvc portssvc.PostingSvcFacade,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:     invoiceRepo,
		billingItemRepo: billingItemRepo,
		paymentRepo:     paymentRepo,
		clientRepo:      clientRepo,
		postingSvc:      postingSvc,
	}
}

// Ensure invoiceService implements the portssvc.InvoiceSvcFacade interface
var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateDraft creates an empty draft invoice for a client.
func (s *invoiceService) CreateDraft(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	client, err := s.clientRepo.FindClientByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if !client.IsActive {
		return nil, fmt.Errorf("%w: client %s is inactive", apperrors.ErrValidation, client.ClientID)
	}

	now := time.Now().UTC()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}
	dueDate := issueDate.AddDate(0, 0, client.PaymentTermsDay)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		ClientID:      req.ClientID,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Status:        domain.InvoiceDraft,
		Notes:         req.Notes,
		Subtotal:      decimal.Zero,
		TaxAmount:     decimal.Zero,
		Total:         decimal.Zero,
		PostingStatus: domain.Unposted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		logger.Error("Failed to create draft invoice", slog.String("client_id", req.ClientID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Draft invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("client_id", invoice.ClientID))
	return &invoice, nil
}

// GetInvoice retrieves an invoice with its lines.
func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	lines, err := s.invoiceRepo.FindLinesByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	invoice.Lines = lines
	return invoice, nil
}

// ListInvoices retrieves invoices with optional filters.
func (s *invoiceService) ListInvoices(ctx context.Context, clientID *string, status *domain.InvoiceStatus, limit, offset int) ([]domain.Invoice, error) {
	return s.invoiceRepo.ListInvoices(ctx, clientID, status, limit, offset)
}

// Issue transitions DRAFT -> ISSUED: assigns the year-scoped invoice number, sets
// the issue and due dates, forward-posts to the ledger and commits everything
// atomically. A number is assigned once; an invoice returned to draft keeps its
// number on reissue and the sequence is never reused.
func (s *invoiceService) Issue(ctx context.Context, invoiceID string, allowEmpty bool, userID string) (*dto.IssueResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceDraft {
		return nil, fmt.Errorf("%w: invoice %s is %s", apperrors.ErrInvoiceNotDraft, invoiceID, invoice.Status)
	}

	lines, err := s.invoiceRepo.FindLinesByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 && !allowEmpty {
		return nil, fmt.Errorf("%w: invoice %s has no lines", apperrors.ErrNoLinesAttached, invoiceID)
	}

	invoice, err = s.invoiceRepo.RecomputeTotalsInTx(ctx, tx, invoiceID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoice.IssueDate = now
	client, err := s.clientRepo.FindClientByID(ctx, invoice.ClientID)
	if err != nil {
		return nil, err
	}
	invoice.DueDate = now.AddDate(0, 0, client.PaymentTermsDay)

	if invoice.InvoiceNumber == "" {
		year := now.Year()
		sequence, err := s.invoiceRepo.NextSequenceInTx(ctx, tx, year)
		if err != nil {
			return nil, err
		}
		invoice.InvoiceYear = year
		invoice.Sequence = sequence
		invoice.InvoiceNumber = fmt.Sprintf("%d-%03d", year, sequence)
	}

	entryID, err := s.postingSvc.PostInvoiceIssued(ctx, tx, *invoice, userID)
	if err != nil {
		return nil, err
	}

	invoice.Status = domain.InvoiceIssued
	if entryID != "" {
		invoice.PostingStatus = domain.Posted
	}
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID
	if err := s.invoiceRepo.UpdateInvoiceInTx(ctx, tx, *invoice); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Invoice issued",
		slog.String("invoice_id", invoiceID),
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.String("entry_id", entryID),
	)
	return &dto.IssueResult{
		InvoiceID:     invoiceID,
		InvoiceNumber: invoice.InvoiceNumber,
		EntryID:       entryID,
	}, nil
}

// Void transitions DRAFT or ISSUED -> VOID. An issued invoice is reverse-posted and
// its source items go back to UNBILLED with both sides of the link cleared. An
// invoice with payments applied cannot be voided.
func (s *invoiceService) Void(ctx context.Context, invoiceID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	switch invoice.Status {
	case domain.InvoiceDraft, domain.InvoiceIssued:
	case domain.InvoiceVoid:
		return nil
	default:
		return fmt.Errorf("%w: cannot void a %s invoice", apperrors.ErrConflict, invoice.Status)
	}

	appCount, err := s.paymentRepo.CountApplicationsForInvoiceInTx(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	if appCount > 0 {
		return fmt.Errorf("%w: invoice %s has %d payment applications", apperrors.ErrHasPayments, invoiceID, appCount)
	}

	if _, err := s.postingSvc.ReverseInvoice(ctx, tx, *invoice, userID); err != nil {
		return err
	}

	if err := s.unlinkItemsOfInvoice(ctx, tx, invoiceID, userID); err != nil {
		return err
	}

	now := time.Now().UTC()
	invoice.Status = domain.InvoiceVoid
	invoice.PostingStatus = domain.Unposted
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID
	if err := s.invoiceRepo.UpdateInvoiceInTx(ctx, tx, *invoice); err != nil {
		return err
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("Invoice voided", slog.String("invoice_id", invoiceID))
	return nil
}

// ReturnToDraft transitions ISSUED -> DRAFT when no payments are applied. The
// issuance posting is reversed and the invoice becomes editable again; item links
// and the assigned invoice number are kept.
func (s *invoiceService) ReturnToDraft(ctx context.Context, invoiceID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	if invoice.Status != domain.InvoiceIssued {
		return fmt.Errorf("%w: invoice %s is %s", apperrors.ErrInvoiceNotIssued, invoiceID, invoice.Status)
	}

	appCount, err := s.paymentRepo.CountApplicationsForInvoiceInTx(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	if appCount > 0 {
		return fmt.Errorf("%w: invoice %s has %d payment applications", apperrors.ErrHasPayments, invoiceID, appCount)
	}

	if _, err := s.postingSvc.ReverseInvoice(ctx, tx, *invoice, userID); err != nil {
		return err
	}

	now := time.Now().UTC()
	invoice.Status = domain.InvoiceDraft
	invoice.PostingStatus = domain.Unposted
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID
	if err := s.invoiceRepo.UpdateInvoiceInTx(ctx, tx, *invoice); err != nil {
		return err
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("Invoice returned to draft", slog.String("invoice_id", invoiceID))
	return nil
}

// DeleteDraft reverts every attached item to UNBILLED and deletes the draft invoice
// with its lines.
func (s *invoiceService) DeleteDraft(ctx context.Context, invoiceID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	if invoice.Status != domain.InvoiceDraft {
		return fmt.Errorf("%w: invoice %s is %s", apperrors.ErrInvoiceNotDraft, invoiceID, invoice.Status)
	}

	if err := s.unlinkItemsOfInvoice(ctx, tx, invoiceID, userID); err != nil {
		return err
	}

	if err := s.invoiceRepo.DeleteInvoiceInTx(ctx, tx, invoiceID); err != nil {
		return err
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("Draft invoice deleted", slog.String("invoice_id", invoiceID))
	return nil
}

// AttachItems attaches unbilled items to a draft invoice as one all-or-nothing
// batch: every item is validated against the locked invoice before any link is
// written, and cached totals are recomputed at the end.
func (s *invoiceService) AttachItems(ctx context.Context, invoiceID string, req dto.AttachItemsRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.TimeEntryIDs) == 0 && len(req.ExpenseIDs) == 0 {
		return nil, fmt.Errorf("%w: no items to attach", apperrors.ErrValidation)
	}

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceDraft {
		return nil, fmt.Errorf("%w: invoice %s is %s", apperrors.ErrInvoiceNotDraft, invoiceID, invoice.Status)
	}

	timeEntries, err := s.billingItemRepo.FindTimeEntriesByIDsForUpdate(ctx, tx, req.TimeEntryIDs)
	if err != nil {
		return nil, err
	}
	expenses, err := s.billingItemRepo.FindExpensesByIDsForUpdate(ctx, tx, req.ExpenseIDs)
	if err != nil {
		return nil, err
	}

	// Validate the whole batch before writing anything, naming every rejected
	// item so the caller can fix the full request in one go.
	var rejected []string
	clientMismatch := false
	for _, id := range req.TimeEntryIDs {
		entry := timeEntries[id]
		switch {
		case entry.ClientID != invoice.ClientID:
			rejected = append(rejected, fmt.Sprintf("time entry %s belongs to another client", id))
			clientMismatch = true
		case entry.Status != domain.Unbilled || entry.InvoiceLine != nil:
			rejected = append(rejected, fmt.Sprintf("time entry %s is not unbilled", id))
		}
	}
	for _, id := range req.ExpenseIDs {
		expense := expenses[id]
		switch {
		case expense.ClientID != invoice.ClientID:
			rejected = append(rejected, fmt.Sprintf("expense %s belongs to another client", id))
			clientMismatch = true
		case expense.Status != domain.Unbilled || expense.InvoiceLine != nil:
			rejected = append(rejected, fmt.Sprintf("expense %s is not unbilled", id))
		case !expense.Billable:
			rejected = append(rejected, fmt.Sprintf("expense %s is not billable", id))
		}
	}
	if len(rejected) > 0 {
		sentinel := apperrors.ErrItemNotEligible
		if clientMismatch {
			sentinel = apperrors.ErrClientMismatch
		}
		return nil, fmt.Errorf("%w: %s", sentinel, strings.Join(rejected, "; "))
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	for _, id := range req.TimeEntryIDs {
		entry := timeEntries[id]
		line := domain.InvoiceLine{
			LineID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			LineType:    domain.LineTime,
			Description: fmt.Sprintf("%s - %s", entry.WorkDate.Format("2006-01-02"), entry.Description),
			Quantity:    entry.Hours,
			UnitPrice:   entry.BillingRate,
			AuditFields: audit,
		}
		line.ComputeTotal()
		if err := s.invoiceRepo.SaveLineInTx(ctx, tx, line); err != nil {
			return nil, err
		}
		if err := s.billingItemRepo.LinkTimeEntryInTx(ctx, tx, id, &line.LineID, domain.Billed, userID); err != nil {
			return nil, err
		}
	}
	for _, id := range req.ExpenseIDs {
		expense := expenses[id]
		line := domain.InvoiceLine{
			LineID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			LineType:    domain.LineExpense,
			Description: fmt.Sprintf("%s - %s", expense.ExpenseDate.Format("2006-01-02"), expense.Description),
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   expense.Amount,
			AuditFields: audit,
		}
		line.ComputeTotal()
		if err := s.invoiceRepo.SaveLineInTx(ctx, tx, line); err != nil {
			return nil, err
		}
		if err := s.billingItemRepo.LinkExpenseInTx(ctx, tx, id, &line.LineID, domain.Billed, userID); err != nil {
			return nil, err
		}
	}

	invoice, err = s.invoiceRepo.RecomputeTotalsInTx(ctx, tx, invoiceID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Items attached to invoice",
		slog.String("invoice_id", invoiceID),
		slog.Int("time_entries", len(req.TimeEntryIDs)),
		slog.Int("expenses", len(req.ExpenseIDs)),
	)
	return s.GetInvoice(ctx, invoiceID)
}

// AddManualLine adds a GENERAL or ADJUSTMENT line to a draft invoice and
// recomputes the cached totals. Manual lines carry no source item link, so
// detaching one later just deletes the line.
func (s *invoiceService) AddManualLine(ctx context.Context, invoiceID string, req dto.AddInvoiceLineRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	lineType := domain.InvoiceLineType(req.LineType)
	switch lineType {
	case domain.LineGeneral, domain.LineAdjustment:
	default:
		return nil, fmt.Errorf("%w: line type %q cannot be added manually", apperrors.ErrValidation, req.LineType)
	}
	if req.Quantity.IsZero() {
		return nil, fmt.Errorf("%w: quantity must be non-zero", apperrors.ErrValidation)
	}

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceDraft {
		return nil, fmt.Errorf("%w: invoice %s is %s", apperrors.ErrInvoiceNotDraft, invoiceID, invoice.Status)
	}

	now := time.Now().UTC()
	line := domain.InvoiceLine{
		LineID:      uuid.NewString(),
		InvoiceID:   invoiceID,
		LineType:    lineType,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	line.ComputeTotal()
	if err := s.invoiceRepo.SaveLineInTx(ctx, tx, line); err != nil {
		return nil, err
	}

	if _, err := s.invoiceRepo.RecomputeTotalsInTx(ctx, tx, invoiceID, userID); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Manual line added to invoice",
		slog.String("invoice_id", invoiceID),
		slog.String("line_id", line.LineID),
		slog.String("line_type", string(lineType)),
	)
	return s.GetInvoice(ctx, invoiceID)
}

// DetachLine removes one line from a draft invoice, reverts the source item to
// UNBILLED and recomputes the cached totals.
func (s *invoiceService) DetachLine(ctx context.Context, lineID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	line, err := s.invoiceRepo.FindLineByID(ctx, lineID)
	if err != nil {
		return err
	}

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, line.InvoiceID)
	if err != nil {
		return err
	}
	if invoice.Status != domain.InvoiceDraft {
		return fmt.Errorf("%w: invoice %s is %s", apperrors.ErrInvoiceNotDraft, invoice.InvoiceID, invoice.Status)
	}

	if err := s.unlinkItemsOfLines(ctx, tx, []string{lineID}, userID); err != nil {
		return err
	}

	if err := s.invoiceRepo.DeleteLineInTx(ctx, tx, lineID); err != nil {
		return err
	}

	if _, err := s.invoiceRepo.RecomputeTotalsInTx(ctx, tx, invoice.InvoiceID, userID); err != nil {
		return err
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("Invoice line detached", slog.String("invoice_id", invoice.InvoiceID), slog.String("line_id", lineID))
	return nil
}

// unlinkItemsOfInvoice reverts every item attached to the invoice's lines.
func (s *invoiceService) unlinkItemsOfInvoice(ctx context.Context, tx pgx.Tx, invoiceID string, userID string) error {
	lines, err := s.invoiceRepo.FindLinesByInvoiceID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	lineIDs := make([]string, len(lines))
	for i, line := range lines {
		lineIDs[i] = line.LineID
	}
	return s.unlinkItemsOfLines(ctx, tx, lineIDs, userID)
}

// unlinkItemsOfLines clears both sides of the item<->line link for the given lines
// and reverts the items to UNBILLED.
func (s *invoiceService) unlinkItemsOfLines(ctx context.Context, tx pgx.Tx, lineIDs []string, userID string) error {
	timeEntries, expenses, err := s.billingItemRepo.FindItemsByLineIDsInTx(ctx, tx, lineIDs)
	if err != nil {
		return err
	}
	for _, entry := range timeEntries {
		if err := s.billingItemRepo.LinkTimeEntryInTx(ctx, tx, entry.TimeEntryID, nil, domain.Unbilled, userID); err != nil {
			return err
		}
	}
	for _, expense := range expenses {
		if err := s.billingItemRepo.LinkExpenseInTx(ctx, tx, expense.ExpenseID, nil, domain.Unbilled, userID); err != nil {
			return err
		}
	}
	return nil
}
