package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/arduabooks/backend/internal/apperrors"
	"github.com/arduabooks/backend/internal/core/domain"
	portsrepo "github.com/arduabooks/backend/internal/core/ports/repositories"
	portssvc "github.com/arduabooks/backend/internal/core/ports/services"
	"github.com/arduabooks/backend/internal/dto"
	"github.com/arduabooks/backend/internal/middleware"
)

// paymentService is the payment allocator. An allocation request is atomic: every
// target applies or none does, checked against the locked payment's unapplied
// balance before any write.
type paymentService struct {
	paymentRepo portsrepo.PaymentRepositoryWithTx
	invoiceRepo portsrepo.InvoiceRepositoryWithTx
	clientRepo  portsrepo.ClientRepositoryFacade
	postingSvc  portssvc.PostingSvcFacade
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryWithTx,
	invoiceRepo portsrepo.InvoiceRepositoryWithTx,
	clientRepo portsrepo.ClientRepositoryFacade,
	postingSvc portssvc.PostingSvcFacade,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		postingSvc:  postingSvc,
	}
}

// Ensure paymentService implements the portssvc.PaymentSvcFacade interface
var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordPayment stores a received payment, optionally allocates it to invoices in
// the same transaction, and posts the payment to the ledger exactly once.
func (s *paymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if _, err := s.clientRepo.FindClientByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	payment := domain.Payment{
		PaymentID:       uuid.NewString(),
		ClientID:        req.ClientID,
		Date:            date,
		Amount:          req.Amount,
		Method:          domain.PaymentMethod(req.Method),
		Memo:            req.Memo,
		UnappliedAmount: req.Amount,
		PostingStatus:   domain.Unposted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	tx, err := s.paymentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.paymentRepo.Rollback(ctx, tx)

	if err := s.paymentRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
		return nil, err
	}

	if len(req.Allocations) > 0 {
		if err := s.applyTargetsInTx(ctx, tx, &payment, req.Allocations, userID); err != nil {
			return nil, err
		}
	}

	appliedTotal := payment.Amount.Sub(payment.UnappliedAmount)
	entryID, err := s.postingSvc.PostPaymentReceived(ctx, tx, payment, appliedTotal, userID)
	if err != nil {
		return nil, err
	}
	if entryID != "" {
		payment.PostingStatus = domain.Posted
	}
	payment.LastUpdatedAt = time.Now().UTC()
	payment.LastUpdatedBy = userID
	if err := s.paymentRepo.UpdatePaymentInTx(ctx, tx, payment); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("client_id", payment.ClientID),
		slog.String("amount", payment.Amount.String()),
		slog.String("unapplied", payment.UnappliedAmount.String()),
	)
	return &payment, nil
}

// Allocate distributes an existing payment's unapplied balance across invoices.
// The payment's ledger entry is re-posted to reflect the new applied/unapplied
// split: one reversal plus one forward entry, keeping entry-count parity odd.
func (s *paymentService) Allocate(ctx context.Context, paymentID string, targets []dto.AllocationTarget, userID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: no allocation targets", apperrors.ErrValidation)
	}

	tx, err := s.paymentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.paymentRepo.Rollback(ctx, tx)

	payment, err := s.paymentRepo.FindPaymentByIDForUpdate(ctx, tx, paymentID)
	if err != nil {
		return nil, err
	}

	if err := s.applyTargetsInTx(ctx, tx, payment, targets, userID); err != nil {
		return nil, err
	}

	appliedTotal := payment.Amount.Sub(payment.UnappliedAmount)
	if payment.PostingStatus == domain.Posted {
		description := fmt.Sprintf("Payment %s reallocated", payment.PaymentID)
		if _, err := s.postingSvc.Reverse(ctx, tx, payment.Ref(), description, userID); err != nil {
			return nil, err
		}
	}
	entryID, err := s.postingSvc.PostPaymentReceived(ctx, tx, *payment, appliedTotal, userID)
	if err != nil {
		return nil, err
	}
	if entryID != "" {
		payment.PostingStatus = domain.Posted
	}

	payment.LastUpdatedAt = time.Now().UTC()
	payment.LastUpdatedBy = userID
	if err := s.paymentRepo.UpdatePaymentInTx(ctx, tx, *payment); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Payment allocated",
		slog.String("payment_id", paymentID),
		slog.Int("targets", len(targets)),
		slog.String("unapplied", payment.UnappliedAmount.String()),
	)
	return payment, nil
}

// GetPayment retrieves a payment with its applications.
func (s *paymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, []domain.PaymentApplication, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	apps, err := s.paymentRepo.FindApplicationsByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	return payment, apps, nil
}

// ListPayments retrieves payments with an optional client filter.
func (s *paymentService) ListPayments(ctx context.Context, clientID *string, limit, offset int) ([]domain.Payment, error) {
	return s.paymentRepo.ListPayments(ctx, clientID, limit, offset)
}

// applyTargetsInTx applies allocation targets to a locked payment, mutating its
// unapplied amount. The requested total is checked against the unapplied balance
// up front so an over-allocation fails before any write.
func (s *paymentService) applyTargetsInTx(ctx context.Context, tx pgx.Tx, payment *domain.Payment, targets []dto.AllocationTarget, userID string) error {
	requested := decimal.Zero
	for _, target := range targets {
		if !target.Amount.IsPositive() {
			return fmt.Errorf("%w: allocation amount must be positive", apperrors.ErrValidation)
		}
		requested = requested.Add(target.Amount)
	}
	if requested.GreaterThan(payment.UnappliedAmount) {
		return fmt.Errorf("%w: requested %s exceeds unapplied balance %s",
			apperrors.ErrOverAllocation, requested.String(), payment.UnappliedAmount.String())
	}

	now := time.Now().UTC()
	for _, target := range targets {
		invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, target.InvoiceID)
		if err != nil {
			return err
		}
		if invoice.Status != domain.InvoiceIssued {
			return fmt.Errorf("%w: invoice %s is %s", apperrors.ErrInvoiceNotIssued, invoice.InvoiceID, invoice.Status)
		}
		if invoice.ClientID != payment.ClientID {
			return fmt.Errorf("%w: invoice %s belongs to another client", apperrors.ErrClientMismatch, invoice.InvoiceID)
		}

		applied, err := s.paymentRepo.SumApplicationsForInvoiceInTx(ctx, tx, invoice.InvoiceID)
		if err != nil {
			return err
		}
		outstanding := invoice.Total.Sub(applied)
		if target.Amount.GreaterThan(outstanding) {
			return fmt.Errorf("%w: %s exceeds outstanding balance %s on invoice %s",
				apperrors.ErrOverAllocation, target.Amount.String(), outstanding.String(), invoice.InvoiceID)
		}

		app := domain.PaymentApplication{
			ApplicationID: uuid.NewString(),
			PaymentID:     payment.PaymentID,
			InvoiceID:     invoice.InvoiceID,
			Amount:        target.Amount,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.paymentRepo.SaveApplicationInTx(ctx, tx, app); err != nil {
			return err
		}

		payment.UnappliedAmount = payment.UnappliedAmount.Sub(target.Amount)

		if target.Amount.Equal(outstanding) {
			invoice.Status = domain.InvoicePaid
			invoice.LastUpdatedAt = now
			invoice.LastUpdatedBy = userID
			if err := s.invoiceRepo.UpdateInvoiceInTx(ctx, tx, *invoice); err != nil {
				return err
			}
		}
	}
	return nil
}
