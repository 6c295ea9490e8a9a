package services

import (
	"context"

	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/arduabooks/backend/internal/dto"
)

// PaymentSvcFacade is the payment allocator. Allocation is atomic per request: all
// targets apply or none do, and the ledger is posted once per payment.
type PaymentSvcFacade interface {
	// RecordPayment stores a received payment and optionally allocates it to
	// invoices in the same transaction, then posts the payment to the ledger.
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error)

	// Allocate distributes a payment's unapplied balance across invoices. Fails
	// atomically with ErrOverAllocation when the requested total exceeds the
	// unapplied balance. Invoices reaching full payment transition to PAID.
	Allocate(ctx context.Context, paymentID string, targets []dto.AllocationTarget, userID string) (*domain.Payment, error)

	// GetPayment retrieves a payment with its applications.
	GetPayment(ctx context.Context, paymentID string) (*domain.Payment, []domain.PaymentApplication, error)

	// ListPayments retrieves payments with an optional client filter.
	ListPayments(ctx context.Context, clientID *string, limit, offset int) ([]domain.Payment, error)
}
