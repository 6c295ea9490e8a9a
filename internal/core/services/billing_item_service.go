package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arduabooks/backend/internal/apperrors"
	"github.com/arduabooks/backend/internal/core/domain"
	portsrepo "github.com/arduabooks/backend/internal/core/ports/repositories"
	portssvc "github.com/arduabooks/backend/internal/core/ports/services"
	"github.com/arduabooks/backend/internal/dto"
	"github.com/arduabooks/backend/internal/middleware"
)

// billingItemService captures billable time and expenses. The billing rate on a
// time entry is a snapshot: changing the client's default later never reprices
// work already logged.
type billingItemService struct {
	billingItemRepo portsrepo.BillingItemRepositoryFacade
	clientRepo      portsrepo.ClientRepositoryFacade
}

// NewBillingItemService creates a new BillingItemService.
func NewBillingItemService(billingItemRepo portsrepo.BillingItemRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade) portssvc.BillingItemSvcFacade {
	return &billingItemService{
		billingItemRepo: billingItemRepo,
		clientRepo:      clientRepo,
	}
}

// Ensure billingItemService implements the portssvc.BillingItemSvcFacade interface
var _ portssvc.BillingItemSvcFacade = (*billingItemService)(nil)

// CreateTimeEntry logs billable time for a client.
func (s *billingItemService) CreateTimeEntry(ctx context.Context, req dto.CreateTimeEntryRequest, userID string) (*domain.TimeEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Hours.IsPositive() {
		return nil, fmt.Errorf("%w: hours must be positive", apperrors.ErrValidation)
	}

	client, err := s.clientRepo.FindClientByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	var rate decimal.Decimal
	switch {
	case req.BillingRate != nil:
		rate = *req.BillingRate
	case client.DefaultRate != nil:
		rate = *client.DefaultRate
	default:
		return nil, fmt.Errorf("%w: no billing rate given and client %s has no default rate", apperrors.ErrValidation, client.ClientID)
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("%w: billing rate must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	workDate := now
	if req.WorkDate != nil {
		workDate = *req.WorkDate
	}

	entry := domain.TimeEntry{
		TimeEntryID: uuid.NewString(),
		ClientID:    req.ClientID,
		WorkDate:    workDate,
		Hours:       req.Hours,
		Description: req.Description,
		BillingRate: rate,
		Status:      domain.Unbilled,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.billingItemRepo.SaveTimeEntry(ctx, entry); err != nil {
		logger.Error("Failed to save time entry", slog.String("client_id", req.ClientID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Time entry created", slog.String("time_entry_id", entry.TimeEntryID), slog.String("client_id", entry.ClientID))
	return &entry, nil
}

// CreateExpense logs an expense for a client. Billable defaults to true.
func (s *billingItemService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}
	if _, err := s.clientRepo.FindClientByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expenseDate := now
	if req.ExpenseDate != nil {
		expenseDate = *req.ExpenseDate
	}
	billable := true
	if req.Billable != nil {
		billable = *req.Billable
	}

	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		ClientID:    req.ClientID,
		ExpenseDate: expenseDate,
		Amount:      req.Amount,
		Description: req.Description,
		Billable:    billable,
		Status:      domain.Unbilled,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.billingItemRepo.SaveExpense(ctx, expense); err != nil {
		logger.Error("Failed to save expense", slog.String("client_id", req.ClientID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Expense created", slog.String("expense_id", expense.ExpenseID), slog.String("client_id", expense.ClientID))
	return &expense, nil
}

// ListUnbilledForClient retrieves the client's attachable items.
func (s *billingItemService) ListUnbilledForClient(ctx context.Context, clientID string) ([]domain.TimeEntry, []domain.Expense, error) {
	if _, err := s.clientRepo.FindClientByID(ctx, clientID); err != nil {
		return nil, nil, err
	}
	return s.billingItemRepo.ListUnbilledForClient(ctx, clientID)
}
