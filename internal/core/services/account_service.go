package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/arduabooks/backend/internal/apperrors"
	"github.com/arduabooks/backend/internal/core/domain"
	portsrepo "github.com/arduabooks/backend/internal/core/ports/repositories"
	portssvc "github.com/arduabooks/backend/internal/core/ports/services"
	"github.com/arduabooks/backend/internal/dto"
	"github.com/arduabooks/backend/internal/middleware"
	"github.com/arduabooks/backend/pkg/config"
)

// accountService provides chart-of-accounts operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	codes       config.PostingAccountCodes
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, codes config.PostingAccountCodes) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		codes:       codes,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new chart-of-accounts entry.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        req.Code,
		Name:        req.Name,
		AccountType: domain.AccountType(req.AccountType),
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("code", req.Code), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves an account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// ListAccounts retrieves accounts ordered by type then code.
func (s *accountService) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}

// DeactivateAccount flags an account inactive.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID); err != nil {
		logger.Error("Failed to deactivate account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return err
	}
	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// ResolvePostingAccounts resolves the configured posting account codes into live
// chart-of-accounts rows. A code with no active account is a configuration fault,
// reported before any ledger write happens.
func (s *accountService) ResolvePostingAccounts(ctx context.Context) (*portssvc.PostingAccounts, error) {
	codes := []string{s.codes.Receivable, s.codes.Revenue, s.codes.Cash, s.codes.Unapplied}
	byCode, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}

	resolve := func(code, role string) (domain.Account, error) {
		account, ok := byCode[code]
		if !ok {
			return domain.Account{}, fmt.Errorf("%w: no active account with code %s for %s", apperrors.ErrAccountNotConfigured, code, role)
		}
		return account, nil
	}

	result := &portssvc.PostingAccounts{}
	if result.Receivable, err = resolve(s.codes.Receivable, "accounts receivable"); err != nil {
		return nil, err
	}
	if result.Revenue, err = resolve(s.codes.Revenue, "revenue"); err != nil {
		return nil, err
	}
	if result.Cash, err = resolve(s.codes.Cash, "cash"); err != nil {
		return nil, err
	}
	if result.Unapplied, err = resolve(s.codes.Unapplied, "unapplied payments"); err != nil {
		return nil, err
	}
	return result, nil
}
