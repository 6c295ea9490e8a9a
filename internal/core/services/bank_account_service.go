package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arduabooks/backend/internal/core/domain"
	portsrepo "github.com/arduabooks/backend/internal/core/ports/repositories"
	portssvc "github.com/arduabooks/backend/internal/core/ports/services"
	"github.com/arduabooks/backend/internal/dto"
	"github.com/arduabooks/backend/internal/middleware"
	"github.com/arduabooks/backend/internal/utils/accounting"
)

// bankAccountService registers bank account wrappers over ledger accounts and
// reports their balances. A balance is never stored: it is the opening balance plus
// the net ledger movement on the wrapped account.
type bankAccountService struct {
	bankAccountRepo portsrepo.BankAccountRepositoryWithTx
	accountRepo     portsrepo.AccountRepositoryFacade
	ledgerSvc       portssvc.LedgerSvcFacade
}

// NewBankAccountService creates a new BankAccountService.
func NewBankAccountService(
	bankAccountRepo portsrepo.BankAccountRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryFacade,
	ledgerSvc portssvc.LedgerSvcFacade,
) portssvc.BankAccountSvcFacade {
	return &bankAccountService{
		bankAccountRepo: bankAccountRepo,
		accountRepo:     accountRepo,
		ledgerSvc:       ledgerSvc,
	}
}

// Ensure bankAccountService implements the portssvc.BankAccountSvcFacade interface
var _ portssvc.BankAccountSvcFacade = (*bankAccountService)(nil)

// CreateBankAccount creates the backing ledger account and the bank account
// wrapper in one transaction, so a failure leaves neither row behind. Credit
// cards back onto a liability account, everything else an asset.
func (s *bankAccountService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountType := domain.AssetAccount
	if domain.BankAccountType(req.Type) == domain.BankCreditCard {
		accountType = domain.LiabilityAccount
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	glAccount := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        req.AccountCode,
		Name:        fmt.Sprintf("%s %s", req.Institution, req.NumberMasked),
		AccountType: accountType,
		IsActive:    true,
		AuditFields: audit,
	}
	bankAccount := domain.BankAccount{
		BankAccountID:  uuid.NewString(),
		AccountID:      glAccount.AccountID,
		Type:           domain.BankAccountType(req.Type),
		Institution:    req.Institution,
		NumberMasked:   req.NumberMasked,
		OpeningBalance: req.OpeningBalance,
		AuditFields:    audit,
	}

	tx, err := s.bankAccountRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.bankAccountRepo.Rollback(ctx, tx)

	if err := s.accountRepo.SaveAccountInTx(ctx, tx, glAccount); err != nil {
		logger.Error("Failed to create backing ledger account", slog.String("code", req.AccountCode), slog.String("error", err.Error()))
		return nil, err
	}
	if err := s.bankAccountRepo.SaveBankAccountInTx(ctx, tx, bankAccount); err != nil {
		logger.Error("Failed to save bank account", slog.String("account_id", glAccount.AccountID), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.bankAccountRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Bank account created",
		slog.String("bank_account_id", bankAccount.BankAccountID),
		slog.String("account_id", glAccount.AccountID),
	)
	return &bankAccount, nil
}

// GetBalance retrieves a bank account and its computed balance.
func (s *bankAccountService) GetBalance(ctx context.Context, bankAccountID string) (*domain.BankAccount, decimal.Decimal, error) {
	bankAccount, err := s.bankAccountRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	glAccount, err := s.accountRepo.FindAccountByID(ctx, bankAccount.AccountID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	lines, err := s.ledgerSvc.LinesForAccount(ctx, bankAccount.AccountID, nil, nil)
	if err != nil {
		return nil, decimal.Zero, err
	}

	balance := bankAccount.OpeningBalance.Add(accounting.NetMovement(lines, glAccount.AccountType))
	return bankAccount, balance, nil
}

// ListBankAccounts retrieves all bank accounts.
func (s *bankAccountService) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	return s.bankAccountRepo.ListBankAccounts(ctx)
}
