package services

import (
	"context"

	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/arduabooks/backend/internal/dto"
	"github.com/shopspring/decimal"
)

// ClientSvcFacade defines client operations consumed by the billing workflow.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest, userID string) (*domain.Client, error)
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error)
}

// BillingItemSvcFacade defines time entry and expense capture plus the unbilled
// item listing the invoice attach picker uses.
type BillingItemSvcFacade interface {
	CreateTimeEntry(ctx context.Context, req dto.CreateTimeEntryRequest, userID string) (*domain.TimeEntry, error)
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error)
	ListUnbilledForClient(ctx context.Context, clientID string) ([]domain.TimeEntry, []domain.Expense, error)
}

// BankAccountSvcFacade defines bank account registration and balance reporting.
// Balances are computed from the ledger through the ledger store's account lines.
type BankAccountSvcFacade interface {
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error)
	GetBalance(ctx context.Context, bankAccountID string) (*domain.BankAccount, decimal.Decimal, error)
	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)
}
