package repositories

import (
	"context"

	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ClientRepositoryFacade defines operations on clients. The core reads clients to
// validate item eligibility and snapshot rates; creation is billing-side plumbing.
type ClientRepositoryFacade interface {
	SaveClient(ctx context.Context, client domain.Client) error
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error)
}

// BillingItemReader defines read operations for time entries and expenses.
type BillingItemReader interface {
	FindTimeEntryByID(ctx context.Context, timeEntryID string) (*domain.TimeEntry, error)
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListUnbilledForClient retrieves a client's unbilled time entries and billable
	// expenses, for the attach picker.
	ListUnbilledForClient(ctx context.Context, clientID string) ([]domain.TimeEntry, []domain.Expense, error)
}

// BillingItemWriter defines write operations used by the invoice lifecycle. The
// link between a source item and its invoice line is bidirectional; both sides are
// written inside the same transaction, never by object-graph mutation.
type BillingItemWriter interface {
	SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// FindTimeEntriesByIDsForUpdate locks and retrieves the given time entries.
	FindTimeEntriesByIDsForUpdate(ctx context.Context, tx pgx.Tx, ids []string) (map[string]domain.TimeEntry, error)

	// FindExpensesByIDsForUpdate locks and retrieves the given expenses.
	FindExpensesByIDsForUpdate(ctx context.Context, tx pgx.Tx, ids []string) (map[string]domain.Expense, error)

	// LinkTimeEntryInTx sets the entry's invoice line reference and billed status.
	LinkTimeEntryInTx(ctx context.Context, tx pgx.Tx, timeEntryID string, lineID *string, status domain.BillableStatus, userID string) error

	// LinkExpenseInTx sets the expense's invoice line reference and billed status.
	LinkExpenseInTx(ctx context.Context, tx pgx.Tx, expenseID string, lineID *string, status domain.BillableStatus, userID string) error

	// FindItemsByLineIDsInTx resolves which time entries and expenses point at the
	// given invoice lines.
	FindItemsByLineIDsInTx(ctx context.Context, tx pgx.Tx, lineIDs []string) ([]domain.TimeEntry, []domain.Expense, error)
}

// BillingItemRepositoryFacade combines billing item repository interfaces.
type BillingItemRepositoryFacade interface {
	BillingItemReader
	BillingItemWriter
}

// BankAccountRepositoryFacade defines operations on bank account wrappers. The
// wrapper row and its backing ledger account are created in one transaction, so
// the save is tx-scoped.
type BankAccountRepositoryFacade interface {
	SaveBankAccountInTx(ctx context.Context, tx pgx.Tx, account domain.BankAccount) error
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)
}

// BankAccountRepositoryWithTx extends BankAccountRepositoryFacade with transaction capabilities.
type BankAccountRepositoryWithTx interface {
	BankAccountRepositoryFacade
	TransactionManager
}
