package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/arduabooks/backend/internal/core/domain"
	portsrepo "github.com/arduabooks/backend/internal/core/ports/repositories"
	portssvc "github.com/arduabooks/backend/internal/core/ports/services"
	"github.com/arduabooks/backend/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryWithTx = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesForDocument(ctx context.Context, ref domain.DocumentRef) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerRepository) LinesForAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.JournalLine, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockLedgerRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, tx, entry, lines)
	return args.Error(0)
}

func (m *MockLedgerRepository) CountEntriesForDocumentInTx(ctx context.Context, tx pgx.Tx, ref domain.DocumentRef) (int, error) {
	args := m.Called(ctx, tx, ref)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) FindLatestEntryForDocumentInTx(ctx context.Context, tx pgx.Tx, ref domain.DocumentRef) (*domain.JournalEntry, []domain.JournalLine, error) {
	args := m.Called(ctx, tx, ref)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.JournalEntry), args.Get(1).([]domain.JournalLine), args.Error(2)
}

func (m *MockLedgerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLedgerRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryWithTx = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindLinesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceLine), args.Error(1)
}

func (m *MockInvoiceRepository) FindLineByID(ctx context.Context, lineID string) (*domain.InvoiceLine, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceLine), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, clientID *string, status *domain.InvoiceStatus, limit, offset int) ([]domain.Invoice, error) {
	args := m.Called(ctx, clientID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, tx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	args := m.Called(ctx, tx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveLineInTx(ctx context.Context, tx pgx.Tx, line domain.InvoiceLine) error {
	args := m.Called(ctx, tx, line)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteLineInTx(ctx context.Context, tx pgx.Tx, lineID string) error {
	args := m.Called(ctx, tx, lineID)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceID string) error {
	args := m.Called(ctx, tx, invoiceID)
	return args.Error(0)
}

func (m *MockInvoiceRepository) RecomputeTotalsInTx(ctx context.Context, tx pgx.Tx, invoiceID string, userID string) (*domain.Invoice, error) {
	args := m.Called(ctx, tx, invoiceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) NextSequenceInTx(ctx context.Context, tx pgx.Tx, year int) (int, error) {
	args := m.Called(ctx, tx, year)
	return args.Int(0), args.Error(1)
}

func (m *MockInvoiceRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockInvoiceRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryWithTx = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindApplicationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentApplication, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentApplication), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, clientID *string, limit, offset int) ([]domain.Payment, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindPaymentByIDForUpdate(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, tx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdatePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) SaveApplicationInTx(ctx context.Context, tx pgx.Tx, app domain.PaymentApplication) error {
	args := m.Called(ctx, tx, app)
	return args.Error(0)
}

func (m *MockPaymentRepository) SumApplicationsForInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, invoiceID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) CountApplicationsForInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceID string) (int, error) {
	args := m.Called(ctx, tx, invoiceID)
	return args.Int(0), args.Error(1)
}

func (m *MockPaymentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPaymentRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPaymentRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock ClientRepository ---
type MockClientRepository struct {
	mock.Mock
}

var _ portsrepo.ClientRepositoryFacade = (*MockClientRepository)(nil)

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

// --- Mock BillingItemRepository ---
type MockBillingItemRepository struct {
	mock.Mock
}

var _ portsrepo.BillingItemRepositoryFacade = (*MockBillingItemRepository)(nil)

func (m *MockBillingItemRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockBillingItemRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockBillingItemRepository) FindTimeEntryByID(ctx context.Context, timeEntryID string) (*domain.TimeEntry, error) {
	args := m.Called(ctx, timeEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeEntry), args.Error(1)
}

func (m *MockBillingItemRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockBillingItemRepository) ListUnbilledForClient(ctx context.Context, clientID string) ([]domain.TimeEntry, []domain.Expense, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.TimeEntry), args.Get(1).([]domain.Expense), args.Error(2)
}

func (m *MockBillingItemRepository) FindTimeEntriesByIDsForUpdate(ctx context.Context, tx pgx.Tx, ids []string) (map[string]domain.TimeEntry, error) {
	args := m.Called(ctx, tx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.TimeEntry), args.Error(1)
}

func (m *MockBillingItemRepository) FindExpensesByIDsForUpdate(ctx context.Context, tx pgx.Tx, ids []string) (map[string]domain.Expense, error) {
	args := m.Called(ctx, tx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Expense), args.Error(1)
}

func (m *MockBillingItemRepository) LinkTimeEntryInTx(ctx context.Context, tx pgx.Tx, timeEntryID string, lineID *string, status domain.BillableStatus, userID string) error {
	args := m.Called(ctx, tx, timeEntryID, lineID, status, userID)
	return args.Error(0)
}

func (m *MockBillingItemRepository) LinkExpenseInTx(ctx context.Context, tx pgx.Tx, expenseID string, lineID *string, status domain.BillableStatus, userID string) error {
	args := m.Called(ctx, tx, expenseID, lineID, status, userID)
	return args.Error(0)
}

func (m *MockBillingItemRepository) FindItemsByLineIDsInTx(ctx context.Context, tx pgx.Tx, lineIDs []string) ([]domain.TimeEntry, []domain.Expense, error) {
	args := m.Called(ctx, tx, lineIDs)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.TimeEntry), args.Get(1).([]domain.Expense), args.Error(2)
}

// --- Mock BankAccountRepository ---
type MockBankAccountRepository struct {
	mock.Mock
}

var _ portsrepo.BankAccountRepositoryWithTx = (*MockBankAccountRepository)(nil)

func (m *MockBankAccountRepository) SaveBankAccountInTx(ctx context.Context, tx pgx.Tx, account domain.BankAccount) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockBankAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockBankAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockBankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

// --- Mock PostingService (as used by invoice and payment services) ---
type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) Post(ctx context.Context, tx pgx.Tx, intent domain.PostingIntent, ref domain.DocumentRef, description string, lines []domain.LineSpec, userID string) (string, error) {
	args := m.Called(ctx, tx, intent, ref, description, lines, userID)
	return args.String(0), args.Error(1)
}

func (m *MockPostingService) Reverse(ctx context.Context, tx pgx.Tx, ref domain.DocumentRef, description string, userID string) (string, error) {
	args := m.Called(ctx, tx, ref, description, userID)
	return args.String(0), args.Error(1)
}

func (m *MockPostingService) PostInvoiceIssued(ctx context.Context, tx pgx.Tx, invoice domain.Invoice, userID string) (string, error) {
	args := m.Called(ctx, tx, invoice, userID)
	return args.String(0), args.Error(1)
}

func (m *MockPostingService) ReverseInvoice(ctx context.Context, tx pgx.Tx, invoice domain.Invoice, userID string) (string, error) {
	args := m.Called(ctx, tx, invoice, userID)
	return args.String(0), args.Error(1)
}

func (m *MockPostingService) PostPaymentReceived(ctx context.Context, tx pgx.Tx, payment domain.Payment, appliedTotal decimal.Decimal, userID string) (string, error) {
	args := m.Called(ctx, tx, payment, appliedTotal, userID)
	return args.String(0), args.Error(1)
}

// --- Mock AccountService (as used by the posting engine) ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) ResolvePostingAccounts(ctx context.Context) (*portssvc.PostingAccounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.PostingAccounts), args.Error(1)
}
