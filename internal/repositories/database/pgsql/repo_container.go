package pgsql

import (
	portsrepo "github.com/arduabooks/backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	clientRepo := newPgxClientRepository(dbPool)
	billingItemRepo := newPgxBillingItemRepository(dbPool)
	bankAccountRepo := newPgxBankAccountRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		LedgerRepo:      ledgerRepo,
		InvoiceRepo:     invoiceRepo,
		PaymentRepo:     paymentRepo,
		ClientRepo:      clientRepo,
		BillingItemRepo: billingItemRepo,
		BankAccountRepo: bankAccountRepo,
	}
}
