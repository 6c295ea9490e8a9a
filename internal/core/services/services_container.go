package services

import (
	portsrepo "github.com/arduabooks/backend/internal/core/ports/repositories"
	portssvc "github.com/arduabooks/backend/internal/core/ports/services"
	"github.com/arduabooks/backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service first: the posting engine resolves its accounts through it
	container.Account = NewAccountService(repos.AccountRepo, cfg.PostingAccounts)
	container.Ledger = NewLedgerService(repos.LedgerRepo)

	postingSvc := NewPostingService(repos.LedgerRepo, container.Account)

	container.Client = NewClientService(repos.ClientRepo)
	container.BillingItem = NewBillingItemService(repos.BillingItemRepo, repos.ClientRepo)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.BillingItemRepo, repos.PaymentRepo, repos.ClientRepo, postingSvc)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.InvoiceRepo, repos.ClientRepo, postingSvc)
	container.BankAccount = NewBankAccountService(repos.BankAccountRepo, repos.AccountRepo, container.Ledger)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.PostingSvcFacade = (*postingService)(nil)
	_ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)
	_ portssvc.PaymentSvcFacade = (*paymentService)(nil)
)
