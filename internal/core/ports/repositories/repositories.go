package repositories

// RepositoryProvider bundles all repositories for dependency injection.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	LedgerRepo      LedgerRepositoryWithTx
	InvoiceRepo     InvoiceRepositoryWithTx
	PaymentRepo     PaymentRepositoryWithTx
	ClientRepo      ClientRepositoryFacade
	BillingItemRepo BillingItemRepositoryFacade
	BankAccountRepo BankAccountRepositoryWithTx
}
