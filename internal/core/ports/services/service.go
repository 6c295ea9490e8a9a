package services

// ServiceContainer bundles all service facades for handler injection.
type ServiceContainer struct {
	Account     AccountSvcFacade
	Ledger      LedgerSvcFacade
	Invoice     InvoiceSvcFacade
	Payment     PaymentSvcFacade
	Client      ClientSvcFacade
	BillingItem BillingItemSvcFacade
	BankAccount BankAccountSvcFacade
}
