package mapping

import (
	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/arduabooks/backend/internal/models"
)

// ToModelClient converts a domain Client to a model Client
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:        d.ClientID,
		Name:            d.Name,
		Email:           d.Email,
		Phone:           d.Phone,
		BillingAddress:  d.BillingAddress,
		DefaultRate:     d.DefaultRate,
		PaymentTermsDay: d.PaymentTermsDay,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:        m.ClientID,
		Name:            m.Name,
		Email:           m.Email,
		Phone:           m.Phone,
		BillingAddress:  m.BillingAddress,
		DefaultRate:     m.DefaultRate,
		PaymentTermsDay: m.PaymentTermsDay,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClientSlice converts a slice of model Clients to a slice of domain Clients
func ToDomainClientSlice(ms []models.Client) []domain.Client {
	ds := make([]domain.Client, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClient(m)
	}
	return ds
}

// ToModelTimeEntry converts a domain TimeEntry to a model TimeEntry
func ToModelTimeEntry(d domain.TimeEntry) models.TimeEntry {
	return models.TimeEntry{
		TimeEntryID:   d.TimeEntryID,
		ClientID:      d.ClientID,
		WorkDate:      d.WorkDate,
		Hours:         d.Hours,
		Description:   d.Description,
		BillingRate:   d.BillingRate,
		Status:        string(d.Status),
		InvoiceLineID: d.InvoiceLine,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTimeEntry converts a model TimeEntry to a domain TimeEntry
func ToDomainTimeEntry(m models.TimeEntry) domain.TimeEntry {
	return domain.TimeEntry{
		TimeEntryID:   m.TimeEntryID,
		ClientID:      m.ClientID,
		WorkDate:      m.WorkDate,
		Hours:         m.Hours,
		Description:   m.Description,
		BillingRate:   m.BillingRate,
		Status:        domain.BillableStatus(m.Status),
		InvoiceLine:   m.InvoiceLineID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTimeEntrySlice converts a slice of model TimeEntries to a slice of domain TimeEntries
func ToDomainTimeEntrySlice(ms []models.TimeEntry) []domain.TimeEntry {
	ds := make([]domain.TimeEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTimeEntry(m)
	}
	return ds
}

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:     d.ExpenseID,
		ClientID:      d.ClientID,
		ExpenseDate:   d.ExpenseDate,
		Amount:        d.Amount,
		Description:   d.Description,
		Billable:      d.Billable,
		Status:        string(d.Status),
		InvoiceLineID: d.InvoiceLine,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:     m.ExpenseID,
		ClientID:      m.ClientID,
		ExpenseDate:   m.ExpenseDate,
		Amount:        m.Amount,
		Description:   m.Description,
		Billable:      m.Billable,
		Status:        domain.BillableStatus(m.Status),
		InvoiceLine:   m.InvoiceLineID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to a slice of domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}

// ToModelBankAccount converts a domain BankAccount to a model BankAccount
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID:  d.BankAccountID,
		AccountID:      d.AccountID,
		Type:           string(d.Type),
		Institution:    d.Institution,
		NumberMasked:   d.NumberMasked,
		OpeningBalance: d.OpeningBalance,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankAccount converts a model BankAccount to a domain BankAccount
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID:  m.BankAccountID,
		AccountID:      m.AccountID,
		Type:           domain.BankAccountType(m.Type),
		Institution:    m.Institution,
		NumberMasked:   m.NumberMasked,
		OpeningBalance: m.OpeningBalance,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBankAccountSlice converts a slice of model BankAccounts to a slice of domain BankAccounts
func ToDomainBankAccountSlice(ms []models.BankAccount) []domain.BankAccount {
	ds := make([]domain.BankAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBankAccount(m)
	}
	return ds
}
