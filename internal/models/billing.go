package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is the db row for a billable customer.
type Client struct {
	ClientID        string           `json:"clientID"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	BillingAddress  string           `json:"billingAddress"`
	DefaultRate     *decimal.Decimal `json:"defaultRate"`
	PaymentTermsDay int              `json:"paymentTermsDay"`
	IsActive        bool             `json:"isActive"`
	AuditFields
}

// TimeEntry is the db row for billable time.
type TimeEntry struct {
	TimeEntryID   string          `json:"timeEntryID"`
	ClientID      string          `json:"clientID"`
	WorkDate      time.Time       `json:"workDate"`
	Hours         decimal.Decimal `json:"hours"`
	Description   string          `json:"description"`
	BillingRate   decimal.Decimal `json:"billingRate"`
	Status        string          `json:"status"`
	InvoiceLineID *string         `json:"invoiceLineID"`
	AuditFields
}

// Expense is the db row for a billable expense.
type Expense struct {
	ExpenseID     string          `json:"expenseID"`
	ClientID      string          `json:"clientID"`
	ExpenseDate   time.Time       `json:"expenseDate"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Billable      bool            `json:"billable"`
	Status        string          `json:"status"`
	InvoiceLineID *string         `json:"invoiceLineID"`
	AuditFields
}

// BankAccount is the db row for a bank account wrapper over a ledger account.
type BankAccount struct {
	BankAccountID  string          `json:"bankAccountID"`
	AccountID      string          `json:"accountID"`
	Type           string          `json:"type"`
	Institution    string          `json:"institution"`
	NumberMasked   string          `json:"numberMasked"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	AuditFields
}
