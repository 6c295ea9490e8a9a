package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillableStatus tracks whether a time entry or expense has been invoiced.
type BillableStatus string

const (
	Unbilled   BillableStatus = "UNBILLED"
	Billed     BillableStatus = "BILLED"
	WrittenOff BillableStatus = "WRITTEN_OFF"
)

// TimeEntry is billable consultant time. The InvoiceLineID back-reference and the
// invoice line's source reference form a bidirectional 1:1 link; both sides are set
// or cleared together inside one transaction.
type TimeEntry struct {
	TimeEntryID string          `json:"timeEntryID"` // Primary Key (UUID)
	ClientID    string          `json:"clientID"`
	WorkDate    time.Time       `json:"workDate"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
	BillingRate decimal.Decimal `json:"billingRate"` // Rate snapshot taken at entry time
	Status      BillableStatus  `json:"status"`
	InvoiceLine *string         `json:"invoiceLineID"` // FK -> InvoiceLine, nil while unbilled
	AuditFields
}

// Expense is a billable out-of-pocket expense.
type Expense struct {
	ExpenseID   string          `json:"expenseID"` // Primary Key (UUID)
	ClientID    string          `json:"clientID"`
	ExpenseDate time.Time       `json:"expenseDate"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Billable    bool            `json:"billable"`
	Status      BillableStatus  `json:"status"`
	InvoiceLine *string         `json:"invoiceLineID"` // FK -> InvoiceLine, nil while unbilled
	AuditFields
}
