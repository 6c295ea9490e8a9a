package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft  InvoiceStatus = "DRAFT"
	InvoiceIssued InvoiceStatus = "ISSUED"
	InvoicePaid   InvoiceStatus = "PAID"
	InvoiceVoid   InvoiceStatus = "VOID"
)

// Invoice belongs to one client. At most one DRAFT invoice exists per client at any
// time (enforced by a partial unique index, not just application checks). Cached
// totals are recomputed whenever the line set changes and must equal the sum of the
// lines.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`     // Primary Key (UUID)
	ClientID      string          `json:"clientID"`      // FK -> Client
	InvoiceNumber string          `json:"invoiceNumber"` // "YYYY-NNN", assigned at issuance
	InvoiceYear   int             `json:"invoiceYear"`   // Year scope of the sequence
	Sequence      int             `json:"sequence"`      // Numeric suffix, never reused
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
	Status        InvoiceStatus   `json:"status"`
	Notes         string          `json:"notes"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	Total         decimal.Decimal `json:"total"`
	PostingStatus PostingStatus   `json:"postingStatus"`
	Lines         []InvoiceLine   `json:"lines,omitempty"` // Loaded on demand
	AuditFields
}

// Ref returns the document reference used for ledger postings of this invoice.
func (i Invoice) Ref() DocumentRef {
	return DocumentRef{Kind: KindInvoice, ID: i.InvoiceID}
}

// InvoiceLineType distinguishes the origin of an invoice line.
type InvoiceLineType string

const (
	LineTime       InvoiceLineType = "TIME"
	LineExpense    InvoiceLineType = "EXPENSE"
	LineAdjustment InvoiceLineType = "ADJUSTMENT"
	LineGeneral    InvoiceLineType = "GENERAL"
)

// InvoiceLine belongs to one invoice. LineTotal is always quantity * unit price and
// is recomputed on every write that could affect it.
type InvoiceLine struct {
	LineID      string          `json:"lineID"` // Primary Key (UUID)
	InvoiceID   string          `json:"invoiceID"`
	LineType    InvoiceLineType `json:"lineType"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`  // Hours for TIME lines, 1 for EXPENSE
	UnitPrice   decimal.Decimal `json:"unitPrice"` // Rate snapshot or expense amount
	LineTotal   decimal.Decimal `json:"lineTotal"`
	AuditFields
}

// ComputeTotal recalculates the line total from quantity and unit price.
func (l *InvoiceLine) ComputeTotal() {
	l.LineTotal = l.Quantity.Mul(l.UnitPrice)
}
