package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the db row for an invoice.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	ClientID      string          `json:"clientID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	InvoiceYear   int             `json:"invoiceYear"`
	Sequence      int             `json:"sequence"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	Total         decimal.Decimal `json:"total"`
	PostingStatus string          `json:"postingStatus"`
	AuditFields
}

// InvoiceLine is the db row for an invoice line.
type InvoiceLine struct {
	LineID      string          `json:"lineID"`
	InvoiceID   string          `json:"invoiceID"`
	LineType    string          `json:"lineType"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	AuditFields
}
