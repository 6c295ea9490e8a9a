package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the db row for a received payment.
type Payment struct {
	PaymentID       string          `json:"paymentID"`
	ClientID        string          `json:"clientID"`
	Date            time.Time       `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	Memo            string          `json:"memo"`
	UnappliedAmount decimal.Decimal `json:"unappliedAmount"`
	PostingStatus   string          `json:"postingStatus"`
	AuditFields
}

// PaymentApplication is the db row for one payment-to-invoice allocation.
type PaymentApplication struct {
	ApplicationID string          `json:"applicationID"`
	PaymentID     string          `json:"paymentID"`
	InvoiceID     string          `json:"invoiceID"`
	Amount        decimal.Decimal `json:"amount"`
	AuditFields
}
