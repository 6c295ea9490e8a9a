package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment was received.
type PaymentMethod string

const (
	MethodCheck PaymentMethod = "CHECK"
	MethodACH   PaymentMethod = "ACH"
	MethodCash  PaymentMethod = "CASH"
	MethodCard  PaymentMethod = "CARD"
	MethodOther PaymentMethod = "OTHER"
)

// Payment is money received from a client. UnappliedAmount starts equal to Amount,
// decreases as allocations are made, and never goes negative. Invariant:
// sum of applications + unapplied == amount, always.
type Payment struct {
	PaymentID       string          `json:"paymentID"` // Primary Key (UUID)
	ClientID        string          `json:"clientID"`  // FK -> Client
	Date            time.Time       `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	Method          PaymentMethod   `json:"method"`
	Memo            string          `json:"memo"`
	UnappliedAmount decimal.Decimal `json:"unappliedAmount"`
	PostingStatus   PostingStatus   `json:"postingStatus"`
	AuditFields
}

// Ref returns the document reference used for ledger postings of this payment.
func (p Payment) Ref() DocumentRef {
	return DocumentRef{Kind: KindPayment, ID: p.PaymentID}
}

// PaymentApplication records the amount of one payment allocated to one invoice.
type PaymentApplication struct {
	ApplicationID string          `json:"applicationID"` // Primary Key (UUID)
	PaymentID     string          `json:"paymentID"`
	InvoiceID     string          `json:"invoiceID"`
	Amount        decimal.Decimal `json:"amount"`
	AuditFields
}
