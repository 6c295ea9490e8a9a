package dto

import (
	"time"

	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllocationTarget is one (invoice, amount) pair in an allocation request.
// Order matters: targets are applied in the order given.
type AllocationTarget struct {
	InvoiceID string          `json:"invoiceID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// RecordPaymentRequest defines the payload for recording a received payment,
// optionally allocating it to invoices in the same operation.
type RecordPaymentRequest struct {
	ClientID    string             `json:"clientID" binding:"required"`
	Date        *time.Time         `json:"date"`
	Amount      decimal.Decimal    `json:"amount" binding:"required"`
	Method      string             `json:"method" binding:"required,oneof=CHECK ACH CASH CARD OTHER"`
	Memo        string             `json:"memo"`
	Allocations []AllocationTarget `json:"allocations"`
}

// AllocatePaymentRequest allocates an existing payment's unapplied balance.
type AllocatePaymentRequest struct {
	Targets []AllocationTarget `json:"targets" binding:"required,min=1"`
}

// PaymentApplicationResponse defines the data returned for one application.
type PaymentApplicationResponse struct {
	ApplicationID string          `json:"applicationID"`
	InvoiceID     string          `json:"invoiceID"`
	Amount        decimal.Decimal `json:"amount"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID       string                       `json:"paymentID"`
	ClientID        string                       `json:"clientID"`
	Date            time.Time                    `json:"date"`
	Amount          decimal.Decimal              `json:"amount"`
	Method          string                       `json:"method"`
	Memo            string                       `json:"memo,omitempty"`
	UnappliedAmount decimal.Decimal              `json:"unappliedAmount"`
	PostingStatus   string                       `json:"postingStatus"`
	Applications    []PaymentApplicationResponse `json:"applications,omitempty"`
}

// ToPaymentResponse converts a domain.Payment and its applications.
func ToPaymentResponse(p *domain.Payment, apps []domain.PaymentApplication) PaymentResponse {
	resp := PaymentResponse{
		PaymentID:       p.PaymentID,
		ClientID:        p.ClientID,
		Date:            p.Date,
		Amount:          p.Amount,
		Method:          string(p.Method),
		Memo:            p.Memo,
		UnappliedAmount: p.UnappliedAmount,
		PostingStatus:   string(p.PostingStatus),
	}
	for i := range apps {
		resp.Applications = append(resp.Applications, PaymentApplicationResponse{
			ApplicationID: apps[i].ApplicationID,
			InvoiceID:     apps[i].InvoiceID,
			Amount:        apps[i].Amount,
		})
	}
	return resp
}
