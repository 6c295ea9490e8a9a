package dto

import (
	"time"

	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines the payload for creating a draft invoice.
type CreateInvoiceRequest struct {
	ClientID  string     `json:"clientID" binding:"required"`
	IssueDate *time.Time `json:"issueDate"`
	DueDate   *time.Time `json:"dueDate"`
	Notes     string     `json:"notes"`
}

// IssueInvoiceRequest defines the payload for issuing a draft invoice.
// AllowEmpty is the explicit confirmation required to issue a zero-line invoice.
type IssueInvoiceRequest struct {
	AllowEmpty bool `json:"allowEmpty"`
}

// AddInvoiceLineRequest defines the payload for adding a manual line to a draft
// invoice. Manual lines carry general services and adjustments with no backing
// time entry or expense; adjustment prices may be negative.
type AddInvoiceLineRequest struct {
	LineType    string          `json:"lineType" binding:"required,oneof=GENERAL ADJUSTMENT"`
	Description string          `json:"description" binding:"required,max=255"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// AttachItemsRequest names the unbilled items to attach to a draft invoice.
type AttachItemsRequest struct {
	TimeEntryIDs []string `json:"timeEntryIDs"`
	ExpenseIDs   []string `json:"expenseIDs"`
}

// InvoiceLineResponse defines the data returned for an invoice line.
type InvoiceLineResponse struct {
	LineID      string          `json:"lineID"`
	LineType    string          `json:"lineType"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string                `json:"invoiceID"`
	ClientID      string                `json:"clientID"`
	InvoiceNumber string                `json:"invoiceNumber,omitempty"`
	Status        string                `json:"status"`
	IssueDate     *time.Time            `json:"issueDate,omitempty"`
	DueDate       *time.Time            `json:"dueDate,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TaxAmount     decimal.Decimal       `json:"taxAmount"`
	Total         decimal.Decimal       `json:"total"`
	PostingStatus string                `json:"postingStatus"`
	Lines         []InvoiceLineResponse `json:"lines,omitempty"`
}

// IssueResult is returned by a successful issuance.
type IssueResult struct {
	InvoiceID     string `json:"invoiceID"`
	InvoiceNumber string `json:"invoiceNumber"`
	EntryID       string `json:"entryID"`
}

// ToInvoiceLineResponse converts a domain.InvoiceLine.
func ToInvoiceLineResponse(l *domain.InvoiceLine) InvoiceLineResponse {
	return InvoiceLineResponse{
		LineID:      l.LineID,
		LineType:    string(l.LineType),
		Description: l.Description,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		LineTotal:   l.LineTotal,
	}
}

// ToInvoiceResponse converts a domain.Invoice with its loaded lines.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		ClientID:      inv.ClientID,
		InvoiceNumber: inv.InvoiceNumber,
		Status:        string(inv.Status),
		Notes:         inv.Notes,
		Subtotal:      inv.Subtotal,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		PostingStatus: string(inv.PostingStatus),
	}
	if !inv.IssueDate.IsZero() {
		issueDate := inv.IssueDate
		resp.IssueDate = &issueDate
	}
	if !inv.DueDate.IsZero() {
		dueDate := inv.DueDate
		resp.DueDate = &dueDate
	}
	if len(inv.Lines) > 0 {
		resp.Lines = make([]InvoiceLineResponse, len(inv.Lines))
		for i := range inv.Lines {
			resp.Lines[i] = ToInvoiceLineResponse(&inv.Lines[i])
		}
	}
	return resp
}

// ToInvoiceResponses converts a slice of domain invoices.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}
