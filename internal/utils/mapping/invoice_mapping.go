package mapping

import (
	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/arduabooks/backend/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		ClientID:      d.ClientID,
		InvoiceNumber: d.InvoiceNumber,
		InvoiceYear:   d.InvoiceYear,
		Sequence:      d.Sequence,
		IssueDate:     d.IssueDate,
		DueDate:       d.DueDate,
		Status:        string(d.Status),
		Notes:         d.Notes,
		Subtotal:      d.Subtotal,
		TaxAmount:     d.TaxAmount,
		Total:         d.Total,
		PostingStatus: string(d.PostingStatus),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		ClientID:      m.ClientID,
		InvoiceNumber: m.InvoiceNumber,
		InvoiceYear:   m.InvoiceYear,
		Sequence:      m.Sequence,
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		Status:        domain.InvoiceStatus(m.Status),
		Notes:         m.Notes,
		Subtotal:      m.Subtotal,
		TaxAmount:     m.TaxAmount,
		Total:         m.Total,
		PostingStatus: domain.PostingStatus(m.PostingStatus),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of model Invoices to a slice of domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}

// ToModelInvoiceLine converts a domain InvoiceLine to a model InvoiceLine
func ToModelInvoiceLine(d domain.InvoiceLine) models.InvoiceLine {
	return models.InvoiceLine{
		LineID:      d.LineID,
		InvoiceID:   d.InvoiceID,
		LineType:    string(d.LineType),
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		LineTotal:   d.LineTotal,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoiceLine converts a model InvoiceLine to a domain InvoiceLine
func ToDomainInvoiceLine(m models.InvoiceLine) domain.InvoiceLine {
	return domain.InvoiceLine{
		LineID:      m.LineID,
		InvoiceID:   m.InvoiceID,
		LineType:    domain.InvoiceLineType(m.LineType),
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		LineTotal:   m.LineTotal,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceLineSlice converts a slice of model InvoiceLines to a slice of domain InvoiceLines
func ToDomainInvoiceLineSlice(ms []models.InvoiceLine) []domain.InvoiceLine {
	ds := make([]domain.InvoiceLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoiceLine(m)
	}
	return ds
}
