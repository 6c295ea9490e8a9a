package mapping

import (
	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/arduabooks/backend/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:       d.PaymentID,
		ClientID:        d.ClientID,
		Date:            d.Date,
		Amount:          d.Amount,
		Method:          string(d.Method),
		Memo:            d.Memo,
		UnappliedAmount: d.UnappliedAmount,
		PostingStatus:   string(d.PostingStatus),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:       m.PaymentID,
		ClientID:        m.ClientID,
		Date:            m.Date,
		Amount:          m.Amount,
		Method:          domain.PaymentMethod(m.Method),
		Memo:            m.Memo,
		UnappliedAmount: m.UnappliedAmount,
		PostingStatus:   domain.PostingStatus(m.PostingStatus),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to a slice of domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}

// ToModelPaymentApplication converts a domain PaymentApplication to a model PaymentApplication
func ToModelPaymentApplication(d domain.PaymentApplication) models.PaymentApplication {
	return models.PaymentApplication{
		ApplicationID: d.ApplicationID,
		PaymentID:     d.PaymentID,
		InvoiceID:     d.InvoiceID,
		Amount:        d.Amount,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentApplication converts a model PaymentApplication to a domain PaymentApplication
func ToDomainPaymentApplication(m models.PaymentApplication) domain.PaymentApplication {
	return domain.PaymentApplication{
		ApplicationID: m.ApplicationID,
		PaymentID:     m.PaymentID,
		InvoiceID:     m.InvoiceID,
		Amount:        m.Amount,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentApplicationSlice converts a slice of model PaymentApplications to a slice of domain PaymentApplications
func ToDomainPaymentApplicationSlice(ms []models.PaymentApplication) []domain.PaymentApplication {
	ds := make([]domain.PaymentApplication, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPaymentApplication(m)
	}
	return ds
}
