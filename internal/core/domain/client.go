package domain

import "github.com/shopspring/decimal"

// Client is a billable customer. Owned by the billing workflow; the core reads it to
// validate eligibility and snapshot rates.
type Client struct {
	ClientID        string           `json:"clientID"` // Primary Key (UUID)
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	BillingAddress  string           `json:"billingAddress"`
	DefaultRate     *decimal.Decimal `json:"defaultRate"`     // Default hourly rate, nullable
	PaymentTermsDay int              `json:"paymentTermsDay"` // e.g. 30 = Net 30
	IsActive        bool             `json:"isActive"`
	AuditFields
}
