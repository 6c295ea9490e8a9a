package models

// Account is the db row for a chart-of-accounts entry.
type Account struct {
	AccountID   string `json:"accountID"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	AccountType string `json:"accountType"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
