package domain

import "github.com/shopspring/decimal"

// BankAccountType classifies a real-world bank or card account.
type BankAccountType string

const (
	BankChecking   BankAccountType = "CHECKING"
	BankSavings    BankAccountType = "SAVINGS"
	BankCreditCard BankAccountType = "CREDIT_CARD"
	BankCash       BankAccountType = "CASH"
)

// BankAccount wraps a ledger account representing a real-world bank or credit-card
// account. Its balance is computed, not stored: opening balance plus the net ledger
// movement on the wrapped account.
type BankAccount struct {
	BankAccountID  string          `json:"bankAccountID"` // Primary Key (UUID)
	AccountID      string          `json:"accountID"`     // FK -> Account (the GL account)
	Type           BankAccountType `json:"type"`
	Institution    string          `json:"institution"`
	NumberMasked   string          `json:"numberMasked"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	AuditFields
}
