package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	AssetAccount     AccountType = "ASSET"
	LiabilityAccount AccountType = "LIABILITY"
	EquityAccount    AccountType = "EQUITY"
	IncomeAccount    AccountType = "INCOME"
	ExpenseAccount   AccountType = "EXPENSE"
)

// BalanceSide is the side on which an account type normally carries its balance.
// Used only for display/reporting sign conventions, never to validate a posting.
type BalanceSide string

const (
	DebitSide  BalanceSide = "DEBIT"
	CreditSide BalanceSide = "CREDIT"
)

// NormalBalance returns the normal balance side for the account type.
func (t AccountType) NormalBalance() BalanceSide {
	switch t {
	case AssetAccount, ExpenseAccount:
		return DebitSide
	default:
		return CreditSide
	}
}

// Account represents one entry in the chart of accounts.
// Accounts are created administratively and never deleted, only deactivated.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary Key (UUID)
	Code        string      `json:"code"`        // Unique chart-of-accounts code, e.g. "1100"
	Name        string      `json:"name"`        // User-visible name
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, etc.
	IsActive    bool        `json:"isActive"`
	AuditFields
}
