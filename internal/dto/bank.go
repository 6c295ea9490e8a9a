package dto

import (
	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the payload for registering a bank account.
// AccountCode becomes the code of the ledger account created to back it.
type CreateBankAccountRequest struct {
	AccountCode    string          `json:"accountCode" binding:"required,max=20"`
	Type           string          `json:"type" binding:"required,oneof=CHECKING SAVINGS CREDIT_CARD CASH"`
	Institution    string          `json:"institution" binding:"required,max=255"`
	NumberMasked   string          `json:"numberMasked" binding:"required,max=20"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// BankAccountResponse defines the data returned for a bank account.
// Balance is computed from the ledger, never stored.
type BankAccountResponse struct {
	BankAccountID  string          `json:"bankAccountID"`
	AccountID      string          `json:"accountID"`
	Type           string          `json:"type"`
	Institution    string          `json:"institution"`
	NumberMasked   string          `json:"numberMasked"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Balance        decimal.Decimal `json:"balance"`
}

// ToBankAccountResponse converts a domain.BankAccount plus its computed balance.
func ToBankAccountResponse(b *domain.BankAccount, balance decimal.Decimal) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID:  b.BankAccountID,
		AccountID:      b.AccountID,
		Type:           string(b.Type),
		Institution:    b.Institution,
		NumberMasked:   b.NumberMasked,
		OpeningBalance: b.OpeningBalance,
		Balance:        balance,
	}
}
