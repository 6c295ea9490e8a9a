package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the db row for a ledger entry header. The source kind/id pair is
// the typed document reference; there is no single foreign-key target.
type JournalEntry struct {
	EntryID     string    `json:"entryID"`
	PostedAt    time.Time `json:"postedAt"`
	PostedBy    string    `json:"postedBy"`
	Description string    `json:"description"`
	SourceKind  string    `json:"sourceKind"`
	SourceID    string    `json:"sourceID"`
	AuditFields
}

// JournalLine is the db row for one debit or credit line.
type JournalLine struct {
	LineID    string          `json:"lineID"`
	EntryID   string          `json:"entryID"`
	AccountID string          `json:"accountID"`
	LineNo    int             `json:"lineNo"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	AuditFields
}
