package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents one atomic financial event in the general ledger.
// Entries are immutable once recorded; corrections are new reversing entries.
type JournalEntry struct {
	EntryID     string      `json:"entryID"` // Primary Key (UUID)
	PostedAt    time.Time   `json:"postedAt"`
	PostedBy    string      `json:"postedBy"` // UserID Reference, may be empty for system postings
	Description string      `json:"description"`
	Source      DocumentRef `json:"source"` // Originating business document
	AuditFields
}

// JournalLine is a single debit or credit against one account within an entry.
// Exactly one of Debit/Credit is non-zero; both set or both zero is data corruption,
// not a recoverable input error.
type JournalLine struct {
	LineID    string          `json:"lineID"`  // Primary Key (UUID)
	EntryID   string          `json:"entryID"` // FK -> JournalEntry
	AccountID string          `json:"accountID"`
	LineNo    int             `json:"lineNo"` // Display order within the entry
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	AuditFields
}

// Amount returns the non-zero side of the line.
func (l JournalLine) Amount() decimal.Decimal {
	if l.Debit.IsZero() {
		return l.Credit
	}
	return l.Debit
}

// LineSpec describes one line of an entry to be recorded.
type LineSpec struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// JournalEntrySpec describes a balanced entry to be recorded by the ledger store.
type JournalEntrySpec struct {
	Description string
	Source      DocumentRef
	PostedAt    time.Time
	PostedBy    string
	Lines       []LineSpec
}
