package dto

import (
	"time"

	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	LineNo    int             `json:"lineNo"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID     string                `json:"entryID"`
	PostedAt    time.Time             `json:"postedAt"`
	PostedBy    string                `json:"postedBy,omitempty"`
	Description string                `json:"description"`
	SourceKind  string                `json:"sourceKind"`
	SourceID    string                `json:"sourceID"`
	Lines       []JournalLineResponse `json:"lines,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalLine.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:    l.LineID,
		AccountID: l.AccountID,
		LineNo:    l.LineNo,
		Debit:     l.Debit,
		Credit:    l.Credit,
	}
}

// ToJournalLineResponses converts a slice of domain lines.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	responses := make([]JournalLineResponse, len(lines))
	for i := range lines {
		responses[i] = ToJournalLineResponse(&lines[i])
	}
	return responses
}

// ToJournalEntryResponse converts a domain.JournalEntry and its lines.
func ToJournalEntryResponse(e *domain.JournalEntry, lines []domain.JournalLine) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:     e.EntryID,
		PostedAt:    e.PostedAt,
		PostedBy:    e.PostedBy,
		Description: e.Description,
		SourceKind:  string(e.Source.Kind),
		SourceID:    e.Source.ID,
		Lines:       ToJournalLineResponses(lines),
	}
}
