package mapping

import (
	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/arduabooks/backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		PostedAt:    d.PostedAt,
		PostedBy:    d.PostedBy,
		Description: d.Description,
		SourceKind:  string(d.Source.Kind),
		SourceID:    d.Source.ID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		PostedAt:    m.PostedAt,
		PostedBy:    m.PostedBy,
		Description: m.Description,
		Source: domain.DocumentRef{
			Kind: domain.DocumentKind(m.SourceKind),
			ID:   m.SourceID,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		LineNo:      d.LineNo,
		Debit:       d.Debit,
		Credit:      d.Credit,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		LineNo:      m.LineNo,
		Debit:       m.Debit,
		Credit:      m.Credit,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to a slice of domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
