package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/arduabooks/backend/internal/core/domain"
	portsrepo "github.com/arduabooks/backend/internal/core/ports/repositories"
	portssvc "github.com/arduabooks/backend/internal/core/ports/services"
)

// ledgerService is the read side of the ledger store. Entries are immutable once
// recorded, and only the posting engine records them.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryWithTx
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryWithTx) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetEntry retrieves an entry with its lines.
func (s *ledgerService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, []domain.JournalLine, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}
	lines, err := s.ledgerRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}
	return entry, lines, nil
}

// EntriesForDocument lists all entries posted for a business document.
func (s *ledgerService) EntriesForDocument(ctx context.Context, ref domain.DocumentRef) ([]domain.JournalEntry, error) {
	return s.ledgerRepo.FindEntriesForDocument(ctx, ref)
}

// LinesForAccount lists ledger lines for an account within an optional date range.
func (s *ledgerService) LinesForAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.JournalLine, error) {
	return s.ledgerRepo.LinesForAccount(ctx, accountID, from, to)
}

// buildEntry materializes an entry and its lines from a spec, assigning IDs and
// sequential line numbers in the order given.
func buildEntry(spec domain.JournalEntrySpec) (domain.JournalEntry, []domain.JournalLine) {
	now := time.Now().UTC()
	postedAt := spec.PostedAt
	if postedAt.IsZero() {
		postedAt = now
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     spec.PostedBy,
		LastUpdatedAt: now,
		LastUpdatedBy: spec.PostedBy,
	}

	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		PostedAt:    postedAt,
		PostedBy:    spec.PostedBy,
		Description: spec.Description,
		Source:      spec.Source,
		AuditFields: audit,
	}

	lines := make([]domain.JournalLine, len(spec.Lines))
	for i, lineSpec := range spec.Lines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entry.EntryID,
			AccountID:   lineSpec.AccountID,
			LineNo:      i + 1,
			Debit:       lineSpec.Debit,
			Credit:      lineSpec.Credit,
			AuditFields: audit,
		}
	}
	return entry, lines
}
