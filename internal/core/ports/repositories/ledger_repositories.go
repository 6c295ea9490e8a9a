package repositories

import (
	"context"
	"time"

	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerReader defines read operations on journal entries and lines.
type LedgerReader interface {
	// FindEntryByID retrieves a journal entry header.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the lines of an entry in display order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindEntriesForDocument retrieves all entries for a document reference, oldest first.
	FindEntriesForDocument(ctx context.Context, ref domain.DocumentRef) ([]domain.JournalEntry, error)

	// LinesForAccount retrieves all lines touching an account, optionally bounded by
	// posted-at date range, ordered by posting time then line number.
	LinesForAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.JournalLine, error)
}

// LedgerWriter defines write operations on the ledger. All writes happen inside a
// caller-owned transaction: the posting engine holds a row lock on the source
// document for the duration of a post-or-reverse operation.
type LedgerWriter interface {
	// SaveEntryInTx persists an entry and its lines atomically. The repository
	// re-validates line shape and balance and refuses to persist violations.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error
}

// LedgerTxReader defines reads that participate in a posting transaction.
type LedgerTxReader interface {
	// CountEntriesForDocumentInTx returns the number of entries recorded for the
	// document. Odd means currently posted, even means unposted or fully reversed.
	CountEntriesForDocumentInTx(ctx context.Context, tx pgx.Tx, ref domain.DocumentRef) (int, error)

	// FindLatestEntryForDocumentInTx returns the most recently posted entry for the
	// document together with its lines.
	FindLatestEntryForDocumentInTx(ctx context.Context, tx pgx.Tx, ref domain.DocumentRef) (*domain.JournalEntry, []domain.JournalLine, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
	LedgerTxReader
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
