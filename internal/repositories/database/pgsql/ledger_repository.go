package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/arduabooks/backend/internal/apperrors"
	"github.com/arduabooks/backend/internal/core/domain"
	portsrepo "github.com/arduabooks/backend/internal/core/ports/repositories"
	"github.com/arduabooks/backend/internal/models"
	"github.com/arduabooks/backend/internal/utils/accounting"
	"github.com/arduabooks/backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for journal entry and line data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const journalEntryColumns = `entry_id, posted_at, posted_by, description, source_kind, source_id, created_at, created_by, last_updated_at, last_updated_by`

const journalLineColumns = `line_id, entry_id, account_id, line_no, debit, credit, created_at, created_by, last_updated_at, last_updated_by`

// SaveEntryInTx persists an entry header and its lines inside the caller's
// transaction. Line shape and balance are re-checked here so that no code path can
// write an unbalanced entry, whatever the service layer did.
func (r *PgxLedgerRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	specs := make([]domain.LineSpec, len(lines))
	for i, line := range lines {
		specs[i] = domain.LineSpec{AccountID: line.AccountID, Debit: line.Debit, Credit: line.Credit}
	}
	if err := accounting.ValidateEntryBalance(specs); err != nil {
		return err
	}

	modelEntry := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.PostedAt,
		modelEntry.PostedBy,
		modelEntry.Description,
		modelEntry.SourceKind,
		modelEntry.SourceID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+modelEntry.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (` + journalLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.EntryID,
			modelLine.AccountID,
			modelLine.LineNo,
			modelLine.Debit,
			modelLine.Credit,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert journal lines for entry "+modelEntry.EntryID, err)
	}

	return nil
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE entry_id = $1;
	`
	m, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}
	domainEntry := mapping.ToDomainJournalEntry(m)
	return &domainEntry, nil
}

// FindLinesByEntryID retrieves all lines of an entry ordered by line number.
func (r *PgxLedgerRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT ` + journalLineColumns + `
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_no;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	return collectJournalLines(rows, "entry "+entryID)
}

// FindEntriesForDocument retrieves all entries recorded for a document, oldest
// first. Forward and reversal entries alternate in this order.
func (r *PgxLedgerRepository) FindEntriesForDocument(ctx context.Context, ref domain.DocumentRef) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE source_kind = $1 AND source_id = $2
		ORDER BY posted_at, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, string(ref.Kind), ref.ID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for document "+ref.String(), err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for document "+ref.String(), err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for document "+ref.String(), err)
	}

	domainEntries := make([]domain.JournalEntry, len(entries))
	for i, m := range entries {
		domainEntries[i] = mapping.ToDomainJournalEntry(m)
	}
	return domainEntries, nil
}

// LinesForAccount retrieves all lines touching an account, optionally bounded by
// the posted-at range of their entry, ordered by posting time then line number.
func (r *PgxLedgerRepository) LinesForAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.JournalLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.line_no, l.debit, l.credit,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1
		  AND ($2::timestamptz IS NULL OR e.posted_at >= $2)
		  AND ($3::timestamptz IS NULL OR e.posted_at <= $3)
		ORDER BY e.posted_at, l.entry_id, l.line_no;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for account "+accountID, err)
	}
	defer rows.Close()

	return collectJournalLines(rows, "account "+accountID)
}

// CountEntriesForDocumentInTx counts the entries recorded for a document inside the
// current transaction. An odd count means the document is currently posted.
func (r *PgxLedgerRepository) CountEntriesForDocumentInTx(ctx context.Context, tx pgx.Tx, ref domain.DocumentRef) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM journal_entries
		WHERE source_kind = $1 AND source_id = $2;
	`
	var count int
	if err := tx.QueryRow(ctx, query, string(ref.Kind), ref.ID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count entries for document "+ref.String(), err)
	}
	return count, nil
}

// FindLatestEntryForDocumentInTx returns the most recently posted entry for the
// document, together with its lines in line-number order.
func (r *PgxLedgerRepository) FindLatestEntryForDocumentInTx(ctx context.Context, tx pgx.Tx, ref domain.DocumentRef) (*domain.JournalEntry, []domain.JournalLine, error) {
	entryQuery := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE source_kind = $1 AND source_id = $2
		ORDER BY posted_at DESC, entry_id DESC
		LIMIT 1;
	`
	m, err := scanJournalEntry(tx.QueryRow(ctx, entryQuery, string(ref.Kind), ref.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, apperrors.NewAppError(500, "failed to find latest entry for document "+ref.String(), err)
	}

	lineQuery := `
		SELECT ` + journalLineColumns + `
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_no;
	`
	rows, err := tx.Query(ctx, lineQuery, m.EntryID)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query lines for entry "+m.EntryID, err)
	}
	defer rows.Close()

	lines, err := collectJournalLines(rows, "entry "+m.EntryID)
	if err != nil {
		return nil, nil, err
	}

	domainEntry := mapping.ToDomainJournalEntry(m)
	return &domainEntry, lines, nil
}

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.PostedAt,
		&m.PostedBy,
		&m.Description,
		&m.SourceKind,
		&m.SourceID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectJournalLines(rows pgx.Rows, scope string) ([]domain.JournalLine, error) {
	lines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.LineNo,
			&l.Debit,
			&l.Credit,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row for "+scope, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows for "+scope, err)
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}
