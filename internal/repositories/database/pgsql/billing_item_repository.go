package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/arduabooks/backend/internal/apperrors"
	"github.com/arduabooks/backend/internal/core/domain"
	portsrepo "github.com/arduabooks/backend/internal/core/ports/repositories"
	"github.com/arduabooks/backend/internal/models"
	"github.com/arduabooks/backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBillingItemRepository struct {
	pool *pgxpool.Pool
}

// newPgxBillingItemRepository creates a new repository for time entry and expense data.
func newPgxBillingItemRepository(pool *pgxpool.Pool) portsrepo.BillingItemRepositoryFacade {
	return &PgxBillingItemRepository{pool: pool}
}

// Ensure PgxBillingItemRepository implements portsrepo.BillingItemRepositoryFacade
var _ portsrepo.BillingItemRepositoryFacade = (*PgxBillingItemRepository)(nil)

const timeEntryColumns = `time_entry_id, client_id, work_date, hours, description, billing_rate, status, invoice_line_id, created_at, created_by, last_updated_at, last_updated_by`

const expenseColumns = `expense_id, client_id, expense_date, amount, description, billable, status, invoice_line_id, created_at, created_by, last_updated_at, last_updated_by`

// SaveTimeEntry inserts a new time entry.
func (r *PgxBillingItemRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	m := mapping.ToModelTimeEntry(entry)

	query := `
		INSERT INTO time_entries (` + timeEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		m.TimeEntryID,
		m.ClientID,
		m.WorkDate,
		m.Hours,
		m.Description,
		m.BillingRate,
		m.Status,
		m.InvoiceLineID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save time entry "+m.TimeEntryID, err)
	}
	return nil
}

// SaveExpense inserts a new expense.
func (r *PgxBillingItemRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)

	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ExpenseID,
		m.ClientID,
		m.ExpenseDate,
		m.Amount,
		m.Description,
		m.Billable,
		m.Status,
		m.InvoiceLineID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save expense "+m.ExpenseID, err)
	}
	return nil
}

// FindTimeEntryByID retrieves a time entry.
func (r *PgxBillingItemRepository) FindTimeEntryByID(ctx context.Context, timeEntryID string) (*domain.TimeEntry, error) {
	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE time_entry_id = $1;
	`
	m, err := scanTimeEntry(r.pool.QueryRow(ctx, query, timeEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find time entry "+timeEntryID, err)
	}
	d := mapping.ToDomainTimeEntry(m)
	return &d, nil
}

// FindExpenseByID retrieves an expense.
func (r *PgxBillingItemRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE expense_id = $1;
	`
	m, err := scanExpense(r.pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find expense "+expenseID, err)
	}
	d := mapping.ToDomainExpense(m)
	return &d, nil
}

// ListUnbilledForClient retrieves the client's unbilled time entries and billable
// expenses for the attach picker.
func (r *PgxBillingItemRepository) ListUnbilledForClient(ctx context.Context, clientID string) ([]domain.TimeEntry, []domain.Expense, error) {
	timeQuery := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE client_id = $1 AND status = 'UNBILLED'
		ORDER BY work_date, created_at;
	`
	rows, err := r.pool.Query(ctx, timeQuery, clientID)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query unbilled time entries for client "+clientID, err)
	}
	entries, err := collectTimeEntries(rows)
	if err != nil {
		return nil, nil, err
	}

	expenseQuery := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE client_id = $1 AND status = 'UNBILLED' AND billable = TRUE
		ORDER BY expense_date, created_at;
	`
	rows, err = r.pool.Query(ctx, expenseQuery, clientID)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query unbilled expenses for client "+clientID, err)
	}
	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, nil, err
	}

	return entries, expenses, nil
}

// FindTimeEntriesByIDsForUpdate locks and retrieves the given time entries, keyed by
// ID. A missing ID maps to ErrNotFound.
func (r *PgxBillingItemRepository) FindTimeEntriesByIDsForUpdate(ctx context.Context, tx pgx.Tx, ids []string) (map[string]domain.TimeEntry, error) {
	if len(ids) == 0 {
		return map[string]domain.TimeEntry{}, nil
	}

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE time_entry_id = ANY($1)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock time entries", err)
	}
	entries, err := collectTimeEntries(rows)
	if err != nil {
		return nil, err
	}

	result := make(map[string]domain.TimeEntry, len(entries))
	for _, e := range entries {
		result[e.TimeEntryID] = e
	}
	for _, id := range ids {
		if _, ok := result[id]; !ok {
			return nil, apperrors.NewNotFoundError("time entry " + id + " not found")
		}
	}
	return result, nil
}

// FindExpensesByIDsForUpdate locks and retrieves the given expenses, keyed by ID.
func (r *PgxBillingItemRepository) FindExpensesByIDsForUpdate(ctx context.Context, tx pgx.Tx, ids []string) (map[string]domain.Expense, error) {
	if len(ids) == 0 {
		return map[string]domain.Expense{}, nil
	}

	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE expense_id = ANY($1)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock expenses", err)
	}
	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, err
	}

	result := make(map[string]domain.Expense, len(expenses))
	for _, e := range expenses {
		result[e.ExpenseID] = e
	}
	for _, id := range ids {
		if _, ok := result[id]; !ok {
			return nil, apperrors.NewNotFoundError("expense " + id + " not found")
		}
	}
	return result, nil
}

// LinkTimeEntryInTx sets or clears the entry's invoice line reference and status.
func (r *PgxBillingItemRepository) LinkTimeEntryInTx(ctx context.Context, tx pgx.Tx, timeEntryID string, lineID *string, status domain.BillableStatus, userID string) error {
	query := `
		UPDATE time_entries
		SET invoice_line_id = $2,
		    status = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE time_entry_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, timeEntryID, lineID, string(status), time.Now().UTC(), userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link time entry "+timeEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("time entry " + timeEntryID + " not found")
	}
	return nil
}

// LinkExpenseInTx sets or clears the expense's invoice line reference and status.
func (r *PgxBillingItemRepository) LinkExpenseInTx(ctx context.Context, tx pgx.Tx, expenseID string, lineID *string, status domain.BillableStatus, userID string) error {
	query := `
		UPDATE expenses
		SET invoice_line_id = $2,
		    status = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE expense_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, expenseID, lineID, string(status), time.Now().UTC(), userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link expense "+expenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("expense " + expenseID + " not found")
	}
	return nil
}

// FindItemsByLineIDsInTx resolves which time entries and expenses point at the given
// invoice lines.
func (r *PgxBillingItemRepository) FindItemsByLineIDsInTx(ctx context.Context, tx pgx.Tx, lineIDs []string) ([]domain.TimeEntry, []domain.Expense, error) {
	if len(lineIDs) == 0 {
		return []domain.TimeEntry{}, []domain.Expense{}, nil
	}

	timeQuery := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE invoice_line_id = ANY($1)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, timeQuery, lineIDs)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query time entries by line IDs", err)
	}
	entries, err := collectTimeEntries(rows)
	if err != nil {
		return nil, nil, err
	}

	expenseQuery := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE invoice_line_id = ANY($1)
		FOR UPDATE;
	`
	rows, err = tx.Query(ctx, expenseQuery, lineIDs)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query expenses by line IDs", err)
	}
	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, nil, err
	}

	return entries, expenses, nil
}

func scanTimeEntry(row pgx.Row) (models.TimeEntry, error) {
	var m models.TimeEntry
	err := row.Scan(
		&m.TimeEntryID,
		&m.ClientID,
		&m.WorkDate,
		&m.Hours,
		&m.Description,
		&m.BillingRate,
		&m.Status,
		&m.InvoiceLineID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.ClientID,
		&m.ExpenseDate,
		&m.Amount,
		&m.Description,
		&m.Billable,
		&m.Status,
		&m.InvoiceLineID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectTimeEntries(rows pgx.Rows) ([]domain.TimeEntry, error) {
	defer rows.Close()
	entries := []models.TimeEntry{}
	for rows.Next() {
		m, err := scanTimeEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan time entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating time entry rows", err)
	}
	return mapping.ToDomainTimeEntrySlice(entries), nil
}

func collectExpenses(rows pgx.Rows) ([]domain.Expense, error) {
	defer rows.Close()
	expenses := []models.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		expenses = append(expenses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense rows", err)
	}
	return mapping.ToDomainExpenseSlice(expenses), nil
}
