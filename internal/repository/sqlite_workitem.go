package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ganttlane/internal/domain"
)

// workItemColumns is the canonical SELECT column list for work_items.
const workItemColumns = `id, title, kind, assignees, labels,
		start_date, due_date, created_at, updated_at`

// SQLiteWorkItemRepo implements WorkItemRepo using a SQLite database.
type SQLiteWorkItemRepo struct {
	db *sql.DB
}

// NewSQLiteWorkItemRepo creates a new SQLiteWorkItemRepo.
func NewSQLiteWorkItemRepo(db *sql.DB) *SQLiteWorkItemRepo {
	return &SQLiteWorkItemRepo{db: db}
}

func (r *SQLiteWorkItemRepo) Create(ctx context.Context, w *domain.WorkItem) error {
	query := `INSERT INTO work_items (id, title, kind, assignees, labels,
		start_date, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.Title,
		string(w.Kind),
		joinList(w.Assignees),
		joinList(w.Labels),
		nullableTimeToString(w.Start, dateLayout),
		nullableTimeToString(w.Due, dateLayout),
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting work item: %w", err)
	}
	return nil
}

func (r *SQLiteWorkItemRepo) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanWorkItem(row)
}

func (r *SQLiteWorkItemRepo) List(ctx context.Context) ([]*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items ORDER BY start_date IS NULL, start_date, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing work items: %w", err)
	}
	defer rows.Close()
	return r.scanWorkItems(rows)
}

func (r *SQLiteWorkItemRepo) Update(ctx context.Context, w *domain.WorkItem) error {
	query := `UPDATE work_items SET title = ?, kind = ?, assignees = ?, labels = ?,
		start_date = ?, due_date = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		w.Title,
		string(w.Kind),
		joinList(w.Assignees),
		joinList(w.Labels),
		nullableTimeToString(w.Start, dateLayout),
		nullableTimeToString(w.Due, dateLayout),
		w.UpdatedAt.Format(time.RFC3339),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work item: %w", err)
	}
	return requireRow(res, "work item")
}

// UpdateSpan rewrites only the scheduled interval, leaving the rest of the
// row untouched. This is the write path behind drag commits.
func (r *SQLiteWorkItemRepo) UpdateSpan(ctx context.Context, id string, span SpanUpdate) error {
	query := `UPDATE work_items SET start_date = ?, due_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableTimeToString(span.Start, dateLayout),
		nullableTimeToString(span.Due, dateLayout),
		nowUTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating work item span: %w", err)
	}
	return requireRow(res, "work item")
}

func (r *SQLiteWorkItemRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM work_items WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting work item: %w", err)
	}
	return requireRow(res, "work item")
}

// requireRow converts a zero-row write into ErrNotFound.
func requireRow(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}

// scanWorkItem scans a single work item from a *sql.Row.
func (r *SQLiteWorkItemRepo) scanWorkItem(row *sql.Row) (*domain.WorkItem, error) {
	var w domain.WorkItem
	var kindStr, assigneesStr, labelsStr string
	var startStr, dueStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&w.ID, &w.Title, &kindStr, &assigneesStr, &labelsStr,
		&startStr, &dueStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work item: %w", err)
	}

	return r.populateWorkItem(&w, kindStr, assigneesStr, labelsStr, startStr, dueStr, createdAtStr, updatedAtStr)
}

// scanWorkItems scans multiple work items from *sql.Rows.
func (r *SQLiteWorkItemRepo) scanWorkItems(rows *sql.Rows) ([]*domain.WorkItem, error) {
	var items []*domain.WorkItem
	for rows.Next() {
		var w domain.WorkItem
		var kindStr, assigneesStr, labelsStr string
		var startStr, dueStr sql.NullString
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&w.ID, &w.Title, &kindStr, &assigneesStr, &labelsStr,
			&startStr, &dueStr, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning work item row: %w", err)
		}

		item, err := r.populateWorkItem(&w, kindStr, assigneesStr, labelsStr, startStr, dueStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work items: %w", err)
	}
	return items, nil
}

// populateWorkItem fills in parsed fields on a WorkItem after scanning raw values.
func (r *SQLiteWorkItemRepo) populateWorkItem(
	w *domain.WorkItem,
	kindStr, assigneesStr, labelsStr string,
	startStr, dueStr sql.NullString,
	createdAtStr, updatedAtStr string,
) (*domain.WorkItem, error) {
	w.Kind = domain.ItemKind(kindStr)
	w.Assignees = splitList(assigneesStr)
	w.Labels = splitList(labelsStr)
	w.Start = parseNullableTime(startStr, dateLayout)
	w.Due = parseNullableTime(dueStr, dateLayout)

	var parseErr error
	w.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	w.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return w, nil
}
