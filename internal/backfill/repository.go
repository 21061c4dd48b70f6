// Package backfill rewrites stored phone numbers into canonical form.
package backfill

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository uses.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Row is one stored phone value.
type Row struct {
	ID    uuid.UUID
	Phone string
}

// Repository reads and writes the phone column of one table. The table must
// have a uuid primary key named id.
type Repository struct {
	db        DB
	selectSQL string
	updateSQL string
}

// NewRepository quotes table and column as identifiers; table may be schema
// qualified ("crm.contacts").
func NewRepository(db DB, table, column string) (*Repository, error) {
	table = strings.TrimSpace(table)
	column = strings.TrimSpace(column)
	if table == "" || column == "" {
		return nil, fmt.Errorf("backfill: table and column are required")
	}

	tableIdent := pgx.Identifier(strings.Split(table, ".")).Sanitize()
	columnIdent := pgx.Identifier{column}.Sanitize()

	return &Repository{
		db: db,
		selectSQL: fmt.Sprintf(`
		SELECT id, %[2]s
		FROM %[1]s
		WHERE id > $1
		  AND %[2]s IS NOT NULL
		ORDER BY id ASC
		LIMIT $2`, tableIdent, columnIdent),
		updateSQL: fmt.Sprintf(`
		UPDATE %[1]s
		SET %[2]s = $2
		WHERE id = $1`, tableIdent, columnIdent),
	}, nil
}

// ListAfter returns up to limit rows with an id greater than after, in id
// order. uuid.Nil starts from the beginning.
func (r *Repository) ListAfter(ctx context.Context, after uuid.UUID, limit int) ([]Row, error) {
	rows, err := r.db.Query(ctx, r.selectSQL, after, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]Row, 0, limit)
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.Phone); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return result, nil
}

// UpdatePhone stores the canonical value for id.
func (r *Repository) UpdatePhone(ctx context.Context, id uuid.UUID, value string) error {
	tag, err := r.db.Exec(ctx, r.updateSQL, id, value)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("backfill: row %s not found", id)
	}
	return nil
}
