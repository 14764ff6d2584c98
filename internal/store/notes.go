package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vitaminx-2025/vitaminx-website/internal/apperr"
	"github.com/vitaminx-2025/vitaminx-website/internal/models"
)

// ListNotes returns one page of notes ordered by descending id, plus the
// total number of notes matching p.Query (all notes when it is empty). Both
// queries read the same snapshot.
func (db *DB) ListNotes(ctx context.Context, p models.ListParams) ([]models.Note, int, error) {
	where := ""
	var args []any
	if clause, clauseArgs := searchPredicate(p.Query); clause != "" {
		where = " WHERE " + clause
		args = clauseArgs
	}

	tx, err := db.conn.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, 0, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // read-only

	var total int
	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM notes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("store: count notes: %w", err)
	}

	pageArgs := append(append([]any{}, args...), p.Limit, p.Offset)
	rows, err := tx.QueryContext(ctx, `
		SELECT id, text, created_at
		FROM notes`+where+`
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("store: list notes: %w", err)
	}
	notes, err := scanNotes(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("store: list notes: %w", err)
	}
	return notes, total, nil
}

// GetNote returns the note with the given id.
func (db *DB) GetNote(ctx context.Context, id int64) (*models.Note, error) {
	return getNote(ctx, db.conn, id)
}

// CreateNote inserts a note. The search-index shadow row is written by the
// insert trigger in the same statement.
func (db *DB) CreateNote(ctx context.Context, text string) (*models.Note, error) {
	now := db.now().UTC()
	res, err := db.conn.ExecContext(ctx, `INSERT INTO notes (text, created_at) VALUES (?, ?)`, text, now)
	if err != nil {
		return nil, fmt.Errorf("store: insert note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: insert note: %w", err)
	}
	return &models.Note{ID: id, Text: text, CreatedAt: now}, nil
}

// UpdateNote replaces the text of a note, leaving created_at untouched.
func (db *DB) UpdateNote(ctx context.Context, id int64, text string) (*models.Note, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	res, err := tx.ExecContext(ctx, `UPDATE notes SET text = ? WHERE id = ?`, text, id)
	if err != nil {
		return nil, fmt.Errorf("store: update note: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperr.ErrNotFound
	}
	note, err := getNote(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}
	return note, nil
}

// DeleteNote removes a note; the delete trigger drops its index shadow.
func (db *DB) DeleteNote(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete note: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// AllNotes returns every note ordered by descending id.
func (db *DB) AllNotes(ctx context.Context) ([]models.Note, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, text, created_at FROM notes ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: all notes: %w", err)
	}
	notes, err := scanNotes(rows)
	if err != nil {
		return nil, fmt.Errorf("store: all notes: %w", err)
	}
	return notes, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getNote(ctx context.Context, q queryRower, id int64) (*models.Note, error) {
	var n models.Note
	err := q.QueryRowContext(ctx, `SELECT id, text, created_at FROM notes WHERE id = ?`, id).
		Scan(&n.ID, &n.Text, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get note: %w", err)
	}
	return &n, nil
}

func scanNotes(rows *sql.Rows) ([]models.Note, error) {
	defer rows.Close()
	out := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Text, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
