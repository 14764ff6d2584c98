package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/vitaminx-2025/vitaminx-website/internal/apperr"
	"github.com/vitaminx-2025/vitaminx-website/internal/models"
)

// CreateNode inserts a node as given; normalization happens in the service layer.
func (db *DB) CreateNode(ctx context.Context, n models.Node) (*models.Node, error) {
	res, err := db.conn.ExecContext(ctx, `INSERT INTO nodes (text, x, y, kind) VALUES (?, ?, ?, ?)`,
		n.Text, n.X, n.Y, n.Kind)
	if err != nil {
		return nil, fmt.Errorf("store: insert node: %w", err)
	}
	if n.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("store: insert node: %w", err)
	}
	return &n, nil
}

// ListNodes returns every node ordered by id.
func (db *DB) ListNodes(ctx context.Context) ([]models.Node, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, text, x, y, kind FROM nodes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: list nodes: %w", err)
	}
	defer rows.Close()

	out := []models.Node{}
	for rows.Next() {
		var n models.Node
		if err := rows.Scan(&n.ID, &n.Text, &n.X, &n.Y, &n.Kind); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// DeleteNode removes a node. Edges referencing it are removed by the
// ON DELETE CASCADE foreign keys.
func (db *DB) DeleteNode(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM nodes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete node: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// CreateEdge inserts an edge after checking, in the same transaction, that
// both endpoints exist. Nothing is written when either is missing.
func (db *DB) CreateEdge(ctx context.Context, e models.Edge) (*models.Edge, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var ok bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM nodes WHERE id = ?)
		   AND EXISTS(SELECT 1 FROM nodes WHERE id = ?)
	`, e.SourceID, e.TargetID).Scan(&ok)
	if err != nil {
		return nil, fmt.Errorf("store: check edge endpoints: %w", err)
	}
	if !ok {
		return nil, apperr.ErrInvalidReference
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO edges (source_id, target_id, weight) VALUES (?, ?, ?)`,
		e.SourceID, e.TargetID, e.Weight)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperr.ErrInvalidReference
		}
		return nil, fmt.Errorf("store: insert edge: %w", err)
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("store: insert edge: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}
	return &e, nil
}

// ListEdges returns every edge ordered by id.
func (db *DB) ListEdges(ctx context.Context) ([]models.Edge, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, source_id, target_id, weight FROM edges ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: list edges: %w", err)
	}
	defer rows.Close()

	out := []models.Edge{}
	for rows.Next() {
		var e models.Edge
		if err := rows.Scan(&e.ID, &e.SourceID, &e.TargetID, &e.Weight); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteEdge removes a single edge.
func (db *DB) DeleteEdge(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM edges WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete edge: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
