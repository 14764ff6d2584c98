package store

import (
	"context"

	"github.com/vitaminx-2025/vitaminx-website/internal/models"
)

// NoteStore defines note persistence and search operations.
// Consumers should depend on this interface rather than the concrete *DB type
// so tests can substitute the in-memory implementation.
type NoteStore interface {
	ListNotes(ctx context.Context, p models.ListParams) ([]models.Note, int, error)
	GetNote(ctx context.Context, id int64) (*models.Note, error)
	CreateNote(ctx context.Context, text string) (*models.Note, error)
	UpdateNote(ctx context.Context, id int64, text string) (*models.Note, error)
	DeleteNote(ctx context.Context, id int64) error
	AllNotes(ctx context.Context) ([]models.Note, error)
	RebuildSearchIndex(ctx context.Context) (int, error)
}

// GraphStore defines node and edge persistence.
type GraphStore interface {
	CreateNode(ctx context.Context, n models.Node) (*models.Node, error)
	ListNodes(ctx context.Context) ([]models.Node, error)
	DeleteNode(ctx context.Context, id int64) error
	CreateEdge(ctx context.Context, e models.Edge) (*models.Edge, error)
	ListEdges(ctx context.Context) ([]models.Edge, error)
	DeleteEdge(ctx context.Context, id int64) error
}

// Store is the full data-access surface used by the service layer.
type Store interface {
	NoteStore
	GraphStore
	Ping(ctx context.Context) error
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
