// Package service applies the validation policy for notes and graph
// entities on top of a store.Store.
package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/vitaminx-2025/vitaminx-website/internal/apperr"
	"github.com/vitaminx-2025/vitaminx-website/internal/export"
	"github.com/vitaminx-2025/vitaminx-website/internal/metrics"
	"github.com/vitaminx-2025/vitaminx-website/internal/models"
	"github.com/vitaminx-2025/vitaminx-website/internal/store"
)

// Change event kinds passed to a Publisher.
const (
	EventNoteCreated = "note.created"
	EventNoteUpdated = "note.updated"
	EventNoteDeleted = "note.deleted"
	EventNodeCreated = "node.created"
	EventNodeDeleted = "node.deleted"
	EventEdgeCreated = "edge.created"
	EventEdgeDeleted = "edge.deleted"
)

// Publisher receives a notification after every successful mutation.
type Publisher interface {
	PublishChange(kind string, id int64)
}

// Service coordinates validation and store operations.
type Service struct {
	store store.Store
	pub   Publisher
}

// NewService creates a new service. pub may be nil.
func NewService(st store.Store, pub Publisher) *Service {
	return &Service{store: st, pub: pub}
}

// Ping reports whether the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

type listQuery struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ListNotes returns one page of notes, newest first. A blank q lists all notes.
func (s *Service) ListNotes(ctx context.Context, q string, limit, offset int) (models.NotesPage, error) {
	lq := listQuery{Limit: limit, Offset: offset}
	if err := validation.ValidateStruct(&lq,
		validation.Field(&lq.Limit,
			validation.Required.Error(fmt.Sprintf("must be between 1 and %d", models.MaxLimit)),
			validation.Min(1), validation.Max(models.MaxLimit)),
		validation.Field(&lq.Offset, validation.Min(0)),
	); err != nil {
		return models.NotesPage{}, apperr.Invalid("%s", err.Error())
	}

	items, total, err := s.store.ListNotes(ctx, models.ListParams{
		Query:  strings.TrimSpace(q),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return models.NotesPage{}, err
	}
	return models.NewNotesPage(items, total, limit, offset), nil
}

// CreateNote stores a note with trimmed, non-empty text.
func (s *Service) CreateNote(ctx context.Context, text string) (*models.Note, error) {
	text, err := requireText(text)
	if err != nil {
		return nil, err
	}
	n, err := s.store.CreateNote(ctx, text)
	if err != nil {
		return nil, err
	}
	s.notify(EventNoteCreated, n.ID)
	return n, nil
}

// UpdateNote replaces the text of an existing note.
func (s *Service) UpdateNote(ctx context.Context, id int64, text string) (*models.Note, error) {
	text, err := requireText(text)
	if err != nil {
		return nil, err
	}
	n, err := s.store.UpdateNote(ctx, id, text)
	if err != nil {
		return nil, err
	}
	s.notify(EventNoteUpdated, n.ID)
	return n, nil
}

// DeleteNote removes a note.
func (s *Service) DeleteNote(ctx context.Context, id int64) error {
	if err := s.store.DeleteNote(ctx, id); err != nil {
		return err
	}
	s.notify(EventNoteDeleted, id)
	return nil
}

// ExportNotes writes every note as CSV, newest first. Nothing is written to w
// when the notes cannot be loaded.
func (s *Service) ExportNotes(ctx context.Context, w io.Writer) error {
	notes, err := s.store.AllNotes(ctx)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := export.WriteNotesCSV(w, notes); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	metrics.NotesExported.Add(float64(len(notes)))
	return nil
}

// Reindex backfills search-index rows for notes that have none.
func (s *Service) Reindex(ctx context.Context) (int, error) {
	return s.store.RebuildSearchIndex(ctx)
}

// AIMock returns a canned suggestion built from the given texts.
func (s *Service) AIMock(texts []string) string {
	joined := "no input"
	if len(texts) > 0 {
		joined = strings.Join(texts, " | ")
	}
	return "AI idea from " + joined
}

func (s *Service) notify(kind string, id int64) {
	if s.pub != nil {
		s.pub.PublishChange(kind, id)
	}
}

func requireText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperr.Invalid("text must not be empty")
	}
	return text, nil
}
