// Package memstore provides an in-memory store.Store for tests and
// throwaway runs. State lives in the instance and is lost when it is dropped.
package memstore

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/vitaminx-2025/vitaminx-website/internal/apperr"
	"github.com/vitaminx-2025/vitaminx-website/internal/models"
	"github.com/vitaminx-2025/vitaminx-website/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store keeps notes, nodes and edges in slices ordered by ascending id.
type Store struct {
	mu sync.RWMutex

	notes []models.Note
	nodes []models.Node
	edges []models.Edge

	nextNote int64
	nextNode int64
	nextEdge int64

	now func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{now: time.Now}
}

func (s *Store) ListNotes(_ context.Context, p models.ListParams) ([]models.Note, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens := strings.Fields(strings.ToLower(p.Query))
	var matched []models.Note
	for i := len(s.notes) - 1; i >= 0; i-- {
		n := s.notes[i]
		if containsAll(strings.ToLower(n.Text), tokens) {
			matched = append(matched, n)
		}
	}

	total := len(matched)
	start := min(max(p.Offset, 0), total)
	end := min(start+max(p.Limit, 0), total)
	page := make([]models.Note, end-start)
	copy(page, matched[start:end])
	return page, total, nil
}

func (s *Store) GetNote(_ context.Context, id int64) (*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.noteIndex(id)
	if i < 0 {
		return nil, apperr.ErrNotFound
	}
	n := s.notes[i]
	return &n, nil
}

func (s *Store) CreateNote(_ context.Context, text string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextNote++
	n := models.Note{ID: s.nextNote, Text: text, CreatedAt: s.now().UTC()}
	s.notes = append(s.notes, n)
	return &n, nil
}

func (s *Store) UpdateNote(_ context.Context, id int64, text string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.noteIndex(id)
	if i < 0 {
		return nil, apperr.ErrNotFound
	}
	s.notes[i].Text = text
	n := s.notes[i]
	return &n, nil
}

func (s *Store) DeleteNote(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.noteIndex(id)
	if i < 0 {
		return apperr.ErrNotFound
	}
	s.notes = slices.Delete(s.notes, i, i+1)
	return nil
}

func (s *Store) AllNotes(_ context.Context) ([]models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.notes)
	slices.Reverse(out)
	if out == nil {
		out = []models.Note{}
	}
	return out, nil
}

// RebuildSearchIndex is a no-op: searches scan the notes directly.
func (s *Store) RebuildSearchIndex(_ context.Context) (int, error) {
	return 0, nil
}

func (s *Store) CreateNode(_ context.Context, n models.Node) (*models.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextNode++
	n.ID = s.nextNode
	s.nodes = append(s.nodes, n)
	return &n, nil
}

func (s *Store) ListNodes(_ context.Context) ([]models.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Node{}, s.nodes...), nil
}

// DeleteNode removes the node and cascades to its edges.
func (s *Store) DeleteNode(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.nodes, func(n models.Node) bool { return n.ID == id })
	if i < 0 {
		return apperr.ErrNotFound
	}
	s.nodes = slices.Delete(s.nodes, i, i+1)
	s.edges = slices.DeleteFunc(s.edges, func(e models.Edge) bool {
		return e.SourceID == id || e.TargetID == id
	})
	return nil
}

func (s *Store) CreateEdge(_ context.Context, e models.Edge) (*models.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasNode(e.SourceID) || !s.hasNode(e.TargetID) {
		return nil, apperr.ErrInvalidReference
	}
	s.nextEdge++
	e.ID = s.nextEdge
	s.edges = append(s.edges, e)
	return &e, nil
}

func (s *Store) ListEdges(_ context.Context) ([]models.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Edge{}, s.edges...), nil
}

func (s *Store) DeleteEdge(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.edges, func(e models.Edge) bool { return e.ID == id })
	if i < 0 {
		return apperr.ErrNotFound
	}
	s.edges = slices.Delete(s.edges, i, i+1)
	return nil
}

func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) noteIndex(id int64) int {
	return slices.IndexFunc(s.notes, func(n models.Note) bool { return n.ID == id })
}

func (s *Store) hasNode(id int64) bool {
	return slices.ContainsFunc(s.nodes, func(n models.Node) bool { return n.ID == id })
}

func containsAll(text string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(text, tok) {
			return false
		}
	}
	return true
}
