package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/vitaminx-2025/vitaminx-website/internal/apperr"
	"github.com/vitaminx-2025/vitaminx-website/internal/models"
)

// NodeInput is an unnormalized node payload.
type NodeInput struct {
	Text string
	X    float64
	Y    float64
	Kind string
}

// EdgeInput is an edge payload; a nil Weight means the default weight.
type EdgeInput struct {
	SourceID int64
	TargetID int64
	Weight   *float64
}

// NormalizeNode trims and truncates the text, clamps coordinates into
// [MinCoord, MaxCoord] and defaults the kind.
func NormalizeNode(in NodeInput) (models.Node, error) {
	text := truncateRunes(strings.TrimSpace(in.Text), models.MaxNodeText)
	// Truncation can expose trailing whitespace.
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Node{}, apperr.Invalid("text must not be empty")
	}
	kind := strings.TrimSpace(in.Kind)
	if kind == "" {
		kind = models.DefaultNodeKind
	}
	return models.Node{
		Text: text,
		X:    clamp(in.X, models.MinCoord, models.MaxCoord),
		Y:    clamp(in.Y, models.MinCoord, models.MaxCoord),
		Kind: kind,
	}, nil
}

// CreateNode normalizes and stores a node.
func (s *Service) CreateNode(ctx context.Context, in NodeInput) (*models.Node, error) {
	n, err := NormalizeNode(in)
	if err != nil {
		return nil, err
	}
	created, err := s.store.CreateNode(ctx, n)
	if err != nil {
		return nil, err
	}
	s.notify(EventNodeCreated, created.ID)
	return created, nil
}

// ListNodes returns all nodes.
func (s *Service) ListNodes(ctx context.Context) ([]models.Node, error) {
	return s.store.ListNodes(ctx)
}

// DeleteNode removes a node together with every edge touching it.
func (s *Service) DeleteNode(ctx context.Context, id int64) error {
	if err := s.store.DeleteNode(ctx, id); err != nil {
		return err
	}
	s.notify(EventNodeDeleted, id)
	return nil
}

// CreateEdge stores an edge between two existing nodes.
func (s *Service) CreateEdge(ctx context.Context, in EdgeInput) (*models.Edge, error) {
	weight := models.DefaultEdgeWeight
	if in.Weight != nil {
		weight = *in.Weight
	}
	e, err := s.store.CreateEdge(ctx, models.Edge{
		SourceID: in.SourceID,
		TargetID: in.TargetID,
		Weight:   weight,
	})
	if err != nil {
		return nil, err
	}
	s.notify(EventEdgeCreated, e.ID)
	return e, nil
}

// ListEdges returns all edges.
func (s *Service) ListEdges(ctx context.Context) ([]models.Edge, error) {
	return s.store.ListEdges(ctx)
}

// DeleteEdge removes a single edge.
func (s *Service) DeleteEdge(ctx context.Context, id int64) error {
	if err := s.store.DeleteEdge(ctx, id); err != nil {
		return err
	}
	s.notify(EventEdgeDeleted, id)
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
