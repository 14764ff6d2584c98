package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaminx-2025/vitaminx-website/internal/apperr"
	"github.com/vitaminx-2025/vitaminx-website/internal/models"
)

func TestNotes_DescendingAndSearch(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, _ = s.CreateNote(ctx, "Foo bar")
	_, _ = s.CreateNote(ctx, "baz")
	last, _ := s.CreateNote(ctx, "more foo")

	notes, total, err := s.ListNotes(ctx, models.ListParams{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, last.ID, notes[0].ID)

	notes, total, err = s.ListNotes(ctx, models.ListParams{Query: "foo", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, notes, 1)
	assert.Equal(t, last.ID, notes[0].ID)
}

func TestNotes_SearchRequiresEveryWord(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, _ = s.CreateNote(ctx, "Bar and foo")
	_, _ = s.CreateNote(ctx, "foo bar")
	_, _ = s.CreateNote(ctx, "foo only")

	_, total, err := s.ListNotes(ctx, models.ListParams{Query: "FOO bar", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	_, total, err = s.ListNotes(ctx, models.ListParams{Query: "   ", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestNotes_OffsetPastEnd(t *testing.T) {
	s := New()
	_, _ = s.CreateNote(context.Background(), "only")
	notes, total, err := s.ListNotes(context.Background(), models.ListParams{Limit: 5, Offset: 9})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, notes)
}

func TestNotes_UpdateDelete(t *testing.T) {
	s := New()
	ctx := context.Background()
	n, _ := s.CreateNote(ctx, "v1")

	updated, err := s.UpdateNote(ctx, n.ID, "v2")
	require.NoError(t, err)
	assert.Equal(t, n.CreatedAt, updated.CreatedAt)

	require.NoError(t, s.DeleteNote(ctx, n.ID))
	assert.ErrorIs(t, s.DeleteNote(ctx, n.ID), apperr.ErrNotFound)
	_, err = s.UpdateNote(ctx, n.ID, "v3")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGraph_EdgeValidationAndCascade(t *testing.T) {
	s := New()
	ctx := context.Background()
	a, _ := s.CreateNode(ctx, models.Node{Text: "a"})
	b, _ := s.CreateNode(ctx, models.Node{Text: "b"})

	_, err := s.CreateEdge(ctx, models.Edge{SourceID: a.ID, TargetID: 77})
	assert.ErrorIs(t, err, apperr.ErrInvalidReference)

	_, err = s.CreateEdge(ctx, models.Edge{SourceID: a.ID, TargetID: b.ID, Weight: 1})
	require.NoError(t, err)

	require.NoError(t, s.DeleteNode(ctx, a.ID))
	edges, _ := s.ListEdges(ctx)
	assert.Empty(t, edges)
}

func TestInstancesAreIndependent(t *testing.T) {
	ctx := context.Background()
	one, two := New(), New()
	_, _ = one.CreateNote(ctx, "x")

	n, _ := two.CreateNote(ctx, "y")
	assert.Equal(t, int64(1), n.ID)
	all, _ := two.AllNotes(ctx)
	assert.Len(t, all, 1)
}
