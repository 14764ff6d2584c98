package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaminx-2025/vitaminx-website/internal/apperr"
	"github.com/vitaminx-2025/vitaminx-website/internal/models"
)

func TestCreateEdge_InvalidEndpoints(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	a, err := db.CreateNode(ctx, models.Node{Text: "a", Kind: "square"})
	require.NoError(t, err)

	_, err = db.CreateEdge(ctx, models.Edge{SourceID: a.ID, TargetID: 999, Weight: 1})
	assert.ErrorIs(t, err, apperr.ErrInvalidReference)
	_, err = db.CreateEdge(ctx, models.Edge{SourceID: 999, TargetID: a.ID, Weight: 1})
	assert.ErrorIs(t, err, apperr.ErrInvalidReference)

	edges, err := db.ListEdges(ctx)
	require.NoError(t, err)
	assert.Empty(t, edges, "no edge row may be persisted on failure")
}

func TestCreateEdge_ValidEndpoints(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	a, err := db.CreateNode(ctx, models.Node{Text: "a", X: 1, Y: 2, Kind: "square"})
	require.NoError(t, err)
	b, err := db.CreateNode(ctx, models.Node{Text: "b", Kind: "circle"})
	require.NoError(t, err)

	e, err := db.CreateEdge(ctx, models.Edge{SourceID: a.ID, TargetID: b.ID, Weight: 2.5})
	require.NoError(t, err)
	assert.NotZero(t, e.ID)

	edges, err := db.ListEdges(ctx)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, *e, edges[0])

	nodes, err := db.ListNodes(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, *a, nodes[0])
	assert.Equal(t, "circle", nodes[1].Kind)
}

func TestCreateEdge_SelfLoop(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	a, err := db.CreateNode(ctx, models.Node{Text: "a", Kind: "square"})
	require.NoError(t, err)

	_, err = db.CreateEdge(ctx, models.Edge{SourceID: a.ID, TargetID: a.ID, Weight: 1})
	assert.NoError(t, err)
}

func TestDeleteNode_CascadesEdges(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	a, _ := db.CreateNode(ctx, models.Node{Text: "a", Kind: "square"})
	b, _ := db.CreateNode(ctx, models.Node{Text: "b", Kind: "square"})
	c, _ := db.CreateNode(ctx, models.Node{Text: "c", Kind: "square"})
	_, err := db.CreateEdge(ctx, models.Edge{SourceID: a.ID, TargetID: b.ID, Weight: 1})
	require.NoError(t, err)
	keep, err := db.CreateEdge(ctx, models.Edge{SourceID: c.ID, TargetID: a.ID, Weight: 1})
	require.NoError(t, err)
	_, err = db.CreateEdge(ctx, models.Edge{SourceID: b.ID, TargetID: c.ID, Weight: 1})
	require.NoError(t, err)

	require.NoError(t, db.DeleteNode(ctx, b.ID))

	edges, err := db.ListEdges(ctx)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, keep.ID, edges[0].ID)

	assert.ErrorIs(t, db.DeleteNode(ctx, b.ID), apperr.ErrNotFound)
}

func TestDeleteEdge(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	a, _ := db.CreateNode(ctx, models.Node{Text: "a", Kind: "square"})
	e, err := db.CreateEdge(ctx, models.Edge{SourceID: a.ID, TargetID: a.ID, Weight: 1})
	require.NoError(t, err)

	require.NoError(t, db.DeleteEdge(ctx, e.ID))
	assert.ErrorIs(t, db.DeleteEdge(ctx, e.ID), apperr.ErrNotFound)
}

func TestForeignKeysEnforced(t *testing.T) {
	db := testDB(t)
	_, err := db.conn.Exec(`INSERT INTO edges (source_id, target_id, weight) VALUES (1, 2, 1.0)`)
	require.Error(t, err)
	assert.True(t, isForeignKeyViolation(err), "unexpected error: %v", err)
}
