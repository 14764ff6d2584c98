package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaminx-2025/vitaminx-website/internal/apperr"
	"github.com/vitaminx-2025/vitaminx-website/internal/models"
	"github.com/vitaminx-2025/vitaminx-website/internal/store/memstore"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) PublishChange(kind string, _ int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, kind)
}

func newTestService(t *testing.T) (*Service, *recorder) {
	t.Helper()
	rec := &recorder{}
	return NewService(memstore.New(), rec), rec
}

func TestCreateNote_TrimsText(t *testing.T) {
	svc, rec := newTestService(t)
	n, err := svc.CreateNote(context.Background(), "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", n.Text)
	assert.Equal(t, []string{EventNoteCreated}, rec.events)
}

func TestCreateNote_RejectsBlank(t *testing.T) {
	svc, rec := newTestService(t)
	ctx := context.Background()
	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.CreateNote(ctx, text)
		assert.ErrorIs(t, err, apperr.ErrInvalidInput, "text %q", text)
	}
	page, err := svc.ListNotes(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Zero(t, page.Total, "no row may be persisted")
	assert.Empty(t, rec.events)
}

func TestListNotes_ValidatesRange(t *testing.T) {
	svc, _ := newTestService(t)
	cases := []struct {
		limit, offset int
		ok            bool
	}{
		{1, 0, true},
		{100, 0, true},
		{10, 500, true},
		{0, 0, false},
		{101, 0, false},
		{-1, 0, false},
		{10, -1, false},
	}
	for _, tc := range cases {
		_, err := svc.ListNotes(context.Background(), "", tc.limit, tc.offset)
		if tc.ok {
			assert.NoError(t, err, "limit=%d offset=%d", tc.limit, tc.offset)
		} else {
			assert.ErrorIs(t, err, apperr.ErrInvalidInput, "limit=%d offset=%d", tc.limit, tc.offset)
		}
	}
}

func TestListNotes_ErrorMessageNamesField(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.ListNotes(context.Background(), "", 500, 0)
	require.Error(t, err)
	assert.Contains(t, apperr.Message(err, ""), "limit")
}

func TestListNotes_BlankQueryListsAll(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, _ = svc.CreateNote(ctx, "one")
	_, _ = svc.CreateNote(ctx, "two")

	page, err := svc.ListNotes(ctx, "   ", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.False(t, page.HasMore)
}

func TestUpdateNote(t *testing.T) {
	svc, rec := newTestService(t)
	ctx := context.Background()
	n, _ := svc.CreateNote(ctx, "before")

	_, err := svc.UpdateNote(ctx, n.ID, "  ")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.UpdateNote(ctx, 999, "x")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	updated, err := svc.UpdateNote(ctx, n.ID, " after ")
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Text)
	assert.Equal(t, n.CreatedAt, updated.CreatedAt)
	assert.Equal(t, []string{EventNoteCreated, EventNoteUpdated}, rec.events)
}

func TestDeleteNote(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	n, _ := svc.CreateNote(ctx, "gone")

	require.NoError(t, svc.DeleteNote(ctx, n.ID))
	assert.ErrorIs(t, svc.DeleteNote(ctx, n.ID), apperr.ErrNotFound)

	page, _ := svc.ListNotes(ctx, "", 10, 0)
	assert.Empty(t, page.Items)
}

func TestExportNotes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for _, text := range []string{"a", "b", "c"} {
		_, _ = svc.CreateNote(ctx, text)
	}
	var buf bytes.Buffer
	require.NoError(t, svc.ExportNotes(ctx, &buf))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "id,text,created_at", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "3,c,"), lines[1])
}

type failingStore struct {
	*memstore.Store
}

func (failingStore) AllNotes(context.Context) ([]models.Note, error) {
	return nil, errors.New("disk on fire")
}

func TestExportNotes_NothingWrittenOnLoadFailure(t *testing.T) {
	svc := NewService(failingStore{memstore.New()}, nil)
	var buf bytes.Buffer
	err := svc.ExportNotes(context.Background(), &buf)
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestAIMock(t *testing.T) {
	svc, _ := newTestService(t)
	assert.Equal(t, "AI idea from a | b", svc.AIMock([]string{"a", "b"}))
	assert.Equal(t, "AI idea from no input", svc.AIMock(nil))
	assert.Equal(t, "AI idea from no input", svc.AIMock([]string{}))
}

func TestNilPublisherIsAllowed(t *testing.T) {
	svc := NewService(memstore.New(), nil)
	_, err := svc.CreateNote(context.Background(), "quiet")
	assert.NoError(t, err)
}
