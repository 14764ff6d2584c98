package main

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaminx-2025/vitaminx-website/internal/service"
	"github.com/vitaminx-2025/vitaminx-website/internal/store/memstore"
)

func TestWriteExportToFile(t *testing.T) {
	ctx := context.Background()
	svc := service.NewService(memstore.New(), nil)
	_, err := svc.CreateNote(ctx, "first")
	require.NoError(t, err)
	_, err = svc.CreateNote(ctx, "second, with comma")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "notes.csv")
	require.NoError(t, writeExport(ctx, svc, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"id", "text", "created_at"}, records[0])
	assert.Equal(t, "second, with comma", records[1][1])
}

func TestWriteExportCreateError(t *testing.T) {
	svc := service.NewService(memstore.New(), nil)
	path := filepath.Join(t.TempDir(), "missing", "notes.csv")
	err := writeExport(context.Background(), svc, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create")
}
