// Package export serializes notes for download.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/vitaminx-2025/vitaminx-website/internal/models"
)

// TimeFormat is the textual timestamp format used in exports.
const TimeFormat = time.RFC3339

// Header is the CSV header row.
var Header = []string{"id", "text", "created_at"}

// WriteNotesCSV writes a header followed by one record per note, in order.
func WriteNotesCSV(w io.Writer, notes []models.Note) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, n := range notes {
		rec := []string{
			strconv.FormatInt(n.ID, 10),
			n.Text,
			n.CreatedAt.UTC().Format(TimeFormat),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
