// Package models defines the domain types for the VitaminX API.
package models

import "time"

// Pagination bounds for note listings.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Note is a user-authored text record.
type Note struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ListParams selects one page of notes, optionally filtered by a search term.
type ListParams struct {
	Query  string
	Limit  int
	Offset int
}

// NotesPage is a single page of a note listing.
type NotesPage struct {
	Items   []Note `json:"items"`
	Total   int    `json:"total"`
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset"`
	HasMore bool   `json:"has_more"`
}

// NewNotesPage builds a page and derives HasMore from the returned item count.
func NewNotesPage(items []Note, total, limit, offset int) NotesPage {
	if items == nil {
		items = []Note{}
	}
	return NotesPage{
		Items:   items,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+len(items) < total,
	}
}
