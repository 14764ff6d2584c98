package api

import (
	"net/http"

	"github.com/vitaminx-2025/vitaminx-website/internal/models"
	"github.com/vitaminx-2025/vitaminx-website/internal/service"
)

// Handler holds API route handlers.
type Handler struct {
	svc       *service.Service
	bodyLimit int64
}

// NewHandler creates a new Handler.
func NewHandler(svc *service.Service, bodyLimit int64) *Handler {
	return &Handler{svc: svc, bodyLimit: bodyLimit}
}

// ListNotes handles GET /api/notes.
//
//	@Summary		List notes, newest first, with optional text search
//	@Tags			notes
//	@Produce		json
//	@Param			q		query		string	false	"Search text"
//	@Param			limit	query		int		false	"Page size (1-100)"
//	@Param			offset	query		int		false	"Page offset"
//	@Success		200		{object}	models.NotesPage
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", models.DefaultLimit)
	if err != nil {
		writeError(w, r, "list notes", err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, r, "list notes", err)
		return
	}

	page, err := h.svc.ListNotes(r.Context(), r.URL.Query().Get("q"), limit, offset)
	if err != nil {
		writeError(w, r, "list notes", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// CreateNote handles POST /api/notes.
//
//	@Summary		Create a new note
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		NoteRequest	true	"Note to create"
//	@Success		201		{object}	models.Note
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if !decodeJSON(w, r, h.bodyLimit, &req) {
		return
	}
	note, err := h.svc.CreateNote(r.Context(), req.Text)
	if err != nil {
		writeError(w, r, "create note", err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// UpdateNote handles PUT /api/notes/{id}.
//
//	@Summary		Replace the text of a note
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int			true	"Note id"
//	@Param			body	body		NoteRequest	true	"New text"
//	@Success		200		{object}	models.Note
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [put]
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req NoteRequest
	if !decodeJSON(w, r, h.bodyLimit, &req) {
		return
	}
	note, err := h.svc.UpdateNote(r.Context(), id, req.Text)
	if err != nil {
		writeError(w, r, "update note", err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// DeleteNote handles DELETE /api/notes/{id}.
//
//	@Summary		Delete a note
//	@Tags			notes
//	@Produce		json
//	@Param			id	path		int	true	"Note id"
//	@Success		200	{object}	OKResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [delete]
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteNote(r.Context(), id); err != nil {
		writeError(w, r, "delete note", err)
		return
	}
	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}
