package api

import (
	"log/slog"
	"net/http"
)

// ExportFilename is the download name offered for the CSV export.
const ExportFilename = "notes_export.csv"

// Ping handles GET /api/ping.
//
//	@Summary		Liveness probe for API clients
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	PingResponse
//	@Router			/ping [get]
func (h *Handler) Ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, PingResponse{Message: "pong"})
}

// AIMock handles POST /api/ai/mock.
//
//	@Summary		Canned suggestion built from the given texts
//	@Tags			ai
//	@Accept			json
//	@Produce		json
//	@Param			body	body		AIMockRequest	true	"Input texts"
//	@Success		200		{object}	AIMockResponse
//	@Failure		400		{object}	errResponse
//	@Router			/ai/mock [post]
func (h *Handler) AIMock(w http.ResponseWriter, r *http.Request) {
	var req AIMockRequest
	if !decodeJSON(w, r, h.bodyLimit, &req) {
		return
	}
	writeJSON(w, http.StatusOK, AIMockResponse{Result: h.svc.AIMock(req.Texts)})
}

// ExportNotes handles GET /api/notes/export.
//
//	@Summary		Download every note as CSV
//	@Tags			notes
//	@Produce		text/csv
//	@Success		200
//	@Failure		500	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/export [get]
func (h *Handler) ExportNotes(w http.ResponseWriter, r *http.Request) {
	aw := &attachmentWriter{w: w}
	if err := h.svc.ExportNotes(r.Context(), aw); err != nil {
		if !aw.started {
			writeError(w, r, "export notes", err)
			return
		}
		// Headers are gone; the client sees a truncated file.
		slog.ErrorContext(r.Context(), "export notes failed mid-stream",
			slog.String("error", err.Error()))
		return
	}
	if !aw.started {
		aw.start()
	}
}

// attachmentWriter sends the CSV download headers on the first write, so a
// failure before any output can still be answered with a JSON error.
type attachmentWriter struct {
	w       http.ResponseWriter
	started bool
}

func (a *attachmentWriter) start() {
	a.started = true
	h := a.w.Header()
	h.Set("Content-Type", "text/csv; charset=utf-8")
	h.Set("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	a.w.WriteHeader(http.StatusOK)
}

func (a *attachmentWriter) Write(p []byte) (int, error) {
	if !a.started {
		a.start()
	}
	return a.w.Write(p)
}
