package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vitaminx-2025/vitaminx-website/internal/service"
)

// DefaultBodyLimit caps request bodies when Options.BodyLimit is zero.
const DefaultBodyLimit = 1 << 20

// Options configures the API router.
type Options struct {
	// AuthEnabled turns on Bearer token checks for every API route.
	AuthEnabled bool
	Token       string
	// Events, if non-nil, is mounted at GET /events inside the auth group.
	Events http.Handler
	// BodyLimit is the maximum accepted request body in bytes.
	BodyLimit int64
	// RateLimit and RateBurst configure the request limiter; zero RateLimit disables it.
	RateLimit float64
	RateBurst int
}

// NewRouter creates a chi router with all API routes. It is meant to be
// mounted under /api.
func NewRouter(svc *service.Service, opts Options) chi.Router {
	limit := opts.BodyLimit
	if limit <= 0 {
		limit = DefaultBodyLimit
	}
	h := NewHandler(svc, limit)

	r := chi.NewRouter()
	if opts.RateLimit > 0 {
		r.Use(RateLimitMiddleware(opts.RateLimit, opts.RateBurst))
	}
	r.Use(AuthMiddleware(opts.AuthEnabled, opts.Token))

	r.Get("/ping", h.Ping)

	// Notes CRUD. The export route is registered before {id} so it is not
	// captured as an id.
	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Get("/notes/export", h.ExportNotes)
	r.Put("/notes/{id}", h.UpdateNote)
	r.Delete("/notes/{id}", h.DeleteNote)

	// Graph.
	r.Get("/nodes", h.ListNodes)
	r.Post("/nodes", h.CreateNode)
	r.Delete("/nodes/{id}", h.DeleteNode)
	r.Get("/edges", h.ListEdges)
	r.Post("/edges", h.CreateEdge)
	r.Delete("/edges/{id}", h.DeleteEdge)

	r.Post("/ai/mock", h.AIMock)

	if opts.Events != nil {
		r.Get("/events", opts.Events.ServeHTTP)
	}

	return r
}
