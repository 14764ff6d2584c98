package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/things/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "/things/{id}", "418"))
	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/"+id, nil))
	}
	after := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "/things/{id}", "418"))
	if after-before != 3 {
		t.Errorf("counter delta = %v, want 3", after-before)
	}
}

func TestHandler_ExposesCollectors(t *testing.T) {
	NotesExported.Add(0)
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), "vitaminx_notes_exported_total") {
		t.Error("exported counter missing from exposition")
	}
}
