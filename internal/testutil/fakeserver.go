package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"taskdeck/internal/service"
)

// FakeServer serves the remote task REST API over HTTP, backed by a
// FakeService. URL is the base address a rest.Client should use.
type FakeServer struct {
	*httptest.Server
	Service *FakeService
	URL     string

	mu         sync.Mutex
	requestIDs []string
}

// NewFakeServer starts a FakeServer. It is closed when the test ends.
func NewFakeServer(t *testing.T) *FakeServer {
	t.Helper()

	fs := &FakeServer{Service: NewFakeService()}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			fs.mu.Lock()
			fs.requestIDs = append(fs.requestIDs, req.Header.Get("X-Request-ID"))
			fs.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", fs.list)
		r.Post("/", fs.create)
		r.Put("/{id}", fs.update)
		r.Delete("/{id}", fs.delete)
	})

	fs.Server = httptest.NewServer(r)
	fs.URL = fs.Server.URL + "/api"
	t.Cleanup(fs.Server.Close)
	return fs
}

// RequestIDs returns the X-Request-ID header of every request served so far.
func (fs *FakeServer) RequestIDs() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]string(nil), fs.requestIDs...)
}

func (fs *FakeServer) list(w http.ResponseWriter, r *http.Request) {
	tasks, err := fs.Service.ListTasks(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (fs *FakeServer) create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	task, err := fs.Service.CreateTask(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

func (fs *FakeServer) update(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	task, err := fs.Service.UpdateTask(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (fs *FakeServer) delete(w http.ResponseWriter, r *http.Request) {
	if err := fs.Service.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch service.KindOf(err) {
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindValidation:
		status = http.StatusBadRequest
	}
	respondJSON(w, status, map[string]string{"error": service.MessageOf(err)})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
