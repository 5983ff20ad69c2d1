// Package mockd is an in-memory stand-in for the profile service, used for
// local development and demos. It implements exactly the contract the
// client expects: GET /users/{id} and PATCH /users/{id} with a JSON body of
// editable fields, returning the full authoritative profile on success.
package mockd

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/facetdev/facet/internal/api"
)

// Server holds the seeded profiles and serves the HTTP API.
type Server struct {
	mu       sync.RWMutex
	profiles map[string]api.Profile
	logger   *slog.Logger
	now      func() time.Time
}

// New builds a Server seeded with n generated profiles plus a handful of
// well-known ids (u1, u2, admin) so demos have stable targets.
func New(n int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		profiles: make(map[string]api.Profile),
		logger:   logger,
		now:      time.Now,
	}

	s.put(s.generate("u1", api.RoleUser))
	s.put(s.generate("u2", api.RoleUser))
	s.put(s.generate("admin", api.RoleAdmin))
	for i := 0; i < n; i++ {
		s.put(s.generate(uuid.NewString(), randomRole()))
	}
	return s
}

// IDs returns every seeded profile id, for listing at startup.
func (s *Server) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	return ids
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/users/{id}", s.handleGet)
	r.Patch("/users/{id}", s.handlePatch)
	return r
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.RLock()
	profile, ok := s.profiles[id]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "no such user")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handlePatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch api.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "malformed patch body")
		return
	}
	if err := validatePatch(patch); err != "" {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[id]
	if !ok {
		writeError(w, http.StatusNotFound, "no such user")
		return
	}
	// Admin profiles are read-only through this API, which gives the
	// client a reproducible Forbidden path.
	if profile.Role == api.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin profiles are read-only")
		return
	}

	if patch.FirstName != nil {
		profile.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		profile.LastName = *patch.LastName
	}
	if patch.Bio != nil {
		profile.Bio = *patch.Bio
	}
	if patch.Avatar != nil {
		profile.Avatar = *patch.Avatar
	}
	profile.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	s.profiles[id] = profile

	writeJSON(w, http.StatusOK, profile)
}

func validatePatch(p api.Patch) string {
	if p.FirstName != nil && strings.TrimSpace(*p.FirstName) == "" {
		return "firstName must not be blank"
	}
	if p.LastName != nil && strings.TrimSpace(*p.LastName) == "" {
		return "lastName must not be blank"
	}
	if p.Bio != nil && len(*p.Bio) > 280 {
		return "bio too long"
	}
	return ""
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"requestID", r.Header.Get("X-Request-ID"),
			"took", time.Since(start).Round(time.Microsecond),
		)
	})
}

func (s *Server) put(p api.Profile) {
	s.mu.Lock()
	s.profiles[p.ID] = p
	s.mu.Unlock()
}

func (s *Server) generate(id string, role api.Role) api.Profile {
	created := gofakeit.DateRange(
		time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	).UTC()
	return api.Profile{
		ID:        id,
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Email:     gofakeit.Email(),
		Bio:       gofakeit.Sentence(8),
		Avatar:    gofakeit.ImageURL(128, 128),
		Role:      role,
		CreatedAt: created.Format(time.RFC3339),
		UpdatedAt: created.Format(time.RFC3339),
	}
}

func randomRole() api.Role {
	if gofakeit.Bool() {
		return api.RoleUser
	}
	return api.RoleGuest
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
