package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/storypath/pkg/analysis"
	"github.com/aretw0/storypath/pkg/domain"
	"github.com/aretw0/storypath/pkg/ports"
	"github.com/aretw0/storypath/pkg/sanitizer"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Engine defines the search surface the HTTP API exposes.
type Engine interface {
	Story() *domain.Story
	FindOptimalPath(ctx context.Context, preferredEnding string) (*domain.SearchResult, error)
	FindOptimalPathToEnding(ctx context.Context, targetID string) (*domain.SearchResult, error)
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	Engine  Engine
	Reports ports.ReportStore
	Metrics http.Handler
	TopN    int
	Logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithReportStore exposes saved reports under /reports and lets
// searches persist theirs.
func WithReportStore(store ports.ReportStore) Option {
	return func(s *Server) { s.Reports = store }
}

// WithMetrics mounts a metrics handler on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.Metrics = h }
}

// WithTopN sets how many ranked paths search responses include.
func WithTopN(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.TopN = n
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.Logger = l
		}
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine: engine,
		TopN:   analysis.DefaultTopN,
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.Health)
	r.Get("/story", s.GetStory)
	r.Get("/story/nodes/{id}", s.GetNode)
	r.Post("/search", s.Search)
	r.Post("/search/target", s.SearchTarget)
	r.Post("/paths/validate", s.ValidatePath)
	if s.Reports != nil {
		r.Get("/reports", s.ListReports)
		r.Get("/reports/{id}", s.GetReport)
	}
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// StoryResponse summarizes the loaded story.
type StoryResponse struct {
	Title      string   `json:"title"`
	Start      string   `json:"start"`
	Nodes      int      `json:"nodes"`
	Markers    int      `json:"markers"`
	Endings    []string `json:"endings"`
	Categories []string `json:"categories"`
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Ending string `json:"ending"`
	Save   bool   `json:"save,omitempty"`
}

// TargetRequest is the body of POST /search/target.
type TargetRequest struct {
	Target string `json:"target"`
	Save   bool   `json:"save,omitempty"`
}

// SearchResponse is the outcome of a search.
type SearchResponse struct {
	Outcome  domain.Outcome `json:"outcome"`
	Best     *domain.Path   `json:"best,omitempty"`
	Explored int            `json:"explored"`
	Complete int            `json:"complete_paths"`
	Top      []domain.Path  `json:"top"`
	ReportID string         `json:"report_id,omitempty"`
}

// ValidateRequest is the body of POST /paths/validate.
type ValidateRequest struct {
	Nodes []string `json:"nodes"`
}

// ValidateResponse reports whether a node sequence is walkable.
type ValidateResponse struct {
	Valid bool         `json:"valid"`
	Error string       `json:"error,omitempty"`
	Path  *domain.Path `json:"path,omitempty"`
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetStory handles GET /story.
func (s *Server) GetStory(w http.ResponseWriter, r *http.Request) {
	story := s.Engine.Story()
	endings := story.EndingNodes()
	ids := make([]string, len(endings))
	for i, n := range endings {
		ids[i] = n.ID
	}
	s.writeJSON(w, http.StatusOK, StoryResponse{
		Title:      story.Title(),
		Start:      story.StartID(),
		Nodes:      story.NodeCount(),
		Markers:    story.TotalMarkerCount(),
		Endings:    ids,
		Categories: story.EndingCategories(),
	})
}

// GetNode handles GET /story/nodes/{id}.
func (s *Server) GetNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	node, ok := s.Engine.Story().Node(id)
	if !ok {
		http.Error(w, "Node not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, node)
}

// Search handles POST /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var body SearchRequest
	if !s.decode(w, r, "Search", &body) {
		return
	}
	ending, ok := s.sanitize(w, "Search", body.Ending)
	if !ok {
		return
	}

	res, err := s.Engine.FindOptimalPath(r.Context(), ending)
	if err != nil {
		s.searchFailed(w, "Search", err)
		return
	}
	s.respond(w, r, res, body.Save)
}

// SearchTarget handles POST /search/target.
func (s *Server) SearchTarget(w http.ResponseWriter, r *http.Request) {
	var body TargetRequest
	if !s.decode(w, r, "SearchTarget", &body) {
		return
	}
	target, ok := s.sanitize(w, "SearchTarget", body.Target)
	if !ok {
		return
	}
	if target == "" {
		http.Error(w, "target is required", http.StatusBadRequest)
		return
	}

	res, err := s.Engine.FindOptimalPathToEnding(r.Context(), target)
	if err != nil {
		s.searchFailed(w, "SearchTarget", err)
		return
	}
	s.respond(w, r, res, body.Save)
}

// ValidatePath handles POST /paths/validate.
func (s *Server) ValidatePath(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	if !s.decode(w, r, "ValidatePath", &body) {
		return
	}
	if len(body.Nodes) == 0 {
		http.Error(w, "nodes is required", http.StatusBadRequest)
		return
	}

	path, err := s.Engine.Story().WalkPath(body.Nodes)
	if err != nil {
		s.writeJSON(w, http.StatusOK, ValidateResponse{Valid: false, Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, ValidateResponse{Valid: true, Path: &path})
}

// ListReports handles GET /reports.
func (s *Server) ListReports(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Reports.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to list reports", http.StatusInternalServerError)
		s.Logger.Error("ListReports failed", "err", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetReport handles GET /reports/{id}.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.Reports.Load(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrReportNotFound) {
		http.Error(w, "Report not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to load report", http.StatusInternalServerError)
		s.Logger.Error("GetReport failed", "err", err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, res *domain.SearchResult, save bool) {
	resp := SearchResponse{
		Outcome:  res.Outcome(),
		Explored: res.ExploredPaths(),
		Complete: len(res.Paths()),
		Top:      analysis.TopN(res, s.TopN),
	}
	if best, ok := res.Best(); ok {
		resp.Best = &best
	}

	if save && s.Reports != nil {
		report := analysis.BuildReport(s.Engine.Story(), res, s.TopN)
		if err := s.Reports.Save(r.Context(), report); err != nil {
			http.Error(w, "Failed to save report", http.StatusInternalServerError)
			s.Logger.Error("Report save failed", "err", err)
			return
		}
		resp.ReportID = report.ID
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, op string, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn(op+": Invalid request body", "err", err)
		return false
	}
	return true
}

func (s *Server) sanitize(w http.ResponseWriter, op, input string) (string, bool) {
	clean, err := sanitizer.SanitizeInput(input)
	if err != nil {
		http.Error(w, "Invalid input: "+err.Error(), http.StatusBadRequest)
		s.Logger.Warn(op+": Input rejected", "err", err, "size", len(input))
		return "", false
	}
	return clean, true
}

func (s *Server) searchFailed(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		http.Error(w, "Search cancelled", http.StatusServiceUnavailable)
		s.Logger.Warn(op+": search cancelled", "err", err)
		return
	}
	http.Error(w, "Search failed", http.StatusInternalServerError)
	s.Logger.Error(op+" failed", "err", err)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}
