// Package server is the HTTP + WebSocket API surface consumed by the browser
// extension.
package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/avel9n/privacylens/docs/swagger" // generated swagger spec

	"github.com/avel9n/privacylens/internal/app"
	"github.com/avel9n/privacylens/internal/logging"
	"github.com/avel9n/privacylens/internal/model"
	"github.com/avel9n/privacylens/internal/registry"

	_ "modernc.org/sqlite" // SQLite driver
)

// Server is the HTTP + WebSocket API surface for PrivacyLens.
type Server struct {
	cfg          Config
	orchestrator *app.Orchestrator
	router       chi.Router
	upgrader     websocket.Upgrader
	logger       logging.Logger
	registryDB   *sql.DB
}

// NewServer creates a Server with its own Orchestrator and registry database.
func NewServer(cfg Config) (*Server, error) {
	if cfg.AppConfig == nil {
		cfg.AppConfig = app.DefaultConfig()
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = cfg.AppConfig.ListenAddr
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("Server")
	}

	storageRoot, err := expandPath(cfg.AppConfig.StorageRoot)
	if err != nil {
		return nil, fmt.Errorf("expanding storage root path: %w", err)
	}
	cfg.AppConfig.StorageRoot = storageRoot
	if err := os.MkdirAll(storageRoot, 0755); err != nil {
		logger.Warn("creating storage root directory",
			logging.Field{Key: "path", Value: storageRoot},
			logging.Field{Key: "error", Value: err.Error()})
	}

	db, err := sql.Open("sqlite", filepath.Join(storageRoot, "registry.db"))
	if err != nil {
		return nil, fmt.Errorf("opening registry database: %w", err)
	}

	reg, err := registry.NewRegistry(db, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating registry: %w", err)
	}

	orch, err := app.NewOrchestrator(cfg.AppConfig, reg, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating orchestrator: %w", err)
	}

	s := &Server{
		cfg:          cfg,
		orchestrator: orch,
		router:       chi.NewRouter(),
		logger:       logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := cfg.AppConfig.AllowedOrigin
				return origin == "" || origin == "*" || r.Header.Get("Origin") == origin
			},
		},
		registryDB: db,
	}

	s.routes()
	return s, nil
}

// Orchestrator returns the underlying orchestrator for advanced use (tests, etc.).
func (s *Server) Orchestrator() *app.Orchestrator {
	return s.orchestrator
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/analyze", s.optionsHandler("POST"))
	r.Options("/domains/score", s.optionsHandler("POST"))
	r.Options("/analyses", s.optionsHandler("GET"))
	r.Options("/analyses/compare", s.optionsHandler("GET"))
	r.Options("/analyses/{id}", s.optionsHandler("GET"))
	r.Options("/trackers", s.optionsHandler("GET"))
	r.Options("/ws/analyze", s.optionsHandler("GET"))

	// Analysis, gated on the extension client header
	r.Group(func(r chi.Router) {
		r.Use(s.extensionClientMiddleware)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/domains/score", s.handleScoreDomains)
		r.Get("/ws/analyze", s.handleAnalyzeWS)
	})

	// History
	r.Get("/analyses", s.handleListAnalyses)
	r.Get("/analyses/compare", s.handleCompareAnalyses)
	r.Get("/analyses/{id}", s.handleGetAnalysis)

	// Metadata
	r.Get("/trackers", s.handleListTrackers)
	r.Get("/health", s.handleHealth)
	r.Get("/swagger/*", httpSwagger.Handler())
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := s.cfg.AppConfig.AllowedOrigin
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Extension-Client")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

// extensionClientMiddleware rejects analysis requests that do not carry the
// configured X-Extension-Client header. An empty configured value disables
// the check.
func (s *Server) extensionClientMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		want := s.cfg.AppConfig.ExtensionHeader
		if want != "" && r.Header.Get("X-Extension-Client") != want {
			s.logger.Warn("rejecting request without extension client header",
				logging.Field{Key: "path", Value: r.URL.Path})
			writeError(w, http.StatusUnauthorized, "missing or invalid X-Extension-Client header")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}
	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// Close releases the registry database.
func (s *Server) Close() {
	if s.registryDB != nil {
		s.registryDB.Close()
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// --- HTTP handlers ---

// handleAnalyze runs the full pipeline over one page observation.
//
// @Summary Analyze a page observation
// @Accept json
// @Produce json
// @Param request body model.AnalyzeRequest true "Page observation"
// @Success 200 {object} model.AnalysisReport
// @Failure 400 {object} ErrorResponse
// @Router /analyze [post]
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body model.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if body.PageURL == "" && body.PageDomain == "" {
		writeError(w, http.StatusBadRequest, "page_url or page_domain is required")
		return
	}

	rep, err := s.orchestrator.AnalyzePage(r.Context(), &body)
	if err != nil {
		s.logger.Warn("analyzing page", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("analyzed page",
		logging.Field{Key: "id", Value: rep.ID},
		logging.Field{Key: "page_domain", Value: rep.PageDomain},
		logging.Field{Key: "score", Value: rep.Score})
	writeJSON(w, http.StatusOK, rep)
}

// handleScoreDomains scores a raw domain count list with the risk model.
//
// @Summary Score observed domains
// @Accept json
// @Produce json
// @Param request body ScoreDomainsRequest true "Domain counts"
// @Success 200 {object} model.RiskSummary
// @Failure 400 {object} ErrorResponse
// @Router /domains/score [post]
func (s *Server) handleScoreDomains(w http.ResponseWriter, r *http.Request) {
	var body ScoreDomainsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(body.Domains) == 0 {
		writeError(w, http.StatusBadRequest, "domains is required")
		return
	}

	summary := s.orchestrator.ScoreDomains(body.Domains)
	s.logger.Info("scored domains", logging.Field{Key: "count", Value: len(body.Domains)})
	writeJSON(w, http.StatusOK, summary)
}

// handleListAnalyses lists stored analyses, newest first.
//
// @Summary List stored analyses
// @Produce json
// @Param domain query string false "Filter by page domain"
// @Param limit query int false "Maximum rows"
// @Success 200 {array} model.AnalysisReport
// @Router /analyses [get]
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	domain := r.URL.Query().Get("domain")

	limit := 0
	if ls := r.URL.Query().Get("limit"); ls != "" {
		if v, err := strconv.Atoi(ls); err == nil && v > 0 {
			limit = v
		}
	}

	reports, err := s.orchestrator.ListAnalyses(r.Context(), domain, limit)
	if err != nil {
		s.logger.Warn("listing analyses", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if reports == nil {
		reports = []*model.AnalysisReport{}
	}
	s.logger.Info("listed analyses", logging.Field{Key: "count", Value: len(reports)})
	writeJSON(w, http.StatusOK, reports)
}

// handleGetAnalysis loads one stored analysis by id.
//
// @Summary Get a stored analysis
// @Produce json
// @Param id path string true "Analysis id"
// @Success 200 {object} model.AnalysisReport
// @Failure 404 {object} ErrorResponse
// @Router /analyses/{id} [get]
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rep, err := s.orchestrator.GetAnalysis(r.Context(), id)
	if err != nil {
		if errors.Is(err, registry.ErrAnalysisNotFound) {
			writeError(w, http.StatusNotFound, "analysis not found")
			return
		}
		s.logger.Warn("getting analysis", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// handleCompareAnalyses diffs two stored analyses of the same page.
//
// @Summary Compare two analyses
// @Produce json
// @Param base query string true "Base analysis id"
// @Param head query string true "Head analysis id"
// @Success 200 {object} report.Diff
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /analyses/compare [get]
func (s *Server) handleCompareAnalyses(w http.ResponseWriter, r *http.Request) {
	baseID := r.URL.Query().Get("base")
	headID := r.URL.Query().Get("head")
	if baseID == "" || headID == "" {
		writeError(w, http.StatusBadRequest, "base and head query parameters are required")
		return
	}

	diff, err := s.orchestrator.CompareAnalyses(r.Context(), baseID, headID)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrAnalysisNotFound):
			writeError(w, http.StatusNotFound, "analysis not found")
		case errors.Is(err, app.ErrDifferentPages):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Warn("comparing analyses", logging.Field{Key: "error", Value: err.Error()})
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	s.logger.Info("compared analyses",
		logging.Field{Key: "base", Value: baseID},
		logging.Field{Key: "head", Value: headID})
	writeJSON(w, http.StatusOK, diff)
}

// handleListTrackers lists the loaded tracker domains.
//
// @Summary List known tracker domains
// @Produce json
// @Success 200 {object} TrackersResponse
// @Router /trackers [get]
func (s *Server) handleListTrackers(w http.ResponseWriter, r *http.Request) {
	domains := s.orchestrator.Trackers()
	writeJSON(w, http.StatusOK, TrackersResponse{Count: len(domains), Domains: domains})
}

// handleHealth reports liveness and model provenance.
//
// @Summary Health check
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:       "ok",
		ModelType:    s.orchestrator.ModelType(),
		KnownDomains: s.orchestrator.KnownDomains(),
		Trackers:     len(s.orchestrator.Trackers()),
	})
}

// --- WebSocket ---

// handleAnalyzeWS streams per-observation verdicts for a live page session.
// The extension sends one JSON observation per message (kind request, script
// or cookie) and a final message with kind "finish" to close out the session
// and receive the full report.
func (s *Server) handleAnalyzeWS(w http.ResponseWriter, r *http.Request) {
	pageURL := r.URL.Query().Get("page_url")
	if pageURL == "" {
		writeError(w, http.StatusBadRequest, "page_url query parameter is required")
		return
	}
	pageTitle := r.URL.Query().Get("title")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	sess := s.orchestrator.NewSession(pageURL, pageTitle)
	s.logger.Info("analysis session started", logging.Field{Key: "page_url", Value: pageURL})

	for {
		var msg app.Observation
		if err := conn.ReadJSON(&msg); err != nil {
			// Client went away without finishing; drop the session.
			return
		}

		if msg.Kind == "finish" {
			rep, err := sess.Finish(r.Context())
			if err != nil {
				_ = conn.WriteJSON(ErrorResponse{Error: err.Error()})
				return
			}
			_ = conn.WriteJSON(rep)
			s.logger.Info("analysis session finished",
				logging.Field{Key: "id", Value: rep.ID},
				logging.Field{Key: "score", Value: rep.Score})
			return
		}

		verdict, err := sess.Observe(msg)
		if err != nil {
			_ = conn.WriteJSON(ErrorResponse{Error: err.Error()})
			continue
		}
		if err := conn.WriteJSON(verdict); err != nil {
			return
		}
	}
}

func expandPath(p string) (string, error) {
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, p[1:]), nil
	}
	return p, nil
}
