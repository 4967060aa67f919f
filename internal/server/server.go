package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"maps-assistant-backend/internal/chat"
	"maps-assistant-backend/internal/config"
	"maps-assistant-backend/internal/intent"
	"maps-assistant-backend/internal/llm"
	"maps-assistant-backend/internal/maps"
	"maps-assistant-backend/internal/tools"
	"maps-assistant-backend/internal/types"
)

// TurnHandler answers one chat turn.
type TurnHandler interface {
	HandleTurn(ctx context.Context, req types.ChatRequest) types.ChatResponse
}

// MapsAPI is the provider surface exposed by the passthrough endpoints.
type MapsAPI interface {
	TextSearch(ctx context.Context, query, location string, radius int) (*maps.TextSearchResponse, error)
	PlaceDetails(ctx context.Context, placeID string) (map[string]any, error)
	Directions(ctx context.Context, origin, destination, mode string) (map[string]any, error)
}

// Deps are the collaborators the HTTP layer routes to.
type Deps struct {
	Chat TurnHandler
	Maps MapsAPI
	URLs maps.URLBuilder
}

// Wire builds the production collaborators from configuration.
func Wire(cfg config.Config, log zerolog.Logger) (Deps, error) {
	prompt, err := llm.LoadPrompt(cfg.PromptFile)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to load assistant prompt: %w", err)
	}
	gateway := llm.NewGateway(llm.Options{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
		Prompt:  prompt,
	}, log)
	mc := maps.NewClient(cfg.MapsAPIKey, cfg.MapsBaseURL, cfg.MapsTimeout)
	urls := maps.NewURLBuilder(cfg.MapsAPIKey)
	invoker := chat.NewInvoker(mc, urls, cfg.MapsTimeout, log)
	orch := chat.NewOrchestrator(gateway, gateway.SystemPrompt(), intent.NewExtractor(cfg.DefaultRadius), invoker, log)
	return Deps{Chat: orch, Maps: mc, URLs: urls}, nil
}

type Server struct {
	router   *chi.Mux
	cfg      config.Config
	log      zerolog.Logger
	deps     Deps
	validate *validator.Validate
}

func NewServer(cfg config.Config, log zerolog.Logger, deps Deps) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow()).Middleware)

	s := &Server{
		router:   r,
		cfg:      cfg,
		log:      log,
		deps:     deps,
		validate: newValidator(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	search := NewRateLimiter(10, 10*time.Second)
	place := NewRateLimiter(30, time.Minute)
	directions := NewRateLimiter(30, time.Minute)

	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Get("/openwebui-tools.json", s.handleToolsManifest)
	s.router.Get("/openwebui-actions.json", s.handleActionsManifest)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/chat", s.handleChat)
		r.With(search.Middleware).Post("/search", s.handleSearch)
		r.With(place.Middleware).Post("/place", s.handlePlaceDetails)
		r.With(directions.Middleware).Post("/directions", s.handleDirections)
		r.Get("/embed/place/{placeID}", s.handleEmbedPlace)
		r.Get("/embed/directions", s.handleEmbedDirections)
	})
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	resp := s.deps.Chat.HandleTurn(r.Context(), req)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req types.SearchRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	resp, err := s.deps.Maps.TextSearch(r.Context(), req.Query, req.Location, req.Radius)
	if err != nil {
		s.upstreamError(w, r, "place search failed", err)
		return
	}
	writeJSON(w, http.StatusOK, types.RawResponse{Raw: resp.Raw})
}

func (s *Server) handlePlaceDetails(w http.ResponseWriter, r *http.Request) {
	var req types.PlaceDetailsRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	raw, err := s.deps.Maps.PlaceDetails(r.Context(), req.PlaceID)
	if err != nil {
		s.upstreamError(w, r, "place details failed", err)
		return
	}
	writeJSON(w, http.StatusOK, types.RawResponse{Raw: raw})
}

func (s *Server) handleDirections(w http.ResponseWriter, r *http.Request) {
	var req types.DirectionsRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	raw, err := s.deps.Maps.Directions(r.Context(), req.Origin, req.Destination, req.Mode)
	if err != nil {
		s.upstreamError(w, r, "directions failed", err)
		return
	}
	writeJSON(w, http.StatusOK, types.RawResponse{Raw: raw})
}

func (s *Server) handleEmbedPlace(w http.ResponseWriter, r *http.Request) {
	placeID := chi.URLParam(r, "placeID")
	if strings.TrimSpace(placeID) == "" {
		writeError(w, http.StatusBadRequest, "place_id is required")
		return
	}
	writeJSON(w, http.StatusOK, types.EmbedResponse{
		EmbedURL:    s.deps.URLs.EmbedPlace(placeID),
		ExternalURL: s.deps.URLs.ExternalPlace(placeID),
	})
}

func (s *Server) handleEmbedDirections(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	origin, destination, mode := q.Get("origin"), q.Get("destination"), q.Get("mode")
	if origin == "" || destination == "" {
		writeError(w, http.StatusBadRequest, "origin and destination are required")
		return
	}
	writeJSON(w, http.StatusOK, types.EmbedResponse{
		EmbedURL:    s.deps.URLs.EmbedDirections(origin, destination, mode),
		ExternalURL: s.deps.URLs.ExternalDirections(origin, destination, mode),
	})
}

func (s *Server) handleToolsManifest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": tools.Functions()})
}

func (s *Server) handleActionsManifest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"actions": tools.Actions(baseURL(r))})
}

// ---- Helpers ----

func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func (s *Server) upstreamError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.log.Warn().Err(err).Str("path", r.URL.Path).Str("request_id", middleware.GetReqID(r.Context())).Msg(msg)
	writeError(w, http.StatusBadGateway, msg)
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p != "" {
		scheme = p
	}
	return scheme + "://" + r.Host
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, types.ErrorResponse{Error: msg})
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("http request")
		})
	}
}
