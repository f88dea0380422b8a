package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikhailRaia/mini-shortener/internal/logger"
	"github.com/MikhailRaia/mini-shortener/internal/middleware"
	"github.com/MikhailRaia/mini-shortener/internal/model"
	"github.com/MikhailRaia/mini-shortener/internal/pool"
	"github.com/MikhailRaia/mini-shortener/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// responseBuffers bounds how many idle JSON encoding buffers are kept.
const responseBuffers = 64

type URLService interface {
	Identify() string
	ShortenURL(ctx context.Context, originalURL, requestBaseURL string) (model.ShortURL, error)
	Resolve(ctx context.Context, code string) (string, error)
	ListAll(ctx context.Context) map[string]string
}

type Handler struct {
	urlService URLService
	buffers    *pool.Pool[*bytes.Buffer]
}

func NewHandler(urlService URLService) *Handler {
	return &Handler{
		urlService: urlService,
		buffers: pool.New(responseBuffers, func() *bytes.Buffer {
			return new(bytes.Buffer)
		}),
	}
}

func (h *Handler) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Use(logger.RequestLogger)
	r.Use(middleware.Metrics)

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.GzipReader)
		r.Use(middleware.GzipMiddleware)

		r.Get("/name", h.handleName)
		r.Post("/shorten", h.HandleShortenJSON)
		r.Get("/r/{code}", h.handleRedirect)
		r.Get("/urls", h.handleListURLs)
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *Handler) handleName(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(h.urlService.Identify()))
}

func (h *Handler) handleRedirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	originalURL, err := h.urlService.Resolve(r.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		log.Error().Err(err).Str("code", code).Msg("Failed to resolve short code")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Set directly: http.Redirect would rewrite relative targets.
	w.Header().Set("Location", originalURL)
	w.WriteHeader(http.StatusFound)
}

func (h *Handler) handleListURLs(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.urlService.ListAll(r.Context()))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	buf := h.buffers.Get()
	defer h.buffers.Put(buf)

	if err := json.NewEncoder(buf).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, model.ErrorResponse{Error: message})
}
