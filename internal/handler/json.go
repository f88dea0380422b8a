package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/MikhailRaia/mini-shortener/internal/model"
	"github.com/MikhailRaia/mini-shortener/internal/service"
	"github.com/rs/zerolog/log"
)

// maxShortenBodySize caps the shorten request body.
const maxShortenBodySize = 1 << 20

func (h *Handler) HandleShortenJSON(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	contentEncoding := r.Header.Get("Content-Encoding")

	if contentType != "" && contentEncoding != "gzip" && !strings.Contains(contentType, "application/json") {
		h.writeError(w, http.StatusUnsupportedMediaType, "content type must be application/json")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxShortenBodySize))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	defer r.Body.Close()

	var request model.ShortenRequest
	if err := json.Unmarshal(body, &request); err != nil {
		h.writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	result, err := h.urlService.ShortenURL(r.Context(), request.URL, RequestBaseURL(r))
	if err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			h.writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		log.Error().Err(err).Msg("Failed to shorten URL")
		h.writeError(w, http.StatusInternalServerError, "failed to shorten url")
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}
