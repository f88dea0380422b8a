package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MikhailRaia/mini-shortener/internal/generator"
	"github.com/MikhailRaia/mini-shortener/internal/metrics"
	"github.com/MikhailRaia/mini-shortener/internal/model"
	"github.com/MikhailRaia/mini-shortener/internal/storage"
	"github.com/rs/zerolog/log"
)

const (
	// Name is returned by the identify endpoint.
	Name = "URL Shortener"

	// RedirectPath is the path prefix short URLs are served under.
	RedirectPath = "/api/r/"

	// MaxGenerateAttempts bounds how many codes are drawn for one URL before giving up.
	MaxGenerateAttempts = 10
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrNotFound           = errors.New("short code not found")
	ErrCodeSpaceExhausted = errors.New("no free short code found")
)

// URLService provides business logic for creating and resolving short URLs.
type URLService struct {
	storage  storage.Registry
	baseURL  string
	generate func(length int) (string, error)
}

// NewURLService constructs a URLService. A blank baseURL means short URLs
// are built from the base URL of each inbound request.
func NewURLService(storage storage.Registry, baseURL string) *URLService {
	return &URLService{
		storage:  storage,
		baseURL:  baseURL,
		generate: generator.GenerateCode,
	}
}

// Identify returns the service name.
func (s *URLService) Identify() string {
	log.Info().Msg("Backend is working")
	return Name
}

// ShortenURL stores originalURL under a fresh code. requestBaseURL is used
// only when no base URL was configured.
func (s *URLService) ShortenURL(ctx context.Context, originalURL, requestBaseURL string) (model.ShortURL, error) {
	if strings.TrimSpace(originalURL) == "" {
		return model.ShortURL{}, fmt.Errorf("%w: url is required", ErrInvalidArgument)
	}

	code, err := s.allocateCode(originalURL)
	if err != nil {
		return model.ShortURL{}, err
	}

	metrics.RegistrySize.Set(float64(s.storage.Len()))

	return model.ShortURL{
		Code:        code,
		ShortURL:    s.resolveBaseURL(requestBaseURL) + RedirectPath + code,
		OriginalURL: originalURL,
	}, nil
}

func (s *URLService) allocateCode(originalURL string) (string, error) {
	for attempt := 1; attempt <= MaxGenerateAttempts; attempt++ {
		code, err := s.generate(generator.CodeLength)
		if err != nil {
			return "", fmt.Errorf("error generating code: %w", err)
		}

		err = s.storage.Save(code, originalURL)
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, storage.ErrCodeExists) {
			return "", fmt.Errorf("error saving url: %w", err)
		}

		metrics.CodeCollisionsTotal.Inc()
		log.Warn().
			Str("code", code).
			Int("attempt", attempt).
			Msg("Short code collision, drawing again")
	}

	return "", fmt.Errorf("%w after %d attempts", ErrCodeSpaceExhausted, MaxGenerateAttempts)
}

func (s *URLService) resolveBaseURL(requestBaseURL string) string {
	if strings.TrimSpace(s.baseURL) != "" {
		return s.baseURL
	}
	return requestBaseURL
}

// Resolve returns the original URL stored under code.
func (s *URLService) Resolve(ctx context.Context, code string) (string, error) {
	originalURL, found := s.storage.Get(code)
	if !found {
		return "", ErrNotFound
	}
	return originalURL, nil
}

// ListAll returns a snapshot of every stored mapping.
func (s *URLService) ListAll(ctx context.Context) map[string]string {
	return s.storage.Snapshot()
}
