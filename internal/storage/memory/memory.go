package memory

import (
	"maps"
	"sync"

	"github.com/MikhailRaia/mini-shortener/internal/storage"
)

// Storage implements an in-memory storage.Registry. It lives as long as the
// process and is discarded on shutdown.
type Storage struct {
	urlMap map[string]string
	mutex  sync.RWMutex
}

// NewStorage creates an empty in-memory storage instance.
func NewStorage() *Storage {
	return &Storage{
		urlMap: make(map[string]string),
	}
}

// Save stores originalURL under code unless the code is already taken.
func (s *Storage) Save(code, originalURL string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.urlMap[code]; exists {
		return storage.ErrCodeExists
	}

	s.urlMap[code] = originalURL
	return nil
}

// Get retrieves the original URL for a given short code.
func (s *Storage) Get(code string) (string, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	originalURL, found := s.urlMap[code]
	return originalURL, found
}

// Snapshot returns a point-in-time copy of all mappings.
func (s *Storage) Snapshot() map[string]string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	snapshot := make(map[string]string, len(s.urlMap))
	maps.Copy(snapshot, s.urlMap)
	return snapshot
}

// Len returns the number of stored mappings.
func (s *Storage) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.urlMap)
}
