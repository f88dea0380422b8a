package storage

import "errors"

// ErrCodeExists is returned by Save when the short code is already taken.
var ErrCodeExists = errors.New("short code already exists")

// Registry maps short codes to the original URLs they were created for.
type Registry interface {
	// Save stores the mapping only if code is free. The existing mapping is
	// left intact and ErrCodeExists is returned otherwise.
	Save(code, originalURL string) error

	Get(code string) (string, bool)

	// Snapshot returns a copy of every mapping. It is never nil.
	Snapshot() map[string]string

	Len() int
}
