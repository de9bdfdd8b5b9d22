package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/lil-gargs/portal/ports"
)

// envelopeVersion is bumped when the persisted format changes shape.
const envelopeVersion = 1

// envelope wraps the persisted state with an explicit version field so older
// records can be detected and discarded instead of misread.
type envelope struct {
	Version int                  `json:"version"`
	State   ports.PersistedState `json:"state"`
}

// FileStore is a JSON-file implementation of the Persistence interface,
// mirroring the browser's namespaced local-storage record.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a new file store at the given path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save stores the session record, replacing the file atomically
func (s *FileStore) Save(ctx context.Context, state ports.PersistedState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(envelope{Version: envelopeVersion, State: state})
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("failed to write session record: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session record: %w", err)
	}

	return nil
}

// Load returns the stored record, or nil when none exists or the record
// carries an unknown version
func (s *FileStore) Load(ctx context.Context) (*ports.PersistedState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session record: %w", err)
	}

	var e envelope
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, fmt.Errorf("failed to decode session record: %w", err)
	}
	if e.Version != envelopeVersion {
		return nil, nil
	}

	return &e.State, nil
}

// Clear removes the stored record
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session record: %w", err)
	}
	return nil
}
