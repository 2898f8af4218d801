package token

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Store holds the current access token.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Visibility: a Set or Clear is visible to all subsequent Get calls;
//   there is no caching lag between the store and the request pipeline.
// - Semantics: an empty string from Get means "unauthenticated".
type Store interface {
	// Get returns the current token, or "" when no session exists.
	Get() string

	// Set replaces the current token. Last write wins.
	Set(tok string)

	// Clear removes the current token.
	Clear()
}

// MemoryStore is an in-process token store.
type MemoryStore struct {
	mu  sync.RWMutex
	tok string
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the current token.
func (s *MemoryStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tok
}

// Set replaces the current token.
func (s *MemoryStore) Set(tok string) {
	s.mu.Lock()
	s.tok = tok
	s.mu.Unlock()
}

// Clear removes the current token.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.tok = ""
	s.mu.Unlock()
}

// FileStore persists the token across process restarts. The file is
// read synchronously at construction, before the first outbound
// request can observe the store.
type FileStore struct {
	mu   sync.RWMutex
	path string
	tok  string
}

// NewFileStore creates a store backed by the file at path. A missing
// file means "no session"; any other read failure is returned.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("token: failed to read token file: %w", err)
	}

	s.tok = strings.TrimSpace(string(data))
	return s, nil
}

// Get returns the current token.
func (s *FileStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tok
}

// Set replaces the current token and writes it through to disk.
// The in-memory token is updated even if the write fails, so the
// current session keeps working; the persistence failure only costs
// the session on the next restart.
func (s *FileStore) Set(tok string) {
	s.mu.Lock()
	s.tok = tok
	s.mu.Unlock()

	// 0600: the token is a credential.
	os.WriteFile(s.path, []byte(tok), 0o600)
}

// Clear removes the current token and deletes the backing file.
func (s *FileStore) Clear() {
	s.mu.Lock()
	s.tok = ""
	s.mu.Unlock()

	os.Remove(s.path)
}

// Ensure both stores implement Store
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
)
