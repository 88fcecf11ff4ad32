package session

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned by Store.Load when no snapshot exists under
// the key.
var ErrNotFound = errors.New("session: snapshot not found")

// Store persists one serialized snapshot per storage key. Implementations
// must be safe for concurrent use.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Delete(key string) error
}

// MemoryStore keeps snapshots in process memory. The server uses one
// per client scope; everything is gone when the process exits, which is
// exactly the lifetime the wizard wants.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string][]byte)}
}

// Load returns the snapshot stored under key.
func (s *MemoryStore) Load(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.snapshots[key]
	if !ok {
		return nil, ErrNotFound
	}
	// Copy so a caller holding the slice cannot corrupt the store
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save stores data under key, replacing any previous snapshot.
func (s *MemoryStore) Save(key string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	s.mu.Lock()
	s.snapshots[key] = cp
	s.mu.Unlock()
	return nil
}

// Delete removes the snapshot under key. Deleting a missing key is not
// an error.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.snapshots, key)
	s.mu.Unlock()
	return nil
}

// FileStore persists snapshots as JSON files in a directory, one file
// per storage key. The terminal wizard uses it so an interrupted
// session can be resumed from the same machine.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a store rooted at dir. The directory is created
// on first save, not here.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load reads the snapshot file for key.
func (s *FileStore) Load(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Save writes the snapshot file for key, creating the directory if
// needed. The write goes through a temp file and rename so a crash
// never leaves a half-written snapshot.
func (s *FileStore) Save(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}

// Delete removes the snapshot file for key. A missing file is not an
// error.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
