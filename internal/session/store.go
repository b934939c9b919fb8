// ABOUTME: Key-value persistence for the client session
// ABOUTME: File-backed store under the XDG config dir plus an in-memory store

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// AppName is the configuration directory name.
const AppName = "projecthub"

// SessionFile is the persisted session filename.
const SessionFile = "session.json"

// Store persists string keys. Writes replace the whole map so that related
// keys always land together.
type Store interface {
	Load() (map[string]string, error)
	Save(map[string]string) error
}

// DefaultConfigDir returns the default config directory following the XDG base directory layout
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// FileStore keeps the session as a JSON object in dir/session.json
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the session file location
func (fs *FileStore) Path() string {
	return filepath.Join(fs.dir, SessionFile)
}

// Load reads the stored keys. A missing or corrupt file is an empty store.
func (fs *FileStore) Load() (map[string]string, error) {
	data, err := os.ReadFile(fs.Path())
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return map[string]string{}, nil
	}
	return values, nil
}

// Save writes all keys atomically (temp file + rename). An empty map removes the file.
func (fs *FileStore) Save(values map[string]string) error {
	if len(values) == 0 {
		if err := os.Remove(fs.Path()); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	if err := os.MkdirAll(fs.dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(fs.dir, ".session-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, fs.Path()); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// MemoryStore keeps keys in process memory
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

// Load returns a copy of the stored keys
func (ms *MemoryStore) Load() (map[string]string, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	out := make(map[string]string, len(ms.values))
	for k, v := range ms.values {
		out[k] = v
	}
	return out, nil
}

// Save replaces the stored keys
func (ms *MemoryStore) Save(values map[string]string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.values = make(map[string]string, len(values))
	for k, v := range values {
		ms.values[k] = v
	}
	return nil
}
