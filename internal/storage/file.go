package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFile is the file name used when no path is configured.
const DefaultFile = "storage.json"

// FileStorage keeps every key in a single JSON file. The whole file is
// rewritten on each mutation.
type FileStorage struct {
	Entries map[string]string `json:"entries"`
	Version int64             `json:"version"`

	path string
	mu   sync.Mutex
}

// NewFileStorage opens (or lazily creates) the store at path.
func NewFileStorage(path string) (*FileStorage, error) {
	if path == "" {
		path = DefaultFile
	}
	fs := &FileStorage{path: path}
	if err := fs.Load(); err != nil {
		return nil, err
	}
	return fs, nil
}

// Path returns the backing file path.
func (fs *FileStorage) Path() string { return fs.path }

// Load reads the backing file. A missing file yields an empty store.
func (fs *FileStorage) Load() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	f, err := os.Open(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			fs.Entries = make(map[string]string)
			fs.Version = 0
			return nil
		}
		return fmt.Errorf("open storage: %w", err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(fs); err != nil {
		return fmt.Errorf("decode storage: %w", err)
	}
	if fs.Entries == nil {
		fs.Entries = make(map[string]string)
	}
	return nil
}

// save writes the store to a temp file and renames it into place.
// Callers hold fs.mu.
func (fs *FileStorage) save() error {
	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return fmt.Errorf("create dirs: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".storage-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := json.NewEncoder(tmp).Encode(fs); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), fs.path)
}

func (fs *FileStorage) Get(_ context.Context, key string) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	v, ok := fs.Entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

func (fs *FileStorage) Set(_ context.Context, key string, value []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	prev, had := fs.Entries[key]
	fs.Entries[key] = string(value)
	fs.Version++
	if err := fs.save(); err != nil {
		// keep memory in line with the file
		if had {
			fs.Entries[key] = prev
		} else {
			delete(fs.Entries, key)
		}
		fs.Version--
		return err
	}
	return nil
}

func (fs *FileStorage) Remove(_ context.Context, key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	prev, had := fs.Entries[key]
	if !had {
		return nil
	}
	delete(fs.Entries, key)
	fs.Version++
	if err := fs.save(); err != nil {
		fs.Entries[key] = prev
		fs.Version--
		return err
	}
	return nil
}
