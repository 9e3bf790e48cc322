// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/oops"

	"github.com/bytecraft/superticket/internal/xdg"
)

// Storage is a string key-value store.
type Storage interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)

	// Set stores value under key.
	Set(key, value string) error

	// SetAll stores every entry of values in one write. Either all entries
	// are stored or none are.
	SetAll(values map[string]string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}

// MemoryStorage keeps values in memory for the life of the process.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// Get implements Storage.
func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Storage.
func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// SetAll implements Storage.
func (m *MemoryStorage) SetAll(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	maps.Copy(m.values, values)
	return nil
}

// Delete implements Storage.
func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// FileStorage persists values as a flat JSON object in a single file. Every
// write replaces the file atomically; the file is readable only by its owner.
type FileStorage struct {
	path string
	mu   sync.Mutex
}

// NewFileStorage creates a FileStorage backed by path. The file is created on
// first write.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Path returns the backing file path.
func (f *FileStorage) Path() string {
	return f.path
}

// Get implements Storage.
func (f *FileStorage) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set implements Storage.
func (f *FileStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

// SetAll implements Storage. All entries land in the same atomic file
// replacement.
func (f *FileStorage) SetAll(values map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.read()
	if err != nil {
		return err
	}
	maps.Copy(current, values)
	return f.write(current)
}

// Delete implements Storage.
func (f *FileStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.write(values)
}

func (f *FileStorage) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, oops.Code("SESSION_STORAGE_READ").
			With("path", f.path).
			Wrap(err)
	}

	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, oops.Code("SESSION_STORAGE_CORRUPT").
			With("path", f.path).
			Wrap(err)
	}
	return values, nil
}

func (f *FileStorage) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return oops.Code("SESSION_STORAGE_WRITE").Wrap(err)
	}

	dir := filepath.Dir(f.path)
	if err := xdg.EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return oops.Code("SESSION_STORAGE_WRITE").
			With("path", f.path).
			Wrap(err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return oops.Code("SESSION_STORAGE_WRITE").
			With("path", f.path).
			Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return oops.Code("SESSION_STORAGE_WRITE").
			With("path", f.path).
			Wrap(err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		cleanup()
		return oops.Code("SESSION_STORAGE_WRITE").
			With("path", f.path).
			Wrap(err)
	}
	return nil
}
