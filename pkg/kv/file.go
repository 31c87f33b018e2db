package kv

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements Store on top of a single JSON file. It is the
// local-storage analogue for desktop and CLI clients: the whole key space is
// loaded at construction and the file is rewritten after every mutation, so
// on-disk and in-memory state never diverge at the end of an operation.
//
// A corrupt or unreadable file is treated as an empty store rather than an
// error; persisted client state is a cache, not a source of truth.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
	closed bool
}

// NewFileStore opens (or lazily creates) the store backed by the given file.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, ErrEmptyKey
	}

	s := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// First run, nothing persisted yet.
	case err != nil:
		// Unreadable file is equivalent to absent data.
	default:
		if jsonErr := json.Unmarshal(data, &s.values); jsonErr != nil {
			s.values = make(map[string]string)
		}
	}

	return s, nil
}

// Get retrieves the value stored under key.
func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", ErrStoreClosed
	}

	value, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

// Set writes the value under key and flushes the file.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	s.values[key] = value
	return s.flush()
}

// Delete removes the given keys and flushes the file.
func (s *FileStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	for _, key := range keys {
		delete(s.values, key)
	}
	return s.flush()
}

// Close marks the store closed. The file already reflects the last mutation.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// flush rewrites the backing file atomically. Callers must hold the write lock.
func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return errors.Join(ErrFileWrite, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Join(ErrFileWrite, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Join(ErrFileWrite, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Join(ErrFileWrite, err)
	}
	return nil
}
