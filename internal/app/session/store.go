/*
Package session maintains the client's login state.

This file defines the Store abstraction over the handful of string slots the
client persists (the bearer token and two auxiliary identity fields), with an
in-memory implementation for ephemeral sessions and a file-backed one that
survives restarts and is shared between processes.
*/
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys. All three are written on login and cleared together on logout.
const (
	// KeyUserToken holds the opaque bearer token.
	KeyUserToken = "user_token"

	// KeyUserID holds the numeric user identifier as a string.
	KeyUserID = "user_id"

	// KeyUserType holds the numeric role code as a string.
	KeyUserType = "user_type"
)

// Store persists session string slots. An absent key reads as an empty string
// with no error; implementations must be safe for concurrent use.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryStore keeps session slots in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots[key], nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
	return nil
}

// FileStore keeps session slots in a JSON file. Every read goes back to disk,
// so writes made by another process running against the same path are
// observed. Writes go through a temp file and rename so a concurrent reader
// never sees a torn file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by the JSON file at path. The file is
// created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return "", err
	}
	return slots[key], nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		// A corrupt file is replaced rather than kept broken.
		slots = make(map[string]string)
	}
	slots[key] = value
	return s.save(slots)
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		slots = make(map[string]string)
	}
	delete(slots, key)
	return s.save(slots)
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, err
	}

	slots := make(map[string]string)
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *FileStore) save(slots map[string]string) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
