// Package session owns the authentication token lifecycle: durable storage,
// concurrent-safe access for outbound requests, and the forced logout that a
// 401 response triggers anywhere in the client.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store is the durable credential store: a key-value persistence for a single
// token. Implementations must tolerate a missing value (Get returns "" with
// no error).
type Store interface {
	Get() (string, error)
	Set(token string) error
	Remove() error
}

// FileStore persists the token as a small JSON file with user-only
// permissions, written atomically via a temp file and rename.
type FileStore struct {
	path string
}

// NewFileStore creates a store at path, creating parent directories as
// needed.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create credential directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

type credentialFile struct {
	AccessToken string `json:"access_token"`
}

// Get returns the stored token, or "" when none has been saved yet.
func (s *FileStore) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("cannot read credential file: %w", err)
	}
	var cf credentialFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return "", fmt.Errorf("cannot decode credential file: %w", err)
	}
	return cf.AccessToken, nil
}

// Set writes the token to disk.
func (s *FileStore) Set(token string) error {
	data, err := json.Marshal(credentialFile{AccessToken: token})
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("cannot write credential file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("cannot replace credential file: %w", err)
	}
	return nil
}

// Remove deletes the stored token. Removing an absent token is not an error.
func (s *FileStore) Remove() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
