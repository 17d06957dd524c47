// Package state persists small per-directory values between jsonview runs,
// such as the last file viewed and the last search query.
package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Keys written by the view command.
const (
	KeyLastFile  = "last_file"
	KeyLastQuery = "last_query"
)

// State is the decoded state file.
type State map[string]interface{}

// Store reads and writes .jsonview/state.yml under a directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Default returns the store for the working directory.
func Default() (*Store, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get current directory: %w", err)
	}
	return NewStore(cwd), nil
}

// Path is the state file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, ".jsonview", "state.yml")
}

// Load reads the state file. A missing file is an empty state.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return make(State), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	if st == nil {
		st = make(State)
	}
	return st, nil
}

// Save writes st, creating .jsonview if needed.
func (s *Store) Save(st State) error {
	if err := os.MkdirAll(filepath.Dir(s.Path()), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(s.Path(), data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (interface{}, bool, error) {
	st, err := s.Load()
	if err != nil {
		return nil, false, err
	}
	val, ok := st[key]
	return val, ok, nil
}

// GetString returns key as a string; scalars are converted, anything else
// yields "".
func (s *Store) GetString(key string) (string, error) {
	val, ok, err := s.Get(key)
	if err != nil || !ok {
		return "", err
	}
	str, err := cast.ToStringE(val)
	if err != nil {
		return "", nil
	}
	return str, nil
}

// Set stores value under key.
func (s *Store) Set(key string, value interface{}) error {
	st, err := s.Load()
	if err != nil {
		return err
	}
	st[key] = value
	return s.Save(st)
}

// Update applies several values in one write. Empty strings delete their key.
func (s *Store) Update(values map[string]string) error {
	st, err := s.Load()
	if err != nil {
		return err
	}
	for k, v := range values {
		if v == "" {
			delete(st, k)
			continue
		}
		st[k] = v
	}
	return s.Save(st)
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	st, err := s.Load()
	if err != nil {
		return err
	}
	delete(st, key)
	return s.Save(st)
}
