// Package store persists exploration snapshots between CLI invocations.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/seitarof/go-explorer/internal/catalog"
	"github.com/seitarof/go-explorer/internal/explore"
)

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no saved exploration")

// Snapshot is what survives between invocations: the session status and
// the active filter.
type Snapshot struct {
	Status explore.Status `yaml:"status"`
	Query  catalog.Query  `yaml:"query"`
}

// Store reads and writes snapshots.
type Store interface {
	Load() (Snapshot, error)
	Save(s Snapshot) error
	Path() string
}

type fileStore struct {
	path string
}

// NewFileStore returns a Store backed by a YAML file at path.
func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

func (f *fileStore) Path() string { return f.path }

func (f *fileStore) Load() (Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, ErrNoSnapshot
		}
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot %s: %w", f.path, err)
	}
	if !s.Status.Valid() {
		return Snapshot{}, fmt.Errorf("snapshot %s: %w", f.path, explore.ErrEmptyStatus)
	}
	return s, nil
}

func (f *fileStore) Save(s Snapshot) error {
	if !s.Status.Valid() {
		return fmt.Errorf("save snapshot: %w", explore.ErrEmptyStatus)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
