package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileStore is a file-based snapshot store for CLI use.
// Snapshots are stored as JSON files in a config directory.
type FileStore struct {
	mu      sync.Mutex
	baseDir string
}

// NewFileStore creates a new file-based snapshot store.
// If baseDir is empty, defaults to ~/.config/gridflow/snapshots/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "gridflow", "snapshots")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) snapshotPath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrInvalidName
	}
	return filepath.Join(s.baseDir, name+".json"), nil
}

func (s *FileStore) Load(ctx context.Context, name string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(name)
}

// load reads a snapshot without locking; callers hold s.mu.
func (s *FileStore) load(name string) (*Snapshot, error) {
	path, err := s.snapshotPath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", name, err)
	}
	return &snap, nil
}

func (s *FileStore) Save(ctx context.Context, name string, diagram json.RawMessage, expectedRevision string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.snapshotPath(name)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	snap := &Snapshot{
		Name:      name,
		Revision:  uuid.NewString(),
		Diagram:   diagram,
		CreatedAt: now,
		UpdatedAt: now,
	}

	current, err := s.load(name)
	switch {
	case err == nil:
		if current.Revision != expectedRevision {
			return nil, fmt.Errorf("snapshot %s: have %s, expected %s: %w",
				name, current.Revision, expectedRevision, ErrRevisionConflict)
		}
		snap.CreatedAt = current.CreatedAt
	case err == ErrNotFound:
		if expectedRevision != "" {
			return nil, fmt.Errorf("snapshot %s does not exist: %w", name, ErrRevisionConflict)
		}
	default:
		return nil, err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("write snapshot file: %w", err)
	}
	return snap, nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.snapshotPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete snapshot file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	slices.Sort(names)
	return names, nil
}
