package experiments

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var ErrNotFound = fmt.Errorf("experiment not found")

// Store persists one YAML record per experiment under <root>/experiment/.
type Store struct {
	mu   sync.RWMutex
	fs   afero.Fs
	root string
}

func NewStore(fs afero.Fs, artifactRoot string) *Store {
	s := &Store{fs: fs, root: filepath.Join(artifactRoot, "experiment")}
	_ = s.fs.MkdirAll(s.root, 0o755)
	return s
}

func (s *Store) path(id string) string {
	return filepath.Join(s.root, id+".yaml")
}

func (s *Store) Save(exp *Experiment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(exp)
	if err != nil {
		return fmt.Errorf("failed to marshal experiment %s: %w", exp.ExperimentID, err)
	}
	return afero.WriteFile(s.fs, s.path(exp.ExperimentID), data, 0o644)
}

func (s *Store) Get(id string) (*Experiment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := afero.ReadFile(s.fs, s.path(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	var exp Experiment
	if err := yaml.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("failed to parse experiment %s: %w", id, err)
	}
	return &exp, nil
}

func (s *Store) List() ([]*Experiment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read experiment store: %w", err)
	}

	var out []*Experiment
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := afero.ReadFile(s.fs, filepath.Join(s.root, entry.Name()))
		if err != nil {
			continue
		}
		var exp Experiment
		if err := yaml.Unmarshal(data, &exp); err != nil {
			continue
		}
		out = append(out, &exp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AcceptedTime.Before(out[j].AcceptedTime)
	})
	return out, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if exists, _ := afero.Exists(s.fs, s.path(id)); !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.fs.Remove(s.path(id))
}
