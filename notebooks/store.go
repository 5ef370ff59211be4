package notebooks

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var ErrNotFound = fmt.Errorf("notebook not found")

// Store persists one YAML record per notebook under <root>/notebook/.
type Store struct {
	mu   sync.RWMutex
	fs   afero.Fs
	root string
}

func NewStore(fs afero.Fs, artifactRoot string) *Store {
	s := &Store{fs: fs, root: filepath.Join(artifactRoot, "notebook")}
	_ = s.fs.MkdirAll(s.root, 0o755)
	return s
}

func (s *Store) path(id string) string {
	return filepath.Join(s.root, id+".yaml")
}

func (s *Store) Save(nb *Notebook) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(nb)
	if err != nil {
		return fmt.Errorf("failed to marshal notebook %s: %w", nb.NotebookID, err)
	}
	return afero.WriteFile(s.fs, s.path(nb.NotebookID), data, 0o644)
}

func (s *Store) Get(id string) (*Notebook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := afero.ReadFile(s.fs, s.path(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	var nb Notebook
	if err := yaml.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("failed to parse notebook %s: %w", id, err)
	}
	return &nb, nil
}

// List returns every stored notebook, filtered by owner when ownerID is
// not empty.
func (s *Store) List(ownerID string) ([]*Notebook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read notebook store: %w", err)
	}

	var out []*Notebook
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := afero.ReadFile(s.fs, filepath.Join(s.root, entry.Name()))
		if err != nil {
			continue
		}
		var nb Notebook
		if err := yaml.Unmarshal(data, &nb); err != nil {
			continue
		}
		if ownerID != "" && nb.OwnerID != ownerID {
			continue
		}
		out = append(out, &nb)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedTime.Before(out[j].CreatedTime)
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
