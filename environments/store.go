package environments

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"submarine-api/conf"
	"submarine-api/pkg/client/model"
)

// ErrNotFound and ErrAlreadyExists let controllers pick the right status
// code without string matching.
var (
	ErrNotFound      = fmt.Errorf("environment not found")
	ErrAlreadyExists = fmt.Errorf("environment already exists")
)

// Store keeps one YAML file per environment under <root>/environment/.
type Store struct {
	mu   sync.RWMutex
	fs   afero.Fs
	root string
}

func NewStore(fs afero.Fs, artifactRoot string) *Store {
	s := &Store{fs: fs, root: filepath.Join(artifactRoot, "environment")}
	if err := s.fs.MkdirAll(s.root, 0o755); err == nil {
		s.seedDefault()
	}
	return s
}

var (
	once         sync.Once
	defaultStore *Store
)

func getStore() *Store {
	once.Do(func() {
		defaultStore = NewStore(afero.NewOsFs(), conf.Get().ArtifactRoot)
	})
	return defaultStore
}

// Lookup resolves an environment by name through the shared store, for
// notebooks and experiments that reference environments only by name.
func Lookup(name string) (*model.EnvironmentSpec, error) {
	return getStore().Get(name)
}

// The environment every fresh install ships with, matching the stock
// notebook image.
func (s *Store) seedDefault() {
	def := &model.EnvironmentSpec{
		Name:        "notebook-env",
		DockerImage: "apache/submarine:jupyter-notebook-0.7.0",
		Description: "Default environment for notebooks and experiments",
		KernelSpec: &model.KernelSpec{
			Name:     "submarine_jupyter_py3",
			Channels: []string{"defaults"},
			CondaDependencies: []string{
				"python=3.7",
			},
		},
	}
	if _, err := s.Get(def.Name); err == nil {
		return
	}
	_ = s.write(def)
}

func (s *Store) path(name string) string {
	return filepath.Join(s.root, name+".yaml")
}

func (s *Store) write(spec *model.EnvironmentSpec) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("failed to marshal environment %s: %w", spec.Name, err)
	}
	return afero.WriteFile(s.fs, s.path(spec.Name), data, 0o644)
}

func validate(spec *model.EnvironmentSpec) error {
	if spec == nil || spec.Name == "" {
		return fmt.Errorf("environment name is required")
	}
	if strings.ContainsAny(spec.Name, "/\\") {
		return fmt.Errorf("environment name must not contain path separators")
	}
	if spec.DockerImage == "" {
		return fmt.Errorf("environment docker image is required")
	}
	return nil
}

// Create stores a new environment. Creating a name that already exists is
// a conflict.
func (s *Store) Create(spec *model.EnvironmentSpec) error {
	if err := validate(spec); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if exists, _ := afero.Exists(s.fs, s.path(spec.Name)); exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, spec.Name)
	}
	return s.write(spec)
}

// Update replaces an existing environment.
func (s *Store) Update(name string, spec *model.EnvironmentSpec) (*model.EnvironmentSpec, error) {
	if spec != nil && spec.Name == "" {
		spec.Name = name
	}
	if err := validate(spec); err != nil {
		return nil, err
	}
	if spec.Name != name {
		return nil, fmt.Errorf("environment name %q does not match path %q", spec.Name, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if exists, _ := afero.Exists(s.fs, s.path(name)); !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err := s.write(spec); err != nil {
		return nil, err
	}
	return spec, nil
}

func (s *Store) Get(name string) (*model.EnvironmentSpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := afero.ReadFile(s.fs, s.path(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	var spec model.EnvironmentSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse environment %s: %w", name, err)
	}
	return &spec, nil
}

func (s *Store) List() ([]*model.EnvironmentSpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment store: %w", err)
	}

	var out []*model.EnvironmentSpec
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := afero.ReadFile(s.fs, filepath.Join(s.root, entry.Name()))
		if err != nil {
			continue
		}
		var spec model.EnvironmentSpec
		if err := yaml.Unmarshal(data, &spec); err != nil {
			continue
		}
		out = append(out, &spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes an environment and returns the spec that was stored.
func (s *Store) Delete(name string) (*model.EnvironmentSpec, error) {
	spec, err := s.Get(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(s.path(name)); err != nil {
		return nil, fmt.Errorf("failed to delete environment %s: %w", name, err)
	}
	return spec, nil
}
