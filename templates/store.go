package templates

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

var (
	ErrNotFound      = fmt.Errorf("template not found")
	ErrAlreadyExists = fmt.Errorf("template already exists")
)

// Store keeps one YAML file per template under <root>/template/.
type Store struct {
	mu   sync.RWMutex
	fs   afero.Fs
	root string
}

func NewStore(fs afero.Fs, artifactRoot string) *Store {
	s := &Store{fs: fs, root: filepath.Join(artifactRoot, "template")}
	_ = s.fs.MkdirAll(s.root, 0o755)
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

func (s *Store) path(name string) string {
	return filepath.Join(s.root, name+".yaml")
}

func validate(spec *model.ExperimentTemplateSpec) error {
	if spec == nil || spec.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if strings.ContainsAny(spec.Name, "/\\") {
		return fmt.Errorf("template name must not contain path separators")
	}
	if spec.ExperimentSpec == nil {
		return fmt.Errorf("template needs an experiment spec")
	}
	seen := map[string]bool{}
	for _, param := range spec.Parameters {
		if param == nil || param.Name == "" {
			return fmt.Errorf("template parameter without a name")
		}
		if seen[param.Name] {
			return fmt.Errorf("duplicate template parameter %q", param.Name)
		}
		seen[param.Name] = true
	}
	return nil
}

func (s *Store) write(spec *model.ExperimentTemplateSpec) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("failed to marshal template %s: %w", spec.Name, err)
	}
	return afero.WriteFile(s.fs, s.path(spec.Name), data, 0o644)
}

func (s *Store) Create(spec *model.ExperimentTemplateSpec) error {
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

func (s *Store) Update(name string, spec *model.ExperimentTemplateSpec) (*model.ExperimentTemplateSpec, error) {
	if spec != nil && spec.Name == "" {
		spec.Name = name
	}
	if err := validate(spec); err != nil {
		return nil, err
	}
	if spec.Name != name {
		return nil, fmt.Errorf("template name %q does not match path %q", spec.Name, name)
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

func (s *Store) Get(name string) (*model.ExperimentTemplateSpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := afero.ReadFile(s.fs, s.path(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	var spec model.ExperimentTemplateSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return &spec, nil
}

func (s *Store) List() ([]*model.ExperimentTemplateSpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read template store: %w", err)
	}

	var out []*model.ExperimentTemplateSpec
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := afero.ReadFile(s.fs, filepath.Join(s.root, entry.Name()))
		if err != nil {
			continue
		}
		var spec model.ExperimentTemplateSpec
		if err := yaml.Unmarshal(data, &spec); err != nil {
			continue
		}
		out = append(out, &spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) Delete(name string) (*model.ExperimentTemplateSpec, error) {
	spec, err := s.Get(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(s.path(name)); err != nil {
		return nil, fmt.Errorf("failed to delete template %s: %w", name, err)
	}
	return spec, nil
}
