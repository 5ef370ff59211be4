package registry

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"submarine-api/conf"
	"submarine-api/pkg/client/model"
)

var (
	ErrNotFound      = fmt.Errorf("not found in registry")
	ErrAlreadyExists = fmt.Errorf("already exists in registry")
)

var validStages = map[string]bool{
	model.StageNone:       true,
	model.StageStaging:    true,
	model.StageProduction: true,
	model.StageArchived:   true,
}

// Store lays the registry out as one directory per registered model:
//
//	<root>/registry/<model>/meta.yaml
//	<root>/registry/<model>/versions/<n>.yaml
//	<root>/registry/<model>/artifacts/<n>/...
type Store struct {
	mu   sync.RWMutex
	fs   afero.Fs
	root string
}

func NewStore(fs afero.Fs, artifactRoot string) *Store {
	s := &Store{fs: fs, root: filepath.Join(artifactRoot, "registry")}
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

// LookupVersion resolves a model version through the shared store, for
// serving endpoints that reference the registry.
func LookupVersion(name string, version int32) (*model.ModelVersionEntity, error) {
	return getStore().GetVersion(name, version)
}

func (s *Store) modelDir(name string) string {
	return filepath.Join(s.root, name)
}

func (s *Store) metaPath(name string) string {
	return filepath.Join(s.modelDir(name), "meta.yaml")
}

func (s *Store) versionsDir(name string) string {
	return filepath.Join(s.modelDir(name), "versions")
}

func (s *Store) versionPath(name string, version int32) string {
	return filepath.Join(s.versionsDir(name), strconv.Itoa(int(version))+".yaml")
}

func (s *Store) artifactDir(name string, version int32) string {
	return filepath.Join(s.modelDir(name), "artifacts", strconv.Itoa(int(version)))
}

func validName(name string) error {
	if name == "" {
		return fmt.Errorf("model name is required")
	}
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("model name must not contain path separators")
	}
	return nil
}

func (s *Store) writeMeta(entity *model.RegisteredModelEntity) error {
	data, err := yaml.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal model %s: %w", entity.Name, err)
	}
	return afero.WriteFile(s.fs, s.metaPath(entity.Name), data, 0o644)
}

// CreateModel registers a new model name.
func (s *Store) CreateModel(entity *model.RegisteredModelEntity) (*model.RegisteredModelEntity, error) {
	if err := validName(entity.Name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if exists, _ := afero.Exists(s.fs, s.metaPath(entity.Name)); exists {
		return nil, fmt.Errorf("%w: model %s", ErrAlreadyExists, entity.Name)
	}

	now := time.Now().UTC()
	entity.CreationTime = now
	entity.LastUpdatedTime = now

	if err := s.fs.MkdirAll(s.versionsDir(entity.Name), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}
	if err := s.writeMeta(entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Store) GetModel(name string) (*model.RegisteredModelEntity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getModelLocked(name)
}

func (s *Store) getModelLocked(name string) (*model.RegisteredModelEntity, error) {
	data, err := afero.ReadFile(s.fs, s.metaPath(name))
	if err != nil {
		return nil, fmt.Errorf("%w: model %s", ErrNotFound, name)
	}
	var entity model.RegisteredModelEntity
	if err := yaml.Unmarshal(data, &entity); err != nil {
		return nil, fmt.Errorf("failed to parse model %s: %w", name, err)
	}
	return &entity, nil
}

func (s *Store) ListModels() ([]*model.RegisteredModelEntity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}

	var out []*model.RegisteredModelEntity
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		entity, err := s.getModelLocked(entry.Name())
		if err != nil {
			continue
		}
		out = append(out, entity)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// UpdateModel replaces description and tags, keeping creation time.
func (s *Store) UpdateModel(name string, entity *model.RegisteredModelEntity) (*model.RegisteredModelEntity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.getModelLocked(name)
	if err != nil {
		return nil, err
	}

	existing.Description = entity.Description
	if entity.Tags != nil {
		existing.Tags = entity.Tags
	}
	existing.LastUpdatedTime = time.Now().UTC()

	if err := s.writeMeta(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteModel removes the model with all its versions and artifacts.
func (s *Store) DeleteModel(name string) error {
	if err := validName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if exists, _ := afero.Exists(s.fs, s.metaPath(name)); !exists {
		return fmt.Errorf("%w: model %s", ErrNotFound, name)
	}
	return s.fs.RemoveAll(s.modelDir(name))
}

func (s *Store) writeVersion(entity *model.ModelVersionEntity) error {
	data, err := yaml.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal version %s/%d: %w", entity.Name, entity.Version, err)
	}
	return afero.WriteFile(s.fs, s.versionPath(entity.Name, entity.Version), data, 0o644)
}

// CreateVersion appends a new version under the model, numbering from 1.
func (s *Store) CreateVersion(entity *model.ModelVersionEntity) (*model.ModelVersionEntity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getModelLocked(entity.Name); err != nil {
		return nil, err
	}

	versions, err := s.listVersionsLocked(entity.Name)
	if err != nil {
		return nil, err
	}
	next := int32(1)
	for _, v := range versions {
		if v.Version >= next {
			next = v.Version + 1
		}
	}

	now := time.Now().UTC()
	entity.Version = next
	entity.CreationTime = now
	entity.LastUpdatedTime = now
	if entity.CurrentStage == "" {
		entity.CurrentStage = model.StageNone
	}
	if !validStages[entity.CurrentStage] {
		return nil, fmt.Errorf("invalid stage %q", entity.CurrentStage)
	}

	if err := s.fs.MkdirAll(s.artifactDir(entity.Name, next), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	if err := s.writeVersion(entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Store) GetVersion(name string, version int32) (*model.ModelVersionEntity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getVersionLocked(name, version)
}

func (s *Store) getVersionLocked(name string, version int32) (*model.ModelVersionEntity, error) {
	data, err := afero.ReadFile(s.fs, s.versionPath(name, version))
	if err != nil {
		return nil, fmt.Errorf("%w: %s version %d", ErrNotFound, name, version)
	}
	var entity model.ModelVersionEntity
	if err := yaml.Unmarshal(data, &entity); err != nil {
		return nil, fmt.Errorf("failed to parse version %s/%d: %w", name, version, err)
	}
	return &entity, nil
}

func (s *Store) ListVersions(name string) ([]*model.ModelVersionEntity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.getModelLocked(name); err != nil {
		return nil, err
	}
	return s.listVersionsLocked(name)
}

func (s *Store) listVersionsLocked(name string) ([]*model.ModelVersionEntity, error) {
	entries, err := afero.ReadDir(s.fs, s.versionsDir(name))
	if err != nil {
		return nil, nil
	}

	var out []*model.ModelVersionEntity
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(entry.Name(), ".yaml"))
		if err != nil {
			continue
		}
		entity, err := s.getVersionLocked(name, int32(n))
		if err != nil {
			continue
		}
		out = append(out, entity)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// UpdateVersion replaces the mutable fields of a version: stage, dataset
// and description.
func (s *Store) UpdateVersion(entity *model.ModelVersionEntity) (*model.ModelVersionEntity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.getVersionLocked(entity.Name, entity.Version)
	if err != nil {
		return nil, err
	}

	if entity.CurrentStage != "" {
		if !validStages[entity.CurrentStage] {
			return nil, fmt.Errorf("invalid stage %q", entity.CurrentStage)
		}
		existing.CurrentStage = entity.CurrentStage
	}
	if entity.Dataset != "" {
		existing.Dataset = entity.Dataset
	}
	if entity.Description != "" {
		existing.Description = entity.Description
	}
	existing.LastUpdatedTime = time.Now().UTC()

	if err := s.writeVersion(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteVersion removes one version and its artifacts.
func (s *Store) DeleteVersion(name string, version int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if exists, _ := afero.Exists(s.fs, s.versionPath(name, version)); !exists {
		return fmt.Errorf("%w: %s version %d", ErrNotFound, name, version)
	}
	if err := s.fs.Remove(s.versionPath(name, version)); err != nil {
		return err
	}
	return s.fs.RemoveAll(s.artifactDir(name, version))
}

// AddModelTag appends a tag, ignoring duplicates.
func (s *Store) AddModelTag(name, tag string) (*model.RegisteredModelEntity, error) {
	if tag == "" {
		return nil, fmt.Errorf("tag is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entity, err := s.getModelLocked(name)
	if err != nil {
		return nil, err
	}
	for _, t := range entity.Tags {
		if t == tag {
			return entity, nil
		}
	}
	entity.Tags = append(entity.Tags, tag)
	entity.LastUpdatedTime = time.Now().UTC()
	if err := s.writeMeta(entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Store) DeleteModelTag(name, tag string) (*model.RegisteredModelEntity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, err := s.getModelLocked(name)
	if err != nil {
		return nil, err
	}

	kept := entity.Tags[:0]
	for _, t := range entity.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	entity.Tags = kept
	entity.LastUpdatedTime = time.Now().UTC()
	if err := s.writeMeta(entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Store) AddVersionTag(name string, version int32, tag string) (*model.ModelVersionEntity, error) {
	if tag == "" {
		return nil, fmt.Errorf("tag is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entity, err := s.getVersionLocked(name, version)
	if err != nil {
		return nil, err
	}
	for _, t := range entity.Tags {
		if t == tag {
			return entity, nil
		}
	}
	entity.Tags = append(entity.Tags, tag)
	entity.LastUpdatedTime = time.Now().UTC()
	if err := s.writeVersion(entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Store) DeleteVersionTag(name string, version int32, tag string) (*model.ModelVersionEntity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, err := s.getVersionLocked(name, version)
	if err != nil {
		return nil, err
	}

	kept := entity.Tags[:0]
	for _, t := range entity.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	entity.Tags = kept
	entity.LastUpdatedTime = time.Now().UTC()
	if err := s.writeVersion(entity); err != nil {
		return nil, err
	}
	return entity, nil
}
