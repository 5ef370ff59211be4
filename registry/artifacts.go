package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"submarine-api/helper"
)

// ArtifactEntry is one file or directory inside a version's artifact tree.
type ArtifactEntry struct {
	Path  string `json:"path"`
	Size  int64  `json:"size"`
	IsDir bool   `json:"isDir"`
}

// ListArtifacts walks the artifact tree of one model version.
func (s *Store) ListArtifacts(name string, version int32) ([]ArtifactEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.getVersionLocked(name, version); err != nil {
		return nil, err
	}

	root := s.artifactDir(name, version)
	var out []ArtifactEntry
	err := afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, ArtifactEntry{
			Path:  rel,
			Size:  info.Size(),
			IsDir: info.IsDir(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk artifacts of %s/%d: %w", name, version, err)
	}
	return out, nil
}

// ReadArtifact returns the content of one artifact file. The relative path
// must stay inside the version's artifact tree.
func (s *Store) ReadArtifact(name string, version int32, relPath string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.getVersionLocked(name, version); err != nil {
		return nil, err
	}

	root := s.artifactDir(name, version)
	full := filepath.Join(root, relPath)
	if !strings.HasPrefix(full, filepath.Clean(root)+string(os.PathSeparator)) {
		return nil, fmt.Errorf("illegal artifact path: %s", relPath)
	}

	data, err := afero.ReadFile(s.fs, full)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", relPath, err)
	}
	return data, nil
}

// ImportArtifacts downloads a zip archive and extracts it into the
// version's artifact tree.
func (s *Store) ImportArtifacts(ctx context.Context, name string, version int32, url string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getVersionLocked(name, version); err != nil {
		return nil, err
	}

	dest := s.artifactDir(name, version)
	tmp := filepath.Join(dest, ".import.zip")
	if err := helper.DownloadFile(ctx, s.fs, url, tmp); err != nil {
		return nil, fmt.Errorf("failed to download artifact archive: %w", err)
	}
	defer s.fs.Remove(tmp)

	extracted, err := helper.ExtractZip(s.fs, tmp, dest)
	if err != nil {
		return nil, err
	}
	return extracted, nil
}

// CopyArtifacts copies the artifact tree of one version into another
// version of the same or a different model, for lineage-preserving
// promotion flows.
func (s *Store) CopyArtifacts(srcName string, srcVersion int32, dstName string, dstVersion int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getVersionLocked(srcName, srcVersion); err != nil {
		return err
	}
	if _, err := s.getVersionLocked(dstName, dstVersion); err != nil {
		return err
	}

	srcRoot := s.artifactDir(srcName, srcVersion)
	dstRoot := s.artifactDir(dstName, dstVersion)

	return afero.Walk(s.fs, srcRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcRoot, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dstRoot, rel)
		if info.IsDir() {
			return s.fs.MkdirAll(target, info.Mode())
		}
		data, err := afero.ReadFile(s.fs, path)
		if err != nil {
			return err
		}
		return afero.WriteFile(s.fs, target, data, info.Mode())
	})
}
