package helper

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// ExtractZip unpacks src into dest on the given filesystem and returns the
// extracted paths. Entries escaping dest are rejected.
func ExtractZip(fs afero.Fs, src, dest string) ([]string, error) {
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip file: %w", err)
	}

	var extracted []string
	for _, f := range r.File {
		fpath := filepath.Join(dest, f.Name)
		if !strings.HasPrefix(fpath, filepath.Clean(dest)+string(os.PathSeparator)) {
			return nil, fmt.Errorf("illegal file path: %s", fpath)
		}

		if f.FileInfo().IsDir() {
			if err := fs.MkdirAll(fpath, os.ModePerm); err != nil {
				return nil, fmt.Errorf("failed to create directory %s: %w", fpath, err)
			}
			continue
		}
		if err := fs.MkdirAll(filepath.Dir(fpath), os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create parent directory for %s: %w", fpath, err)
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open zip entry %s: %w", f.Name, err)
		}
		out, err := fs.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("failed to create file %s: %w", fpath, err)
		}
		_, err = io.Copy(out, rc)
		out.Close()
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to write file %s: %w", fpath, err)
		}
		extracted = append(extracted, fpath)
	}
	return extracted, nil
}

// DownloadFile fetches url into path on the given filesystem.
func DownloadFile(ctx context.Context, fs afero.Fs, url, path string) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	out, err := fs.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}
