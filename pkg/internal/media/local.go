package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if len(dir) == 0 {
		dir = "uploads"
	}
	if len(baseURL) == 0 {
		baseURL = "/media"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to prepare media directory: %v", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (v *LocalStore) Dir() string {
	return v.dir
}

func (v *LocalStore) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid media key %q", key)
	}
	return filepath.Join(v.dir, clean), nil
}

func (v *LocalStore) Save(ctx context.Context, key, contentType string, body io.Reader) error {
	dst, err := v.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	file, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(file, body); err != nil {
		_ = file.Close()
		_ = os.Remove(dst)
		return err
	}
	return file.Close()
}

func (v *LocalStore) Delete(ctx context.Context, key string) error {
	dst, err := v.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (v *LocalStore) URL(key string) string {
	return v.baseURL + "/" + strings.TrimPrefix(key, "/")
}

func (v *LocalStore) BaseURL() string {
	return v.baseURL
}
