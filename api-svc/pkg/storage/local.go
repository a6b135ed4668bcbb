package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes files under Dir and returns paths below URLPrefix,
// which the HTTP server maps back onto Dir.
type LocalStorage struct {
	Dir       string
	URLPrefix string
}

func NewLocalStorage(dir, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{Dir: dir, URLPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (s *LocalStorage) path(folder, filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(folder, "..") {
		return "", errors.New("invalid file name")
	}
	return filepath.Join(s.Dir, filepath.Clean("/"+folder), filename), nil
}

func (s *LocalStorage) Remove(ctx context.Context, folder string, filename string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dst, err := s.path(folder, filename)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStorage) UploadBytes(ctx context.Context, folder string, filename string, b []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dst, err := s.path(folder, filename)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	// write then rename so readers never see a partial file
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	rel := filepath.ToSlash(filepath.Join(folder, filename))
	return s.URLPrefix + "/" + strings.TrimLeft(rel, "/"), nil
}
