package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/ncobase/taskmate/config"
)

func init() {
	Register(&fileDriver{})
}

type fileDriver struct{}

func (d *fileDriver) Name() string { return "file" }

func (d *fileDriver) Open(_ context.Context, cfg *config.Session) (Store, error) {
	if cfg.File == nil || cfg.File.Path == "" {
		return nil, fmt.Errorf("file: path is empty")
	}
	return NewFile(cfg.File.Path), nil
}

// File keeps all keys in one JSON document. Writes go to a temp file that is
// renamed over the target, so readers never observe a partial document.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a store backed by the JSON document at path. The file and its
// directory are created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) read() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	doc := map[string]string{}
	if len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("file: decode %s: %w", f.path, err)
	}
	return doc, nil
}

func (f *File) write(doc map[string]string) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".kv-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

func (f *File) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return "", err
	}
	v, ok := doc[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		// an unreadable document is replaced rather than blocking every write
		doc = map[string]string{}
	}
	doc[key] = value
	return f.write(doc)
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return f.write(map[string]string{})
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return f.write(doc)
}

func (f *File) Close() error { return nil }
