package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// document is one JSON file guarded by its own lock. Every access re-reads the
// file, so edits made outside the process are picked up.
type document[T any] struct {
	path string
	mu   sync.Mutex
}

func newDocument[T any](path string) *document[T] {
	return &document[T]{path: path}
}

// ensure writes seed when the file does not exist yet.
func (d *document[T]) ensure(seed func() T) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := os.Stat(d.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", d.path, err)
	}

	v := seed()
	return d.write(&v)
}

func (d *document[T]) view(fn func(v *T) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, err := d.read()
	if err != nil {
		return err
	}
	return fn(&v)
}

// update applies fn and persists the result. Nothing is written when fn fails.
func (d *document[T]) update(fn func(v *T) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, err := d.read()
	if err != nil {
		return err
	}
	if err := fn(&v); err != nil {
		return err
	}
	return d.write(&v)
}

func (d *document[T]) read() (T, error) {
	var v T
	data, err := os.ReadFile(d.path)
	if err != nil {
		return v, fmt.Errorf("failed to read %s: %w", d.path, err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("failed to decode %s: %w", d.path, err)
	}
	return v, nil
}

// write replaces the file through a temp file and rename.
func (d *document[T]) write(v *T) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", d.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", d.path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, d.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", d.path, err)
	}
	return nil
}
