// Package file stores each key as a JSON document in a directory. Writes
// replace the file atomically so a crash never leaves a torn document.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/moby/sys/atomicwriter"

	"github.com/gosuda/kanban/internal/store"
)

const filePerm = 0o600

// KV is a directory-backed store.KV. Key "boards" lives in <dir>/boards.json.
type KV struct {
	dir string
	mu  sync.RWMutex
}

// New returns a KV rooted at dir, creating the directory if needed.
func New(dir string) (*KV, error) {
	if dir == "" {
		return nil, errors.New("file.New: directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("file.New: %w", err)
	}
	return &KV{dir: dir}, nil
}

// Path returns the file that holds key.
func (k *KV) Path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("file.KV: invalid key %q", key)
	}
	return filepath.Join(k.dir, key+".json"), nil
}

func (k *KV) Get(_ context.Context, key string) ([]byte, error) {
	path, err := k.Path(key)
	if err != nil {
		return nil, err
	}

	k.mu.RLock()
	defer k.mu.RUnlock()

	data, err := os.ReadFile(path) //nolint:gosec // path is confined to k.dir
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("file.KV.Get: %w", err)
	}
	return data, nil
}

func (k *KV) Set(_ context.Context, key string, value []byte) error {
	path, err := k.Path(key)
	if err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if err := atomicwriter.WriteFile(path, value, filePerm); err != nil {
		return fmt.Errorf("file.KV.Set: %w", err)
	}
	return nil
}
