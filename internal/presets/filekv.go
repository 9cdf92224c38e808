package presets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileKV persists values as JSON files under a base directory. It is the
// development and single-node production backend for the preset store.
type FileKV struct {
	basePath string
}

// NewFileKV initializes a FileKV rooted at basePath.
func NewFileKV(basePath string) (*FileKV, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("presets: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("presets: ensure base path: %w", err)
	}
	return &FileKV{basePath: basePath}, nil
}

// Load reads the value stored under key, reporting false if absent.
func (f *FileKV) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("presets: read %s: %w", key, err)
	}
	return data, true, nil
}

// Store rewrites the value under key.
func (f *FileKV) Store(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(f.path(key), value, 0o644); err != nil {
		return fmt.Errorf("presets: write %s: %w", key, err)
	}
	return nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.basePath, filepath.Base(key)+".json")
}

var _ KV = (*FileKV)(nil)
