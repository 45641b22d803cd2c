package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
)

const recordExt = ".json"

// FileStore keeps each record in its own JSON file inside a single directory.
type FileStore struct {
	dir         string
	retryConfig retry.Config
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir: dir,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Dir is the directory the records live in.
func (s *FileStore) Dir() string {
	return s.dir
}

// resolvePath maps a key to a file directly inside the store directory and rejects traversal.
func (s *FileStore) resolvePath(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("key cannot be empty")
	}
	base := filepath.Clean(s.dir)
	path := filepath.Clean(filepath.Join(base, key+recordExt))
	if !strings.HasPrefix(path, base) || filepath.Dir(path) != base {
		return "", fmt.Errorf("invalid record key: %s", key)
	}
	return path, nil
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.resolvePath(key)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	retryer := retry.New[[]byte](s.retryConfig)
	return retryer.Do(ctx, func(ctx context.Context) ([]byte, error) {
		// #nosec G304 -- path is resolved and validated via resolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read record %s: %w", key, err)
		}
		return data, nil
	})
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	path, err := s.resolvePath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0600); err != nil {
		return fmt.Errorf("failed to write record %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace record %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, keys ...string) error {
	var errs []error
	for _, key := range keys {
		path, err := s.resolvePath(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("failed to remove record %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func (s *FileStore) Close() error { return nil }
