package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"cinebook/internal/pkg/config"
	"cinebook/internal/pkg/errs"
)

const appDir = "cinebook"

// Store is the persisted key-value collection backing. Each key maps to one
// JSON file holding the full serialized collection; every save rewrites the
// file in one step.
type Store struct {
	dir string
}

func New(cfg config.StoreConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, errs.Wrap(err, "resolve user config dir")
		}
		dir = filepath.Join(base, appDir)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load reads the collection stored under key. A missing file yields the zero
// value, not an error; a first run starts from an empty collection.
func Load[T any](s *Store, key string) (T, error) {
	var value T
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return value, nil
		}
		return value, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	return value, nil
}

// Save writes the full collection under key.
func Save[T any](s *Store, key string, value T) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	if err := os.WriteFile(s.path(key), payload, 0o644); err != nil {
		return errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	return nil
}
