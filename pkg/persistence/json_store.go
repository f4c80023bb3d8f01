package persistence

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goodnight/goodnight/pkg/types"
)

// JSONStore implements Store using a single JSON array file.
type JSONStore struct {
	path string
}

// NewJSONStore creates the parent directory and seeds the file with an
// empty array when it does not exist yet.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
			return nil, fmt.Errorf("failed to seed %s: %w", path, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return &JSONStore{path: path}, nil
}

func (s *JSONStore) Path() string {
	return s.path
}

func (s *JSONStore) LoadBills() ([]types.Bill, error) {
	return LoadBills(s.path)
}

func (s *JSONStore) DumpBills(bills []types.Bill) error {
	return DumpBills(s.path, bills)
}

func (s *JSONStore) Close() error {
	return nil
}
