package persistence

import (
	"fmt"

	"github.com/goodnight/goodnight/pkg/types"
)

// Store abstracts bill persistence. LoadBills may return bills together
// with a *SchemaError when some records had to be dropped.
type Store interface {
	LoadBills() ([]types.Bill, error)
	DumpBills(bills []types.Bill) error
	Close() error
	// Path is the file the store reads and writes.
	Path() string
}

// NewStoreWithBackend creates a Store for the given backend and optional path.
func NewStoreWithBackend(backend, path string) (Store, error) {
	return NewStore(types.StorageConfig{Backend: backend, Path: path})
}

// NewStore creates a Store based on the storage configuration.
func NewStore(cfg types.StorageConfig) (Store, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = "json"
	}

	switch backend {
	case "json":
		path := cfg.Path
		if path == "" {
			path = DefaultBillsPath
		}
		return NewJSONStore(path)
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = DefaultSQLitePath
		}
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}
