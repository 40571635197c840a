// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package saved

import (
	"fmt"

	"github.com/pdiddy/papershelf/pkg/types"
)

// StorageKey is the fixed key the whole saved set is written under.
const StorageKey = "saved_papers"

// KV is a durable string-keyed byte store. Implementations are local and
// synchronous.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)

	// Set overwrites the value for key.
	Set(key string, value []byte) error

	Close() error
}

// OpenKV opens the backend named by cfg.
func OpenKV(cfg types.StoreConfig) (KV, error) {
	switch cfg.Backend {
	case types.StoreSQLite, "":
		return OpenSQLite(cfg.Path)
	case types.StoreLevelDB:
		return OpenLevelDB(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
