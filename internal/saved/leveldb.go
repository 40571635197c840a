// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package saved

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// LevelDBKV keeps key-value pairs in a LevelDB directory.
type LevelDBKV struct {
	db *leveldb.DB
}

// OpenLevelDB opens or creates the database directory at path.
func OpenLevelDB(path string) (*LevelDBKV, error) {
	const op = "saved.OpenLevelDB"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &LevelDBKV{db: db}, nil
}

func (s *LevelDBKV) Get(key string) ([]byte, bool, error) {
	const op = "saved.LevelDBKV.Get"

	value, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return value, true, nil
}

func (s *LevelDBKV) Set(key string, value []byte) error {
	const op = "saved.LevelDBKV.Set"

	if err := s.db.Put([]byte(key), value, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *LevelDBKV) Close() error {
	return s.db.Close()
}
