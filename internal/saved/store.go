// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package saved keeps the user's bookmarked papers. The whole set is one
// JSON array under StorageKey in a local KV backend (SQLite or LevelDB),
// rewritten on every mutation.
package saved

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pdiddy/papershelf/pkg/types"
)

// ErrCorruptPayload marks a stored payload that does not decode to a list
// of records. Open recovers from it with an empty set.
var ErrCorruptPayload = errors.New("corrupt saved payload")

// Mutation names passed to a MutationHook.
const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpImport = "import"
)

// MutationHook is called after each persisted mutation.
type MutationHook func(op string)

// Option configures a Store.
type Option func(*Store)

// WithMutationHook registers fn to observe persisted mutations.
func WithMutationHook(fn MutationHook) Option {
	return func(s *Store) { s.hook = fn }
}

// Store is the in-memory saved set mirrored to a KV backend. Records are
// ordered newest first and unique by ID. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	kv      KV
	records []types.Record
	log     zerolog.Logger
	hook    MutationHook
}

// Open loads the saved set from kv. An absent or corrupt payload yields an
// empty set; only a failing backend read is an error.
func Open(kv KV, log zerolog.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		kv:  kv,
		log: log.With().Str("component", "saved").Logger(),
	}
	for _, o := range opts {
		o(s)
	}

	raw, ok, err := kv.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("loading saved set: %w", err)
	}
	if !ok {
		s.records = []types.Record{}
		return s, nil
	}

	records, err := decode(raw)
	if err != nil {
		s.log.Debug().Err(err).Int("bytes", len(raw)).Msg("discarding saved payload")
		records = []types.Record{}
	}
	s.records = records
	return s, nil
}

// decode parses a stored payload, dropping entries without an ID and
// repeated IDs.
func decode(raw []byte) ([]types.Record, error) {
	var records []types.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}
	return dedupe(records), nil
}

func dedupe(records []types.Record) []types.Record {
	seen := make(map[string]bool, len(records))
	out := make([]types.Record, 0, len(records))
	for _, r := range records {
		if r.ID == "" || seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out
}

// Close closes the underlying KV.
func (s *Store) Close() error {
	return s.kv.Close()
}

// All returns a copy of the saved records, newest first.
func (s *Store) All() []types.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Record(nil), s.records...)
}

// Len returns the number of saved records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Contains reports whether a record with id is saved.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

// Get returns the saved record with id.
func (s *Store) Get(id string) (types.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.records[i], true
	}
	return types.Record{}, false
}

func (s *Store) indexOf(id string) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Add prepends rec unless its ID is already saved. It reports whether the
// set changed.
func (s *Store) Add(rec types.Record) (bool, error) {
	if rec.ID == "" {
		return false, errors.New("record has no id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(rec.ID) >= 0 {
		return false, nil
	}

	next := make([]types.Record, 0, len(s.records)+1)
	next = append(next, rec)
	next = append(next, s.records...)
	if err := s.commit(next, OpAdd); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the record with id. It reports whether the set changed;
// removing an unknown id is not an error.
func (s *Store) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return false, nil
	}

	next := make([]types.Record, 0, len(s.records))
	for _, r := range s.records {
		if r.ID != id {
			next = append(next, r)
		}
	}
	if err := s.commit(next, OpRemove); err != nil {
		return false, err
	}
	return true, nil
}

// Merge adds every record whose ID is not yet saved, keeping the order of
// records ahead of the existing set, and persists once. It returns the
// number of records added.
func (s *Store) Merge(records []types.Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var added []types.Record
	for _, r := range dedupe(records) {
		if s.indexOf(r.ID) < 0 {
			added = append(added, r)
		}
	}
	if len(added) == 0 {
		return 0, nil
	}

	next := append(added, s.records...)
	if err := s.commit(next, OpImport); err != nil {
		return 0, err
	}
	return len(added), nil
}

// commit writes next and swaps it in. On failure the in-memory set is left
// untouched. The caller holds s.mu.
func (s *Store) commit(next []types.Record, op string) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encoding saved set: %w", err)
	}
	if err := s.kv.Set(StorageKey, data); err != nil {
		s.log.Error().Err(err).Str("op", op).Msg("persisting saved set")
		return fmt.Errorf("persisting saved set: %w", err)
	}
	s.records = next
	s.log.Debug().Str("op", op).Int("count", len(next)).Msg("saved set updated")
	if s.hook != nil {
		s.hook(op)
	}
	return nil
}
