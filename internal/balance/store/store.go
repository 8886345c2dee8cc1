// Package store persists balance sources as a single JSON snapshot,
// rewritten in full on every mutation.
package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/nnazuaff/LaporanKeuangan/internal/balance"
	"github.com/nnazuaff/LaporanKeuangan/internal/storage"
)

const snapshotKey = "balances.json"

type Store struct {
	snapshots *storage.Store

	mu      sync.Mutex
	sources []*balance.Source
	lastID  int64
}

// New loads the persisted snapshot, if any, into memory.
func New(snapshots *storage.Store) (*Store, error) {
	s := &Store{snapshots: snapshots}

	if _, err := snapshots.Load(snapshotKey, &s.sources); err != nil {
		return nil, err
	}

	for _, src := range s.sources {
		if src.ID > s.lastID {
			s.lastID = src.ID
		}
	}

	return s, nil
}

func (s *Store) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}

	s.lastID = id

	return id
}

// Create adds a source, assigning ID and timestamps, and persists.
func (s *Store) Create(_ context.Context, src *balance.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	src.ID = s.nextID()
	now := time.Now()
	src.CreatedAt = now
	src.UpdatedAt = now

	s.sources = append(s.sources, src)

	return s.persist()
}

// FindByName looks a source up by case-insensitive name. Returns nil with no
// error when there is no match.
func (s *Store) FindByName(_ context.Context, name string) (*balance.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, src := range s.sources {
		if strings.EqualFold(src.Name, name) {
			return src, nil
		}
	}

	return nil, nil
}

// UpdateAmount overwrites a source's amount and refreshes UpdatedAt.
func (s *Store) UpdateAmount(_ context.Context, id, amount int64) (*balance.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, src := range s.sources {
		if src.ID != id {
			continue
		}

		src.Amount = amount
		src.UpdatedAt = time.Now()

		return src, s.persist()
	}

	return nil, nil
}

// RemoveByID removes a source and persists. Unknown IDs are a no-op.
func (s *Store) RemoveByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := slices.DeleteFunc(slices.Clone(s.sources), func(src *balance.Source) bool {
		return src.ID == id
	})

	if len(kept) == len(s.sources) {
		return nil
	}

	s.sources = kept

	return s.persist()
}

// List returns all sources in insertion order.
func (s *Store) List(_ context.Context) ([]*balance.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.sources), nil
}

// Wipe discards every source. Part of the destructive PIN reset.
func (s *Store) Wipe(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sources = nil
	s.lastID = 0

	return s.persist()
}

func (s *Store) persist() error {
	return s.snapshots.Save(snapshotKey, s.sources)
}
