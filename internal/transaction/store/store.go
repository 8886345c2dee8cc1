// Package store persists the transaction list as a single JSON snapshot,
// rewritten in full on every mutation.
package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/nnazuaff/LaporanKeuangan/internal/storage"
	"github.com/nnazuaff/LaporanKeuangan/internal/transaction"
)

const snapshotKey = "transactions.json"

type Store struct {
	snapshots *storage.Store

	mu     sync.Mutex
	txs    []*transaction.Transaction
	lastID int64
}

// New loads the persisted snapshot, if any, into memory.
func New(snapshots *storage.Store) (*Store, error) {
	s := &Store{snapshots: snapshots}

	if _, err := snapshots.Load(snapshotKey, &s.txs); err != nil {
		return nil, err
	}

	for _, tx := range s.txs {
		if tx.ID > s.lastID {
			s.lastID = tx.ID
		}
	}

	return s, nil
}

// nextID returns a unique ID derived from the creation instant. IDs stay
// strictly increasing even when two records are created in the same
// millisecond.
func (s *Store) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}

	s.lastID = id

	return id
}

// Append adds a record, assigning ID and CreatedAt when absent, and persists
// the full snapshot. On a persist error the record is kept in memory and the
// error is returned as a warning.
func (s *Store) Append(_ context.Context, tx *transaction.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.ID == 0 {
		tx.ID = s.nextID()
	} else if tx.ID > s.lastID {
		s.lastID = tx.ID
	}

	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}

	s.txs = append(s.txs, tx)

	return s.persist()
}

// RemoveByID removes the record with the given ID and persists. Removing an
// unknown ID leaves the list untouched and is not an error.
func (s *Store) RemoveByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := slices.DeleteFunc(slices.Clone(s.txs), func(tx *transaction.Transaction) bool {
		return tx.ID == id
	})

	if len(kept) == len(s.txs) {
		return nil
	}

	s.txs = kept

	return s.persist()
}

// List returns the current list in insertion order.
func (s *Store) List(_ context.Context) ([]*transaction.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.txs), nil
}

// ReplaceAll swaps the entire list wholesale and persists.
func (s *Store) ReplaceAll(_ context.Context, txs []*transaction.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs = slices.Clone(txs)

	s.lastID = 0
	for _, tx := range s.txs {
		if tx.ID > s.lastID {
			s.lastID = tx.ID
		}
	}

	return s.persist()
}

// Wipe discards every record. Part of the destructive PIN reset.
func (s *Store) Wipe(ctx context.Context) error {
	return s.ReplaceAll(ctx, nil)
}

func (s *Store) persist() error {
	return s.snapshots.Save(snapshotKey, s.txs)
}
