// Package store persists the committed PIN as its own durable record.
package store

import (
	"context"

	"github.com/nnazuaff/LaporanKeuangan/internal/storage"
)

const pinKey = "pin.json"

type Store struct {
	snapshots *storage.Store
}

func New(snapshots *storage.Store) *Store {
	return &Store{snapshots: snapshots}
}

// LoadPIN returns the committed PIN, or "" when none has been set.
func (s *Store) LoadPIN(_ context.Context) (string, error) {
	var pin string
	if _, err := s.snapshots.Load(pinKey, &pin); err != nil {
		return "", err
	}

	return pin, nil
}

func (s *Store) SavePIN(_ context.Context, pin string) error {
	return s.snapshots.Save(pinKey, pin)
}

func (s *Store) DeletePIN(_ context.Context) error {
	return s.snapshots.Delete(pinKey)
}
