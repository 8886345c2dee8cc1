// Package prefs persists the small boolean/string preferences that live
// outside the ledger: the biometric gate opt-in and the daily reminder.
package prefs

import (
	"github.com/nnazuaff/LaporanKeuangan/internal/storage"
)

const snapshotKey = "prefs.json"

// Prefs is the durable preferences record.
type Prefs struct {
	BiometricEnabled bool   `json:"biometricEnabled"`
	ReminderEnabled  bool   `json:"reminderEnabled"`
	ReminderAt       string `json:"reminderAt"` // "HH:MM", 24h
}

type Store struct {
	snapshots *storage.Store
}

func New(snapshots *storage.Store) *Store {
	return &Store{snapshots: snapshots}
}

// Load returns the saved preferences, or the zero value on first run.
func (s *Store) Load() (Prefs, error) {
	var p Prefs
	if _, err := s.snapshots.Load(snapshotKey, &p); err != nil {
		return Prefs{}, err
	}

	return p, nil
}

// Save overwrites the preferences record.
func (s *Store) Save(p Prefs) error {
	return s.snapshots.Save(snapshotKey, p)
}

// Reset clears all preferences. Part of the destructive PIN reset.
func (s *Store) Reset() error {
	return s.snapshots.Delete(snapshotKey)
}
