// Package auth implements the PIN lifecycle that gates the app: setup,
// confirm, verify, change, and the destructive reset. The PIN is a UX
// deterrent for a single-user device, not a cryptographic boundary.
package auth

import (
	"context"
	"errors"
	"sync"
)

// PINLength is the exact number of digits in a PIN.
const PINLength = 4

// State is the current step of the PIN lifecycle.
type State int

const (
	// StateSetup collects a new PIN candidate (first run, or after reset
	// or an accepted old PIN during change).
	StateSetup State = iota
	// StateConfirm collects the candidate a second time before committing.
	StateConfirm
	// StateVerify gates app entry against the committed PIN.
	StateVerify
	// StateChange collects the old PIN before allowing a new one.
	StateChange
	// StateUnlocked means the gate is open.
	StateUnlocked
)

// Event reports what a completed 4-digit entry did.
type Event int

const (
	// EventNone: nothing decided yet (entry still in progress, or the
	// setup candidate was stored and confirmation starts).
	EventNone Event = iota
	// EventCommitted: the confirmed PIN was persisted and the gate opened.
	EventCommitted
	// EventUnlocked: verification succeeded and the gate opened.
	EventUnlocked
	// EventMismatch: confirmation differed from the candidate; the
	// candidate was discarded and setup restarts from scratch.
	EventMismatch
	// EventWrongPIN: verification (or old-PIN check) failed; input was
	// cleared and the same state re-prompts. Retry is unlimited.
	EventWrongPIN
	// EventOldAccepted: the old PIN was accepted; setup of the new PIN
	// begins.
	EventOldAccepted
)

var (
	ErrNotUnlocked       = errors.New("pin change requires an unlocked session")
	ErrResetUnavailable  = errors.New("reset is only available from verification")
	ErrResetNotConfirmed = errors.New("reset requires explicit confirmation")
)

// Repository persists the committed PIN as an opaque digit string. An empty
// string means no PIN has ever been set.
type Repository interface {
	LoadPIN(ctx context.Context) (string, error)
	SavePIN(ctx context.Context, pin string) error
	DeletePIN(ctx context.Context) error
}

// Wiper destroys all ledger and balance data. Only the reset escape hatch
// calls it.
type Wiper interface {
	WipeAll(ctx context.Context) error
}

// Machine is the PIN state machine. It is driven one digit at a time and
// owns the only two ways to unlock: an exact PIN match or an explicit
// biometric success. Callers may drive it from separate goroutines (the
// TUI dispatches each press as a command); the mutex keeps entries whole.
type Machine struct {
	repo Repository

	mu      sync.Mutex
	state   State
	input   string
	pending string
	pin     string
}

// NewMachine loads the committed PIN and starts in Setup when there is
// none, Verify otherwise.
func NewMachine(ctx context.Context, repo Repository) (*Machine, error) {
	pin, err := repo.LoadPIN(ctx)
	if err != nil {
		return nil, err
	}

	m := &Machine{repo: repo, pin: pin, state: StateVerify}
	if pin == "" {
		m.state = StateSetup
	}

	return m, nil
}

// State returns the current lifecycle step.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// InputLen returns how many digits of the current entry are filled, for
// masked rendering.
func (m *Machine) InputLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.input)
}

// Press feeds one digit. Non-digits are ignored. When the fourth digit
// lands the entry is evaluated and the input cleared.
func (m *Machine) Press(ctx context.Context, r rune) (Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateUnlocked || r < '0' || r > '9' {
		return EventNone, nil
	}

	m.input += string(r)
	if len(m.input) < PINLength {
		return EventNone, nil
	}

	entry := m.input
	m.input = ""

	switch m.state {
	case StateSetup:
		m.pending = entry
		m.state = StateConfirm

		return EventNone, nil

	case StateConfirm:
		if entry != m.pending {
			m.pending = ""
			m.state = StateSetup

			return EventMismatch, nil
		}

		if err := m.repo.SavePIN(ctx, entry); err != nil {
			// Keep the candidate so the user can retry the commit.
			m.input = ""
			m.state = StateConfirm

			return EventNone, err
		}

		m.pin = entry
		m.pending = ""
		m.state = StateUnlocked

		return EventCommitted, nil

	case StateVerify:
		if entry == m.pin {
			m.state = StateUnlocked
			return EventUnlocked, nil
		}

		return EventWrongPIN, nil

	case StateChange:
		if entry == m.pin {
			m.state = StateSetup
			return EventOldAccepted, nil
		}

		return EventWrongPIN, nil
	}

	return EventNone, nil
}

// Backspace removes the last digit of the current entry.
func (m *Machine) Backspace() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.input) > 0 {
		m.input = m.input[:len(m.input)-1]
	}
}

// BeginChange starts the change flow. Only an unlocked session may change
// the PIN.
func (m *Machine) BeginChange() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateUnlocked {
		return ErrNotUnlocked
	}

	m.input = ""
	m.pending = ""
	m.state = StateChange

	return nil
}

// Reset deletes the PIN and wipes ALL ledger and balance data, then
// restarts setup. It is irrecoverable, available only from Verify, and
// refuses to run without explicit confirmation.
func (m *Machine) Reset(ctx context.Context, confirmed bool, w Wiper) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateVerify {
		return ErrResetUnavailable
	}

	if !confirmed {
		return ErrResetNotConfirmed
	}

	if err := w.WipeAll(ctx); err != nil {
		return err
	}

	if err := m.repo.DeletePIN(ctx); err != nil {
		return err
	}

	m.pin = ""
	m.input = ""
	m.pending = ""
	m.state = StateSetup

	return nil
}
