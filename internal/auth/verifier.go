package auth

import (
	"context"
	"errors"
)

// Result is the outcome of a device biometric/credential challenge.
// Cancelled and Failure are handled identically: re-issue the challenge,
// never unlock.
type Result int

const (
	ResultSuccess Result = iota
	ResultFailure
	ResultCancelled
)

// Verifier is the device biometric/credential capability. Platforms without
// one inject Unavailable.
type Verifier interface {
	Available() bool
	Verify(ctx context.Context) (Result, error)
}

// Unavailable is the no-capability variant of Verifier.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) Verify(context.Context) (Result, error) {
	return ResultFailure, ErrVerifierUnavailable
}

var (
	ErrVerifierUnavailable = errors.New("biometric verification not available")
	ErrNotVerifying        = errors.New("biometric challenge is only valid during verification")
)

// VerifyBiometric lets a biometric success satisfy Verify in place of digit
// entry. Anything short of an explicit success leaves the machine locked in
// Verify; the caller must re-issue the challenge. There is no fall-through
// to unlocked.
func (m *Machine) VerifyBiometric(ctx context.Context, v Verifier) (Event, error) {
	if m.State() != StateVerify {
		return EventNone, ErrNotVerifying
	}

	if v == nil || !v.Available() {
		return EventNone, ErrVerifierUnavailable
	}

	// The challenge can block on a device prompt; it runs without the
	// machine lock so digit entry stays responsive.
	res, err := v.Verify(ctx)
	if err != nil {
		return EventNone, err
	}

	if res != ResultSuccess {
		return EventNone, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// A digit entry may have settled the state while the prompt was open.
	if m.state != StateVerify {
		return EventNone, nil
	}

	m.input = ""
	m.state = StateUnlocked

	return EventUnlocked, nil
}
