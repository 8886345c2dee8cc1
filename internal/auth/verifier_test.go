package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnazuaff/LaporanKeuangan/internal/auth"
)

// scriptedVerifier plays back a fixed sequence of challenge results.
type scriptedVerifier struct {
	results []auth.Result
	calls   int
}

func (v *scriptedVerifier) Available() bool { return true }

func (v *scriptedVerifier) Verify(context.Context) (auth.Result, error) {
	res := v.results[v.calls]
	v.calls++

	return res, nil
}

func TestVerifyBiometric_SuccessUnlocks(t *testing.T) {
	m, err := auth.NewMachine(context.Background(), &fakeRepo{pin: "4321"})
	require.NoError(t, err)

	v := &scriptedVerifier{results: []auth.Result{auth.ResultSuccess}}
	ev, err := m.VerifyBiometric(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, auth.EventUnlocked, ev)
	assert.Equal(t, auth.StateUnlocked, m.State())
}

// Failure and cancellation are the same thing: stay locked, challenge
// again. Only an explicit success may open the gate.
func TestVerifyBiometric_FailureAndCancelStayLocked(t *testing.T) {
	m, err := auth.NewMachine(context.Background(), &fakeRepo{pin: "4321"})
	require.NoError(t, err)

	v := &scriptedVerifier{results: []auth.Result{auth.ResultFailure, auth.ResultCancelled, auth.ResultSuccess}}

	for range 2 {
		ev, err := m.VerifyBiometric(context.Background(), v)
		require.NoError(t, err)
		assert.Equal(t, auth.EventNone, ev)
		assert.Equal(t, auth.StateVerify, m.State())
	}

	ev, err := m.VerifyBiometric(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, auth.EventUnlocked, ev)
}

func TestVerifyBiometric_Unavailable(t *testing.T) {
	m, err := auth.NewMachine(context.Background(), &fakeRepo{pin: "4321"})
	require.NoError(t, err)

	_, err = m.VerifyBiometric(context.Background(), auth.Unavailable{})
	assert.ErrorIs(t, err, auth.ErrVerifierUnavailable)
	assert.Equal(t, auth.StateVerify, m.State())
}

func TestVerifyBiometric_OnlyDuringVerify(t *testing.T) {
	m, err := auth.NewMachine(context.Background(), &fakeRepo{})
	require.NoError(t, err)
	require.Equal(t, auth.StateSetup, m.State())

	v := &scriptedVerifier{results: []auth.Result{auth.ResultSuccess}}
	_, err = m.VerifyBiometric(context.Background(), v)
	assert.ErrorIs(t, err, auth.ErrNotVerifying)
}
