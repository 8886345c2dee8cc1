package view

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnazuaff/LaporanKeuangan/internal/auth"
	"github.com/nnazuaff/LaporanKeuangan/internal/prefs"
	"github.com/nnazuaff/LaporanKeuangan/internal/remind"
	"github.com/nnazuaff/LaporanKeuangan/internal/storage"
)

// deviceVerifier is a stand-in for a platform biometric capability.
type deviceVerifier struct {
	available bool
}

func (v deviceVerifier) Available() bool { return v.available }

func (v deviceVerifier) Verify(context.Context) (auth.Result, error) {
	return auth.ResultSuccess, nil
}

func newSettings(t *testing.T, v auth.Verifier) (SettingsModel, *prefs.Store) {
	t.Helper()

	snapshots, err := storage.New(t.TempDir())
	require.NoError(t, err)

	store := prefs.New(snapshots)
	m := NewSettingsModel(store, remind.NewService(store, remind.Unavailable{}), v)

	// Run the initial load the program loop would.
	model, _ := m.Update(m.loadCmd()())
	return model.(SettingsModel), store
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestSettingsBiometricToggleOptIn(t *testing.T) {
	// The toggle must work while the preference is still off; the raw
	// device capability decides availability, not the current opt-in.
	m, store := newSettings(t, deviceVerifier{available: true})

	model, cmd := m.Update(keyPress('b'))
	m = model.(SettingsModel)
	require.NotNil(t, cmd)

	// Saved message triggers a reload of the current preferences.
	model, reload := m.Update(cmd())
	m = model.(SettingsModel)
	require.NotNil(t, reload)
	model, _ = m.Update(reload())
	m = model.(SettingsModel)

	p, err := store.Load()
	require.NoError(t, err)
	assert.True(t, p.BiometricEnabled)

	// Second press toggles it back off.
	model, cmd = m.Update(keyPress('b'))
	m = model.(SettingsModel)
	require.NotNil(t, cmd)
	m.Update(cmd())

	p, err = store.Load()
	require.NoError(t, err)
	assert.False(t, p.BiometricEnabled)
}

func TestSettingsBiometricToggleWithoutDevice(t *testing.T) {
	m, store := newSettings(t, auth.Unavailable{})

	model, _ := m.Update(keyPress('b'))
	m = model.(SettingsModel)
	assert.Contains(t, m.View(), "tidak tersedia")

	p, err := store.Load()
	require.NoError(t, err)
	assert.False(t, p.BiometricEnabled)
}
