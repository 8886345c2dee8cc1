package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nnazuaff/LaporanKeuangan/internal/auth"
)

type lockState int

const (
	lockStatePIN lockState = iota
	lockStateResetConfirm
)

// LockModel is the PIN gate. Every screen behind it stays unreachable
// until the machine reports an unlock.
type LockModel struct {
	CommonModel
	machine  *auth.Machine
	verifier auth.Verifier
	wiper    auth.Wiper

	state   lockState
	form    *huh.Form
	confirm bool
	flash   string
	err     error
}

func NewLockModel(machine *auth.Machine, verifier auth.Verifier, wiper auth.Wiper) LockModel {
	return LockModel{
		machine:  machine,
		verifier: verifier,
		wiper:    wiper,
	}
}

func (m LockModel) Title() string { return "Kunci PIN" }

func (m LockModel) ShortHelp() string {
	if m.state == lockStateResetConfirm {
		return "Navigasi form | Esc: batal"
	}

	help := "0-9: masukkan PIN | Backspace: hapus"
	if m.machine.State() == auth.StateVerify {
		if m.verifier.Available() {
			help += " | b: biometrik"
		}
		help += " | r: reset"
	}

	return help
}

func (m LockModel) Init() tea.Cmd {
	if m.machine.State() == auth.StateVerify && m.verifier.Available() {
		return m.biometricCmd()
	}

	return nil
}

func (m LockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pinEventMsg:
		return m.applyEvent(msg)

	case resetDoneMsg:
		m.state = lockStatePIN
		m.form = nil
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.flash = "Semua data dihapus. Buat PIN baru."
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil
	}

	switch m.state {
	case lockStatePIN:
		return m.updatePIN(msg)
	case lockStateResetConfirm:
		return m.updateResetConfirm(msg)
	}

	return m, nil
}

func (m LockModel) updatePIN(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "backspace":
		m.machine.Backspace()
		return m, nil
	case "b":
		if m.machine.State() == auth.StateVerify && m.verifier.Available() {
			return m, m.biometricCmd()
		}
		return m, nil
	case "r":
		if m.machine.State() != auth.StateVerify {
			return m, nil
		}
		m.confirm = false
		m.form = m.buildResetForm()
		m.state = lockStateResetConfirm
		return m, m.form.Init()
	}

	runes := keyMsg.Runes
	if len(runes) != 1 || runes[0] < '0' || runes[0] > '9' {
		return m, nil
	}

	digit := runes[0]
	return m, func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		event, err := m.machine.Press(ctx, digit)
		return pinEventMsg{event: event, err: err}
	}
}

func (m LockModel) applyEvent(msg pinEventMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}

	m.err = nil

	switch msg.event {
	case auth.EventCommitted, auth.EventUnlocked:
		m.flash = ""
		return m, func() tea.Msg { return UnlockedMsg{} }
	case auth.EventMismatch:
		m.flash = "PIN tidak sama. Ulangi dari awal."
	case auth.EventWrongPIN:
		m.flash = "PIN salah. Coba lagi."
	case auth.EventOldAccepted:
		m.flash = "PIN lama diterima. Buat PIN baru."
	}

	return m, nil
}

func (m LockModel) updateResetConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = lockStatePIN
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !m.confirm {
		m.state = lockStatePIN
		m.form = nil
		return m, nil
	}

	return m, m.resetCmd()
}

func (m LockModel) buildResetForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Lupa PIN?").
				Description("Reset menghapus SEMUA transaksi, saldo, dan pengaturan. Tidak bisa dibatalkan.").
				Affirmative("Hapus semuanya").
				Negative("Batal").
				Value(&m.confirm),
		),
	).WithWidth(56).WithShowHelp(false)
}

func (m LockModel) View() string {
	if m.state == lockStateResetConfirm && m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}

	var prompt string
	switch m.machine.State() {
	case auth.StateSetup:
		prompt = "Buat PIN baru"
	case auth.StateConfirm:
		prompt = "Ulangi PIN baru"
	case auth.StateVerify:
		prompt = "Masukkan PIN"
	case auth.StateChange:
		prompt = "Masukkan PIN lama"
	case auth.StateUnlocked:
		prompt = "Terbuka"
	}

	dots := strings.Repeat("● ", m.machine.InputLen()) +
		strings.Repeat("○ ", auth.PINLength-m.machine.InputLen())

	content := fmt.Sprintf("%s\n\n  %s\n", prompt, strings.TrimRight(dots, " "))

	if m.flash != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(m.flash)
	}

	if m.err != nil {
		content += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// Messages

type pinEventMsg struct {
	event auth.Event
	err   error
}

type resetDoneMsg struct {
	err error
}

func (m LockModel) biometricCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		event, err := m.machine.VerifyBiometric(ctx, m.verifier)
		return pinEventMsg{event: event, err: err}
	}
}

func (m LockModel) resetCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return resetDoneMsg{err: m.machine.Reset(ctx, true, m.wiper)}
	}
}
