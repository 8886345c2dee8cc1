package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nnazuaff/LaporanKeuangan/internal/auth"
	"github.com/nnazuaff/LaporanKeuangan/internal/prefs"
	"github.com/nnazuaff/LaporanKeuangan/internal/remind"
)

// ChangePINMsg asks the root model to route back through the PIN gate in
// change mode.
type ChangePINMsg struct{}

type settingsState int

const (
	settingsStateMenu settingsState = iota
	settingsStateReminder
)

type SettingsModel struct {
	CommonModel
	prefsStore    *prefs.Store
	remindService *remind.Service
	verifier      auth.Verifier

	state settingsState
	form  *huh.Form

	current prefs.Prefs
	loaded  bool
	err     error
	status  string

	formEnabled bool
	formAt      string
}

func NewSettingsModel(p *prefs.Store, r *remind.Service, v auth.Verifier) SettingsModel {
	return SettingsModel{
		prefsStore:    p,
		remindService: r,
		verifier:      v,
	}
}

func (m SettingsModel) Title() string { return "Pengaturan" }

func (m SettingsModel) ShortHelp() string {
	if m.state == settingsStateReminder {
		return "Navigasi form | Esc: batal"
	}

	help := "w: pengingat | p: ganti PIN | Esc: kembali"
	if m.verifier.Available() {
		help = "b: biometrik | " + help
	}

	return help
}

func (m SettingsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case prefsLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.current = msg.prefs
		return m, nil

	case prefsSavedMsg:
		m.state = settingsStateMenu
		m.form = nil
		if msg.err != nil {
			m.status = fmt.Sprintf("Gagal menyimpan: %v", msg.err)
			return m, nil
		}
		m.status = "Pengaturan disimpan."
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil
	}

	switch m.state {
	case settingsStateMenu:
		return m.updateMenu(msg)
	case settingsStateReminder:
		return m.updateReminder(msg)
	}

	return m, nil
}

func (m SettingsModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "b":
		if !m.verifier.Available() {
			m.status = "Perangkat ini tidak punya biometrik."
			return m, nil
		}
		return m, m.toggleBiometricCmd(!m.current.BiometricEnabled)
	case "w":
		m.formEnabled = m.current.ReminderEnabled
		m.formAt = m.current.ReminderAt
		if m.formAt == "" {
			m.formAt = "20:00"
		}
		m.form = m.buildReminderForm()
		m.state = settingsStateReminder
		return m, m.form.Init()
	case "p":
		return m, func() tea.Msg { return ChangePINMsg{} }
	}

	return m, nil
}

func (m SettingsModel) updateReminder(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = settingsStateMenu
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

	return m, m.applyReminderCmd(m.formEnabled, m.formAt)
}

func (m SettingsModel) buildReminderForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("enabled").
				Title("Pengingat harian").
				Description("Ingatkan untuk mencatat transaksi setiap hari").
				Affirmative("Aktif").
				Negative("Nonaktif").
				Value(&m.formEnabled),

			huh.NewInput().
				Key("at").
				Title("Jam pengingat").
				Placeholder("20:00").
				Value(&m.formAt).
				Validate(func(s string) error {
					_, _, err := remind.ParseTimeOfDay(s)
					return err
				}),
		),
	).WithWidth(48).WithShowHelp(false)
}

func (m SettingsModel) View() string {
	if !m.loaded {
		return lipgloss.NewStyle().Padding(2).Render("Memuat pengaturan...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == settingsStateReminder && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	onOff := func(b bool) string {
		if b {
			return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render("aktif")
		}
		return lipgloss.NewStyle().Faint(true).Render("nonaktif")
	}

	biometric := "tidak tersedia"
	if m.verifier.Available() {
		biometric = onOff(m.current.BiometricEnabled)
	}

	reminder := onOff(m.current.ReminderEnabled)
	if m.current.ReminderEnabled && m.current.ReminderAt != "" {
		reminder += " (" + m.current.ReminderAt + ")"
	}

	content := fmt.Sprintf(
		"Pengaturan\n\n"+
			"[b] Buka dengan biometrik: %s\n"+
			"[w] Pengingat harian:      %s\n"+
			"[p] Ganti PIN\n",
		biometric,
		reminder,
	)

	if m.status != "" {
		content += "\n" + lipgloss.NewStyle().Faint(true).Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// Messages

type prefsLoadedMsg struct {
	prefs prefs.Prefs
	err   error
}

func (m SettingsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		p, err := m.prefsStore.Load()
		return prefsLoadedMsg{prefs: p, err: err}
	}
}

type prefsSavedMsg struct {
	err error
}

func (m SettingsModel) toggleBiometricCmd(enabled bool) tea.Cmd {
	return func() tea.Msg {
		p, err := m.prefsStore.Load()
		if err != nil {
			return prefsSavedMsg{err: err}
		}

		p.BiometricEnabled = enabled
		return prefsSavedMsg{err: m.prefsStore.Save(p)}
	}
}

func (m SettingsModel) applyReminderCmd(enabled bool, at string) tea.Cmd {
	return func() tea.Msg {
		return prefsSavedMsg{err: m.remindService.Apply(enabled, at)}
	}
}
