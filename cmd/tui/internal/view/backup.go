package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nnazuaff/LaporanKeuangan/internal/backup"
	"github.com/nnazuaff/LaporanKeuangan/internal/dateutil"
)

type backupState int

const (
	backupStateMenu backupState = iota
	backupStateExport
	backupStateImport
	backupStateResult
)

type BackupModel struct {
	CommonModel
	backupService *backup.Service

	state backupState
	form  *huh.Form
	err   error
	done  string

	formDir     string
	formPath    string
	formReplace bool

	exportDir string
}

func NewBackupModel(svc *backup.Service, exportDir string) BackupModel {
	return BackupModel{
		backupService: svc,
		exportDir:     exportDir,
	}
}

func (m BackupModel) Title() string { return "Cadangan Data" }

func (m BackupModel) ShortHelp() string {
	switch m.state {
	case backupStateMenu:
		return "e: ekspor | i: impor | Esc: kembali"
	case backupStateResult:
		return "Esc: kembali"
	}
	return "Navigasi form | Esc: batal"
}

func (m BackupModel) Init() tea.Cmd {
	return nil
}

func (m BackupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case backupDoneMsg:
		m.state = backupStateResult
		m.form = nil
		m.err = msg.err
		m.done = msg.summary
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil
	}

	switch m.state {
	case backupStateMenu:
		return m.updateMenu(msg)
	case backupStateExport, backupStateImport:
		return m.updateForm(msg)
	case backupStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m BackupModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "e":
		m.formDir = m.exportDir
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Key("dir").
					Title("Folder tujuan").
					Description("Folder dibuat bila belum ada").
					Placeholder("./exports").
					Value(&m.formDir),
			),
		).WithWidth(50).WithShowHelp(false)
		m.state = backupStateExport
		return m, m.form.Init()
	case "i":
		m.formPath = ""
		m.formReplace = false
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Key("path").
					Title("Berkas cadangan").
					Placeholder("laporan-keuangan-2024-01-15.json").
					Value(&m.formPath),

				huh.NewConfirm().
					Key("replace").
					Title("Ganti seluruh data?").
					Description("Impor menimpa semua transaksi yang ada.").
					Affirmative("Ganti").
					Negative("Batal").
					Value(&m.formReplace),
			),
		).WithWidth(54).WithShowHelp(false)
		m.state = backupStateImport
		return m, m.form.Init()
	}

	return m, nil
}

func (m BackupModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = backupStateMenu
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

	switch m.state {
	case backupStateExport:
		return m, m.exportCmd(m.formDir)
	case backupStateImport:
		if !m.formReplace {
			m.state = backupStateMenu
			m.form = nil
			return m, nil
		}
		return m, m.importCmd(m.formPath)
	}

	return m, nil
}

func (m BackupModel) View() string {
	switch m.state {
	case backupStateMenu:
		return lipgloss.NewStyle().Padding(1, 2).Render(
			"Cadangan Data\n\n" +
				"e. Ekspor semua transaksi ke berkas JSON\n" +
				"i. Impor transaksi dari berkas JSON\n",
		)

	case backupStateExport, backupStateImport:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case backupStateResult:
		return m.viewResult()
	}

	return ""
}

func (m BackupModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Selesai.")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", m.done),
	)
}

// Messages

type backupDoneMsg struct {
	summary string
	err     error
}

func (m BackupModel) exportCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		path, err := m.backupService.ExportToFile(ctx, dir, dateutil.Today())
		if err != nil {
			return backupDoneMsg{err: err}
		}

		return backupDoneMsg{summary: fmt.Sprintf("Cadangan ditulis ke %s", path)}
	}
}

func (m BackupModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		n, err := m.backupService.ImportFromFile(ctx, path)
		if err != nil {
			return backupDoneMsg{err: err}
		}

		return backupDoneMsg{summary: fmt.Sprintf("%d transaksi diimpor.", n)}
	}
}
