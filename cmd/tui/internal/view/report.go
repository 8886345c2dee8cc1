package view

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nnazuaff/LaporanKeuangan/internal/balance"
	"github.com/nnazuaff/LaporanKeuangan/internal/dateutil"
	"github.com/nnazuaff/LaporanKeuangan/internal/report"
	"github.com/nnazuaff/LaporanKeuangan/internal/transaction"
)

type reportState int

const (
	reportStatePeriod reportState = iota
	reportStateGenerating
	reportStatePreview
	reportStateSave
)

type ReportModel struct {
	CommonModel
	txService      *transaction.Service
	balanceService *balance.Service
	generator      report.Generator

	state        reportState
	periodPicker PeriodPicker
	spinner      spinner.Model

	filter   transaction.Filter
	markdown []byte
	rendered string

	form    *huh.Form
	formDir string

	exportDir string
	err       error
	status    string
}

func NewReportModel(txSvc *transaction.Service, balSvc *balance.Service, gen report.Generator, exportDir string) ReportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ReportModel{
		txService:      txSvc,
		balanceService: balSvc,
		generator:      gen,
		periodPicker:   NewPeriodPicker(),
		spinner:        s,
		exportDir:      exportDir,
	}
}

func (m ReportModel) Title() string { return "Laporan" }

func (m ReportModel) ShortHelp() string {
	switch m.state {
	case reportStatePreview:
		return "s: simpan | p: periode lain | Esc: kembali"
	case reportStateSave:
		return "Navigasi form | Esc: batal"
	}
	return "Pilih periode | Esc: kembali"
}

func (m ReportModel) Init() tea.Cmd {
	return nil
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PeriodSelectedMsg:
		m.filter = transaction.Filter{
			Period: msg.Period,
			Start:  msg.Start,
			End:    msg.End,
		}
		m.state = reportStateGenerating
		return m, tea.Batch(m.spinner.Tick, m.generateCmd())

	case reportReadyMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.markdown = msg.markdown
		m.rendered = msg.rendered
		m.state = reportStatePreview
		return m, nil

	case reportSavedMsg:
		m.state = reportStatePreview
		m.form = nil
		if msg.err != nil {
			m.status = fmt.Sprintf("Gagal menyimpan: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Laporan disimpan ke %s", msg.path)
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil
	}

	switch m.state {
	case reportStatePeriod:
		return m.updatePeriod(msg)
	case reportStateGenerating:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case reportStatePreview:
		return m.updatePreview(msg)
	case reportStateSave:
		return m.updateSave(msg)
	}

	return m, nil
}

func (m ReportModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.periodPicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.periodPicker, cmd = m.periodPicker.Update(msg)
	return m, cmd
}

func (m ReportModel) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "p":
		m.state = reportStatePeriod
		m.periodPicker.Reset()
		m.status = ""
		return m, nil
	case "s":
		m.formDir = m.exportDir
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Key("dir").
					Title("Folder tujuan").
					Placeholder("./exports").
					Value(&m.formDir),
			),
		).WithWidth(50).WithShowHelp(false)
		m.state = reportStateSave
		return m, m.form.Init()
	}

	return m, nil
}

func (m ReportModel) updateSave(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = reportStatePreview
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

	return m, m.saveCmd(m.formDir)
}

func (m ReportModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	switch m.state {
	case reportStatePeriod:
		return lipgloss.NewStyle().Padding(1).Render(m.periodPicker.View())

	case reportStateGenerating:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Menyusun laporan...", m.spinner.View()),
		)

	case reportStateSave:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case reportStatePreview:
		content := m.rendered
		if m.status != "" {
			content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
		}
		return content
	}

	return ""
}

// Messages

type reportReadyMsg struct {
	markdown []byte
	rendered string
	err      error
}

func (m ReportModel) generateCmd() tea.Cmd {
	filter := m.filter
	width := m.Width
	if width <= 0 {
		width = 100
	}

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		txs, err := m.txService.List(ctx)
		if err != nil {
			return reportReadyMsg{err: err}
		}

		sources, err := m.balanceService.List(ctx)
		if err != nil {
			return reportReadyMsg{err: err}
		}

		in := report.Input{
			View:    transaction.FilterView(txs, filter, dateutil.Today()),
			Summary: report.Summarize(txs, sources),
			Sources: sources,
			Filter:  filter,
		}

		md, err := m.generator.Generate(ctx, in)
		if err != nil {
			return reportReadyMsg{err: err}
		}

		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return reportReadyMsg{err: err}
		}

		rendered, err := renderer.Render(string(md))
		if err != nil {
			return reportReadyMsg{err: err}
		}

		return reportReadyMsg{markdown: md, rendered: rendered}
	}
}

type reportSavedMsg struct {
	path string
	err  error
}

func (m ReportModel) saveCmd(dir string) tea.Cmd {
	md := m.markdown

	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return reportSavedMsg{err: err}
		}

		path := filepath.Join(dir, fmt.Sprintf("laporan-%s.md", dateutil.Today()))
		if err := os.WriteFile(path, md, 0o644); err != nil {
			return reportSavedMsg{err: err}
		}

		return reportSavedMsg{path: path}
	}
}
