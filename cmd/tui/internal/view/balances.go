package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nnazuaff/LaporanKeuangan/internal/balance"
	"github.com/nnazuaff/LaporanKeuangan/internal/money"
)

type balancesState int

const (
	balancesStateBrowse balancesState = iota
	balancesStateForm
	balancesStateOverwrite
	balancesStateDelete
)

type BalancesModel struct {
	CommonModel
	balanceService *balance.Service

	state   balancesState
	table   table.Model
	sources []*balance.Source

	form    *huh.Form
	confirm bool

	loading bool
	err     error
	status  string

	// Form bindings
	formName   string
	formAmount string

	// Pending upsert retried with overwrite after confirmation.
	pendingName   string
	pendingAmount int64
}

func NewBalancesModel(balSvc *balance.Service) BalancesModel {
	columns := []table.Column{
		{Title: "Nama", Width: 24},
		{Title: "Saldo", Width: 20},
		{Title: "Diperbarui", Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return BalancesModel{
		balanceService: balSvc,
		table:          t,
		loading:        true,
	}
}

func (m BalancesModel) Title() string { return "Sumber Saldo" }

func (m BalancesModel) ShortHelp() string {
	switch m.state {
	case balancesStateBrowse:
		return "Esc: kembali | n: tambah | d: hapus | r: muat ulang"
	}
	return "Navigasi form | Esc: batal"
}

func (m BalancesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BalancesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sourcesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.sources = msg.sources
		m.refreshTable()
		return m, nil

	case upsertDoneMsg:
		return m.applyUpsert(msg)

	case sourceDeletedMsg:
		m.state = balancesStateBrowse
		m.form = nil
		m.table.Focus()
		if msg.err != nil {
			m.status = fmt.Sprintf("Gagal menghapus: %v", msg.err)
			return m, nil
		}
		m.status = "Sumber saldo dihapus."
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil
	}

	switch m.state {
	case balancesStateBrowse:
		return m.updateBrowse(msg)
	case balancesStateForm, balancesStateOverwrite, balancesStateDelete:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m BalancesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			m.formName = ""
			m.formAmount = ""
			m.form = m.buildSourceForm()
			m.state = balancesStateForm
			m.table.Blur()
			return m, m.form.Init()
		case "d":
			return m.enterDeleteMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BalancesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = balancesStateBrowse
			m.form = nil
			m.table.Focus()
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
	case balancesStateForm:
		amount, err := money.Parse(m.formAmount)
		if err != nil {
			m.status = fmt.Sprintf("Jumlah tidak valid: %v", err)
			m.state = balancesStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
		return m, m.upsertCmd(m.formName, amount, false)

	case balancesStateOverwrite:
		m.state = balancesStateBrowse
		m.form = nil
		m.table.Focus()
		if !m.confirm {
			m.status = "Dibatalkan. Saldo lama dipertahankan."
			return m, nil
		}
		return m, m.upsertCmd(m.pendingName, m.pendingAmount, true)

	case balancesStateDelete:
		m.state = balancesStateBrowse
		m.form = nil
		m.table.Focus()
		if !m.confirm {
			return m, nil
		}
		return m, m.deleteCmd()
	}

	return m, nil
}

func (m BalancesModel) applyUpsert(msg upsertDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil {
		m.state = balancesStateBrowse
		m.form = nil
		m.table.Focus()
		m.status = fmt.Sprintf("Saldo %q disimpan.", msg.source.Name)
		return m, m.loadCmd()
	}

	var taken *balance.NameTakenError
	if errors.As(msg.err, &taken) {
		m.pendingName = msg.name
		m.pendingAmount = msg.amount
		m.confirm = false
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Key("confirm").
					Title(fmt.Sprintf("%q sudah ada", taken.Existing.Name)).
					Description(fmt.Sprintf(
						"Saldo saat ini %s. Timpa dengan %s?",
						money.Format(taken.Existing.Amount),
						money.Format(msg.amount),
					)).
					Affirmative("Timpa").
					Negative("Batal").
					Value(&m.confirm),
			),
		).WithWidth(52).WithShowHelp(false)
		m.state = balancesStateOverwrite
		return m, m.form.Init()
	}

	m.state = balancesStateBrowse
	m.form = nil
	m.table.Focus()
	m.status = fmt.Sprintf("Gagal menyimpan: %v", msg.err)
	return m, nil
}

func (m BalancesModel) enterDeleteMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.sources) {
		return m, nil
	}

	src := m.sources[idx]
	m.confirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Hapus sumber saldo?").
				Description(fmt.Sprintf("%s | %s", src.Name, money.Format(src.Amount))).
				Affirmative("Hapus").
				Negative("Batal").
				Value(&m.confirm),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = balancesStateDelete
	m.table.Blur()
	return m, m.form.Init()
}

func (m BalancesModel) buildSourceForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Nama").
				Placeholder("Rekening BCA").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("nama tidak boleh kosong")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Saldo").
				Placeholder("1.500.000").
				Value(&m.formAmount).
				Validate(func(s string) error {
					cents, err := money.Parse(s)
					if err != nil {
						return err
					}
					if cents < 0 {
						return fmt.Errorf("saldo tidak boleh negatif")
					}
					return nil
				}),
		),
	).WithWidth(48).WithShowHelp(false)
}

func (m BalancesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Memuat sumber saldo...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	total := fmt.Sprintf("Total saldo manual: %s",
		lipgloss.NewStyle().Bold(true).Render(money.Format(balance.Total(m.sources))))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(total),
		tableView,
	)

	if m.state != balancesStateBrowse && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *BalancesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.sources))
	for _, src := range m.sources {
		rows = append(rows, table.Row{
			src.Name,
			money.Format(src.Amount),
			src.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// Messages

type sourcesLoadedMsg struct {
	sources []*balance.Source
	err     error
}

func (m BalancesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		sources, err := m.balanceService.List(ctx)
		return sourcesLoadedMsg{sources: sources, err: err}
	}
}

type upsertDoneMsg struct {
	source *balance.Source
	name   string
	amount int64
	err    error
}

func (m BalancesModel) upsertCmd(name string, amount int64, overwrite bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		src, err := m.balanceService.Upsert(ctx, name, amount, overwrite)
		return upsertDoneMsg{source: src, name: name, amount: amount, err: err}
	}
}

type sourceDeletedMsg struct {
	err error
}

func (m BalancesModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.sources) {
		return nil
	}

	id := m.sources[idx].ID

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return sourceDeletedMsg{err: m.balanceService.Delete(ctx, id)}
	}
}
