package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nnazuaff/LaporanKeuangan/internal/balance"
	"github.com/nnazuaff/LaporanKeuangan/internal/dateutil"
	"github.com/nnazuaff/LaporanKeuangan/internal/report"
	"github.com/nnazuaff/LaporanKeuangan/internal/transaction"
)

type transactionsState int

const (
	transactionsStateBrowse transactionsState = iota
	transactionsStatePeriod
	transactionsStateDelete
)

type TransactionsModel struct {
	CommonModel
	txService      *transaction.Service
	balanceService *balance.Service

	state transactionsState
	table table.Model

	txs     []*transaction.Transaction
	view    []*transaction.Transaction
	summary report.Summary

	kindFilterIdx int
	filter        transaction.Filter
	periodPicker  PeriodPicker

	form    *huh.Form
	confirm bool

	loading bool
	err     error
	status  string
}

func NewTransactionsModel(txSvc *transaction.Service, balSvc *balance.Service) TransactionsModel {
	columns := []table.Column{
		{Title: "Tanggal", Width: 14},
		{Title: "Jenis", Width: 12},
		{Title: "Jumlah", Width: 18},
		{Title: "Keterangan", Width: 32},
		{Title: "Kategori", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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

	return TransactionsModel{
		txService:      txSvc,
		balanceService: balSvc,
		table:          t,
		periodPicker:   NewPeriodPicker(),
		loading:        true,
	}
}

func (m TransactionsModel) Title() string { return "Daftar Transaksi" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case transactionsStatePeriod:
		return "Pilih periode | Esc: batal"
	case transactionsStateDelete:
		return "Navigasi form | Esc: batal"
	}
	return "Esc: kembali | j: jenis | p: periode | d: hapus | r: muat ulang"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.txs = msg.txs
		m.summary = report.Summarize(msg.txs, msg.sources)
		m.refreshTable()
		return m, nil

	case PeriodSelectedMsg:
		m.filter.Period = msg.Period
		m.filter.Start = msg.Start
		m.filter.End = msg.End
		m.state = transactionsStateBrowse
		m.table.Focus()
		m.refreshTable()
		return m, nil

	case deleteDoneMsg:
		m.state = transactionsStateBrowse
		m.form = nil
		m.table.Focus()
		if msg.err != nil {
			m.status = fmt.Sprintf("Gagal menghapus: %v", msg.err)
			return m, nil
		}
		m.status = "Transaksi dihapus."
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.table.SetHeight(tableHeight(msg.Height))
		return m, nil
	}

	switch m.state {
	case transactionsStateBrowse:
		return m.updateBrowse(msg)
	case transactionsStatePeriod:
		return m.updatePeriod(msg)
	case transactionsStateDelete:
		return m.updateDelete(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "j":
			m.kindFilterIdx = (m.kindFilterIdx + 1) % 3
			m.applyKindFilter()
			m.refreshTable()
			return m, nil
		case "p":
			m.state = transactionsStatePeriod
			m.periodPicker.Reset()
			m.table.Blur()
			return m, nil
		case "d":
			return m.enterDeleteMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m TransactionsModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.periodPicker.IsSelecting() {
			m.state = transactionsStateBrowse
			m.table.Focus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.periodPicker, cmd = m.periodPicker.Update(msg)
	return m, cmd
}

func (m TransactionsModel) enterDeleteMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.view) {
		return m, nil
	}

	tx := m.view[idx]
	m.confirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Hapus transaksi?").
				Description(fmt.Sprintf("%s | %s", tx.Description, FormatAmount(tx.Amount))).
				Affirmative("Hapus").
				Negative("Batal").
				Value(&m.confirm),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = transactionsStateDelete
	m.table.Blur()
	return m, m.form.Init()
}

func (m TransactionsModel) updateDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = transactionsStateBrowse
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

	if !m.confirm {
		m.state = transactionsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	return m, m.deleteCmd()
}

func (m TransactionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Memuat transaksi...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == transactionsStatePeriod {
		return lipgloss.NewStyle().Padding(1).Render(m.periodPicker.View())
	}

	summary := fmt.Sprintf(
		"Pemasukan: %s | Pengeluaran: %s | Saldo: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(FormatAmount(m.summary.Income)),
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(FormatAmount(m.summary.Expense)),
		lipgloss.NewStyle().Bold(true).Render(FormatAmount(m.summary.Balance)),
	)

	kindLabels := []string{"Semua", "Pemasukan", "Pengeluaran"}
	header := fmt.Sprintf(
		"Filter: [j] Jenis: %s | [p] Periode: %s",
		activeStyle(kindLabels[m.kindFilterIdx]),
		activeStyle(m.filter.Period.String()),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(summary),
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == transactionsStateDelete && m.form != nil {
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

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

// tableHeight fits the table under the summary and filter chrome, never
// collapsing below one row on short terminals.
func tableHeight(total int) int {
	return max(1, total-12)
}

func (m *TransactionsModel) applyKindFilter() {
	switch m.kindFilterIdx {
	case 1:
		kind := transaction.KindIncome
		m.filter.Kind = &kind
	case 2:
		kind := transaction.KindExpense
		m.filter.Kind = &kind
	default:
		m.filter.Kind = nil
	}
}

func (m *TransactionsModel) refreshTable() {
	today := dateutil.Today()
	m.view = transaction.FilterView(m.txs, m.filter, today)

	rows := make([]table.Row, 0, len(m.view))
	for _, tx := range m.view {
		rows = append(rows, table.Row{
			FormatDay(tx.Date),
			tx.Kind.Label(),
			FormatAmount(tx.Amount),
			tx.Description,
			tx.Category,
		})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// Messages

type ledgerLoadedMsg struct {
	txs     []*transaction.Transaction
	sources []*balance.Source
	err     error
}

func (m TransactionsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		txs, err := m.txService.List(ctx)
		if err != nil {
			return ledgerLoadedMsg{err: err}
		}

		sources, err := m.balanceService.List(ctx)
		if err != nil {
			return ledgerLoadedMsg{err: err}
		}

		return ledgerLoadedMsg{txs: txs, sources: sources}
	}
}

type deleteDoneMsg struct {
	err error
}

func (m TransactionsModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.view) {
		return nil
	}

	id := m.view[idx].ID

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return deleteDoneMsg{err: m.txService.Delete(ctx, id)}
	}
}
