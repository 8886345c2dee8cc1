package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nnazuaff/LaporanKeuangan/internal/dateutil"
	"github.com/nnazuaff/LaporanKeuangan/internal/money"
	"github.com/nnazuaff/LaporanKeuangan/internal/storage"
	"github.com/nnazuaff/LaporanKeuangan/internal/transaction"
)

type addState int

const (
	addStateForm addState = iota
	addStateResult
)

// Categories offered when recording a transaction. Free text would make
// the report groupings useless, so the set is fixed.
var categories = []string{
	"Gaji", "Bonus", "Belanja", "Makan", "Transportasi",
	"Tagihan", "Hiburan", "Kesehatan", "Pendidikan", "Lainnya",
}

type AddModel struct {
	CommonModel
	txService *transaction.Service

	state addState
	form  *huh.Form
	err   error
	saved *transaction.Transaction
	warn  bool

	// Form bindings
	formDate     string
	formDesc     string
	formAmount   string
	formKind     transaction.Kind
	formCategory string
}

func NewAddModel(txSvc *transaction.Service) AddModel {
	m := AddModel{
		txService: txSvc,
		formDate:  dateutil.Today().String(),
		formKind:  transaction.KindExpense,
	}
	m.form = m.buildForm()

	return m
}

func (m AddModel) Title() string { return "Catat Transaksi" }

func (m AddModel) ShortHelp() string {
	if m.state == addStateResult {
		return "Enter: catat lagi | Esc: kembali"
	}
	return "Navigasi form | Esc: kembali"
}

func (m *AddModel) buildForm() *huh.Form {
	kindOptions := []huh.Option[transaction.Kind]{
		huh.NewOption("Pengeluaran", transaction.KindExpense),
		huh.NewOption("Pemasukan", transaction.KindIncome),
	}

	categoryOptions := make([]huh.Option[string], 0, len(categories))
	for _, c := range categories {
		categoryOptions = append(categoryOptions, huh.NewOption(c, c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("date").
				Title("Tanggal").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					_, err := dateutil.ParseDay(s)
					return err
				}),

			huh.NewInput().
				Key("description").
				Title("Keterangan").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("keterangan tidak boleh kosong")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Jumlah").
				Placeholder("500.000").
				Value(&m.formAmount).
				Validate(func(s string) error {
					cents, err := money.Parse(s)
					if err != nil {
						return err
					}
					if cents <= 0 {
						return fmt.Errorf("jumlah harus lebih dari nol")
					}
					return nil
				}),

			huh.NewSelect[transaction.Kind]().
				Key("kind").
				Title("Jenis").
				Options(kindOptions...).
				Value(&m.formKind),

			huh.NewSelect[string]().
				Key("category").
				Title("Kategori").
				Options(categoryOptions...).
				Value(&m.formCategory),
		),
	).WithWidth(48).WithShowHelp(false)
}

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case addDoneMsg:
		m.state = addStateResult
		m.saved = msg.tx
		m.err = msg.err
		m.warn = msg.err != nil && errors.Is(msg.err, storage.ErrPersist)
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil
	}

	if m.state == addStateResult {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.Type {
			case tea.KeyEsc:
				return m, Back
			case tea.KeyEnter:
				next := NewAddModel(m.txService)
				next.CommonModel = m.CommonModel
				return next, next.Init()
			}
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m AddModel) View() string {
	if m.state == addStateResult {
		return m.viewResult()
	}

	return lipgloss.NewStyle().Padding(1).Render(m.form.View())
}

func (m AddModel) viewResult() string {
	if m.err != nil && !m.warn {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Transaksi dicatat.")

	lines := []string{header}
	if m.saved != nil {
		lines = append(lines, "", fmt.Sprintf(
			"%s | %s | %s",
			FormatDay(m.saved.Date),
			m.saved.Description,
			money.FormatSigned(m.saved.Amount, m.saved.Kind == transaction.KindIncome),
		))
	}

	if m.warn {
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(lipgloss.Color("214")).
				Render("Peringatan: gagal menulis ke penyimpanan. Catatan hanya ada di sesi ini."),
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}

// Messages

type addDoneMsg struct {
	tx  *transaction.Transaction
	err error
}

func (m AddModel) saveCmd() tea.Cmd {
	day, err := dateutil.ParseDay(m.formDate)
	if err != nil {
		return func() tea.Msg { return addDoneMsg{err: err} }
	}

	cents, err := money.Parse(m.formAmount)
	if err != nil {
		return func() tea.Msg { return addDoneMsg{err: err} }
	}

	params := transaction.CreateParams{
		Date:        day,
		Description: m.formDesc,
		Amount:      cents,
		Kind:        m.formKind,
		Category:    m.formCategory,
	}

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		tx, err := m.txService.Add(ctx, params)
		return addDoneMsg{tx: tx, err: err}
	}
}
