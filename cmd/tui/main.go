package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/nnazuaff/LaporanKeuangan/cmd/tui/internal/view"
	"github.com/nnazuaff/LaporanKeuangan/internal/auth"
	authStore "github.com/nnazuaff/LaporanKeuangan/internal/auth/store"
	"github.com/nnazuaff/LaporanKeuangan/internal/backup"
	"github.com/nnazuaff/LaporanKeuangan/internal/balance"
	balanceStore "github.com/nnazuaff/LaporanKeuangan/internal/balance/store"
	"github.com/nnazuaff/LaporanKeuangan/internal/config"
	"github.com/nnazuaff/LaporanKeuangan/internal/prefs"
	"github.com/nnazuaff/LaporanKeuangan/internal/remind"
	"github.com/nnazuaff/LaporanKeuangan/internal/report"
	"github.com/nnazuaff/LaporanKeuangan/internal/storage"
	"github.com/nnazuaff/LaporanKeuangan/internal/transaction"
	txStore "github.com/nnazuaff/LaporanKeuangan/internal/transaction/store"
)

type model struct {
	txService      *transaction.Service
	balanceService *balance.Service
	backupService  *backup.Service
	remindService  *remind.Service
	prefsStore     *prefs.Store
	machine        *auth.Machine
	verifier       auth.Verifier
	deviceVerifier auth.Verifier
	wiper          auth.Wiper
	exportDir      string

	locked      bool
	currentView View

	lockView         view.LockModel
	transactionsView view.TransactionsModel
	addView          view.AddModel
	balancesView     view.BalancesModel
	reportView       view.ReportModel
	backupView       view.BackupModel
	settingsView     view.SettingsModel
}

type View int

const (
	ViewMenu         View = 0
	ViewTransactions View = 1
	ViewAdd          View = 2
	ViewBalances     View = 3
	ViewReport       View = 4
	ViewBackup       View = 5
	ViewSettings     View = 6
)

// appWiper destroys every store behind the PIN reset escape hatch.
type appWiper struct {
	txs      *txStore.Store
	balances *balanceStore.Store
	prefs    *prefs.Store
}

func (w appWiper) WipeAll(ctx context.Context) error {
	if err := w.txs.Wipe(ctx); err != nil {
		return err
	}

	if err := w.balances.Wipe(ctx); err != nil {
		return err
	}

	return w.prefs.Reset()
}

// prefGatedVerifier hides the device capability until the user opts in.
type prefGatedVerifier struct {
	inner auth.Verifier
	prefs *prefs.Store
}

func (v prefGatedVerifier) Available() bool {
	if !v.inner.Available() {
		return false
	}

	p, err := v.prefs.Load()
	if err != nil {
		return false
	}

	return p.BiometricEnabled
}

func (v prefGatedVerifier) Verify(ctx context.Context) (auth.Result, error) {
	return v.inner.Verify(ctx)
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	snapshots, err := storage.New(cfg.Data.Dir)
	if err != nil {
		slog.Error("failed to open data dir", "error", err, "dir", cfg.Data.Dir)
		os.Exit(1)
	}

	txRepo, err := txStore.New(snapshots)
	if err != nil {
		slog.Error("failed to load transactions", "error", err)
		os.Exit(1)
	}

	balRepo, err := balanceStore.New(snapshots)
	if err != nil {
		slog.Error("failed to load balances", "error", err)
		os.Exit(1)
	}

	prefsStore := prefs.New(snapshots)

	machine, err := auth.NewMachine(context.Background(), authStore.New(snapshots))
	if err != nil {
		slog.Error("failed to load pin", "error", err)
		os.Exit(1)
	}

	// Terminals have no biometric hardware; the lock screen only offers
	// the option when a platform build injects a real verifier. The lock
	// sees the pref-gated wrapper; settings gets the raw capability so
	// the opt-in toggle itself stays reachable.
	deviceVerifier := auth.Verifier(auth.Unavailable{})
	verifier := prefGatedVerifier{inner: deviceVerifier, prefs: prefsStore}
	wiper := appWiper{txs: txRepo, balances: balRepo, prefs: prefsStore}

	txSvc := transaction.NewService(txRepo)
	balSvc := balance.NewService(balRepo)
	backupSvc := backup.NewService(txRepo)
	remindSvc := remind.NewService(prefsStore, remind.Unavailable{})

	return model{
		txService:      txSvc,
		balanceService: balSvc,
		backupService:  backupSvc,
		remindService:  remindSvc,
		prefsStore:     prefsStore,
		machine:        machine,
		verifier:       verifier,
		deviceVerifier: deviceVerifier,
		wiper:          wiper,
		exportDir:      cfg.Data.ExportDir,

		locked:      true,
		currentView: ViewMenu,

		lockView:         view.NewLockModel(machine, verifier, wiper),
		transactionsView: view.NewTransactionsModel(txSvc, balSvc),
		addView:          view.NewAddModel(txSvc),
		balancesView:     view.NewBalancesModel(balSvc),
		reportView:       view.NewReportModel(txSvc, balSvc, report.Markdown{}, cfg.Data.ExportDir),
		backupView:       view.NewBackupModel(backupSvc, cfg.Data.ExportDir),
		settingsView:     view.NewSettingsModel(prefsStore, remindSvc, deviceVerifier),
	}
}

func (m model) Init() tea.Cmd {
	return m.lockView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case view.UnlockedMsg:
		m.locked = false
		m.currentView = ViewMenu
		return m, nil

	case view.ChangePINMsg:
		if err := m.machine.BeginChange(); err != nil {
			return m, nil
		}
		m.locked = true
		m.lockView = view.NewLockModel(m.machine, m.verifier, m.wiper)
		return m, m.lockView.Init()

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil

	case tea.KeyMsg:
		if !m.locked && m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.txService, m.balanceService)

				return m, m.transactionsView.Init()
			case "2":
				m.currentView = ViewAdd
				m.addView = view.NewAddModel(m.txService)

				return m, m.addView.Init()
			case "3":
				m.currentView = ViewBalances
				m.balancesView = view.NewBalancesModel(m.balanceService)

				return m, m.balancesView.Init()
			case "4":
				m.currentView = ViewReport
				m.reportView = view.NewReportModel(m.txService, m.balanceService, report.Markdown{}, m.exportDir)

				return m, m.reportView.Init()
			case "5":
				m.currentView = ViewBackup
				m.backupView = view.NewBackupModel(m.backupService, m.exportDir)

				return m, m.backupView.Init()
			case "6":
				m.currentView = ViewSettings
				m.settingsView = view.NewSettingsModel(m.prefsStore, m.remindService, m.deviceVerifier)

				return m, m.settingsView.Init()
			}
		}
	}

	if m.locked {
		var newModel tea.Model
		newModel, cmd = m.lockView.Update(msg)
		m.lockView = newModel.(view.LockModel)
		return m, cmd
	}

	switch m.currentView {
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewAdd:
		var newModel tea.Model
		newModel, cmd = m.addView.Update(msg)
		m.addView = newModel.(view.AddModel)
	case ViewBalances:
		var newModel tea.Model
		newModel, cmd = m.balancesView.Update(msg)
		m.balancesView = newModel.(view.BalancesModel)
	case ViewReport:
		var newModel tea.Model
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	case ViewBackup:
		var newModel tea.Model
		newModel, cmd = m.backupView.Update(msg)
		m.backupView = newModel.(view.BackupModel)
	case ViewSettings:
		var newModel tea.Model
		newModel, cmd = m.settingsView.Update(msg)
		m.settingsView = newModel.(view.SettingsModel)
	}

	return m, cmd
}

func (m model) View() string {
	if m.locked {
		return m.lockView.View()
	}

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Laporan Keuangan\n\n" +
				"1. Daftar Transaksi\n" +
				"2. Catat Transaksi\n" +
				"3. Sumber Saldo\n" +
				"4. Laporan\n" +
				"5. Cadangan Data\n" +
				"6. Pengaturan\n\n" +
				"q. Keluar",
		)
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewAdd:
		return m.addView.View()
	case ViewBalances:
		return m.balancesView.View()
	case ViewReport:
		return m.reportView.View()
	case ViewBackup:
		return m.backupView.View()
	case ViewSettings:
		return m.settingsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
