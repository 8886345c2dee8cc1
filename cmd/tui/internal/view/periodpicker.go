package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nnazuaff/LaporanKeuangan/internal/dateutil"
	"github.com/nnazuaff/LaporanKeuangan/internal/transaction"
)

// PeriodSelectedMsg is emitted when the user has picked a period. Start and
// End are set only for the custom range.
type PeriodSelectedMsg struct {
	Period transaction.Period
	Start  *dateutil.Day
	End    *dateutil.Day
}

type pickerState int

const (
	pickerStateSelect pickerState = iota
	pickerStateCustom
)

// PeriodPicker is a reusable component for selecting a ledger period.
type PeriodPicker struct {
	state    pickerState
	selected transaction.Period

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewPeriodPicker() PeriodPicker {
	si := textinput.New()
	si.Placeholder = "YYYY-MM-DD"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Dari:   "

	ei := textinput.New()
	ei.Placeholder = "YYYY-MM-DD"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "Sampai: "

	return PeriodPicker{
		state:      pickerStateSelect,
		selected:   transaction.PeriodAll,
		startInput: si,
		endInput:   ei,
	}
}

func (m PeriodPicker) Init() tea.Cmd {
	return nil
}

func (m PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case pickerStateSelect:
			return m.updateSelect(keyMsg)
		case pickerStateCustom:
			return m.updateCustom(keyMsg)
		}
	}

	if m.state == pickerStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m PeriodPicker) updateSelect(msg tea.KeyMsg) (PeriodPicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > transaction.PeriodAll {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < transaction.PeriodCustom {
			m.selected++
		}
	case tea.KeyEnter:
		if m.selected == transaction.PeriodCustom {
			m.state = pickerStateCustom
			m.startInput.Focus()
			m.focusIndex = 0
			return m, textinput.Blink
		}

		period := m.selected
		return m, func() tea.Msg {
			return PeriodSelectedMsg{Period: period}
		}
	}

	return m, nil
}

func (m PeriodPicker) updateCustom(msg tea.KeyMsg) (PeriodPicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()
		if m.focusIndex == 0 {
			m.startInput.Focus()
			return m, textinput.Blink
		}
		m.endInput.Focus()
		return m, textinput.Blink

	case "enter":
		start, err := dateutil.ParseDay(m.startInput.Value())
		if err != nil {
			m.err = fmt.Errorf("tanggal awal tidak valid (YYYY-MM-DD)")
			return m, nil
		}

		end, err := dateutil.ParseDay(m.endInput.Value())
		if err != nil {
			m.err = fmt.Errorf("tanggal akhir tidak valid (YYYY-MM-DD)")
			return m, nil
		}

		if end.Before(start) {
			m.err = fmt.Errorf("tanggal akhir sebelum tanggal awal")
			return m, nil
		}

		m.err = nil
		return m, func() tea.Msg {
			return PeriodSelectedMsg{
				Period: transaction.PeriodCustom,
				Start:  &start,
				End:    &end,
			}
		}

	case "esc":
		m.state = pickerStateSelect
		m.err = nil
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m PeriodPicker) updateInputs(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	var cmds []tea.Cmd
	var c tea.Cmd

	m.startInput, c = m.startInput.Update(msg)
	cmds = append(cmds, c)
	m.endInput, c = m.endInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func (m PeriodPicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == pickerStateCustom {
		return fmt.Sprintf(
			"Rentang Tanggal:\n\n%s\n%s\n\n(Enter untuk konfirmasi, Tab untuk pindah, Esc untuk kembali)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	s := "Pilih Periode:\n\n"
	for p := transaction.PeriodAll; p <= transaction.PeriodCustom; p++ {
		cursor := " "
		if m.selected == p {
			cursor = ">"
		}
		s += fmt.Sprintf("%s %s\n", cursor, p.String())
	}
	s += "\n(Enter untuk memilih, Esc untuk kembali)"

	return s + errStr
}

// IsSelecting reports whether the picker is in the selection state.
func (m PeriodPicker) IsSelecting() bool {
	return m.state == pickerStateSelect
}

// Reset returns the picker to its initial selection state.
func (m *PeriodPicker) Reset() {
	m.state = pickerStateSelect
	m.selected = transaction.PeriodAll
	m.err = nil
	m.startInput.SetValue("")
	m.endInput.SetValue("")
}
