package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/btcterm/internal/amount"
)

// AmountShortcutMsg is sent when "!" is typed into an amount field, asking
// for the whole spendable balance.
type AmountShortcutMsg struct{}

// AmountInputModel is a single-line amount field. Its text is sanitized
// after every edit and the unit label is drawn to the right of the value.
type AmountInputModel struct {
	input       textinput.Model
	unit        amount.Unit
	integerMode bool
	frozen      bool
	shortcut    bool
}

func NewAmountInputModel(unit amount.Unit) *AmountInputModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "0.0"
	ti.CharLimit = 32
	ti.Width = 24

	return &AmountInputModel{
		input: ti,
		unit:  unit,
	}
}

// SetUnit switches the display unit, keeping the entered value.
func (m *AmountInputModel) SetUnit(unit amount.Unit) {
	value, ok, err := m.Amount()
	m.unit = unit
	if ok && err == nil {
		m.SetAmount(value)
	}
}

func (m *AmountInputModel) Unit() amount.Unit {
	return m.unit
}

// SetIntegerMode restricts the field to whole numbers.
func (m *AmountInputModel) SetIntegerMode(integer bool) {
	m.integerMode = integer
	m.numbify()
}

func (m *AmountInputModel) SetAmount(minorUnits int64) {
	m.input.SetValue(m.unit.ToDisplayText(minorUnits))
	m.input.CursorEnd()
}

func (m *AmountInputModel) Clear() {
	m.input.SetValue("")
	m.shortcut = false
}

// SetFrozen makes the field read-only. A frozen field gives up focus.
func (m *AmountInputModel) SetFrozen(frozen bool) {
	m.frozen = frozen
	if frozen {
		m.input.Blur()
	}
}

func (m *AmountInputModel) Frozen() bool {
	return m.frozen
}

func (m *AmountInputModel) Amount() (int64, bool, error) {
	return m.unit.ToMinorUnits(m.input.Value())
}

// IsShortcut reports whether "!" has been typed since the last Clear.
func (m *AmountInputModel) IsShortcut() bool {
	return m.shortcut
}

func (m *AmountInputModel) Value() string {
	return m.input.Value()
}

// SetValue replaces the text as if it had been typed.
func (m *AmountInputModel) SetValue(raw string) tea.Cmd {
	m.input.SetValue(raw)
	return m.numbify()
}

func (m *AmountInputModel) Focus() tea.Cmd {
	if m.frozen {
		return nil
	}
	return m.input.Focus()
}

func (m *AmountInputModel) Blur() {
	m.input.Blur()
}

func (m *AmountInputModel) Focused() bool {
	return m.input.Focused()
}

func (m *AmountInputModel) Update(msg tea.Msg) (*AmountInputModel, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok && m.frozen {
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	return m, tea.Batch(cmd, m.numbify())
}

// numbify strips everything that is not part of an amount and puts the
// cursor back where it was, clamped to the new text.
func (m *AmountInputModel) numbify() tea.Cmd {
	raw := m.input.Value()
	pos := m.input.Position()

	var cmd tea.Cmd
	if strings.TrimSpace(raw) == "!" {
		m.shortcut = true
		cmd = func() tea.Msg { return AmountShortcutMsg{} }
	}

	clean := amount.Sanitize(raw, m.integerMode)
	if clean != raw {
		m.input.SetValue(clean)
		m.input.SetCursor(min(pos, len([]rune(clean))))
	}

	return cmd
}

func (m *AmountInputModel) View() string {
	style := fieldStyle
	switch {
	case m.frozen:
		style = frozenFieldStyle
	case m.input.Focused():
		style = focusedFieldStyle
	}

	value := lipgloss.NewStyle().Width(m.input.Width + 1).Render(m.input.View())
	return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, value, unitLabelStyle.Render(m.unit.Label())))
}
