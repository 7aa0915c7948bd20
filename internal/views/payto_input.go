package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/btcterm/internal/completion"
	"rhystmorgan/btcterm/internal/payto"
)

const (
	payToMinHeight = 1
	payToMaxHeight = 6
)

// PayToModel is the recipient field. It grows with its content, keeps the
// editor classification current and offers address book completions.
type PayToModel struct {
	textarea textarea.Model
	editor   *payto.Editor
	provider completion.Provider
	popup    *CompletionPopupModel
	frozen   bool
}

func NewPayToModel(editor *payto.Editor, provider completion.Provider) *PayToModel {
	ta := textarea.New()
	ta.Placeholder = "address, Name <address>, or one 'address, amount' per line"
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(64)
	ta.SetHeight(payToMinHeight)

	return &PayToModel{
		textarea: ta,
		editor:   editor,
		provider: provider,
		popup:    NewCompletionPopupModel(),
	}
}

func (m *PayToModel) Editor() *payto.Editor {
	return m.editor
}

func (m *PayToModel) Popup() *CompletionPopupModel {
	return m.popup
}

func (m *PayToModel) Value() string {
	return m.textarea.Value()
}

// SetValue replaces the text and reclassifies it.
func (m *PayToModel) SetValue(text string) {
	m.textarea.SetValue(text)
	m.checkText()
}

func (m *PayToModel) SetFrozen(frozen bool) {
	m.frozen = frozen
	if frozen {
		m.popup.Hide()
	}
}

func (m *PayToModel) Frozen() bool {
	return m.frozen
}

func (m *PayToModel) SetWidth(width int) {
	m.textarea.SetWidth(width)
}

func (m *PayToModel) Height() int {
	return m.textarea.Height()
}

func (m *PayToModel) Focus() tea.Cmd {
	return m.textarea.Focus()
}

func (m *PayToModel) Blur() {
	m.textarea.Blur()
	m.popup.Hide()
}

func (m *PayToModel) Focused() bool {
	return m.textarea.Focused()
}

func (m *PayToModel) Update(msg tea.Msg) (*PayToModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	if !m.textarea.Focused() {
		return m, nil
	}

	if m.popup.IsVisible() {
		switch keyMsg.String() {
		case "enter":
			m.acceptCompletion()
			return m, nil
		case "up":
			m.popup.navigateUp()
			return m, nil
		case "down":
			m.popup.navigateDown()
			return m, nil
		case "esc":
			m.popup.Hide()
			return m, nil
		}
	}

	switch keyMsg.Type {
	case tea.KeyTab, tea.KeyShiftTab:
		return m, nil
	case tea.KeyUp, tea.KeyDown:
		if !m.editor.IsMultiline() {
			return m, nil
		}
	}

	if keyMsg.String() == "ctrl+e" {
		m.complete(true)
		return m, nil
	}

	if m.frozen {
		return m, nil
	}

	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(keyMsg)
	if m.textarea.Value() != before {
		m.checkText()
	}

	m.updatePopup(keyMsg)
	return m, cmd
}

func (m *PayToModel) checkText() {
	m.editor.SetText(m.textarea.Value())
	m.textarea.SetHeight(max(payToMinHeight, min(m.textarea.LineCount(), payToMaxHeight)))
}

// updatePopup decides after a keystroke whether completions stay open.
func (m *PayToModel) updatePopup(msg tea.KeyMsg) {
	if msg.Alt || (msg.Type != tea.KeyRunes && msg.Type != tea.KeyBackspace) {
		m.popup.Hide()
		return
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && completion.IsEndOfWord(msg.Runes[len(msg.Runes)-1]) {
		m.popup.Hide()
		return
	}

	m.complete(false)
}

// complete opens the popup for the word under the cursor. An empty word
// only opens it when forced.
func (m *PayToModel) complete(force bool) {
	if m.provider == nil || m.frozen {
		return
	}

	prefix, _ := completion.WordUnderCursor(m.textarea.Value(), m.cursorOffset())
	if prefix == "" && !force {
		m.popup.Hide()
		return
	}

	m.popup.Show(prefix, m.provider.Completions(prefix))
}

func (m *PayToModel) acceptCompletion() {
	selected := m.popup.Selected()
	m.popup.Hide()
	if selected == "" {
		return
	}

	text, cursor := completion.Insert(m.textarea.Value(), m.cursorOffset(), selected)
	m.setValueWithCursor(text, cursor)
	m.checkText()
}

// cursorOffset returns the cursor position as a rune offset into Value.
func (m *PayToModel) cursorOffset() int {
	lines := strings.Split(m.textarea.Value(), "\n")
	row := m.textarea.Line()

	offset := 0
	for i := 0; i < row && i < len(lines); i++ {
		offset += len([]rune(lines[i])) + 1
	}

	info := m.textarea.LineInfo()
	return offset + info.StartColumn + info.ColumnOffset
}

func (m *PayToModel) setValueWithCursor(text string, offset int) {
	row, col := 0, offset
	for _, line := range strings.Split(text, "\n") {
		n := len([]rune(line))
		if col <= n {
			break
		}
		col -= n + 1
		row++
	}

	// SetValue leaves the cursor on the last line.
	m.textarea.SetValue(text)
	for steps := len(text) + 1; m.textarea.Line() > row && steps > 0; steps-- {
		m.textarea.CursorUp()
	}
	m.textarea.SetCursor(col)
}

func (m *PayToModel) View() string {
	style := fieldStyle
	switch {
	case m.frozen:
		style = frozenFieldStyle
	case m.textarea.Focused():
		style = focusedFieldStyle
	}

	field := style.Render(m.textarea.View())
	if !m.popup.IsVisible() {
		return field
	}
	return lipgloss.JoinVertical(lipgloss.Left, field, m.popup.View())
}
