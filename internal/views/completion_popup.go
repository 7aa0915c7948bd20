package views

import (
	"strings"

	"rhystmorgan/btcterm/internal/utils"
)

const maxPopupItems = 6

// CompletionPopupModel lists completion candidates under the pay-to field.
type CompletionPopupModel struct {
	items         []string
	prefix        string
	selectedIndex int
	scrollOffset  int
	visible       bool
}

func NewCompletionPopupModel() *CompletionPopupModel {
	return &CompletionPopupModel{}
}

// Show displays items for prefix. The popup stays hidden when there is
// nothing to offer. The selection resets only when the prefix changes.
func (m *CompletionPopupModel) Show(prefix string, items []string) {
	if len(items) == 0 {
		m.Hide()
		return
	}

	if prefix != m.prefix || !m.visible {
		m.selectedIndex = 0
		m.scrollOffset = 0
	}
	m.prefix = prefix
	m.items = items
	if m.selectedIndex >= len(items) {
		m.selectedIndex = len(items) - 1
	}
	m.visible = true
}

func (m *CompletionPopupModel) Hide() {
	m.visible = false
	m.items = nil
	m.prefix = ""
}

func (m *CompletionPopupModel) IsVisible() bool {
	return m.visible
}

func (m *CompletionPopupModel) Prefix() string {
	return m.prefix
}

func (m *CompletionPopupModel) Items() []string {
	return m.items
}

func (m *CompletionPopupModel) Selected() string {
	if !m.visible || m.selectedIndex >= len(m.items) {
		return ""
	}
	return m.items[m.selectedIndex]
}

func (m *CompletionPopupModel) navigateUp() {
	if m.selectedIndex > 0 {
		m.selectedIndex--
		if m.selectedIndex < m.scrollOffset {
			m.scrollOffset = m.selectedIndex
		}
	}
}

func (m *CompletionPopupModel) navigateDown() {
	if m.selectedIndex < len(m.items)-1 {
		m.selectedIndex++
		if m.selectedIndex >= m.scrollOffset+maxPopupItems {
			m.scrollOffset = m.selectedIndex - maxPopupItems + 1
		}
	}
}

func (m *CompletionPopupModel) View() string {
	if !m.visible {
		return ""
	}

	end := min(m.scrollOffset+maxPopupItems, len(m.items))
	rows := make([]string, 0, end-m.scrollOffset)
	for i := m.scrollOffset; i < end; i++ {
		style := popupItemStyle
		if i == m.selectedIndex {
			style = popupSelectedStyle
		}
		rows = append(rows, style.Render(utils.TruncateString(m.items[i], 72)))
	}

	return popupStyle.Render(strings.Join(rows, "\n"))
}
