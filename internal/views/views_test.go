package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	genesisAddr = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"
	boatAddr    = "1BoatSLRHtKNngkdXEeobR76b53LETtpyT"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// typeInto feeds s one rune at a time through update.
func typeInto(update func(tea.Msg), s string) {
	for _, r := range s {
		update(runeKey(string(r)))
	}
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
