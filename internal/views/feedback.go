package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type FeedbackMessage struct {
	Type     FeedbackType
	Message  string
	Duration time.Duration
	ShowTime time.Time
}

type FeedbackType string

const (
	FeedbackSuccess FeedbackType = "success"
	FeedbackError   FeedbackType = "error"
	FeedbackWarning FeedbackType = "warning"
	FeedbackInfo    FeedbackType = "info"
)

type FeedbackTimeoutMsg struct{}

func newFeedback(feedbackType FeedbackType, message string, duration time.Duration) *FeedbackMessage {
	return &FeedbackMessage{
		Type:     feedbackType,
		Message:  message,
		Duration: duration,
		ShowTime: time.Now(),
	}
}

// Expired reports whether the message has been shown for its full duration.
func (f *FeedbackMessage) Expired(now time.Time) bool {
	return f == nil || now.Sub(f.ShowTime) >= f.Duration
}

func (f *FeedbackMessage) Render() string {
	if f == nil {
		return ""
	}

	var color string
	switch f.Type {
	case FeedbackSuccess:
		color = colourGreen
	case FeedbackError:
		color = colourRed
	case FeedbackWarning:
		color = colourYellow
	case FeedbackInfo:
		color = colourBlue
	default:
		color = colourText
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Background(lipgloss.Color(colourSurface0)).
		Padding(0, 1).
		Bold(true).
		Render(f.Message)
}

func feedbackTimeout(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return FeedbackTimeoutMsg{}
	})
}
