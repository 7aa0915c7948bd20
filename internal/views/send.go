package views

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/btcterm/internal/amount"
	"rhystmorgan/btcterm/internal/completion"
	"rhystmorgan/btcterm/internal/models"
	"rhystmorgan/btcterm/internal/payto"
	"rhystmorgan/btcterm/internal/utils"
)

type SendStep int

const (
	StepCompose SendStep = iota
	StepReview
	StepDone
)

var sendStepNames = []string{"Compose", "Review", "Done"}

type sendFocus int

const (
	focusPayTo sendFocus = iota
	focusAmount
)

// OutputsConfirmedMsg carries the recipients the user confirmed.
type OutputsConfirmedMsg struct {
	Outputs []payto.Output
}

// SendModel is the payment request form: a pay-to field, an amount field
// and a review step.
type SendModel struct {
	payTo       *PayToModel
	amountInput *AmountInputModel
	editor      *payto.Editor
	contacts    *models.ContactList
	unit        amount.Unit
	spendable   int64

	step    SendStep
	focus   sendFocus
	outputs []payto.Output

	feedbackMessage *FeedbackMessage
	terminalWidth   int
	terminalHeight  int
}

func NewSendModel(validator payto.AddressValidator, provider completion.Provider, contacts *models.ContactList, unit amount.Unit) *SendModel {
	amountInput := NewAmountInputModel(unit)
	editor := payto.NewEditor(amountInput, validator, unit)

	return &SendModel{
		payTo:       NewPayToModel(editor, provider),
		amountInput: amountInput,
		editor:      editor,
		contacts:    contacts,
		unit:        unit,
		step:        StepCompose,
	}
}

// SetSpendable sets the balance the "!" shortcut fills in.
func (m *SendModel) SetSpendable(minorUnits int64) {
	m.spendable = minorUnits
}

func (m *SendModel) PayTo() *PayToModel {
	return m.payTo
}

func (m *SendModel) AmountInput() *AmountInputModel {
	return m.amountInput
}

func (m *SendModel) Step() SendStep {
	return m.step
}

func (m *SendModel) Outputs() []payto.Output {
	return m.outputs
}

func (m *SendModel) Feedback() *FeedbackMessage {
	return m.feedbackMessage
}

func (m *SendModel) Init() tea.Cmd {
	return m.payTo.Focus()
}

func (m *SendModel) Update(msg tea.Msg) (*SendModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height
		if msg.Width > 20 {
			m.payTo.SetWidth(min(msg.Width-8, 96))
		}
		return m, nil

	case FeedbackTimeoutMsg:
		if m.feedbackMessage.Expired(time.Now()) {
			m.feedbackMessage = nil
		}
		return m, nil

	case AmountShortcutMsg:
		return m, m.fillSpendable()

	case tea.KeyMsg:
		switch m.step {
		case StepReview:
			return m, m.handleReviewKey(msg)
		case StepDone:
			return m, m.handleDoneKey(msg)
		}
		return m.handleComposeKey(msg)
	}

	return m, nil
}

func (m *SendModel) handleComposeKey(msg tea.KeyMsg) (*SendModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		return m, m.toggleFocus()

	case "ctrl+s":
		return m, m.review()

	case "enter":
		if m.focus == focusAmount {
			return m, m.review()
		}
	}

	var cmd tea.Cmd
	if m.focus == focusAmount {
		m.amountInput, cmd = m.amountInput.Update(msg)
	} else {
		m.payTo, cmd = m.payTo.Update(msg)
	}
	return m, cmd
}

func (m *SendModel) handleReviewKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y", "enter":
		outputs := make([]payto.Output, len(m.outputs))
		copy(outputs, m.outputs)
		m.step = StepDone
		log.Infof("Confirmed %d output(s)", len(outputs))
		return func() tea.Msg {
			return OutputsConfirmedMsg{Outputs: outputs}
		}

	case "n", "N", "esc":
		m.step = StepCompose
		m.outputs = nil
		return m.focusField(m.focus)
	}
	return nil
}

func (m *SendModel) handleDoneKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc":
		return m.Reset()
	}
	return nil
}

// Reset clears the form for a new payment request.
func (m *SendModel) Reset() tea.Cmd {
	m.payTo.SetValue("")
	m.amountInput.Clear()
	m.amountInput.SetFrozen(false)
	m.outputs = nil
	m.step = StepCompose
	m.feedbackMessage = nil
	return m.focusField(focusPayTo)
}

func (m *SendModel) toggleFocus() tea.Cmd {
	if m.focus == focusPayTo && !m.amountInput.Frozen() {
		return m.focusField(focusAmount)
	}
	return m.focusField(focusPayTo)
}

func (m *SendModel) focusField(field sendFocus) tea.Cmd {
	if field == focusAmount && m.amountInput.Frozen() {
		field = focusPayTo
	}

	m.focus = field
	if field == focusAmount {
		m.payTo.Blur()
		return m.amountInput.Focus()
	}
	m.amountInput.Blur()
	return m.payTo.Focus()
}

func (m *SendModel) fillSpendable() tea.Cmd {
	if m.amountInput.Frozen() {
		return nil
	}
	if m.spendable <= 0 {
		return m.showFeedback(FeedbackWarning, "No spendable balance configured", 3*time.Second)
	}

	m.amountInput.SetAmount(m.spendable)
	return m.showFeedback(FeedbackInfo, "Amount set to the spendable balance", 2*time.Second)
}

// review resolves the outputs and moves to the review step, or explains
// why the form cannot be submitted.
func (m *SendModel) review() tea.Cmd {
	outputs, err := m.editor.Outputs()
	if err != nil {
		log.Debugf("Cannot resolve outputs: %v", err)

		var message string
		switch {
		case errors.Is(err, payto.ErrInvalidAddress):
			message = "Invalid address"
		case errors.Is(err, payto.ErrInvalidAmount):
			message = "Invalid amount"
		case errors.Is(err, payto.ErrNoRecipients):
			message = "Enter at least one recipient"
		default:
			message = err.Error()
		}
		return m.showFeedback(FeedbackWarning, message, 5*time.Second)
	}

	m.outputs = outputs
	m.step = StepReview
	m.feedbackMessage = nil
	m.payTo.Popup().Hide()
	return nil
}

func (m *SendModel) showFeedback(feedbackType FeedbackType, message string, duration time.Duration) tea.Cmd {
	m.feedbackMessage = newFeedback(feedbackType, message, duration)
	return feedbackTimeout(duration)
}

func (m *SendModel) View() string {
	var content strings.Builder

	content.WriteString(titleStyle.Render("Send Bitcoin"))
	content.WriteString("\n")
	content.WriteString(helpStyle.Render(utils.FormatStepIndicator(int(m.step), len(sendStepNames), sendStepNames)))
	content.WriteString("\n\n")

	switch m.step {
	case StepCompose:
		content.WriteString(m.renderCompose())
	case StepReview:
		content.WriteString(m.renderOutputs())
		content.WriteString("\n\n")
		content.WriteString(labelStyle.Render("Confirm this payment request? (y/N)"))
	case StepDone:
		content.WriteString(amountStyle.Render("Payment request saved."))
		content.WriteString("\n\n")
		content.WriteString(m.renderOutputs())
	}

	if m.feedbackMessage != nil {
		content.WriteString("\n\n")
		content.WriteString(m.feedbackMessage.Render())
	}

	content.WriteString("\n\n")
	content.WriteString(m.renderHelpText())

	return content.String()
}

func (m *SendModel) renderCompose() string {
	var b strings.Builder

	b.WriteString(labelStyle.Render("Pay to"))
	b.WriteString("\n")
	b.WriteString(m.payTo.View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Amount"))
	b.WriteString("\n")
	b.WriteString(m.amountInput.View())

	if summary := m.renderSummary(); summary != "" {
		b.WriteString("\n\n")
		b.WriteString(summary)
	}

	return b.String()
}

func (m *SendModel) renderSummary() string {
	result := m.editor.Result()
	switch result.Mode {
	case payto.ModeSingle:
		return summaryStyle.Render("To " + m.recipientLabel(result.Address))
	case payto.ModeMulti:
		lines := len(payto.SplitLines(m.editor.Text()))
		return summaryStyle.Render(fmt.Sprintf("%d of %d line(s) valid, total %s",
			len(result.Outputs), lines, utils.FormatAmountWithUnit(result.Total, m.unit)))
	default:
		return ""
	}
}

func (m *SendModel) renderOutputs() string {
	if len(m.outputs) == 0 {
		return ""
	}

	rows := make([]string, 0, len(m.outputs)+1)
	var total int64
	for _, out := range m.outputs {
		total += out.Amount
		rows = append(rows, fmt.Sprintf("  %s  %s",
			lipgloss.NewStyle().Width(48).Render(m.recipientLabel(out.Address)),
			amountStyle.Render(utils.FormatAmountWithUnit(out.Amount, m.unit))))
	}
	rows = append(rows, labelStyle.Render(fmt.Sprintf("  Total: %s", utils.FormatAmountWithUnit(total, m.unit))))

	return strings.Join(rows, "\n")
}

func (m *SendModel) recipientLabel(address string) string {
	if m.contacts != nil {
		if contact := m.contacts.FindByAddress(address); contact != nil {
			return utils.FormatAddressWithName(address, contact.Name)
		}
	}
	return utils.FormatAddress(address, 12, 8)
}

func (m *SendModel) renderHelpText() string {
	var helpText string
	switch m.step {
	case StepCompose:
		if m.focus == focusAmount {
			helpText = "Enter amount (! for max) • Tab: pay to • Enter/Ctrl+S: review • Ctrl+C: quit"
		} else {
			helpText = "Ctrl+E: complete • Enter: new line • Tab: amount • Ctrl+S: review • Ctrl+C: quit"
		}
	case StepReview:
		helpText = "y/Enter: confirm • n/Esc: edit"
	case StepDone:
		helpText = "Enter: new payment • Ctrl+C: quit"
	}

	return helpStyle.Render(helpText)
}
