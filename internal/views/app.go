package views

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/btcterm/internal/address"
	"rhystmorgan/btcterm/internal/audit"
	"rhystmorgan/btcterm/internal/completion"
	"rhystmorgan/btcterm/internal/config"
	"rhystmorgan/btcterm/internal/models"
	"rhystmorgan/btcterm/internal/payto"
	"rhystmorgan/btcterm/internal/storage"
)

type AppModel struct {
	width   int
	height  int
	cfg     *config.Config
	storage *storage.Storage
	journal *audit.Journal

	contacts *models.ContactList
	recent   *models.RecentAddressManager

	send *SendModel

	err error
}

type ErrorMsg struct {
	Err error
}

// NewAppModel loads the address book from store and builds the send form.
// journal may be nil.
func NewAppModel(cfg *config.Config, store *storage.Storage, journal *audit.Journal) (*AppModel, error) {
	contacts, err := store.LoadContacts()
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	recent, err := store.LoadRecentAddresses(cfg.RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent addresses: %w", err)
	}

	validator := address.NewValidator(cfg.Params())
	provider := completion.NewAddressBookProvider(contacts, recent)

	send := NewSendModel(validator, provider, contacts, cfg.AmountUnit())
	send.SetSpendable(cfg.Spendable)

	log.Debugf("Loaded %d contacts and %d recent addresses", len(contacts.Contacts), recent.Len())

	return &AppModel{
		cfg:      cfg,
		storage:  store,
		journal:  journal,
		contacts: contacts,
		recent:   recent,
		send:     send,
	}, nil
}

func (m AppModel) Init() tea.Cmd {
	return m.send.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.err = nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case OutputsConfirmedMsg:
		if err := m.recordOutputs(msg.Outputs); err != nil {
			log.Errorf("Failed to record outputs: %v", err)
			m.err = err
		}
		return m, nil
	}

	m.send, cmd = m.send.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	content := m.send.View()

	if m.err != nil {
		content += "\n" + errorStyle.Render(fmt.Sprintf("Error: %s", m.err.Error()))
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(1, 2).
		Render(content)
}

func (m *AppModel) Send() *SendModel {
	return m.send
}

func (m *AppModel) Contacts() *models.ContactList {
	return m.contacts
}

func (m *AppModel) Recent() *models.RecentAddressManager {
	return m.recent
}

// recordOutputs updates usage statistics for every recipient, persists the
// address book and journals the request.
func (m *AppModel) recordOutputs(outputs []payto.Output) error {
	recipients := make([]audit.Recipient, 0, len(outputs))
	contactsChanged := false

	for _, out := range outputs {
		name := ""
		if contact := m.contacts.FindByAddress(out.Address); contact != nil {
			contact.Use(out.Amount)
			name = contact.Name
			contactsChanged = true
		}
		m.recent.AddAddress(out.Address, name, out.Amount)
		recipients = append(recipients, audit.Recipient{Address: out.Address, Label: name, Amount: out.Amount})
	}

	if err := m.storage.SaveRecentAddresses(m.recent); err != nil {
		return err
	}

	if contactsChanged {
		if err := m.storage.SaveContacts(m.contacts); err != nil {
			return err
		}
	}

	if m.journal != nil {
		if err := m.journal.RecordOutputs(recipients); err != nil {
			return fmt.Errorf("failed to journal outputs: %w", err)
		}
	}

	return nil
}
