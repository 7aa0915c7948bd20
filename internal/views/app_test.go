package views

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"rhystmorgan/btcterm/internal/audit"
	"rhystmorgan/btcterm/internal/config"
	"rhystmorgan/btcterm/internal/models"
	"rhystmorgan/btcterm/internal/payto"
	"rhystmorgan/btcterm/internal/storage"
)

func newAppFixture(t *testing.T) (*AppModel, *storage.Storage, *audit.Journal) {
	t.Helper()

	cfg := config.GetDefaultConfig()
	cfg.DataDir = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	store, err := storage.NewStorage(cfg.DataDir, "")
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}

	contacts := &models.ContactList{}
	_ = contacts.Add(models.NewContact("Satoshi", genesisAddr, ""))
	if err := store.SaveContacts(contacts); err != nil {
		t.Fatalf("SaveContacts: %v", err)
	}

	journal, err := audit.NewJournal(cfg.DataDir, cfg.Params().Name)
	if err != nil {
		t.Fatalf("NewJournal: %v", err)
	}

	app, err := NewAppModel(cfg, store, journal)
	if err != nil {
		t.Fatalf("NewAppModel: %v", err)
	}
	return app, store, journal
}

func TestAppRecordsConfirmedOutputs(t *testing.T) {
	app, store, journal := newAppFixture(t)

	outputs := []payto.Output{
		{Address: genesisAddr, Amount: 100000},
		{Address: boatAddr, Amount: 200000},
	}
	model, _ := app.Update(OutputsConfirmedMsg{Outputs: outputs})
	if err := model.(AppModel).err; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recent, err := store.LoadRecentAddresses(10)
	if err != nil {
		t.Fatalf("LoadRecentAddresses: %v", err)
	}
	if recent.Len() != 2 {
		t.Errorf("expected 2 recent addresses, got %d", recent.Len())
	}
	if entry := recent.GetAddress(genesisAddr); entry == nil || entry.ContactName != "Satoshi" {
		t.Errorf("unexpected recent entry %+v", entry)
	}

	contacts, _ := store.LoadContacts()
	satoshi := contacts.FindByAddress(genesisAddr)
	if satoshi == nil || satoshi.UseCount != 1 || satoshi.TotalSent != 100000 {
		t.Errorf("contact usage not saved: %+v", satoshi)
	}

	entries, err := journal.History(audit.ActionOutputsConfirm)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 1 || entries[0].Total != 300000 {
		t.Errorf("unexpected journal %+v", entries)
	}

	// Recently paid addresses are offered as completions.
	app.Send().PayTo().Focus()
	typeInto(func(msg tea.Msg) { app.Update(msg) }, "1Bo")
	items := app.Send().PayTo().Popup().Items()
	if len(items) != 1 || items[0] != boatAddr {
		t.Errorf("completions = %q", items)
	}
}

func TestAppErrorDisplay(t *testing.T) {
	app, _, _ := newAppFixture(t)

	if app.View() != "Loading..." {
		t.Error("view should wait for the window size")
	}

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	model, _ = model.Update(ErrorMsg{Err: errors.New("disk full")})
	if !strings.Contains(model.View(), "disk full") {
		t.Error("error should be rendered")
	}

	model, _ = model.Update(runeKey("x"))
	if strings.Contains(model.View(), "disk full") {
		t.Error("a key press should clear the error")
	}
}

func TestAppQuit(t *testing.T) {
	app, _, _ := newAppFixture(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}
