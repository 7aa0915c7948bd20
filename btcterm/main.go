package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"rhystmorgan/btcterm/internal/address"
	"rhystmorgan/btcterm/internal/audit"
	"rhystmorgan/btcterm/internal/config"
	"rhystmorgan/btcterm/internal/models"
	"rhystmorgan/btcterm/internal/payto"
	"rhystmorgan/btcterm/internal/storage"
	"rhystmorgan/btcterm/internal/views"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, config.ErrHelp) {
			fmt.Println(strings.TrimPrefix(err.Error(), config.ErrHelp.Error()+"\n"))
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, _, err := config.Load(args)
	if err != nil {
		return err
	}

	if err := initLogRotator(cfg.LogDir()); err != nil {
		return err
	}
	defer closeLogRotator()
	setLogLevels(cfg.DebugLevel)

	log.Infof("Starting btcterm on %s, unit %s", cfg.Params().Name, cfg.AmountUnit())

	store, err := storage.NewStorage(cfg.DataDir, cfg.Passphrase)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	journal, err := audit.NewJournal(cfg.DataDir, cfg.Params().Name)
	if err != nil {
		return err
	}

	if len(cfg.AddContacts) > 0 {
		if err := addContacts(store, journal, address.NewValidator(cfg.Params()), cfg.AddContacts); err != nil {
			return err
		}
	}

	app, err := views.NewAppModel(cfg, store, journal)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run application: %w", err)
	}

	log.Info("Exiting")
	return nil
}

// addContacts saves each "Name <address>" entry to the address book.
func addContacts(store *storage.Storage, journal *audit.Journal, validator payto.AddressValidator, entries []string) error {
	contacts, err := store.LoadContacts()
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name, addr, ok := payto.SplitAlias(entry)
		if !ok {
			return fmt.Errorf("invalid contact %q: expected 'Name <address>'", entry)
		}
		if !validator.IsValid(addr) {
			return fmt.Errorf("invalid contact %q: %w", entry, payto.ErrInvalidAddress)
		}

		if err := contacts.Add(models.NewContact(name, addr, "")); err != nil {
			log.Warnf("Skipping contact %q: %v", entry, err)
			continue
		}
		if err := journal.RecordContact(audit.ActionContactAdd, name, addr); err != nil {
			log.Warnf("Failed to journal contact %q: %v", name, err)
		}
		log.Infof("Added contact %s", name)
	}

	return store.SaveContacts(contacts)
}
