package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"rhystmorgan/btcterm/internal/models"
)

const (
	contactsFile = "contacts.json"
	recentFile   = "recent.json"
)

// Storage reads and writes the address book under a data directory. When a
// passphrase is set every file is written encrypted; plain files from before
// the passphrase was set are still read.
type Storage struct {
	dataDir    string
	passphrase string
}

type recentFileData struct {
	Addresses []models.RecentAddress `json:"addresses"`
}

func NewStorage(dataDir, passphrase string) (*Storage, error) {
	if dataDir == "" {
		return nil, errors.New("data directory not set")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Storage{dataDir: dataDir, passphrase: passphrase}, nil
}

func (s *Storage) DataDir() string {
	return s.dataDir
}

func (s *Storage) Encrypted() bool {
	return s.passphrase != ""
}

func (s *Storage) SaveContacts(contacts *models.ContactList) error {
	if err := s.writeJSON(contactsFile, contacts); err != nil {
		return fmt.Errorf("failed to save contacts: %w", err)
	}
	log.Debugf("Saved %d contacts", len(contacts.Contacts))
	return nil
}

func (s *Storage) LoadContacts() (*models.ContactList, error) {
	contacts := &models.ContactList{Contacts: []models.Contact{}}
	if err := s.readJSON(contactsFile, contacts); err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	return contacts, nil
}

func (s *Storage) SaveRecentAddresses(recent *models.RecentAddressManager) error {
	data := recentFileData{Addresses: recent.Export()}
	if err := s.writeJSON(recentFile, data); err != nil {
		return fmt.Errorf("failed to save recent addresses: %w", err)
	}
	return nil
}

// LoadRecentAddresses returns a manager holding at most maxEntries entries.
func (s *Storage) LoadRecentAddresses(maxEntries int) (*models.RecentAddressManager, error) {
	var data recentFileData
	if err := s.readJSON(recentFile, &data); err != nil {
		return nil, fmt.Errorf("failed to load recent addresses: %w", err)
	}

	recent := models.NewRecentAddressManager(maxEntries)
	recent.Import(data.Addresses)
	return recent, nil
}

func (s *Storage) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	if s.passphrase != "" {
		env, err := seal(data, s.passphrase)
		if err != nil {
			return fmt.Errorf("failed to encrypt %s: %w", name, err)
		}
		if data, err = json.MarshalIndent(env, "", "  "); err != nil {
			return fmt.Errorf("failed to marshal %s: %w", name, err)
		}
	}

	// Write then rename so a crash never leaves a truncated file behind.
	path := filepath.Join(s.dataDir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return os.Rename(tmp, path)
}

// readJSON leaves v untouched when the file does not exist.
func (s *Storage) readJSON(name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dataDir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && len(env.Ciphertext) > 0 {
		if s.passphrase == "" {
			return fmt.Errorf("%s is encrypted and no passphrase is set", name)
		}
		if data, err = open(&env, s.passphrase); err != nil {
			return fmt.Errorf("failed to decrypt %s: %w", name, err)
		}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return nil
}
