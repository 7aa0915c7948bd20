package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rhystmorgan/btcterm/internal/models"
)

const genesisAddr = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"

func TestNewStorageRequiresDir(t *testing.T) {
	if _, err := NewStorage("", ""); err == nil {
		t.Error("expected error for empty data dir")
	}
}

func TestLoadMissingFiles(t *testing.T) {
	s, err := NewStorage(filepath.Join(t.TempDir(), "nested"), "")
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}

	contacts, err := s.LoadContacts()
	if err != nil {
		t.Fatalf("LoadContacts: %v", err)
	}
	if contacts == nil || len(contacts.Contacts) != 0 {
		t.Errorf("expected empty contact list, got %+v", contacts)
	}

	recent, err := s.LoadRecentAddresses(5)
	if err != nil {
		t.Fatalf("LoadRecentAddresses: %v", err)
	}
	if recent.Len() != 0 {
		t.Errorf("expected no recent addresses, got %d", recent.Len())
	}
}

func TestContactsPlainRoundTrip(t *testing.T) {
	s, _ := NewStorage(t.TempDir(), "")

	list := &models.ContactList{}
	_ = list.Add(models.NewContact("Satoshi", genesisAddr, "genesis"))
	if err := s.SaveContacts(list); err != nil {
		t.Fatalf("SaveContacts: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(s.DataDir(), contactsFile))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), genesisAddr) {
		t.Error("plain file should contain the address")
	}

	loaded, err := s.LoadContacts()
	if err != nil {
		t.Fatalf("LoadContacts: %v", err)
	}
	if len(loaded.Contacts) != 1 || loaded.Contacts[0].Name != "Satoshi" {
		t.Errorf("unexpected contacts %+v", loaded.Contacts)
	}
}

func TestContactsEncryptedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewStorage(dir, "correct horse")
	if !s.Encrypted() {
		t.Fatal("expected encrypted storage")
	}

	list := &models.ContactList{}
	_ = list.Add(models.NewContact("Satoshi", genesisAddr, ""))
	if err := s.SaveContacts(list); err != nil {
		t.Fatalf("SaveContacts: %v", err)
	}

	raw, _ := os.ReadFile(filepath.Join(dir, contactsFile))
	if strings.Contains(string(raw), genesisAddr) {
		t.Error("encrypted file leaks the address")
	}

	loaded, err := s.LoadContacts()
	if err != nil {
		t.Fatalf("LoadContacts: %v", err)
	}
	if len(loaded.Contacts) != 1 || loaded.Contacts[0].Address != genesisAddr {
		t.Errorf("unexpected contacts %+v", loaded.Contacts)
	}

	wrong, _ := NewStorage(dir, "wrong")
	if _, err := wrong.LoadContacts(); !errors.Is(err, ErrDecrypt) {
		t.Errorf("wrong passphrase error = %v, want ErrDecrypt", err)
	}

	none, _ := NewStorage(dir, "")
	if _, err := none.LoadContacts(); err == nil {
		t.Error("expected error reading encrypted file without passphrase")
	}
}

func TestEncryptedStorageReadsPlainFiles(t *testing.T) {
	dir := t.TempDir()
	plain, _ := NewStorage(dir, "")
	list := &models.ContactList{}
	_ = list.Add(models.NewContact("Satoshi", genesisAddr, ""))
	_ = plain.SaveContacts(list)

	encrypted, _ := NewStorage(dir, "secret")
	loaded, err := encrypted.LoadContacts()
	if err != nil {
		t.Fatalf("LoadContacts: %v", err)
	}
	if len(loaded.Contacts) != 1 {
		t.Errorf("expected plain contacts to load, got %+v", loaded.Contacts)
	}
}

func TestRecentAddressesRoundTrip(t *testing.T) {
	s, _ := NewStorage(t.TempDir(), "pw")

	recent := models.NewRecentAddressManager(10)
	recent.AddAddress(genesisAddr, "Satoshi", 12345)
	if err := s.SaveRecentAddresses(recent); err != nil {
		t.Fatalf("SaveRecentAddresses: %v", err)
	}

	loaded, err := s.LoadRecentAddresses(10)
	if err != nil {
		t.Fatalf("LoadRecentAddresses: %v", err)
	}
	entry := loaded.GetAddress(genesisAddr)
	if entry == nil || entry.LastAmount != 12345 || entry.ContactName != "Satoshi" {
		t.Errorf("unexpected entry %+v", entry)
	}
}
