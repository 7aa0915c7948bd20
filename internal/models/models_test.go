package models

import (
	"testing"
	"time"
)

const (
	genesisAddr = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"
	boatAddr    = "1BoatSLRHtKNngkdXEeobR76b53LETtpyT"
)

func TestContactLabel(t *testing.T) {
	c := NewContact("  Satoshi ", genesisAddr, "")
	if c.ID == "" {
		t.Error("expected generated ID")
	}
	if got := c.Label(); got != "Satoshi <"+genesisAddr+">" {
		t.Errorf("Label() = %q", got)
	}

	unnamed := NewContact("", boatAddr, "")
	if got := unnamed.Label(); got != boatAddr {
		t.Errorf("Label() = %q, want bare address", got)
	}
}

func TestContactListAddRejectsDuplicates(t *testing.T) {
	var list ContactList
	if err := list.Add(NewContact("Satoshi", genesisAddr, "")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := list.Add(NewContact("Other", genesisAddr, "")); err == nil {
		t.Error("expected duplicate address to be rejected")
	}
	if len(list.Contacts) != 1 {
		t.Errorf("expected 1 contact, got %d", len(list.Contacts))
	}
}

func TestContactListRemove(t *testing.T) {
	var list ContactList
	c := NewContact("Satoshi", genesisAddr, "")
	_ = list.Add(c)

	if err := list.Remove(c.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if list.FindByID(c.ID) != nil {
		t.Error("contact still present after Remove")
	}
	if err := list.Remove(c.ID); err == nil {
		t.Error("expected error removing missing contact")
	}
}

func TestContactListSearchPrefix(t *testing.T) {
	var list ContactList
	_ = list.Add(NewContact("Satoshi", genesisAddr, ""))
	_ = list.Add(NewContact("Boat", boatAddr, ""))
	list.FindByAddress(boatAddr).Use(1000)

	results := list.SearchPrefix("sat")
	if len(results) != 1 || results[0].Address != genesisAddr {
		t.Errorf("name search = %+v", results)
	}

	results = list.SearchPrefix("1bo")
	if len(results) != 1 || results[0].Name != "Boat" {
		t.Errorf("address search = %+v", results)
	}

	all := list.SearchPrefix("")
	if len(all) != 2 || all[0].Name != "Boat" {
		t.Errorf("empty prefix should list most used first, got %+v", all)
	}
}

func TestContactUse(t *testing.T) {
	c := NewContact("Satoshi", genesisAddr, "")
	c.Use(100)
	c.Use(250)

	if c.UseCount != 2 || c.TotalSent != 350 {
		t.Errorf("UseCount=%d TotalSent=%d", c.UseCount, c.TotalSent)
	}
	if c.LastUsed.IsZero() {
		t.Error("LastUsed not set")
	}
}

func TestRecentAddressManager(t *testing.T) {
	ram := NewRecentAddressManager(2)

	ram.AddAddress(genesisAddr, "Satoshi", 100)
	ram.AddAddress(boatAddr, "", 200)
	ram.AddAddress(boatAddr, "Boat", 300)

	recent := ram.GetRecentAddresses(0)
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	if recent[0].Address != boatAddr || recent[0].UseCount != 2 || recent[0].LastAmount != 300 {
		t.Errorf("unexpected first entry %+v", recent[0])
	}
	if recent[0].ContactName != "Boat" {
		t.Errorf("contact name not updated: %+v", recent[0])
	}

	ram.AddAddress("1CounterpartyXXXXXXXXXXXXXXXUWLpVr", "", 1)
	if ram.Len() != 2 {
		t.Errorf("max entries not enforced, len=%d", ram.Len())
	}

	ram.AddAddress("   ", "", 1)
	if ram.Len() != 2 {
		t.Error("blank address should be ignored")
	}
}

func TestRecentAddressSearchAndImport(t *testing.T) {
	ram := NewRecentAddressManager(10)
	ram.Import([]RecentAddress{
		{Address: genesisAddr, UseCount: 5, LastUsed: time.Now().Add(-200 * 24 * time.Hour)},
		{Address: boatAddr, ContactName: "Boat", UseCount: 1, LastUsed: time.Now()},
	})

	exported := ram.Export()
	if len(exported) != 2 || exported[0].Address != boatAddr {
		t.Errorf("recent use should outrank stale frequent use: %+v", exported)
	}

	if got := ram.SearchPrefix("boat"); len(got) != 1 {
		t.Errorf("contact name search = %+v", got)
	}
	if got := ram.SearchPrefix("1A1"); len(got) != 1 || got[0].Address != genesisAddr {
		t.Errorf("address search = %+v", got)
	}
	if got := ram.GetAddress(genesisAddr); got == nil || got.UseCount != 5 {
		t.Errorf("GetAddress = %+v", got)
	}
}
