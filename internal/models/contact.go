package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Contact is an address book entry. Label renders it in the alias form the
// pay-to field accepts.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	IsFavorite bool      `json:"is_favorite"`
	LastUsed   time.Time `json:"last_used,omitempty"`
	UseCount   int       `json:"use_count"`
	// TotalSent is kept in minor units.
	TotalSent int64 `json:"total_sent,omitempty"`
}

type ContactList struct {
	Contacts []Contact `json:"contacts"`
}

func NewContact(name, address, notes string) *Contact {
	now := time.Now()
	return &Contact{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Address:   strings.TrimSpace(address),
		Notes:     strings.TrimSpace(notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Label returns "name <address>", or the bare address for unnamed contacts.
func (c *Contact) Label() string {
	if c.Name == "" {
		return c.Address
	}
	return fmt.Sprintf("%s <%s>", c.Name, c.Address)
}

// Use records a payment of minorUnits to the contact.
func (c *Contact) Use(minorUnits int64) {
	c.UseCount++
	c.TotalSent += minorUnits
	c.LastUsed = time.Now()
	c.UpdatedAt = c.LastUsed
}

func (c *Contact) SetFavorite(favorite bool) {
	if c.IsFavorite == favorite {
		return
	}
	c.IsFavorite = favorite
	c.UpdatedAt = time.Now()
}

// Add appends contact unless its address is already in the list.
func (cl *ContactList) Add(contact *Contact) error {
	if existing := cl.FindByAddress(contact.Address); existing != nil {
		return fmt.Errorf("address already saved as %q", existing.Name)
	}
	cl.Contacts = append(cl.Contacts, *contact)
	return nil
}

func (cl *ContactList) Remove(id string) error {
	for i, contact := range cl.Contacts {
		if contact.ID == id {
			cl.Contacts = append(cl.Contacts[:i], cl.Contacts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("contact not found: %s", id)
}

func (cl *ContactList) FindByID(id string) *Contact {
	for i, contact := range cl.Contacts {
		if contact.ID == id {
			return &cl.Contacts[i]
		}
	}
	return nil
}

// FindByAddress matches exactly; base58 addresses are case sensitive.
func (cl *ContactList) FindByAddress(address string) *Contact {
	for i, contact := range cl.Contacts {
		if contact.Address == address {
			return &cl.Contacts[i]
		}
	}
	return nil
}

// SearchPrefix returns contacts whose name or address starts with prefix,
// ignoring case, favourites and most used first.
func (cl *ContactList) SearchPrefix(prefix string) []Contact {
	prefix = strings.ToLower(strings.TrimSpace(prefix))

	var results []Contact
	for _, contact := range cl.Contacts {
		if prefix == "" ||
			strings.HasPrefix(strings.ToLower(contact.Name), prefix) ||
			strings.HasPrefix(strings.ToLower(contact.Address), prefix) {
			results = append(results, contact)
		}
	}

	sortContacts(results)
	return results
}

func (cl *ContactList) GetMostUsed(limit int) []Contact {
	if limit <= 0 {
		limit = 10
	}

	contacts := make([]Contact, len(cl.Contacts))
	copy(contacts, cl.Contacts)
	sortContacts(contacts)

	if len(contacts) > limit {
		contacts = contacts[:limit]
	}
	return contacts
}

func sortContacts(contacts []Contact) {
	sort.SliceStable(contacts, func(i, j int) bool {
		if contacts[i].IsFavorite != contacts[j].IsFavorite {
			return contacts[i].IsFavorite
		}
		if contacts[i].UseCount != contacts[j].UseCount {
			return contacts[i].UseCount > contacts[j].UseCount
		}
		return contacts[i].LastUsed.After(contacts[j].LastUsed)
	})
}
