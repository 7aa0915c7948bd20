package completion

import (
	"rhystmorgan/btcterm/internal/models"
)

const defaultLimit = 8

// AddressBookProvider completes contact names and addresses from the
// address book, then recently paid addresses that are not saved contacts.
type AddressBookProvider struct {
	contacts *models.ContactList
	recent   *models.RecentAddressManager
	limit    int
}

func NewAddressBookProvider(contacts *models.ContactList, recent *models.RecentAddressManager) *AddressBookProvider {
	return &AddressBookProvider{
		contacts: contacts,
		recent:   recent,
		limit:    defaultLimit,
	}
}

// SetLimit caps the number of candidates returned.
func (p *AddressBookProvider) SetLimit(limit int) {
	if limit > 0 {
		p.limit = limit
	}
}

func (p *AddressBookProvider) Completions(prefix string) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(address, label string) bool {
		if seen[address] {
			return true
		}
		seen[address] = true
		out = append(out, label)
		return len(out) < p.limit
	}

	if p.contacts != nil {
		for _, contact := range p.contacts.SearchPrefix(prefix) {
			if !add(contact.Address, contact.Label()) {
				return out
			}
		}
	}

	if p.recent != nil {
		for _, entry := range p.recent.SearchPrefix(prefix) {
			label := entry.Address
			if p.contacts != nil {
				if contact := p.contacts.FindByAddress(entry.Address); contact != nil {
					label = contact.Label()
				}
			}
			if !add(entry.Address, label) {
				return out
			}
		}
	}

	return out
}
