package models

import (
	"sort"
	"strings"
	"time"
)

type RecentAddress struct {
	Address     string    `json:"address"`
	ContactName string    `json:"contact_name,omitempty"`
	LastUsed    time.Time `json:"last_used"`
	UseCount    int       `json:"use_count"`
	LastAmount  int64     `json:"last_amount,omitempty"`
	Frequency   float64   `json:"frequency"`
}

// RecentAddressManager keeps the most frequently paid addresses, best first.
type RecentAddressManager struct {
	addresses  []RecentAddress
	maxEntries int
}

func NewRecentAddressManager(maxEntries int) *RecentAddressManager {
	if maxEntries <= 0 {
		maxEntries = 50
	}

	return &RecentAddressManager{
		addresses:  make([]RecentAddress, 0),
		maxEntries: maxEntries,
	}
}

// AddAddress records a payment of amount minor units to address.
func (ram *RecentAddressManager) AddAddress(address, contactName string, amount int64) {
	address = strings.TrimSpace(address)
	if address == "" {
		return
	}

	now := time.Now()

	for i, addr := range ram.addresses {
		if addr.Address == address {
			ram.addresses[i].LastUsed = now
			ram.addresses[i].UseCount++
			ram.addresses[i].LastAmount = amount
			if contactName != "" {
				ram.addresses[i].ContactName = contactName
			}

			calculateFrequency(&ram.addresses[i], now)
			ram.sortAddresses()
			return
		}
	}

	entry := RecentAddress{
		Address:     address,
		ContactName: contactName,
		LastUsed:    now,
		UseCount:    1,
		LastAmount:  amount,
	}
	calculateFrequency(&entry, now)
	ram.addresses = append(ram.addresses, entry)

	ram.sortAddresses()
	ram.trim()
}

func (ram *RecentAddressManager) GetRecentAddresses(limit int) []RecentAddress {
	if limit <= 0 || limit > len(ram.addresses) {
		limit = len(ram.addresses)
	}

	result := make([]RecentAddress, limit)
	copy(result, ram.addresses[:limit])
	return result
}

func (ram *RecentAddressManager) GetAddress(address string) *RecentAddress {
	for i := range ram.addresses {
		if ram.addresses[i].Address == address {
			entry := ram.addresses[i]
			return &entry
		}
	}
	return nil
}

// SearchPrefix returns entries whose address or contact name starts with
// prefix, ignoring case.
func (ram *RecentAddressManager) SearchPrefix(prefix string) []RecentAddress {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return ram.GetRecentAddresses(10)
	}

	var results []RecentAddress
	for _, addr := range ram.addresses {
		if strings.HasPrefix(strings.ToLower(addr.Address), prefix) ||
			strings.HasPrefix(strings.ToLower(addr.ContactName), prefix) {
			results = append(results, addr)
		}
	}
	return results
}

func (ram *RecentAddressManager) Len() int {
	return len(ram.addresses)
}

func (ram *RecentAddressManager) Export() []RecentAddress {
	result := make([]RecentAddress, len(ram.addresses))
	copy(result, ram.addresses)
	return result
}

// Import replaces the current entries, recomputing frequencies.
func (ram *RecentAddressManager) Import(addresses []RecentAddress) {
	now := time.Now()
	ram.addresses = make([]RecentAddress, 0, len(addresses))
	for _, addr := range addresses {
		calculateFrequency(&addr, now)
		ram.addresses = append(ram.addresses, addr)
	}

	ram.sortAddresses()
	ram.trim()
}

func (ram *RecentAddressManager) trim() {
	if len(ram.addresses) > ram.maxEntries {
		ram.addresses = ram.addresses[:ram.maxEntries]
	}
}

// calculateFrequency weights the use count by how recently the address was
// paid.
func calculateFrequency(addr *RecentAddress, now time.Time) {
	days := now.Sub(addr.LastUsed).Hours() / 24

	var recency float64
	switch {
	case days <= 7:
		recency = 1.0
	case days <= 30:
		recency = 0.7
	case days <= 90:
		recency = 0.4
	default:
		recency = 0.1
	}

	addr.Frequency = float64(addr.UseCount) * recency
}

func (ram *RecentAddressManager) sortAddresses() {
	sort.SliceStable(ram.addresses, func(i, j int) bool {
		if ram.addresses[i].Frequency != ram.addresses[j].Frequency {
			return ram.addresses[i].Frequency > ram.addresses[j].Frequency
		}
		return ram.addresses[i].LastUsed.After(ram.addresses[j].LastUsed)
	})
}
