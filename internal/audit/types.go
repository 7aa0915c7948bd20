package audit

import (
	"time"
)

// Action identifies what an entry records.
type Action string

const (
	ActionContactAdd     Action = "contact_add"
	ActionContactRemove  Action = "contact_remove"
	ActionOutputsConfirm Action = "outputs_confirm"
)

// Recipient is one resolved payment output, in minor units.
type Recipient struct {
	Address string `json:"address"`
	Label   string `json:"label,omitempty"`
	Amount  int64  `json:"amount"`
}

// Entry is a single journal line.
type Entry struct {
	ID         string            `json:"id"`
	Action     Action            `json:"action"`
	Timestamp  time.Time         `json:"timestamp"`
	Network    string            `json:"network,omitempty"`
	Recipients []Recipient       `json:"recipients,omitempty"`
	Total      int64             `json:"total,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
}
