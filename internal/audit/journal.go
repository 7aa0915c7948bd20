// Package audit keeps an append-only JSON-lines journal of address book
// changes and confirmed payment requests.
package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const journalFilename = "journal.log"

type Journal struct {
	path    string
	network string
	mu      sync.Mutex
	now     func() time.Time
}

func NewJournal(dir, network string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	return &Journal{
		path:    filepath.Join(dir, journalFilename),
		network: network,
		now:     time.Now,
	}, nil
}

func (j *Journal) Path() string {
	return j.path
}

// RecordOutputs journals a confirmed set of recipients. The total is
// computed from the recipients.
func (j *Journal) RecordOutputs(recipients []Recipient) error {
	if len(recipients) == 0 {
		return errors.New("no recipients to record")
	}

	var total int64
	for _, r := range recipients {
		total += r.Amount
	}

	return j.append(Entry{
		Action:     ActionOutputsConfirm,
		Recipients: recipients,
		Total:      total,
	})
}

func (j *Journal) RecordContact(action Action, name, address string) error {
	return j.append(Entry{
		Action:  action,
		Details: map[string]string{"name": name, "address": address},
	})
}

func (j *Journal) append(entry Entry) error {
	entry.ID = uuid.NewString()
	entry.Timestamp = j.now().UTC()
	entry.Network = j.network

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	file, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write journal entry: %w", err)
	}
	return nil
}

// History returns the journal entries for action, oldest first. An empty
// action returns every entry. Unreadable lines are skipped.
func (j *Journal) History(action Action) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	file, err := os.Open(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		if action == "" || entry.Action == action {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	return entries, nil
}
