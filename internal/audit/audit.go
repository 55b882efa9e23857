// Package audit keeps the append-only record of mutation attempts and
// recovery runs. Entries outlive the queue items that produced them and are
// never edited after append.
package audit

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/incident"
)

// ActionRecovery tags the per-run summary entry; the other action values
// mirror the queue's action types.
const ActionRecovery = "Recovery"

type Entry struct {
	ID         string              `json:"id"`
	Timestamp  time.Time           `json:"timestamp"`
	Mode       incident.SystemMode `json:"mode"`
	ActionType string              `json:"action_type"`
	Details    string              `json:"details"`
	OrderID    string              `json:"order_id,omitempty"`
}

type Log struct {
	mu      sync.Mutex
	entries []Entry

	timeNow func() time.Time
}

func NewLog() *Log {
	return &Log{timeNow: time.Now}
}

func (l *Log) Append(mode incident.SystemMode, actionType, details, orderID string) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := Entry{
		ID:         uuid.NewString(),
		Timestamp:  l.timeNow().UTC(),
		Mode:       mode,
		ActionType: actionType,
		Details:    details,
		OrderID:    orderID,
	}
	l.entries = append(l.entries, e)
	return e
}

func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Filter narrows a read-side view; zero values match everything.
type Filter struct {
	Mode       incident.SystemMode
	ActionType string
	OrderID    string
}

func (l *Log) Filtered(f Filter) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Entry
	for _, e := range l.entries {
		if f.Mode != "" && e.Mode != f.Mode {
			continue
		}
		if f.ActionType != "" && e.ActionType != f.ActionType {
			continue
		}
		if f.OrderID != "" && e.OrderID != f.OrderID {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Clear is an operator/test utility; production flows never call it.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
