// Package queue holds operator intents that could not be applied while the
// console was offline. Entries are strictly FIFO and are never coalesced:
// two intents against the same order both replay, in submission order.
package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/model"
)

type ActionType string

const (
	ActionUpdateOrderStatus ActionType = "UpdateOrderStatus"
	ActionAssignDriver      ActionType = "AssignDriver"
	ActionCreateOrder       ActionType = "CreateOrder"
)

type Status string

const (
	StatusQueued Status = "Queued"
	StatusSynced Status = "Synced"
	StatusFailed Status = "Failed"
)

var (
	ErrActionNotFound = errors.New("queued action not found")
	ErrActionTerminal = errors.New("queued action already terminal")
)

type UpdateOrderStatusPayload struct {
	OrderID string            `json:"order_id"`
	Status  model.OrderStatus `json:"status"`
}

type AssignDriverPayload struct {
	OrderID    string `json:"order_id"`
	DriverName string `json:"driver_name"`
}

type CreateOrderPayload struct {
	Order model.Order `json:"order"`
}

// Action is one deferred mutation intent. The payload stays opaque JSON so
// the queue itself never interprets it; decoding happens at replay time.
type Action struct {
	ID       string          `json:"id"`
	Type     ActionType      `json:"action_type"`
	Payload  json.RawMessage `json:"payload"`
	QueuedAt time.Time       `json:"queued_at"`
	Status   Status          `json:"status"`
}

type Queue struct {
	mu      sync.Mutex
	actions []Action

	timeNow func() time.Time
}

func New() *Queue {
	return &Queue{timeNow: time.Now}
}

// Enqueue appends a new intent with status Queued and returns a copy of the
// stored entry. The queue does not gate on system mode; that decision belongs
// to the caller holding the incident registry.
func (q *Queue) Enqueue(actionType ActionType, payload any) (Action, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Action{}, fmt.Errorf("marshal %s payload: %w", actionType, err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	act := Action{
		ID:       uuid.NewString(),
		Type:     actionType,
		Payload:  raw,
		QueuedAt: q.timeNow().UTC(),
		Status:   StatusQueued,
	}
	q.actions = append(q.actions, act)
	return act, nil
}

// Pending returns the entries still awaiting replay, in submission order.
func (q *Queue) Pending() []Action {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []Action
	for _, a := range q.actions {
		if a.Status == StatusQueued {
			out = append(out, a)
		}
	}
	return out
}

// Snapshot returns every entry, terminal ones included, for status views.
func (q *Queue) Snapshot() []Action {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Action, len(q.actions))
	copy(out, q.actions)
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.actions)
}

// SetStatus moves a Queued entry to a terminal status. Terminal entries stay
// terminal; the recovery coordinator is the only intended caller.
func (q *Queue) SetStatus(id string, status Status) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.actions {
		if q.actions[i].ID != id {
			continue
		}
		if q.actions[i].Status != StatusQueued {
			return fmt.Errorf("%w: %s is %s", ErrActionTerminal, id, q.actions[i].Status)
		}
		q.actions[i].Status = status
		return nil
	}
	return fmt.Errorf("%w: %s", ErrActionNotFound, id)
}

// ClearSynced drops Synced entries and keeps Failed ones for investigation.
func (q *Queue) ClearSynced() {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.actions[:0]
	for _, a := range q.actions {
		if a.Status != StatusSynced {
			kept = append(kept, a)
		}
	}
	q.actions = kept
}

func (q *Queue) ClearAll() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.actions = nil
}
