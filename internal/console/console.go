// Package console wires the incident registry, order store, action queue,
// audit log and recovery coordinator into the single surface the UI layer
// talks to. All state handles are injected; nothing here is a global.
package console

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/audit"
	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/impact"
	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/incident"
	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/model"
	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/queue"
	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/recovery"
	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/store"
	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/timeline"
)

type Console struct {
	registry *incident.Registry
	store    *store.OrderStore
	queue    *queue.Queue
	audit    *audit.Log
	recover  *recovery.Coordinator
	log      *zap.Logger
}

func New(
	registry *incident.Registry,
	orders *store.OrderStore,
	q *queue.Queue,
	auditLog *audit.Log,
	log *zap.Logger,
	syncDelay time.Duration,
) *Console {
	return &Console{
		registry: registry,
		store:    orders,
		queue:    q,
		audit:    auditLog,
		recover:  recovery.NewCoordinator(registry, orders, q, auditLog, log, syncDelay),
		log:      log,
	}
}

// SubmitResult reports how an intent was handled. Exactly one of the two
// paths happens: queued for later replay, or applied to the store right away.
type SubmitResult struct {
	Queued bool
	// Action is set only when the intent was queued.
	Action *queue.Action
}

// SubmitIntent gates an operator mutation on the current system mode.
// Offline defers the intent to the queue; any other mode (Disruption
// included) applies it immediately and writes an audit entry.
func (c *Console) SubmitIntent(actionType queue.ActionType, payload any) (SubmitResult, error) {
	mode := c.registry.Mode()

	if mode == incident.ModeOffline {
		act, err := c.queue.Enqueue(actionType, payload)
		if err != nil {
			return SubmitResult{}, err
		}
		metrics.ActionsQueuedTotal.Inc()
		metrics.QueueDepth.Set(float64(c.queue.Len()))
		c.log.Info("intent queued",
			zap.String("action_id", act.ID),
			zap.String("action_type", string(actionType)),
		)
		return SubmitResult{Queued: true, Action: &act}, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("marshal %s payload: %w", actionType, err)
	}
	orderID, err := recovery.Apply(c.store, actionType, raw)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("apply %s: %w", actionType, err)
	}

	c.audit.Append(mode, string(actionType),
		fmt.Sprintf("Applied: %s for order %s", actionType, orderID), orderID)
	metrics.DirectAppliesTotal.WithLabelValues(string(actionType)).Inc()
	c.log.Info("intent applied",
		zap.String("action_type", string(actionType)),
		zap.String("order_id", orderID),
	)
	return SubmitResult{Queued: false}, nil
}

// RecoverAndSync drains the offline queue; see recovery.Coordinator.
func (c *Console) RecoverAndSync(ctx context.Context) (recovery.Result, error) {
	res, err := c.recover.RecoverAndSync(ctx)
	if err == nil {
		metrics.QueueDepth.Set(float64(c.queue.Len()))
	}
	return res, err
}

// Orders returns the incident-adjusted view, recomputed from the live
// registry snapshot on every call. Callers must not cache it across
// incident mutations.
func (c *Console) Orders() []model.Order {
	return impact.ApplyIncidents(c.store.List(), c.registry.Snapshot())
}

// Order returns one incident-adjusted order.
func (c *Console) Order(id string) (model.Order, error) {
	o, err := c.store.Get(id)
	if err != nil {
		return model.Order{}, err
	}
	adjusted := impact.ApplyIncidents([]model.Order{o}, c.registry.Snapshot())
	return adjusted[0], nil
}

func (c *Console) Mode() incident.SystemMode {
	return c.registry.Mode()
}

func (c *Console) Incidents() incident.State {
	return c.registry.Snapshot()
}

func (c *Console) DelayStats() impact.DelayStats {
	return impact.Stats(c.Orders())
}

func (c *Console) QueuedActions() []queue.Action {
	return c.queue.Snapshot()
}

func (c *Console) AuditEntries() []audit.Entry {
	return c.audit.Entries()
}

func (c *Console) AuditFiltered(f audit.Filter) []audit.Entry {
	return c.audit.Filtered(f)
}

// ClearSyncedActions purges replayed entries and keeps Failed ones so an
// operator can still investigate them.
func (c *Console) ClearSyncedActions() {
	c.queue.ClearSynced()
	metrics.QueueDepth.Set(float64(c.queue.Len()))
}

func (c *Console) ClearAllActions() {
	c.queue.ClearAll()
	metrics.QueueDepth.Set(0)
}

// OrderTimeline reconstructs the status history for a detail view.
func (c *Console) OrderTimeline(id string) ([]timeline.Item, error) {
	o, err := c.store.Get(id)
	if err != nil {
		return nil, err
	}
	return timeline.History(o), nil
}
