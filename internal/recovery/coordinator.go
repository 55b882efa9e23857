// Package recovery drains the offline action queue once the network hazard
// clears, applying each deferred intent to the order store in submission
// order and recording the outcome of every item.
package recovery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/audit"
	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/incident"
	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/model"
	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/queue"
)

var ErrRecoveryInProgress = errors.New("recovery already in progress")

//go:generate mockgen -source=coordinator.go -destination=mocks/mock_store.go -package=mocks OrderStore

// OrderStore is the slice of the order store the coordinator mutates.
type OrderStore interface {
	Create(o model.Order) error
	UpdateStatus(id string, status model.OrderStatus) error
	AssignDriver(id, driverName string) error
}

// ItemResult records the outcome of one replayed intent. A nil Err means the
// intent was applied and marked Synced.
type ItemResult struct {
	ActionID string
	Type     queue.ActionType
	OrderID  string
	Err      error
}

// Result summarizes one recovery run.
type Result struct {
	SyncedCount int
	FailedCount int
	Items       []ItemResult
}

type Coordinator struct {
	registry *incident.Registry
	store    OrderStore
	queue    *queue.Queue
	audit    *audit.Log
	log      *zap.Logger

	// itemDelay simulates per-item network latency during replay.
	itemDelay time.Duration
	// running is a weight-1 semaphore acting as the single-flight guard:
	// two drains against the same queue would interleave store writes.
	running *semaphore.Weighted
}

func NewCoordinator(
	registry *incident.Registry,
	store OrderStore,
	q *queue.Queue,
	auditLog *audit.Log,
	log *zap.Logger,
	itemDelay time.Duration,
) *Coordinator {
	return &Coordinator{
		registry:  registry,
		store:     store,
		queue:     q,
		audit:     auditLog,
		log:       log,
		itemDelay: itemDelay,
		running:   semaphore.NewWeighted(1),
	}
}

// RecoverAndSync clears the network hazard and replays every Queued intent
// in FIFO order. Per-item failures are absorbed: the entry is marked Failed,
// an audit entry is written and the batch continues. The only error this
// returns is ErrRecoveryInProgress when another drain is already running.
func (c *Coordinator) RecoverAndSync(ctx context.Context) (Result, error) {
	if !c.running.TryAcquire(1) {
		return Result{}, ErrRecoveryInProgress
	}
	defer c.running.Release(1)

	pending := c.queue.Pending()

	// Leave Offline before replay so mode reads as non-Offline while the
	// queue drains.
	c.registry.ClearNetwork()

	c.log.Info("recovery started", zap.Int("pending", len(pending)))

	var res Result
	for _, act := range pending {
		c.sleepItemDelay(ctx)

		orderID, err := Apply(c.store, act.Type, act.Payload)
		if err != nil {
			c.markFailed(act, orderID, err)
			res.FailedCount++
		} else {
			c.markSynced(act, orderID)
			res.SyncedCount++
		}
		res.Items = append(res.Items, ItemResult{
			ActionID: act.ID,
			Type:     act.Type,
			OrderID:  orderID,
			Err:      err,
		})
	}

	c.audit.Append(
		incident.ModeNormal,
		audit.ActionRecovery,
		fmt.Sprintf("Network recovered. Synced %d actions, %d failed.", res.SyncedCount, res.FailedCount),
		"",
	)
	metrics.RecoveryRunsTotal.Inc()
	c.log.Info("recovery finished",
		zap.Int("synced", res.SyncedCount),
		zap.Int("failed", res.FailedCount),
	)

	return res, nil
}

func (c *Coordinator) markSynced(act queue.Action, orderID string) {
	if err := c.queue.SetStatus(act.ID, queue.StatusSynced); err != nil {
		c.log.Warn("mark synced", zap.String("action_id", act.ID), zap.Error(err))
	}
	c.audit.Append(
		incident.ModeOffline,
		string(act.Type),
		fmt.Sprintf("Synced: %s for order %s", act.Type, orderID),
		orderID,
	)
	metrics.ActionsSyncedTotal.Inc()
}

func (c *Coordinator) markFailed(act queue.Action, orderID string, cause error) {
	if err := c.queue.SetStatus(act.ID, queue.StatusFailed); err != nil {
		c.log.Warn("mark failed", zap.String("action_id", act.ID), zap.Error(err))
	}
	c.audit.Append(
		incident.ModeOffline,
		string(act.Type),
		fmt.Sprintf("Failed to sync: %s for order %s: %v", act.Type, orderID, cause),
		orderID,
	)
	metrics.ActionsFailedTotal.Inc()
	c.log.Warn("replay failed",
		zap.String("action_id", act.ID),
		zap.String("order_id", orderID),
		zap.Error(cause),
	)
}

// sleepItemDelay waits out the simulated latency; a cancelled context skips
// the wait but never aborts the drain.
func (c *Coordinator) sleepItemDelay(ctx context.Context) {
	if c.itemDelay <= 0 {
		return
	}
	select {
	case <-time.After(c.itemDelay):
	case <-ctx.Done():
	}
}
