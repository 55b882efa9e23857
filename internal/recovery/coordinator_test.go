package recovery

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/audit"
	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/incident"
	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/model"
	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/queue"
	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/recovery/mocks"
	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/store"
)

func testOrder(id string) model.Order {
	return model.Order{
		ID:                 id,
		FromCity:           model.CityHamilton,
		ToCity:             model.CityAuckland,
		Status:             model.StatusCreated,
		BaseEtaMinutes:     60,
		AdjustedEtaMinutes: 60,
		RiskLevel:          model.RiskLow,
	}
}

func offlineRegistry() *incident.Registry {
	r := incident.NewRegistry()
	r.Toggle(incident.KindNetwork)
	r.SetNetworkLevel(incident.NetworkDown)
	return r
}

func TestRecoverAndSync_FIFOLastApplied(t *testing.T) {
	registry := offlineRegistry()
	orders := store.New()
	require.NoError(t, orders.Create(testOrder("ORD-1")))
	q := queue.New()
	auditLog := audit.NewLog()

	for _, status := range []model.OrderStatus{model.StatusAssigned, model.StatusPickedUp, model.StatusEnRoute} {
		_, err := q.Enqueue(queue.ActionUpdateOrderStatus, queue.UpdateOrderStatusPayload{OrderID: "ORD-1", Status: status})
		require.NoError(t, err)
	}

	c := NewCoordinator(registry, orders, q, auditLog, zap.NewNop(), 0)
	res, err := c.RecoverAndSync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, res.SyncedCount)
	assert.Equal(t, 0, res.FailedCount)

	got, err := orders.Get("ORD-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusEnRoute, got.Status, "last-submitted intent wins")
}

func TestRecoverAndSync_PartialFailureIsolation(t *testing.T) {
	registry := offlineRegistry()
	orders := store.New()
	require.NoError(t, orders.Create(testOrder("ORD-1")))
	require.NoError(t, orders.Create(testOrder("ORD-2")))
	q := queue.New()
	auditLog := audit.NewLog()

	_, err := q.Enqueue(queue.ActionUpdateOrderStatus, queue.UpdateOrderStatusPayload{OrderID: "ORD-1", Status: model.StatusAssigned})
	require.NoError(t, err)
	// references an order that does not exist
	_, err = q.Enqueue(queue.ActionUpdateOrderStatus, queue.UpdateOrderStatusPayload{OrderID: "ORD-MISSING", Status: model.StatusAssigned})
	require.NoError(t, err)
	_, err = q.Enqueue(queue.ActionAssignDriver, queue.AssignDriverPayload{OrderID: "ORD-2", DriverName: "Emma Wilson"})
	require.NoError(t, err)

	c := NewCoordinator(registry, orders, q, auditLog, zap.NewNop(), 0)
	res, err := c.RecoverAndSync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, res.SyncedCount)
	assert.Equal(t, 1, res.FailedCount)

	got, err := orders.Get("ORD-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAssigned, got.Status)
	got, err = orders.Get("ORD-2")
	require.NoError(t, err)
	assert.Equal(t, "Emma Wilson", got.DriverName)

	snap := q.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, queue.StatusSynced, snap[0].Status)
	assert.Equal(t, queue.StatusFailed, snap[1].Status)
	assert.Equal(t, queue.StatusSynced, snap[2].Status)
}

func TestRecoverAndSync_CreateOrderReplay(t *testing.T) {
	registry := offlineRegistry()
	orders := store.New()
	q := queue.New()
	auditLog := audit.NewLog()

	_, err := q.Enqueue(queue.ActionCreateOrder, queue.CreateOrderPayload{Order: testOrder("ORD-NEW")})
	require.NoError(t, err)

	c := NewCoordinator(registry, orders, q, auditLog, zap.NewNop(), 0)
	res, err := c.RecoverAndSync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, res.SyncedCount)
	_, err = orders.Get("ORD-NEW")
	assert.NoError(t, err)
}

func TestRecoverAndSync_DuplicateCreateFailsThatItemOnly(t *testing.T) {
	registry := offlineRegistry()
	orders := store.New()
	q := queue.New()
	auditLog := audit.NewLog()

	_, err := q.Enqueue(queue.ActionCreateOrder, queue.CreateOrderPayload{Order: testOrder("ORD-NEW")})
	require.NoError(t, err)
	_, err = q.Enqueue(queue.ActionCreateOrder, queue.CreateOrderPayload{Order: testOrder("ORD-NEW")})
	require.NoError(t, err)

	c := NewCoordinator(registry, orders, q, auditLog, zap.NewNop(), 0)
	res, err := c.RecoverAndSync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, res.SyncedCount)
	assert.Equal(t, 1, res.FailedCount)
	assert.Equal(t, 1, orders.Len())
}

func TestRecoverAndSync_UnknownActionType(t *testing.T) {
	registry := offlineRegistry()
	orders := store.New()
	q := queue.New()
	auditLog := audit.NewLog()

	_, err := q.Enqueue(queue.ActionType("TeleportOrder"), map[string]string{"order_id": "ORD-1"})
	require.NoError(t, err)

	c := NewCoordinator(registry, orders, q, auditLog, zap.NewNop(), 0)
	res, err := c.RecoverAndSync(context.Background())

	require.NoError(t, err, "an unknown action type must not crash the batch")
	assert.Equal(t, 1, res.FailedCount)

	snap := q.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, queue.StatusFailed, snap[0].Status)
}

func TestRecoverAndSync_MalformedPayload(t *testing.T) {
	registry := offlineRegistry()
	orders := store.New()
	require.NoError(t, orders.Create(testOrder("ORD-1")))
	q := queue.New()
	auditLog := audit.NewLog()

	// missing status field
	_, err := q.Enqueue(queue.ActionUpdateOrderStatus, map[string]string{"order_id": "ORD-1"})
	require.NoError(t, err)

	c := NewCoordinator(registry, orders, q, auditLog, zap.NewNop(), 0)
	res, err := c.RecoverAndSync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, res.FailedCount)
	require.Len(t, res.Items, 1)
	assert.Error(t, res.Items[0].Err)
}

func TestRecoverAndSync_AuditTrail(t *testing.T) {
	registry := offlineRegistry()
	orders := store.New()
	require.NoError(t, orders.Create(testOrder("ORD-1")))
	q := queue.New()
	auditLog := audit.NewLog()

	_, err := q.Enqueue(queue.ActionUpdateOrderStatus, queue.UpdateOrderStatusPayload{OrderID: "ORD-1", Status: model.StatusEnRoute})
	require.NoError(t, err)
	_, err = q.Enqueue(queue.ActionUpdateOrderStatus, queue.UpdateOrderStatusPayload{OrderID: "ORD-MISSING", Status: model.StatusEnRoute})
	require.NoError(t, err)

	c := NewCoordinator(registry, orders, q, auditLog, zap.NewNop(), 0)
	_, err = c.RecoverAndSync(context.Background())
	require.NoError(t, err)

	entries := auditLog.Entries()
	require.Len(t, entries, 3, "one entry per item plus the run summary")

	assert.Equal(t, incident.ModeOffline, entries[0].Mode, "item entries carry the queuing-time mode")
	assert.Contains(t, entries[0].Details, "Synced: UpdateOrderStatus for order ORD-1")
	assert.Equal(t, "ORD-1", entries[0].OrderID)

	assert.Equal(t, incident.ModeOffline, entries[1].Mode)
	assert.Contains(t, entries[1].Details, "Failed to sync")

	summary := entries[2]
	assert.Equal(t, incident.ModeNormal, summary.Mode)
	assert.Equal(t, audit.ActionRecovery, summary.ActionType)
	assert.True(t, strings.Contains(summary.Details, "Network recovered. Synced 1 actions, 1 failed."))
}

func TestRecoverAndSync_ClearsNetworkBeforeReplay(t *testing.T) {
	registry := offlineRegistry()
	orders := store.New()
	q := queue.New()

	c := NewCoordinator(registry, orders, q, audit.NewLog(), zap.NewNop(), 0)
	_, err := c.RecoverAndSync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, incident.ModeNormal, registry.Mode())
	s := registry.Snapshot()
	assert.False(t, s.Network.Active)
	assert.Equal(t, incident.NetworkDegraded, s.Network.Level)
}

func TestRecoverAndSync_EmptyQueue(t *testing.T) {
	registry := offlineRegistry()
	c := NewCoordinator(registry, store.New(), queue.New(), audit.NewLog(), zap.NewNop(), 0)

	res, err := c.RecoverAndSync(context.Background())

	require.NoError(t, err)
	assert.Zero(t, res.SyncedCount)
	assert.Zero(t, res.FailedCount)
}

func TestRecoverAndSync_StoreFailureMarksItemFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := offlineRegistry()
	mockStore := mocks.NewMockOrderStore(ctrl)
	q := queue.New()
	auditLog := audit.NewLog()

	_, err := q.Enqueue(queue.ActionAssignDriver, queue.AssignDriverPayload{OrderID: "ORD-1", DriverName: "Tom Taylor"})
	require.NoError(t, err)

	mockStore.EXPECT().
		AssignDriver("ORD-1", "Tom Taylor").
		Return(store.ErrOrderNotFound)

	c := NewCoordinator(registry, mockStore, q, auditLog, zap.NewNop(), 0)
	res, err := c.RecoverAndSync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, res.FailedCount)
	require.Len(t, res.Items, 1)
	assert.ErrorIs(t, res.Items[0].Err, store.ErrOrderNotFound)
}

func TestRecoverAndSync_SingleFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := offlineRegistry()
	mockStore := mocks.NewMockOrderStore(ctrl)
	q := queue.New()

	_, err := q.Enqueue(queue.ActionUpdateOrderStatus, queue.UpdateOrderStatusPayload{OrderID: "ORD-1", Status: model.StatusEnRoute})
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	mockStore.EXPECT().
		UpdateStatus("ORD-1", model.StatusEnRoute).
		DoAndReturn(func(string, model.OrderStatus) error {
			close(started)
			<-release
			return nil
		})

	c := NewCoordinator(registry, mockStore, q, audit.NewLog(), zap.NewNop(), 0)

	var g errgroup.Group
	g.Go(func() error {
		_, err := c.RecoverAndSync(context.Background())
		return err
	})

	<-started
	_, err = c.RecoverAndSync(context.Background())
	assert.ErrorIs(t, err, ErrRecoveryInProgress)

	close(release)
	require.NoError(t, g.Wait())

	// the guard releases once the first run finishes
	_, err = c.RecoverAndSync(context.Background())
	assert.NoError(t, err)
}
