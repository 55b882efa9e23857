package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/incident"
)

func TestLog_Append(t *testing.T) {
	fixedTime := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	l := NewLog()
	l.timeNow = func() time.Time { return fixedTime }

	e := l.Append(incident.ModeOffline, "UpdateOrderStatus", "Synced: UpdateOrderStatus for order ORD-1", "ORD-1")

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, fixedTime, e.Timestamp)
	assert.Equal(t, incident.ModeOffline, e.Mode)
	assert.Equal(t, "ORD-1", e.OrderID)
	assert.Equal(t, 1, l.Len())
}

func TestLog_EntriesPreserveAppendOrder(t *testing.T) {
	l := NewLog()
	l.Append(incident.ModeNormal, "AssignDriver", "first", "ORD-1")
	l.Append(incident.ModeOffline, "CreateOrder", "second", "ORD-2")
	l.Append(incident.ModeNormal, ActionRecovery, "third", "")

	entries := l.Entries()

	require.Len(t, entries, 3)
	assert.Equal(t, "first", entries[0].Details)
	assert.Equal(t, "second", entries[1].Details)
	assert.Equal(t, "third", entries[2].Details)
}

func TestLog_Filtered(t *testing.T) {
	l := NewLog()
	l.Append(incident.ModeOffline, "UpdateOrderStatus", "a", "ORD-1")
	l.Append(incident.ModeOffline, "AssignDriver", "b", "ORD-2")
	l.Append(incident.ModeNormal, ActionRecovery, "c", "")

	t.Run("by mode", func(t *testing.T) {
		got := l.Filtered(Filter{Mode: incident.ModeOffline})
		assert.Len(t, got, 2)
	})

	t.Run("by action type", func(t *testing.T) {
		got := l.Filtered(Filter{ActionType: ActionRecovery})
		require.Len(t, got, 1)
		assert.Equal(t, "c", got[0].Details)
	})

	t.Run("by order id", func(t *testing.T) {
		got := l.Filtered(Filter{OrderID: "ORD-2"})
		require.Len(t, got, 1)
		assert.Equal(t, "b", got[0].Details)
	})

	t.Run("zero filter matches all", func(t *testing.T) {
		assert.Len(t, l.Filtered(Filter{}), 3)
	})
}

func TestLog_EntriesIsACopy(t *testing.T) {
	l := NewLog()
	l.Append(incident.ModeNormal, "CreateOrder", "original", "ORD-1")

	entries := l.Entries()
	entries[0].Details = "tampered"

	assert.Equal(t, "original", l.Entries()[0].Details)
}

func TestLog_Clear(t *testing.T) {
	l := NewLog()
	l.Append(incident.ModeNormal, "CreateOrder", "x", "")

	l.Clear()

	assert.Zero(t, l.Len())
}
