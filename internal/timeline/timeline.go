// Package timeline reconstructs a plausible status progression for an order
// so detail views can render a history even though the store only keeps the
// current status.
package timeline

import (
	"fmt"
	"time"

	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/model"
)

// stepSpacing separates consecutive history items, walking backwards from
// the order's last update.
const stepSpacing = 45 * time.Minute

// minItems keeps early-stage orders from rendering a single-row timeline.
const minItems = 3

type Item struct {
	Status      model.OrderStatus `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	Description string            `json:"description"`
}

// History generates the status progression up to the order's current status,
// oldest first. Orders early in their lifecycle repeat the current status to
// reach the minimum item count.
func History(o model.Order) []Item {
	current := statusIndex(o.Status)
	count := current + 1
	if count < minItems {
		count = minItems
	}

	items := make([]Item, 0, count)
	for i := 0; i < count; i++ {
		status := o.Status
		if i <= current {
			status = model.StatusProgression[i]
		}
		items = append(items, Item{
			Status:      status,
			Timestamp:   o.LastUpdatedAt.Add(-time.Duration(count-i) * stepSpacing),
			Description: describe(o, status),
		})
	}
	return items
}

func statusIndex(s model.OrderStatus) int {
	for i, st := range model.StatusProgression {
		if st == s {
			return i
		}
	}
	return 0
}

func describe(o model.Order, status model.OrderStatus) string {
	switch status {
	case model.StatusCreated:
		return "Order was created"
	case model.StatusAssigned:
		if o.DriverName != "" {
			return fmt.Sprintf("Assigned to %s", o.DriverName)
		}
		return "Driver assigned"
	case model.StatusPickedUp:
		return "Package picked up from origin"
	case model.StatusEnRoute:
		return fmt.Sprintf("En route from %s to %s", o.FromCity, o.ToCity)
	case model.StatusDelivered:
		return fmt.Sprintf("Delivered to %s", o.ToCity)
	case model.StatusCancelled:
		return "Order was cancelled"
	}
	return ""
}
