package recovery

import (
	"encoding/json"
	"errors"
	"fmt"

	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/queue"
)

// Apply decodes an intent payload and applies it to the store. It is shared
// by the recovery drain and the online direct-apply path. The returned order
// id is best-effort and may be set even when the apply itself failed, so the
// caller can still reference the target in audit entries.
func Apply(store OrderStore, actionType queue.ActionType, payload json.RawMessage) (string, error) {
	switch actionType {
	case queue.ActionUpdateOrderStatus:
		var p queue.UpdateOrderStatusPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return "", fmt.Errorf("decode %s payload: %w", actionType, err)
		}
		if p.OrderID == "" {
			return "", errors.New("update status payload missing order id")
		}
		if p.Status == "" {
			return p.OrderID, errors.New("update status payload missing status")
		}
		return p.OrderID, store.UpdateStatus(p.OrderID, p.Status)

	case queue.ActionAssignDriver:
		var p queue.AssignDriverPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return "", fmt.Errorf("decode %s payload: %w", actionType, err)
		}
		if p.OrderID == "" {
			return "", errors.New("assign driver payload missing order id")
		}
		if p.DriverName == "" {
			return p.OrderID, errors.New("assign driver payload missing driver name")
		}
		return p.OrderID, store.AssignDriver(p.OrderID, p.DriverName)

	case queue.ActionCreateOrder:
		var p queue.CreateOrderPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return "", fmt.Errorf("decode %s payload: %w", actionType, err)
		}
		return p.Order.ID, store.Create(p.Order)

	default:
		return "", fmt.Errorf("unknown action type %q", actionType)
	}
}
