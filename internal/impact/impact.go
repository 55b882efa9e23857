// Package impact derives delay-adjusted ETAs and escalated risk levels from
// the current incident snapshot. Everything here is a pure function: same
// orders plus same snapshot always produces the same output, and inputs are
// never mutated.
package impact

import (
	"math"

	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/incident"
	"gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/model"
)

// Total per-severity tables. Keeping every severity in the map makes a
// missing variant a visible zero rather than a silent conditional fallthrough.
var (
	rainMultiplier = map[incident.Severity]float64{
		incident.SeverityLow:    1.10,
		incident.SeverityMedium: 1.25,
		incident.SeverityHigh:   1.45,
	}

	windDelayMinutes = map[incident.Severity]int{
		incident.SeverityLow:    5,
		incident.SeverityMedium: 12,
		incident.SeverityHigh:   20,
	}

	// Low severity closures are informational only and deliberately absent.
	closureMultiplier = map[incident.Severity]float64{
		incident.SeverityMedium: 1.30,
		incident.SeverityHigh:   1.60,
	}
)

// ApplyIncidents returns a fresh slice of orders with AdjustedEtaMinutes and
// RiskLevel recomputed from the base ETA and intrinsic risk. Adjustments
// stack in a fixed sequence: rain multiplier, wind additive delay, then the
// road closure multiplier on top of the running ETA.
func ApplyIncidents(orders []model.Order, state incident.State) []model.Order {
	adjusted := make([]model.Order, len(orders))
	for i, o := range orders {
		adjusted[i] = applyToOrder(o, state)
	}
	return adjusted
}

func applyToOrder(o model.Order, s incident.State) model.Order {
	eta := o.BaseEtaMinutes
	risk := o.RiskLevel

	if s.Rain.Active {
		eta = roundHalfUp(float64(eta) * rainMultiplier[s.Rain.Severity])
	}
	if s.Wind.Active {
		eta += windDelayMinutes[s.Wind.Severity]
	}
	if s.RoadClosure.Active {
		if mult, ok := closureMultiplier[s.RoadClosure.Severity]; ok {
			risk = escalate(risk)
			eta = roundHalfUp(float64(eta) * mult)
		}
	}

	o.AdjustedEtaMinutes = eta
	o.RiskLevel = risk
	return o
}

// escalate raises risk one step and saturates at High.
func escalate(r model.RiskLevel) model.RiskLevel {
	if r == model.RiskLow {
		return model.RiskMedium
	}
	return model.RiskHigh
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// DelayStats summarizes how far the adjusted view has drifted from the
// nominal ETAs, for dashboard consumers.
type DelayStats struct {
	DelayedCount      int
	AvgDelayMinutes   int
	TotalDelayMinutes int
}

func Stats(orders []model.Order) DelayStats {
	var stats DelayStats
	for _, o := range orders {
		delay := o.AdjustedEtaMinutes - o.BaseEtaMinutes
		if delay > 0 {
			stats.DelayedCount++
		}
		stats.TotalDelayMinutes += delay
	}
	if len(orders) > 0 {
		stats.AvgDelayMinutes = roundHalfUp(float64(stats.TotalDelayMinutes) / float64(len(orders)))
	}
	return stats
}
