package incident

import (
	"sync"
)

type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

type NetworkLevel string

const (
	NetworkDegraded NetworkLevel = "Degraded"
	NetworkDown     NetworkLevel = "Down"
)

type SystemMode string

const (
	ModeNormal     SystemMode = "Normal"
	ModeDisruption SystemMode = "Disruption"
	ModeOffline    SystemMode = "Offline"
)

// Kind names one of the four hazard slots.
type Kind string

const (
	KindRain        Kind = "rain"
	KindWind        Kind = "wind"
	KindRoadClosure Kind = "roadClosure"
	KindNetwork     Kind = "network"
)

type Hazard struct {
	Active       bool
	Severity     Severity
	Acknowledged bool
}

type Network struct {
	Active       bool
	Level        NetworkLevel
	Acknowledged bool
}

// State is a value snapshot of all four hazard slots. The impact engine and
// mode derivation work on State, never on the live registry, so both stay
// pure functions.
type State struct {
	Rain        Hazard
	Wind        Hazard
	RoadClosure Hazard
	Network     Network
}

// Mode derives the operating mode from a hazard snapshot. First match wins:
// network fully down forces Offline regardless of the weather hazards.
func Mode(s State) SystemMode {
	if s.Network.Active && s.Network.Level == NetworkDown {
		return ModeOffline
	}
	if s.Rain.Active || s.Wind.Active || s.RoadClosure.Active ||
		(s.Network.Active && s.Network.Level == NetworkDegraded) {
		return ModeDisruption
	}
	return ModeNormal
}

// Registry holds the live hazard state for one console process. All reads go
// through Snapshot so callers never observe a half-applied mutation.
type Registry struct {
	mu    sync.RWMutex
	state State
}

func NewRegistry() *Registry {
	return &Registry{
		state: State{
			Rain:        Hazard{Severity: SeverityLow},
			Wind:        Hazard{Severity: SeverityLow},
			RoadClosure: Hazard{Severity: SeverityLow},
			Network:     Network{Level: NetworkDegraded},
		},
	}
}

func (r *Registry) Snapshot() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

func (r *Registry) Mode() SystemMode {
	return Mode(r.Snapshot())
}

// Toggle flips a hazard's activation. Deactivating clears the acknowledged
// flag so the hazard comes back unacknowledged next time.
func (r *Registry) Toggle(kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch kind {
	case KindRain:
		toggleHazard(&r.state.Rain)
	case KindWind:
		toggleHazard(&r.state.Wind)
	case KindRoadClosure:
		toggleHazard(&r.state.RoadClosure)
	case KindNetwork:
		r.state.Network.Active = !r.state.Network.Active
		if !r.state.Network.Active {
			r.state.Network.Acknowledged = false
		}
	}
}

func toggleHazard(h *Hazard) {
	h.Active = !h.Active
	if !h.Active {
		h.Acknowledged = false
	}
}

// SetSeverity sets the severity of a weather hazard. Setting it while the
// hazard is inactive is allowed and simply takes effect on next activation.
// The network slot carries a level, not a severity; use SetNetworkLevel.
func (r *Registry) SetSeverity(kind Kind, sev Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch kind {
	case KindRain:
		r.state.Rain.Severity = sev
	case KindWind:
		r.state.Wind.Severity = sev
	case KindRoadClosure:
		r.state.RoadClosure.Severity = sev
	}
}

func (r *Registry) SetNetworkLevel(level NetworkLevel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Network.Level = level
}

func (r *Registry) Acknowledge(kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch kind {
	case KindRain:
		r.state.Rain.Acknowledged = true
	case KindWind:
		r.state.Wind.Acknowledged = true
	case KindRoadClosure:
		r.state.RoadClosure.Acknowledged = true
	case KindNetwork:
		r.state.Network.Acknowledged = true
	}
}

// RecoverAll deactivates every hazard in one critical section, used by the
// manual "Recover" control.
func (r *Registry) RecoverAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Rain.Active = false
	r.state.Wind.Active = false
	r.state.RoadClosure.Active = false
	r.state.Network.Active = false
	r.state.Rain.Acknowledged = false
	r.state.Wind.Acknowledged = false
	r.state.RoadClosure.Acknowledged = false
	r.state.Network.Acknowledged = false
}

// ClearNetwork brings the network hazard back online without touching the
// weather hazards. The recovery coordinator calls this once before replay so
// the mode reads as non-Offline while the queue drains.
func (r *Registry) ClearNetwork() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Network.Active = false
	r.state.Network.Level = NetworkDegraded
	r.state.Network.Acknowledged = false
}
