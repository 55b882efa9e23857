package model

import (
	"fmt"
	"time"
)

type City string

const (
	CityHamilton City = "Hamilton"
	CityAuckland City = "Auckland"
	CityTauranga City = "Tauranga"
	CityRotorua  City = "Rotorua"
)

type OrderStatus string

const (
	StatusCreated   OrderStatus = "Created"
	StatusAssigned  OrderStatus = "Assigned"
	StatusPickedUp  OrderStatus = "PickedUp"
	StatusEnRoute   OrderStatus = "EnRoute"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// StatusProgression is the normal delivery lifecycle. Cancelled is terminal
// and sits at the end only so views can index it; it is reachable from any
// non-terminal status.
var StatusProgression = []OrderStatus{
	StatusCreated,
	StatusAssigned,
	StatusPickedUp,
	StatusEnRoute,
	StatusDelivered,
	StatusCancelled,
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Order is one shipment between two cities. AdjustedEtaMinutes and RiskLevel
// carry the intrinsic values at rest; the impact engine recomputes both from
// BaseEtaMinutes and the current incident snapshot on every read.
type Order struct {
	ID                 string      `json:"id"`
	FromCity           City        `json:"from_city"`
	ToCity             City        `json:"to_city"`
	Status             OrderStatus `json:"status"`
	DriverName         string      `json:"driver_name,omitempty"`
	BaseEtaMinutes     int         `json:"base_eta_minutes"`
	AdjustedEtaMinutes int         `json:"adjusted_eta_minutes"`
	RiskLevel          RiskLevel   `json:"risk_level"`
	LastUpdatedAt      time.Time   `json:"last_updated_at"`
}

func ValidCity(c City) bool {
	switch c {
	case CityHamilton, CityAuckland, CityTauranga, CityRotorua:
		return true
	}
	return false
}

func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusCreated, StatusAssigned, StatusPickedUp, StatusEnRoute, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func ValidRiskLevel(r RiskLevel) bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// Validate checks the construction-time invariants. Derived fields are not
// checked here, they are overwritten by the impact engine anyway.
func (o Order) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("order id is empty")
	}
	if !ValidCity(o.FromCity) {
		return fmt.Errorf("unknown from city %q", o.FromCity)
	}
	if !ValidCity(o.ToCity) {
		return fmt.Errorf("unknown to city %q", o.ToCity)
	}
	if o.FromCity == o.ToCity {
		return fmt.Errorf("order %s: from and to city are both %q", o.ID, o.FromCity)
	}
	if !ValidStatus(o.Status) {
		return fmt.Errorf("order %s: unknown status %q", o.ID, o.Status)
	}
	if !ValidRiskLevel(o.RiskLevel) {
		return fmt.Errorf("order %s: unknown risk level %q", o.ID, o.RiskLevel)
	}
	if o.BaseEtaMinutes < 0 {
		return fmt.Errorf("order %s: negative base ETA %d", o.ID, o.BaseEtaMinutes)
	}
	if o.DriverName == "" && o.Status != StatusCreated && o.Status != StatusCancelled {
		return fmt.Errorf("order %s: status %s requires a driver", o.ID, o.Status)
	}
	return nil
}
