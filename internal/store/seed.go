package store

import "gitlab.ozon.dev/pupkingeorgij/opsconsole/internal/model"

// Seed returns the fixed demo fleet covering every status, risk level and
// city pair the console renders. Adjusted ETAs are left at base; the impact
// engine recomputes them on read.
func Seed() []model.Order {
	return []model.Order{
		{ID: "ORD-10000", FromCity: model.CityHamilton, ToCity: model.CityAuckland, Status: model.StatusEnRoute, DriverName: "John Smith", BaseEtaMinutes: 120, AdjustedEtaMinutes: 120, RiskLevel: model.RiskLow},
		{ID: "ORD-10001", FromCity: model.CityAuckland, ToCity: model.CityTauranga, Status: model.StatusPickedUp, DriverName: "Sarah Johnson", BaseEtaMinutes: 90, AdjustedEtaMinutes: 90, RiskLevel: model.RiskMedium},
		{ID: "ORD-10002", FromCity: model.CityTauranga, ToCity: model.CityRotorua, Status: model.StatusAssigned, DriverName: "Mike Brown", BaseEtaMinutes: 60, AdjustedEtaMinutes: 60, RiskLevel: model.RiskLow},
		{ID: "ORD-10003", FromCity: model.CityRotorua, ToCity: model.CityHamilton, Status: model.StatusCreated, BaseEtaMinutes: 75, AdjustedEtaMinutes: 75, RiskLevel: model.RiskLow},
		{ID: "ORD-10004", FromCity: model.CityAuckland, ToCity: model.CityHamilton, Status: model.StatusDelivered, DriverName: "Emma Wilson", BaseEtaMinutes: 105, AdjustedEtaMinutes: 105, RiskLevel: model.RiskLow},
		{ID: "ORD-10005", FromCity: model.CityHamilton, ToCity: model.CityTauranga, Status: model.StatusEnRoute, DriverName: "David Lee", BaseEtaMinutes: 45, AdjustedEtaMinutes: 45, RiskLevel: model.RiskMedium},
		{ID: "ORD-10006", FromCity: model.CityTauranga, ToCity: model.CityAuckland, Status: model.StatusPickedUp, DriverName: "Lisa Anderson", BaseEtaMinutes: 150, AdjustedEtaMinutes: 150, RiskLevel: model.RiskHigh},
		{ID: "ORD-10007", FromCity: model.CityRotorua, ToCity: model.CityTauranga, Status: model.StatusAssigned, DriverName: "Tom Taylor", BaseEtaMinutes: 30, AdjustedEtaMinutes: 30, RiskLevel: model.RiskLow},
		{ID: "ORD-10008", FromCity: model.CityAuckland, ToCity: model.CityRotorua, Status: model.StatusEnRoute, DriverName: "Amy Martinez", BaseEtaMinutes: 180, AdjustedEtaMinutes: 180, RiskLevel: model.RiskMedium},
		{ID: "ORD-10009", FromCity: model.CityHamilton, ToCity: model.CityRotorua, Status: model.StatusCreated, BaseEtaMinutes: 90, AdjustedEtaMinutes: 90, RiskLevel: model.RiskLow},
		{ID: "ORD-10010", FromCity: model.CityTauranga, ToCity: model.CityHamilton, Status: model.StatusDelivered, DriverName: "Chris Davis", BaseEtaMinutes: 60, AdjustedEtaMinutes: 60, RiskLevel: model.RiskLow},
		{ID: "ORD-10011", FromCity: model.CityRotorua, ToCity: model.CityAuckland, Status: model.StatusPickedUp, DriverName: "Rachel White", BaseEtaMinutes: 135, AdjustedEtaMinutes: 135, RiskLevel: model.RiskHigh},
		{ID: "ORD-10012", FromCity: model.CityAuckland, ToCity: model.CityTauranga, Status: model.StatusEnRoute, DriverName: "John Smith", BaseEtaMinutes: 90, AdjustedEtaMinutes: 90, RiskLevel: model.RiskMedium},
		{ID: "ORD-10013", FromCity: model.CityHamilton, ToCity: model.CityAuckland, Status: model.StatusAssigned, DriverName: "Sarah Johnson", BaseEtaMinutes: 120, AdjustedEtaMinutes: 120, RiskLevel: model.RiskLow},
		{ID: "ORD-10014", FromCity: model.CityTauranga, ToCity: model.CityRotorua, Status: model.StatusCreated, BaseEtaMinutes: 45, AdjustedEtaMinutes: 45, RiskLevel: model.RiskLow},
		{ID: "ORD-10015", FromCity: model.CityTauranga, ToCity: model.CityAuckland, Status: model.StatusCancelled, DriverName: "Lisa Anderson", BaseEtaMinutes: 150, AdjustedEtaMinutes: 150, RiskLevel: model.RiskHigh},
	}
}
