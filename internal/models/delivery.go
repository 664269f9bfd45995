package models

// DeliveryQuote is the delivery endpoint's answer for one address. It is
// produced per request, rendered, and discarded; nothing here is persisted.
type DeliveryQuote struct {
	Success        bool    `json:"success"`
	DistanceKm     float64 `json:"distance_km,omitempty"`
	DeliveryCharge float64 `json:"delivery_charge,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// DeliveryZone is one row of the static zone reference list.
type DeliveryZone struct {
	Range       string  `json:"range"`
	Charge      float64 `json:"charge"`
	Description string  `json:"description"`
}

// DeliveryZoneList matches the GET /delivery-zones payload shape.
type DeliveryZoneList struct {
	DeliveryZones []DeliveryZone `json:"delivery_zones"`
}
