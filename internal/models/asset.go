package models

// AreaType selects which location link on an asset is meaningful.
type AreaType string

const (
	AreaTypeApartment AreaType = "apartment"
	AreaTypeArea      AreaType = "area"
)

// Asset is a serviceable piece of building equipment (boiler, lift, pump).
// Dates are calendar dates (YYYY-MM-DD).
type Asset struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	AreaType        AreaType `json:"area_type"`
	ApartmentID     *int64   `json:"apartment_id,omitempty"`
	AreaID          *int64   `json:"area_id,omitempty"`
	ContractorID    *int64   `json:"contractor_id,omitempty"`
	LastServiceDate *string  `json:"last_service_date,omitempty"`
	IntervalDays    *int64   `json:"interval_days,omitempty"`
	NextDueDate     *string  `json:"next_due_date,omitempty"`
	Notes           string   `json:"notes"`
}

// AssetUpdate carries the mutable service-planning fields.
type AssetUpdate struct {
	Name            *string `json:"name"`
	ContractorID    *int64  `json:"contractor_id"`
	LastServiceDate *string `json:"last_service_date"`
	IntervalDays    *int64  `json:"interval_days"`
	NextDueDate     *string `json:"next_due_date"`
	Notes           *string `json:"notes"`
}
