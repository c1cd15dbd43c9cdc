package models

import "time"

// Apartment statuses.
const (
	ApartmentAvailable   = "available"
	ApartmentOccupied    = "occupied"
	ApartmentMaintenance = "maintenance"
)

// Apartment is a single unit in the building inventory.
type Apartment struct {
	ID          string    `bson:"id" json:"id"`
	Code        string    `bson:"code" json:"code"` // e.g. "A-1204"
	Building    string    `bson:"building" json:"building"`
	Floor       int       `bson:"floor" json:"floor"`
	AreaSqm     float64   `bson:"area_sqm" json:"areaSqm"`
	Bedrooms    int       `bson:"bedrooms" json:"bedrooms"`
	MonthlyRent float64   `bson:"monthly_rent" json:"monthlyRent"`
	Status      string    `bson:"status" json:"status"`
	ResidentIDs []string  `bson:"resident_ids,omitempty" json:"residentIds,omitempty"`
	ImageURLs   []string  `bson:"image_urls,omitempty" json:"imageUrls,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
