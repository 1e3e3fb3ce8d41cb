package domain

import "time"

type LocationType string

const (
	LocationSupermarket LocationType = "supermarket"
	LocationSchool      LocationType = "school"
	LocationBusiness    LocationType = "business"
	LocationPark        LocationType = "park"
	LocationHealthcare  LocationType = "healthcare"
	LocationOther       LocationType = "other"
)

var LocationTypes = []LocationType{
	LocationSupermarket, LocationSchool, LocationBusiness, LocationPark, LocationHealthcare, LocationOther,
}

type LocationStatus string

const (
	LocationStatusActive  LocationStatus = "active"
	LocationStatusDeleted LocationStatus = "deleted"
)

type Location struct {
	ID         uint           `json:"id"`
	BusinessID uint           `json:"businessId,omitempty"`
	Name       string         `json:"name"`
	Address    string         `json:"address,omitempty"`
	Latitude   float64        `json:"latitude"`
	Longitude  float64        `json:"longitude"`
	OpenHours  string         `json:"openHours,omitempty"`
	Type       LocationType   `json:"type"`
	Status     LocationStatus `json:"status"`
	QRCode     string         `json:"qrCode"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

type LocationFilter struct {
	Type   LocationType
	Status LocationStatus
}

type LocationUpdate struct {
	Name      *string
	Address   *string
	Latitude  *float64
	Longitude *float64
	OpenHours *string
	Type      *LocationType
	Status    *LocationStatus
}

type CheckIn struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"userId"`
	LocationID   uint      `json:"locationId"`
	PointsEarned int       `json:"pointsEarned"`
	CheckInTime  time.Time `json:"checkInTime"`
}

type CheckInResult struct {
	CheckIn     CheckIn
	Location    Location
	TotalPoints int
}
