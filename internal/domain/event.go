package domain

import "time"

type Event struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	Sponsor     string    `json:"sponsor"`
	Images      []string  `json:"images"`
	Thumbnail   string    `json:"thumbnail"`
	CreatedBy   uint      `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type EventUpdate struct {
	Title       *string
	Description *string
	Location    *string
	Date        *time.Time
	Sponsor     *string
	Images      []string
	Thumbnail   *string
}

type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "registered"
	RegistrationCancelled  RegistrationStatus = "cancelled"
)

type EventRegistration struct {
	ID        uint               `json:"id"`
	EventID   uint               `json:"eventId"`
	Event     *Event             `json:"event,omitempty"`
	UserID    uint               `json:"userId"`
	User      *User              `json:"user,omitempty"`
	Status    RegistrationStatus `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
