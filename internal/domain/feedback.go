package domain

import "time"

type Feedback struct {
	ID        uint      `json:"id"`
	UserID    *uint     `json:"userId,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type Subscriber struct {
	ID           uint       `json:"id"`
	Email        string     `json:"email"`
	Confirmed    bool       `json:"confirmed"`
	Token        string     `json:"-"`
	TokenExpires *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
}
