package domain

import "time"

type News struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	Images    []string  `json:"images"`
	CreatedBy uint      `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NewsUpdate struct {
	Title     *string
	Content   *string
	Thumbnail *string
	Images    []string
}
