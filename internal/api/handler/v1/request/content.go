package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/pinswap/api/internal/domain"
)

type CreateNewsRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Thumbnail string   `json:"thumbnail"`
	Images    []string `json:"images"`
}

func (req *CreateNewsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&req.Content, validation.Required),
	)
}

func (req *CreateNewsRequest) ToDomain(createdBy uint) domain.News {
	return domain.News{
		Title:     req.Title,
		Content:   req.Content,
		Thumbnail: req.Thumbnail,
		Images:    req.Images,
		CreatedBy: createdBy,
	}
}

type UpdateNewsRequest struct {
	Title     *string  `json:"title"`
	Content   *string  `json:"content"`
	Thumbnail *string  `json:"thumbnail"`
	Images    []string `json:"images"`
}

func (req *UpdateNewsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty),
		validation.Field(&req.Content, validation.NilOrNotEmpty),
	)
}

func (req *UpdateNewsRequest) ToDomain() domain.NewsUpdate {
	return domain.NewsUpdate{
		Title:     req.Title,
		Content:   req.Content,
		Thumbnail: req.Thumbnail,
		Images:    req.Images,
	}
}

type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	Sponsor     string    `json:"sponsor"`
	Images      []string  `json:"images"`
	Thumbnail   string    `json:"thumbnail"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required),
		validation.Field(&req.Date, validation.Required),
	)
}

func (req *CreateEventRequest) ToDomain(createdBy uint) domain.Event {
	return domain.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		Sponsor:     req.Sponsor,
		Images:      req.Images,
		Thumbnail:   req.Thumbnail,
		CreatedBy:   createdBy,
	}
}

type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Date        *time.Time `json:"date"`
	Sponsor     *string    `json:"sponsor"`
	Images      []string   `json:"images"`
	Thumbnail   *string    `json:"thumbnail"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty),
	)
}

func (req *UpdateEventRequest) ToDomain() domain.EventUpdate {
	return domain.EventUpdate{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		Sponsor:     req.Sponsor,
		Images:      req.Images,
		Thumbnail:   req.Thumbnail,
	}
}

type RegistrationRequest struct {
	EventID uint `json:"eventId"`
}

func (req *RegistrationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
	)
}

type FeedbackRequest struct {
	Message string `json:"message"`
}

func (req *FeedbackRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Message, validation.Required, validation.Length(1, 5000)),
	)
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

func (req *SubscribeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
	)
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

func (req *ChatRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Message, validation.Required, validation.Length(1, 2000)),
	)
}
