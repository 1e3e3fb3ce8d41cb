package repository

import (
	"context"
	"fmt"

	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/repository/dao"
)

var (
	ErrEventNotFound        = dao.ErrEventNotFound
	ErrRegistrationNotFound = dao.ErrRegistrationNotFound
	ErrRegistrationExists   = dao.ErrRegistrationExists
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	List(ctx context.Context, search string, offset, limit int) ([]dao.Event, int64, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (dao.Event, error)
	Delete(ctx context.Context, id uint) error
	InsertRegistration(ctx context.Context, registration dao.EventRegistration) (dao.EventRegistration, error)
	FindRegistration(ctx context.Context, eventID, userID uint) (dao.EventRegistration, error)
	FindRegistrationByID(ctx context.Context, id uint) (dao.EventRegistration, error)
	UpdateRegistrationStatus(ctx context.Context, id uint, status string) (dao.EventRegistration, error)
	FindRegistrationsByEvent(ctx context.Context, eventID uint, offset, limit int) ([]dao.EventRegistration, int64, error)
	FindRegistrationsByUser(ctx context.Context, userID uint, offset, limit int) ([]dao.EventRegistration, int64, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, dao.Event{
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		Date:        event.Date,
		Sponsor:     event.Sponsor,
		Images:      event.Images,
		Thumbnail:   event.Thumbnail,
		CreatedBy:   event.CreatedBy,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eventToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return eventToDomain(found), nil
}

func (r *EventRepository) List(ctx context.Context, search string, page domain.Page) ([]domain.Event, int64, error) {
	found, total, err := r.dao.List(ctx, search, page.Offset(), page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	result := make([]domain.Event, 0, len(found))
	for _, e := range found {
		result = append(result, eventToDomain(e))
	}

	return result, total, nil
}

func (r *EventRepository) Update(ctx context.Context, id uint, update domain.EventUpdate) (domain.Event, error) {
	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Location != nil {
		fields["location"] = *update.Location
	}
	if update.Date != nil {
		fields["date"] = *update.Date
	}
	if update.Sponsor != nil {
		fields["sponsor"] = *update.Sponsor
	}
	if update.Images != nil {
		fields["images"] = jsonColumn(update.Images)
	}
	if update.Thumbnail != nil {
		fields["thumbnail"] = *update.Thumbnail
	}
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return eventToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) CreateRegistration(ctx context.Context, eventID, userID uint) (domain.EventRegistration, error) {
	created, err := r.dao.InsertRegistration(ctx, dao.EventRegistration{
		EventID: eventID,
		UserID:  userID,
		Status:  string(domain.RegistrationRegistered),
	})
	if err != nil {
		return domain.EventRegistration{}, fmt.Errorf("r.dao.InsertRegistration -> %w", err)
	}

	return registrationToDomain(created), nil
}

func (r *EventRepository) FindRegistration(ctx context.Context, eventID, userID uint) (domain.EventRegistration, error) {
	found, err := r.dao.FindRegistration(ctx, eventID, userID)
	if err != nil {
		return domain.EventRegistration{}, fmt.Errorf("r.dao.FindRegistration -> %w", err)
	}

	return registrationToDomain(found), nil
}

func (r *EventRepository) FindRegistrationByID(ctx context.Context, id uint) (domain.EventRegistration, error) {
	found, err := r.dao.FindRegistrationByID(ctx, id)
	if err != nil {
		return domain.EventRegistration{}, fmt.Errorf("r.dao.FindRegistrationByID -> %w", err)
	}

	return registrationToDomain(found), nil
}

func (r *EventRepository) UpdateRegistrationStatus(ctx context.Context, id uint, status domain.RegistrationStatus) (domain.EventRegistration, error) {
	updated, err := r.dao.UpdateRegistrationStatus(ctx, id, string(status))
	if err != nil {
		return domain.EventRegistration{}, fmt.Errorf("r.dao.UpdateRegistrationStatus -> %w", err)
	}

	return registrationToDomain(updated), nil
}

func (r *EventRepository) FindRegistrationsByEvent(ctx context.Context, eventID uint, page domain.Page) ([]domain.EventRegistration, int64, error) {
	found, total, err := r.dao.FindRegistrationsByEvent(ctx, eventID, page.Offset(), page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindRegistrationsByEvent -> %w", err)
	}

	return registrationsToDomain(found), total, nil
}

func (r *EventRepository) FindRegistrationsByUser(ctx context.Context, userID uint, page domain.Page) ([]domain.EventRegistration, int64, error) {
	found, total, err := r.dao.FindRegistrationsByUser(ctx, userID, page.Offset(), page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindRegistrationsByUser -> %w", err)
	}

	return registrationsToDomain(found), total, nil
}

func eventToDomain(e dao.Event) domain.Event {
	event := domain.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		Date:        e.Date,
		Sponsor:     e.Sponsor,
		Images:      e.Images,
		Thumbnail:   e.Thumbnail,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if event.Images == nil {
		event.Images = []string{}
	}

	return event
}

func registrationToDomain(r dao.EventRegistration) domain.EventRegistration {
	registration := domain.EventRegistration{
		ID:        r.ID,
		EventID:   r.EventID,
		UserID:    r.UserID,
		Status:    domain.RegistrationStatus(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Event.ID != 0 {
		event := eventToDomain(r.Event)
		registration.Event = &event
	}
	if r.User.ID != 0 {
		registration.User = &domain.User{
			ID:    r.User.ID,
			Name:  r.User.Name,
			Email: r.User.Email,
			Phone: r.User.Phone,
			Role:  domain.Role(r.User.Role),
		}
	}

	return registration
}

func registrationsToDomain(registrations []dao.EventRegistration) []domain.EventRegistration {
	result := make([]domain.EventRegistration, 0, len(registrations))
	for _, r := range registrations {
		result = append(result, registrationToDomain(r))
	}

	return result
}
