package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/repository"
)

var (
	ErrEventNotFound        = repository.ErrEventNotFound
	ErrRegistrationNotFound = repository.ErrRegistrationNotFound
	ErrAlreadyRegistered    = errors.New("already registered")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	List(ctx context.Context, search string, page domain.Page) ([]domain.Event, int64, error)
	Update(ctx context.Context, id uint, update domain.EventUpdate) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
	CreateRegistration(ctx context.Context, eventID, userID uint) (domain.EventRegistration, error)
	FindRegistration(ctx context.Context, eventID, userID uint) (domain.EventRegistration, error)
	FindRegistrationByID(ctx context.Context, id uint) (domain.EventRegistration, error)
	UpdateRegistrationStatus(ctx context.Context, id uint, status domain.RegistrationStatus) (domain.EventRegistration, error)
	FindRegistrationsByEvent(ctx context.Context, eventID uint, page domain.Page) ([]domain.EventRegistration, int64, error)
	FindRegistrationsByUser(ctx context.Context, userID uint, page domain.Page) ([]domain.EventRegistration, int64, error)
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

func (s *EventService) ListEvents(ctx context.Context, search string, page domain.Page) ([]domain.Event, int64, error) {
	events, total, err := s.repo.List(ctx, search, page)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.List -> %w", err)
	}

	return events, total, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id uint, update domain.EventUpdate) (domain.Event, error) {
	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// Register signs the user up for the event, reviving a cancelled registration.
// An active registration is returned together with ErrAlreadyRegistered.
func (s *EventService) Register(ctx context.Context, eventID, userID uint) (domain.EventRegistration, error) {
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return domain.EventRegistration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	existing, err := s.repo.FindRegistration(ctx, eventID, userID)
	switch {
	case err == nil && existing.Status == domain.RegistrationRegistered:
		return existing, ErrAlreadyRegistered
	case err == nil:
		revived, err := s.repo.UpdateRegistrationStatus(ctx, existing.ID, domain.RegistrationRegistered)
		if err != nil {
			return domain.EventRegistration{}, fmt.Errorf("s.repo.UpdateRegistrationStatus -> %w", err)
		}

		return revived, nil
	case !errors.Is(err, repository.ErrRegistrationNotFound):
		return domain.EventRegistration{}, fmt.Errorf("s.repo.FindRegistration -> %w", err)
	}

	created, err := s.repo.CreateRegistration(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationExists) {
			return domain.EventRegistration{}, ErrAlreadyRegistered
		}

		return domain.EventRegistration{}, fmt.Errorf("s.repo.CreateRegistration -> %w", err)
	}

	return created, nil
}

func (s *EventService) CancelRegistration(ctx context.Context, eventID, userID uint) (domain.EventRegistration, error) {
	existing, err := s.repo.FindRegistration(ctx, eventID, userID)
	if err != nil {
		return domain.EventRegistration{}, fmt.Errorf("s.repo.FindRegistration -> %w", err)
	}

	return s.cancel(ctx, existing)
}

// CancelRegistrationByID cancels one of the user's own registrations.
func (s *EventService) CancelRegistrationByID(ctx context.Context, id, userID uint) (domain.EventRegistration, error) {
	existing, err := s.repo.FindRegistrationByID(ctx, id)
	if err != nil {
		return domain.EventRegistration{}, fmt.Errorf("s.repo.FindRegistrationByID -> %w", err)
	}
	if existing.UserID != userID {
		return domain.EventRegistration{}, ErrRegistrationNotFound
	}

	return s.cancel(ctx, existing)
}

func (s *EventService) cancel(ctx context.Context, registration domain.EventRegistration) (domain.EventRegistration, error) {
	if registration.Status == domain.RegistrationCancelled {
		return registration, nil
	}

	updated, err := s.repo.UpdateRegistrationStatus(ctx, registration.ID, domain.RegistrationCancelled)
	if err != nil {
		return domain.EventRegistration{}, fmt.Errorf("s.repo.UpdateRegistrationStatus -> %w", err)
	}

	return updated, nil
}

// IsRegistered reports whether the user holds an active registration for the event.
func (s *EventService) IsRegistered(ctx context.Context, eventID, userID uint) (bool, error) {
	existing, err := s.repo.FindRegistration(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("s.repo.FindRegistration -> %w", err)
	}

	return existing.Status == domain.RegistrationRegistered, nil
}

func (s *EventService) ListEventRegistrations(ctx context.Context, eventID uint, page domain.Page) ([]domain.EventRegistration, int64, error) {
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	registrations, total, err := s.repo.FindRegistrationsByEvent(ctx, eventID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindRegistrationsByEvent -> %w", err)
	}

	return registrations, total, nil
}

func (s *EventService) ListUserRegistrations(ctx context.Context, userID uint, page domain.Page) ([]domain.EventRegistration, int64, error) {
	registrations, total, err := s.repo.FindRegistrationsByUser(ctx, userID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindRegistrationsByUser -> %w", err)
	}

	return registrations, total, nil
}
