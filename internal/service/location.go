package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pinswap/api/internal/config"
	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/metrics"
	"github.com/pinswap/api/internal/repository"
)

var (
	ErrLocationNotFound  = repository.ErrLocationNotFound
	ErrAlreadyCheckedIn  = repository.ErrAlreadyCheckedIn
	ErrNotLocationOwner  = errors.New("location belongs to another business")
	ErrInvalidLocationQR = errors.New("qr code does not match an active location")
)

type LocationRepository interface {
	Create(ctx context.Context, location domain.Location) (domain.Location, error)
	FindByID(ctx context.Context, id uint) (domain.Location, error)
	FindActiveByQRCode(ctx context.Context, code string) (domain.Location, error)
	List(ctx context.Context, filter domain.LocationFilter) ([]domain.Location, error)
	Update(ctx context.Context, id uint, update domain.LocationUpdate) (domain.Location, error)
	CreateCheckIn(ctx context.Context, userID, locationID uint, points int, at time.Time) (domain.CheckIn, error)
}

type LocationService struct {
	conf   *config.RewardsConfig
	repo   LocationRepository
	points PointsRepository
	now    func() time.Time
}

func NewLocationService(conf *config.RewardsConfig, repo LocationRepository, points PointsRepository) *LocationService {
	return &LocationService{
		conf:   conf,
		repo:   repo,
		points: points,
		now:    time.Now,
	}
}

func (s *LocationService) ListLocations(ctx context.Context, filter domain.LocationFilter) ([]domain.Location, error) {
	locations, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return locations, nil
}

func (s *LocationService) GetLocation(ctx context.Context, id uint) (domain.Location, error) {
	location, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Location{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return location, nil
}

// CreateLocation stores a collection point with a fresh QR code. A business
// account always owns the locations it creates.
func (s *LocationService) CreateLocation(ctx context.Context, actor domain.User, location domain.Location) (domain.Location, error) {
	if actor.Role == domain.RoleBusiness {
		location.BusinessID = actor.ID
	}
	if location.Type == "" {
		location.Type = domain.LocationOther
	}
	location.Status = domain.LocationStatusActive
	location.QRCode = uuid.NewString()

	created, err := s.repo.Create(ctx, location)
	if err != nil {
		return domain.Location{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *LocationService) UpdateLocation(ctx context.Context, actor domain.User, id uint, update domain.LocationUpdate) (domain.Location, error) {
	if err := s.checkOwner(ctx, actor, id); err != nil {
		return domain.Location{}, err
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.Location{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteLocation marks the location deleted; check-ins keep referring to it.
func (s *LocationService) DeleteLocation(ctx context.Context, actor domain.User, id uint) (domain.Location, error) {
	status := domain.LocationStatusDeleted

	return s.UpdateLocation(ctx, actor, id, domain.LocationUpdate{Status: &status})
}

// CheckIn credits the configured points for the first visit of the day to the
// location behind qrCode. The once-a-day rule is a unique index, so concurrent
// scans cannot both earn points.
func (s *LocationService) CheckIn(ctx context.Context, userID uint, qrCode string) (domain.CheckInResult, error) {
	location, err := s.repo.FindActiveByQRCode(ctx, qrCode)
	if err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			metrics.CheckInsTotal.WithLabelValues("invalid_qr").Inc()
			return domain.CheckInResult{}, ErrInvalidLocationQR
		}

		return domain.CheckInResult{}, fmt.Errorf("s.repo.FindActiveByQRCode -> %w", err)
	}

	points := s.conf.CheckInPoints
	checkIn, err := s.repo.CreateCheckIn(ctx, userID, location.ID, points, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyCheckedIn) {
			metrics.CheckInsTotal.WithLabelValues("already_checked_in").Inc()
			return domain.CheckInResult{Location: location}, ErrAlreadyCheckedIn
		}

		return domain.CheckInResult{}, fmt.Errorf("s.repo.CreateCheckIn -> %w", err)
	}

	user, err := s.points.CreditPoints(ctx, userID, points)
	if err != nil {
		return domain.CheckInResult{}, fmt.Errorf("s.points.CreditPoints -> %w", err)
	}

	metrics.CheckInsTotal.WithLabelValues("success").Inc()

	return domain.CheckInResult{
		CheckIn:     checkIn,
		Location:    location,
		TotalPoints: user.Points,
	}, nil
}

func (s *LocationService) checkOwner(ctx context.Context, actor domain.User, id uint) error {
	location, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if actor.Role == domain.RoleBusiness && location.BusinessID != actor.ID {
		return ErrNotLocationOwner
	}

	return nil
}
