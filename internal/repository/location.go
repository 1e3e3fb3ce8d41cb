package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/repository/dao"
)

var (
	ErrLocationNotFound = dao.ErrLocationNotFound
	ErrAlreadyCheckedIn = dao.ErrAlreadyCheckedIn
	ErrLocationQRExists = dao.ErrLocationQRExists
)

type LocationDAO interface {
	Insert(ctx context.Context, location dao.Location) (dao.Location, error)
	FindByID(ctx context.Context, id uint) (dao.Location, error)
	FindActiveByQRCode(ctx context.Context, code string) (dao.Location, error)
	List(ctx context.Context, locationType, status string) ([]dao.Location, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (dao.Location, error)
	Count(ctx context.Context) (int64, error)
	InsertCheckIn(ctx context.Context, checkIn dao.CheckIn) (dao.CheckIn, error)
}

type LocationRepository struct {
	dao LocationDAO
}

func NewLocationRepository(dao LocationDAO) *LocationRepository {
	return &LocationRepository{
		dao: dao,
	}
}

func (r *LocationRepository) Create(ctx context.Context, location domain.Location) (domain.Location, error) {
	created, err := r.dao.Insert(ctx, dao.Location{
		BusinessID: location.BusinessID,
		Name:       location.Name,
		Address:    location.Address,
		Latitude:   location.Latitude,
		Longitude:  location.Longitude,
		OpenHours:  location.OpenHours,
		Type:       string(location.Type),
		Status:     string(location.Status),
		QRCode:     location.QRCode,
	})
	if err != nil {
		return domain.Location{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return locationToDomain(created), nil
}

func (r *LocationRepository) FindByID(ctx context.Context, id uint) (domain.Location, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Location{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return locationToDomain(found), nil
}

func (r *LocationRepository) FindActiveByQRCode(ctx context.Context, code string) (domain.Location, error) {
	found, err := r.dao.FindActiveByQRCode(ctx, code)
	if err != nil {
		return domain.Location{}, fmt.Errorf("r.dao.FindActiveByQRCode -> %w", err)
	}

	return locationToDomain(found), nil
}

func (r *LocationRepository) List(ctx context.Context, filter domain.LocationFilter) ([]domain.Location, error) {
	found, err := r.dao.List(ctx, string(filter.Type), string(filter.Status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	result := make([]domain.Location, 0, len(found))
	for _, l := range found {
		result = append(result, locationToDomain(l))
	}

	return result, nil
}

func (r *LocationRepository) Update(ctx context.Context, id uint, update domain.LocationUpdate) (domain.Location, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Address != nil {
		fields["address"] = *update.Address
	}
	if update.Latitude != nil {
		fields["latitude"] = *update.Latitude
	}
	if update.Longitude != nil {
		fields["longitude"] = *update.Longitude
	}
	if update.OpenHours != nil {
		fields["open_hours"] = *update.OpenHours
	}
	if update.Type != nil {
		fields["type"] = string(*update.Type)
	}
	if update.Status != nil {
		fields["status"] = string(*update.Status)
	}
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.Location{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return locationToDomain(updated), nil
}

func (r *LocationRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return total, nil
}

// CreateCheckIn records a visit on the UTC day of at. A second visit to the same
// location on that day fails with ErrAlreadyCheckedIn.
func (r *LocationRepository) CreateCheckIn(ctx context.Context, userID, locationID uint, points int, at time.Time) (domain.CheckIn, error) {
	at = at.UTC()
	created, err := r.dao.InsertCheckIn(ctx, dao.CheckIn{
		UserID:       userID,
		LocationID:   locationID,
		CheckInDate:  time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC),
		PointsEarned: points,
		CheckInTime:  at,
	})
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("r.dao.InsertCheckIn -> %w", err)
	}

	return domain.CheckIn{
		ID:           created.ID,
		UserID:       created.UserID,
		LocationID:   created.LocationID,
		PointsEarned: created.PointsEarned,
		CheckInTime:  created.CheckInTime,
	}, nil
}

func locationToDomain(l dao.Location) domain.Location {
	return domain.Location{
		ID:         l.ID,
		BusinessID: l.BusinessID,
		Name:       l.Name,
		Address:    l.Address,
		Latitude:   l.Latitude,
		Longitude:  l.Longitude,
		OpenHours:  l.OpenHours,
		Type:       domain.LocationType(l.Type),
		Status:     domain.LocationStatus(l.Status),
		QRCode:     l.QRCode,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}
