package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/repository"
)

var (
	ErrBusinessNotFound     = repository.ErrBusinessNotFound
	ErrBusinessUserNotFound = errors.New("provided userId not found")
)

type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type StatsUserRepository interface {
	Counter
	FindByID(ctx context.Context, id uint) (domain.User, error)
	SumPoints(ctx context.Context) (int64, error)
}

type BusinessRepository interface {
	Counter
	Create(ctx context.Context, business domain.Business) (domain.Business, error)
	FindByID(ctx context.Context, id uint) (domain.Business, error)
	List(ctx context.Context, pendingOnly bool) ([]domain.Business, error)
	Update(ctx context.Context, id uint, companyName, taxCode *string, verified *bool) (domain.Business, error)
	Delete(ctx context.Context, id uint) error
}

type AdminService struct {
	users      StatsUserRepository
	businesses BusinessRepository
	locations  Counter
	news       Counter
}

func NewAdminService(users StatsUserRepository, businesses BusinessRepository, locations, news Counter) *AdminService {
	return &AdminService{
		users:      users,
		businesses: businesses,
		locations:  locations,
		news:       news,
	}
}

func (s *AdminService) Stats(ctx context.Context) (domain.Stats, error) {
	var (
		stats domain.Stats
		err   error
	)

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return domain.Stats{}, fmt.Errorf("s.users.Count -> %w", err)
	}
	if stats.TotalBusinesses, err = s.businesses.Count(ctx); err != nil {
		return domain.Stats{}, fmt.Errorf("s.businesses.Count -> %w", err)
	}
	if stats.TotalLocations, err = s.locations.Count(ctx); err != nil {
		return domain.Stats{}, fmt.Errorf("s.locations.Count -> %w", err)
	}
	if stats.TotalNews, err = s.news.Count(ctx); err != nil {
		return domain.Stats{}, fmt.Errorf("s.news.Count -> %w", err)
	}
	if stats.TotalPoints, err = s.users.SumPoints(ctx); err != nil {
		return domain.Stats{}, fmt.Errorf("s.users.SumPoints -> %w", err)
	}

	return stats, nil
}

func (s *AdminService) ListBusinesses(ctx context.Context, pendingOnly bool) ([]domain.Business, error) {
	businesses, err := s.businesses.List(ctx, pendingOnly)
	if err != nil {
		return nil, fmt.Errorf("s.businesses.List -> %w", err)
	}

	return businesses, nil
}

func (s *AdminService) ApproveBusiness(ctx context.Context, id uint) (domain.Business, error) {
	verified := true

	business, err := s.businesses.Update(ctx, id, nil, nil, &verified)
	if err != nil {
		return domain.Business{}, fmt.Errorf("s.businesses.Update -> %w", err)
	}

	return business, nil
}

// CreateBusiness attaches a business profile to an existing account.
func (s *AdminService) CreateBusiness(ctx context.Context, business domain.Business) (domain.Business, error) {
	if _, err := s.users.FindByID(ctx, business.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.Business{}, ErrBusinessUserNotFound
		}

		return domain.Business{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	created, err := s.businesses.Create(ctx, business)
	if err != nil {
		return domain.Business{}, fmt.Errorf("s.businesses.Create -> %w", err)
	}

	return s.businesses.FindByID(ctx, created.ID)
}

func (s *AdminService) UpdateBusiness(ctx context.Context, id uint, companyName, taxCode *string, verified *bool) (domain.Business, error) {
	business, err := s.businesses.Update(ctx, id, companyName, taxCode, verified)
	if err != nil {
		return domain.Business{}, fmt.Errorf("s.businesses.Update -> %w", err)
	}

	return business, nil
}

func (s *AdminService) DeleteBusiness(ctx context.Context, id uint) error {
	if err := s.businesses.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.businesses.Delete -> %w", err)
	}

	return nil
}
