package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pinswap/api/internal/domain"
)

var ErrInvalidRange = errors.New("range must be week, month or all")

const (
	collectionHistoryLimit = 100
	leaderboardSize        = 50
)

type CollectionRepository interface {
	Create(ctx context.Context, collection domain.Collection) (domain.Collection, error)
	FindByUserID(ctx context.Context, userID uint, limit int) ([]domain.Collection, error)
	Leaderboard(
		ctx context.Context, role domain.Role, since time.Time, by domain.LeaderboardOrder, limit int,
	) ([]domain.LeaderboardEntry, error)
}

type CollectionService struct {
	repo   CollectionRepository
	points PointsRepository
	now    func() time.Time
}

func NewCollectionService(repo CollectionRepository, points PointsRepository) *CollectionService {
	return &CollectionService{
		repo:   repo,
		points: points,
		now:    time.Now,
	}
}

// Record stores a collection and credits its total. It returns the new balance.
func (s *CollectionService) Record(ctx context.Context, collection domain.Collection) (domain.Collection, int, error) {
	if collection.Method == "" {
		collection.Method = "scan"
	}
	if collection.TotalPoints == 0 {
		for _, item := range collection.Items {
			collection.TotalPoints += item.Points
		}
	}

	created, err := s.repo.Create(ctx, collection)
	if err != nil {
		return domain.Collection{}, 0, fmt.Errorf("s.repo.Create -> %w", err)
	}

	user, err := s.points.CreditPoints(ctx, collection.UserID, created.TotalPoints)
	if err != nil {
		return domain.Collection{}, 0, fmt.Errorf("s.points.CreditPoints -> %w", err)
	}

	return created, user.Points, nil
}

func (s *CollectionService) List(ctx context.Context, userID uint) ([]domain.Collection, error) {
	collections, err := s.repo.FindByUserID(ctx, userID, collectionHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return collections, nil
}

// Leaderboard ranks citizens by pins handed in during the range and by point balance.
// Citizens with neither are left out.
func (s *CollectionService) Leaderboard(ctx context.Context, r domain.LeaderboardRange) (domain.Leaderboard, error) {
	since, err := s.rangeStart(r)
	if err != nil {
		return domain.Leaderboard{}, err
	}

	byPins, err := s.repo.Leaderboard(ctx, domain.RoleCitizen, since, domain.OrderByPins, leaderboardSize)
	if err != nil {
		return domain.Leaderboard{}, fmt.Errorf("s.repo.Leaderboard -> %w", err)
	}

	byPoints, err := s.repo.Leaderboard(ctx, domain.RoleCitizen, since, domain.OrderByPoints, leaderboardSize)
	if err != nil {
		return domain.Leaderboard{}, fmt.Errorf("s.repo.Leaderboard -> %w", err)
	}

	return domain.Leaderboard{
		ByPins:   byPins,
		ByPoints: byPoints,
	}, nil
}

func (s *CollectionService) rangeStart(r domain.LeaderboardRange) (time.Time, error) {
	now := s.now()
	switch r {
	case domain.RangeWeek:
		return now.AddDate(0, 0, -7), nil
	case domain.RangeMonth:
		return now.AddDate(0, -1, 0), nil
	case domain.RangeAll, "":
		return time.Time{}, nil
	}

	return time.Time{}, ErrInvalidRange
}
