package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/repository/dao"
)

type CollectionDAO interface {
	Insert(ctx context.Context, collection dao.Collection) (dao.Collection, error)
	FindByUserID(ctx context.Context, userID uint, limit int) ([]dao.Collection, error)
	Leaderboard(ctx context.Context, role string, since time.Time, by string, limit int) ([]dao.LeaderboardRow, error)
}

type CollectionRepository struct {
	dao CollectionDAO
}

func NewCollectionRepository(dao CollectionDAO) *CollectionRepository {
	return &CollectionRepository{
		dao: dao,
	}
}

func (r *CollectionRepository) Create(ctx context.Context, collection domain.Collection) (domain.Collection, error) {
	items := make([]dao.CollectionItem, 0, len(collection.Items))
	for _, item := range collection.Items {
		items = append(items, dao.CollectionItem{
			PinType:  item.PinType,
			Quantity: item.Quantity,
			Points:   item.Points,
		})
	}

	created, err := r.dao.Insert(ctx, dao.Collection{
		UserID:      collection.UserID,
		Items:       items,
		TotalPoints: collection.TotalPoints,
		Location:    collection.Location,
		Method:      collection.Method,
	})
	if err != nil {
		return domain.Collection{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return collectionToDomain(created), nil
}

func (r *CollectionRepository) FindByUserID(ctx context.Context, userID uint, limit int) ([]domain.Collection, error) {
	found, err := r.dao.FindByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	result := make([]domain.Collection, 0, len(found))
	for _, c := range found {
		result = append(result, collectionToDomain(c))
	}

	return result, nil
}

func (r *CollectionRepository) Leaderboard(
	ctx context.Context, role domain.Role, since time.Time, by domain.LeaderboardOrder, limit int,
) ([]domain.LeaderboardEntry, error) {
	rows, err := r.dao.Leaderboard(ctx, string(role), since, string(by), limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Leaderboard -> %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.LeaderboardEntry{
			UserID:    row.UserID,
			Name:      row.Name,
			Email:     row.Email,
			Points:    row.Points,
			TotalPins: row.TotalPins,
		})
	}

	return entries, nil
}

func collectionToDomain(c dao.Collection) domain.Collection {
	items := make([]domain.CollectionItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, domain.CollectionItem{
			PinType:  item.PinType,
			Quantity: item.Quantity,
			Points:   item.Points,
		})
	}

	return domain.Collection{
		ID:          c.ID,
		UserID:      c.UserID,
		Items:       items,
		TotalPoints: c.TotalPoints,
		Location:    c.Location,
		Method:      c.Method,
		CreatedAt:   c.CreatedAt,
	}
}
