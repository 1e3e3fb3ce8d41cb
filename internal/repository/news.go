package repository

import (
	"context"
	"fmt"

	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/repository/dao"
)

var ErrNewsNotFound = dao.ErrNewsNotFound

type NewsDAO interface {
	Insert(ctx context.Context, news dao.News) (dao.News, error)
	FindByID(ctx context.Context, id uint) (dao.News, error)
	FindAll(ctx context.Context) ([]dao.News, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (dao.News, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type NewsRepository struct {
	dao NewsDAO
}

func NewNewsRepository(dao NewsDAO) *NewsRepository {
	return &NewsRepository{
		dao: dao,
	}
}

func (r *NewsRepository) Create(ctx context.Context, news domain.News) (domain.News, error) {
	created, err := r.dao.Insert(ctx, dao.News{
		Title:     news.Title,
		Content:   news.Content,
		Thumbnail: news.Thumbnail,
		Images:    news.Images,
		CreatedBy: news.CreatedBy,
	})
	if err != nil {
		return domain.News{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return newsToDomain(created), nil
}

func (r *NewsRepository) FindByID(ctx context.Context, id uint) (domain.News, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.News{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return newsToDomain(found), nil
}

func (r *NewsRepository) FindAll(ctx context.Context) ([]domain.News, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	result := make([]domain.News, 0, len(found))
	for _, n := range found {
		result = append(result, newsToDomain(n))
	}

	return result, nil
}

func (r *NewsRepository) Update(ctx context.Context, id uint, update domain.NewsUpdate) (domain.News, error) {
	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Content != nil {
		fields["content"] = *update.Content
	}
	if update.Thumbnail != nil {
		fields["thumbnail"] = *update.Thumbnail
	}
	if update.Images != nil {
		fields["images"] = jsonColumn(update.Images)
	}
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.News{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return newsToDomain(updated), nil
}

func (r *NewsRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *NewsRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return total, nil
}

func newsToDomain(n dao.News) domain.News {
	news := domain.News{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Thumbnail: n.Thumbnail,
		Images:    n.Images,
		CreatedBy: n.CreatedBy,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if news.Images == nil {
		news.Images = []string{}
	}

	return news
}
