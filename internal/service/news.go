package service

import (
	"context"
	"fmt"

	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/repository"
)

var ErrNewsNotFound = repository.ErrNewsNotFound

type NewsRepository interface {
	Create(ctx context.Context, news domain.News) (domain.News, error)
	FindByID(ctx context.Context, id uint) (domain.News, error)
	FindAll(ctx context.Context) ([]domain.News, error)
	Update(ctx context.Context, id uint, update domain.NewsUpdate) (domain.News, error)
	Delete(ctx context.Context, id uint) error
}

// Broadcaster sends a published article to subscribers without blocking the caller.
type Broadcaster interface {
	Dispatch(news domain.News)
}

type NewsService struct {
	repo        NewsRepository
	broadcaster Broadcaster
}

func NewNewsService(repo NewsRepository, broadcaster Broadcaster) *NewsService {
	return &NewsService{
		repo:        repo,
		broadcaster: broadcaster,
	}
}

func (s *NewsService) ListNews(ctx context.Context) ([]domain.News, error) {
	news, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return news, nil
}

func (s *NewsService) GetNews(ctx context.Context, id uint) (domain.News, error) {
	news, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.News{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return news, nil
}

// CreateNews stores the article and hands it to the newsletter.
func (s *NewsService) CreateNews(ctx context.Context, news domain.News) (domain.News, error) {
	created, err := s.repo.Create(ctx, news)
	if err != nil {
		return domain.News{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.Dispatch(created)
	}

	return created, nil
}

func (s *NewsService) UpdateNews(ctx context.Context, id uint, update domain.NewsUpdate) (domain.News, error) {
	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.News{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *NewsService) DeleteNews(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
