package service

import (
	"context"
	"fmt"

	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/repository"
)

var ErrFeedbackNotFound = repository.ErrFeedbackNotFound

type FeedbackRepository interface {
	Create(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error)
	FindByID(ctx context.Context, id uint) (domain.Feedback, error)
	List(ctx context.Context, userID uint, page domain.Page) ([]domain.Feedback, int64, error)
	UpdateMessage(ctx context.Context, id uint, message string) (domain.Feedback, error)
	Delete(ctx context.Context, id uint) error
}

type FeedbackService struct {
	repo FeedbackRepository
}

func NewFeedbackService(repo FeedbackRepository) *FeedbackService {
	return &FeedbackService{
		repo: repo,
	}
}

func (s *FeedbackService) Submit(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	created, err := s.repo.Create(ctx, feedback)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *FeedbackService) Get(ctx context.Context, id uint) (domain.Feedback, error) {
	feedback, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return feedback, nil
}

// List pages feedback; userID zero lists everyone's.
func (s *FeedbackService) List(ctx context.Context, userID uint, page domain.Page) ([]domain.Feedback, int64, error) {
	feedback, total, err := s.repo.List(ctx, userID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.List -> %w", err)
	}

	return feedback, total, nil
}

func (s *FeedbackService) Update(ctx context.Context, id uint, message string) (domain.Feedback, error) {
	updated, err := s.repo.UpdateMessage(ctx, id, message)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("s.repo.UpdateMessage -> %w", err)
	}

	return updated, nil
}

func (s *FeedbackService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
