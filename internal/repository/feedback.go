package repository

import (
	"context"
	"fmt"

	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/repository/dao"
)

var ErrFeedbackNotFound = dao.ErrFeedbackNotFound

type FeedbackDAO interface {
	Insert(ctx context.Context, feedback dao.Feedback) (dao.Feedback, error)
	FindByID(ctx context.Context, id uint) (dao.Feedback, error)
	List(ctx context.Context, userID uint, offset, limit int) ([]dao.Feedback, int64, error)
	UpdateMessage(ctx context.Context, id uint, message string) (dao.Feedback, error)
	Delete(ctx context.Context, id uint) error
}

type FeedbackRepository struct {
	dao FeedbackDAO
}

func NewFeedbackRepository(dao FeedbackDAO) *FeedbackRepository {
	return &FeedbackRepository{
		dao: dao,
	}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	created, err := r.dao.Insert(ctx, dao.Feedback{
		UserID:  feedback.UserID,
		Message: feedback.Message,
	})
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return feedbackToDomain(created), nil
}

func (r *FeedbackRepository) FindByID(ctx context.Context, id uint) (domain.Feedback, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return feedbackToDomain(found), nil
}

// List pages feedback, restricted to userID unless it is zero.
func (r *FeedbackRepository) List(ctx context.Context, userID uint, page domain.Page) ([]domain.Feedback, int64, error) {
	found, total, err := r.dao.List(ctx, userID, page.Offset(), page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	result := make([]domain.Feedback, 0, len(found))
	for _, f := range found {
		result = append(result, feedbackToDomain(f))
	}

	return result, total, nil
}

func (r *FeedbackRepository) UpdateMessage(ctx context.Context, id uint, message string) (domain.Feedback, error) {
	updated, err := r.dao.UpdateMessage(ctx, id, message)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("r.dao.UpdateMessage -> %w", err)
	}

	return feedbackToDomain(updated), nil
}

func (r *FeedbackRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func feedbackToDomain(f dao.Feedback) domain.Feedback {
	return domain.Feedback{
		ID:        f.ID,
		UserID:    f.UserID,
		Message:   f.Message,
		CreatedAt: f.CreatedAt,
	}
}
