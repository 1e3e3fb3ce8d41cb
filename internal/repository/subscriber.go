package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/repository/dao"
)

var (
	ErrSubscriberNotFound = dao.ErrSubscriberNotFound
	ErrSubscriberExists   = dao.ErrSubscriberExists
)

type SubscriberDAO interface {
	Insert(ctx context.Context, subscriber dao.Subscriber) (dao.Subscriber, error)
	FindByEmail(ctx context.Context, email string) (dao.Subscriber, error)
	FindByToken(ctx context.Context, token string, now time.Time) (dao.Subscriber, error)
	FindConfirmed(ctx context.Context) ([]dao.Subscriber, error)
	List(ctx context.Context, email string, offset, limit int) ([]dao.Subscriber, int64, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type SubscriberRepository struct {
	dao SubscriberDAO
}

func NewSubscriberRepository(dao SubscriberDAO) *SubscriberRepository {
	return &SubscriberRepository{
		dao: dao,
	}
}

func (r *SubscriberRepository) Create(ctx context.Context, email, token string, expires time.Time) (domain.Subscriber, error) {
	created, err := r.dao.Insert(ctx, dao.Subscriber{
		Email:        email,
		Token:        &token,
		TokenExpires: &expires,
	})
	if err != nil {
		return domain.Subscriber{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return subscriberToDomain(created), nil
}

func (r *SubscriberRepository) FindByEmail(ctx context.Context, email string) (domain.Subscriber, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Subscriber{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return subscriberToDomain(found), nil
}

func (r *SubscriberRepository) FindByToken(ctx context.Context, token string, now time.Time) (domain.Subscriber, error) {
	found, err := r.dao.FindByToken(ctx, token, now)
	if err != nil {
		return domain.Subscriber{}, fmt.Errorf("r.dao.FindByToken -> %w", err)
	}

	return subscriberToDomain(found), nil
}

func (r *SubscriberRepository) FindConfirmed(ctx context.Context) ([]domain.Subscriber, error) {
	found, err := r.dao.FindConfirmed(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindConfirmed -> %w", err)
	}

	return subscribersToDomain(found), nil
}

func (r *SubscriberRepository) List(ctx context.Context, email string, page domain.Page) ([]domain.Subscriber, int64, error) {
	found, total, err := r.dao.List(ctx, email, page.Offset(), page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	return subscribersToDomain(found), total, nil
}

// Confirm marks the subscriber confirmed and clears the token.
func (r *SubscriberRepository) Confirm(ctx context.Context, id uint) error {
	err := r.dao.Update(ctx, id, map[string]interface{}{
		"confirmed":     true,
		"token":         nil,
		"token_expires": nil,
	})
	if err != nil {
		return fmt.Errorf("r.dao.Update -> %w", err)
	}

	return nil
}

// RenewToken replaces the confirmation token of an unconfirmed subscriber.
func (r *SubscriberRepository) RenewToken(ctx context.Context, id uint, token string, expires time.Time) error {
	err := r.dao.Update(ctx, id, map[string]interface{}{
		"token":         token,
		"token_expires": expires,
	})
	if err != nil {
		return fmt.Errorf("r.dao.Update -> %w", err)
	}

	return nil
}

func (r *SubscriberRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func subscriberToDomain(s dao.Subscriber) domain.Subscriber {
	subscriber := domain.Subscriber{
		ID:           s.ID,
		Email:        s.Email,
		Confirmed:    s.Confirmed,
		TokenExpires: s.TokenExpires,
		CreatedAt:    s.CreatedAt,
	}
	if s.Token != nil {
		subscriber.Token = *s.Token
	}

	return subscriber
}

func subscribersToDomain(subscribers []dao.Subscriber) []domain.Subscriber {
	result := make([]domain.Subscriber, 0, len(subscribers))
	for _, s := range subscribers {
		result = append(result, subscriberToDomain(s))
	}

	return result
}
