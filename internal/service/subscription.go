package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/pkg/mailer"
	"github.com/pinswap/api/internal/repository"
)

var (
	ErrSubscriberNotFound  = repository.ErrSubscriberNotFound
	ErrAlreadySubscribed   = repository.ErrSubscriberExists
	ErrInvalidConfirmToken = errors.New("confirmation link is invalid or has expired")
)

const confirmTokenTTL = time.Hour

type SubscriberRepository interface {
	Create(ctx context.Context, email, token string, expires time.Time) (domain.Subscriber, error)
	FindByEmail(ctx context.Context, email string) (domain.Subscriber, error)
	FindByToken(ctx context.Context, token string, now time.Time) (domain.Subscriber, error)
	List(ctx context.Context, email string, page domain.Page) ([]domain.Subscriber, int64, error)
	Confirm(ctx context.Context, id uint) error
	RenewToken(ctx context.Context, id uint, token string, expires time.Time) error
	Delete(ctx context.Context, id uint) error
}

type SubscriptionService struct {
	backendURL string
	repo       SubscriberRepository
	mailer     mailer.Mailer
	now        func() time.Time
}

func NewSubscriptionService(backendURL string, repo SubscriberRepository, m mailer.Mailer) *SubscriptionService {
	return &SubscriptionService{
		backendURL: strings.TrimRight(backendURL, "/"),
		repo:       repo,
		mailer:     m,
		now:        time.Now,
	}
}

// Subscribe registers email and sends a confirmation link valid for one hour.
// Subscribing again before confirming sends a new link. The bool reports
// whether the confirmation email went out; the subscriber is kept either way.
func (s *SubscriptionService) Subscribe(ctx context.Context, email string) (domain.Subscriber, bool, error) {
	email = normalizeEmail(email)
	token := uuid.NewString()
	expires := s.now().Add(confirmTokenTTL)

	subscriber, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil && subscriber.Confirmed:
		return subscriber, false, ErrAlreadySubscribed
	case err == nil:
		if err := s.repo.RenewToken(ctx, subscriber.ID, token, expires); err != nil {
			return domain.Subscriber{}, false, fmt.Errorf("s.repo.RenewToken -> %w", err)
		}
	case errors.Is(err, repository.ErrSubscriberNotFound):
		subscriber, err = s.repo.Create(ctx, email, token, expires)
		if err != nil {
			return domain.Subscriber{}, false, fmt.Errorf("s.repo.Create -> %w", err)
		}
	default:
		return domain.Subscriber{}, false, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	link := fmt.Sprintf("%s/api/subscribe/confirm?token=%s", s.backendURL, token)
	msg, err := mailer.Render(mailer.TemplateSubscribeConfirm, email, map[string]string{"Link": link})
	if err == nil {
		err = s.mailer.Send(ctx, msg)
	}
	if err != nil {
		zap.L().Warn("failed to send subscription confirmation", zap.String("email", email), zap.Error(err))

		return subscriber, false, nil
	}

	return subscriber, true, nil
}

func (s *SubscriptionService) Confirm(ctx context.Context, token string) (domain.Subscriber, error) {
	subscriber, err := s.repo.FindByToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrSubscriberNotFound) {
			return domain.Subscriber{}, ErrInvalidConfirmToken
		}

		return domain.Subscriber{}, fmt.Errorf("s.repo.FindByToken -> %w", err)
	}

	if err := s.repo.Confirm(ctx, subscriber.ID); err != nil {
		return domain.Subscriber{}, fmt.Errorf("s.repo.Confirm -> %w", err)
	}
	subscriber.Confirmed = true

	return subscriber, nil
}

func (s *SubscriptionService) List(ctx context.Context, email string, page domain.Page) ([]domain.Subscriber, int64, error) {
	subscribers, total, err := s.repo.List(ctx, email, page)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.List -> %w", err)
	}

	return subscribers, total, nil
}

func (s *SubscriptionService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
