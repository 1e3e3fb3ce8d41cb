package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pinswap/api/internal/config"
	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/metrics"
	"github.com/pinswap/api/internal/pkg/mailer"
)

const newsletterSummaryLen = 200

type SubscriberLister interface {
	FindConfirmed(ctx context.Context) ([]domain.Subscriber, error)
}

type NewsletterResult struct {
	Sent   int
	Failed int
}

type NewsletterService struct {
	conf        *config.NewsletterConfig
	frontendURL string
	subscribers SubscriberLister
	mailer      mailer.Mailer
}

func NewNewsletterService(conf *config.NewsletterConfig, frontendURL string, subscribers SubscriberLister, m mailer.Mailer) *NewsletterService {
	return &NewsletterService{
		conf:        conf,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		subscribers: subscribers,
		mailer:      m,
	}
}

// Dispatch sends news in the background with its own timeout, detached from any request.
func (s *NewsletterService) Dispatch(news domain.News) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.conf.Timeout)
		defer cancel()

		if _, err := s.Send(ctx, news); err != nil {
			zap.L().Error("newsletter dispatch failed", zap.Uint("news_id", news.ID), zap.Error(err))
		}
	}()
}

// Send emails news to every confirmed subscriber with at most conf.Concurrency
// sends in flight. A failed recipient is logged and counted; the batch goes on.
func (s *NewsletterService) Send(ctx context.Context, news domain.News) (NewsletterResult, error) {
	start := time.Now()

	recipients, err := s.subscribers.FindConfirmed(ctx)
	if err != nil {
		return NewsletterResult{}, fmt.Errorf("s.subscribers.FindConfirmed -> %w", err)
	}
	if len(recipients) == 0 {
		zap.L().Info("newsletter skipped, no confirmed subscribers", zap.Uint("news_id", news.ID))
		return NewsletterResult{}, nil
	}

	data := map[string]string{
		"Title":     news.Title,
		"Summary":   summarize(news.Content, newsletterSummaryLen),
		"Thumbnail": news.Thumbnail,
		"Link":      fmt.Sprintf("%s/news/%d", s.frontendURL, news.ID),
	}

	var sent, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.conf.Concurrency)
	for _, sub := range recipients {
		email := sub.Email
		g.Go(func() error {
			msg, err := mailer.Render(mailer.TemplateNewsletter, email, data)
			if err == nil {
				err = s.mailer.Send(gctx, msg)
			}
			if err != nil {
				failed.Add(1)
				metrics.NewsletterEmailsTotal.WithLabelValues("failed").Inc()
				zap.L().Warn("newsletter email failed", zap.String("to", email), zap.Error(err))

				return nil
			}

			sent.Add(1)
			metrics.NewsletterEmailsTotal.WithLabelValues("sent").Inc()

			return nil
		})
	}
	_ = g.Wait()

	result := NewsletterResult{Sent: int(sent.Load()), Failed: int(failed.Load())}
	zap.L().Info("newsletter sent",
		zap.Uint("news_id", news.ID),
		zap.Int("recipients", len(recipients)),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
		zap.Duration("took", time.Since(start)))

	return result, nil
}

func summarize(content string, max int) string {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) <= max {
		return content
	}

	runes := []rune(content)
	return strings.TrimSpace(string(runes[:max])) + "..."
}
