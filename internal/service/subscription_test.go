package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinswap/api/internal/domain"
)

func TestSubscriptionService(t *testing.T) {
	repo := newFakeSubscriberRepo()
	m := &fakeMailer{}
	s := NewSubscriptionService("https://api.pinswap.test/", repo, m)

	sub, sent, err := s.Subscribe(context.Background(), "Reader@Example.com")
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, "reader@example.com", sub.Email)
	assert.False(t, sub.Confirmed)
	assert.Contains(t, m.last().Text, "https://api.pinswap.test/api/subscribe/confirm?token="+sub.Token)

	// subscribing again before confirming issues a new token
	_, sent, err = s.Subscribe(context.Background(), "reader@example.com")
	require.NoError(t, err)
	assert.True(t, sent)
	renewed, err := repo.FindByEmail(context.Background(), "reader@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, sub.Token, renewed.Token)

	_, err = s.Confirm(context.Background(), sub.Token)
	assert.ErrorIs(t, err, ErrInvalidConfirmToken)

	confirmedSub, err := s.Confirm(context.Background(), renewed.Token)
	require.NoError(t, err)
	assert.True(t, confirmedSub.Confirmed)

	_, _, err = s.Subscribe(context.Background(), "reader@example.com")
	assert.ErrorIs(t, err, ErrAlreadySubscribed)

	list, total, err := s.List(context.Background(), "reader", domain.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.True(t, list[0].Confirmed)
}

func TestSubscriptionService_Expired(t *testing.T) {
	repo := newFakeSubscriberRepo()
	s := NewSubscriptionService("http://localhost:5000", repo, &fakeMailer{})
	issued := time.Now()
	s.now = func() time.Time { return issued }

	sub, _, err := s.Subscribe(context.Background(), "late@example.com")
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = s.Confirm(context.Background(), sub.Token)
	assert.ErrorIs(t, err, ErrInvalidConfirmToken)
}

func TestSubscriptionService_MailFailureKeepsSubscriber(t *testing.T) {
	repo := newFakeSubscriberRepo()
	s := NewSubscriptionService("http://localhost:5000", repo, &fakeMailer{err: errSendFailed})

	sub, sent, err := s.Subscribe(context.Background(), "x@example.com")
	require.NoError(t, err)
	assert.False(t, sent)
	assert.True(t, strings.HasSuffix(sub.Email, "example.com"))

	_, err = repo.FindByEmail(context.Background(), "x@example.com")
	assert.NoError(t, err)
}
