package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinswap/api/internal/domain"
)

func TestEventService_Registration(t *testing.T) {
	repo := newFakeEventRepo(domain.Event{ID: 1, Title: "Beach clean-up", Date: time.Now().Add(48 * time.Hour)})
	s := NewEventService(repo)
	ctx := context.Background()

	reg, err := s.Register(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationRegistered, reg.Status)

	again, err := s.Register(ctx, 1, 5)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Equal(t, reg.ID, again.ID)

	ok, err := s.IsRegistered(ctx, 1, 5)
	require.NoError(t, err)
	assert.True(t, ok)

	cancelled, err := s.CancelRegistration(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationCancelled, cancelled.Status)

	ok, err = s.IsRegistered(ctx, 1, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	revived, err := s.Register(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, revived.ID)
	assert.Equal(t, domain.RegistrationRegistered, revived.Status)

	_, err = s.CancelRegistrationByID(ctx, reg.ID, 6)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)

	_, err = s.Register(ctx, 42, 5)
	assert.ErrorIs(t, err, ErrEventNotFound)

	regs, total, err := s.ListEventRegistrations(ctx, 1, domain.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, regs, 1)
}

func TestEventService_CRUD(t *testing.T) {
	s := NewEventService(newFakeEventRepo())
	ctx := context.Background()

	created, err := s.CreateEvent(ctx, domain.Event{Title: "Repair café"})
	require.NoError(t, err)

	title := "Repair café #2"
	updated, err := s.UpdateEvent(ctx, created.ID, domain.EventUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	events, total, err := s.ListEvents(ctx, "repair", domain.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, events, 1)

	require.NoError(t, s.DeleteEvent(ctx, created.ID))
	_, err = s.GetEvent(ctx, created.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
