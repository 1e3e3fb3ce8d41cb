package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinswap/api/internal/domain"
)

func TestAdminService(t *testing.T) {
	users := newFakeUserRepo(
		domain.User{ID: 1, Role: domain.RoleCitizen, Points: 120},
		domain.User{ID: 2, Role: domain.RoleBusiness, Points: 30},
	)
	businesses := newFakeBusinessRepo()
	s := NewAdminService(users, businesses, fixedCounter(4), fixedCounter(9))
	ctx := context.Background()

	_, err := s.CreateBusiness(ctx, domain.Business{UserID: 77, CompanyName: "Ghost", TaxCode: "1"})
	assert.ErrorIs(t, err, ErrBusinessUserNotFound)

	business, err := s.CreateBusiness(ctx, domain.Business{UserID: 2, CompanyName: "Shop Ltd", TaxCode: "0101"})
	require.NoError(t, err)
	assert.False(t, business.Verified)

	pending, err := s.ListBusinesses(ctx, true)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	approved, err := s.ApproveBusiness(ctx, business.ID)
	require.NoError(t, err)
	assert.True(t, approved.Verified)

	pending, err = s.ListBusinesses(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = s.ApproveBusiness(ctx, 404)
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{
		TotalUsers:      2,
		TotalBusinesses: 1,
		TotalLocations:  4,
		TotalNews:       9,
		TotalPoints:     150,
	}, stats)
}
