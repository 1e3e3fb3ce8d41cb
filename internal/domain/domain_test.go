package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoucherRedeemable(t *testing.T) {
	assert.True(t, Voucher{Status: VoucherStatusActive, Quantity: 1}.Redeemable())
	assert.False(t, Voucher{Status: VoucherStatusActive, Quantity: 0}.Redeemable())
	assert.False(t, Voucher{Status: VoucherStatusInactive, Quantity: 3}.Redeemable())
}

func TestCollectionPins(t *testing.T) {
	c := Collection{Items: []CollectionItem{{PinType: "AA", Quantity: 3}, {PinType: "9V", Quantity: 2}}}
	assert.Equal(t, 5, c.Pins())
	assert.Equal(t, 0, Collection{}.Pins())
}

func TestNewPage(t *testing.T) {
	p := NewPage(0, 0, 20, 200)
	assert.Equal(t, Page{Page: 1, Limit: 20}, p)
	assert.Equal(t, 0, p.Offset())

	p = NewPage(3, 500, 20, 200)
	assert.Equal(t, Page{Page: 3, Limit: 200}, p)
	assert.Equal(t, 400, p.Offset())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleCitizen.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("student").Valid())
}
