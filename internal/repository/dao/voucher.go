package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrVoucherNotFound    = errors.New("voucher not found")
	ErrVoucherUnavailable = errors.New("voucher not available")
)

type Voucher struct {
	ID uint `gorm:"primaryKey"`

	// BusinessID is the owning business account (users.id), zero when unowned.
	BusinessID uint      `gorm:"not null;default:0;index"`
	Owner      *Business `gorm:"foreignKey:UserID;references:BusinessID"`

	Title       string `gorm:"not null"`
	Description string
	Discount    int `gorm:"not null;default:0;check:chk_vouchers_discount,discount >= 0 AND discount <= 100"`
	ExpiryDate  *time.Time
	Images      []string `gorm:"type:jsonb;serializer:json"`

	PointsRequired int    `gorm:"not null;default:0;check:chk_vouchers_points_required,points_required >= 0"`
	Quantity       int    `gorm:"not null;default:0;check:chk_vouchers_quantity,quantity >= 0"`
	Status         string `gorm:"not null;default:active;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type VoucherDAO struct {
	db *gorm.DB
}

func NewVoucherDAO(db *gorm.DB) *VoucherDAO {
	return &VoucherDAO{
		db: db,
	}
}

func (d *VoucherDAO) Insert(ctx context.Context, voucher Voucher) (Voucher, error) {
	result := d.db.WithContext(ctx).Omit("Owner").Create(&voucher)
	if result.Error != nil {
		return Voucher{}, result.Error
	}

	return d.FindByID(ctx, voucher.ID)
}

func (d *VoucherDAO) FindByID(ctx context.Context, id uint) (Voucher, error) {
	var voucher Voucher

	result := d.db.WithContext(ctx).Preload("Owner").First(&voucher, id)
	if result.Error != nil {
		return Voucher{}, notFound(result.Error, ErrVoucherNotFound)
	}

	return voucher, nil
}

// FindRedeemable lists active vouchers with stock left.
func (d *VoucherDAO) FindRedeemable(ctx context.Context) ([]Voucher, error) {
	var vouchers []Voucher

	result := d.db.WithContext(ctx).Preload("Owner").
		Where("status = ? AND quantity > 0", "active").
		Order("created_at DESC, id DESC").
		Find(&vouchers)
	if result.Error != nil {
		return nil, result.Error
	}

	return vouchers, nil
}

func (d *VoucherDAO) FindAll(ctx context.Context) ([]Voucher, error) {
	var vouchers []Voucher

	result := d.db.WithContext(ctx).Preload("Owner").Order("created_at DESC, id DESC").Find(&vouchers)
	if result.Error != nil {
		return nil, result.Error
	}

	return vouchers, nil
}

func (d *VoucherDAO) FindByBusinessID(ctx context.Context, businessID uint) ([]Voucher, error) {
	var vouchers []Voucher

	result := d.db.WithContext(ctx).Preload("Owner").
		Where("business_id = ?", businessID).
		Order("created_at DESC, id DESC").
		Find(&vouchers)
	if result.Error != nil {
		return nil, result.Error
	}

	return vouchers, nil
}

func (d *VoucherDAO) Update(ctx context.Context, id uint, fields map[string]interface{}) (Voucher, error) {
	result := d.db.WithContext(ctx).Model(&Voucher{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return Voucher{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Voucher{}, ErrVoucherNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *VoucherDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Voucher{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVoucherNotFound
	}

	return nil
}

// DecrementQuantity takes one unit of stock in a single conditional UPDATE.
// A miss means the voucher sold out or no longer exists.
func (d *VoucherDAO) DecrementQuantity(ctx context.Context, id uint) (Voucher, error) {
	var voucher Voucher

	result := d.db.WithContext(ctx).Model(&voucher).Clauses(clause.Returning{}).
		Where("id = ? AND quantity > 0", id).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", 1))
	if result.Error != nil {
		return Voucher{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Voucher{}, ErrVoucherUnavailable
	}

	return voucher, nil
}
