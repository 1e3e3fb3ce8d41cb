package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Redemption struct {
	ID uint `gorm:"primaryKey"`

	UserID    uint    `gorm:"not null;index"`
	VoucherID uint    `gorm:"not null;index"`
	Voucher   Voucher `gorm:"foreignKey:VoucherID"`

	BusinessID uint   `gorm:"not null;default:0"`
	Code       string `gorm:"not null;index"`
	PointsUsed int    `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"index"`
}

func (Redemption) TableName() string {
	return "voucher_histories"
}

type RedemptionDAO struct {
	db *gorm.DB
}

func NewRedemptionDAO(db *gorm.DB) *RedemptionDAO {
	return &RedemptionDAO{
		db: db,
	}
}

func (d *RedemptionDAO) Insert(ctx context.Context, redemption Redemption) (Redemption, error) {
	result := d.db.WithContext(ctx).Omit("Voucher").Create(&redemption)
	if result.Error != nil {
		return Redemption{}, result.Error
	}

	return redemption, nil
}

// FindByUserID returns the user's redemptions newest first, voucher included.
func (d *RedemptionDAO) FindByUserID(ctx context.Context, userID uint) ([]Redemption, error) {
	var redemptions []Redemption

	result := d.db.WithContext(ctx).Preload("Voucher").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&redemptions)
	if result.Error != nil {
		return nil, result.Error
	}

	return redemptions, nil
}
