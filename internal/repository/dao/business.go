package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBusinessNotFound      = errors.New("business not found")
	ErrBusinessTaxCodeExists = errors.New("business tax code already exists")
)

type Business struct {
	ID uint `gorm:"primaryKey"`

	UserID uint `gorm:"not null;uniqueIndex"`
	User   User `gorm:"foreignKey:UserID"`

	CompanyName string `gorm:"not null"`
	TaxCode     string `gorm:"unique;not null"`
	Verified    bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
}

type BusinessDAO struct {
	db *gorm.DB
}

func NewBusinessDAO(db *gorm.DB) *BusinessDAO {
	return &BusinessDAO{
		db: db,
	}
}

func (d *BusinessDAO) Insert(ctx context.Context, business Business) (Business, error) {
	result := d.db.WithContext(ctx).Omit("User").Create(&business)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "tax_code") {
			return Business{}, ErrBusinessTaxCodeExists
		}

		return Business{}, result.Error
	}

	return business, nil
}

func (d *BusinessDAO) FindByID(ctx context.Context, id uint) (Business, error) {
	var business Business

	result := d.db.WithContext(ctx).Preload("User").First(&business, id)
	if result.Error != nil {
		return Business{}, notFound(result.Error, ErrBusinessNotFound)
	}

	return business, nil
}

func (d *BusinessDAO) FindByUserID(ctx context.Context, userID uint) (Business, error) {
	var business Business

	result := d.db.WithContext(ctx).Preload("User").First(&business, "user_id = ?", userID)
	if result.Error != nil {
		return Business{}, notFound(result.Error, ErrBusinessNotFound)
	}

	return business, nil
}

func (d *BusinessDAO) List(ctx context.Context, pendingOnly bool) ([]Business, error) {
	var businesses []Business

	db := d.db.WithContext(ctx).Preload("User")
	if pendingOnly {
		db = db.Where("verified = ?", false)
	}

	result := db.Order("created_at DESC, id DESC").Find(&businesses)
	if result.Error != nil {
		return nil, result.Error
	}

	return businesses, nil
}

func (d *BusinessDAO) Update(ctx context.Context, id uint, fields map[string]interface{}) (Business, error) {
	var business Business

	result := d.db.WithContext(ctx).Model(&business).Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "tax_code") {
			return Business{}, ErrBusinessTaxCodeExists
		}

		return Business{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Business{}, ErrBusinessNotFound
	}

	return business, nil
}

func (d *BusinessDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Business{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBusinessNotFound
	}

	return nil
}

func (d *BusinessDAO) Count(ctx context.Context) (int64, error) {
	var total int64
	err := d.db.WithContext(ctx).Model(&Business{}).Count(&total).Error

	return total, err
}
