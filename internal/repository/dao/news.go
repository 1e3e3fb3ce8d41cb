package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNewsNotFound = errors.New("news not found")

type News struct {
	ID uint `gorm:"primaryKey"`

	Title     string `gorm:"not null"`
	Content   string `gorm:"type:text;not null"`
	Thumbnail string
	Images    []string `gorm:"type:jsonb;serializer:json"`
	CreatedBy uint     `gorm:"not null;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewsDAO struct {
	db *gorm.DB
}

func NewNewsDAO(db *gorm.DB) *NewsDAO {
	return &NewsDAO{
		db: db,
	}
}

func (d *NewsDAO) Insert(ctx context.Context, news News) (News, error) {
	result := d.db.WithContext(ctx).Create(&news)
	if result.Error != nil {
		return News{}, result.Error
	}

	return news, nil
}

func (d *NewsDAO) FindByID(ctx context.Context, id uint) (News, error) {
	var news News

	result := d.db.WithContext(ctx).First(&news, id)
	if result.Error != nil {
		return News{}, notFound(result.Error, ErrNewsNotFound)
	}

	return news, nil
}

func (d *NewsDAO) FindAll(ctx context.Context) ([]News, error) {
	var news []News

	result := d.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&news)
	if result.Error != nil {
		return nil, result.Error
	}

	return news, nil
}

func (d *NewsDAO) Update(ctx context.Context, id uint, fields map[string]interface{}) (News, error) {
	result := d.db.WithContext(ctx).Model(&News{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return News{}, result.Error
	}
	if result.RowsAffected == 0 {
		return News{}, ErrNewsNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *NewsDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&News{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNewsNotFound
	}

	return nil
}

func (d *NewsDAO) Count(ctx context.Context) (int64, error) {
	var total int64
	err := d.db.WithContext(ctx).Model(&News{}).Count(&total).Error

	return total, err
}
