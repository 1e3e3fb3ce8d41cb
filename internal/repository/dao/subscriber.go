package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrSubscriberExists   = errors.New("email already subscribed")
)

type Subscriber struct {
	ID uint `gorm:"primaryKey"`

	Email        string  `gorm:"unique;not null"`
	Confirmed    bool    `gorm:"not null;default:false;index"`
	Token        *string `gorm:"index"`
	TokenExpires *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SubscriberDAO struct {
	db *gorm.DB
}

func NewSubscriberDAO(db *gorm.DB) *SubscriberDAO {
	return &SubscriberDAO{
		db: db,
	}
}

func (d *SubscriberDAO) Insert(ctx context.Context, subscriber Subscriber) (Subscriber, error) {
	result := d.db.WithContext(ctx).Create(&subscriber)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "email") {
			return Subscriber{}, ErrSubscriberExists
		}

		return Subscriber{}, result.Error
	}

	return subscriber, nil
}

func (d *SubscriberDAO) FindByEmail(ctx context.Context, email string) (Subscriber, error) {
	var subscriber Subscriber

	result := d.db.WithContext(ctx).First(&subscriber, "email = ?", email)
	if result.Error != nil {
		return Subscriber{}, notFound(result.Error, ErrSubscriberNotFound)
	}

	return subscriber, nil
}

func (d *SubscriberDAO) FindByToken(ctx context.Context, token string, now time.Time) (Subscriber, error) {
	var subscriber Subscriber

	result := d.db.WithContext(ctx).First(&subscriber, "token = ? AND token_expires > ?", token, now)
	if result.Error != nil {
		return Subscriber{}, notFound(result.Error, ErrSubscriberNotFound)
	}

	return subscriber, nil
}

func (d *SubscriberDAO) FindConfirmed(ctx context.Context) ([]Subscriber, error) {
	var subscribers []Subscriber

	result := d.db.WithContext(ctx).Where("confirmed = ?", true).Order("id ASC").Find(&subscribers)
	if result.Error != nil {
		return nil, result.Error
	}

	return subscribers, nil
}

func (d *SubscriberDAO) List(ctx context.Context, email string, offset, limit int) ([]Subscriber, int64, error) {
	var subscribers []Subscriber
	var total int64

	db := d.db.WithContext(ctx).Model(&Subscriber{})
	if email != "" {
		db = db.Where("email ILIKE ?", "%"+email+"%")
	}
	db = db.Session(&gorm.Session{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := db.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&subscribers)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return subscribers, total, nil
}

func (d *SubscriberDAO) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := d.db.WithContext(ctx).Model(&Subscriber{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriberNotFound
	}

	return nil
}

func (d *SubscriberDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Subscriber{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriberNotFound
	}

	return nil
}
