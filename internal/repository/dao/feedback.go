package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrFeedbackNotFound = errors.New("feedback not found")

type Feedback struct {
	ID uint `gorm:"primaryKey"`

	UserID  *uint  `gorm:"index"`
	Message string `gorm:"type:text;not null"`

	CreatedAt time.Time
}

type FeedbackDAO struct {
	db *gorm.DB
}

func NewFeedbackDAO(db *gorm.DB) *FeedbackDAO {
	return &FeedbackDAO{
		db: db,
	}
}

func (d *FeedbackDAO) Insert(ctx context.Context, feedback Feedback) (Feedback, error) {
	result := d.db.WithContext(ctx).Create(&feedback)
	if result.Error != nil {
		return Feedback{}, result.Error
	}

	return feedback, nil
}

func (d *FeedbackDAO) FindByID(ctx context.Context, id uint) (Feedback, error) {
	var feedback Feedback

	result := d.db.WithContext(ctx).First(&feedback, id)
	if result.Error != nil {
		return Feedback{}, notFound(result.Error, ErrFeedbackNotFound)
	}

	return feedback, nil
}

// List pages feedback newest first; userID zero means every user.
func (d *FeedbackDAO) List(ctx context.Context, userID uint, offset, limit int) ([]Feedback, int64, error) {
	var feedback []Feedback
	var total int64

	db := d.db.WithContext(ctx).Model(&Feedback{})
	if userID != 0 {
		db = db.Where("user_id = ?", userID)
	}
	db = db.Session(&gorm.Session{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := db.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&feedback)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return feedback, total, nil
}

func (d *FeedbackDAO) UpdateMessage(ctx context.Context, id uint, message string) (Feedback, error) {
	result := d.db.WithContext(ctx).Model(&Feedback{}).Where("id = ?", id).Update("message", message)
	if result.Error != nil {
		return Feedback{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Feedback{}, ErrFeedbackNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *FeedbackDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Feedback{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFeedbackNotFound
	}

	return nil
}
