package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrRegistrationExists   = errors.New("already registered for this event")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Location    string
	Date        time.Time `gorm:"not null;index"`
	Sponsor     string
	Images      []string `gorm:"type:jsonb;serializer:json"`
	Thumbnail   string
	CreatedBy   uint `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type EventRegistration struct {
	ID uint `gorm:"primaryKey"`

	EventID uint  `gorm:"not null;uniqueIndex:idx_event_registrations_event_user"`
	Event   Event `gorm:"foreignKey:EventID"`
	UserID  uint  `gorm:"not null;uniqueIndex:idx_event_registrations_event_user;index"`
	User    User  `gorm:"foreignKey:UserID"`

	Status string `gorm:"not null;default:registered"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		return Event{}, notFound(result.Error, ErrEventNotFound)
	}

	return event, nil
}

// List pages events by date, optionally filtered by a case-insensitive title search.
func (d *EventDAO) List(ctx context.Context, search string, offset, limit int) ([]Event, int64, error) {
	var events []Event
	var total int64

	db := d.db.WithContext(ctx).Model(&Event{})
	if search != "" {
		db = db.Where("title ILIKE ?", "%"+search+"%")
	}
	db = db.Session(&gorm.Session{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := db.Order("date ASC, id ASC").Offset(offset).Limit(limit).Find(&events)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return events, total, nil
}

func (d *EventDAO) Update(ctx context.Context, id uint, fields map[string]interface{}) (Event, error) {
	result := d.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return Event{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) InsertRegistration(ctx context.Context, registration EventRegistration) (EventRegistration, error) {
	result := d.db.WithContext(ctx).Omit("Event", "User").Create(&registration)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "event_user") {
			return EventRegistration{}, ErrRegistrationExists
		}

		return EventRegistration{}, result.Error
	}

	return registration, nil
}

func (d *EventDAO) FindRegistration(ctx context.Context, eventID, userID uint) (EventRegistration, error) {
	var registration EventRegistration

	result := d.db.WithContext(ctx).First(&registration, "event_id = ? AND user_id = ?", eventID, userID)
	if result.Error != nil {
		return EventRegistration{}, notFound(result.Error, ErrRegistrationNotFound)
	}

	return registration, nil
}

func (d *EventDAO) FindRegistrationByID(ctx context.Context, id uint) (EventRegistration, error) {
	var registration EventRegistration

	result := d.db.WithContext(ctx).First(&registration, id)
	if result.Error != nil {
		return EventRegistration{}, notFound(result.Error, ErrRegistrationNotFound)
	}

	return registration, nil
}

func (d *EventDAO) UpdateRegistrationStatus(ctx context.Context, id uint, status string) (EventRegistration, error) {
	result := d.db.WithContext(ctx).Model(&EventRegistration{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return EventRegistration{}, result.Error
	}
	if result.RowsAffected == 0 {
		return EventRegistration{}, ErrRegistrationNotFound
	}

	return d.FindRegistrationByID(ctx, id)
}

func (d *EventDAO) FindRegistrationsByEvent(ctx context.Context, eventID uint, offset, limit int) ([]EventRegistration, int64, error) {
	var registrations []EventRegistration
	var total int64

	db := d.db.WithContext(ctx).Model(&EventRegistration{}).Where("event_id = ?", eventID).Session(&gorm.Session{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := db.Preload("User").Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&registrations)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return registrations, total, nil
}

func (d *EventDAO) FindRegistrationsByUser(ctx context.Context, userID uint, offset, limit int) ([]EventRegistration, int64, error) {
	var registrations []EventRegistration
	var total int64

	db := d.db.WithContext(ctx).Model(&EventRegistration{}).Where("user_id = ? AND status = ?", userID, "registered").Session(&gorm.Session{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := db.Preload("Event").Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&registrations)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return registrations, total, nil
}
