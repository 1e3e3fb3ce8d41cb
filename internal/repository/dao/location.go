package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrAlreadyCheckedIn = errors.New("already checked in at this location today")
	ErrLocationQRExists = errors.New("location qr code already exists")
)

type Location struct {
	ID uint `gorm:"primaryKey"`

	BusinessID uint   `gorm:"not null;default:0;index"`
	Name       string `gorm:"not null"`
	Address    string
	Latitude   float64 `gorm:"not null;index:idx_locations_lat_lng"`
	Longitude  float64 `gorm:"not null;index:idx_locations_lat_lng"`
	OpenHours  string
	Type       string `gorm:"not null;default:other"`
	Status     string `gorm:"not null;default:active;index"`
	QRCode     string `gorm:"unique;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CheckIn rows are unique per user, location and day so a second check-in
// on the same day fails at insert time.
type CheckIn struct {
	ID uint `gorm:"primaryKey"`

	UserID       uint      `gorm:"not null;uniqueIndex:idx_check_ins_once_per_day"`
	LocationID   uint      `gorm:"not null;uniqueIndex:idx_check_ins_once_per_day"`
	CheckInDate  time.Time `gorm:"type:date;not null;uniqueIndex:idx_check_ins_once_per_day"`
	PointsEarned int       `gorm:"not null;default:0"`
	CheckInTime  time.Time `gorm:"not null"`

	CreatedAt time.Time
}

type LocationDAO struct {
	db *gorm.DB
}

func NewLocationDAO(db *gorm.DB) *LocationDAO {
	return &LocationDAO{
		db: db,
	}
}

func (d *LocationDAO) Insert(ctx context.Context, location Location) (Location, error) {
	result := d.db.WithContext(ctx).Create(&location)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "qr_code") {
			return Location{}, ErrLocationQRExists
		}

		return Location{}, result.Error
	}

	return location, nil
}

func (d *LocationDAO) FindByID(ctx context.Context, id uint) (Location, error) {
	var location Location

	result := d.db.WithContext(ctx).First(&location, id)
	if result.Error != nil {
		return Location{}, notFound(result.Error, ErrLocationNotFound)
	}

	return location, nil
}

func (d *LocationDAO) FindActiveByQRCode(ctx context.Context, code string) (Location, error) {
	var location Location

	result := d.db.WithContext(ctx).First(&location, "qr_code = ? AND status = ?", code, "active")
	if result.Error != nil {
		return Location{}, notFound(result.Error, ErrLocationNotFound)
	}

	return location, nil
}

// List filters by type and status when they are non-empty.
func (d *LocationDAO) List(ctx context.Context, locationType, status string) ([]Location, error) {
	var locations []Location

	db := d.db.WithContext(ctx)
	if locationType != "" {
		db = db.Where("type = ?", locationType)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	result := db.Order("created_at DESC, id DESC").Find(&locations)
	if result.Error != nil {
		return nil, result.Error
	}

	return locations, nil
}

func (d *LocationDAO) Update(ctx context.Context, id uint, fields map[string]interface{}) (Location, error) {
	result := d.db.WithContext(ctx).Model(&Location{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return Location{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Location{}, ErrLocationNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *LocationDAO) Count(ctx context.Context) (int64, error) {
	var total int64
	err := d.db.WithContext(ctx).Model(&Location{}).Count(&total).Error

	return total, err
}

func (d *LocationDAO) InsertCheckIn(ctx context.Context, checkIn CheckIn) (CheckIn, error) {
	result := d.db.WithContext(ctx).Create(&checkIn)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "once_per_day") {
			return CheckIn{}, ErrAlreadyCheckedIn
		}

		return CheckIn{}, result.Error
	}

	return checkIn, nil
}
