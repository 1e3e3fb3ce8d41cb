package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserEmailExists    = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInsufficientPoints = errors.New("insufficient points")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Name     string `gorm:"not null"`
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
	Phone    string
	Address  string

	Role       string `gorm:"not null;default:citizen;index"`
	Status     string `gorm:"not null;default:active"`
	IsVerified bool   `gorm:"not null;default:false"`
	Points     int    `gorm:"not null;default:0;check:chk_users_points,points >= 0"`

	ResetPasswordToken   *string `gorm:"index"`
	ResetPasswordExpires *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "email") {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		return User{}, notFound(result.Error, ErrUserNotFound)
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		return User{}, notFound(result.Error, ErrUserNotFound)
	}

	return user, nil
}

// FindByResetToken returns the user holding the hashed token if it has not expired.
func (d *UserDAO) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (User, error) {
	var user User

	result := d.db.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_expires > ?", tokenHash, now).
		First(&user)
	if result.Error != nil {
		return User{}, notFound(result.Error, ErrUserNotFound)
	}

	return user, nil
}

func (d *UserDAO) List(ctx context.Context, offset, limit int) ([]User, int64, error) {
	var users []User
	var total int64

	db := d.db.WithContext(ctx)
	if err := db.Model(&User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := db.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&users)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return users, total, nil
}

// Update applies the given columns and returns the stored row.
func (d *UserDAO) Update(ctx context.Context, id uint, fields map[string]interface{}) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Model(&user).Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "email") {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return User{}, ErrUserNotFound
	}

	return user, nil
}

func (d *UserDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// DebitPoints subtracts amount only when the balance covers it, in a single
// conditional UPDATE. A miss means the balance was too low or the user is gone.
func (d *UserDAO) DebitPoints(ctx context.Context, id uint, amount int) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Model(&user).Clauses(clause.Returning{}).
		Where("id = ? AND points >= ?", id, amount).
		UpdateColumn("points", gorm.Expr("points - ?", amount))
	if result.Error != nil {
		return User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return User{}, ErrInsufficientPoints
	}

	return user, nil
}

// CreditPoints adds amount unconditionally.
func (d *UserDAO) CreditPoints(ctx context.Context, id uint, amount int) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Model(&user).Clauses(clause.Returning{}).
		Where("id = ?", id).
		UpdateColumn("points", gorm.Expr("points + ?", amount))
	if result.Error != nil {
		return User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return User{}, ErrUserNotFound
	}

	return user, nil
}

func (d *UserDAO) Count(ctx context.Context) (int64, error) {
	var total int64
	err := d.db.WithContext(ctx).Model(&User{}).Count(&total).Error

	return total, err
}

func (d *UserDAO) SumPoints(ctx context.Context) (int64, error) {
	var total int64
	err := d.db.WithContext(ctx).Model(&User{}).Select("COALESCE(SUM(points), 0)").Scan(&total).Error

	return total, err
}
