package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/repository/dao"
)

var (
	ErrUserEmailExists    = dao.ErrUserEmailExists
	ErrUserNotFound       = dao.ErrUserNotFound
	ErrInsufficientPoints = dao.ErrInsufficientPoints
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (dao.User, error)
	List(ctx context.Context, offset, limit int) ([]dao.User, int64, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (dao.User, error)
	Delete(ctx context.Context, id uint) error
	DebitPoints(ctx context.Context, id uint, amount int) (dao.User, error)
	CreditPoints(ctx context.Context, id uint, amount int) (dao.User, error)
	Count(ctx context.Context) (int64, error)
	SumPoints(ctx context.Context) (int64, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Name:       user.Name,
		Email:      user.Email,
		Password:   user.Password,
		Phone:      user.Phone,
		Address:    user.Address,
		Role:       string(user.Role),
		Status:     string(user.Status),
		IsVerified: user.IsVerified,
		Points:     user.Points,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (domain.User, error) {
	found, err := r.dao.FindByResetToken(ctx, tokenHash, now)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByResetToken -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) List(ctx context.Context, page domain.Page) ([]domain.User, int64, error) {
	found, total, err := r.dao.List(ctx, page.Offset(), page.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	return r.daoToDomainList(found), total, nil
}

func (r *UserRepository) Update(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Email != nil {
		fields["email"] = *update.Email
	}
	if update.Phone != nil {
		fields["phone"] = *update.Phone
	}
	if update.Address != nil {
		fields["address"] = *update.Address
	}
	if update.Password != nil {
		fields["password"] = *update.Password
	}
	if update.Role != nil {
		fields["role"] = string(*update.Role)
	}
	if update.Status != nil {
		fields["status"] = string(*update.Status)
	}

	return r.update(ctx, id, fields)
}

// SetResetToken stores the hashed reset token; nil values clear it.
func (r *UserRepository) SetResetToken(ctx context.Context, id uint, tokenHash *string, expires *time.Time) error {
	_, err := r.update(ctx, id, map[string]interface{}{
		"reset_password_token":   tokenHash,
		"reset_password_expires": expires,
	})

	return err
}

// ResetPassword sets the hash and clears any pending reset token.
func (r *UserRepository) ResetPassword(ctx context.Context, id uint, passwordHash string) (domain.User, error) {
	return r.update(ctx, id, map[string]interface{}{
		"password":               passwordHash,
		"reset_password_token":   nil,
		"reset_password_expires": nil,
	})
}

func (r *UserRepository) update(ctx context.Context, id uint, fields map[string]interface{}) (domain.User, error) {
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *UserRepository) DebitPoints(ctx context.Context, id uint, amount int) (domain.User, error) {
	updated, err := r.dao.DebitPoints(ctx, id, amount)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.DebitPoints -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) CreditPoints(ctx context.Context, id uint, amount int) (domain.User, error) {
	updated, err := r.dao.CreditPoints(ctx, id, amount)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.CreditPoints -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return total, nil
}

func (r *UserRepository) SumPoints(ctx context.Context) (int64, error) {
	total, err := r.dao.SumPoints(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumPoints -> %w", err)
	}

	return total, nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Password:   u.Password,
		Phone:      u.Phone,
		Address:    u.Address,
		Role:       domain.Role(u.Role),
		Status:     domain.UserStatus(u.Status),
		IsVerified: u.IsVerified,
		Points:     u.Points,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (r *UserRepository) daoToDomainList(users []dao.User) []domain.User {
	result := make([]domain.User, 0, len(users))
	for _, u := range users {
		result = append(result, r.daoToDomain(u))
	}

	return result
}
