package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/repository"
)

var (
	ErrUserNotFound    = repository.ErrUserNotFound
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidPassword = errors.New("current password is incorrect")
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	List(ctx context.Context, page domain.Page) ([]domain.User, int64, error)
	Update(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error)
	Delete(ctx context.Context, id uint) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// UpdateProfile applies a self-service update. Role, status and password are ignored.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error) {
	update.Role = nil
	update.Status = nil
	update.Password = nil

	return s.update(ctx, id, update)
}

func (s *UserService) ChangePassword(ctx context.Context, id uint, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return ErrInvalidPassword
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := s.repo.Update(ctx, id, domain.UserUpdate{Password: &hashed}); err != nil {
		return fmt.Errorf("s.repo.Update -> %w", err)
	}

	return nil
}

func (s *UserService) ListUsers(ctx context.Context, page domain.Page) ([]domain.User, int64, error) {
	users, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.List -> %w", err)
	}

	return users, total, nil
}

// CreateUser is the admin path: any role, password hashed here.
func (s *UserService) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if user.Role == "" {
		user.Role = domain.RoleCitizen
	}
	if !user.Role.Valid() {
		return domain.User{}, ErrInvalidRole
	}
	if user.Status == "" {
		user.Status = domain.UserStatusActive
	}
	user.Email = normalizeEmail(user.Email)

	if _, err := s.repo.FindByEmail(ctx, user.Email); err == nil {
		return domain.User{}, ErrUserEmailExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	hashed, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = hashed

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// UpdateUser is the admin path and may change role, status (lock/unlock) and password.
func (s *UserService) UpdateUser(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error) {
	if update.Role != nil && !update.Role.Valid() {
		return domain.User{}, ErrInvalidRole
	}
	if update.Password != nil {
		hashed, err := hashPassword(*update.Password)
		if err != nil {
			return domain.User{}, err
		}
		update.Password = &hashed
	}

	return s.update(ctx, id, update)
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *UserService) update(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error) {
	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		update.Email = &email

		existing, err := s.repo.FindByEmail(ctx, email)
		if err == nil && existing.ID != id {
			return domain.User{}, ErrUserEmailExists
		}
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
		}
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}
