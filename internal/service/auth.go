package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pinswap/api/internal/config"
	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/pkg/mailer"
	"github.com/pinswap/api/internal/repository"
)

var (
	ErrUserEmailExists       = repository.ErrUserEmailExists
	ErrBusinessTaxCodeExists = repository.ErrBusinessTaxCodeExists
	ErrWrongPassword         = errors.New("invalid credentials")
	ErrRoleMismatch          = errors.New("account does not have the requested role")
	ErrAccountLocked         = errors.New("account is locked")
	ErrInvalidResetToken     = errors.New("token is invalid or has expired")
	ErrEmailDelivery         = errors.New("failed to send email")
)

const resetTokenTTL = time.Hour

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (domain.User, error)
	SetResetToken(ctx context.Context, id uint, tokenHash *string, expires *time.Time) error
	ResetPassword(ctx context.Context, id uint, passwordHash string) (domain.User, error)
	Delete(ctx context.Context, id uint) error
}

type AuthBusinessRepository interface {
	Create(ctx context.Context, business domain.Business) (domain.Business, error)
}

type AuthService struct {
	conf         *config.APIConfig
	repo         AuthUserRepository
	businessRepo AuthBusinessRepository
	mailer       mailer.Mailer
	now          func() time.Time
}

func NewAuthService(conf *config.APIConfig, repo AuthUserRepository, businessRepo AuthBusinessRepository, m mailer.Mailer) *AuthService {
	return &AuthService{
		conf:         conf,
		repo:         repo,
		businessRepo: businessRepo,
		mailer:       m,
		now:          time.Now,
	}
}

// Register creates a citizen, or a business account together with its profile
// when business is not nil. The account is removed again if the profile cannot be saved.
func (s *AuthService) Register(ctx context.Context, user domain.User, business *domain.Business) (domain.User, error) {
	user.Email = normalizeEmail(user.Email)
	if err := s.checkEmailExists(ctx, user.Email); err != nil {
		return domain.User{}, err
	}

	hashedPassword, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = hashedPassword
	user.Status = domain.UserStatusActive
	user.Role = domain.RoleCitizen
	if business != nil {
		user.Role = domain.RoleBusiness
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if business == nil {
		return created, nil
	}

	business.UserID = created.ID
	if _, err := s.businessRepo.Create(ctx, *business); err != nil {
		if delErr := s.repo.Delete(ctx, created.ID); delErr != nil {
			zap.L().Error("failed to remove user after business profile error",
				zap.Uint("user_id", created.ID), zap.Error(delErr))
		}

		return domain.User{}, fmt.Errorf("s.businessRepo.Create -> %w", err)
	}

	return created, nil
}

// Login checks the credentials. A non-empty role must match the account's role.
func (s *AuthService) Login(ctx context.Context, email, password string, role domain.Role) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrWrongPassword
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	if role != "" && user.Role != role {
		return domain.User{}, ErrRoleMismatch
	}
	if user.IsLocked() {
		return domain.User{}, ErrAccountLocked
	}

	return user, nil
}

type PasswordReset struct {
	Sent bool
	// Token and URL are only set when the email could not be sent outside production.
	Token string
	URL   string
}

// ForgotPassword stores a one hour reset token and emails the reset link.
// Unknown emails succeed without doing anything.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (PasswordReset, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return PasswordReset{Sent: true}, nil
		}

		return PasswordReset{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	token, err := randomHex(32)
	if err != nil {
		return PasswordReset{}, err
	}
	tokenHash := hashToken(token)
	expires := s.now().Add(resetTokenTTL)
	if err := s.repo.SetResetToken(ctx, user.ID, &tokenHash, &expires); err != nil {
		return PasswordReset{}, fmt.Errorf("s.repo.SetResetToken -> %w", err)
	}

	resetURL := strings.TrimRight(s.conf.FrontendURL, "/") + "/reset-password?token=" + token
	msg, err := mailer.Render(mailer.TemplateResetPassword, user.Email, map[string]string{
		"Name": user.Name,
		"Link": resetURL,
	})
	if err == nil {
		err = s.mailer.Send(ctx, msg)
	}
	if err != nil {
		zap.L().Warn("failed to send reset email", zap.Uint("user_id", user.ID), zap.Error(err))
		if s.conf.IsProduction() {
			return PasswordReset{}, fmt.Errorf("%w: %v", ErrEmailDelivery, err)
		}

		return PasswordReset{Token: token, URL: resetURL}, nil
	}

	return PasswordReset{Sent: true}, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (domain.User, error) {
	user, err := s.repo.FindByResetToken(ctx, hashToken(token), s.now())
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrInvalidResetToken
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByResetToken -> %w", err)
	}

	hashedPassword, err := hashPassword(newPassword)
	if err != nil {
		return domain.User{}, err
	}

	updated, err := s.repo.ResetPassword(ctx, user.ID, hashedPassword)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.ResetPassword -> %w", err)
	}

	return updated, nil
}

func (s *AuthService) checkEmailExists(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return ErrUserEmailExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return string(hash), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read -> %w", err)
	}

	return hex.EncodeToString(b), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
