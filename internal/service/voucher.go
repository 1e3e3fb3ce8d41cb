package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/metrics"
	"github.com/pinswap/api/internal/repository"
)

var (
	ErrVoucherNotFound    = repository.ErrVoucherNotFound
	ErrVoucherUnavailable = repository.ErrVoucherUnavailable
	ErrInsufficientPoints = repository.ErrInsufficientPoints
	ErrNotVoucherOwner    = errors.New("voucher belongs to another business")
)

const redemptionCodePrefix = "VCHR-"

type VoucherRepository interface {
	Create(ctx context.Context, voucher domain.Voucher) (domain.Voucher, error)
	FindByID(ctx context.Context, id uint) (domain.Voucher, error)
	FindRedeemable(ctx context.Context) ([]domain.Voucher, error)
	FindAll(ctx context.Context) ([]domain.Voucher, error)
	FindByBusinessID(ctx context.Context, businessID uint) ([]domain.Voucher, error)
	Update(ctx context.Context, id uint, update domain.VoucherUpdate) (domain.Voucher, error)
	Delete(ctx context.Context, id uint) error
	DecrementQuantity(ctx context.Context, id uint) (domain.Voucher, error)
	CreateRedemption(ctx context.Context, record domain.RedemptionRecord) (domain.RedemptionRecord, error)
	FindRedemptionsByUser(ctx context.Context, userID uint) ([]domain.RedemptionRecord, error)
}

// PointsRepository moves points with single-row conditional updates.
type PointsRepository interface {
	DebitPoints(ctx context.Context, id uint, amount int) (domain.User, error)
	CreditPoints(ctx context.Context, id uint, amount int) (domain.User, error)
}

type VoucherService struct {
	repo   VoucherRepository
	points PointsRepository
}

func NewVoucherService(repo VoucherRepository, points PointsRepository) *VoucherService {
	return &VoucherService{
		repo:   repo,
		points: points,
	}
}

// ListAvailable returns the catalog: active vouchers with stock left.
func (s *VoucherService) ListAvailable(ctx context.Context) ([]domain.Voucher, error) {
	vouchers, err := s.repo.FindRedeemable(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRedeemable -> %w", err)
	}

	return vouchers, nil
}

func (s *VoucherService) GetVoucher(ctx context.Context, id uint) (domain.Voucher, error) {
	voucher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Voucher{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return voucher, nil
}

// Redeem exchanges points for one unit of a voucher.
//
// The points debit and the stock decrement are two separate guarded updates.
// When the decrement loses the race for the last unit, the debit is refunded
// once; a failed refund is logged and counted but not retried.
func (s *VoucherService) Redeem(ctx context.Context, userID, voucherID uint) (domain.RedemptionResult, error) {
	voucher, err := s.repo.FindByID(ctx, voucherID)
	if err != nil {
		if errors.Is(err, repository.ErrVoucherNotFound) {
			metrics.RedemptionsTotal.WithLabelValues("unavailable").Inc()
			return domain.RedemptionResult{}, ErrVoucherUnavailable
		}

		metrics.RedemptionsTotal.WithLabelValues("error").Inc()
		return domain.RedemptionResult{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !voucher.Redeemable() {
		metrics.RedemptionsTotal.WithLabelValues("unavailable").Inc()
		return domain.RedemptionResult{}, ErrVoucherUnavailable
	}

	cost := voucher.PointsRequired
	if cost < 0 {
		cost = 0
	}

	var remaining *int
	if cost > 0 {
		user, err := s.points.DebitPoints(ctx, userID, cost)
		if err != nil {
			if errors.Is(err, repository.ErrInsufficientPoints) {
				metrics.RedemptionsTotal.WithLabelValues("insufficient_points").Inc()
				return domain.RedemptionResult{}, ErrInsufficientPoints
			}

			metrics.RedemptionsTotal.WithLabelValues("error").Inc()
			return domain.RedemptionResult{}, fmt.Errorf("s.points.DebitPoints -> %w", err)
		}
		remaining = &user.Points
	}

	updated, err := s.repo.DecrementQuantity(ctx, voucherID)
	if err != nil {
		if cost > 0 {
			s.refund(ctx, userID, voucherID, cost)
		}
		if errors.Is(err, repository.ErrVoucherUnavailable) {
			metrics.RedemptionsTotal.WithLabelValues("unavailable").Inc()
			return domain.RedemptionResult{}, ErrVoucherUnavailable
		}

		metrics.RedemptionsTotal.WithLabelValues("error").Inc()
		return domain.RedemptionResult{}, fmt.Errorf("s.repo.DecrementQuantity -> %w", err)
	}
	updated.CompanyName = voucher.CompanyName

	code, err := newRedemptionCode()
	if err != nil {
		metrics.RedemptionsTotal.WithLabelValues("error").Inc()
		return domain.RedemptionResult{}, err
	}

	record, err := s.repo.CreateRedemption(ctx, domain.RedemptionRecord{
		UserID:     userID,
		VoucherID:  voucherID,
		BusinessID: voucher.BusinessID,
		Code:       code,
		PointsUsed: cost,
	})
	if err != nil {
		zap.L().Error("voucher consumed but redemption record not saved",
			zap.Uint("user_id", userID), zap.Uint("voucher_id", voucherID),
			zap.String("code", code), zap.Int("points", cost), zap.Error(err))
		metrics.RedemptionsTotal.WithLabelValues("error").Inc()

		return domain.RedemptionResult{}, fmt.Errorf("s.repo.CreateRedemption -> %w", err)
	}
	record.Voucher = &updated

	metrics.RedemptionsTotal.WithLabelValues("success").Inc()

	return domain.RedemptionResult{
		Record:          record,
		Voucher:         updated,
		RemainingPoints: remaining,
	}, nil
}

// refund runs even if the request was cancelled after the debit.
func (s *VoucherService) refund(ctx context.Context, userID, voucherID uint, amount int) {
	if _, err := s.points.CreditPoints(context.WithoutCancel(ctx), userID, amount); err != nil {
		metrics.CompensationFailuresTotal.Inc()
		zap.L().Error("failed to refund points after voucher sold out",
			zap.Uint("user_id", userID), zap.Uint("voucher_id", voucherID),
			zap.Int("points", amount), zap.Error(err))
	}
}

// History lists the user's redemptions, newest first.
func (s *VoucherService) History(ctx context.Context, userID uint) ([]domain.RedemptionRecord, error) {
	records, err := s.repo.FindRedemptionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRedemptionsByUser -> %w", err)
	}

	return records, nil
}

// CreateVoucher stores a voucher. Business accounts always own what they create.
func (s *VoucherService) CreateVoucher(ctx context.Context, actor domain.User, voucher domain.Voucher) (domain.Voucher, error) {
	if actor.Role == domain.RoleBusiness {
		voucher.BusinessID = actor.ID
	}
	if voucher.Status == "" {
		voucher.Status = domain.VoucherStatusActive
	}

	created, err := s.repo.Create(ctx, voucher)
	if err != nil {
		return domain.Voucher{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *VoucherService) UpdateVoucher(ctx context.Context, actor domain.User, id uint, update domain.VoucherUpdate) (domain.Voucher, error) {
	if err := s.checkOwner(ctx, actor, id); err != nil {
		return domain.Voucher{}, err
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.Voucher{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *VoucherService) DeleteVoucher(ctx context.Context, actor domain.User, id uint) error {
	if err := s.checkOwner(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// ListByBusiness lists a business's vouchers. Business accounts only see their own.
func (s *VoucherService) ListByBusiness(ctx context.Context, actor domain.User, businessID uint) ([]domain.Voucher, error) {
	if actor.Role == domain.RoleBusiness {
		businessID = actor.ID
	}

	vouchers, err := s.repo.FindByBusinessID(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByBusinessID -> %w", err)
	}

	return vouchers, nil
}

func (s *VoucherService) ListAll(ctx context.Context) ([]domain.Voucher, error) {
	vouchers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return vouchers, nil
}

func (s *VoucherService) checkOwner(ctx context.Context, actor domain.User, id uint) error {
	voucher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if actor.Role == domain.RoleBusiness && voucher.BusinessID != actor.ID {
		return ErrNotVoucherOwner
	}

	return nil
}

func newRedemptionCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("rand.Int -> %w", err)
	}

	return fmt.Sprintf("%s%06d", redemptionCodePrefix, n.Int64()), nil
}
