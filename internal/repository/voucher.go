package repository

import (
	"context"
	"fmt"

	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/repository/dao"
)

var (
	ErrVoucherNotFound    = dao.ErrVoucherNotFound
	ErrVoucherUnavailable = dao.ErrVoucherUnavailable
)

type VoucherDAO interface {
	Insert(ctx context.Context, voucher dao.Voucher) (dao.Voucher, error)
	FindByID(ctx context.Context, id uint) (dao.Voucher, error)
	FindRedeemable(ctx context.Context) ([]dao.Voucher, error)
	FindAll(ctx context.Context) ([]dao.Voucher, error)
	FindByBusinessID(ctx context.Context, businessID uint) ([]dao.Voucher, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (dao.Voucher, error)
	Delete(ctx context.Context, id uint) error
	DecrementQuantity(ctx context.Context, id uint) (dao.Voucher, error)
}

type RedemptionDAO interface {
	Insert(ctx context.Context, redemption dao.Redemption) (dao.Redemption, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Redemption, error)
}

type VoucherRepository struct {
	vouchers    VoucherDAO
	redemptions RedemptionDAO
}

func NewVoucherRepository(vouchers VoucherDAO, redemptions RedemptionDAO) *VoucherRepository {
	return &VoucherRepository{
		vouchers:    vouchers,
		redemptions: redemptions,
	}
}

func (r *VoucherRepository) Create(ctx context.Context, voucher domain.Voucher) (domain.Voucher, error) {
	created, err := r.vouchers.Insert(ctx, dao.Voucher{
		BusinessID:     voucher.BusinessID,
		Title:          voucher.Title,
		Description:    voucher.Description,
		Discount:       voucher.Discount,
		ExpiryDate:     voucher.ExpiryDate,
		Images:         voucher.Images,
		PointsRequired: voucher.PointsRequired,
		Quantity:       voucher.Quantity,
		Status:         string(voucher.Status),
	})
	if err != nil {
		return domain.Voucher{}, fmt.Errorf("r.vouchers.Insert -> %w", err)
	}

	return voucherToDomain(created), nil
}

func (r *VoucherRepository) FindByID(ctx context.Context, id uint) (domain.Voucher, error) {
	found, err := r.vouchers.FindByID(ctx, id)
	if err != nil {
		return domain.Voucher{}, fmt.Errorf("r.vouchers.FindByID -> %w", err)
	}

	return voucherToDomain(found), nil
}

func (r *VoucherRepository) FindRedeemable(ctx context.Context) ([]domain.Voucher, error) {
	found, err := r.vouchers.FindRedeemable(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.vouchers.FindRedeemable -> %w", err)
	}

	return vouchersToDomain(found), nil
}

func (r *VoucherRepository) FindAll(ctx context.Context) ([]domain.Voucher, error) {
	found, err := r.vouchers.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.vouchers.FindAll -> %w", err)
	}

	return vouchersToDomain(found), nil
}

func (r *VoucherRepository) FindByBusinessID(ctx context.Context, businessID uint) ([]domain.Voucher, error) {
	found, err := r.vouchers.FindByBusinessID(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("r.vouchers.FindByBusinessID -> %w", err)
	}

	return vouchersToDomain(found), nil
}

func (r *VoucherRepository) Update(ctx context.Context, id uint, update domain.VoucherUpdate) (domain.Voucher, error) {
	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Discount != nil {
		fields["discount"] = *update.Discount
	}
	if update.ExpiryDate != nil {
		fields["expiry_date"] = *update.ExpiryDate
	}
	if update.Images != nil {
		fields["images"] = jsonColumn(update.Images)
	}
	if update.PointsRequired != nil {
		fields["points_required"] = *update.PointsRequired
	}
	if update.Quantity != nil {
		fields["quantity"] = *update.Quantity
	}
	if update.Status != nil {
		fields["status"] = string(*update.Status)
	}
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	updated, err := r.vouchers.Update(ctx, id, fields)
	if err != nil {
		return domain.Voucher{}, fmt.Errorf("r.vouchers.Update -> %w", err)
	}

	return voucherToDomain(updated), nil
}

func (r *VoucherRepository) Delete(ctx context.Context, id uint) error {
	if err := r.vouchers.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.vouchers.Delete -> %w", err)
	}

	return nil
}

// DecrementQuantity takes one unit of stock, failing with ErrVoucherUnavailable when none is left.
func (r *VoucherRepository) DecrementQuantity(ctx context.Context, id uint) (domain.Voucher, error) {
	updated, err := r.vouchers.DecrementQuantity(ctx, id)
	if err != nil {
		return domain.Voucher{}, fmt.Errorf("r.vouchers.DecrementQuantity -> %w", err)
	}

	return voucherToDomain(updated), nil
}

func (r *VoucherRepository) CreateRedemption(ctx context.Context, record domain.RedemptionRecord) (domain.RedemptionRecord, error) {
	created, err := r.redemptions.Insert(ctx, dao.Redemption{
		UserID:     record.UserID,
		VoucherID:  record.VoucherID,
		BusinessID: record.BusinessID,
		Code:       record.Code,
		PointsUsed: record.PointsUsed,
	})
	if err != nil {
		return domain.RedemptionRecord{}, fmt.Errorf("r.redemptions.Insert -> %w", err)
	}

	return redemptionToDomain(created), nil
}

func (r *VoucherRepository) FindRedemptionsByUser(ctx context.Context, userID uint) ([]domain.RedemptionRecord, error) {
	found, err := r.redemptions.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.redemptions.FindByUserID -> %w", err)
	}

	result := make([]domain.RedemptionRecord, 0, len(found))
	for _, rec := range found {
		result = append(result, redemptionToDomain(rec))
	}

	return result, nil
}

func voucherToDomain(v dao.Voucher) domain.Voucher {
	voucher := domain.Voucher{
		ID:             v.ID,
		BusinessID:     v.BusinessID,
		Title:          v.Title,
		Description:    v.Description,
		Discount:       v.Discount,
		ExpiryDate:     v.ExpiryDate,
		Images:         v.Images,
		PointsRequired: v.PointsRequired,
		Quantity:       v.Quantity,
		Status:         domain.VoucherStatus(v.Status),
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
	if voucher.Images == nil {
		voucher.Images = []string{}
	}
	if v.Owner != nil {
		voucher.CompanyName = v.Owner.CompanyName
	}

	return voucher
}

func vouchersToDomain(vouchers []dao.Voucher) []domain.Voucher {
	result := make([]domain.Voucher, 0, len(vouchers))
	for _, v := range vouchers {
		result = append(result, voucherToDomain(v))
	}

	return result
}

func redemptionToDomain(r dao.Redemption) domain.RedemptionRecord {
	record := domain.RedemptionRecord{
		ID:         r.ID,
		UserID:     r.UserID,
		VoucherID:  r.VoucherID,
		BusinessID: r.BusinessID,
		Code:       r.Code,
		PointsUsed: r.PointsUsed,
		CreatedAt:  r.CreatedAt,
	}
	if r.Voucher.ID != 0 {
		v := voucherToDomain(r.Voucher)
		record.Voucher = &v
	}

	return record
}
