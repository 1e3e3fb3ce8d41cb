package repository

import (
	"context"
	"fmt"

	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/repository/dao"
)

var (
	ErrBusinessNotFound      = dao.ErrBusinessNotFound
	ErrBusinessTaxCodeExists = dao.ErrBusinessTaxCodeExists
)

type BusinessDAO interface {
	Insert(ctx context.Context, business dao.Business) (dao.Business, error)
	FindByID(ctx context.Context, id uint) (dao.Business, error)
	FindByUserID(ctx context.Context, userID uint) (dao.Business, error)
	List(ctx context.Context, pendingOnly bool) ([]dao.Business, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (dao.Business, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type BusinessRepository struct {
	dao BusinessDAO
}

func NewBusinessRepository(dao BusinessDAO) *BusinessRepository {
	return &BusinessRepository{
		dao: dao,
	}
}

func (r *BusinessRepository) Create(ctx context.Context, business domain.Business) (domain.Business, error) {
	created, err := r.dao.Insert(ctx, dao.Business{
		UserID:      business.UserID,
		CompanyName: business.CompanyName,
		TaxCode:     business.TaxCode,
		Verified:    business.Verified,
	})
	if err != nil {
		return domain.Business{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *BusinessRepository) FindByID(ctx context.Context, id uint) (domain.Business, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Business{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *BusinessRepository) FindByUserID(ctx context.Context, userID uint) (domain.Business, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return domain.Business{}, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *BusinessRepository) List(ctx context.Context, pendingOnly bool) ([]domain.Business, error) {
	found, err := r.dao.List(ctx, pendingOnly)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	result := make([]domain.Business, 0, len(found))
	for _, b := range found {
		result = append(result, r.daoToDomain(b))
	}

	return result, nil
}

// Update changes company name, tax code or verification; nil means unchanged.
func (r *BusinessRepository) Update(ctx context.Context, id uint, companyName, taxCode *string, verified *bool) (domain.Business, error) {
	fields := map[string]interface{}{}
	if companyName != nil {
		fields["company_name"] = *companyName
	}
	if taxCode != nil {
		fields["tax_code"] = *taxCode
	}
	if verified != nil {
		fields["verified"] = *verified
	}
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	if _, err := r.dao.Update(ctx, id, fields); err != nil {
		return domain.Business{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *BusinessRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *BusinessRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return total, nil
}

func (r *BusinessRepository) daoToDomain(b dao.Business) domain.Business {
	business := domain.Business{
		ID:          b.ID,
		UserID:      b.UserID,
		CompanyName: b.CompanyName,
		TaxCode:     b.TaxCode,
		Verified:    b.Verified,
		CreatedAt:   b.CreatedAt,
	}
	if b.User.ID != 0 {
		user := domain.User{
			ID:    b.User.ID,
			Name:  b.User.Name,
			Email: b.User.Email,
			Role:  domain.Role(b.User.Role),
		}
		business.User = &user
	}

	return business
}
