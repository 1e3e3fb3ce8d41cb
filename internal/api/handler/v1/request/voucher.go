package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/pinswap/api/internal/domain"
)

var voucherStatuses = []interface{}{string(domain.VoucherStatusActive), string(domain.VoucherStatusInactive)}

type ExchangeVoucherRequest struct {
	VoucherID uint `json:"voucherId"`
}

func (req *ExchangeVoucherRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.VoucherID, validation.Required),
	)
}

type CreateVoucherRequest struct {
	// BusinessID is honoured for admins only; businesses always own their vouchers.
	BusinessID     uint       `json:"businessId"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Discount       int        `json:"discount"`
	ExpiryDate     *time.Time `json:"expiryDate"`
	Images         []string   `json:"images"`
	PointsRequired int        `json:"pointsRequired"`
	Quantity       int        `json:"quantity"`
	Status         string     `json:"status"`
}

func (req *CreateVoucherRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Discount, validation.Min(0), validation.Max(100)),
		validation.Field(&req.PointsRequired, validation.Min(0)),
		validation.Field(&req.Quantity, validation.Min(0)),
		validation.Field(&req.Status, validation.In(voucherStatuses...)),
	)
}

func (req *CreateVoucherRequest) ToDomain() domain.Voucher {
	return domain.Voucher{
		BusinessID:     req.BusinessID,
		Title:          req.Title,
		Description:    req.Description,
		Discount:       req.Discount,
		ExpiryDate:     req.ExpiryDate,
		Images:         req.Images,
		PointsRequired: req.PointsRequired,
		Quantity:       req.Quantity,
		Status:         domain.VoucherStatus(req.Status),
	}
}

type UpdateVoucherRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Discount       *int       `json:"discount"`
	ExpiryDate     *time.Time `json:"expiryDate"`
	Images         []string   `json:"images"`
	PointsRequired *int       `json:"pointsRequired"`
	Quantity       *int       `json:"quantity"`
	Status         *string    `json:"status"`
}

func (req *UpdateVoucherRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty),
		validation.Field(&req.Discount, validation.Min(0), validation.Max(100)),
		validation.Field(&req.PointsRequired, validation.Min(0)),
		validation.Field(&req.Quantity, validation.Min(0)),
		validation.Field(&req.Status, validation.NilOrNotEmpty, validation.In(voucherStatuses...)),
	)
}

func (req *UpdateVoucherRequest) ToDomain() domain.VoucherUpdate {
	update := domain.VoucherUpdate{
		Title:          req.Title,
		Description:    req.Description,
		Discount:       req.Discount,
		ExpiryDate:     req.ExpiryDate,
		Images:         req.Images,
		PointsRequired: req.PointsRequired,
		Quantity:       req.Quantity,
	}
	if req.Status != nil {
		status := domain.VoucherStatus(*req.Status)
		update.Status = &status
	}

	return update
}
