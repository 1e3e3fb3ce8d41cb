package domain

import "time"

type VoucherStatus string

const (
	VoucherStatusActive   VoucherStatus = "active"
	VoucherStatusInactive VoucherStatus = "inactive"
)

type Voucher struct {
	ID             uint          `json:"id"`
	BusinessID     uint          `json:"businessId,omitempty"`
	CompanyName    string        `json:"companyName,omitempty"`
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	Discount       int           `json:"discount,omitempty"`
	ExpiryDate     *time.Time    `json:"expiryDate,omitempty"`
	Images         []string      `json:"images"`
	PointsRequired int           `json:"pointsRequired"`
	Quantity       int           `json:"quantity"`
	Status         VoucherStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// Redeemable reports whether the catalog may offer the voucher.
func (v Voucher) Redeemable() bool {
	return v.Status == VoucherStatusActive && v.Quantity > 0
}

type VoucherUpdate struct {
	Title          *string
	Description    *string
	Discount       *int
	ExpiryDate     *time.Time
	Images         []string
	PointsRequired *int
	Quantity       *int
	Status         *VoucherStatus
}

// RedemptionRecord is written once per successful redemption and never changed.
type RedemptionRecord struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"userId"`
	VoucherID  uint      `json:"voucherId"`
	Voucher    *Voucher  `json:"voucher,omitempty"`
	BusinessID uint      `json:"businessId,omitempty"`
	Code       string    `json:"code"`
	PointsUsed int       `json:"pointsUsed"`
	CreatedAt  time.Time `json:"createdAt"`
}

type RedemptionResult struct {
	Record  RedemptionRecord
	Voucher Voucher
	// RemainingPoints is nil when the voucher cost nothing.
	RemainingPoints *int
}
