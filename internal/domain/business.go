package domain

import "time"

// Business is the organization profile attached to a business account.
type Business struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"userId"`
	User        *User     `json:"user,omitempty"`
	CompanyName string    `json:"companyName"`
	TaxCode     string    `json:"taxCode"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"createdAt"`
}
