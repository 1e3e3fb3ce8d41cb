package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateBusinessRequest struct {
	UserID      uint   `json:"userId"`
	CompanyName string `json:"companyName"`
	TaxCode     string `json:"taxCode"`
	Verified    bool   `json:"verified"`
}

func (req *CreateBusinessRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.CompanyName, validation.Required),
		validation.Field(&req.TaxCode, validation.Required),
	)
}

type UpdateBusinessRequest struct {
	CompanyName *string `json:"companyName"`
	TaxCode     *string `json:"taxCode"`
	Verified    *bool   `json:"verified"`
}

func (req *UpdateBusinessRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CompanyName, validation.NilOrNotEmpty),
		validation.Field(&req.TaxCode, validation.NilOrNotEmpty),
	)
}
