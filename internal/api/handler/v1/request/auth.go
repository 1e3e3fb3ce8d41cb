package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/pinswap/api/internal/domain"
)

// The lookaheads need regexp2; RE2 has no lookaround.
var passwordExp = regexp2.MustCompile(`^(?=.*[A-Za-z])(?=.*\d).{8,}$`, regexp2.None)

var (
	errInvalidPassword       = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errPasswordMismatch      = errors.New("confirm password doesn't match the password")
	errMissingBusinessFields = errors.New("companyName and taxCode are required for business accounts")
)

func validatePassword(password string) error {
	ok, err := passwordExp.MatchString(password)
	if err != nil || !ok {
		return errInvalidPassword
	}

	return nil
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	Role            string `json:"role"`
	CompanyName     string `json:"companyName"`
	TaxCode         string `json:"taxCode"`
}

func (req *RegisterRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.Role, validation.In(string(domain.RoleCitizen), string(domain.RoleBusiness))),
	)
	if err != nil {
		return err
	}

	if err := validatePassword(req.Password); err != nil {
		return err
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		return errPasswordMismatch
	}
	if req.IsBusiness() && (req.CompanyName == "" || req.TaxCode == "") {
		return errMissingBusinessFields
	}

	return nil
}

func (req *RegisterRequest) IsBusiness() bool {
	return req.Role == string(domain.RoleBusiness)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Role, when set, must match the account's role.
	Role string `json:"role"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.Role, validation.In(string(domain.RoleCitizen), string(domain.RoleBusiness), string(domain.RoleAdmin))),
	)
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (req *ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
	)
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (req *ResetPasswordRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Token, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.Password)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (req *ChangePasswordRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.CurrentPassword, validation.Required),
		validation.Field(&req.NewPassword, validation.Required),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.NewPassword)
}
