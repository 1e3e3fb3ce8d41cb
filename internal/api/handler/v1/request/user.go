package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/pinswap/api/internal/domain"
)

var (
	allRoles    = []interface{}{string(domain.RoleCitizen), string(domain.RoleBusiness), string(domain.RoleAdmin)}
	allStatuses = []interface{}{string(domain.UserStatusActive), string(domain.UserStatusLocked)}
)

type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (req *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&req.Email, validation.NilOrNotEmpty, is.Email),
	)
}

func (req *UpdateProfileRequest) ToDomain() domain.UserUpdate {
	return domain.UserUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

func (req *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.Role, validation.In(allRoles...)),
	)
}

func (req *CreateUserRequest) ToDomain() domain.User {
	return domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		Role:     domain.Role(req.Role),
	}
}

// UpdateUserRequest is the admin update. An empty password is ignored.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
}

func (req *UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&req.Role, validation.NilOrNotEmpty, validation.In(allRoles...)),
		validation.Field(&req.Status, validation.NilOrNotEmpty, validation.In(allStatuses...)),
	)
}

func (req *UpdateUserRequest) ToDomain() domain.UserUpdate {
	update := domain.UserUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if req.Password != nil && *req.Password != "" {
		update.Password = req.Password
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		update.Role = &role
	}
	if req.Status != nil {
		status := domain.UserStatus(*req.Status)
		update.Status = &status
	}

	return update
}
