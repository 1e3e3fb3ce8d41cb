package domain

import "time"

type Role string

const (
	RoleCitizen  Role = "citizen"
	RoleBusiness Role = "business"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleBusiness, RoleAdmin:
		return true
	}

	return false
}

type UserStatus string

const (
	UserStatusActive UserStatus = "active"
	UserStatusLocked UserStatus = "locked"
)

type User struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Password   string     `json:"-"`
	Phone      string     `json:"phone,omitempty"`
	Address    string     `json:"address,omitempty"`
	Role       Role       `json:"role"`
	Status     UserStatus `json:"status"`
	IsVerified bool       `json:"isVerified"`
	Points     int        `json:"points"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (u User) IsLocked() bool {
	return u.Status == UserStatusLocked
}

// UserUpdate carries the optional fields of a profile or admin update.
// Nil means unchanged.
type UserUpdate struct {
	Name     *string
	Email    *string
	Phone    *string
	Address  *string
	Password *string
	Role     *Role
	Status   *UserStatus
}
