package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"shop-backend/internal/shared"
	"shop-backend/internal/shared/utils"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    *string   `json:"firstName,omitempty"`
	LastName     *string   `json:"lastName,omitempty"`
	PhoneNumber  *string   `json:"phoneNumber,omitempty"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

var roleRule = validation.Each(validation.In(shared.RoleUser, shared.RoleAdmin).Error("must be USER or ADMIN"))

type CreateUserRequest struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	FirstName   *string  `json:"firstName"`
	LastName    *string  `json:"lastName"`
	PhoneNumber *string  `json:"phoneNumber"`
	Roles       []string `json:"roles"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&r.Email, validation.Required, is.EmailFormat, validation.Length(0, 255)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&r.FirstName, validation.Length(0, 100)),
		validation.Field(&r.LastName, validation.Length(0, 100)),
		validation.Field(&r.PhoneNumber, validation.Length(0, 50)),
		validation.Field(&r.Roles, roleRule),
	)
}

func (r *CreateUserRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = utils.TrimPtr(r.FirstName)
	r.LastName = utils.TrimPtr(r.LastName)
	r.PhoneNumber = utils.TrimPtr(r.PhoneNumber)
}

// UpdateUserRequest: nil fields are left unchanged. An empty string clears
// an optional name or phone field.
type UpdateUserRequest struct {
	Username    *string  `json:"username"`
	Email       *string  `json:"email"`
	Password    *string  `json:"password"`
	FirstName   *string  `json:"firstName"`
	LastName    *string  `json:"lastName"`
	PhoneNumber *string  `json:"phoneNumber"`
	Roles       []string `json:"roles"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.NilOrNotEmpty, validation.Length(3, 50)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.EmailFormat, validation.Length(0, 255)),
		validation.Field(&r.Password, validation.NilOrNotEmpty, validation.Length(8, 72)),
		validation.Field(&r.FirstName, validation.Length(0, 100)),
		validation.Field(&r.LastName, validation.Length(0, 100)),
		validation.Field(&r.PhoneNumber, validation.Length(0, 50)),
		validation.Field(&r.Roles, validation.NilOrNotEmpty, roleRule),
	)
}

func (r *UpdateUserRequest) Normalize() {
	if r.Username != nil {
		v := strings.TrimSpace(*r.Username)
		r.Username = &v
	}
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &v
	}
}

type ListFilter struct {
	Search string
	Limit  int
	Offset int
}

type UserResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   *string   `json:"firstName"`
	LastName    *string   `json:"lastName"`
	PhoneNumber *string   `json:"phoneNumber"`
	Roles       []string  `json:"roles"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (u *User) ToResponse() UserResponse {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Roles:       roles,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
