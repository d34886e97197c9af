package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	usermodel "shop-backend/internal/domains/user/model"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// RegisterRequest is the self-service signup body. Roles cannot be chosen.
type RegisterRequest struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
}

func (r RegisterRequest) ToCreateUser() usermodel.CreateUserRequest {
	return usermodel.CreateUserRequest{
		Username:    r.Username,
		Email:       r.Email,
		Password:    r.Password,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
	}
}

type TokenResponse struct {
	AccessToken string                 `json:"accessToken"`
	TokenType   string                 `json:"tokenType"`
	ExpiresAt   time.Time              `json:"expiresAt"`
	User        usermodel.UserResponse `json:"user"`
}
