package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"shop-backend/internal/domains/auth/model"
	usermodel "shop-backend/internal/domains/user/model"
	userrepo "shop-backend/internal/domains/user/repository"
	usersvc "shop-backend/internal/domains/user/service"
	"shop-backend/internal/shared/apperror"
)

// TokenIssuer is satisfied by *jwt.Manager.
type TokenIssuer interface {
	GenerateAccessToken(userID int64, email string, roles []string) (string, time.Time, error)
}

type ServiceInterface interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) (*model.TokenResponse, error)
	Session(ctx context.Context, userID int64) (*usermodel.UserResponse, error)
}

type authService struct {
	users       userrepo.RepositoryInterface
	userService usersvc.ServiceInterface
	tokens      TokenIssuer
}

func NewAuthService(users userrepo.RepositoryInterface, userService usersvc.ServiceInterface, tokens TokenIssuer) ServiceInterface {
	return &authService{users: users, userService: userService, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, model.ErrInvalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn().Int64("user_id", u.ID).Msg("failed login attempt")
		return nil, model.ErrInvalidCredentials()
	}

	return s.issue(u.ToResponse())
}

// Register creates a USER account and logs it in.
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.TokenResponse, error) {
	created, err := s.userService.Create(ctx, req.ToCreateUser())
	if err != nil {
		return nil, err
	}
	return s.issue(*created)
}

func (s *authService) Session(ctx context.Context, userID int64) (*usermodel.UserResponse, error) {
	return s.userService.Get(ctx, userID)
}

func (s *authService) issue(u usermodel.UserResponse) (*model.TokenResponse, error) {
	token, expiresAt, err := s.tokens.GenerateAccessToken(u.ID, u.Email, u.Roles)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        u,
	}, nil
}
