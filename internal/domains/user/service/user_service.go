package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"shop-backend/internal/domains/user/model"
	"shop-backend/internal/domains/user/repository"
	"shop-backend/internal/shared"
	"shop-backend/internal/shared/apperror"
	"shop-backend/internal/shared/response"
	"shop-backend/internal/shared/utils"
)

type userService struct {
	repo repository.RepositoryInterface
}

func NewUserService(repo repository.RepositoryInterface) ServiceInterface {
	return &userService{repo: repo}
}

// HashPassword bcrypt-hashes a plain password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *userService) List(ctx context.Context, search string, page, size int) (response.Page[model.UserResponse], error) {
	users, total, err := s.repo.List(ctx, model.ListFilter{
		Search: strings.TrimSpace(search),
		Limit:  size,
		Offset: page * size,
	})
	if err != nil {
		return response.Page[model.UserResponse]{}, err
	}

	out := make([]model.UserResponse, len(users))
	for i := range users {
		out[i] = users[i].ToResponse()
	}
	return response.NewPage(out, page, size, total), nil
}

func (s *userService) Get(ctx context.Context, id int64) (*model.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := u.ToResponse()
	return &resp, nil
}

func (s *userService) Create(ctx context.Context, req model.CreateUserRequest) (*model.UserResponse, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, req.Username, req.Email); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	roles := req.Roles
	if len(roles) == 0 {
		roles = []string{shared.RoleUser}
	}

	created, err := s.repo.Create(ctx, &model.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: hash,
		Roles:        roles,
	})
	if err != nil {
		return nil, err
	}
	resp := created.ToResponse()
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.UserResponse, error) {
	req.Normalize()
	if err := apperror.Validation(req.Validate()); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var newUsername, newEmail string
	if req.Username != nil && !strings.EqualFold(*req.Username, existing.Username) {
		newUsername = *req.Username
	}
	if req.Email != nil && !strings.EqualFold(*req.Email, existing.Email) {
		newEmail = *req.Email
	}
	if err := s.ensureUnique(ctx, newUsername, newEmail); err != nil {
		return nil, err
	}

	utils.Patch(&existing.Username, req.Username)
	utils.Patch(&existing.Email, req.Email)
	if req.FirstName != nil {
		existing.FirstName = utils.TrimPtr(req.FirstName)
	}
	if req.LastName != nil {
		existing.LastName = utils.TrimPtr(req.LastName)
	}
	if req.PhoneNumber != nil {
		existing.PhoneNumber = utils.TrimPtr(req.PhoneNumber)
	}
	if req.Roles != nil {
		existing.Roles = req.Roles
	}

	// An empty hash tells the repository to keep the stored one.
	existing.PasswordHash = ""
	if req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = hash
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	resp := updated.ToResponse()
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ensureUnique checks the non-empty arguments against existing users.
func (s *userService) ensureUnique(ctx context.Context, username, email string) error {
	if email != "" {
		exists, err := s.repo.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return model.ErrEmailExists(email)
		}
	}
	if username != "" {
		exists, err := s.repo.ExistsByUsername(ctx, username)
		if err != nil {
			return err
		}
		if exists {
			return model.ErrUsernameExists(username)
		}
	}
	return nil
}
