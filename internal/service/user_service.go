package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dns-auth/token-service/internal/auth"
	"github.com/dns-auth/token-service/internal/domain"
	"github.com/dns-auth/token-service/internal/repository"
)

// ErrInvalidSignUp is returned for sign-up requests with blank or unknown fields.
var ErrInvalidSignUp = errors.New("invalid sign-up request")

// ErrNotAuthenticated is returned when an operation needs a principal and has none.
var ErrNotAuthenticated = errors.New("not authenticated")

// SignUpInput carries a registration request.
type SignUpInput struct {
	FirstName string
	LastName  string
	Username  string
	Password  string
	Roles     []domain.Role
}

// UserService manages user accounts.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// SignUp registers a user. Requested roles are honoured only when the caller
// is an administrator; everyone else is registered as USER.
func (s *UserService) SignUp(ctx context.Context, in SignUpInput) (*domain.User, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" ||
		strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return nil, ErrInvalidSignUp
	}
	for _, role := range in.Roles {
		if !role.Valid() {
			return nil, ErrInvalidSignUp
		}
	}

	roles := []domain.Role{domain.RoleUser}
	if principal, ok := auth.PrincipalFromCtx(ctx); ok && principal.HasRole(string(domain.RoleAdmin)) && len(in.Roles) > 0 {
		roles = in.Roles
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		PasswordHash: hash,
		Roles:        roles,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Current returns the record of the request's principal.
func (s *UserService) Current(ctx context.Context) (*domain.User, error) {
	principal, ok := auth.PrincipalFromCtx(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return s.users.GetByUsername(ctx, principal.Username)
}

// GetByID returns a single user.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Search finds users by first and/or last name.
func (s *UserService) Search(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	return s.users.Search(ctx, filter)
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}
