package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/dns-auth/token-service/internal/auth"
	"github.com/dns-auth/token-service/internal/domain"
	"github.com/dns-auth/token-service/internal/repository"
	repositorymock "github.com/dns-auth/token-service/internal/repository/mock"
	"github.com/dns-auth/token-service/internal/service"
)

func TestUserService_SignUp(t *testing.T) {
	input := service.SignUpInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada",
		Password:  "pw",
		Roles:     []domain.Role{domain.RoleAdmin},
	}
	adminCtx := auth.WithPrincipal(context.Background(), &auth.Principal{Username: "root", Roles: []string{"ADMIN"}})

	tests := []struct {
		name   string
		ctx    context.Context
		input  service.SignUpInput
		repo   func(ctrl *gomock.Controller) repository.UserRepository
		expect func(t *testing.T, user *domain.User, err error)
	}{
		{
			name:  "anonymous_gets_user_role",
			ctx:   context.Background(),
			input: input,
			repo: func(ctrl *gomock.Controller) repository.UserRepository {
				mock := repositorymock.NewMockUserRepository(ctrl)
				mock.EXPECT().Create(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, user *domain.User) {
						assert.Equal(t, []domain.Role{domain.RoleUser}, user.Roles)
						assert.NoError(t, auth.ComparePassword(user.PasswordHash, "pw"))
					}).
					Return(nil)
				return mock
			},
			expect: func(t *testing.T, user *domain.User, err error) {
				require.NoError(t, err)
				assert.Equal(t, "ada", user.Username)
			},
		},
		{
			name:  "admin_may_grant_roles",
			ctx:   adminCtx,
			input: input,
			repo: func(ctrl *gomock.Controller) repository.UserRepository {
				mock := repositorymock.NewMockUserRepository(ctrl)
				mock.EXPECT().Create(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, user *domain.User) {
						assert.Equal(t, []domain.Role{domain.RoleAdmin}, user.Roles)
					}).
					Return(nil)
				return mock
			},
			expect: func(t *testing.T, _ *domain.User, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:  "blank_username",
			ctx:   context.Background(),
			input: service.SignUpInput{FirstName: "a", LastName: "b", Username: "  ", Password: "pw"},
			repo: func(ctrl *gomock.Controller) repository.UserRepository {
				return repositorymock.NewMockUserRepository(ctrl)
			},
			expect: func(t *testing.T, _ *domain.User, err error) {
				assert.ErrorIs(t, err, service.ErrInvalidSignUp)
			},
		},
		{
			name:  "unknown_role",
			ctx:   context.Background(),
			input: service.SignUpInput{FirstName: "a", LastName: "b", Username: "c", Password: "pw", Roles: []domain.Role{"ROOT"}},
			repo: func(ctrl *gomock.Controller) repository.UserRepository {
				return repositorymock.NewMockUserRepository(ctrl)
			},
			expect: func(t *testing.T, _ *domain.User, err error) {
				assert.ErrorIs(t, err, service.ErrInvalidSignUp)
			},
		},
		{
			name:  "duplicate_username",
			ctx:   context.Background(),
			input: input,
			repo: func(ctrl *gomock.Controller) repository.UserRepository {
				mock := repositorymock.NewMockUserRepository(ctrl)
				mock.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrUsernameTaken)
				return mock
			},
			expect: func(t *testing.T, _ *domain.User, err error) {
				assert.ErrorIs(t, err, domain.ErrUsernameTaken)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := service.NewUserService(tt.repo(ctrl), bcrypt.MinCost)

			user, err := svc.SignUp(tt.ctx, tt.input)
			tt.expect(t, user, err)
		})
	}
}

func TestUserService_Current(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repositorymock.NewMockUserRepository(ctrl)
	repo.EXPECT().GetByUsername(gomock.Any(), "admin").Return(&domain.User{ID: 7, Username: "admin"}, nil)
	svc := service.NewUserService(repo, bcrypt.MinCost)

	_, err := svc.Current(context.Background())
	assert.ErrorIs(t, err, service.ErrNotAuthenticated)

	ctx := auth.WithPrincipal(context.Background(), &auth.Principal{Username: "admin"})
	user, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
}

func TestUserService_AdminOperations(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repositorymock.NewMockUserRepository(ctrl)
	svc := service.NewUserService(repo, bcrypt.MinCost)
	ctx := context.Background()

	filter := repository.UserFilter{FirstName: "Ada"}
	repo.EXPECT().GetByID(gomock.Any(), int64(3)).Return(&domain.User{ID: 3}, nil)
	repo.EXPECT().List(gomock.Any()).Return([]domain.User{{ID: 1}, {ID: 3}}, nil)
	repo.EXPECT().Search(gomock.Any(), filter).Return([]domain.User{{ID: 3}}, nil)
	repo.EXPECT().Delete(gomock.Any(), int64(3)).Return(domain.ErrUserNotFound)

	user, err := svc.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = svc.Search(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	assert.ErrorIs(t, svc.Delete(ctx, 3), domain.ErrUserNotFound)
}
