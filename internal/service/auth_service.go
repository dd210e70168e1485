package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/dns-auth/token-service/internal/auth"
	"github.com/dns-auth/token-service/internal/config"
	"github.com/dns-auth/token-service/internal/domain"
	"github.com/dns-auth/token-service/internal/repository"
)

var (
	// ErrBadCredentials covers both unknown users and wrong passwords.
	ErrBadCredentials = errors.New("bad credentials")
	// ErrTooManyAttempts is returned while a username is throttled.
	ErrTooManyAttempts = errors.New("too many failed login attempts")
)

// AuthService coordinates the login flow.
type AuthService struct {
	users         auth.UserLookup
	verifier      auth.CredentialVerifier
	attempts      repository.LoginAttemptRepository
	issuer        *auth.Issuer
	maxFailures   int64
	failureWindow time.Duration
	logger        *zap.Logger
}

// AuthDependencies encapsulates collaborators of the auth service.
// Attempts may be nil, which disables login throttling.
type AuthDependencies struct {
	Users    auth.UserLookup
	Verifier auth.CredentialVerifier
	Attempts repository.LoginAttemptRepository
	Issuer   *auth.Issuer
	Logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:         deps.Users,
		verifier:      deps.Verifier,
		attempts:      deps.Attempts,
		issuer:        deps.Issuer,
		maxFailures:   int64(cfg.LoginMaxFailures),
		failureWindow: cfg.LoginFailureWindow(),
		logger:        deps.Logger,
	}
}

// Login checks credentials and returns the {"token": ...} response body.
func (s *AuthService) Login(ctx context.Context, username, password string) ([]byte, error) {
	if s.throttled(ctx, username) {
		return nil, ErrTooManyAttempts
	}

	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.recordFailure(ctx, username)
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.verifier.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, username)
		return nil, ErrBadCredentials
	}

	body, err := s.issuer.IssueResponse(&auth.Authentication{
		Username: user.Username,
		Roles:    user.RoleNames(),
	})
	if err != nil {
		return nil, err
	}

	s.resetFailures(ctx, username)
	s.logger.Info("token issued", zap.String("username", user.Username))
	return body, nil
}

func (s *AuthService) throttled(ctx context.Context, username string) bool {
	if s.attempts == nil || s.maxFailures <= 0 {
		return false
	}
	failures, err := s.attempts.Failures(ctx, username)
	if err != nil {
		s.logger.Warn("login throttle unavailable", zap.Error(err))
		return false
	}
	return failures >= s.maxFailures
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.attempts == nil || s.maxFailures <= 0 {
		return
	}
	if _, err := s.attempts.RecordFailure(ctx, username, s.failureWindow); err != nil {
		s.logger.Warn("record login failure", zap.Error(err))
	}
}

func (s *AuthService) resetFailures(ctx context.Context, username string) {
	if s.attempts == nil || s.maxFailures <= 0 {
		return
	}
	if err := s.attempts.Reset(ctx, username); err != nil {
		s.logger.Warn("reset login failures", zap.Error(err))
	}
}
