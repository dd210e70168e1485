package handlers

import (
	"errors"

	"github.com/dns-auth/token-service/internal/domain"
	"github.com/dns-auth/token-service/internal/service"
	apperrors "github.com/dns-auth/token-service/pkg/util"
)

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, service.ErrBadCredentials):
		return apperrors.NewUnauthorized("Bad credentials")
	case errors.Is(err, service.ErrTooManyAttempts):
		return apperrors.NewTooManyRequests(err.Error())
	case errors.Is(err, service.ErrNotAuthenticated):
		return apperrors.NewUnauthorized(err.Error())
	case errors.Is(err, service.ErrInvalidSignUp):
		return apperrors.NewValidationError("firstName, lastName, username and password are required; roles must be USER or ADMIN", nil)
	case errors.Is(err, domain.ErrUsernameTaken):
		return apperrors.NewConflict(err.Error(), nil)
	case errors.Is(err, domain.ErrUserNotFound):
		return apperrors.NewNotFound("user", nil)
	}
	return apperrors.NewInternalError(err)
}
