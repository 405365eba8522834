package service

import (
	"net/http"

	"github.com/martijn/lexdesk/internal/core/domain"
)

// ServiceError carries an HTTP status and a message meant for the caller.
type ServiceError struct {
	Code    int
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewServiceError(code int, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message}
}

var (
	ErrInvalidCredentials = NewServiceError(http.StatusUnauthorized, "invalid credentials")
	ErrInvalidClient      = NewServiceError(http.StatusUnauthorized, "invalid client credentials")
	ErrInvalidAuthCode    = NewServiceError(http.StatusBadRequest, "invalid auth code")
	ErrAuthCodeExpired    = NewServiceError(http.StatusBadRequest, "auth code expired")
	ErrReadOnlyTemplate   = NewServiceError(http.StatusForbidden, "default templates cannot be changed")
)

func mergeValidation(dst domain.ValidationErrors, err error) {
	if v, ok := domain.AsValidation(err); ok {
		for field, msg := range v {
			dst.Add(field, msg)
		}
	}
}
