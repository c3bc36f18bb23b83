package identityerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrMissingCredential = apperror.New(
		apperror.CodeUnauthorized,
		"missing credentials",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"token expired",
		http.StatusUnauthorized,
	)
	ErrInvalidSession = apperror.New(
		apperror.CodeUnauthorized,
		"invalid session",
		http.StatusUnauthorized,
	)
)
