package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/haulmatch/admin-console/internal/domain/model"
	apperrors "github.com/haulmatch/admin-console/internal/errors"
)

// httpStatusError is implemented by the backend client's error type.
type httpStatusError interface {
	error
	HTTPStatus() int
	ServerMessage() string
}

// classifyBackendError maps a failed backend call onto an AppError. The message is
// the backend's own explanation when it sent one, otherwise fallback.
func classifyBackendError(err error, fallback string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, fallback)
	case errors.Is(err, context.Canceled):
		return apperrors.Wrap(err, apperrors.ErrCodeCanceled, fallback)
	}

	var se httpStatusError
	if !errors.As(err, &se) {
		return apperrors.Wrap(err, apperrors.ErrCodeBackend, fallback)
	}
	msg := se.ServerMessage()
	if msg == "" {
		msg = fallback
	}
	switch se.HTTPStatus() {
	case http.StatusUnauthorized:
		return apperrors.Wrap(err, apperrors.ErrCodeUnauthenticated, msg)
	case http.StatusForbidden:
		return apperrors.Wrap(err, apperrors.ErrCodeForbidden, msg)
	case http.StatusNotFound:
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, msg)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, msg)
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeBackend, msg)
	}
}

// errRejected stands in for the cause when the backend answered 2xx but
// reported success=false.
var errRejected = errors.New("backend rejected the request")

// settle classifies the outcome of a backend mutation. A reply with
// success=false is a backend error carrying the reply's message, or fallback
// when the message is empty.
func settle[T any](res model.MutationResult[T], err error) func(fallback string) (model.MutationResult[T], error) {
	return func(fallback string) (model.MutationResult[T], error) {
		if err != nil {
			return res, classifyBackendError(err, fallback)
		}
		if !res.Success {
			msg := res.Message
			if msg == "" {
				msg = fallback
			}
			return res, apperrors.Wrap(errRejected, apperrors.ErrCodeBackend, msg)
		}
		return res, nil
	}
}
