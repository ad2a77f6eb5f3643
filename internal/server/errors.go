package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-variants/internal/fetch"
	"github.com/jonathan/resume-variants/internal/llm"
	"github.com/jonathan/resume-variants/internal/matching"
	"github.com/jonathan/resume-variants/internal/storage"
	"github.com/jonathan/resume-variants/internal/types"
	"github.com/jonathan/resume-variants/internal/validation"
	"github.com/jonathan/resume-variants/internal/variant"
)

// ErrUnavailable is returned when an endpoint's collaborator is not configured
var ErrUnavailable = errors.New("not configured on this server")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		kindErr    *types.KindMismatchError
		docErr     *types.DocumentError
		editErr    *variant.InvalidEditError
		loadErr    *storage.LoadError
		fetchErr   *fetch.Error
		compileErr *validation.CompilationError
	)

	switch {
	case errors.Is(err, variant.ErrVariantNotFound):
		return http.StatusNotFound
	case errors.Is(err, variant.ErrNameRequired),
		errors.Is(err, matching.ErrEmptyJobDescription),
		errors.As(err, &kindErr),
		errors.As(err, &docErr),
		errors.As(err, &editErr),
		errors.As(err, &loadErr):
		return http.StatusBadRequest
	case errors.Is(err, llm.ErrMissingAPIKey), errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &fetchErr):
		switch {
		case fetchErr.Message == fetch.MsgInvalidURL:
			return http.StatusBadRequest
		case fetchErr.Retryable:
			return http.StatusBadGateway
		default:
			return http.StatusUnprocessableEntity
		}
	case errors.As(err, &compileErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
