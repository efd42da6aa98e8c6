// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/saschaorth/item-catalog/pkg/httpx"
	accountdomain "github.com/saschaorth/item-catalog/services/account/domain"
	catalogdomain "github.com/saschaorth/item-catalog/services/catalog/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors, with the
// message masked via httpx.SafeError.
func WriteError(w http.ResponseWriter, err error) {
	status := Status(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status))
}

// Status returns the HTTP status code for err without writing a response.
func Status(err error) int {
	return mapErrorToStatus(err)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, catalogdomain.ErrCategoryNotFound),
		errors.Is(err, catalogdomain.ErrItemNotFound),
		errors.Is(err, accountdomain.ErrUserNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, catalogdomain.ErrInvalidItemFields):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, accountdomain.ErrInvalidStateToken),
		errors.Is(err, accountdomain.ErrCodeExchangeFailed),
		errors.Is(err, accountdomain.ErrTokenUserMismatch),
		errors.Is(err, accountdomain.ErrTokenClientMismatch),
		errors.Is(err, accountdomain.ErrNotConnected):
		return http.StatusUnauthorized // 401
	case errors.Is(err, accountdomain.ErrRevokeFailed):
		return http.StatusBadRequest // 400
	default:
		// Includes ErrTokenIntrospection (upstream fault) and ErrRowAnomaly
		// (schema precondition violation).
		return http.StatusInternalServerError // 500
	}
}
