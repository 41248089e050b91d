package httpx

import (
	"errors"
	"net/http"

	"github.com/riohost/riohost/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
// shared.ErrUnavailable marks upstream fetch failures: the caller must show
// an explicit unavailable state instead of a silently empty dashboard.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, shared.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrInvalidStatusTransition):
		Problem(w, http.StatusUnprocessableEntity, "Invalid Transition", err.Error())
	case errors.Is(err, shared.ErrUnavailable):
		Problem(w, http.StatusBadGateway, "Data Unavailable", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
