package handler

import (
	"errors"
	"net/http"
	"strconv"

	"inkpost/internal/domain"
	"inkpost/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var conflictErr *domain.ConflictError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, r, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, r, http.StatusForbidden, err.Error())
	case errors.As(err, &conflictErr):
		problem := httputil.NewProblem(r, http.StatusConflict, conflictErr.Error())
		problem.Extra = map[string]interface{}{
			"resource_type": conflictErr.ResourceType,
			"resource_id":   conflictErr.ResourceID,
		}
		httputil.WriteProblem(w, problem)
	default:
		httputil.RespondError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// PathParam returns a path wildcard, answering 400 when it is empty.
func PathParam(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	v := r.PathValue(name)
	if v == "" {
		httputil.RespondError(w, r, http.StatusBadRequest, label+" is required")
		return "", false
	}
	return v, true
}

// QueryInt parses an integer query parameter, falling back to def when it
// is missing or malformed and clamping to [min, max].
func QueryInt(r *http.Request, name string, def, min, max int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
