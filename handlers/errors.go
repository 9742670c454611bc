package handlers

import (
	"errors"
	"net/http"

	"opsledger/services/scheduling"
	"opsledger/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the core's error taxonomy onto HTTP statuses.
// Conflicts and permission errors carry enough detail for the caller to
// self-correct; storage failures surface as a generic retry signal.
func respondServiceError(c *gin.Context, err error) {
	var (
		validationErr *scheduling.ValidationError
		conflictErr   *scheduling.ConflictError
		forbiddenErr  *scheduling.ForbiddenError
		transitionErr *scheduling.InvalidTransitionError
	)

	switch {
	case errors.Is(err, scheduling.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Session not found", "")
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", validationErr.Msg)
	case errors.As(err, &conflictErr):
		utils.JSONError(c, http.StatusConflict, "Time conflict detected", conflictErr.Error())
	case errors.As(err, &forbiddenErr):
		utils.JSONError(c, http.StatusForbidden, "Forbidden", forbiddenErr.Reason)
	case errors.As(err, &transitionErr):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Invalid status transition", transitionErr.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Operation failed, please retry", "")
	}
}
