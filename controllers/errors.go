package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platefront/restaurant-platform/services"
	"github.com/platefront/restaurant-platform/utils"
)

// ErrNoPermission is returned on role check failures
var ErrNoPermission = &CustomError{"You do not have permission"}

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

// respondServiceError maps domain failures onto HTTP codes so callers can
// tell "your request was invalid" from "the system failed to save it".
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrValidation):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrIllegalTransition),
		errors.Is(err, services.ErrIllegalState),
		errors.Is(err, services.ErrConcurrencyConflict):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// callerTenant pulls the tenant id the auth middleware stored on the
// request context.
func callerTenant(c *gin.Context) (uint, bool) {
	v, exists := c.Get("tenant_id")
	if !exists {
		return 0, false
	}
	tenantID, ok := v.(uint)
	return tenantID, ok
}
