package handlers

import (
	"errors"
	"net/http"

	"toy_store_backend/internal/services"
	"toy_store_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

var errNotFound = utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Not found.", "")

// parseIDParam reads the :id path parameter. A malformed id is answered with
// 404, the same as an id that does not exist.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil || id <= 0 {
		utils.RespondWithError(c, errNotFound)
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req interface{}, op string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.LogDebug(op+": invalid request payload", map[string]interface{}{"error": err.Error(), "request_id": c.GetString(utils.RequestIDKey)})
		fields := utils.BindingErrorFields(err)
		details := ""
		if fields == nil {
			details = err.Error()
		}
		utils.RespondValidationFailed(c, details, fields)
		return false
	}
	return true
}

// respondServiceError maps service errors onto HTTP responses. Anything not
// recognised is logged and reported as a generic 500.
func respondServiceError(c *gin.Context, err error, op string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.RespondValidationFailed(c, "", verr.Fields)
	case errors.Is(err, services.ErrClientNotFound),
		errors.Is(err, services.ErrSaleNotFound),
		errors.Is(err, services.ErrUserNotFound):
		utils.RespondWithError(c, errNotFound)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No active account found with the given credentials", ""))
	case errors.Is(err, services.ErrInvalidToken):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Token is invalid or expired", ""))
	case errors.Is(err, services.ErrUsernameExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A user with that username already exists.", ""))
	case errors.Is(err, services.ErrRoleNotFound):
		utils.RespondValidationFailed(c, "", map[string]string{"role": err.Error()})
	default:
		utils.LogError(err, op+": unexpected error (request_id="+c.GetString(utils.RequestIDKey)+")")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "A server error occurred.", "Internal error"))
	}
}
