package handlers

import (
	"errors"
	"net/http"

	"toy_store_backend/internal/middleware"
	"toy_store_backend/internal/services"
	"toy_store_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// ObtainToken handles POST /auth/token/ and returns an access/refresh pair.
func (h *AuthHandler) ObtainToken(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req, "ObtainToken") {
		return
	}

	tokens, err := h.authService.LoginUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.LogInfo("Failed login attempt", map[string]interface{}{"username": req.Username, "request_id": c.GetString(utils.RequestIDKey)})
		}
		respondServiceError(c, err, "ObtainToken")
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// RefreshToken handles POST /auth/token/refresh/.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req services.RefreshRequest
	if !bindJSON(c, &req, "RefreshToken") {
		return
	}

	access, err := h.authService.RefreshAccessToken(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "RefreshToken")
		return
	}
	c.JSON(http.StatusOK, access)
}

// GetCurrentUser retrieves the profile of the currently authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := c.Get(middleware.UserIDKey)
	id, isInt := userID.(int64)
	if !ok || !isInt {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication credentials were not provided.", ""))
		return
	}

	user, err := h.authService.GetUserProfile(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "GetCurrentUser")
		return
	}
	c.JSON(http.StatusOK, user)
}

// RegisterUser handles POST /auth/users/. Admin only.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req services.RegisterUserRequest
	if !bindJSON(c, &req, "RegisterUser") {
		return
	}

	user, err := h.authService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "RegisterUser")
		return
	}
	c.JSON(http.StatusCreated, user)
}
