package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"toy_store_backend/internal/models"
	"toy_store_backend/internal/repositories"
	"toy_store_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("token is invalid or expired")
	ErrUsernameExists     = errors.New("username already exists")
	ErrRoleNotFound       = errors.New("specified role not found")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// bcrypt only hashes the first 72 bytes and rejects longer input.
const (
	minPasswordLength = 8
	maxPasswordBytes  = 72
)

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest DTO
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// RegisterUserRequest DTO. Role defaults to staff.
type RegisterUserRequest struct {
	Username string  `json:"username" binding:"required,max=150"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Role     string  `json:"role" binding:"omitempty,oneof=admin staff"`
}

// TokenPair is returned by the token endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AccessToken is returned by the refresh endpoint.
type AccessToken struct {
	Access string `json:"access"`
}

// --- AuthService Interface ---
type AuthService interface {
	RegisterUser(ctx context.Context, req RegisterUserRequest) (*models.User, error)
	LoginUser(ctx context.Context, req LoginRequest) (*TokenPair, error)
	RefreshAccessToken(ctx context.Context, req RefreshRequest) (*AccessToken, error)
	GetUserProfile(ctx context.Context, userID int64) (*models.User, error)
}

type authService struct {
	authRepo repositories.AuthRepository
	jwt      *utils.JWTManager
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(authRepo repositories.AuthRepository, jwt *utils.JWTManager) AuthService {
	return &authService{authRepo: authRepo, jwt: jwt}
}

// RegisterUser hashes the password and stores a new active operator.
func (s *authService) RegisterUser(ctx context.Context, req RegisterUserRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	v := violations{}
	if username == "" {
		v.add("username", msgBlank)
	}
	if !utils.IsValidPasswordLength(req.Password, minPasswordLength) {
		v.add("password", fmt.Sprintf("Ensure this field has at least %d characters.", minPasswordLength))
	} else if len(req.Password) > maxPasswordBytes {
		v.add("password", fmt.Sprintf("Ensure this field has no more than %d bytes.", maxPasswordBytes))
	}
	if req.Email != nil && !utils.IsValidEmail(strings.TrimSpace(*req.Email)) {
		v.add("email", msgEmail)
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	switch role {
	case "":
		role = models.RoleStaff
	case models.RoleAdmin, models.RoleStaff:
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrRoleNotFound, req.Role)
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: username, Role: role}
	if req.Email != nil {
		user.Email = utils.NewNullString(*req.Email)
	}

	if _, err := s.authRepo.CreateUser(ctx, user, string(hashedPasswordBytes)); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	user.PasswordHash = ""
	utils.LogInfo("User registered", map[string]interface{}{"user_id": user.ID, "username": user.Username, "role": user.Role})
	return user, nil
}

// LoginUser checks credentials and issues an access/refresh token pair.
func (s *authService) LoginUser(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	user, storedHashedPassword, err := s.authRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHashedPassword), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	access, err := s.jwt.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// RefreshAccessToken exchanges a valid refresh token for a new access token.
// The role is re-read so demotions take effect on the next refresh.
func (s *authService) RefreshAccessToken(ctx context.Context, req RefreshRequest) (*AccessToken, error) {
	claims, err := s.jwt.ValidateToken(req.Refresh, utils.TokenTypeRefresh)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	user, err := s.authRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load user for refresh: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}

	access, err := s.jwt.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return &AccessToken{Access: access}, nil
}

// GetUserProfile retrieves a user's profile by their ID.
func (s *authService) GetUserProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.authRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user profile: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}
