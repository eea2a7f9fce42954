package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	tokenIssuer = "toy-store-backend"
)

// ErrWrongTokenType is returned when a refresh token is presented where an
// access token is expected, or the other way round.
var ErrWrongTokenType = errors.New("wrong token type")

// Claims defines the JWT claims structure
type Claims struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 tokens with a shared secret.
type JWTManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWTManager creates a JWTManager. Access tokens live for accessTTL,
// refresh tokens for refreshTTL.
func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// GenerateAccessToken creates a new JWT access token for a given user ID, username, and role.
func (m *JWTManager) GenerateAccessToken(userID int64, username string, role string) (string, error) {
	return m.sign(&Claims{UserID: userID, Username: username, Role: role, TokenType: TokenTypeAccess}, m.accessTTL)
}

// GenerateRefreshToken creates a new JWT refresh token for a given user ID.
func (m *JWTManager) GenerateRefreshToken(userID int64, username string) (string, error) {
	return m.sign(&Claims{UserID: userID, Username: username, TokenType: TokenTypeRefresh}, m.refreshTTL)
}

func (m *JWTManager) sign(claims *Claims, ttl time.Duration) (string, error) {
	now := m.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    tokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", claims.TokenType, err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token string and checks that it
// is of the expected type.
func (m *JWTManager) ValidateToken(tokenString, expectedType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrWrongTokenType, claims.TokenType, expectedType)
	}
	return claims, nil
}
