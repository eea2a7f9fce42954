package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"toy_store_backend/internal/models"
)

// AuthRepository defines the interface for authentication-related database operations.
type AuthRepository interface {
	CreateUser(ctx context.Context, user *models.User, hashedPassword string) (int64, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, string, error) // Returns User, HashedPassword, Error
	FindUserByID(ctx context.Context, userID int64) (*models.User, error)
}

type authRepository struct {
	db SQLExecutor
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db SQLExecutor) AuthRepository {
	return &authRepository{db: db}
}

const userColumns = `id, username, password_hash, email, role, is_active, created_at`

func scanUser(row scanner, user *models.User) error {
	var email sql.NullString
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &email, &user.Role, &user.IsActive, &user.CreatedAt); err != nil {
		return err
	}
	if email.Valid {
		user.Email = &email.String
	}
	return nil
}

// CreateUser inserts a new active user.
func (r *authRepository) CreateUser(ctx context.Context, user *models.User, hashedPassword string) (int64, error) {
	query := `INSERT INTO users (username, password_hash, email, role, is_active)
	          VALUES ($1, $2, $3, $4, TRUE)
	          RETURNING id, is_active, created_at`

	err := r.db.QueryRowContext(ctx, query, user.Username, hashedPassword, user.Email, user.Role).
		Scan(&user.ID, &user.IsActive, &user.CreatedAt)
	if err != nil {
		return 0, wrapWriteError(err, "creating user")
	}
	return user.ID, nil
}

// FindUserByUsername retrieves a user by their username.
// It returns the user model, their hashed password, and an error if any.
func (r *authRepository) FindUserByUsername(ctx context.Context, username string) (*models.User, string, error) {
	user := &models.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	if err := scanUser(r.db.QueryRowContext(ctx, query, username), user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("%w: finding user by username %s: %v", ErrDatabaseError, username, err)
	}
	hash := user.PasswordHash
	user.PasswordHash = ""
	return user, hash, nil
}

// FindUserByID retrieves a user by their ID. The password hash is not returned.
func (r *authRepository) FindUserByID(ctx context.Context, userID int64) (*models.User, error) {
	user := &models.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	if err := scanUser(r.db.QueryRowContext(ctx, query, userID), user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by ID %d: %v", ErrDatabaseError, userID, err)
	}
	user.PasswordHash = ""
	return user, nil
}
