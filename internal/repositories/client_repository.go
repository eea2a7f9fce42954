package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"toy_store_backend/internal/models"
)

// ClientRepository defines the interface for client-related database operations.
type ClientRepository interface {
	CreateClient(ctx context.Context, client *models.Client) (int64, error)
	GetClientByID(ctx context.Context, id int64) (*models.Client, error)
	GetClientByEmail(ctx context.Context, email string) (*models.Client, error)
	GetClients(ctx context.Context, filter ClientFilter, page Page) ([]models.Client, int, error) // Clients, total count, error
	UpdateClient(ctx context.Context, client *models.Client) error
	DeleteClient(ctx context.Context, id int64) error
}

type clientRepository struct {
	db SQLExecutor
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db SQLExecutor) ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, full_name, email, birth_date, created_at`

func scanClient(row scanner, client *models.Client) error {
	return row.Scan(&client.ID, &client.FullName, &client.Email, &client.BirthDate, &client.CreatedAt)
}

// CreateClient inserts a new client. ID and CreatedAt are assigned by the database.
func (r *clientRepository) CreateClient(ctx context.Context, client *models.Client) (int64, error) {
	query := `INSERT INTO clients (full_name, email, birth_date)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, client.FullName, client.Email, client.BirthDate).
		Scan(&client.ID, &client.CreatedAt)
	if err != nil {
		return 0, wrapWriteError(err, "creating client")
	}
	return client.ID, nil
}

// GetClientByID retrieves a client by their ID.
func (r *clientRepository) GetClientByID(ctx context.Context, id int64) (*models.Client, error) {
	client := &models.Client{}
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	if err := scanClient(r.db.QueryRowContext(ctx, query, id), client); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by ID %d: %v", ErrDatabaseError, id, err)
	}
	return client, nil
}

// GetClientByEmail retrieves a client by exact (case-sensitive) email.
func (r *clientRepository) GetClientByEmail(ctx context.Context, email string) (*models.Client, error) {
	client := &models.Client{}
	query := `SELECT ` + clientColumns + ` FROM clients WHERE email = $1`

	if err := scanClient(r.db.QueryRowContext(ctx, query, email), client); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by email: %v", ErrDatabaseError, err)
	}
	return client, nil
}

// GetClients retrieves one page of clients matching filter, ordered by full name.
func (r *clientRepository) GetClients(ctx context.Context, filter ClientFilter, page Page) ([]models.Client, int, error) {
	where, args := buildWhere(filter.Predicates(), 1)

	var totalCount int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`+where, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("%w: counting clients: %v", ErrDatabaseError, err)
	}

	limit, limitArgs := buildLimit(page, len(args)+1)
	query := `SELECT ` + clientColumns + ` FROM clients` + where + ` ORDER BY full_name ASC, id ASC` + limit

	rows, err := r.db.QueryContext(ctx, query, append(args, limitArgs...)...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		var client models.Client
		if err := scanClient(rows, &client); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
		}
		clients = append(clients, client)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}
	return clients, totalCount, nil
}

// UpdateClient overwrites the mutable columns. id and created_at are never written.
func (r *clientRepository) UpdateClient(ctx context.Context, client *models.Client) error {
	query := `UPDATE clients SET full_name = $1, email = $2, birth_date = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, client.FullName, client.Email, client.BirthDate, client.ID)
	if err != nil {
		return wrapWriteError(err, fmt.Sprintf("updating client ID %d", client.ID))
	}
	return checkAffected(result, fmt.Sprintf("updating client ID %d", client.ID))
}

// DeleteClient removes a client; the sales_client_id_fkey cascade removes their sales.
func (r *clientRepository) DeleteClient(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	return checkAffected(result, fmt.Sprintf("deleting client ID %d", id))
}
