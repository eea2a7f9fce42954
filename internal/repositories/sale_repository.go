package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"toy_store_backend/internal/models"
)

// SaleRepository defines the interface for sale-related database operations.
type SaleRepository interface {
	CreateSale(ctx context.Context, sale *models.Sale) (int64, error)
	GetSaleByID(ctx context.Context, id int64) (*models.Sale, error)
	GetSales(ctx context.Context, filter SaleFilter, page Page) ([]models.Sale, int, error)
	// UpdateSale writes client and amount only; sale_date is fixed at insert.
	UpdateSale(ctx context.Context, sale *models.Sale) error
	DeleteSale(ctx context.Context, id int64) error
}

type saleRepository struct {
	db SQLExecutor
}

func NewSaleRepository(db SQLExecutor) SaleRepository {
	return &saleRepository{db: db}
}

const saleColumns = `id, client_id, amount, sale_date, created_at`

func scanSale(row scanner, sale *models.Sale) error {
	return row.Scan(&sale.ID, &sale.ClientID, &sale.Amount, &sale.SaleDate, &sale.CreatedAt)
}

func (r *saleRepository) CreateSale(ctx context.Context, sale *models.Sale) (int64, error) {
	query := `INSERT INTO sales (client_id, amount, sale_date)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, sale.ClientID, sale.Amount, sale.SaleDate).
		Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return 0, wrapWriteError(err, "creating sale")
	}
	return sale.ID, nil
}

func (r *saleRepository) GetSaleByID(ctx context.Context, id int64) (*models.Sale, error) {
	sale := &models.Sale{}
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`

	if err := scanSale(r.db.QueryRowContext(ctx, query, id), sale); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting sale by ID %d: %v", ErrDatabaseError, id, err)
	}
	return sale, nil
}

// GetSales retrieves one page of sales, newest sale date first.
func (r *saleRepository) GetSales(ctx context.Context, filter SaleFilter, page Page) ([]models.Sale, int, error) {
	where, args := buildWhere(filter.Predicates(), 1)

	var totalCount int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sales`+where, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("%w: counting sales: %v", ErrDatabaseError, err)
	}

	limit, limitArgs := buildLimit(page, len(args)+1)
	query := `SELECT ` + saleColumns + ` FROM sales` + where +
		` ORDER BY sale_date DESC, created_at DESC, id DESC` + limit

	rows, err := r.db.QueryContext(ctx, query, append(args, limitArgs...)...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying sales: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	sales := []models.Sale{}
	for rows.Next() {
		var sale models.Sale
		if err := scanSale(rows, &sale); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning sale: %v", ErrDatabaseError, err)
		}
		sales = append(sales, sale)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating sale rows: %v", ErrDatabaseError, err)
	}
	return sales, totalCount, nil
}

func (r *saleRepository) UpdateSale(ctx context.Context, sale *models.Sale) error {
	query := `UPDATE sales SET client_id = $1, amount = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, sale.ClientID, sale.Amount, sale.ID)
	if err != nil {
		return wrapWriteError(err, fmt.Sprintf("updating sale ID %d", sale.ID))
	}
	return checkAffected(result, fmt.Sprintf("updating sale ID %d", sale.ID))
}

func (r *saleRepository) DeleteSale(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting sale ID %d: %v", ErrDatabaseError, id, err)
	}
	return checkAffected(result, fmt.Sprintf("deleting sale ID %d", id))
}
