package repositories

import (
	"context"
	"fmt"

	"toy_store_backend/internal/models"
)

// StatsRepository runs the read-only grouped queries behind the reports.
// Each method is a single statement, so it sees one consistent snapshot.
type StatsRepository interface {
	// SalesPerDay returns one row per sale date that has sales, ascending.
	SalesPerDay(ctx context.Context) ([]models.DailySalesTotal, error)
	// ClientSalesSummaries returns one row per client that has sales, by client id.
	ClientSalesSummaries(ctx context.Context) ([]models.ClientSalesSummary, error)
}

type statsRepository struct {
	db SQLExecutor
}

func NewStatsRepository(db SQLExecutor) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) SalesPerDay(ctx context.Context) ([]models.DailySalesTotal, error) {
	query := `SELECT sale_date, SUM(amount) AS total
	          FROM sales
	          GROUP BY sale_date
	          ORDER BY sale_date ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sales per day: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	days := []models.DailySalesTotal{}
	for rows.Next() {
		var day models.DailySalesTotal
		if err := rows.Scan(&day.Date, &day.Total); err != nil {
			return nil, fmt.Errorf("%w: scanning daily total: %v", ErrDatabaseError, err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating daily totals: %v", ErrDatabaseError, err)
	}
	return days, nil
}

func (r *statsRepository) ClientSalesSummaries(ctx context.Context) ([]models.ClientSalesSummary, error) {
	query := `SELECT c.id, c.full_name,
	                 SUM(s.amount)               AS total,
	                 COUNT(*)                    AS sale_count,
	                 COUNT(DISTINCT s.sale_date) AS distinct_days
	          FROM sales s
	          JOIN clients c ON c.id = s.client_id
	          GROUP BY c.id, c.full_name
	          ORDER BY c.id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying client sales summaries: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	summaries := []models.ClientSalesSummary{}
	for rows.Next() {
		var s models.ClientSalesSummary
		if err := rows.Scan(&s.ClientID, &s.FullName, &s.Total, &s.SaleCount, &s.DistinctSaleDays); err != nil {
			return nil, fmt.Errorf("%w: scanning client summary: %v", ErrDatabaseError, err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating client summaries: %v", ErrDatabaseError, err)
	}
	return summaries, nil
}
