// Package memory is a map-backed storage backend implementing the same
// repository interfaces as the PostgreSQL one, including the unique email
// constraint, the sales -> clients foreign key and its cascade delete.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"toy_store_backend/internal/models"
	"toy_store_backend/internal/repositories"
)

// Store holds all tables behind one lock so cascades are atomic.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	clients map[int64]models.Client
	sales   map[int64]models.Sale
	users   map[int64]userRow

	nextClientID int64
	nextSaleID   int64
	nextUserID   int64
}

type userRow struct {
	user models.User
	hash string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		now:     time.Now,
		clients: map[int64]models.Client{},
		sales:   map[int64]models.Sale{},
		users:   map[int64]userRow{},
	}
}

// NewRepositories returns every repository backed by a fresh Store.
func NewRepositories() repositories.Repositories {
	return NewStore().Repositories()
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() repositories.Repositories {
	return repositories.Repositories{
		Clients: &clientRepo{s},
		Sales:   &saleRepo{s},
		Stats:   &statsRepo{s},
		Auth:    &authRepo{s},
	}
}

func duplicate(constraint string) error {
	return &repositories.ConstraintError{Kind: repositories.ErrDuplicateKey, Constraint: constraint, Message: "duplicate key value violates unique constraint"}
}

func missingReference(constraint string) error {
	return &repositories.ConstraintError{Kind: repositories.ErrForeignKey, Constraint: constraint, Message: "insert or update violates foreign key constraint"}
}

func paginate[T any](rows []T, page repositories.Page) []T {
	if page.Size <= 0 {
		return rows
	}
	start := page.Offset()
	if start >= len(rows) {
		return []T{}
	}
	end := start + page.Size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

type clientRepo struct{ s *Store }

func (r *clientRepo) emailTaken(email string, exceptID int64) bool {
	for id, c := range r.s.clients {
		if c.Email == email && id != exceptID {
			return true
		}
	}
	return false
}

func (r *clientRepo) CreateClient(_ context.Context, client *models.Client) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTaken(client.Email, 0) {
		return 0, duplicate("clients_email_key")
	}
	r.s.nextClientID++
	client.ID = r.s.nextClientID
	client.CreatedAt = r.s.now()
	r.s.clients[client.ID] = *client
	return client.ID, nil
}

func (r *clientRepo) GetClientByID(_ context.Context, id int64) (*models.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.clients[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (r *clientRepo) GetClientByEmail(_ context.Context, email string) (*models.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.clients {
		if c.Email == email {
			found := c
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *clientRepo) GetClients(_ context.Context, filter repositories.ClientFilter, page repositories.Page) ([]models.Client, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []models.Client{}
	for _, c := range r.s.clients {
		if filter.FullName != nil && c.FullName != *filter.FullName {
			continue
		}
		if filter.Email != nil && c.Email != *filter.Email {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].FullName != matched[j].FullName {
			return matched[i].FullName < matched[j].FullName
		}
		return matched[i].ID < matched[j].ID
	})
	return paginate(matched, page), len(matched), nil
}

func (r *clientRepo) UpdateClient(_ context.Context, client *models.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.clients[client.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if r.emailTaken(client.Email, client.ID) {
		return duplicate("clients_email_key")
	}
	existing.FullName = client.FullName
	existing.Email = client.Email
	existing.BirthDate = client.BirthDate
	r.s.clients[client.ID] = existing
	return nil
}

func (r *clientRepo) DeleteClient(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.clients[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.clients, id)
	for saleID, sale := range r.s.sales {
		if sale.ClientID == id {
			delete(r.s.sales, saleID)
		}
	}
	return nil
}

type saleRepo struct{ s *Store }

func (r *saleRepo) CreateSale(_ context.Context, sale *models.Sale) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.clients[sale.ClientID]; !ok {
		return 0, missingReference("sales_client_id_fkey")
	}
	r.s.nextSaleID++
	sale.ID = r.s.nextSaleID
	sale.CreatedAt = r.s.now()
	r.s.sales[sale.ID] = *sale
	return sale.ID, nil
}

func (r *saleRepo) GetSaleByID(_ context.Context, id int64) (*models.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sale, ok := r.s.sales[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &sale, nil
}

func (r *saleRepo) GetSales(_ context.Context, filter repositories.SaleFilter, page repositories.Page) ([]models.Sale, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []models.Sale{}
	for _, sale := range r.s.sales {
		if filter.ClientID != nil && sale.ClientID != *filter.ClientID {
			continue
		}
		if filter.SaleDate != nil && !sale.SaleDate.Equal(*filter.SaleDate) {
			continue
		}
		matched = append(matched, sale)
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.SaleDate.Equal(b.SaleDate) {
			return a.SaleDate.After(b.SaleDate.Time)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return paginate(matched, page), len(matched), nil
}

func (r *saleRepo) UpdateSale(_ context.Context, sale *models.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.sales[sale.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if _, ok := r.s.clients[sale.ClientID]; !ok {
		return missingReference("sales_client_id_fkey")
	}
	existing.ClientID = sale.ClientID
	existing.Amount = sale.Amount
	r.s.sales[sale.ID] = existing
	return nil
}

func (r *saleRepo) DeleteSale(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.sales[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.sales, id)
	return nil
}

type statsRepo struct{ s *Store }

func (r *statsRepo) SalesPerDay(_ context.Context) ([]models.DailySalesTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byDay := map[string]*models.DailySalesTotal{}
	for _, sale := range r.s.sales {
		key := sale.SaleDate.String()
		day, ok := byDay[key]
		if !ok {
			day = &models.DailySalesTotal{Date: sale.SaleDate}
			byDay[key] = day
		}
		day.Total = models.MoneyFromDecimal(day.Total.Add(sale.Amount.Decimal))
	}

	days := make([]models.DailySalesTotal, 0, len(byDay))
	for _, day := range byDay {
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date.Time) })
	return days, nil
}

func (r *statsRepo) ClientSalesSummaries(_ context.Context) ([]models.ClientSalesSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byClient := map[int64]*models.ClientSalesSummary{}
	days := map[int64]map[string]struct{}{}
	for _, sale := range r.s.sales {
		summary, ok := byClient[sale.ClientID]
		if !ok {
			summary = &models.ClientSalesSummary{ClientID: sale.ClientID, FullName: r.s.clients[sale.ClientID].FullName}
			byClient[sale.ClientID] = summary
			days[sale.ClientID] = map[string]struct{}{}
		}
		summary.Total = models.MoneyFromDecimal(summary.Total.Add(sale.Amount.Decimal))
		summary.SaleCount++
		days[sale.ClientID][sale.SaleDate.String()] = struct{}{}
	}

	summaries := make([]models.ClientSalesSummary, 0, len(byClient))
	for id, summary := range byClient {
		summary.DistinctSaleDays = int64(len(days[id]))
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ClientID < summaries[j].ClientID })
	return summaries, nil
}

type authRepo struct{ s *Store }

func (r *authRepo) CreateUser(_ context.Context, user *models.User, hashedPassword string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, row := range r.s.users {
		if row.user.Username == user.Username {
			return 0, duplicate("users_username_key")
		}
	}
	r.s.nextUserID++
	user.ID = r.s.nextUserID
	user.IsActive = true
	user.CreatedAt = r.s.now()
	stored := *user
	stored.PasswordHash = ""
	r.s.users[user.ID] = userRow{user: stored, hash: hashedPassword}
	return user.ID, nil
}

func (r *authRepo) FindUserByUsername(_ context.Context, username string) (*models.User, string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, row := range r.s.users {
		if row.user.Username == username {
			u := row.user
			return &u, row.hash, nil
		}
	}
	return nil, "", repositories.ErrNotFound
}

func (r *authRepo) FindUserByID(_ context.Context, userID int64) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.users[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	u := row.user
	return &u, nil
}

// SetUserActive flips a user's active flag.
func (s *Store) SetUserActive(userID int64, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	row.user.IsActive = active
	s.users[userID] = row
	return nil
}
