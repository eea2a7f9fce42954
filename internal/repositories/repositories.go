package repositories

// Repositories bundles every repository the API needs so a storage backend
// can be swapped in one place.
type Repositories struct {
	Clients ClientRepository
	Sales   SaleRepository
	Stats   StatsRepository
	Auth    AuthRepository
}

// NewPostgresRepositories wires all repositories to the same connection pool.
func NewPostgresRepositories(db SQLExecutor) Repositories {
	return Repositories{
		Clients: NewClientRepository(db),
		Sales:   NewSaleRepository(db),
		Stats:   NewStatsRepository(db),
		Auth:    NewAuthRepository(db),
	}
}
