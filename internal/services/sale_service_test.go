package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"toy_store_backend/internal/models"
	"toy_store_backend/internal/repositories"
	"toy_store_backend/internal/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleFixture struct {
	repos   repositories.Repositories
	clients ClientService
	sales   SaleService
	today   time.Time
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()
	f := &saleFixture{
		repos: memory.NewRepositories(),
		today: time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC),
	}
	f.clients = NewClientService(f.repos.Clients)
	f.sales = NewSaleService(f.repos.Sales, f.repos.Clients, func() time.Time { return f.today })
	return f
}

func (f *saleFixture) client(t *testing.T, email string) *models.Client {
	t.Helper()
	c, err := f.clients.CreateClient(context.Background(), CreateClientRequest{FullName: email, Email: email, BirthDate: "1990-01-01"})
	require.NoError(t, err)
	return c
}

func moneyPtr(s string) *models.Money {
	m := models.MustMoney(s)
	return &m
}

func TestCreateSaleStampsToday(t *testing.T) {
	f := newSaleFixture(t)
	c := f.client(t, "ana@example.com")

	sale, err := f.sales.CreateSale(context.Background(), CreateSaleRequest{Client: &c.ID, Amount: moneyPtr("99.99")})
	require.NoError(t, err)
	assert.Equal(t, "99.99", sale.Amount.String())
	assert.Equal(t, "2024-06-15", sale.SaleDate.String())
	assert.Equal(t, c.ID, sale.ClientID)
}

func TestCreateSaleValidation(t *testing.T) {
	f := newSaleFixture(t)
	c := f.client(t, "ana@example.com")
	missing := int64(404)

	tests := []struct {
		name  string
		req   CreateSaleRequest
		field string
		msg   string
	}{
		{"unknown client", CreateSaleRequest{Client: &missing, Amount: moneyPtr("1")}, "client", `Invalid pk "404" - object does not exist.`},
		{"negative", CreateSaleRequest{Client: &c.ID, Amount: moneyPtr("-0.01")}, "amount", "Ensure this value is greater than or equal to 0."},
		{"three decimals", CreateSaleRequest{Client: &c.ID, Amount: moneyPtr("1.005")}, "amount", "Ensure that there are no more than 2 decimal places."},
		{"too many digits", CreateSaleRequest{Client: &c.ID, Amount: moneyPtr("100000000")}, "amount", "Ensure that there are no more than 10 digits in total."},
		{"missing amount", CreateSaleRequest{Client: &c.ID}, "amount", msgRequired},
		{"missing client", CreateSaleRequest{Amount: moneyPtr("1")}, "client", msgRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.sales.CreateSale(context.Background(), tt.req)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.msg, verr.Fields[tt.field])
		})
	}

	_, count, err := f.sales.GetSales(context.Background(), repositories.SaleFilter{}, repositories.Page{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAmountBounds(t *testing.T) {
	assert.Empty(t, ValidateAmount(models.MustMoney("0")))
	assert.Empty(t, ValidateAmount(models.MustMoney("99999999.99")))
	assert.Empty(t, ValidateAmount(models.MustMoney("1.50")))
	assert.NotEmpty(t, ValidateAmount(models.MustMoney("100000000.00")))
	assert.Empty(t, ValidateAmount(models.MustMoney("1.2300000")))
	assert.Empty(t, ValidateAmount(models.MustMoney("0e-100000000")))
	assert.Equal(t, "Ensure that there are no more than 2 decimal places.", ValidateAmount(models.MustMoney("1e-100000000")))
	assert.Equal(t, "Ensure that there are no more than 10 digits in total.", ValidateAmount(models.MustMoney("1e100000000")))
	assert.Equal(t, "Ensure this value is greater than or equal to 0.", ValidateAmount(models.MustMoney("-1e100000000")))
}

func TestPatchAmountKeepsDateAndClient(t *testing.T) {
	f := newSaleFixture(t)
	c := f.client(t, "ana@example.com")
	sale, err := f.sales.CreateSale(context.Background(), CreateSaleRequest{Client: &c.ID, Amount: moneyPtr("10.00")})
	require.NoError(t, err)

	f.today = f.today.AddDate(0, 0, 3)
	updated, err := f.sales.UpdateSale(context.Background(), sale.ID, UpdateSaleRequest{Amount: moneyPtr("15.50")})
	require.NoError(t, err)
	assert.Equal(t, "15.50", updated.Amount.String())
	assert.Equal(t, "2024-06-15", updated.SaleDate.String())
	assert.Equal(t, c.ID, updated.ClientID)

	stored, err := f.sales.GetSaleByID(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "15.50", stored.Amount.String())
	assert.Equal(t, "2024-06-15", stored.SaleDate.String())
}

func TestReplaceSaleMovesToAnotherClient(t *testing.T) {
	f := newSaleFixture(t)
	ana := f.client(t, "ana@example.com")
	bruno := f.client(t, "bruno@example.com")
	sale, err := f.sales.CreateSale(context.Background(), CreateSaleRequest{Client: &ana.ID, Amount: moneyPtr("10")})
	require.NoError(t, err)

	replaced, err := f.sales.ReplaceSale(context.Background(), sale.ID, CreateSaleRequest{Client: &bruno.ID, Amount: moneyPtr("11")})
	require.NoError(t, err)
	assert.Equal(t, bruno.ID, replaced.ClientID)
	assert.Equal(t, "11.00", replaced.Amount.String())

	_, err = f.sales.ReplaceSale(context.Background(), sale.ID, CreateSaleRequest{Client: &bruno.ID})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = f.sales.UpdateSale(context.Background(), 999, UpdateSaleRequest{})
	assert.True(t, errors.Is(err, ErrSaleNotFound))
}

func TestDeleteSaleKeepsClient(t *testing.T) {
	f := newSaleFixture(t)
	c := f.client(t, "ana@example.com")
	sale, err := f.sales.CreateSale(context.Background(), CreateSaleRequest{Client: &c.ID, Amount: moneyPtr("10")})
	require.NoError(t, err)

	require.NoError(t, f.sales.DeleteSale(context.Background(), sale.ID))
	assert.True(t, errors.Is(f.sales.DeleteSale(context.Background(), sale.ID), ErrSaleNotFound))

	_, err = f.clients.GetClientByID(context.Background(), c.ID)
	assert.NoError(t, err)
}
