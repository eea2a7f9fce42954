package services

import (
	"context"
	"testing"

	"toy_store_backend/internal/models"
	"toy_store_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summary(id int64, total string, count, days int64) models.ClientSalesSummary {
	return models.ClientSalesSummary{ClientID: id, FullName: "client", Total: models.MustMoney(total), SaleCount: count, DistinctSaleDays: days}
}

func TestRankClientsEmpty(t *testing.T) {
	r := RankClients(nil)
	assert.Nil(t, r.HighestVolume)
	assert.Nil(t, r.HighestAverage)
	assert.Nil(t, r.HighestFrequency)
}

func TestRankClientsPicksIndependentWinners(t *testing.T) {
	r := RankClients([]models.ClientSalesSummary{
		summary(1, "100.00", 10, 2), // avg 10
		summary(2, "90.00", 1, 1),   // avg 90
		summary(3, "50.00", 5, 5),   // avg 10
	})

	require.NotNil(t, r.HighestVolume)
	assert.Equal(t, int64(1), r.HighestVolume.ClientID)
	assert.Equal(t, "100.00", r.HighestVolume.Total.String())

	require.NotNil(t, r.HighestAverage)
	assert.Equal(t, int64(2), r.HighestAverage.ClientID)
	assert.Equal(t, "90.00", r.HighestAverage.Average.String())

	require.NotNil(t, r.HighestFrequency)
	assert.Equal(t, int64(3), r.HighestFrequency.ClientID)
	assert.Equal(t, int64(5), r.HighestFrequency.Count)
}

func TestRankClientsTiesGoToLowestID(t *testing.T) {
	r := RankClients([]models.ClientSalesSummary{
		summary(9, "30.00", 3, 2),
		summary(4, "30.00", 3, 2),
		summary(7, "30.00", 3, 2),
	})
	assert.Equal(t, int64(4), r.HighestVolume.ClientID)
	assert.Equal(t, int64(4), r.HighestAverage.ClientID)
	assert.Equal(t, int64(4), r.HighestFrequency.ClientID)
}

func TestRankClientsAverageIsExact(t *testing.T) {
	// 10/3 = 3.333... and 20/6 = 3.333... are equal; a float comparison
	// could separate them.
	r := RankClients([]models.ClientSalesSummary{
		summary(2, "20.00", 6, 1),
		summary(1, "10.00", 3, 1),
	})
	assert.Equal(t, int64(1), r.HighestAverage.ClientID)
	assert.Equal(t, "3.33", r.HighestAverage.Average.String())

	// Halves round away from zero.
	r = RankClients([]models.ClientSalesSummary{summary(1, "0.05", 2, 1)})
	assert.Equal(t, "0.03", r.HighestAverage.Average.String())
}

func TestStatsServiceScenario(t *testing.T) {
	f := newSaleFixture(t)
	ctx := context.Background()
	ana := f.client(t, "ana@example.com")
	bruno := f.client(t, "bruno@example.com")

	_, err := f.sales.CreateSale(ctx, CreateSaleRequest{Client: &ana.ID, Amount: moneyPtr("10.00")})
	require.NoError(t, err)
	_, err = f.sales.CreateSale(ctx, CreateSaleRequest{Client: &ana.ID, Amount: moneyPtr("20.00")})
	require.NoError(t, err)

	f.today = f.today.AddDate(0, 0, 1)
	_, err = f.sales.CreateSale(ctx, CreateSaleRequest{Client: &bruno.ID, Amount: moneyPtr("25.00")})
	require.NoError(t, err)

	stats := NewStatsService(f.repos.Stats)

	days, err := stats.SalesPerDay(ctx)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2024-06-15", days[0].Date.String())
	assert.Equal(t, "30.00", days[0].Total.String())
	assert.Equal(t, "2024-06-16", days[1].Date.String())
	assert.Equal(t, "25.00", days[1].Total.String())

	sales, _, err := f.sales.GetSales(ctx, repositories.SaleFilter{}, repositories.Page{})
	require.NoError(t, err)
	grand := models.MustMoney("0")
	for _, s := range sales {
		grand = models.MoneyFromDecimal(grand.Add(s.Amount.Decimal))
	}
	reported := models.MustMoney("0")
	for _, d := range days {
		reported = models.MoneyFromDecimal(reported.Add(d.Total.Decimal))
	}
	assert.True(t, grand.Equal(reported.Decimal))

	rankings, err := stats.ClientRankings(ctx)
	require.NoError(t, err)
	assert.Equal(t, ana.ID, rankings.HighestVolume.ClientID)
	assert.Equal(t, bruno.ID, rankings.HighestAverage.ClientID)
	assert.Equal(t, "25.00", rankings.HighestAverage.Average.String())
	// Both have one distinct sale day; Ana wins on id.
	assert.Equal(t, ana.ID, rankings.HighestFrequency.ClientID)
	assert.Equal(t, int64(1), rankings.HighestFrequency.Count)
}
