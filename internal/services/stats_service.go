package services

import (
	"context"
	"fmt"

	"toy_store_backend/internal/models"
	"toy_store_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// StatsService computes the read-only sales reports.
type StatsService interface {
	SalesPerDay(ctx context.Context) (models.SalesPerDay, error)
	ClientRankings(ctx context.Context) (*models.ClientRankings, error)
}

type statsService struct {
	statsRepo repositories.StatsRepository
}

func NewStatsService(repo repositories.StatsRepository) StatsService {
	return &statsService{statsRepo: repo}
}

func (s *statsService) SalesPerDay(ctx context.Context) (models.SalesPerDay, error) {
	days, err := s.statsRepo.SalesPerDay(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales per day: %w", err)
	}
	return models.SalesPerDay(days), nil
}

func (s *statsService) ClientRankings(ctx context.Context) (*models.ClientRankings, error) {
	summaries, err := s.statsRepo.ClientSalesSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate client sales: %w", err)
	}
	return RankClients(summaries), nil
}

// RankClients picks the highest-volume, highest-average and most frequent
// client. Ties go to the lowest client id. Clients without sales are ignored.
func RankClients(summaries []models.ClientSalesSummary) *models.ClientRankings {
	var volume, average, frequency *models.ClientSalesSummary

	for i := range summaries {
		c := &summaries[i]
		if c.SaleCount == 0 {
			continue
		}
		if volume == nil || beats(c.Total.Cmp(volume.Total.Decimal), c, volume) {
			volume = c
		}
		if average == nil || beats(compareAverages(c, average), c, average) {
			average = c
		}
		if frequency == nil || beats(cmpInt64(c.DistinctSaleDays, frequency.DistinctSaleDays), c, frequency) {
			frequency = c
		}
	}

	rankings := &models.ClientRankings{}
	if volume != nil {
		rankings.HighestVolume = &models.ClientVolumeRanking{
			ClientID: volume.ClientID,
			FullName: volume.FullName,
			Total:    models.MoneyFromDecimal(volume.Total.Round(2)),
		}
	}
	if average != nil {
		rankings.HighestAverage = &models.ClientAverageRanking{
			ClientID: average.ClientID,
			FullName: average.FullName,
			Average:  models.MoneyFromDecimal(averageOf(average)),
		}
	}
	if frequency != nil {
		rankings.HighestFrequency = &models.ClientFrequencyRanking{
			ClientID: frequency.ClientID,
			FullName: frequency.FullName,
			Count:    frequency.DistinctSaleDays,
		}
	}
	return rankings
}

// beats reports whether candidate replaces current given cmp = candidate <=> current.
func beats(cmp int, candidate, current *models.ClientSalesSummary) bool {
	if cmp != 0 {
		return cmp > 0
	}
	return candidate.ClientID < current.ClientID
}

// compareAverages compares a.Total/a.SaleCount with b.Total/b.SaleCount without division.
func compareAverages(a, b *models.ClientSalesSummary) int {
	left := a.Total.Mul(decimal.NewFromInt(b.SaleCount))
	right := b.Total.Mul(decimal.NewFromInt(a.SaleCount))
	return left.Cmp(right)
}

// averageOf rounds half away from zero to cents.
func averageOf(c *models.ClientSalesSummary) decimal.Decimal {
	return c.Total.DivRound(decimal.NewFromInt(c.SaleCount), 2)
}

func cmpInt64(a, b int64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}
