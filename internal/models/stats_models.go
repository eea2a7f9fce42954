package models

import "bytes"

// DailySalesTotal is the sum of all sale amounts for one sale date.
type DailySalesTotal struct {
	Date  Date  `json:"date"`
	Total Money `json:"total"`
}

// SalesPerDay is an ascending-by-date list of daily totals. It marshals as a
// JSON object keyed by "YYYY-MM-DD", preserving slice order.
type SalesPerDay []DailySalesTotal

func (s SalesPerDay) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, day := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`"` + day.Date.String() + `":"` + day.Total.String() + `"`)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ClientSalesSummary is one client's aggregate over all of their sales.
type ClientSalesSummary struct {
	ClientID         int64
	FullName         string
	Total            Money
	SaleCount        int64
	DistinctSaleDays int64
}

type ClientVolumeRanking struct {
	ClientID int64  `json:"clientId"`
	FullName string `json:"fullName"`
	Total    Money  `json:"total"`
}

type ClientAverageRanking struct {
	ClientID int64  `json:"clientId"`
	FullName string `json:"fullName"`
	Average  Money  `json:"average"`
}

type ClientFrequencyRanking struct {
	ClientID int64  `json:"clientId"`
	FullName string `json:"fullName"`
	Count    int64  `json:"count"`
}

// ClientRankings holds the three best-customer winners. Each is nil when
// there are no sales at all.
type ClientRankings struct {
	HighestVolume    *ClientVolumeRanking    `json:"highestVolume"`
	HighestAverage   *ClientAverageRanking   `json:"highestAverage"`
	HighestFrequency *ClientFrequencyRanking `json:"highestFrequency"`
}
