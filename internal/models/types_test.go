package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(MustMoney("99.9"))
	require.NoError(t, err)
	assert.Equal(t, `"99.90"`, string(b))

	var quoted, bare Money
	require.NoError(t, json.Unmarshal([]byte(`"12.50"`), &quoted))
	require.NoError(t, json.Unmarshal([]byte(`12.5`), &bare))
	assert.True(t, quoted.Equal(bare.Decimal))

	var bad Money
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &bad))
}

func TestMoneyDigits(t *testing.T) {
	cases := []struct {
		in                string
		integer, fraction int64
	}{
		{"0", 0, 0},
		{"0.000", 0, 0},
		{"99999999.99", 8, 2},
		{"1.50", 1, 1},
		{"0.05", 0, 2},
		{"1200", 4, 0},
		{"1e-100000000", 0, 100000000},
		{"1e100000000", 100000001, 0},
	}
	for _, tc := range cases {
		integer, fraction := MustMoney(tc.in).Digits()
		assert.Equal(t, tc.integer, integer, tc.in)
		assert.Equal(t, tc.fraction, fraction, tc.in)
	}

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"12.5000"`), &m))
	assert.Equal(t, int32(-1), m.Exponent())
	assert.Equal(t, `"12.50"`, mustJSON(t, m))
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestDateNormalisesToCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	late := time.Date(2024, 5, 10, 23, 30, 0, 0, loc)

	d := NewDate(late)
	assert.Equal(t, "2024-05-10", d.String())

	parsed, err := ParseDate("2024-05-10")
	require.NoError(t, err)
	assert.True(t, d.Equal(parsed))
}

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"1990-01-01"`), &d))
	assert.Equal(t, "1990-01-01", d.String())

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1990-01-01"`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`"1990-02-30"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`19900101`), &d))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2023-12-31", d.String())

	require.NoError(t, d.Scan([]byte("2024-01-02")))
	assert.Equal(t, "2024-01-02", d.String())

	assert.Error(t, d.Scan(42))
}

func TestSalesPerDayMarshalKeepsOrder(t *testing.T) {
	days := SalesPerDay{
		{Date: mustDate(t, "2024-01-01"), Total: MustMoney("30")},
		{Date: mustDate(t, "2024-01-03"), Total: MustMoney("5.5")},
	}
	b, err := json.Marshal(days)
	require.NoError(t, err)
	assert.Equal(t, `{"2024-01-01":"30.00","2024-01-03":"5.50"}`, string(b))

	empty, err := json.Marshal(SalesPerDay{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(empty))
}

func TestClientRankingsNullWhenEmpty(t *testing.T) {
	b, err := json.Marshal(ClientRankings{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"highestVolume":null,"highestAverage":null,"highestFrequency":null}`, string(b))
}

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}
