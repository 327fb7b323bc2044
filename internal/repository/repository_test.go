package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDataset = `
year: 2026
current_balance: 245000
points:
  - date: jan15
    balance: 500
  - date: jan20
    balance: -200
  - date: jan25
    balance: 800
major_payments:
  - date: Jan 16
    desc: AmEx
    amount: 106000
daily_income:
  e_deposits:
    mon: 10000
    fri: 20000
  cc_revenue: 20000
  wires: 3000
daily_ops: 15000
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecast.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0o644))

	forecast, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2026, forecast.Year)
	assert.Equal(t, "245000", forecast.CurrentBalance.String())
	require.Len(t, forecast.Points, 3)
	assert.Equal(t, "jan20", forecast.Points[1].Date)
	assert.Equal(t, "-200", forecast.Points[1].Balance.String())
	require.Len(t, forecast.MajorPayments, 1)
	assert.Equal(t, "AmEx", forecast.MajorPayments[0].Desc)
	assert.Equal(t, "10000", forecast.DailyIncome.EDeposits["mon"].String())
	assert.Equal(t, "15000", forecast.DailyOps.String())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("points: {not: [valid"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	forecast := Defaults()

	assert.Equal(t, 2026, forecast.Year)
	assert.Equal(t, "245000", forecast.CurrentBalance.String())
	require.NotEmpty(t, forecast.Points)
	assert.Equal(t, "jan14", forecast.Points[0].Date)
	assert.Equal(t, "feb24", forecast.Points[len(forecast.Points)-1].Date)
	assert.Len(t, forecast.MajorPayments, 6)
	assert.Len(t, forecast.DailyIncome.EDeposits, 5)

	// embedded low point matches the published figure
	low := forecast.Points[0]
	for _, p := range forecast.Points {
		if p.Balance.LessThan(low.Balance) {
			low = p
		}
	}
	assert.Equal(t, "jan20", low.Date)
	assert.Equal(t, "184000", low.Balance.String())
}
