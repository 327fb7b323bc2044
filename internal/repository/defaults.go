package repository

import (
	"github.com/shopspring/decimal"

	"github.com/casablanca-dev/cashflow-api/internal/models"
)

// Defaults returns the embedded forecast dataset, used when neither
// FORECAST_FILE nor DB_CONN is configured. Figures updated Jan 14, 2026.
func Defaults() *models.Forecast {
	return &models.Forecast{
		Year:           2026,
		CurrentBalance: dec(245000),
		Points: []models.ForecastPoint{
			{Date: "jan14", Balance: dec(279000)},
			{Date: "jan15", Balance: dec(278000)},
			{Date: "jan16", Balance: dec(200000)},
			{Date: "jan20", Balance: dec(184000)},
			{Date: "jan21", Balance: dec(189000)},
			{Date: "jan22", Balance: dec(188000)},
			{Date: "jan23", Balance: dec(216000)},
			{Date: "jan30", Balance: dec(224000)},
			{Date: "jan31", Balance: dec(224000)},
			{Date: "feb3", Balance: dec(226000)},
			{Date: "feb13", Balance: dec(297000)},
			{Date: "feb20", Balance: dec(289000)},
			{Date: "feb24", Balance: dec(341000)},
		},
		MajorPayments: []models.Payment{
			{Date: "Jan 16", Desc: "AmEx", Amount: dec(106000)},
			{Date: "Jan 20-22", Desc: "Payroll #1", Amount: dec(103000)},
			{Date: "Jan 30", Desc: "AmEx", Amount: dec(130000)},
			{Date: "Feb 3-5", Desc: "Payroll #2", Amount: dec(103000)},
			{Date: "Feb 13", Desc: "AmEx", Amount: dec(100000)},
			{Date: "Feb 18-20", Desc: "Payroll #3", Amount: dec(103000)},
		},
		DailyIncome: models.DailyIncome{
			EDeposits: map[string]decimal.Decimal{
				"mon": dec(10000),
				"tue": dec(26000),
				"wed": dec(26000),
				"thu": dec(16000),
				"fri": dec(20000),
			},
			CCRevenue: dec(20000),
			Wires:     dec(3000),
		},
		DailyOps: dec(15000),
	}
}

func dec(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}
