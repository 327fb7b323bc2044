package repository

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/casablanca-dev/cashflow-api/internal/models"
)

// Repository loads the forecast dataset from Postgres
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// LoadForecast reads the full dataset. Called once at startup; the
// result is held read-only for the process lifetime.
func (r *Repository) LoadForecast() (*models.Forecast, error) {
	forecast := &models.Forecast{}

	metaQuery := `
		SELECT year, current_balance, daily_ops, cc_revenue, wires,
		       deposits_mon, deposits_tue, deposits_wed, deposits_thu, deposits_fri
		FROM cashflow.meta
		LIMIT 1`
	var mon, tue, wed, thu, fri decimal.Decimal
	err := r.db.QueryRow(metaQuery).Scan(
		&forecast.Year, &forecast.CurrentBalance, &forecast.DailyOps,
		&forecast.DailyIncome.CCRevenue, &forecast.DailyIncome.Wires,
		&mon, &tue, &wed, &thu, &fri,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("forecast metadata not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load forecast metadata: %w", err)
	}
	forecast.DailyIncome.EDeposits = map[string]decimal.Decimal{
		"mon": mon, "tue": tue, "wed": wed, "thu": thu, "fri": fri,
	}

	pointsQuery := `
		SELECT date_key, balance
		FROM cashflow.forecast_points
		ORDER BY projected_date ASC`
	rows, err := r.db.Query(pointsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to load forecast points: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var point models.ForecastPoint
		if err := rows.Scan(&point.Date, &point.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan forecast point: %w", err)
		}
		forecast.Points = append(forecast.Points, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate forecast points: %w", err)
	}

	paymentsQuery := `
		SELECT payment_date, description, amount
		FROM cashflow.major_payments
		ORDER BY id ASC`
	payRows, err := r.db.Query(paymentsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to load major payments: %w", err)
	}
	defer payRows.Close()
	for payRows.Next() {
		var payment models.Payment
		if err := payRows.Scan(&payment.Date, &payment.Desc, &payment.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan major payment: %w", err)
		}
		forecast.MajorPayments = append(forecast.MajorPayments, payment)
	}
	if err := payRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate major payments: %w", err)
	}

	return forecast, nil
}
