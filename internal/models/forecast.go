package models

import "github.com/shopspring/decimal"

// ForecastPoint represents the projected balance for a specific date
type ForecastPoint struct {
	Date    string          `json:"date" yaml:"date"` // date key, e.g. "jan20"
	Balance decimal.Decimal `json:"balance" yaml:"balance"`
}

// Payment represents a major scheduled outgoing payment
type Payment struct {
	Date   string          `json:"date" yaml:"date"` // display form, may span days, e.g. "Jan 20-22"
	Desc   string          `json:"desc" yaml:"desc"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// DailyIncome represents expected recurring daily inflows
type DailyIncome struct {
	EDeposits map[string]decimal.Decimal `json:"e_deposits" yaml:"e_deposits"` // keyed by weekday: mon..fri
	CCRevenue decimal.Decimal            `json:"cc_revenue" yaml:"cc_revenue"`
	Wires     decimal.Decimal            `json:"wires" yaml:"wires"`
}

// Forecast represents the full cash-flow projection dataset
type Forecast struct {
	Year           int             `json:"year" yaml:"year"`
	CurrentBalance decimal.Decimal `json:"current_balance" yaml:"current_balance"`
	Points         []ForecastPoint `json:"points" yaml:"points"`
	MajorPayments  []Payment       `json:"major_payments" yaml:"major_payments"`
	DailyIncome    DailyIncome     `json:"daily_income" yaml:"daily_income"`
	DailyOps       decimal.Decimal `json:"daily_ops" yaml:"daily_ops"`
}
