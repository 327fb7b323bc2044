// Package answer implements the question-answering endpoint's logic.
// The matching strategy is pluggable: handlers depend only on the
// Answerer interface, so a richer implementation can replace the
// keyword rules without touching the router.
package answer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/casablanca-dev/cashflow-api/internal/datekey"
	"github.com/casablanca-dev/cashflow-api/internal/models"
	"github.com/casablanca-dev/cashflow-api/internal/service"
)

// Answerer produces a textual answer for a free-text question.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Store is the read-only view of the forecast the rules consult.
type Store interface {
	GetLowPoint() (models.ForecastPoint, error)
	GetBalance(token string) (models.ForecastPoint, error)
	Forecast() *models.Forecast
}

// BalanceFeed supplies the live current balance from an upstream system.
type BalanceFeed interface {
	CurrentBalance(ctx context.Context) (decimal.Decimal, error)
}

// Rules is a keyword-matching Answerer over the forecast dataset.
type Rules struct {
	store Store
	feed  BalanceFeed // optional; nil means dataset figures only
	log   *logrus.Logger
}

// NewRules initializes the rule-based answerer.
func NewRules(store Store, feed BalanceFeed, log *logrus.Logger) *Rules {
	return &Rules{store: store, feed: feed, log: log}
}

// Answer matches the question against the rule set. The first matching
// rule wins. Never mutates the store.
func (r *Rules) Answer(ctx context.Context, question string) (string, error) {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return "", service.ErrInvalidInput
	}

	forecast := r.store.Forecast()

	if strings.Contains(q, "low") || strings.Contains(q, "minimum") {
		low, err := r.store.GetLowPoint()
		if err != nil {
			return "", err
		}
		date, err := datekey.Parse(low.Date, forecast.Year)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Low point is %s on %s", FormatMoney(low.Balance), datekey.Display(date)), nil
	}

	if strings.Contains(q, "current") || strings.Contains(q, "today") || strings.Contains(q, "now") {
		return fmt.Sprintf("Current balance is %s", FormatMoney(r.currentBalance(ctx))), nil
	}

	if point, date, ok := r.matchDate(q); ok {
		return fmt.Sprintf("Projected balance on %s is %s", datekey.Display(date), FormatMoney(point.Balance)), nil
	}

	if strings.Contains(q, "payroll") {
		return "Upcoming payrolls: " + r.listPayments("Payroll"), nil
	}

	if strings.Contains(q, "amex") || strings.Contains(q, "american express") {
		return "AmEx payments: " + r.listPayments("AmEx"), nil
	}

	if strings.Contains(q, "deposit") || strings.Contains(q, "income") {
		return r.describeDailyIncome(), nil
	}

	if strings.Contains(q, "ops") || strings.Contains(q, "operating") || strings.Contains(q, "expense") {
		return fmt.Sprintf("Daily operating costs are %s", FormatMoney(forecast.DailyOps)), nil
	}

	return "Try asking about: current balance, low point, balance on a specific date, payroll dates, AmEx payments, daily income, or operating costs", nil
}

// describeDailyIncome summarizes the expected recurring daily inflows.
func (r *Rules) describeDailyIncome() string {
	income := r.store.Forecast().DailyIncome

	var deposits []string
	for _, day := range []string{"mon", "tue", "wed", "thu", "fri"} {
		amount, ok := income.EDeposits[day]
		if !ok {
			continue
		}
		deposits = append(deposits, fmt.Sprintf("%s %s", strings.ToUpper(day[:1])+day[1:], FormatMoney(amount)))
	}

	return fmt.Sprintf("Expected daily income: e-deposits %s, plus %s CC revenue and %s in wires",
		strings.Join(deposits, ", "), FormatMoney(income.CCRevenue), FormatMoney(income.Wires))
}

// currentBalance prefers the live feed when configured, falling back to
// the dataset figure on any upstream failure so the endpoint never hangs
// or errors on a feed outage.
func (r *Rules) currentBalance(ctx context.Context) decimal.Decimal {
	forecast := r.store.Forecast()
	if r.feed == nil {
		return forecast.CurrentBalance
	}
	balance, err := r.feed.CurrentBalance(ctx)
	if err != nil {
		r.log.Warnf("Balance feed unavailable, using dataset figure: %v", err)
		return forecast.CurrentBalance
	}
	return balance
}

// matchDate scans the question for a date token present in the dataset,
// e.g. "feb 24" or "feb24". Whole-token match only: a trailing digit
// after the match means a longer, different day.
func (r *Rules) matchDate(q string) (models.ForecastPoint, time.Time, bool) {
	forecast := r.store.Forecast()
	normalized := datekey.Normalize(q)
	for _, point := range forecast.Points {
		date, err := datekey.Parse(point.Date, forecast.Year)
		if err != nil {
			continue
		}
		for _, token := range []string{datekey.Format(date), longForm(date)} {
			idx := strings.Index(normalized, token)
			if idx < 0 {
				continue
			}
			rest := normalized[idx+len(token):]
			if rest != "" && rest[0] >= '0' && rest[0] <= '9' {
				continue
			}
			return point, date, true
		}
	}
	return models.ForecastPoint{}, time.Time{}, false
}

// longForm renders a date with the full month name, e.g. "february24".
func longForm(date time.Time) string {
	return strings.ToLower(date.Format("January")) + strconv.Itoa(date.Day())
}

// listPayments formats the major payments whose description contains
// the given substring, e.g. "Jan 16 ($106,000), Jan 30 ($130,000)".
func (r *Rules) listPayments(kind string) string {
	var parts []string
	for _, payment := range r.store.Forecast().MajorPayments {
		if strings.Contains(payment.Desc, kind) {
			parts = append(parts, fmt.Sprintf("%s (%s)", payment.Date, FormatMoney(payment.Amount)))
		}
	}
	return strings.Join(parts, ", ")
}

// FormatMoney renders an amount as dollars with thousands separators,
// e.g. "$245,000" or "-$1,250.50". Rounded to whole cents first so the
// fraction can never carry into the grouped whole part.
func FormatMoney(amount decimal.Decimal) string {
	amount = amount.Round(2)
	abs := amount.Abs()
	whole := abs.Truncate(0)

	digits := whole.String()
	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(d)
	}

	out := "$" + grouped.String()
	if frac := abs.Sub(whole); !frac.IsZero() {
		out += strings.TrimPrefix(frac.StringFixed(2), "0")
	}
	if amount.IsNegative() {
		out = "-" + out
	}
	return out
}
