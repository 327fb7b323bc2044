package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/casablanca-dev/cashflow-api/internal/answer"
	"github.com/casablanca-dev/cashflow-api/internal/config"
)

// Sender handles sending alert emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// CheckLowPoint sends an alert when the projected low point has fallen
// below the threshold. No-op while the low point stays at or above it.
func (s *Sender) CheckLowPoint(to, lowDate string, balance, threshold decimal.Decimal) error {
	if balance.GreaterThanOrEqual(threshold) {
		return nil
	}
	return s.SendLowPointAlert(to, lowDate, balance, threshold)
}

// SendLowPointAlert notifies the recipient that the projected low point
// has fallen below the configured threshold.
func (s *Sender) SendLowPointAlert(to, lowDate string, balance, threshold decimal.Decimal) error {
	e := s.buildLowPointAlert(to, lowDate, balance, threshold)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send alert to %s: %v", to, err)
		return fmt.Errorf("failed to send alert: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

// buildLowPointAlert constructs the alert message
func (s *Sender) buildLowPointAlert(to, lowDate string, balance, threshold decimal.Decimal) *email.Email {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Cash Flow Low Point Alert"

	body := fmt.Sprintf(
		"The projected cash low point is %s on %s, below the alert threshold of %s.\n"+
			"Review upcoming major payments and expected deposits.\n"+
			"\nGenerated %s\n",
		answer.FormatMoney(balance), lowDate, answer.FormatMoney(threshold),
		time.Now().Format("2006-01-02 15:04:05"),
	)
	e.Text = []byte(body)
	return e
}
