package treasury

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/casablanca-dev/cashflow-api/internal/config"
)

// Client fetches the live operating balance from the treasury feed.
// The feed speaks an XML envelope protocol; responses are parsed with
// XPath against the BalanceReport document.
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new treasury feed client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.FeedURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// buildRequest creates a balance report request envelope
func (c *Client) buildRequest() string {
	asOf := time.Now().Format("2006-01-02")
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
		<Envelope>
			<Body>
				<BalanceReportRequest>
					<AsOf>%s</AsOf>
				</BalanceReportRequest>
			</Body>
		</Envelope>`, asOf)
}

// sendRequest posts the envelope to the feed
func (c *Client) sendRequest(ctx context.Context, envelope string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBufferString(envelope))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/xml; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("Treasury feed XML response: %s", string(body))
	return body, nil
}

// parseResponse extracts the available balance from the report XML
func (c *Client) parseResponse(rawBody []byte) (decimal.Decimal, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse XML: %v", err)
	}

	elements := doc.FindElements("//BalanceReport/Account")
	if len(elements) == 0 {
		return decimal.Zero, fmt.Errorf("no account data found in XML")
	}

	available := elements[0].FindElement("./Available")
	if available == nil {
		return decimal.Zero, fmt.Errorf("available balance element not found in XML")
	}

	balance, err := decimal.NewFromString(available.Text())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse balance: %v", err)
	}

	return balance, nil
}

// CurrentBalance retrieves the live available balance from the feed
func (c *Client) CurrentBalance(ctx context.Context) (decimal.Decimal, error) {
	envelope := c.buildRequest()
	body, err := c.sendRequest(ctx, envelope)
	if err != nil {
		return decimal.Zero, err
	}

	balance, err := c.parseResponse(body)
	if err != nil {
		return decimal.Zero, err
	}

	c.log.Infof("Retrieved live balance: %s", balance.StringFixed(2))
	return balance, nil
}
