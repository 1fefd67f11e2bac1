// Package payment wraps the Stripe checkout flow for market list orders.
package payment

import (
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	checksession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

type Config struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

type Client struct {
	cfg Config
}

func NewClient(cfg Config) *Client {
	stripe.Key = cfg.SecretKey
	return &Client{cfg: cfg}
}

// Configured reports whether checkout can run. Without keys the rest of
// the app still works; orders just cannot be paid for.
func (c *Client) Configured() bool {
	return c.cfg.SecretKey != "" && c.cfg.SuccessURL != "" && c.cfg.CancelURL != ""
}

// CheckoutLine is one priced list on a checkout session. Amount is in
// kobo, the naira minor unit.
type CheckoutLine struct {
	Name   string
	Amount int64
}

// CreateCheckoutSession creates a one-off payment session covering the
// given lines and returns the hosted payment URL. The reference travels
// through Stripe so the webhook can find the payment record again.
func (c *Client) CreateCheckoutSession(reference string, lines []CheckoutLine) (string, error) {
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, line := range lines {
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("ngn"),
				UnitAmount: stripe.Int64(line.Amount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
			},
			Quantity: stripe.Int64(1),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:         items,
		ClientReferenceID: stripe.String(reference),
		SuccessURL:        stripe.String(c.cfg.SuccessURL),
		CancelURL:         stripe.String(c.cfg.CancelURL),
	}
	sess, err := checksession.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.URL, nil
}

// ConstructWebhookEvent verifies the signature and returns the parsed event.
func (c *Client) ConstructWebhookEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, c.cfg.WebhookSecret)
}
