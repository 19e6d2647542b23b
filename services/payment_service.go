package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// PaymentIntent is the slice of the gateway response bookings care about.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
}

// PaymentProvider creates payment intents for checkouts.
type PaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, amount, currency, description string) (*PaymentIntent, error)
}

// StripePaymentProvider is the production provider.
type StripePaymentProvider struct {
	client *client.API
}

func NewStripePaymentProvider(secretKey string) *StripePaymentProvider {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripePaymentProvider{client: sc}
}

// CreatePaymentIntent registers the amount with Stripe. amount is the
// decimal string stored on the booking; Stripe wants minor units.
func (p *StripePaymentProvider) CreatePaymentIntent(ctx context.Context, amount, currency, description string) (*PaymentIntent, error) {
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(int64(value * 100)),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
	}
	params.Context = ctx

	pi, err := p.client.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

// NoopPaymentProvider stands in when no Stripe key is configured; bookings
// are stored without a payment intent and stay pending.
type NoopPaymentProvider struct{}

func (NoopPaymentProvider) CreatePaymentIntent(ctx context.Context, amount, currency, description string) (*PaymentIntent, error) {
	return nil, nil
}
