package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// PaymentProvider requests a payment intent from the external processor
// and returns the client secret used by the caller's confirmation step.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error)
}

// stripePayments is the Stripe implementation of PaymentProvider.
type stripePayments struct {
	logger zerolog.Logger
}

// NewStripePayments initializes the Stripe key and returns a provider with
// a scoped logger.
func NewStripePayments(secretKey string, logger zerolog.Logger) PaymentProvider {
	stripe.Key = secretKey
	return &stripePayments{
		logger: logger.With().Str("service", "StripePayments").Logger(),
	}
}

// CreateIntent creates a card-only payment intent.
func (p *stripePayments) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	intent, err := paymentintent.New(params)
	if err != nil {
		p.logger.Error().Err(err).Int64("amount_cents", amountCents).Msg("Failed to create payment intent")
		return "", fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	return intent.ClientSecret, nil
}
