package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	stripe "github.com/stripe/stripe-go/v82"
	stripeclient "github.com/stripe/stripe-go/v82/client"

	"github.com/healthhub/healthhub-backend/internal/domain/providers"
	"github.com/healthhub/healthhub-backend/pkg/config"
	apperrors "github.com/healthhub/healthhub-backend/pkg/errors"
)

// StripeAdapter implements the PaymentProvider interface against Stripe
type StripeAdapter struct {
	api     *stripeclient.API
	timeout time.Duration
}

// Ensure StripeAdapter implements PaymentProvider
var _ providers.PaymentProvider = (*StripeAdapter)(nil)

// NewStripeAdapter creates a new Stripe payment adapter
func NewStripeAdapter(cfg *config.StripeConfig) *StripeAdapter {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &StripeAdapter{
		api:     stripeclient.New(cfg.SecretKey, nil),
		timeout: timeout,
	}
}

// CreatePaymentIntent registers an intended charge and returns the client
// secret the mobile app needs to collect the card.
func (a *StripeAdapter) CreatePaymentIntent(ctx context.Context, amountMinorUnits int64, currency string) (*providers.PaymentIntent, error) {
	if amountMinorUnits <= 0 {
		return nil, apperrors.NewValidationError("payment amount must be positive")
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amountMinorUnits),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	intent, err := a.api.PaymentIntents.New(params)
	if err != nil {
		return nil, translateStripeError("failed to create payment intent", err)
	}

	return &providers.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// ConfirmPayment confirms the intent identified by clientSecret with the
// given payment method.
func (a *StripeAdapter) ConfirmPayment(ctx context.Context, clientSecret, paymentMethodID string) (*providers.PaymentResult, error) {
	intentID, err := IntentIDFromClientSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	params := &stripe.PaymentIntentConfirmParams{
		Params:        stripe.Params{Context: ctx},
		PaymentMethod: stripe.String(paymentMethodID),
	}

	intent, err := a.api.PaymentIntents.Confirm(intentID, params)
	if err != nil {
		return nil, translateStripeError("failed to confirm payment", err)
	}

	return &providers.PaymentResult{
		Status:          string(intent.Status),
		PaymentMethodID: paymentMethodID,
	}, nil
}

// IntentIDFromClientSecret extracts the payment intent id from a client
// secret of the form "pi_xxx_secret_yyy".
func IntentIDFromClientSecret(clientSecret string) (string, error) {
	intentID, _, found := strings.Cut(clientSecret, "_secret")
	if !found || intentID == "" {
		return "", apperrors.NewValidationError("malformed payment client secret")
	}
	return intentID, nil
}

// translateStripeError maps gateway failures onto the application error
// taxonomy. Card rejections become payment-declined; everything else,
// including timeouts, is a gateway failure.
func translateStripeError(message string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.Type == stripe.ErrorTypeCard {
			return apperrors.NewPaymentDeclinedError(stripeErr.Msg, err)
		}
		return apperrors.NewPaymentGatewayError(message, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewPaymentGatewayError("payment gateway timed out", err)
	}

	return apperrors.NewPaymentGatewayError(message, err)
}
