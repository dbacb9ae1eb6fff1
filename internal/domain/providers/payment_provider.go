package providers

import (
	"context"
)

// PaymentIntent is the gateway's handle for a charge in flight
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentResult is the gateway's answer to a confirmation attempt
type PaymentResult struct {
	Status          string
	PaymentMethodID string
}

// PaymentProvider defines the interface for the external payment gateway
// (Stripe). Card details never pass through this backend; the client collects
// them and the gateway tokenizes them into a payment method id.
type PaymentProvider interface {
	// CreatePaymentIntent registers an intended charge and returns the
	// client secret the mobile app needs to collect the card.
	CreatePaymentIntent(ctx context.Context, amountMinorUnits int64, currency string) (*PaymentIntent, error)

	// ConfirmPayment confirms the intent identified by clientSecret with
	// the given payment method.
	ConfirmPayment(ctx context.Context, clientSecret, paymentMethodID string) (*PaymentResult, error)
}

// PaymentStatusSucceeded is the gateway status that allows an appointment
// to be confirmed.
const PaymentStatusSucceeded = "succeeded"
