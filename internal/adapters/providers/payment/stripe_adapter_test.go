package payment

import (
	"errors"
	"testing"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/healthhub/healthhub-backend/pkg/errors"
)

func TestIntentIDFromClientSecret(t *testing.T) {
	intentID, err := IntentIDFromClientSecret("pi_3Abc123_secret_xyz789")
	require.NoError(t, err)
	assert.Equal(t, "pi_3Abc123", intentID)
}

func TestIntentIDFromClientSecret_Malformed(t *testing.T) {
	for _, secret := range []string{"", "pi_3Abc123", "_secret_xyz"} {
		_, err := IntentIDFromClientSecret(secret)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	}
}

func TestTranslateStripeError_CardDeclined(t *testing.T) {
	cardErr := &stripe.Error{
		Type: stripe.ErrorTypeCard,
		Msg:  "Your card was declined.",
	}

	err := translateStripeError("failed to confirm payment", cardErr)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePaymentDeclined))
}

func TestTranslateStripeError_GatewayFailure(t *testing.T) {
	apiErr := &stripe.Error{Type: stripe.ErrorTypeAPI, Msg: "upstream hiccup"}
	assert.True(t, apperrors.IsType(translateStripeError("boom", apiErr), apperrors.ErrorTypePaymentGateway))

	plainErr := errors.New("connection reset")
	assert.True(t, apperrors.IsType(translateStripeError("boom", plainErr), apperrors.ErrorTypePaymentGateway))
}
