package service

import (
	"context"
	"log/slog"
)

// ResetDelivery hands an issued reset token to its recipient.
// The two strategies reflect the two ways a reset token can reach the
// account owner: returned synchronously in the response body, or
// dispatched through an out-of-band channel.
type ResetDelivery interface {
	// Deliver hands off the token and returns what the API response
	// should contain: the token itself for synchronous delivery, empty
	// for out-of-band delivery.
	Deliver(ctx context.Context, email, resetToken string) (DeliveryResult, error)
}

// DeliveryResult is what the caller is told after a reset request.
type DeliveryResult struct {
	// Token is the reset token when delivery is synchronous, empty otherwise
	Token string
	// Message is a human-readable instruction for the caller
	Message string
}

// SyncDelivery returns the reset token directly in the response body.
// Anyone with API access at that moment can see it; the short reset
// token lifetime limits the exposure window. This is the active
// strategy, matching the behavior the API's clients expect.
type SyncDelivery struct{}

// Deliver implements ResetDelivery.
func (SyncDelivery) Deliver(_ context.Context, _ string, resetToken string) (DeliveryResult, error) {
	return DeliveryResult{
		Token:   resetToken,
		Message: "Use this token to reset your password",
	}, nil
}

// LogDelivery stands in for an out-of-band channel (e.g. email dispatch):
// the token never appears in the response. The token itself is not
// logged, only the fact that one was issued.
type LogDelivery struct {
	Logger *slog.Logger
}

// Deliver implements ResetDelivery.
func (d LogDelivery) Deliver(ctx context.Context, email, _ string) (DeliveryResult, error) {
	d.Logger.InfoContext(ctx, "reset token issued for out-of-band delivery",
		slog.String("email", email))

	return DeliveryResult{
		Message: "Password reset instructions have been sent",
	}, nil
}
