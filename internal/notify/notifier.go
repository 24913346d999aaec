// Package notify delivers confirmation emails to registrants. Delivery is
// best-effort: intake never fails because mail could not be sent.
package notify

import "context"

// Confirmation identifies the recipient of a registration confirmation.
type Confirmation struct {
	Email     string
	FirstName string
	LastName  string
}

// Sender delivers a single confirmation email.
type Sender interface {
	Send(ctx context.Context, c Confirmation) error
}
