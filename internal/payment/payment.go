package payment

import "context"

// Request describes a payment to collect from a member's phone.
type Request struct {
	PhoneNumber string
	Amount      int64
	Description string
}

// Receipt is the collaborator's answer for a completed payment.
type Receipt struct {
	TransactionID string
	Message       string
}

// Processor collects a payment before a donation is recorded. A returned
// error means nothing was charged and the message should reach the caller.
type Processor interface {
	Initiate(ctx context.Context, req Request) (Receipt, error)
}
