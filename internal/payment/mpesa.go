package payment

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// MpesaSimulator stands in for the real M-Pesa STK push flow. It waits a
// short moment like the gateway would and then acknowledges the charge with
// a generated transaction reference.
type MpesaSimulator struct {
	Delay time.Duration
}

func NewMpesaSimulator() *MpesaSimulator {
	return &MpesaSimulator{Delay: 150 * time.Millisecond}
}

var _ Processor = (*MpesaSimulator)(nil)

func (m *MpesaSimulator) Initiate(ctx context.Context, req Request) (Receipt, error) {
	if req.Amount <= 0 {
		return Receipt{}, fmt.Errorf("amount must be positive")
	}

	select {
	case <-ctx.Done():
		return Receipt{}, fmt.Errorf("payment gateway timed out: %w", ctx.Err())
	case <-time.After(m.Delay):
	}

	return Receipt{
		TransactionID: fmt.Sprintf("MPESA-%06d", rand.IntN(1000000)),
		Message:       "Payment successful",
	}, nil
}
