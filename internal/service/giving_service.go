package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fellowship-server/internal/domain"
	"fellowship-server/internal/payment"
	"fellowship-server/internal/store"
)

// ErrPaymentFailed wraps a rejection from the payment collaborator. Nothing
// is recorded when it is returned.
var ErrPaymentFailed = errors.New("payment failed")

// DonationInput carries the fields accepted when giving.
type DonationInput struct {
	Amount      int64
	Purpose     string
	PhoneNumber string
}

// GivingService collects a payment and records the donation.
type GivingService interface {
	Donate(ctx context.Context, userID int64, input DonationInput) (*domain.Donation, error)
	History(ctx context.Context, userID int64) ([]domain.Donation, error)
}

type givingService struct {
	store     store.Store
	processor payment.Processor
}

func NewGivingService(st store.Store, processor payment.Processor) GivingService {
	return &givingService{store: st, processor: processor}
}

func (s *givingService) Donate(ctx context.Context, userID int64, input DonationInput) (*domain.Donation, error) {
	if input.Amount <= 0 {
		return nil, validationError("amount must be a positive integer")
	}
	if strings.TrimSpace(input.Purpose) == "" {
		return nil, validationError("purpose is required")
	}

	receipt, err := s.processor.Initiate(ctx, payment.Request{
		PhoneNumber: input.PhoneNumber,
		Amount:      input.Amount,
		Description: input.Purpose,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	donation := s.store.CreateDonation(domain.Donation{
		UserID:        &userID,
		Amount:        input.Amount,
		Purpose:       input.Purpose,
		Status:        domain.DonationStatusCompleted,
		TransactionID: &receipt.TransactionID,
	})
	return &donation, nil
}

func (s *givingService) History(ctx context.Context, userID int64) ([]domain.Donation, error) {
	return s.store.DonationsByUser(userID), nil
}
