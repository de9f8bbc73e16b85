// Package billing records UPI payment claims and drives the
// pending→verified transition that upgrades the owning account to premium.
package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/singul69/My-chat-app/internal/metrics"
	"github.com/singul69/My-chat-app/internal/models"
	"github.com/singul69/My-chat-app/internal/store"
)

var ErrInvalidAmount = errors.New("amount must be a positive whole number")

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// CreatePayment records a pending payment claim. The amount is not checked
// against any price list; verification is a manual admin judgement.
func (s *Service) CreatePayment(ctx context.Context, userID uuid.UUID, amount int64, transactionID string) (*models.Payment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	payment := &models.Payment{
		UserID:        userID,
		Amount:        amount,
		TransactionID: transactionID,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("persisting payment: %w", err)
	}
	metrics.Registry().PaymentsCreated.Inc()
	return payment, nil
}

// VerifyPayment marks the payment verified and flips the owning user to
// premium inside one storage transaction; a verified payment whose owner is
// still free must never be observable. The transition is one-directional and
// idempotent: re-verifying re-asserts both flags and never demotes anyone.
// Unknown ids surface store.ErrNotFound.
func (s *Service) VerifyPayment(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	var verified *models.Payment
	err := s.store.Transact(ctx, func(tx store.Store) error {
		payment, err := tx.SetPaymentVerified(ctx, paymentID)
		if err != nil {
			return err
		}
		if err := tx.SetUserPremium(ctx, payment.UserID, true); err != nil {
			return fmt.Errorf("upgrading user %s: %w", payment.UserID, err)
		}
		verified = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.Registry().PaymentsVerified.Inc()
	return verified, nil
}

// ListPayments returns every payment, newest first, for the admin console.
func (s *Service) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return s.store.ListPayments(ctx)
}
