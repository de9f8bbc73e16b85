// Package store is the persistence boundary. It exposes record-level
// operations only; the eligibility filter and the verify→premium coupling
// live in the chat and billing services so behavior cannot drift between
// adapters.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/singul69/My-chat-app/internal/models"
)

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("already exists")
)

// Store is implemented by the Postgres adapter and by the in-memory adapter
// used in tests and database-less local runs.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	SetUserPremium(ctx context.Context, id uuid.UUID, premium bool) error

	// Canned messages. ListCannedMessages returns every row, newest first;
	// entitlement filtering is the reply engine's job.
	CreateCannedMessage(ctx context.Context, msg *models.CannedMessage) error
	ListCannedMessages(ctx context.Context) ([]models.CannedMessage, error)

	// Chat turns, oldest first per user.
	CreateUserMessage(ctx context.Context, msg *models.UserMessage) error
	ListUserMessages(ctx context.Context, userID uuid.UUID) ([]models.UserMessage, error)

	// Payments, newest first.
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	SetPaymentVerified(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListPayments(ctx context.Context) ([]models.Payment, error)

	// App config (single row).
	GetAppConfig(ctx context.Context) (*models.AppConfig, error)
	SaveAppConfig(ctx context.Context, cfg *models.AppConfig) (*models.AppConfig, error)

	// Transact runs fn against a view of the store inside one atomic unit
	// of work. The billing service uses it to bracket the two-flag
	// payment-verification transition.
	Transact(ctx context.Context, fn func(Store) error) error
}
