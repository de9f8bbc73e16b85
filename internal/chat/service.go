// Package chat implements the reply selection engine: given a submitted
// chat turn it picks a canned companion reply gated by the sender's premium
// entitlement and resolved for the sender's audience.
package chat

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/singul69/My-chat-app/internal/metrics"
	"github.com/singul69/My-chat-app/internal/models"
	"github.com/singul69/My-chat-app/internal/store"
)

var (
	ErrEmptyMessage    = errors.New("message text must not be empty")
	ErrUnknownGender   = errors.New("unknown gender")
	ErrMissingText     = errors.New("at least one audience text is required")
	ErrMissingCategory = errors.New("category is required")
)

// Rand is the randomness seam for reply selection. Tests inject a fixed
// source; production uses math/rand.
type Rand interface {
	Intn(n int) int
}

type mathRand struct{}

func (mathRand) Intn(n int) int { return rand.Intn(n) }

// Service selects and persists companion replies.
type Service struct {
	store store.Store
	rand  Rand
}

// NewService builds a Service. A nil rng falls back to math/rand.
func NewService(st store.Store, rng Rand) *Service {
	if rng == nil {
		rng = mathRand{}
	}
	return &Service{store: st, rand: rng}
}

// SubmitUserMessage persists the human turn and then, best effort, one
// synthetic companion reply:
//
//  1. the eligible canned pool is loaded (premium rows only for premium
//     senders);
//  2. one row is picked uniformly at random;
//  3. the sender's audience half is resolved;
//  4. a non-empty resolved text becomes a second persisted turn.
//
// An empty pool or an empty resolved field is a silent no-op, not an error.
// The human turn is returned either way; clients discover the reply by
// polling. If the reply insert fails after the human turn committed, the
// human turn stays and the error is surfaced.
func (s *Service) SubmitUserMessage(ctx context.Context, user *models.User, text, imageURL string) (*models.UserMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	audience, err := audienceFor(user.Gender)
	if err != nil {
		return nil, err
	}

	turn := &models.UserMessage{
		UserID:        user.ID,
		Message:       text,
		ImageURL:      imageURL,
		IsUserMessage: true,
	}
	if err := s.store.CreateUserMessage(ctx, turn); err != nil {
		return nil, fmt.Errorf("persisting chat turn: %w", err)
	}
	metrics.Registry().ChatTurns.Inc()

	pool, err := s.EligibleMessages(ctx, user.IsPremium)
	if err != nil {
		return turn, fmt.Errorf("loading reply pool: %w", err)
	}
	if len(pool) == 0 {
		metrics.Registry().Replies.WithLabelValues(metrics.ReplyMissEmptyPool).Inc()
		return turn, nil
	}

	picked := pool[s.rand.Intn(len(pool))]
	replyText, replyImage := resolve(picked, audience)
	if replyText == "" {
		// The chosen row has no text for this audience; selection missed.
		metrics.Registry().Replies.WithLabelValues(metrics.ReplyMissEmptyField).Inc()
		return turn, nil
	}

	reply := &models.UserMessage{
		UserID:        user.ID,
		Message:       replyText,
		ImageURL:      replyImage,
		IsUserMessage: false,
	}
	if err := s.store.CreateUserMessage(ctx, reply); err != nil {
		return turn, fmt.Errorf("persisting reply: %w", err)
	}
	metrics.Registry().Replies.WithLabelValues(metrics.ReplySent).Inc()
	return turn, nil
}

// EligibleMessages returns the canned pool a caller with the given
// entitlement may receive, newest first. Premium callers see everything;
// free callers never see premium rows.
func (s *Service) EligibleMessages(ctx context.Context, isPremium bool) ([]models.CannedMessage, error) {
	all, err := s.store.ListCannedMessages(ctx)
	if err != nil {
		return nil, err
	}
	if isPremium {
		return all, nil
	}
	eligible := make([]models.CannedMessage, 0, len(all))
	for _, msg := range all {
		if !msg.IsPremium {
			eligible = append(eligible, msg)
		}
	}
	return eligible, nil
}

// History returns the caller's chat turns, oldest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID) ([]models.UserMessage, error) {
	return s.store.ListUserMessages(ctx, userID)
}

// CreateCannedMessage adds a reply template. Templates are immutable once
// created; there is no edit or delete path.
func (s *Service) CreateCannedMessage(ctx context.Context, msg *models.CannedMessage) error {
	if strings.TrimSpace(msg.Category) == "" {
		return ErrMissingCategory
	}
	if msg.ForBoysMessage == "" && msg.ForGirlsMessage == "" {
		return ErrMissingText
	}
	return s.store.CreateCannedMessage(ctx, msg)
}
