package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/singul69/My-chat-app/internal/models"
)

// Memory is the map-backed Store used by tests and by database-less local
// runs. A single mutex guards all state; Transact holds it for the whole
// callback, so no other goroutine can observe intermediate state. There is
// no rollback: writes made before a callback fails stay applied, and
// multi-write callbacks must order their writes so a partial run leaves
// acceptable state.
type Memory struct {
	mu sync.RWMutex

	users        map[uuid.UUID]models.User
	userOrder    []uuid.UUID
	canned       []models.CannedMessage
	userMessages []models.UserMessage
	payments     map[uuid.UUID]models.Payment
	paymentOrder []uuid.UUID
	config       *models.AppConfig

	// Insertion counter keeps ordering stable even when two rows land in
	// the same wall-clock instant.
	seq int64
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[uuid.UUID]models.User),
		payments: make(map[uuid.UUID]models.Payment),
	}
}

func (m *Memory) now() time.Time {
	m.seq++
	return time.Now().Add(time.Duration(m.seq) * time.Microsecond)
}

// --- locked Store methods ---

func (m *Memory) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createUser(user)
}

func (m *Memory) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getUser(id)
}

func (m *Memory) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getUserBy(func(u models.User) bool { return u.Username == username })
}

func (m *Memory) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getUserBy(func(u models.User) bool { return u.Email == email })
}

func (m *Memory) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listUsers(), nil
}

func (m *Memory) SetUserPremium(ctx context.Context, id uuid.UUID, premium bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setUserPremium(id, premium)
}

func (m *Memory) CreateCannedMessage(ctx context.Context, msg *models.CannedMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCannedMessage(msg)
}

func (m *Memory) ListCannedMessages(ctx context.Context) ([]models.CannedMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listCannedMessages(), nil
}

func (m *Memory) CreateUserMessage(ctx context.Context, msg *models.UserMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createUserMessage(msg)
}

func (m *Memory) ListUserMessages(ctx context.Context, userID uuid.UUID) ([]models.UserMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listUserMessages(userID), nil
}

func (m *Memory) CreatePayment(ctx context.Context, payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createPayment(payment)
}

func (m *Memory) GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getPayment(id)
}

func (m *Memory) SetPaymentVerified(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setPaymentVerified(id)
}

func (m *Memory) ListPayments(ctx context.Context) ([]models.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listPayments(), nil
}

func (m *Memory) GetAppConfig(ctx context.Context) (*models.AppConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getAppConfig()
}

func (m *Memory) SaveAppConfig(ctx context.Context, cfg *models.AppConfig) (*models.AppConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveAppConfig(cfg)
}

func (m *Memory) Transact(ctx context.Context, fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(memoryTx{m})
}

// memoryTx is the view handed to Transact callbacks. The outer lock is
// already held, so it dispatches straight to the unlocked internals.
type memoryTx struct {
	m *Memory
}

func (t memoryTx) CreateUser(ctx context.Context, user *models.User) error {
	return t.m.createUser(user)
}

func (t memoryTx) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return t.m.getUser(id)
}

func (t memoryTx) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return t.m.getUserBy(func(u models.User) bool { return u.Username == username })
}

func (t memoryTx) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return t.m.getUserBy(func(u models.User) bool { return u.Email == email })
}

func (t memoryTx) ListUsers(ctx context.Context) ([]models.User, error) {
	return t.m.listUsers(), nil
}

func (t memoryTx) SetUserPremium(ctx context.Context, id uuid.UUID, premium bool) error {
	return t.m.setUserPremium(id, premium)
}

func (t memoryTx) CreateCannedMessage(ctx context.Context, msg *models.CannedMessage) error {
	return t.m.createCannedMessage(msg)
}

func (t memoryTx) ListCannedMessages(ctx context.Context) ([]models.CannedMessage, error) {
	return t.m.listCannedMessages(), nil
}

func (t memoryTx) CreateUserMessage(ctx context.Context, msg *models.UserMessage) error {
	return t.m.createUserMessage(msg)
}

func (t memoryTx) ListUserMessages(ctx context.Context, userID uuid.UUID) ([]models.UserMessage, error) {
	return t.m.listUserMessages(userID), nil
}

func (t memoryTx) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return t.m.createPayment(payment)
}

func (t memoryTx) GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return t.m.getPayment(id)
}

func (t memoryTx) SetPaymentVerified(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return t.m.setPaymentVerified(id)
}

func (t memoryTx) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return t.m.listPayments(), nil
}

func (t memoryTx) GetAppConfig(ctx context.Context) (*models.AppConfig, error) {
	return t.m.getAppConfig()
}

func (t memoryTx) SaveAppConfig(ctx context.Context, cfg *models.AppConfig) (*models.AppConfig, error) {
	return t.m.saveAppConfig(cfg)
}

func (t memoryTx) Transact(ctx context.Context, fn func(Store) error) error {
	// Already inside the outer lock; nested transactions just run inline.
	return fn(t)
}

// --- unlocked internals ---

func (m *Memory) createUser(user *models.User) error {
	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = m.now()
	}
	m.users[user.ID] = *user
	m.userOrder = append(m.userOrder, user.ID)
	return nil
}

func (m *Memory) getUser(id uuid.UUID) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m *Memory) getUserBy(match func(models.User) bool) (*models.User, error) {
	for _, id := range m.userOrder {
		if user := m.users[id]; match(user) {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) listUsers() []models.User {
	users := make([]models.User, 0, len(m.userOrder))
	for i := len(m.userOrder) - 1; i >= 0; i-- {
		users = append(users, m.users[m.userOrder[i]])
	}
	return users
}

func (m *Memory) setUserPremium(id uuid.UUID, premium bool) error {
	user, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	user.IsPremium = premium
	m.users[id] = user
	return nil
}

func (m *Memory) createCannedMessage(msg *models.CannedMessage) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = m.now()
	}
	m.canned = append(m.canned, *msg)
	return nil
}

func (m *Memory) listCannedMessages() []models.CannedMessage {
	msgs := make([]models.CannedMessage, 0, len(m.canned))
	for i := len(m.canned) - 1; i >= 0; i-- {
		msgs = append(msgs, m.canned[i])
	}
	return msgs
}

func (m *Memory) createUserMessage(msg *models.UserMessage) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = m.now()
	}
	m.userMessages = append(m.userMessages, *msg)
	return nil
}

func (m *Memory) listUserMessages(userID uuid.UUID) []models.UserMessage {
	var msgs []models.UserMessage
	for _, msg := range m.userMessages {
		if msg.UserID == userID {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func (m *Memory) createPayment(payment *models.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = m.now()
	}
	m.payments[payment.ID] = *payment
	m.paymentOrder = append(m.paymentOrder, payment.ID)
	return nil
}

func (m *Memory) getPayment(id uuid.UUID) (*models.Payment, error) {
	payment, ok := m.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &payment, nil
}

func (m *Memory) setPaymentVerified(id uuid.UUID) (*models.Payment, error) {
	payment, ok := m.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	payment.Verified = true
	m.payments[id] = payment
	return &payment, nil
}

func (m *Memory) listPayments() []models.Payment {
	payments := make([]models.Payment, 0, len(m.paymentOrder))
	for i := len(m.paymentOrder) - 1; i >= 0; i-- {
		payments = append(payments, m.payments[m.paymentOrder[i]])
	}
	return payments
}

func (m *Memory) getAppConfig() (*models.AppConfig, error) {
	if m.config == nil {
		return nil, ErrNotFound
	}
	cfg := *m.config
	return &cfg, nil
}

func (m *Memory) saveAppConfig(cfg *models.AppConfig) (*models.AppConfig, error) {
	if m.config != nil {
		cfg.ID = m.config.ID
	} else if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	cfg.UpdatedAt = m.now()
	saved := *cfg
	m.config = &saved
	return cfg, nil
}
