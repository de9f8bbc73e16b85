package store

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/singul69/My-chat-app/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// Connect opens the Postgres database, runs migrations, and returns the
// production Store.
func Connect(dsn string) (Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.CannedMessage{},
		&models.UserMessage{},
		&models.Payment{},
		&models.AppConfig{},
	); err != nil {
		return nil, err
	}
	log.Println("Successfully connected to database")
	return &gormStore{db: db}, nil
}

// NewGorm wraps an already-open gorm handle.
func NewGorm(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

func (s *gormStore) CreateUser(ctx context.Context, user *models.User) error {
	return wrapErr(s.db.WithContext(ctx).Create(user).Error)
}

func (s *gormStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

func (s *gormStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

func (s *gormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

func (s *gormStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, wrapErr(err)
	}
	return users, nil
}

func (s *gormStore) SetUserPremium(ctx context.Context, id uuid.UUID, premium bool) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("is_premium", premium)
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) CreateCannedMessage(ctx context.Context, msg *models.CannedMessage) error {
	return wrapErr(s.db.WithContext(ctx).Create(msg).Error)
}

func (s *gormStore) ListCannedMessages(ctx context.Context) ([]models.CannedMessage, error) {
	var msgs []models.CannedMessage
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&msgs).Error; err != nil {
		return nil, wrapErr(err)
	}
	return msgs, nil
}

func (s *gormStore) CreateUserMessage(ctx context.Context, msg *models.UserMessage) error {
	return wrapErr(s.db.WithContext(ctx).Create(msg).Error)
}

func (s *gormStore) ListUserMessages(ctx context.Context, userID uuid.UUID) ([]models.UserMessage, error) {
	var msgs []models.UserMessage
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return msgs, nil
}

func (s *gormStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return wrapErr(s.db.WithContext(ctx).Create(payment).Error)
}

func (s *gormStore) GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &payment, nil
}

func (s *gormStore) SetPaymentVerified(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	res := s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ?", id).
		Update("verified", true)
	if res.Error != nil {
		return nil, wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetPayment(ctx, id)
}

func (s *gormStore) ListPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, wrapErr(err)
	}
	return payments, nil
}

func (s *gormStore) GetAppConfig(ctx context.Context) (*models.AppConfig, error) {
	var cfg models.AppConfig
	if err := s.db.WithContext(ctx).First(&cfg).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &cfg, nil
}

func (s *gormStore) SaveAppConfig(ctx context.Context, cfg *models.AppConfig) (*models.AppConfig, error) {
	existing, err := s.GetAppConfig(ctx)
	switch {
	case err == nil:
		// Save writes every column, so false toggles are not skipped as
		// zero values the way Updates would.
		cfg.ID = existing.ID
		if err := s.db.WithContext(ctx).Save(cfg).Error; err != nil {
			return nil, wrapErr(err)
		}
		return s.GetAppConfig(ctx)
	case errors.Is(err, ErrNotFound):
		if err := s.db.WithContext(ctx).Create(cfg).Error; err != nil {
			return nil, wrapErr(err)
		}
		return cfg, nil
	default:
		return nil, err
	}
}

func (s *gormStore) Transact(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
