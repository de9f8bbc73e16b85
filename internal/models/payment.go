package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is a user's claim that a UPI transfer happened. It starts
// unverified; an administrator's verify action is the only mutation, and it
// is one-directional. Amount is a whole number in the app currency.
type Payment struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Amount        int64     `json:"amount" gorm:"not null"`
	Verified      bool      `json:"verified" gorm:"not null;default:false"`
	TransactionID string    `json:"transactionId"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (p *Payment) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
