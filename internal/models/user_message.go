package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserMessage is a single chat turn. IsUserMessage distinguishes the human
// turn from the synthetic companion reply. Display order is CreatedAt
// ascending per user.
type UserMessage struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Message       string    `json:"message" gorm:"not null"`
	ImageURL      string    `json:"imageUrl"`
	IsUserMessage bool      `json:"isUserMessage" gorm:"not null"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (m *UserMessage) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
