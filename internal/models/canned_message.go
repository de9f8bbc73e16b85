package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CannedMessage is an admin-authored reply template. The two text/image
// pairs are audience halves of the same message; the reply engine reads
// exactly one half per recipient and never mixes them. Rows are immutable
// once created.
type CannedMessage struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ForBoysMessage   string    `json:"for_boys_message"`
	ForGirlsMessage  string    `json:"for_girls_message"`
	ForBoysImageURL  string    `json:"for_boys_image_url"`
	ForGirlsImageURL string    `json:"for_girls_image_url"`
	IsPremium        bool      `json:"isPremium" gorm:"not null;default:false"`
	Category         string    `json:"category" gorm:"not null;index"`
	CreatedAt        time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (m *CannedMessage) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
