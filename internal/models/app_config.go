package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppConfig is the single-row application configuration: the UPI payment
// details shown on the premium page, companion display names, and the copy
// used on the home screen.
type AppConfig struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UpiID          string    `json:"upiId" gorm:"not null"`
	UpiDeepLink    string    `json:"upiDeepLink" gorm:"not null"`
	QrImage        string    `json:"qrImage" gorm:"not null"`
	PremiumEnabled bool      `json:"premiumEnabled" gorm:"not null;default:true"`
	GirlName       string    `json:"girlName" gorm:"not null;default:'Ananya'"`
	BoyName        string    `json:"boyName" gorm:"not null;default:'Rahul'"`
	WelcomeMessage string    `json:"welcomeMessage" gorm:"not null"`
	HomeBannerText string    `json:"homeBannerText" gorm:"not null"`
	UpdatedAt      time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (c *AppConfig) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
