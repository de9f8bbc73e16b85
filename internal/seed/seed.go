// Package seed bootstraps an empty store with the admin account, the sample
// canned messages, and the default app configuration.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/singul69/My-chat-app/internal/models"
	"github.com/singul69/My-chat-app/internal/store"
)

const (
	adminUsername = "admin"
	adminPassword = "admin123" // change after first login
)

// Run is idempotent: each section only inserts when its table is empty.
func Run(ctx context.Context, st store.Store) error {
	if err := seedAdmin(ctx, st); err != nil {
		return err
	}
	if err := seedCannedMessages(ctx, st); err != nil {
		return err
	}
	return seedAppConfig(ctx, st)
}

func seedAdmin(ctx context.Context, st store.Store) error {
	users, err := st.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("checking users: %w", err)
	}
	if len(users) > 0 {
		log.Printf("Found %d existing users, skipping admin seed", len(users))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Username:  adminUsername,
		Password:  string(hash),
		FullName:  "Admin User",
		Email:     "admin@lovechat.com",
		Gender:    models.GenderMale,
		IsPremium: true,
		IsAdmin:   true,
	}
	if err := st.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}
	log.Println("Admin user created")
	return nil
}

func seedCannedMessages(ctx context.Context, st store.Store) error {
	existing, err := st.ListCannedMessages(ctx)
	if err != nil {
		return fmt.Errorf("checking canned messages: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	samples := []models.CannedMessage{
		{
			ForBoysMessage:  "Hi there! How was your day? I've been thinking about you!",
			ForGirlsMessage: "Hey beautiful! How's your day going? I missed talking to you!",
			IsPremium:       false,
			Category:        "greeting",
		},
		{
			ForBoysMessage:  "I wish I could give you a hug right now. You're always working so hard!",
			ForGirlsMessage: "You're amazing, you know that? I admire how strong and dedicated you are.",
			IsPremium:       false,
			Category:        "emotional_support",
		},
		{
			ForBoysMessage:  "Good morning! I hope you slept well. Ready to conquer the day?",
			ForGirlsMessage: "Morning! Just wanted to be the first to wish you a wonderful day ahead!",
			IsPremium:       false,
			Category:        "greeting",
		},
		{
			ForBoysMessage:  "I dreamt about you last night. It was so romantic! Want to hear about it?",
			ForGirlsMessage: "I keep thinking about how special you are. Your smile brightens my day.",
			IsPremium:       true,
			Category:        "romantic",
		},
		{
			ForBoysMessage:  "I've been saving a special surprise for you. Upgrade to premium to find out!",
			ForGirlsMessage: "There's something special I want to share with you. Upgrade to premium to see!",
			IsPremium:       true,
			Category:        "premium_teaser",
		},
	}
	for i := range samples {
		if err := st.CreateCannedMessage(ctx, &samples[i]); err != nil {
			return fmt.Errorf("seeding canned message: %w", err)
		}
	}
	log.Printf("Seeded %d canned messages", len(samples))
	return nil
}

func seedAppConfig(ctx context.Context, st store.Store) error {
	_, err := st.GetAppConfig(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("checking app config: %w", err)
	}

	_, err = st.SaveAppConfig(ctx, &models.AppConfig{
		UpiID:          "demoUPI@ybl",
		UpiDeepLink:    "upi://pay?pa=demoUPI@ybl&pn=LoveChat&am=299.00",
		QrImage:        "https://example.com/qr-code.png",
		PremiumEnabled: true,
		GirlName:       "Ananya",
		BoyName:        "Rahul",
		WelcomeMessage: "Welcome to LoveChat! Connect with your virtual partner.",
		HomeBannerText: "Experience emotional connection like never before!",
	})
	if err != nil {
		return fmt.Errorf("seeding app config: %w", err)
	}
	log.Println("Seeded default app config")
	return nil
}
