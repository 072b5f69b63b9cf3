package main

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/macrolog/backend/config"
	"github.com/macrolog/backend/internal/database"
	"github.com/macrolog/backend/internal/models"
)

// Seeds a couple of demo accounts with food entries for local
// development. Existing usernames are left alone, so reruns are safe.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	seeds := []struct {
		username string
		entries  []models.FoodEntry
	}{
		{
			username: "demo",
			entries: []models.FoodEntry{
				{FoodName: "Egg", Ingredients: "egg", Calories: 78, Protein: 6, Carbs: 0.6, Fats: 5},
				{FoodName: "Oatmeal", Ingredients: "oats, milk", Calories: 150, Protein: 5, Carbs: 27, Fats: 3},
			},
		},
		{
			username: "demo2",
			entries:  nil,
		},
	}

	for _, s := range seeds {
		var existing models.User
		if err := db.Where("username = ?", s.username).First(&existing).Error; err == nil {
			log.Printf("User %s already exists, skipping", s.username)
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to look up user %s: %v", s.username, err)
		}

		user := models.User{Username: s.username, PasswordHash: string(hash)}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", s.username, err)
		}

		for _, entry := range s.entries {
			entry.UserID = user.ID
			if err := db.Create(&entry).Error; err != nil {
				log.Fatalf("Failed to create entry for %s: %v", s.username, err)
			}
		}
		log.Printf("Seeded user %s with %d entries (password Demo1234)", s.username, len(s.entries))
	}
}
