package main

import (
	"log"

	"github.com/pushp314/ecotrack-backend/internal/config"
	"github.com/pushp314/ecotrack-backend/internal/database"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"github.com/pushp314/ecotrack-backend/internal/seeds"
)

func main() {
	config.LoadConfig()
	database.Connect()

	err := database.DB.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.CarbonCredit{},
		&models.MarketplaceOrder{},
		&models.LeaderboardEntry{},
		&models.Badge{},
		&models.UserBadge{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	seeds.SeedBadges()
	seeds.SeedUsers()

	log.Println("Seeding complete")
}
