package seeds

import (
	"log"
	"time"

	"github.com/pushp314/ecotrack-backend/internal/database"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// SeedUsers creates demo accounts for local development.
func SeedUsers() {
	log.Println("Seeding demo users...")

	users := []models.User{
		{
			Email:         "admin@ecotrack.dev",
			Username:      "admin",
			Role:          models.RoleAdmin,
			WalletAddress: "0x0000000000000000000000000000000000000001",
		},
		{
			Email:         "greta@ecotrack.dev",
			Username:      "greta",
			Role:          models.RoleIndividual,
			WalletAddress: "0x0000000000000000000000000000000000000002",
		},
		{
			Email:         "acme@ecotrack.dev",
			Username:      "acme_corp",
			Role:          models.RoleOrganization,
			WalletAddress: "0x0000000000000000000000000000000000000003",
		},
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash demo password: %v", err)
		return
	}

	for _, u := range users {
		var existing models.User
		if err := database.DB.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			continue
		}

		u.Password = string(hashed)
		if err := database.DB.Create(&u).Error; err != nil {
			log.Printf("Failed to create user %s: %v", u.Username, err)
			continue
		}

		for _, period := range []models.LeaderboardPeriod{models.PeriodAllTime, models.PeriodMonthly} {
			entry := models.LeaderboardEntry{
				UserID:      u.ID,
				Period:      period,
				LastUpdated: time.Now(),
			}
			if err := database.DB.Create(&entry).Error; err != nil {
				log.Printf("Failed to create leaderboard entry for %s: %v", u.Username, err)
			}
		}

		log.Printf("User created: %s (%s)", u.Username, u.Role)
	}
}
