package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/pushp314/ecotrack-backend/internal/database"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"github.com/pushp314/ecotrack-backend/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

// setupTestDB points database.DB at a fresh in-memory SQLite DB. A unique
// shared-cache name per test keeps gorm's connection pool on one database
// while isolating tests from each other.
func setupTestDB(t *testing.T) {
	t.Helper()
	logger.Init("test")

	dsn := fmt.Sprintf("file:ecotrack_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.CarbonCredit{},
		&models.MarketplaceOrder{},
		&models.LeaderboardEntry{},
		&models.Badge{},
		&models.UserBadge{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}

	database.DB = db
	database.Redis = nil
}

func createTestUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := models.User{
		Email:    username + "@example.com",
		Username: username,
		Role:     models.RoleIndividual,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user %s: %v", username, err)
	}
	return &user
}

func strptr(s string) *string {
	return &s
}
