package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/ecotrack-backend/internal/config"
	"github.com/pushp314/ecotrack-backend/internal/database"
	"github.com/pushp314/ecotrack-backend/internal/middleware"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"github.com/pushp314/ecotrack-backend/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

// setupTestDB initializes an in-memory SQLite DB and test config for handler tests.
func setupTestDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("test")

	config.AppConfig = &config.Config{
		JWTSecret: "test_secret_key_12345",
	}

	dsn := fmt.Sprintf("file:ecotrack_handlers_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
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

// setupRouter builds the API router the same way cmd/server does, minus
// rate limiting and CORS.
func setupRouter() *gin.Engine {
	r := gin.New()
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", Register)
	auth.POST("/login", Login)

	users := api.Group("/users")
	users.GET("", ListUsers)
	users.GET("/:id", GetUser)
	users.GET("/:id/badges", GetUserBadges)

	activities := api.Group("/activities")
	activities.GET("", GetActivities)
	activities.POST("", middleware.AuthMiddleware(), CreateActivity)
	activities.PATCH("/:id/verify", middleware.AuthMiddleware(), middleware.AdminMiddleware(), VerifyActivity)
	activities.PATCH("/:id/reject", middleware.AuthMiddleware(), middleware.AdminMiddleware(), RejectActivity)

	credits := api.Group("/carbon-credits")
	credits.GET("", GetCarbonCredits)
	credits.POST("", middleware.AuthMiddleware(), CreateCarbonCredit)
	credits.POST("/:id/retire", middleware.AuthMiddleware(), RetireCarbonCredit)

	marketplace := api.Group("/marketplace")
	marketplace.GET("", GetOrders)
	marketplace.POST("", middleware.AuthMiddleware(), CreateOrder)
	marketplace.POST("/:id/cancel", middleware.AuthMiddleware(), CancelOrder)
	marketplace.POST("/:id/fill", middleware.AuthMiddleware(), FillOrder)

	leaderboard := api.Group("/leaderboard")
	leaderboard.GET("", GetLeaderboard)
	leaderboard.POST("", middleware.AuthMiddleware(), RecomputeLeaderboard)

	badges := api.Group("/badges")
	badges.GET("", GetBadges)
	badges.POST("", middleware.AuthMiddleware(), middleware.AdminMiddleware(), AwardBadge)

	return r
}

func performRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerTestUser registers a user through the API and returns their id and token.
func registerTestUser(t *testing.T, r *gin.Engine, username string) (string, string) {
	t.Helper()
	w := performRequest(r, "POST", "/api/auth/register", map[string]interface{}{
		"email":    username + "@example.com",
		"username": username,
		"password": "supersecret1",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to register %s: %d %s", username, w.Code, w.Body.String())
	}

	var resp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode register response: %v", err)
	}
	return resp.User.ID, resp.Token
}
