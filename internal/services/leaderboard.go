package services

import (
	"math"
	"time"

	"github.com/pushp314/ecotrack-backend/internal/database"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"github.com/pushp314/ecotrack-backend/pkg/errors"
	"github.com/pushp314/ecotrack-backend/pkg/logger"
	"gorm.io/gorm"
)

// impactScore = round(totalOffset * 10). Fixed business rule, do not tune.
const impactScoreMultiplier = 10

var leaderboardCacheTTL = 30 * time.Second

// RecomputeLeaderboard rebuilds a user's (user, period) entry from their
// VERIFIED activity history. It is idempotent and convergent: recomputing over
// an unchanged activity set leaves the stored entry untouched.
func RecomputeLeaderboard(userID string, period models.LeaderboardPeriod) (*models.LeaderboardEntry, error) {
	if !period.IsValid() {
		return nil, errors.InvalidInput("Unrecognized leaderboard period: " + string(period))
	}

	var user models.User
	if err := database.DB.Select("id").First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("User not found")
		}
		return nil, errors.StorageUnavailable(err)
	}

	query := database.DB.Model(&models.Activity{}).
		Where("user_id = ? AND verification_status = ?", userID, models.VerificationVerified)
	if period == models.PeriodMonthly {
		query = query.Where("created_at >= ?", startOfMonth(time.Now()))
	}

	var activities []models.Activity
	if err := query.Find(&activities).Error; err != nil {
		return nil, errors.StorageUnavailable(err)
	}

	computed := models.LeaderboardEntry{
		UserID: userID,
		Period: period,
	}
	for i := range activities {
		a := &activities[i]
		computed.TotalCarbonOffset += a.CarbonOffset
		computed.ImpactScore += int(math.Round(a.CarbonOffset * impactScoreMultiplier))

		switch a.Type {
		case models.ActivityTreePlanting:
			computed.TreesPlanted += a.TreeCount()
		case models.ActivityPlasticRecycling:
			computed.PlasticRecycled += a.RecycledWeight()
		}
	}

	var entry models.LeaderboardEntry
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&entry, "user_id = ? AND period = ?", userID, period).Error
		switch err {
		case nil:
			if statsEqual(&entry, &computed) {
				// Unchanged underlying data: leave the row byte-identical.
				return nil
			}
			res := tx.Model(&models.LeaderboardEntry{}).
				Where("user_id = ? AND period = ?", userID, period).
				Updates(map[string]interface{}{
					"trees_planted":       computed.TreesPlanted,
					"plastic_recycled":    computed.PlasticRecycled,
					"total_carbon_offset": computed.TotalCarbonOffset,
					"impact_score":        computed.ImpactScore,
					"last_updated":        time.Now(),
				})
			if res.Error != nil {
				return errors.StorageUnavailable(res.Error)
			}
			return tx.First(&entry, "user_id = ? AND period = ?", userID, period).Error
		case gorm.ErrRecordNotFound:
			computed.LastUpdated = time.Now()
			if err := tx.Create(&computed).Error; err != nil {
				return errors.StorageUnavailable(err)
			}
			entry = computed
			return nil
		default:
			return errors.StorageUnavailable(err)
		}
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.StorageUnavailable(err)
	}

	if err := database.CacheInvalidate(database.CacheKey("leaderboard", period, "*")); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate leaderboard cache")
	}

	return &entry, nil
}

// GetLeaderboard returns up to limit entries for a period, ordered by
// (impactScore, totalCarbonOffset, treesPlanted, plasticRecycled) descending
// with user id as the stable residual tie-break. Ranks are assigned here,
// never stored: each call is a fresh snapshot of the current entries.
func GetLeaderboard(period models.LeaderboardPeriod, limit int) ([]models.LeaderboardEntry, error) {
	if !period.IsValid() {
		return nil, errors.InvalidInput("Unrecognized leaderboard period: " + string(period))
	}
	if limit <= 0 {
		limit = 10
	}

	cacheKey := database.CacheKey("leaderboard", period, limit)
	var cached []models.LeaderboardEntry
	if err := database.CacheGet(cacheKey, &cached); err == nil {
		return cached, nil
	}

	var entries []models.LeaderboardEntry
	err := database.DB.Model(&models.LeaderboardEntry{}).
		Preload("User").
		Where("period = ?", period).
		Order("impact_score desc, total_carbon_offset desc, trees_planted desc, plastic_recycled desc, user_id asc").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, errors.StorageUnavailable(err)
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}

	if err := database.CacheSet(cacheKey, entries, leaderboardCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache leaderboard")
	}

	return entries, nil
}

func statsEqual(a, b *models.LeaderboardEntry) bool {
	return a.TreesPlanted == b.TreesPlanted &&
		a.PlasticRecycled == b.PlasticRecycled &&
		a.TotalCarbonOffset == b.TotalCarbonOffset &&
		a.ImpactScore == b.ImpactScore
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
