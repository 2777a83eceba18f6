package services

import (
	"time"

	"github.com/pushp314/ecotrack-backend/internal/database"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"github.com/pushp314/ecotrack-backend/pkg/errors"
	"gorm.io/gorm"
)

// Badge conditions are evaluated against the user's ALL_TIME leaderboard entry.
const (
	ConditionTotalOffset     = "total_offset"
	ConditionTreesPlanted    = "trees_planted"
	ConditionPlasticRecycled = "plastic_recycled"
	ConditionImpactScore     = "impact_score"
)

// EvaluateBadges grants every badge whose rule is newly satisfied by the
// user's current aggregated stats. A grant raced by another evaluation is
// treated as already awarded, never as an error.
func EvaluateBadges(userID string) ([]models.UserBadge, error) {
	var entry models.LeaderboardEntry
	if err := database.DB.First(&entry, "user_id = ? AND period = ?", userID, models.PeriodAllTime).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// No aggregated stats yet, nothing can have crossed a threshold.
			return nil, nil
		}
		return nil, errors.StorageUnavailable(err)
	}

	var existingBadgeIDs []string
	if err := database.DB.Model(&models.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &existingBadgeIDs).Error; err != nil {
		return nil, errors.StorageUnavailable(err)
	}

	existingSet := make(map[string]bool)
	for _, id := range existingBadgeIDs {
		existingSet[id] = true
	}

	stats := map[string]float64{
		ConditionTotalOffset:     entry.TotalCarbonOffset,
		ConditionTreesPlanted:    float64(entry.TreesPlanted),
		ConditionPlasticRecycled: entry.PlasticRecycled,
		ConditionImpactScore:     float64(entry.ImpactScore),
	}

	var badges []models.Badge
	if err := database.DB.Find(&badges).Error; err != nil {
		return nil, errors.StorageUnavailable(err)
	}

	var granted []models.UserBadge
	for _, badge := range badges {
		if existingSet[badge.ID] {
			continue
		}

		progress, ok := stats[badge.Condition]
		if !ok || progress < badge.Threshold {
			continue
		}

		userBadge := models.UserBadge{
			UserID:   userID,
			BadgeID:  badge.ID,
			EarnedAt: time.Now(),
		}
		if err := database.DB.Create(&userBadge).Error; err != nil {
			// The composite key makes a concurrent duplicate a constraint
			// violation; that grant already exists, so skip it. Anything
			// else is a real storage failure.
			if alreadyGranted(userID, badge.ID) {
				continue
			}
			return granted, errors.StorageUnavailable(err)
		}

		userBadge.Badge = badge
		granted = append(granted, userBadge)
	}

	return granted, nil
}

// AwardBadge grants a specific badge directly. Granting a badge the user
// already holds is idempotent: the existing grant is returned unchanged.
func AwardBadge(userID, badgeID string) (*models.UserBadge, error) {
	var user models.User
	if err := database.DB.Select("id").First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("User not found")
		}
		return nil, errors.StorageUnavailable(err)
	}

	var badge models.Badge
	if err := database.DB.First(&badge, "id = ?", badgeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("Badge not found")
		}
		return nil, errors.StorageUnavailable(err)
	}

	var existing models.UserBadge
	err := database.DB.First(&existing, "user_id = ? AND badge_id = ?", userID, badgeID).Error
	if err == nil {
		existing.Badge = badge
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, errors.StorageUnavailable(err)
	}

	userBadge := models.UserBadge{
		UserID:   userID,
		BadgeID:  badgeID,
		EarnedAt: time.Now(),
	}
	if err := database.DB.Create(&userBadge).Error; err != nil {
		if alreadyGranted(userID, badgeID) {
			var raced models.UserBadge
			if e := database.DB.First(&raced, "user_id = ? AND badge_id = ?", userID, badgeID).Error; e == nil {
				raced.Badge = badge
				return &raced, nil
			}
		}
		return nil, errors.StorageUnavailable(err)
	}

	userBadge.Badge = badge
	return &userBadge, nil
}

// GetUserBadges returns a user's grants, newest first.
func GetUserBadges(userID string) ([]models.UserBadge, error) {
	var userBadges []models.UserBadge
	err := database.DB.Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at desc").
		Find(&userBadges).Error
	if err != nil {
		return nil, errors.StorageUnavailable(err)
	}
	return userBadges, nil
}

func alreadyGranted(userID, badgeID string) bool {
	var count int64
	database.DB.Model(&models.UserBadge{}).
		Where("user_id = ? AND badge_id = ?", userID, badgeID).
		Count(&count)
	return count > 0
}
