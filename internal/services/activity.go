package services

import (
	"github.com/pushp314/ecotrack-backend/internal/database"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"github.com/pushp314/ecotrack-backend/pkg/errors"
	"github.com/pushp314/ecotrack-backend/pkg/logger"
	"gorm.io/gorm"
)

// RecordActivity persists a new eco-action in PENDING state. It never mints a
// credit; that happens explicitly via the ledger once the activity is verified.
func RecordActivity(userID string, activityType models.ActivityType, carbonOffset float64, location, metadata *string) (*models.Activity, error) {
	if !activityType.IsValid() {
		return nil, errors.InvalidInput("Unrecognized activity type: " + string(activityType))
	}
	if carbonOffset <= 0 {
		return nil, errors.InvalidInput("Carbon offset must be positive")
	}

	var user models.User
	if err := database.DB.Select("id").First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("User not found")
		}
		return nil, errors.StorageUnavailable(err)
	}

	activity := models.Activity{
		UserID:             userID,
		Type:               activityType,
		CarbonOffset:       carbonOffset,
		Location:           location,
		Metadata:           metadata,
		VerificationStatus: models.VerificationPending,
	}

	if err := database.DB.Create(&activity).Error; err != nil {
		return nil, errors.StorageUnavailable(err)
	}

	return &activity, nil
}

// VerifyActivity transitions PENDING -> VERIFIED. Re-verifying an already
// verified activity is a no-op, not an error. On a successful transition the
// owner's leaderboard stats are refreshed and badge rules re-evaluated;
// both are convergent, so a failure there does not fail the verification.
func VerifyActivity(activityID string) (*models.Activity, error) {
	activity, err := setVerificationStatus(activityID, models.VerificationVerified)
	if err != nil {
		return nil, err
	}

	refreshUserStats(activity.UserID)
	return activity, nil
}

// RejectActivity transitions PENDING -> REJECTED. Idempotent like verification.
func RejectActivity(activityID string) (*models.Activity, error) {
	return setVerificationStatus(activityID, models.VerificationRejected)
}

func setVerificationStatus(activityID string, target models.VerificationStatus) (*models.Activity, error) {
	var activity models.Activity
	if err := database.DB.First(&activity, "id = ?", activityID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("Activity not found")
		}
		return nil, errors.StorageUnavailable(err)
	}

	if activity.VerificationStatus == target {
		return &activity, nil
	}
	if activity.VerificationStatus != models.VerificationPending {
		return nil, errors.InvalidState("Activity is already " + string(activity.VerificationStatus))
	}

	// Compare-and-set on status so two racing reviewers resolve to one writer.
	res := database.DB.Model(&models.Activity{}).
		Where("id = ? AND verification_status = ?", activityID, models.VerificationPending).
		Update("verification_status", target)
	if res.Error != nil {
		return nil, errors.StorageUnavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost the race; reload to see where it landed.
		if err := database.DB.First(&activity, "id = ?", activityID).Error; err != nil {
			return nil, errors.StorageUnavailable(err)
		}
		if activity.VerificationStatus == target {
			return &activity, nil
		}
		return nil, errors.InvalidState("Activity is already " + string(activity.VerificationStatus))
	}

	activity.VerificationStatus = target
	return &activity, nil
}

// refreshUserStats recomputes leaderboard entries and re-runs badge rules for
// a user. Eventual-consistency path: errors are logged, never propagated.
func refreshUserStats(userID string) {
	for _, period := range []models.LeaderboardPeriod{models.PeriodAllTime, models.PeriodMonthly} {
		if _, err := RecomputeLeaderboard(userID, period); err != nil {
			logger.Error().Err(err).Str("user_id", userID).Str("period", string(period)).Msg("Leaderboard recompute failed")
		}
	}
	if _, err := EvaluateBadges(userID); err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Badge evaluation failed")
	}
}
