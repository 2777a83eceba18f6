package services

import (
	"testing"

	"github.com/pushp314/ecotrack-backend/internal/database"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"github.com/pushp314/ecotrack-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordActivity(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "recorder")

	activity, err := RecordActivity(user.ID, models.ActivityTreePlanting, 0.5, nil, strptr(`{"treeCount":3}`))
	require.NoError(t, err)
	assert.Equal(t, models.VerificationPending, activity.VerificationStatus)
	assert.Equal(t, user.ID, activity.UserID)
	assert.Equal(t, 0.5, activity.CarbonOffset)

	// Recording never mints a credit by itself
	var creditCount int64
	database.DB.Model(&models.CarbonCredit{}).Count(&creditCount)
	assert.Equal(t, int64(0), creditCount)
}

func TestRecordActivity_Invalid(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "recorder")

	_, err := RecordActivity(user.ID, "SKY_DIVING", 1, nil, nil)
	assert.True(t, errors.IsKind(err, errors.KindInvalidInput))

	_, err = RecordActivity(user.ID, models.ActivityTreePlanting, 0, nil, nil)
	assert.True(t, errors.IsKind(err, errors.KindInvalidInput))

	_, err = RecordActivity(user.ID, models.ActivityTreePlanting, -2, nil, nil)
	assert.True(t, errors.IsKind(err, errors.KindInvalidInput))

	_, err = RecordActivity("missing-user", models.ActivityTreePlanting, 1, nil, nil)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}

func TestVerifyActivity(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "verifier")

	activity, err := RecordActivity(user.ID, models.ActivityTreePlanting, 0.5, nil, strptr(`{"treeCount":3}`))
	require.NoError(t, err)

	verified, err := VerifyActivity(activity.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationVerified, verified.VerificationStatus)

	// Verification refreshes the owner's leaderboard stats
	var entry models.LeaderboardEntry
	require.NoError(t, database.DB.First(&entry, "user_id = ? AND period = ?", user.ID, models.PeriodAllTime).Error)
	assert.Equal(t, 3, entry.TreesPlanted)
	assert.Equal(t, 0.5, entry.TotalCarbonOffset)
	assert.Equal(t, 5, entry.ImpactScore)
}

func TestVerifyActivity_Idempotent(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "verifier")

	activity, err := RecordActivity(user.ID, models.ActivityPlasticRecycling, 1, nil, nil)
	require.NoError(t, err)

	_, err = VerifyActivity(activity.ID)
	require.NoError(t, err)

	// Re-verifying an already verified activity is a no-op, not an error
	again, err := VerifyActivity(activity.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationVerified, again.VerificationStatus)
}

func TestVerifyActivity_NotFound(t *testing.T) {
	setupTestDB(t)

	_, err := VerifyActivity("missing-activity")
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}

func TestRejectActivity(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "verifier")

	activity, err := RecordActivity(user.ID, models.ActivityTreePlanting, 1, nil, nil)
	require.NoError(t, err)

	rejected, err := RejectActivity(activity.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationRejected, rejected.VerificationStatus)

	// A rejected activity cannot be verified afterwards
	_, err = VerifyActivity(activity.ID)
	assert.True(t, errors.IsKind(err, errors.KindInvalidState))
}
