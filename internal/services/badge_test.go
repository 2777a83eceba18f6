package services

import (
	"testing"

	"github.com/pushp314/ecotrack-backend/internal/database"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"github.com/pushp314/ecotrack-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBadge(t *testing.T, name, condition string, threshold float64) *models.Badge {
	t.Helper()
	badge := models.Badge{
		Name:      name,
		Condition: condition,
		Threshold: threshold,
		Category:  models.BadgeCategoryImpact,
	}
	if err := database.DB.Create(&badge).Error; err != nil {
		t.Fatalf("Failed to create test badge %s: %v", name, err)
	}
	return &badge
}

func TestEvaluateBadges(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "achiever")
	createTestBadge(t, "Carbon Saver", ConditionTotalOffset, 1)
	createTestBadge(t, "Forest Builder", ConditionTreesPlanted, 50)

	verifiedActivity(t, user.ID, models.ActivityTreePlanting, 2, strptr(`{"treeCount":5}`))

	// Verification already ran evaluation: the offset badge is granted,
	// the trees badge threshold is not met
	badges, err := GetUserBadges(user.ID)
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, "Carbon Saver", badges[0].Badge.Name)

	// Re-evaluating grants nothing new
	granted, err := EvaluateBadges(user.ID)
	require.NoError(t, err)
	assert.Empty(t, granted)

	var count int64
	database.DB.Model(&models.UserBadge{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEvaluateBadges_CrossingThreshold(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "grower")
	createTestBadge(t, "Forest Builder", ConditionTreesPlanted, 10)

	verifiedActivity(t, user.ID, models.ActivityTreePlanting, 1, strptr(`{"treeCount":4}`))
	badges, err := GetUserBadges(user.ID)
	require.NoError(t, err)
	assert.Empty(t, badges)

	verifiedActivity(t, user.ID, models.ActivityTreePlanting, 1, strptr(`{"treeCount":7}`))
	badges, err = GetUserBadges(user.ID)
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, "Forest Builder", badges[0].Badge.Name)
}

func TestEvaluateBadges_NoStatsYet(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "newcomer")
	createTestBadge(t, "Carbon Saver", ConditionTotalOffset, 1)

	granted, err := EvaluateBadges(user.ID)
	require.NoError(t, err)
	assert.Empty(t, granted)
}

func TestAwardBadge_Idempotent(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "collector")
	badge := createTestBadge(t, "Pioneer", ConditionImpactScore, 1000)

	first, err := AwardBadge(user.ID, badge.ID)
	require.NoError(t, err)
	assert.Equal(t, badge.ID, first.BadgeID)

	// Awarding the same badge twice is idempotent: one record exists after
	second, err := AwardBadge(user.ID, badge.ID)
	require.NoError(t, err)
	assert.Equal(t, first.EarnedAt.Unix(), second.EarnedAt.Unix())

	var count int64
	database.DB.Model(&models.UserBadge{}).
		Where("user_id = ? AND badge_id = ?", user.ID, badge.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAwardBadge_NotFound(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "collector")

	_, err := AwardBadge(user.ID, "missing-badge")
	assert.True(t, errors.IsKind(err, errors.KindNotFound))

	_, err = AwardBadge("missing-user", "missing-badge")
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}
