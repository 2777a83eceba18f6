package services

import (
	"testing"

	"github.com/pushp314/ecotrack-backend/internal/database"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"github.com/pushp314/ecotrack-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verifiedActivity(t *testing.T, userID string, activityType models.ActivityType, offset float64, metadata *string) {
	t.Helper()
	activity, err := RecordActivity(userID, activityType, offset, nil, metadata)
	require.NoError(t, err)
	_, err = VerifyActivity(activity.ID)
	require.NoError(t, err)
}

func TestRecomputeLeaderboard_Scoring(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "planter")

	// 0.5 tons, TREE_PLANTING, treeCount 3 => trees +3, offset +0.5, score +5
	verifiedActivity(t, user.ID, models.ActivityTreePlanting, 0.5, strptr(`{"treeCount":3}`))

	entry, err := RecomputeLeaderboard(user.ID, models.PeriodAllTime)
	require.NoError(t, err)
	assert.Equal(t, 3, entry.TreesPlanted)
	assert.Equal(t, 0.5, entry.TotalCarbonOffset)
	assert.Equal(t, 5, entry.ImpactScore)
	assert.Equal(t, float64(0), entry.PlasticRecycled)
}

func TestRecomputeLeaderboard_MetadataDefaults(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "recycler")

	// Absent metadata defaults to 1 unit for the type-specific accumulator
	verifiedActivity(t, user.ID, models.ActivityTreePlanting, 1.2, nil)
	verifiedActivity(t, user.ID, models.ActivityPlasticRecycling, 0.3, nil)
	verifiedActivity(t, user.ID, models.ActivityPlasticRecycling, 0.4, strptr(`{"weight":7.5}`))

	entry, err := RecomputeLeaderboard(user.ID, models.PeriodAllTime)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.TreesPlanted)
	assert.Equal(t, 8.5, entry.PlasticRecycled)
	assert.InDelta(t, 1.9, entry.TotalCarbonOffset, 1e-9)
	assert.Equal(t, 12+3+4, entry.ImpactScore)
}

func TestRecomputeLeaderboard_OnlyVerified(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "mixed")

	verifiedActivity(t, user.ID, models.ActivityTreePlanting, 1, nil)

	pending, err := RecordActivity(user.ID, models.ActivityTreePlanting, 9, nil, nil)
	require.NoError(t, err)
	rejected, err := RecordActivity(user.ID, models.ActivityTreePlanting, 9, nil, nil)
	require.NoError(t, err)
	_, err = RejectActivity(rejected.ID)
	require.NoError(t, err)
	_ = pending

	entry, err := RecomputeLeaderboard(user.ID, models.PeriodAllTime)
	require.NoError(t, err)
	assert.Equal(t, 1.0, entry.TotalCarbonOffset)
	assert.Equal(t, 10, entry.ImpactScore)
}

func TestRecomputeLeaderboard_Idempotent(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "steady")

	verifiedActivity(t, user.ID, models.ActivityTreePlanting, 2.5, strptr(`{"treeCount":10}`))

	_, err := RecomputeLeaderboard(user.ID, models.PeriodAllTime)
	require.NoError(t, err)
	var first models.LeaderboardEntry
	require.NoError(t, database.DB.First(&first, "user_id = ? AND period = ?", user.ID, models.PeriodAllTime).Error)

	_, err = RecomputeLeaderboard(user.ID, models.PeriodAllTime)
	require.NoError(t, err)
	var second models.LeaderboardEntry
	require.NoError(t, database.DB.First(&second, "user_id = ? AND period = ?", user.ID, models.PeriodAllTime).Error)

	// Recomputing over unchanged activities leaves the stored row identical
	assert.Equal(t, first, second)
}

func TestRecomputeLeaderboard_Invalid(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "someone")

	_, err := RecomputeLeaderboard(user.ID, "QUARTERLY")
	assert.True(t, errors.IsKind(err, errors.KindInvalidInput))

	_, err = RecomputeLeaderboard("missing-user", models.PeriodAllTime)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}

func TestGetLeaderboard_Ordering(t *testing.T) {
	setupTestDB(t)
	low := createTestUser(t, "low")
	mid := createTestUser(t, "mid")
	top := createTestUser(t, "top")

	verifiedActivity(t, low.ID, models.ActivityPlasticRecycling, 0.5, nil)
	verifiedActivity(t, mid.ID, models.ActivityTreePlanting, 2, nil)
	verifiedActivity(t, top.ID, models.ActivityTreePlanting, 5, strptr(`{"treeCount":20}`))

	entries, err := GetLeaderboard(models.PeriodAllTime, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, top.ID, entries[0].UserID)
	assert.Equal(t, mid.ID, entries[1].UserID)
	assert.Equal(t, low.ID, entries[2].UserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestGetLeaderboard_TieBreak(t *testing.T) {
	setupTestDB(t)
	a := createTestUser(t, "tied_a")
	b := createTestUser(t, "tied_b")

	// Same impact score and offset; more trees planted ranks higher
	verifiedActivity(t, a.ID, models.ActivityTreePlanting, 1, strptr(`{"treeCount":2}`))
	verifiedActivity(t, b.ID, models.ActivityTreePlanting, 1, strptr(`{"treeCount":9}`))

	entries, err := GetLeaderboard(models.PeriodAllTime, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, b.ID, entries[0].UserID)
	assert.Equal(t, a.ID, entries[1].UserID)
}

func TestGetLeaderboard_Limit(t *testing.T) {
	setupTestDB(t)
	for _, name := range []string{"u1", "u2", "u3"} {
		u := createTestUser(t, name)
		verifiedActivity(t, u.ID, models.ActivityTreePlanting, 1, nil)
	}

	entries, err := GetLeaderboard(models.PeriodAllTime, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
