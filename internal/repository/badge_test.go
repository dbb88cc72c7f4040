package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livejourney/api/internal/model"
	"github.com/livejourney/api/internal/testing/fixtures"
)

func TestBadgeListEmptyForNewUser(t *testing.T) {
	f := fixtures.New()

	badges, err := f.Badges.List(t.Context(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, badges)
}

func TestBadgeAppendKeepsAwardOrderPerUser(t *testing.T) {
	f := fixtures.New()
	earnedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := &model.EarnedBadge{Name: "첫 걸음", Difficulty: model.DifficultyLow, EarnedAt: earnedAt}
	second := &model.EarnedBadge{Name: "여행 시작", Difficulty: model.DifficultyHigh, EarnedAt: earnedAt.Add(time.Hour)}
	require.NoError(t, f.Badges.Append(t.Context(), "user-1", first))
	require.NoError(t, f.Badges.Append(t.Context(), "user-1", second))

	other := &model.EarnedBadge{Name: "첫 좋아요", Difficulty: model.DifficultyLow, EarnedAt: earnedAt}
	require.NoError(t, f.Badges.Append(t.Context(), "user-2", other))

	badges, err := f.Badges.List(t.Context(), "user-1")
	require.NoError(t, err)
	require.Len(t, badges, 2)
	assert.Equal(t, "첫 걸음", badges[0].Name)
	assert.Equal(t, model.DifficultyLow, badges[0].Difficulty)
	assert.Equal(t, "여행 시작", badges[1].Name)
	assert.Equal(t, model.DifficultyHigh, badges[1].Difficulty)
	assert.True(t, badges[0].EarnedAt.Equal(earnedAt))

	// Lists are namespaced per user
	badges, err = f.Badges.List(t.Context(), "user-2")
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, "첫 좋아요", badges[0].Name)
}
