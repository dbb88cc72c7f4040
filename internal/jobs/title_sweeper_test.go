package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livejourney/api/internal/model"
	"github.com/livejourney/api/internal/repository"
	"github.com/livejourney/api/internal/service"
	"github.com/livejourney/api/internal/storage"
)

func TestRunOncePurgesExpiredAwards(t *testing.T) {
	store := storage.NewMemoryStore()
	titleRepo := repository.NewTitleRepository(store)
	activityRepo := repository.NewActivityRepository(store)

	titles := service.NewTitleService(service.TitleServiceConfig{
		TitleRepo:    titleRepo,
		ActivityRepo: activityRepo,
		Location:     time.UTC,
	})

	// An award from two days ago is expired and sweepable
	stale := time.Now().UTC().AddDate(0, 0, -2)
	award := &model.DailyTitleAward{
		UserID:    "user-1",
		EarnedAt:  stale,
		ExpiresAt: stale.Add(24 * time.Hour),
	}
	award.Name = "오늘의 첫 셔터"
	require.NoError(t, titleRepo.Put(t.Context(), titles.DayKey(stale), "user-1", award))

	sweeper := NewTitleSweeper(titles, time.Hour)
	removed, err := sweeper.RunOnce(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	// A second sweep finds nothing
	removed, err = sweeper.RunOnce(t.Context())
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestStartStopIdempotent(t *testing.T) {
	store := storage.NewMemoryStore()
	titles := service.NewTitleService(service.TitleServiceConfig{
		TitleRepo:    repository.NewTitleRepository(store),
		ActivityRepo: repository.NewActivityRepository(store),
		Location:     time.UTC,
	})

	sweeper := NewTitleSweeper(titles, time.Hour)
	sweeper.Start()
	sweeper.Start()
	sweeper.Stop()
	sweeper.Stop()
}
