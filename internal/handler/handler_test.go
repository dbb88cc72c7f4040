package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/livejourney/api/internal/middleware"
	"github.com/livejourney/api/internal/repository"
	"github.com/livejourney/api/internal/service"
	"github.com/livejourney/api/internal/storage"
)

// testEnv wires the full service stack over an in-memory store so handler
// tests exercise real progression behavior.
type testEnv struct {
	store        *storage.MemoryStore
	activityRepo *repository.ActivityRepository
	activities   *service.ActivityService
	progression  *service.ProgressionService
	stats        *service.StatsService
	levels       *service.LevelService
	badges       *service.BadgeService
	titles       *service.TitleService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := storage.NewMemoryStore()
	activityRepo := repository.NewActivityRepository(store)
	badgeRepo := repository.NewBadgeRepository(store)
	titleRepo := repository.NewTitleRepository(store)

	locks := service.NewUserLocks()
	stats := service.NewStatsService(activityRepo, time.UTC)
	levels := service.NewLevelService(stats, badgeRepo)
	badges := service.NewBadgeService(service.BadgeServiceConfig{
		BadgeRepo: badgeRepo,
		Locks:     locks,
	})
	titles := service.NewTitleService(service.TitleServiceConfig{
		TitleRepo:    titleRepo,
		ActivityRepo: activityRepo,
		Locks:        locks,
		Location:     time.UTC,
	})

	return &testEnv{
		store:        store,
		activityRepo: activityRepo,
		activities:   service.NewActivityService(activityRepo),
		progression: service.NewProgressionService(service.ProgressionServiceConfig{
			Stats:  stats,
			Levels: levels,
			Badges: badges,
			Titles: titles,
		}),
		stats:  stats,
		levels: levels,
		badges: badges,
		titles: titles,
	}
}

func (e *testEnv) activityHandler() *ActivityHandler {
	return NewActivityHandler(e.activities, e.progression)
}

func (e *testEnv) progressionHandler() *ProgressionHandler {
	return NewProgressionHandler(ProgressionHandlerConfig{
		StatsService: e.stats,
		LevelService: e.levels,
		BadgeService: e.badges,
		TitleService: e.titles,
	})
}

// authedRequest builds a request carrying userID the way the auth
// middleware would.
func authedRequest(t *testing.T, method, target, userID string, body interface{}) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if userID != "" {
		ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
		req = req.WithContext(ctx)
	}
	return req
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, v))
}
