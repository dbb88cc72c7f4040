package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livejourney/api/internal/model"
	"github.com/livejourney/api/internal/service"
)

func TestLevelEndpoint(t *testing.T) {
	env := newTestEnv(t)
	h := env.progressionHandler()

	_, err := env.activities.Create(t.Context(), "user-1", service.CreateRequest{Location: "서울"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Level(rec, authedRequest(t, http.MethodGet, "/v1/users/me/level", "user-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	// One post in one region: upload reward plus region reward
	wantExp := model.ExpRewards[model.ActionPhotoUpload] + model.ExpRewards[model.ActionRegionVisited]

	var info model.LevelInfo
	decodeData(t, rec, &info)
	assert.Equal(t, wantExp, info.TotalExp)
	assert.Equal(t, 1, info.Level)
	assert.NotEmpty(t, info.Title)
}

func TestLevelEndpointRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	h := env.progressionHandler()

	rec := httptest.NewRecorder()
	h.Level(rec, authedRequest(t, http.MethodGet, "/v1/users/me/level", "", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBadgesEndpoint(t *testing.T) {
	env := newTestEnv(t)
	h := env.progressionHandler()

	_, err := env.activities.Create(t.Context(), "user-1", service.CreateRequest{Location: "서울"})
	require.NoError(t, err)
	env.progression.AfterUpload(t.Context(), "user-1")

	rec := httptest.NewRecorder()
	h.Badges(rec, authedRequest(t, http.MethodGet, "/v1/users/me/badges", "user-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp BadgeCollectionResponse
	decodeData(t, rec, &resp)

	require.NotEmpty(t, resp.Earned)
	assert.Len(t, resp.Statuses, len(service.BadgeCatalog()))

	earnedCount := 0
	for _, status := range resp.Statuses {
		if status.Earned {
			earnedCount++
			assert.NotNil(t, status.EarnedAt)
			assert.Equal(t, float64(100), status.Progress)
		}
	}
	assert.Equal(t, len(resp.Earned), earnedCount)
}

func TestStatsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	h := env.progressionHandler()

	_, err := env.activities.Create(t.Context(), "user-1", service.CreateRequest{Location: "서울 강남구"})
	require.NoError(t, err)
	_, err = env.activities.Create(t.Context(), "user-1", service.CreateRequest{Location: "부산 해운대"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Stats(rec, authedRequest(t, http.MethodGet, "/v1/users/me/stats", "user-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var stats model.UserStatistics
	decodeData(t, rec, &stats)
	assert.Equal(t, 2, stats.TotalPosts)
	assert.Equal(t, 2, stats.VisitedRegions)
}

func TestTitleEndpoints(t *testing.T) {
	env := newTestEnv(t)
	h := env.progressionHandler()

	// No posts yet: no active title
	rec := httptest.NewRecorder()
	h.MyTitle(rec, authedRequest(t, http.MethodGet, "/v1/users/me/title", "user-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TitleResponse
	decodeData(t, rec, &resp)
	assert.Nil(t, resp.Title)

	// First post of the day earns a first-mover title
	_, err := env.activities.Create(t.Context(), "user-1", service.CreateRequest{Location: "서울"})
	require.NoError(t, err)
	env.progression.AfterUpload(t.Context(), "user-1")

	rec = httptest.NewRecorder()
	h.MyTitle(rec, authedRequest(t, http.MethodGet, "/v1/users/me/title", "user-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &resp)
	require.NotNil(t, resp.Title)
	assert.Equal(t, "user-1", resp.Title.UserID)

	// The public endpoint returns the same award
	req := authedRequest(t, http.MethodGet, "/v1/users/user-1/title", "viewer", nil)
	req.SetPathValue("userId", "user-1")

	rec = httptest.NewRecorder()
	h.UserTitle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var other TitleResponse
	decodeData(t, rec, &other)
	require.NotNil(t, other.Title)
	assert.Equal(t, resp.Title.Name, other.Title.Name)
}
