package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livejourney/api/internal/model"
	"github.com/livejourney/api/internal/repository"
	"github.com/livejourney/api/internal/storage"
)

type failingTitleRepo struct {
	TitleRepositoryInterface
	err error
}

func (f *failingTitleRepo) Get(ctx context.Context, day, userID string) (*model.DailyTitleAward, error) {
	return nil, f.err
}

func (f *failingTitleRepo) Put(ctx context.Context, day, userID string, award *model.DailyTitleAward) error {
	return f.err
}

func newTitleService(t *testing.T, activities *mockActivityReader) (*TitleService, *repository.TitleRepository) {
	t.Helper()
	repo := repository.NewTitleRepository(storage.NewMemoryStore())
	svc := NewTitleService(TitleServiceConfig{
		TitleRepo:    repo,
		ActivityRepo: activities,
		Location:     time.UTC,
	})
	return svc, repo
}

func TestDayKey(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	svc := NewTitleService(TitleServiceConfig{
		TitleRepo:    repository.NewTitleRepository(storage.NewMemoryStore()),
		ActivityRepo: &mockActivityReader{},
		Location:     seoul,
	})

	// 23:30 UTC on March 1 is already March 2 in Seoul
	late := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-02", svc.DayKey(late))
	assert.Equal(t, "2026-03-01", svc.DayKey(day("2026-03-01 08:00")))
}

func TestAwardTitleExpiresAtNextMidnight(t *testing.T) {
	svc, _ := newTitleService(t, &mockActivityReader{})

	now := day("2026-03-01 15:30")
	award, err := svc.AwardTitle(t.Context(), "user-1", TitleCatalog()[0], now)
	require.NoError(t, err)

	wantExpiry := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.True(t, award.ExpiresAt.Equal(wantExpiry))
	assert.False(t, award.Expired(wantExpiry.Add(-time.Millisecond)))
	assert.True(t, award.Expired(wantExpiry.Add(time.Millisecond)))
}

func TestAwardTitleOverwrites(t *testing.T) {
	svc, repo := newTitleService(t, &mockActivityReader{})
	now := day("2026-03-01 10:00")

	_, err := svc.AwardTitle(t.Context(), "user-1", TitleCatalog()[0], now)
	require.NoError(t, err)
	_, err = svc.AwardTitle(t.Context(), "user-1", TitleCatalog()[2], now)
	require.NoError(t, err)

	stored, err := repo.Get(t.Context(), svc.DayKey(now), "user-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, TitleCatalog()[2].Name, stored.Name)
}

func TestAwardTitleRequiresUserID(t *testing.T) {
	svc, _ := newTitleService(t, &mockActivityReader{})

	_, err := svc.AwardTitle(t.Context(), "", TitleCatalog()[0], day("2026-03-01 10:00"))
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestActiveTitleEvictsStaleAward(t *testing.T) {
	svc, repo := newTitleService(t, &mockActivityReader{})
	earned := day("2026-03-01 10:00")

	_, err := svc.AwardTitle(t.Context(), "user-1", TitleCatalog()[0], earned)
	require.NoError(t, err)

	// Still visible the same day
	assert.NotNil(t, svc.ActiveTitle(t.Context(), "user-1", day("2026-03-01 23:59")))

	// Next day in the same bucket with a past expiry: read evicts it.
	// Simulate a clock reading inside the old day bucket gone stale by
	// rewriting the stored expiry.
	dayKey := svc.DayKey(earned)
	stored, err := repo.Get(t.Context(), dayKey, "user-1")
	require.NoError(t, err)
	stored.ExpiresAt = day("2026-03-01 12:00")
	require.NoError(t, repo.Put(t.Context(), dayKey, "user-1", stored))

	assert.Nil(t, svc.ActiveTitle(t.Context(), "user-1", day("2026-03-01 13:00")))

	gone, err := repo.Get(t.Context(), dayKey, "user-1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

// rewritingTitleRepo serves a different award on each Get, standing in
// for a concurrent writer replacing the slot between reads.
type rewritingTitleRepo struct {
	TitleRepositoryInterface
	awards  []*model.DailyTitleAward
	gets    int
	deletes int
}

func (r *rewritingTitleRepo) Get(ctx context.Context, day, userID string) (*model.DailyTitleAward, error) {
	award := r.awards[r.gets]
	r.gets++
	return award, nil
}

func (r *rewritingTitleRepo) Delete(ctx context.Context, day, userID string) error {
	r.deletes++
	return nil
}

func TestActiveTitleEvictionSparesReplacedAward(t *testing.T) {
	now := day("2026-03-01 13:00")
	stale := &model.DailyTitleAward{
		DailyTitleDefinition: TitleCatalog()[2],
		UserID:               "user-1",
		ExpiresAt:            day("2026-03-01 12:00"),
	}
	fresh := &model.DailyTitleAward{
		DailyTitleDefinition: TitleCatalog()[0],
		UserID:               "user-1",
		ExpiresAt:            day("2026-03-02 00:00"),
	}

	// The stale award seen first is re-read before eviction; the slot now
	// holds a live award, which must survive and be returned.
	repo := &rewritingTitleRepo{awards: []*model.DailyTitleAward{stale, fresh}}
	svc := NewTitleService(TitleServiceConfig{
		TitleRepo:    repo,
		ActivityRepo: &mockActivityReader{},
		Location:     time.UTC,
	})

	active := svc.ActiveTitle(t.Context(), "user-1", now)
	require.NotNil(t, active)
	assert.Equal(t, fresh.Name, active.Name)
	assert.Zero(t, repo.deletes)
}

func TestActiveTitleDegradesOnStorageFailure(t *testing.T) {
	svc := NewTitleService(TitleServiceConfig{
		TitleRepo:    &failingTitleRepo{err: errors.New("store down")},
		ActivityRepo: &mockActivityReader{},
		Location:     time.UTC,
	})

	assert.Nil(t, svc.ActiveTitle(t.Context(), "user-1", day("2026-03-01 10:00")))
}

func TestEvaluateQualifiersFirstMover(t *testing.T) {
	now := day("2026-03-01 12:00")
	activities := &mockActivityReader{records: []*model.ActivityRecord{
		// Seed posts never claim the first-mover titles
		{ID: model.SeedRecordPrefix + "1", UserID: "seed-user-1", CreatedAt: day("2026-03-01 06:00")},
		{ID: "r1", UserID: "user-1", CreatedAt: day("2026-03-01 08:00")},
		{ID: "r2", UserID: "user-2", CreatedAt: day("2026-03-01 09:00")},
		// Yesterday's post does not count toward today
		{ID: "r0", UserID: "user-2", CreatedAt: day("2026-02-28 07:00")},
	}}
	svc, _ := newTitleService(t, activities)

	qualified := svc.EvaluateQualifiers(t.Context(), "user-1", now)
	require.Len(t, qualified, 2)
	assert.Equal(t, "lightning", qualified[0].Effect)
	assert.Equal(t, "first", qualified[1].Effect)

	assert.Empty(t, svc.EvaluateQualifiers(t.Context(), "user-2", now))
}

func TestEvaluateQualifiersLikesThreshold(t *testing.T) {
	now := day("2026-03-01 18:00")
	activities := &mockActivityReader{records: []*model.ActivityRecord{
		{ID: "r1", UserID: "user-2", CreatedAt: day("2026-03-01 08:00")},
		{ID: "r2", UserID: "user-1", CreatedAt: day("2026-03-01 09:00"), Likes: 6},
		{ID: "r3", UserID: "user-1", CreatedAt: day("2026-03-01 10:00"), Likes: 4},
	}}
	svc, _ := newTitleService(t, activities)

	// Same-day likes sum to 10, meeting the default threshold
	qualified := svc.EvaluateQualifiers(t.Context(), "user-1", now)
	require.Len(t, qualified, 1)
	assert.Equal(t, "star", qualified[0].Effect)
}

func TestEvaluateQualifiersSkippedOnStorageFailure(t *testing.T) {
	svc, _ := newTitleService(t, &mockActivityReader{err: errors.New("store down")})

	assert.Empty(t, svc.EvaluateQualifiers(t.Context(), "user-1", day("2026-03-01 10:00")))
}

func TestCheckAndAwardTakesHighestPriority(t *testing.T) {
	now := day("2026-03-01 18:00")
	activities := &mockActivityReader{records: []*model.ActivityRecord{
		{ID: "r1", UserID: "user-1", CreatedAt: day("2026-03-01 08:00"), Likes: 20},
	}}
	svc, _ := newTitleService(t, activities)

	award := svc.CheckAndAward(t.Context(), "user-1", now)
	require.NotNil(t, award)
	assert.Equal(t, TitleCatalog()[0].Name, award.Name)
}

func TestCheckAndAwardSwallowsStorageFailure(t *testing.T) {
	activities := &mockActivityReader{records: []*model.ActivityRecord{
		{ID: "r1", UserID: "user-1", CreatedAt: day("2026-03-01 08:00")},
	}}
	svc := NewTitleService(TitleServiceConfig{
		TitleRepo:    &failingTitleRepo{err: errors.New("store down")},
		ActivityRepo: activities,
		Location:     time.UTC,
	})

	assert.Nil(t, svc.CheckAndAward(t.Context(), "user-1", day("2026-03-01 10:00")))
}

func TestSweepPurgesPastDays(t *testing.T) {
	svc, repo := newTitleService(t, &mockActivityReader{})

	_, err := svc.AwardTitle(t.Context(), "user-1", TitleCatalog()[0], day("2026-03-01 10:00"))
	require.NoError(t, err)
	_, err = svc.AwardTitle(t.Context(), "user-2", TitleCatalog()[2], day("2026-03-03 10:00"))
	require.NoError(t, err)

	removed, err := svc.Sweep(t.Context(), day("2026-03-03 00:30"))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	// Today's bucket survives
	stored, err := repo.Get(t.Context(), "2026-03-03", "user-2")
	require.NoError(t, err)
	assert.NotNil(t, stored)
}
