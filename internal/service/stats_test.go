package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livejourney/api/internal/model"
)

// mockActivityReader serves a fixed activity log, shared by the service
// tests in this package.
type mockActivityReader struct {
	records []*model.ActivityRecord
	err     error
}

func (m *mockActivityReader) All(ctx context.Context) ([]*model.ActivityRecord, error) {
	return m.records, m.err
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeStatistics(t *testing.T) {
	repo := &mockActivityReader{records: []*model.ActivityRecord{
		{ID: "r1", UserID: "user-1", CreatedAt: day("2026-03-01 09:00"), Location: "서울 남산타워", Likes: 3, Comments: 1},
		{ID: "r2", UserID: "user-1", CreatedAt: day("2026-03-01 14:00"), Region: "서울", Likes: 12},
		{ID: "r3", UserID: "user-1", CreatedAt: day("2026-03-02 10:00"), Location: "부산 해운대", Likes: 1, Comments: 4},
		// Other users and seed data must not count
		{ID: "r4", UserID: "user-2", CreatedAt: day("2026-03-01 08:00"), Location: "제주", Likes: 99},
		{ID: model.SeedRecordPrefix + "1", UserID: "user-1", CreatedAt: day("2026-03-01 07:00"), Location: "서울", Likes: 50},
	}}

	stats := NewStatsService(repo, time.UTC).ComputeStatistics(context.Background(), "user-1")

	assert.Equal(t, 3, stats.TotalPosts)
	assert.Equal(t, 16, stats.TotalLikes)
	assert.Equal(t, 5, stats.TotalComments)
	assert.Equal(t, 12, stats.MaxLikes)
	assert.Equal(t, 2, stats.VisitedRegions)
	assert.Equal(t, 2, stats.MaxRegionPosts)
	assert.Equal(t, 2, stats.MaxPostsInDay)
	assert.Equal(t, 2, stats.LongestStreak)
}

// Day grouping must use the configured location, not each record's own
// offset: two UTC instants straddling midnight can land in the same local
// calendar day.
func TestComputeStatisticsGroupsDaysInLocation(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	// 23:30 UTC Mar 1 is already 08:30 Mar 2 in Seoul.
	repo := &mockActivityReader{records: []*model.ActivityRecord{
		{ID: "r1", UserID: "user-1", CreatedAt: day("2026-03-01 23:30"), Location: "서울"},
		{ID: "r2", UserID: "user-1", CreatedAt: day("2026-03-02 01:00"), Location: "서울"},
	}}

	stats := NewStatsService(repo, seoul).ComputeStatistics(context.Background(), "user-1")
	assert.Equal(t, 2, stats.MaxPostsInDay)
	assert.Equal(t, 1, stats.LongestStreak)

	// The same log computed in UTC splits across two days.
	stats = NewStatsService(repo, time.UTC).ComputeStatistics(context.Background(), "user-1")
	assert.Equal(t, 1, stats.MaxPostsInDay)
	assert.Equal(t, 2, stats.LongestStreak)
}

func TestComputeStatisticsEmptyLog(t *testing.T) {
	stats := NewStatsService(&mockActivityReader{}, time.UTC).ComputeStatistics(context.Background(), "user-1")

	assert.Equal(t, "user-1", stats.UserID)
	assert.Zero(t, stats.TotalPosts)
	assert.Zero(t, stats.VisitedRegions)
	assert.Zero(t, stats.LongestStreak)
}

func TestComputeStatisticsDegradesOnStorageFailure(t *testing.T) {
	repo := &mockActivityReader{err: errors.New("store down")}

	stats := NewStatsService(repo, time.UTC).ComputeStatistics(context.Background(), "user-1")

	assert.Zero(t, stats.TotalPosts)
	assert.Empty(t, stats.Posts)
}

func TestComputeStatisticsMissingUserID(t *testing.T) {
	stats := NewStatsService(&mockActivityReader{}, time.UTC).ComputeStatistics(context.Background(), "")
	assert.Zero(t, stats.TotalPosts)
}

func TestLongestStreak(t *testing.T) {
	cases := []struct {
		name string
		days []string
		want int
	}{
		{"empty", nil, 0},
		{"single day", []string{"2026-03-01"}, 1},
		{"two consecutive", []string{"2026-03-01", "2026-03-02"}, 2},
		{"gap resets", []string{"2026-03-01", "2026-03-02", "2026-03-04", "2026-03-05", "2026-03-06"}, 3},
		{"month boundary", []string{"2026-02-27", "2026-02-28", "2026-03-01"}, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			days := make(map[string]int, len(tc.days))
			for _, d := range tc.days {
				days[d] = 1
			}
			assert.Equal(t, tc.want, longestStreak(days))
		})
	}
}
