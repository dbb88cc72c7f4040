package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/livejourney/api/internal/model"
)

// ActivityReader is the read side of the activity log.
type ActivityReader interface {
	All(ctx context.Context) ([]*model.ActivityRecord, error)
}

// StatsService derives user statistics from the activity log. Statistics
// are recomputed from source records on every call; there are no running
// counters that can drift. Day-scoped aggregates (posts per day, streaks)
// group records by calendar day in the configured location, the same
// partition the daily-title service uses.
type StatsService struct {
	activityRepo ActivityReader
	location     *time.Location
}

// NewStatsService creates a new statistics service. A nil location
// defaults to the process-local zone.
func NewStatsService(activityRepo ActivityReader, location *time.Location) *StatsService {
	if location == nil {
		location = time.Local
	}
	return &StatsService{activityRepo: activityRepo, location: location}
}

// ComputeStatistics aggregates the user's own non-seed records. A missing
// user ID or a storage failure degrades to zero-valued statistics; level
// and badge state is advisory, so reads never fail the caller.
func (s *StatsService) ComputeStatistics(ctx context.Context, userID string) *model.UserStatistics {
	stats := &model.UserStatistics{UserID: userID, Posts: []*model.ActivityRecord{}}
	if userID == "" {
		return stats
	}

	records, err := s.activityRepo.All(ctx)
	if err != nil {
		slog.Warn("statistics degraded to zero values",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return stats
	}

	for _, rec := range records {
		if rec.IsSeed() || rec.UserID != userID {
			continue
		}
		stats.Posts = append(stats.Posts, rec)
	}

	regions := make(map[string]int)
	days := make(map[string]int)
	for _, rec := range stats.Posts {
		stats.TotalPosts++
		stats.TotalLikes += rec.Likes
		stats.TotalComments += rec.Comments
		if rec.Likes > stats.MaxLikes {
			stats.MaxLikes = rec.Likes
		}
		if region := rec.RegionLabel(); region != "" {
			regions[region]++
		}
		days[rec.CreatedAt.In(s.location).Format("2006-01-02")]++
	}

	stats.VisitedRegions = len(regions)
	for _, count := range regions {
		if count > stats.MaxRegionPosts {
			stats.MaxRegionPosts = count
		}
	}
	for _, count := range days {
		if count > stats.MaxPostsInDay {
			stats.MaxPostsInDay = count
		}
	}
	stats.LongestStreak = longestStreak(days)

	return stats
}

// longestStreak returns the longest run of consecutive calendar days with
// at least one post.
func longestStreak(days map[string]int) int {
	if len(days) == 0 {
		return 0
	}

	keys := make([]string, 0, len(days))
	for day := range days {
		keys = append(keys, day)
	}
	sort.Strings(keys)

	longest, run := 1, 1
	prev, _ := time.Parse("2006-01-02", keys[0])
	for _, key := range keys[1:] {
		day, err := time.Parse("2006-01-02", key)
		if err != nil {
			continue
		}
		if day.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = day
	}
	return longest
}
