package service

import (
	"context"
	"log/slog"
	"math"

	"github.com/livejourney/api/internal/model"
)

// BadgeReader is the read side of per-user earned-badge lists.
type BadgeReader interface {
	List(ctx context.Context, userID string) ([]*model.EarnedBadge, error)
}

// LevelService derives level state from statistics and earned badges.
// Total experience is recomputed from source facts on every call, which
// makes it monotonically non-decreasing as a function of cumulative
// activity; there is no running sum that could double-count.
type LevelService struct {
	stats     *StatsService
	badgeRepo BadgeReader
}

// NewLevelService creates a new level service.
func NewLevelService(stats *StatsService, badgeRepo BadgeReader) *LevelService {
	return &LevelService{stats: stats, badgeRepo: badgeRepo}
}

// TotalExperience sums the reward table over statistics and earned badges.
func TotalExperience(stats *model.UserStatistics, badges []*model.EarnedBadge) int {
	total := stats.TotalPosts*model.ExpRewards[model.ActionPhotoUpload] +
		stats.TotalLikes*model.ExpRewards[model.ActionLikeReceived] +
		stats.TotalComments*model.ExpRewards[model.ActionCommentReceived] +
		stats.VisitedRegions*model.ExpRewards[model.ActionRegionVisited]

	for _, badge := range badges {
		if action, ok := model.BadgeActions[badge.Difficulty]; ok {
			total += model.ExpRewards[action]
		} else {
			// Unknown difficulty on a stored badge; count the low tier.
			total += model.ExpRewards[model.ActionBadgeLow]
		}
	}
	return total
}

// LevelForExperience returns the greatest level whose threshold is at most
// totalExp. Levels never decrease for the same table because experience
// never decreases.
func LevelForExperience(totalExp int) int {
	level := 1
	for lv := 1; lv <= model.MaxLevel; lv++ {
		if totalExp >= model.LevelThresholds[lv] {
			level = lv
		} else {
			break
		}
	}
	return level
}

// TitleForLevel returns the title at the highest defined level ≤ level,
// defaulting to the level-1 title.
func TitleForLevel(level int) string {
	title := model.LevelTitles[1]
	for lv := model.MaxLevel; lv >= 1; lv-- {
		if t, ok := model.LevelTitles[lv]; ok && level >= lv {
			title = t
			break
		}
	}
	return title
}

// ExpToNext returns the cumulative experience required for the next level,
// or 0 at the terminal level.
func ExpToNext(level int) int {
	if level >= model.MaxLevel {
		return 0
	}
	return model.LevelThresholds[level+1]
}

// LevelProgress returns the percentage of the way from level's threshold to
// the next, clamped to [0, 100]. The terminal level is pinned at 100.
func LevelProgress(totalExp, level int) int {
	if level >= model.MaxLevel {
		return 100
	}

	floor := model.LevelThresholds[level]
	ceil := model.LevelThresholds[level+1]
	percent := int(math.Round(float64(totalExp-floor) / float64(ceil-floor) * 100))
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// UserLevel derives the full level state for a user from recomputed
// statistics and the earned-badge list. Storage failures degrade to the
// level-1 zero state.
func (s *LevelService) UserLevel(ctx context.Context, userID string) *model.LevelInfo {
	stats := s.stats.ComputeStatistics(ctx, userID)

	badges, err := s.badgeRepo.List(ctx, userID)
	if err != nil {
		slog.Warn("level derived without badges",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		badges = nil
	}

	totalExp := TotalExperience(stats, badges)
	level := LevelForExperience(totalExp)

	info := &model.LevelInfo{
		Level:          level,
		Title:          TitleForLevel(level),
		TotalExp:       totalExp,
		ExpInLevel:     totalExp - model.LevelThresholds[level],
		ExpToNextLevel: ExpToNext(level),
		Progress:       LevelProgress(totalExp, level),
	}
	return info
}

// GrantExperience reports the effect of one named action on the user's
// level. The grant is informational: the underlying activity fact must
// already be persisted by the caller, and calling this twice for the same
// event does not change the true state. Unknown actions grant nothing.
func (s *LevelService) GrantExperience(ctx context.Context, userID string, action model.ExpAction) *model.ExperienceGrant {
	reward, ok := model.ExpRewards[action]
	if !ok || userID == "" {
		return &model.ExperienceGrant{Action: action}
	}

	before := s.UserLevel(ctx, userID)
	newTotal := before.TotalExp + reward
	newLevel := LevelForExperience(newTotal)

	grant := &model.ExperienceGrant{
		Action:   action,
		Granted:  reward,
		TotalExp: newTotal,
	}
	if newLevel > before.Level {
		grant.LeveledUp = true
		grant.NewLevel = newLevel
		slog.Info("level up",
			slog.String("user_id", userID),
			slog.Int("from", before.Level),
			slog.Int("to", newLevel),
		)
	}
	return grant
}
