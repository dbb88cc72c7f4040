package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/livejourney/api/internal/model"
)

// Celebration is the optional payload the UI turns into a celebratory
// modal. Every field may be absent: the engine degrades to "nothing to
// celebrate" on any failure.
type Celebration struct {
	NewBadge   *model.BadgeDefinition `json:"new_badge,omitempty"`
	BadgeGrant *model.ExperienceGrant `json:"badge_grant,omitempty"`
	Grant      *model.ExperienceGrant `json:"grant,omitempty"`
	Title      *model.DailyTitleAward `json:"title,omitempty"`
}

// ProgressionService orchestrates the engine after a user action. Callers
// persist the activity fact first; progression then recomputes statistics,
// evaluates and awards badges, grants experience, and re-checks the daily
// title, each step reading the previous step's durable effect.
type ProgressionService struct {
	stats  *StatsService
	levels *LevelService
	badges *BadgeService
	titles *TitleService
}

// ProgressionServiceConfig holds configuration for the progression service.
type ProgressionServiceConfig struct {
	Stats  *StatsService
	Levels *LevelService
	Badges *BadgeService
	Titles *TitleService
}

// NewProgressionService creates a new progression service.
func NewProgressionService(cfg ProgressionServiceConfig) *ProgressionService {
	return &ProgressionService{
		stats:  cfg.Stats,
		levels: cfg.Levels,
		badges: cfg.Badges,
		titles: cfg.Titles,
	}
}

// AfterUpload runs the full progression cycle for a finished upload. It
// never returns an error: the upload has already succeeded, and a broken
// reward pipeline only costs a modal.
func (p *ProgressionService) AfterUpload(ctx context.Context, userID string) *Celebration {
	celebration := &Celebration{}
	if userID == "" {
		return celebration
	}

	stats := p.stats.ComputeStatistics(ctx, userID)

	// At most one badge per cycle; catalog order breaks ties among
	// simultaneously unlocked badges.
	if fresh := p.badges.EvaluateNew(ctx, userID, stats); len(fresh) > 0 {
		def := fresh[0]
		awarded, err := p.badges.Award(ctx, userID, &def)
		if err != nil {
			slog.Warn("badge award skipped",
				slog.String("user_id", userID),
				slog.String("badge", def.Name),
				slog.String("error", err.Error()),
			)
		} else if awarded {
			celebration.NewBadge = &def
			if action, ok := model.BadgeActions[def.Difficulty]; ok {
				celebration.BadgeGrant = p.levels.GrantExperience(ctx, userID, action)
			}
		}
	}

	celebration.Grant = p.levels.GrantExperience(ctx, userID, model.ActionPhotoUpload)
	celebration.Title = p.titles.CheckAndAward(ctx, userID, time.Now())

	return celebration
}

// AfterEngagement runs the progression cycle for a like or comment landing
// on ownerID's post: engagement can unlock like-based badges and flip the
// popularity title, so both are re-evaluated.
func (p *ProgressionService) AfterEngagement(ctx context.Context, ownerID string, action model.ExpAction) *Celebration {
	celebration := &Celebration{}
	if ownerID == "" {
		return celebration
	}

	stats := p.stats.ComputeStatistics(ctx, ownerID)

	if fresh := p.badges.EvaluateNew(ctx, ownerID, stats); len(fresh) > 0 {
		def := fresh[0]
		awarded, err := p.badges.Award(ctx, ownerID, &def)
		if err != nil {
			slog.Warn("badge award skipped",
				slog.String("user_id", ownerID),
				slog.String("badge", def.Name),
				slog.String("error", err.Error()),
			)
		} else if awarded {
			celebration.NewBadge = &def
			if action, ok := model.BadgeActions[def.Difficulty]; ok {
				celebration.BadgeGrant = p.levels.GrantExperience(ctx, ownerID, action)
			}
		}
	}

	celebration.Grant = p.levels.GrantExperience(ctx, ownerID, action)
	celebration.Title = p.titles.CheckAndAward(ctx, ownerID, time.Now())

	return celebration
}
