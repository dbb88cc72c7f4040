package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/livejourney/api/internal/model"
)

// titleCatalog lists the daily titles in award priority order: the
// speed/first-mover categories outrank the popularity category because a
// user holds at most one title per day.
var titleCatalog = []model.DailyTitleDefinition{
	{
		ID:          1,
		Name:        "실시간 0분 스피드 헌터",
		Icon:        "⚡️",
		Category:    "실시간 속보",
		Description: "당일 첫 번째 실시간 여행 정보를 포스팅한 사용자",
		Effect:      "lightning",
	},
	{
		ID:          23,
		Name:        "오늘의 첫 셔터",
		Icon:        "📷",
		Category:    "참여",
		Description: "당일 가장 먼저 사진 포스팅을 올린 사용자",
		Effect:      "first",
	},
	{
		ID:          16,
		Name:        "좋아요 폭격의 왕",
		Icon:        "⭐",
		Category:    "소통",
		Description: "24시간 동안 가장 많은 좋아요를 받은 포스팅의 작성자",
		Effect:      "star",
	},
}

// TitleCatalog returns the daily-title catalog in priority order.
func TitleCatalog() []model.DailyTitleDefinition {
	return titleCatalog
}

// TitleRepositoryInterface defines the repository interface.
type TitleRepositoryInterface interface {
	Get(ctx context.Context, day, userID string) (*model.DailyTitleAward, error)
	Put(ctx context.Context, day, userID string, award *model.DailyTitleAward) error
	Delete(ctx context.Context, day, userID string) error
	PruneBefore(ctx context.Context, day string) (int, error)
}

// TitleService handles the per-day, per-user title slot. Awards roll over
// at local midnight: day keys and expiries are computed in the configured
// location, not UTC.
type TitleService struct {
	repo         TitleRepositoryInterface
	activityRepo ActivityReader
	locks        *UserLocks
	location     *time.Location

	// likesThreshold is the same-day like count that qualifies for the
	// popularity title.
	likesThreshold int
}

// TitleServiceConfig holds configuration for the title service.
type TitleServiceConfig struct {
	TitleRepo    TitleRepositoryInterface
	ActivityRepo ActivityReader
	Locks        *UserLocks
	Location     *time.Location

	// LikesThreshold qualifies the popularity title; zero means the
	// default of 10.
	LikesThreshold int
}

// NewTitleService creates a new daily-title service.
func NewTitleService(cfg TitleServiceConfig) *TitleService {
	locks := cfg.Locks
	if locks == nil {
		locks = NewUserLocks()
	}
	location := cfg.Location
	if location == nil {
		location = time.Local
	}
	threshold := cfg.LikesThreshold
	if threshold <= 0 {
		threshold = 10
	}
	return &TitleService{
		repo:           cfg.TitleRepo,
		activityRepo:   cfg.ActivityRepo,
		locks:          locks,
		location:       location,
		likesThreshold: threshold,
	}
}

// DayKey returns the local calendar-day key (YYYY-MM-DD) that partitions
// all day-scoped data.
func (s *TitleService) DayKey(t time.Time) string {
	return t.In(s.location).Format("2006-01-02")
}

// nextMidnight returns the first local midnight after t.
func (s *TitleService) nextMidnight(t time.Time) time.Time {
	local := t.In(s.location)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, s.location)
}

// ActiveTitle returns the user's title for today, or nil. A stale award is
// evicted lazily on read; there is no guarantee a sweeper ran at midnight.
func (s *TitleService) ActiveTitle(ctx context.Context, userID string, now time.Time) *model.DailyTitleAward {
	if userID == "" {
		return nil
	}

	day := s.DayKey(now)
	award, err := s.repo.Get(ctx, day, userID)
	if err != nil {
		slog.Warn("active title degraded to none",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if award == nil {
		return nil
	}
	if !award.Expired(now) {
		return award
	}

	// Evict under the per-user lock, re-reading first: a concurrent award
	// may have replaced the stale entry since the unlocked read.
	defer s.locks.Lock(userID)()
	award, err = s.repo.Get(ctx, day, userID)
	if err != nil || award == nil {
		return nil
	}
	if !award.Expired(now) {
		return award
	}
	if err := s.repo.Delete(ctx, day, userID); err != nil {
		slog.Warn("stale title eviction failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// EvaluateQualifiers returns the titles the user qualifies for today, in
// catalog priority order. A storage failure returns no qualifiers: failing
// to award a cosmetic title never surfaces as an error.
func (s *TitleService) EvaluateQualifiers(ctx context.Context, userID string, now time.Time) []model.DailyTitleDefinition {
	if userID == "" {
		return nil
	}

	records, err := s.activityRepo.All(ctx)
	if err != nil {
		slog.Warn("title evaluation skipped",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	day := s.DayKey(now)
	var todays []*model.ActivityRecord
	for _, rec := range records {
		if rec.IsSeed() {
			continue
		}
		if s.DayKey(rec.CreatedAt) == day {
			todays = append(todays, rec)
		}
	}
	if len(todays) == 0 {
		return nil
	}

	// Chronological order; ties keep storage order, which is
	// implementation-defined.
	sort.SliceStable(todays, func(i, j int) bool {
		return todays[i].CreatedAt.Before(todays[j].CreatedAt)
	})

	globalFirst := todays[0].UserID == userID

	userLikes := 0
	for _, rec := range todays {
		if rec.UserID == userID {
			userLikes += rec.Likes
		}
	}

	var qualified []model.DailyTitleDefinition
	for _, def := range titleCatalog {
		switch def.Effect {
		case "lightning", "first":
			if globalFirst {
				qualified = append(qualified, def)
			}
		case "star":
			if userLikes >= s.likesThreshold {
				qualified = append(qualified, def)
			}
		}
	}
	return qualified
}

// AwardTitle stores an award for (today, user), overwriting any existing
// one: unlike badges, a user can be re-evaluated into a different title the
// same day. Expiry is pinned to the next local midnight. A storage failure
// fails closed.
func (s *TitleService) AwardTitle(ctx context.Context, userID string, def model.DailyTitleDefinition, now time.Time) (*model.DailyTitleAward, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	defer s.locks.Lock(userID)()

	award := &model.DailyTitleAward{
		DailyTitleDefinition: def,
		UserID:               userID,
		EarnedAt:             now,
		ExpiresAt:            s.nextMidnight(now),
	}
	if err := s.repo.Put(ctx, s.DayKey(now), userID, award); err != nil {
		return nil, err
	}

	slog.Info("daily title awarded",
		slog.String("user_id", userID),
		slog.String("title", def.Name),
		slog.Time("expires_at", award.ExpiresAt),
	)
	return award, nil
}

// CheckAndAward evaluates today's qualifiers and awards the highest
// priority one. Any failure results in no title this cycle, never an
// error to the caller.
func (s *TitleService) CheckAndAward(ctx context.Context, userID string, now time.Time) *model.DailyTitleAward {
	qualified := s.EvaluateQualifiers(ctx, userID, now)
	if len(qualified) == 0 {
		return nil
	}

	award, err := s.AwardTitle(ctx, userID, qualified[0], now)
	if err != nil {
		slog.Warn("daily title award failed",
			slog.String("user_id", userID),
			slog.String("title", qualified[0].Name),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return award
}

// Sweep removes day buckets older than now's day key and returns the
// number of awards purged. The sweeper complements lazy on-read eviction;
// either alone keeps reads correct, together they also keep the stored map
// small.
func (s *TitleService) Sweep(ctx context.Context, now time.Time) (int, error) {
	return s.repo.PruneBefore(ctx, s.DayKey(now))
}
