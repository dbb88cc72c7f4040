package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/livejourney/api/internal/model"
)

// badgeCatalog is the static achievement catalog, in declaration order.
// Order matters: when several badges unlock at once, the earliest catalog
// entry wins the single award of that evaluation cycle.
var badgeCatalog = []model.BadgeDefinition{
	// 시작
	{
		Name:        "첫 걸음",
		Description: "첫 번째 여행 사진을 올렸어요!",
		Icon:        "🌱",
		Category:    "시작",
		Difficulty:  model.DifficultyLow,
		Criteria:    model.BadgeCriteria{Type: model.CriteriaTotalPosts, Target: 1},
	},
	{
		Name:        "여행 시작",
		Description: "3개의 여행 기록을 남겼어요",
		Icon:        "🎒",
		Category:    "시작",
		Difficulty:  model.DifficultyLow,
		Criteria:    model.BadgeCriteria{Type: model.CriteriaTotalPosts, Target: 3},
	},
	{
		Name:        "첫 좋아요",
		Description: "다른 사람이 내 사진을 좋아해줬어요!",
		Icon:        "💖",
		Category:    "시작",
		Difficulty:  model.DifficultyLow,
		Criteria:    model.BadgeCriteria{Type: model.CriteriaTotalLikes, Target: 1},
	},
	// 활동
	{
		Name:        "여행 애호가",
		Description: "10개의 여행 기록을 남겼어요",
		Icon:        "✈️",
		Category:    "활동",
		Difficulty:  model.DifficultyLow,
		Criteria:    model.BadgeCriteria{Type: model.CriteriaTotalPosts, Target: 10},
	},
	{
		Name:        "사진 수집가",
		Description: "25개의 여행 사진을 모았어요",
		Icon:        "📷",
		Category:    "활동",
		Difficulty:  model.DifficultyLow,
		Criteria:    model.BadgeCriteria{Type: model.CriteriaTotalPosts, Target: 25},
	},
	{
		Name:        "인기 여행자",
		Description: "좋아요를 50개 받았어요!",
		Icon:        "⭐",
		Category:    "활동",
		Difficulty:  model.DifficultyLow,
		Criteria:    model.BadgeCriteria{Type: model.CriteriaTotalLikes, Target: 50},
	},
	// 전문가
	{
		Name:        "여행 전문가",
		Description: "50개의 여행 기록! 진정한 여행 전문가예요",
		Icon:        "🏆",
		Category:    "전문가",
		Difficulty:  model.DifficultyMedium,
		Criteria:    model.BadgeCriteria{Type: model.CriteriaTotalPosts, Target: 50},
	},
	{
		Name:        "슈퍼 인기",
		Description: "좋아요를 100개나 받았어요!",
		Icon:        "🌟",
		Category:    "전문가",
		Difficulty:  model.DifficultyMedium,
		Criteria:    model.BadgeCriteria{Type: model.CriteriaTotalLikes, Target: 100},
	},
	{
		Name:        "지역 탐험가",
		Description: "5개 이상의 다른 지역을 방문했어요",
		Icon:        "🗺️",
		Category:    "전문가",
		Difficulty:  model.DifficultyMedium,
		Criteria:    model.BadgeCriteria{Type: model.CriteriaVisitedRegions, Target: 5},
	},
	// 마스터
	{
		Name:        "여행 마스터",
		Description: "100개의 여행 기록! 정말 대단해요!",
		Icon:        "👑",
		Category:    "마스터",
		Difficulty:  model.DifficultyHigh,
		Criteria:    model.BadgeCriteria{Type: model.CriteriaTotalPosts, Target: 100},
	},
	{
		Name:        "전국 정복자",
		Description: "10개 이상의 지역을 모두 방문했어요!",
		Icon:        "🌍",
		Category:    "마스터",
		Difficulty:  model.DifficultyHigh,
		Criteria:    model.BadgeCriteria{Type: model.CriteriaVisitedRegions, Target: 10},
	},
	{
		Name:        "메가 스타",
		Description: "좋아요를 500개나 받았어요! 슈퍼스타!",
		Icon:        "🌠",
		Category:    "마스터",
		Difficulty:  model.DifficultyHigh,
		Criteria:    model.BadgeCriteria{Type: model.CriteriaTotalLikes, Target: 500},
	},
	// 지역
	{
		Name:        "내 지역 알리미",
		Description: "한 지역에서 30개 이상 게시했어요! 지역 홍보 대사!",
		Icon:        "📍",
		Category:    "지역",
		Difficulty:  model.DifficultyMedium,
		Criteria:    model.BadgeCriteria{Type: model.CriteriaRegionPosts, Target: 30},
	},
	{
		Name:        "도시 홍보대사",
		Description: "한 지역에서 50개 이상! 이제 그 지역의 전문가예요",
		Icon:        "🏙️",
		Category:    "지역",
		Difficulty:  model.DifficultyHigh,
		Criteria:    model.BadgeCriteria{Type: model.CriteriaRegionPosts, Target: 50},
	},
	// 숨김
	{
		Name:        "행운아",
		Description: "게시물 하나가 좋아요 100개를 받았어요!",
		Icon:        "🍀",
		Category:    "숨김",
		Difficulty:  model.DifficultyHigh,
		Hidden:      true,
		Criteria:    model.BadgeCriteria{Type: model.CriteriaMaxLikes, Target: 100},
	},
	{
		Name:        "신속 게시자",
		Description: "하루에 게시물을 5개 올렸어요!",
		Icon:        "⚡",
		Category:    "숨김",
		Difficulty:  model.DifficultyMedium,
		Hidden:      true,
		Criteria:    model.BadgeCriteria{Type: model.CriteriaPostsInDay, Target: 5},
	},
	{
		Name:        "전설의 여행자",
		Description: "200개의 여행 기록! 당신은 전설입니다!",
		Icon:        "🦄",
		Category:    "숨김",
		Difficulty:  model.DifficultyHigh,
		Hidden:      true,
		Criteria:    model.BadgeCriteria{Type: model.CriteriaTotalPosts, Target: 200},
	},
	{
		Name:        "도시 탐험가",
		Description: "한 지역에서 20개 이상 게시! 숨겨진 명소를 찾았어요",
		Icon:        "🌃",
		Category:    "숨김",
		Difficulty:  model.DifficultyMedium,
		Hidden:      true,
		Criteria:    model.BadgeCriteria{Type: model.CriteriaRegionPosts, Target: 20},
	},
}

// BadgeCatalog returns the static catalog in declaration order.
func BadgeCatalog() []model.BadgeDefinition {
	return badgeCatalog
}

// criteriaValue selects the statistic a rule is measured against.
func criteriaValue(t model.CriteriaType, stats *model.UserStatistics) int {
	switch t {
	case model.CriteriaTotalPosts:
		return stats.TotalPosts
	case model.CriteriaTotalLikes:
		return stats.TotalLikes
	case model.CriteriaMaxLikes:
		return stats.MaxLikes
	case model.CriteriaVisitedRegions:
		return stats.VisitedRegions
	case model.CriteriaRegionPosts:
		return stats.MaxRegionPosts
	case model.CriteriaPostsInDay:
		return stats.MaxPostsInDay
	case model.CriteriaStreakDays:
		return stats.LongestStreak
	default:
		return 0
	}
}

// Satisfied reports whether the rule holds against stats.
func Satisfied(def *model.BadgeDefinition, stats *model.UserStatistics) bool {
	return criteriaValue(def.Criteria.Type, stats) >= def.Criteria.Target
}

// BadgeProgress returns the display progress toward a badge in percent,
// capped at 100.
func BadgeProgress(def *model.BadgeDefinition, stats *model.UserStatistics) float64 {
	if def.Criteria.Target <= 0 {
		return 0
	}
	progress := float64(criteriaValue(def.Criteria.Type, stats)) / float64(def.Criteria.Target) * 100
	if progress > 100 {
		return 100
	}
	return progress
}

// EvaluateNew returns the catalog badges whose rule holds against stats and
// whose name is not in earnedNames, in catalog order.
func EvaluateNew(stats *model.UserStatistics, earnedNames map[string]bool) []model.BadgeDefinition {
	var matched []model.BadgeDefinition
	for _, def := range badgeCatalog {
		if earnedNames[def.Name] {
			continue
		}
		if Satisfied(&def, stats) {
			matched = append(matched, def)
		}
	}
	return matched
}

// BadgeRepositoryInterface defines the repository interface.
type BadgeRepositoryInterface interface {
	List(ctx context.Context, userID string) ([]*model.EarnedBadge, error)
	Append(ctx context.Context, userID string, badge *model.EarnedBadge) error
}

// BadgeService handles achievement evaluation and awards.
type BadgeService struct {
	repo  BadgeRepositoryInterface
	locks *UserLocks
	now   func() time.Time
}

// BadgeServiceConfig holds configuration for the badge service.
type BadgeServiceConfig struct {
	BadgeRepo BadgeRepositoryInterface
	Locks     *UserLocks

	// Now overrides the clock in tests.
	Now func() time.Time
}

// NewBadgeService creates a new badge service.
func NewBadgeService(cfg BadgeServiceConfig) *BadgeService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	locks := cfg.Locks
	if locks == nil {
		locks = NewUserLocks()
	}
	return &BadgeService{repo: cfg.BadgeRepo, locks: locks, now: now}
}

// Earned returns the user's earned badges. A storage failure degrades to an
// empty list; the badge screen shows nothing rather than an error.
func (s *BadgeService) Earned(ctx context.Context, userID string) []*model.EarnedBadge {
	if userID == "" {
		return []*model.EarnedBadge{}
	}
	badges, err := s.repo.List(ctx, userID)
	if err != nil {
		slog.Warn("earned badges degraded to empty",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return []*model.EarnedBadge{}
	}
	return badges
}

// EvaluateNew returns the badges the user newly qualifies for. A storage
// failure returns an empty list: no spurious achievement popups.
func (s *BadgeService) EvaluateNew(ctx context.Context, userID string, stats *model.UserStatistics) []model.BadgeDefinition {
	badges, err := s.repo.List(ctx, userID)
	if err != nil {
		slog.Warn("badge evaluation skipped",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	earnedNames := make(map[string]bool, len(badges))
	for _, badge := range badges {
		earnedNames[badge.Name] = true
	}
	return EvaluateNew(stats, earnedNames)
}

// Award records a first-time badge award. It re-checks the earned list
// under the user's lock, so the check-then-append is atomic per user;
// already-earned badges are a no-op. A storage failure fails closed: no
// award is reported without a persisted record.
func (s *BadgeService) Award(ctx context.Context, userID string, def *model.BadgeDefinition) (bool, error) {
	if userID == "" {
		return false, ErrMissingUserID
	}

	defer s.locks.Lock(userID)()

	badges, err := s.repo.List(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, badge := range badges {
		if badge.Name == def.Name {
			return false, nil
		}
	}

	earned := &model.EarnedBadge{
		Name:       def.Name,
		Difficulty: def.Difficulty,
		Icon:       def.Icon,
		EarnedAt:   s.now(),
	}
	if err := s.repo.Append(ctx, userID, earned); err != nil {
		return false, err
	}

	slog.Info("badge awarded",
		slog.String("user_id", userID),
		slog.String("badge", def.Name),
		slog.String("difficulty", string(def.Difficulty)),
	)
	return true, nil
}

// Statuses returns the full catalog annotated with the user's earn state
// and progress, for the badge collection screen.
func (s *BadgeService) Statuses(ctx context.Context, userID string, stats *model.UserStatistics) []model.BadgeStatus {
	earned := s.Earned(ctx, userID)
	earnedAt := make(map[string]time.Time, len(earned))
	for _, badge := range earned {
		earnedAt[badge.Name] = badge.EarnedAt
	}

	statuses := make([]model.BadgeStatus, 0, len(badgeCatalog))
	for _, def := range badgeCatalog {
		status := model.BadgeStatus{
			BadgeDefinition: def,
			Progress:        BadgeProgress(&def, stats),
		}
		if at, ok := earnedAt[def.Name]; ok {
			status.Earned = true
			at := at
			status.EarnedAt = &at
		}
		statuses = append(statuses, status)
	}
	return statuses
}
