package model

import "time"

// BadgeDifficulty is the tier of an achievement rule. Harder tiers grant
// more experience when earned.
type BadgeDifficulty string

const (
	DifficultyLow    BadgeDifficulty = "low"
	DifficultyMedium BadgeDifficulty = "medium"
	DifficultyHigh   BadgeDifficulty = "high"
)

// CriteriaType selects which statistic a badge rule is measured against.
// Rules are data, not code: a badge is "criteria value ≥ target".
type CriteriaType string

const (
	CriteriaTotalPosts     CriteriaType = "total_posts"
	CriteriaTotalLikes     CriteriaType = "total_likes"
	CriteriaMaxLikes       CriteriaType = "max_likes"
	CriteriaVisitedRegions CriteriaType = "visited_regions"
	CriteriaRegionPosts    CriteriaType = "region_posts"
	CriteriaPostsInDay     CriteriaType = "posts_in_day"
	CriteriaStreakDays     CriteriaType = "streak_days"
)

// BadgeCriteria is the qualification rule of a badge: the selected
// statistic must reach Target. Target doubles as the denominator for
// progress display.
type BadgeCriteria struct {
	Type   CriteriaType `json:"type"`
	Target int          `json:"target"`
}

// BadgeDefinition is one entry of the static achievement catalog. Badge
// definitions are versioned with the application and never mutated at
// runtime.
type BadgeDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Category    string          `json:"category"`
	Difficulty  BadgeDifficulty `json:"difficulty"`
	Hidden      bool            `json:"hidden,omitempty"`
	Criteria    BadgeCriteria   `json:"criteria"`
}

// EarnedBadge records the one-time award of a badge to a user. At most one
// exists per badge definition per user.
type EarnedBadge struct {
	Name       string          `json:"name"`
	Difficulty BadgeDifficulty `json:"difficulty"`
	Icon       string          `json:"icon"`
	EarnedAt   time.Time       `json:"earned_at"`
}

// BadgeStatus is a catalog entry annotated with the caller's earn state and
// progress, for the badge collection screen.
type BadgeStatus struct {
	BadgeDefinition
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
	Progress float64    `json:"progress"`
}
