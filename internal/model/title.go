package model

import "time"

// DailyTitleDefinition is one entry of the static daily-title catalog: a
// per-calendar-day honor selected from same-day activity across all users.
type DailyTitleDefinition struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Effect      string `json:"effect"`
}

// DailyTitleAward is the time-boxed award of a daily title to one user. It
// expires at the first local midnight after the award; an award past its
// expiry is logically absent even before it is purged.
type DailyTitleAward struct {
	DailyTitleDefinition
	UserID    string    `json:"user_id"`
	EarnedAt  time.Time `json:"earned_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the award is past its expiry at now.
func (a *DailyTitleAward) Expired(now time.Time) bool {
	return now.After(a.ExpiresAt)
}
