package model

import "time"

// User represents a user account.
type User struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Nickname string    `json:"nickname,omitempty"`
	Hash     *string   `json:"-"` // Never expose password hash
	JoinedAt time.Time `json:"joined_at"`
}
