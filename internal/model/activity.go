package model

import (
	"strings"
	"time"
)

// Reserved identity prefixes marking seed/sample data. Records carrying
// these prefixes never count toward statistics, experience, or awards.
const (
	SeedRecordPrefix = "seed-"
	SeedUserPrefix   = "seed-user-"
)

// ActivityRecord is one persisted user post with engagement counters.
// Created on upload, mutated by like/comment actions, and removed only by
// explicit user deletion.
type ActivityRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
	Location  string    `json:"location,omitempty"`
	Region    string    `json:"region,omitempty"`
	Category  string    `json:"category,omitempty"`
}

// IsSeed reports whether the record is seed/sample data.
func (r *ActivityRecord) IsSeed() bool {
	return strings.HasPrefix(r.ID, SeedRecordPrefix) ||
		strings.HasPrefix(r.UserID, SeedUserPrefix)
}

// RegionLabel returns the record's region, falling back to the first
// whitespace-delimited token of the location label ("서울 강남구" → "서울").
func (r *ActivityRecord) RegionLabel() string {
	if r.Region != "" {
		return r.Region
	}
	if r.Location == "" {
		return ""
	}
	return strings.Fields(r.Location)[0]
}
