// Package model defines domain entities and data structures for the
// LiveJourney progression API.
//
// The model package contains all struct definitions for domain objects,
// the static progression tables, and error definitions. Models are used
// across all layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - ActivityRecord: one persisted user post with engagement counters
//   - UserStatistics: derived aggregate over a user's activity records
//   - BadgeDefinition / EarnedBadge: a named achievement rule and its
//     one-time award record
//   - DailyTitleDefinition / DailyTitleAward: a per-day honor and its
//     time-boxed award record
//   - User: application account with authentication credentials
//
// # Progression Tables
//
// The level threshold table, the sparse level-title table, and the
// experience reward table are fixed data versioned with the application.
// They are defined in level.go; badge rules in catalog form live with the
// badge service.
//
// # JSON Serialization
//
// All models use json struct tags; they are persisted as JSON text in the
// key-value store and served unchanged by the API:
//
//	type EarnedBadge struct {
//	    Name     string    `json:"name"`
//	    EarnedAt time.Time `json:"earned_at"`
//	}
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go.
package model
