// Package repository implements data access for the progression engine on
// top of the storage.Store key-value collaborator.
//
// Each repository owns one key family and its JSON serialization:
//
//   - ActivityRepository: the shared activity log (one key)
//   - BadgeRepository:    per-user earned-badge lists (one key per user)
//   - TitleRepository:    the day→user daily-title map (one key)
//   - UserRepository:     accounts and per-user join-date markers
//
// # Failure Semantics
//
// A missing key decodes to an empty collection, never an error. Corrupt
// JSON and store failures are returned wrapped; the service layer decides
// whether to degrade to a safe default.
//
// # Concurrency
//
// The store has no multi-key atomicity, so every mutation here is a
// read-modify-write. Repositories whose key is shared across users
// (activity log, title map) serialize their own writers with an internal
// mutex; per-user keys are serialized by the service layer's per-user
// locks.
package repository
