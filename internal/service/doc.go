// Package service implements the business logic of the LiveJourney
// progression engine.
//
// The service package contains the experience/level computation, the badge
// achievement rules, the daily-title evaluation, and the orchestration that
// runs them after user activity. Services are the primary abstraction
// between HTTP handlers and data access.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with
//     repository dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing easy mocking
// for unit tests and decoupling from the key-value store implementation.
//
// # Degraded Reads
//
// Progression state is advisory UI state, not a ledger of record. Read
// paths (statistics, level, earned badges, active title) recover storage
// failures to zero values or empty lists instead of propagating them, so a
// broken store can never fail a photo upload. Award writes are the
// exception: they fail closed, because awarding without persistence would
// surface achievements that do not exist.
//
// # Concurrency
//
// Award flows are check-then-append over a store with no transactions.
// Badge and title awards take a per-user lock (see UserLocks) so two
// uploads finishing together cannot double-award or lose an award.
package service
