// Package fixtures provides test data factories for the LiveJourney API.
//
// Each factory method creates entities with sensible defaults while
// allowing customization via option functions. Factories write through the
// real repositories over an in-memory store, so tests exercise the same
// persistence paths production uses.
//
// Usage:
//
//	f := fixtures.New()
//	user := f.CreateUser(t)
//	record := f.CreatePost(t, user.ID, fixtures.WithRegion("부산"))
package fixtures

import (
	"crypto/rand"
	"encoding/hex"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/livejourney/api/internal/model"
	"github.com/livejourney/api/internal/repository"
	"github.com/livejourney/api/internal/storage"
)

// Factory creates test entities over an in-memory store
type Factory struct {
	Store      *storage.MemoryStore
	Users      *repository.UserRepository
	Activities *repository.ActivityRepository
	Badges     *repository.BadgeRepository
	Titles     *repository.TitleRepository
}

// New creates a new fixture factory with a fresh in-memory store
func New() *Factory {
	store := storage.NewMemoryStore()
	return &Factory{
		Store:      store,
		Users:      repository.NewUserRepository(store),
		Activities: repository.NewActivityRepository(store),
		Badges:     repository.NewBadgeRepository(store),
		Titles:     repository.NewTitleRepository(store),
	}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// UserOption customizes a created user
type UserOption func(*model.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *model.User) { u.Email = email }
}

// WithNickname sets the user's nickname
func WithNickname(nickname string) UserOption {
	return func(u *model.User) { u.Nickname = nickname }
}

// CreateUser creates a user with a hashed default password
func (f *Factory) CreateUser(t *testing.T, opts ...UserOption) *model.User {
	t.Helper()

	id := randomID()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	hashStr := string(hash)

	user := &model.User{
		Email:    "traveler-" + id + "@example.com",
		Nickname: "traveler-" + id,
		Hash:     &hashStr,
		JoinedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(user)
	}

	if err := f.Users.Create(t.Context(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// PostOption customizes a created activity record
type PostOption func(*model.ActivityRecord)

// WithRegion sets the post's region label
func WithRegion(region string) PostOption {
	return func(r *model.ActivityRecord) { r.Region = region }
}

// WithLocation sets the post's location label
func WithLocation(location string) PostOption {
	return func(r *model.ActivityRecord) { r.Location = location }
}

// WithLikes sets the post's like count
func WithLikes(likes int) PostOption {
	return func(r *model.ActivityRecord) { r.Likes = likes }
}

// WithCreatedAt sets the post's creation time
func WithCreatedAt(at time.Time) PostOption {
	return func(r *model.ActivityRecord) { r.CreatedAt = at }
}

// CreatePost appends an activity record owned by userID
func (f *Factory) CreatePost(t *testing.T, userID string, opts ...PostOption) *model.ActivityRecord {
	t.Helper()

	record := &model.ActivityRecord{
		UserID:    userID,
		CreatedAt: time.Now(),
		Location:  "서울 남산타워",
	}
	for _, opt := range opts {
		opt(record)
	}

	if err := f.Activities.Append(t.Context(), record); err != nil {
		t.Fatalf("create post: %v", err)
	}
	return record
}

// CreateSeedPost appends a seed record, which readers must skip
func (f *Factory) CreateSeedPost(t *testing.T, opts ...PostOption) *model.ActivityRecord {
	t.Helper()

	id := randomID()
	record := &model.ActivityRecord{
		ID:        model.SeedRecordPrefix + id,
		UserID:    model.SeedUserPrefix + id,
		CreatedAt: time.Now(),
		Location:  "부산 해운대",
	}
	for _, opt := range opts {
		opt(record)
	}

	if err := f.Activities.Append(t.Context(), record); err != nil {
		t.Fatalf("create seed post: %v", err)
	}
	return record
}
