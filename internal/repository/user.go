package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/livejourney/api/internal/model"
	"github.com/livejourney/api/internal/storage"
)

const (
	// usersKey holds all accounts as one JSON array.
	usersKey = "users"

	// joinDateKeyPrefix marks one join-date key per user.
	joinDateKeyPrefix = "joinDate:"
)

// Sentinel errors for user access.
var (
	ErrUserNotFound = errors.New("user record not found")
	ErrUserExists   = errors.New("user already exists")
)

// storedUser is the persisted account shape. model.User hides the password
// hash from API serialization; the store needs it.
type storedUser struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Nickname string    `json:"nickname,omitempty"`
	Hash     *string   `json:"hash,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}

func toStored(u *model.User) *storedUser {
	return &storedUser{ID: u.ID, Email: u.Email, Nickname: u.Nickname, Hash: u.Hash, JoinedAt: u.JoinedAt}
}

func fromStored(u *storedUser) *model.User {
	return &model.User{ID: u.ID, Email: u.Email, Nickname: u.Nickname, Hash: u.Hash, JoinedAt: u.JoinedAt}
}

// UserRepository handles accounts and join-date markers.
type UserRepository struct {
	store storage.Store

	mu sync.Mutex
}

// NewUserRepository creates a new user repository.
func NewUserRepository(store storage.Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create stores a new account and writes its join-date marker. Emails are
// unique, compared case-insensitively.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.JoinedAt.IsZero() {
		user.JoinedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.all(ctx)
	if err != nil {
		return err
	}
	for _, existing := range users {
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrUserExists
		}
	}

	users = append(users, user)
	if err := r.save(ctx, users); err != nil {
		return err
	}

	return r.store.Set(ctx, joinDateKeyPrefix+user.ID, user.JoinedAt.Format(time.RFC3339))
}

// ByEmail returns the account with the given email, or ErrUserNotFound.
func (r *UserRepository) ByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

// ByID returns the account with the given ID, or ErrUserNotFound.
func (r *UserRepository) ByID(ctx context.Context, id string) (*model.User, error) {
	users, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

// JoinDate returns the user's join-date marker, or ErrUserNotFound when no
// marker exists.
func (r *UserRepository) JoinDate(ctx context.Context, userID string) (time.Time, error) {
	raw, err := r.store.Get(ctx, joinDateKeyPrefix+userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return time.Time{}, ErrUserNotFound
		}
		return time.Time{}, fmt.Errorf("read join date: %w", err)
	}

	joined, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode join date: %w", err)
	}
	return joined, nil
}

func (r *UserRepository) all(ctx context.Context) ([]*model.User, error) {
	raw, err := r.store.Get(ctx, usersKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []*model.User{}, nil
		}
		return nil, fmt.Errorf("read users: %w", err)
	}

	var stored []*storedUser
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	users := make([]*model.User, len(stored))
	for i, u := range stored {
		users[i] = fromStored(u)
	}
	return users, nil
}

func (r *UserRepository) save(ctx context.Context, users []*model.User) error {
	stored := make([]*storedUser, len(users))
	for i, u := range users {
		stored[i] = toStored(u)
	}
	encoded, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := r.store.Set(ctx, usersKey, string(encoded)); err != nil {
		return fmt.Errorf("write users: %w", err)
	}
	return nil
}
