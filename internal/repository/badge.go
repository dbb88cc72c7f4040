package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/livejourney/api/internal/model"
	"github.com/livejourney/api/internal/storage"
)

// earnedBadgesKeyPrefix namespaces one earned-badge list per user.
const earnedBadgesKeyPrefix = "earnedBadges:"

// BadgeRepository handles per-user earned-badge lists.
//
// The check-then-append award flow spans List and Append; callers must hold
// the per-user lock across both so concurrent triggers cannot double-award.
type BadgeRepository struct {
	store storage.Store
}

// NewBadgeRepository creates a new badge repository.
func NewBadgeRepository(store storage.Store) *BadgeRepository {
	return &BadgeRepository{store: store}
}

// List returns the user's earned badges in award order. A user with no
// awards decodes to an empty slice.
func (r *BadgeRepository) List(ctx context.Context, userID string) ([]*model.EarnedBadge, error) {
	raw, err := r.store.Get(ctx, earnedBadgesKeyPrefix+userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []*model.EarnedBadge{}, nil
		}
		return nil, fmt.Errorf("read earned badges: %w", err)
	}

	var badges []*model.EarnedBadge
	if err := json.Unmarshal([]byte(raw), &badges); err != nil {
		return nil, fmt.Errorf("decode earned badges: %w", err)
	}
	return badges, nil
}

// Append adds one earned badge to the user's list.
func (r *BadgeRepository) Append(ctx context.Context, userID string, badge *model.EarnedBadge) error {
	badges, err := r.List(ctx, userID)
	if err != nil {
		return err
	}
	badges = append(badges, badge)

	encoded, err := json.Marshal(badges)
	if err != nil {
		return fmt.Errorf("encode earned badges: %w", err)
	}
	if err := r.store.Set(ctx, earnedBadgesKeyPrefix+userID, string(encoded)); err != nil {
		return fmt.Errorf("write earned badges: %w", err)
	}
	return nil
}
