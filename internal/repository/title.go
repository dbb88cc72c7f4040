package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/livejourney/api/internal/model"
	"github.com/livejourney/api/internal/storage"
)

// dailyTitlesKey holds the day→user→award map as one JSON object.
const dailyTitlesKey = "dailyTitles"

// titleMap is day key → user ID → award.
type titleMap map[string]map[string]*model.DailyTitleAward

// TitleRepository handles daily-title awards.
type TitleRepository struct {
	store storage.Store

	// One key shared by all users and days; serialize read-modify-write.
	mu sync.Mutex
}

// NewTitleRepository creates a new daily-title repository.
func NewTitleRepository(store storage.Store) *TitleRepository {
	return &TitleRepository{store: store}
}

// Get returns the award for (day, user), or nil when none exists.
func (r *TitleRepository) Get(ctx context.Context, day, userID string) (*model.DailyTitleAward, error) {
	titles, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return titles[day][userID], nil
}

// Put stores the award for (day, user), overwriting any existing award.
func (r *TitleRepository) Put(ctx context.Context, day, userID string, award *model.DailyTitleAward) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	titles, err := r.load(ctx)
	if err != nil {
		return err
	}
	if titles[day] == nil {
		titles[day] = make(map[string]*model.DailyTitleAward)
	}
	titles[day][userID] = award
	return r.save(ctx, titles)
}

// Delete removes the award for (day, user). Removing an absent award is
// not an error.
func (r *TitleRepository) Delete(ctx context.Context, day, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	titles, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := titles[day][userID]; !ok {
		return nil
	}
	delete(titles[day], userID)
	if len(titles[day]) == 0 {
		delete(titles, day)
	}
	return r.save(ctx, titles)
}

// PruneBefore removes every day bucket whose key sorts before day and
// returns the number of awards removed. Day keys are YYYY-MM-DD, so
// lexicographic order is chronological order.
func (r *TitleRepository) PruneBefore(ctx context.Context, day string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	titles, err := r.load(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for key, awards := range titles {
		if key < day {
			removed += len(awards)
			delete(titles, key)
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, r.save(ctx, titles)
}

func (r *TitleRepository) load(ctx context.Context) (titleMap, error) {
	raw, err := r.store.Get(ctx, dailyTitlesKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return titleMap{}, nil
		}
		return nil, fmt.Errorf("read daily titles: %w", err)
	}

	var titles titleMap
	if err := json.Unmarshal([]byte(raw), &titles); err != nil {
		return nil, fmt.Errorf("decode daily titles: %w", err)
	}
	return titles, nil
}

func (r *TitleRepository) save(ctx context.Context, titles titleMap) error {
	encoded, err := json.Marshal(titles)
	if err != nil {
		return fmt.Errorf("encode daily titles: %w", err)
	}
	if err := r.store.Set(ctx, dailyTitlesKey, string(encoded)); err != nil {
		return fmt.Errorf("write daily titles: %w", err)
	}
	return nil
}
