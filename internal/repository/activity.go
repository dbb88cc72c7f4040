package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/livejourney/api/internal/model"
	"github.com/livejourney/api/internal/storage"
)

// activityLogKey holds the full activity log as one JSON array.
const activityLogKey = "uploadedPosts"

// Sentinel errors for activity access.
var (
	ErrActivityNotFound = errors.New("activity record not found")
)

// ActivityRepository handles the shared activity log.
type ActivityRepository struct {
	store storage.Store

	// The log is one key shared by all users; serialize read-modify-write.
	mu sync.Mutex
}

// NewActivityRepository creates a new activity repository.
func NewActivityRepository(store storage.Store) *ActivityRepository {
	return &ActivityRepository{store: store}
}

// All returns every record in the log, in storage order. A log that has
// never been written decodes to an empty slice.
func (r *ActivityRepository) All(ctx context.Context) ([]*model.ActivityRecord, error) {
	raw, err := r.store.Get(ctx, activityLogKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []*model.ActivityRecord{}, nil
		}
		return nil, fmt.Errorf("read activity log: %w", err)
	}

	var records []*model.ActivityRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode activity log: %w", err)
	}
	return records, nil
}

// Get returns one record by ID, or ErrActivityNotFound.
func (r *ActivityRepository) Get(ctx context.Context, id string) (*model.ActivityRecord, error) {
	records, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, ErrActivityNotFound
}

// Append adds a record to the log. A missing ID or creation time is filled
// in here.
func (r *ActivityRepository) Append(ctx context.Context, record *model.ActivityRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.All(ctx)
	if err != nil {
		return err
	}
	records = append(records, record)
	return r.save(ctx, records)
}

// AddLike increments the like counter of one record and returns the
// updated record.
func (r *ActivityRepository) AddLike(ctx context.Context, id string) (*model.ActivityRecord, error) {
	return r.update(ctx, id, func(rec *model.ActivityRecord) {
		rec.Likes++
	})
}

// AddComment increments the comment counter of one record and returns the
// updated record.
func (r *ActivityRepository) AddComment(ctx context.Context, id string) (*model.ActivityRecord, error) {
	return r.update(ctx, id, func(rec *model.ActivityRecord) {
		rec.Comments++
	})
}

// Delete removes one record from the log.
func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.All(ctx)
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, rec := range records {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return ErrActivityNotFound
	}
	return r.save(ctx, kept)
}

func (r *ActivityRepository) update(ctx context.Context, id string, apply func(*model.ActivityRecord)) (*model.ActivityRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.ID == id {
			apply(rec)
			if err := r.save(ctx, records); err != nil {
				return nil, err
			}
			return rec, nil
		}
	}
	return nil, ErrActivityNotFound
}

func (r *ActivityRepository) save(ctx context.Context, records []*model.ActivityRecord) error {
	encoded, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode activity log: %w", err)
	}
	if err := r.store.Set(ctx, activityLogKey, string(encoded)); err != nil {
		return fmt.Errorf("write activity log: %w", err)
	}
	return nil
}
