package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/livejourney/api/internal/model"
	"github.com/livejourney/api/internal/repository"
)

// ActivityRepositoryInterface defines the repository interface.
type ActivityRepositoryInterface interface {
	All(ctx context.Context) ([]*model.ActivityRecord, error)
	Get(ctx context.Context, id string) (*model.ActivityRecord, error)
	Append(ctx context.Context, record *model.ActivityRecord) error
	AddLike(ctx context.Context, id string) (*model.ActivityRecord, error)
	AddComment(ctx context.Context, id string) (*model.ActivityRecord, error)
	Delete(ctx context.Context, id string) error
}

// ActivityService handles the activity log: post creation, engagement
// counters, and explicit deletion. It is the durable-fact side of the
// engine; everything the progression services derive starts here.
type ActivityService struct {
	repo ActivityRepositoryInterface
}

// NewActivityService creates a new activity service.
func NewActivityService(repo ActivityRepositoryInterface) *ActivityService {
	return &ActivityService{repo: repo}
}

// CreateRequest carries the fields of a new post.
type CreateRequest struct {
	Location string
	Region   string
	Category string
}

// Create persists a new activity record owned by userID. The region label
// defaults to the first token of the location.
func (s *ActivityService) Create(ctx context.Context, userID string, req CreateRequest) (*model.ActivityRecord, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if strings.TrimSpace(req.Location) == "" && strings.TrimSpace(req.Region) == "" {
		return nil, ErrMissingLocation
	}

	record := &model.ActivityRecord{
		UserID:    userID,
		CreatedAt: time.Now(),
		Location:  strings.TrimSpace(req.Location),
		Region:    strings.TrimSpace(req.Region),
		Category:  strings.TrimSpace(req.Category),
	}
	if err := s.repo.Append(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Feed returns the non-seed activity log, newest first.
func (s *ActivityService) Feed(ctx context.Context) ([]*model.ActivityRecord, error) {
	records, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	feed := make([]*model.ActivityRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		if !records[i].IsSeed() {
			feed = append(feed, records[i])
		}
	}
	return feed, nil
}

// Like increments the like counter and returns the updated record.
func (s *ActivityService) Like(ctx context.Context, id string) (*model.ActivityRecord, error) {
	record, err := s.repo.AddLike(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return record, nil
}

// Comment increments the comment counter and returns the updated record.
func (s *ActivityService) Comment(ctx context.Context, id string) (*model.ActivityRecord, error) {
	record, err := s.repo.AddComment(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return record, nil
}

// Delete removes a record after checking ownership.
func (s *ActivityService) Delete(ctx context.Context, userID, id string) error {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return ErrActivityNotFound
		}
		return err
	}
	if record.UserID != userID {
		return ErrNotRecordOwner
	}
	return s.repo.Delete(ctx, id)
}
