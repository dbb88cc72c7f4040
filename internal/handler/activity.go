package handler

import (
	"net/http"

	"github.com/livejourney/api/internal/middleware"
	"github.com/livejourney/api/internal/model"
	"github.com/livejourney/api/internal/service"
)

// ActivityHandler handles the activity log endpoints. Every write runs the
// progression cycle after the fact is persisted, so posting and engagement
// responses can carry a celebration payload.
type ActivityHandler struct {
	activityService    *service.ActivityService
	progressionService *service.ProgressionService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService *service.ActivityService, progressionService *service.ProgressionService) *ActivityHandler {
	return &ActivityHandler{
		activityService:    activityService,
		progressionService: progressionService,
	}
}

// CreateActivityRequest represents the upload endpoint request body
type CreateActivityRequest struct {
	Location string `json:"location"`
	Region   string `json:"region,omitempty"`
	Category string `json:"category,omitempty"`
}

// ActivityResponse pairs a record with the celebration it triggered
type ActivityResponse struct {
	Record      *model.ActivityRecord `json:"record"`
	Celebration *service.Celebration  `json:"celebration,omitempty"`
}

// Create handles POST /v1/activities
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req CreateActivityRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	record, err := h.activityService.Create(r.Context(), userID, service.CreateRequest{
		Location: req.Location,
		Region:   req.Region,
		Category: req.Category,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	celebration := h.progressionService.AfterUpload(r.Context(), userID)

	WriteData(w, http.StatusCreated, ActivityResponse{
		Record:      record,
		Celebration: celebration,
	}, map[string]string{
		"self": "/v1/activities/" + record.ID,
	})
}

// Feed handles GET /v1/activities
func (h *ActivityHandler) Feed(w http.ResponseWriter, r *http.Request) {
	records, err := h.activityService.Feed(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, records, nil)
}

// Like handles POST /v1/activities/{id}/likes. The experience grant goes
// to the post owner, not the caller.
func (h *ActivityHandler) Like(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	record, err := h.activityService.Like(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	celebration := h.progressionService.AfterEngagement(r.Context(), record.UserID, model.ActionLikeReceived)

	WriteData(w, http.StatusOK, ActivityResponse{
		Record:      record,
		Celebration: celebration,
	}, nil)
}

// Comment handles POST /v1/activities/{id}/comments
func (h *ActivityHandler) Comment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	record, err := h.activityService.Comment(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	celebration := h.progressionService.AfterEngagement(r.Context(), record.UserID, model.ActionCommentReceived)

	WriteData(w, http.StatusOK, ActivityResponse{
		Record:      record,
		Celebration: celebration,
	}, nil)
}

// Delete handles DELETE /v1/activities/{id}
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	id := r.PathValue("id")

	if err := h.activityService.Delete(r.Context(), userID, id); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
