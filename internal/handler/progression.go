package handler

import (
	"net/http"
	"time"

	"github.com/livejourney/api/internal/middleware"
	"github.com/livejourney/api/internal/model"
	"github.com/livejourney/api/internal/service"
)

// ProgressionHandler serves the read side of the engine: level, badge
// collection, statistics, and the active daily title.
type ProgressionHandler struct {
	statsService *service.StatsService
	levelService *service.LevelService
	badgeService *service.BadgeService
	titleService *service.TitleService
}

// ProgressionHandlerConfig holds dependencies for the progression handler
type ProgressionHandlerConfig struct {
	StatsService *service.StatsService
	LevelService *service.LevelService
	BadgeService *service.BadgeService
	TitleService *service.TitleService
}

// NewProgressionHandler creates a new progression handler
func NewProgressionHandler(cfg ProgressionHandlerConfig) *ProgressionHandler {
	return &ProgressionHandler{
		statsService: cfg.StatsService,
		levelService: cfg.LevelService,
		badgeService: cfg.BadgeService,
		titleService: cfg.TitleService,
	}
}

// BadgeCollectionResponse is the badge screen payload
type BadgeCollectionResponse struct {
	Earned   []*model.EarnedBadge `json:"earned"`
	Statuses []model.BadgeStatus  `json:"statuses"`
}

// TitleResponse wraps the possibly-absent active title
type TitleResponse struct {
	Title *model.DailyTitleAward `json:"title"`
}

// Level handles GET /v1/users/me/level
func (h *ProgressionHandler) Level(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	WriteData(w, http.StatusOK, h.levelService.UserLevel(r.Context(), userID), nil)
}

// Badges handles GET /v1/users/me/badges
func (h *ProgressionHandler) Badges(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	stats := h.statsService.ComputeStatistics(r.Context(), userID)

	WriteData(w, http.StatusOK, BadgeCollectionResponse{
		Earned:   h.badgeService.Earned(r.Context(), userID),
		Statuses: h.badgeService.Statuses(r.Context(), userID, stats),
	}, nil)
}

// Stats handles GET /v1/users/me/stats
func (h *ProgressionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	WriteData(w, http.StatusOK, h.statsService.ComputeStatistics(r.Context(), userID), nil)
}

// MyTitle handles GET /v1/users/me/title
func (h *ProgressionHandler) MyTitle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	h.writeTitle(w, r, userID)
}

// UserTitle handles GET /v1/users/{userId}/title
func (h *ProgressionHandler) UserTitle(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		WriteError(w, model.NewBadRequestError("userId is required"))
		return
	}

	h.writeTitle(w, r, userID)
}

func (h *ProgressionHandler) writeTitle(w http.ResponseWriter, r *http.Request, userID string) {
	award := h.titleService.ActiveTitle(r.Context(), userID, time.Now())
	WriteData(w, http.StatusOK, TitleResponse{Title: award}, nil)
}
