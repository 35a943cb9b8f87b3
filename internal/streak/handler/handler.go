package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"healthanchor/internal/platform/middleware"
	"healthanchor/internal/streak/service"
	"healthanchor/internal/transport/http/shared"
	dErrors "healthanchor/pkg/domainerrors"
)

// Service defines the streak operations the handler depends on.
type Service interface {
	RecordActivity(ctx context.Context, actorID string) (service.Snapshot, error)
	GetStreak(ctx context.Context, actorID string) (service.Snapshot, error)
}

// Handler exposes streak accounting over HTTP.
type Handler struct {
	logger  *slog.Logger
	streaks Service
}

// New creates a new streak Handler.
func New(streaks Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, streaks: streaks}
}

// Register registers the streak routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/streaks", h.handleRecordActivity)
	r.Get("/streaks/{actorID}", h.handleGetStreak)
}

type recordActivityRequest struct {
	ActorID string `json:"actorId"`
}

type snapshotResponse struct {
	ActorID          string `json:"actorId"`
	CurrentStreak    int    `json:"currentStreak"`
	LastActivityDate string `json:"lastActivityDate"`
	TotalActivities  int    `json:"totalActivities"`
	RewardPoints     int    `json:"rewardPoints,omitempty"`
}

func (h *Handler) handleRecordActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req recordActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidArgument, "invalid request body"))
		return
	}

	snapshot, err := h.streaks.RecordActivity(ctx, req.ActorID)
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeInvalidArgument) {
			h.logger.ErrorContext(ctx, "streak update failed",
				"error", err.Error(),
				"request_id", middleware.GetRequestID(ctx),
			)
		}
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, toSnapshotResponse(snapshot))
}

func (h *Handler) handleGetStreak(w http.ResponseWriter, r *http.Request) {
	actorID := chi.URLParam(r, "actorID")

	snapshot, err := h.streaks.GetStreak(r.Context(), actorID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toSnapshotResponse(snapshot))
}

func toSnapshotResponse(s service.Snapshot) snapshotResponse {
	return snapshotResponse{
		ActorID:          s.ActorID,
		CurrentStreak:    s.CurrentStreak,
		LastActivityDate: s.LastActivityDate,
		TotalActivities:  s.TotalActivities,
		RewardPoints:     s.RewardPoints,
	}
}
