// Package service orchestrates streak updates around the pure transition
// engine: it owns clock handling, persistence, and reward payout, keeping the
// arithmetic itself dependency-free.
package service

import (
	"context"
	"errors"
	"log/slog"

	"healthanchor/internal/audit"
	"healthanchor/internal/streak"
	"healthanchor/internal/streak/metrics"
	"healthanchor/pkg/domainerrors"
	"healthanchor/pkg/platform/sentinel"
	"healthanchor/pkg/requestcontext"
)

// Snapshot is the boundary shape for streak state plus the reward earned by
// the triggering update. RewardPoints is only meaningful on RecordActivity
// responses; plain queries leave it zero.
type Snapshot struct {
	ActorID          string
	CurrentStreak    int
	LastActivityDate string // ISO 8601 date, empty when no activity yet
	TotalActivities  int
	RewardPoints     int
}

// Service wires the streak engine to its store and side channels.
type Service struct {
	store   streak.Store
	auditor *audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewService(store streak.Store, auditor *audit.Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{store: store, auditor: auditor, metrics: m, logger: logger}
}

// RecordActivity counts one qualifying activity for the actor on the
// request-scoped "today" and returns the post-transition snapshot. The store
// serializes updates per actor, so concurrent same-day activities collapse
// into a single counted day.
func (s *Service) RecordActivity(ctx context.Context, actorID string) (Snapshot, error) {
	if actorID == "" {
		return Snapshot{}, domainerrors.New(domainerrors.CodeInvalidArgument, "actorId is required")
	}

	day := streak.DateOf(requestcontext.Now(ctx))

	var transition streak.Transition
	state, err := s.store.Update(ctx, actorID, func(prior streak.State) (streak.State, error) {
		next, t := streak.Advance(prior, day)
		transition = t
		return next, nil
	})
	if err != nil {
		return Snapshot{}, domainerrors.Wrap(domainerrors.CodeInternal, "streak store update failed", err)
	}

	points := streak.RewardPoints(state.CurrentStreak)

	if s.metrics != nil {
		s.metrics.IncrementActivity(string(transition))
		s.metrics.AddRewardPoints(points)
	}
	if s.auditor != nil && transition != streak.TransitionSameDay {
		s.auditor.Emit(ctx, audit.Event{
			Kind:      audit.KindStreakAdvanced,
			ActorID:   actorID,
			RequestID: requestcontext.RequestID(ctx),
		})
	}
	s.logger.InfoContext(ctx, "streak activity recorded",
		"actor_id", actorID,
		"transition", transition,
		"current_streak", state.CurrentStreak,
		"request_id", requestcontext.RequestID(ctx),
	)

	snapshot := toSnapshot(state)
	snapshot.RewardPoints = points
	return snapshot, nil
}

// GetStreak returns the actor's current state, zero-valued for unknown
// actors (a doctor who has never uploaded simply has no streak yet).
func (s *Service) GetStreak(ctx context.Context, actorID string) (Snapshot, error) {
	if actorID == "" {
		return Snapshot{}, domainerrors.New(domainerrors.CodeInvalidArgument, "actorId is required")
	}

	state, err := s.store.Find(ctx, actorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Snapshot{ActorID: actorID}, nil
		}
		return Snapshot{}, domainerrors.Wrap(domainerrors.CodeInternal, "streak store read failed", err)
	}
	return toSnapshot(state), nil
}

func toSnapshot(state streak.State) Snapshot {
	return Snapshot{
		ActorID:          state.ActorID,
		CurrentStreak:    state.CurrentStreak,
		LastActivityDate: state.LastActivityDate.String(),
		TotalActivities:  state.TotalActivities,
	}
}
