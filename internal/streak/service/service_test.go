package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"healthanchor/internal/streak/store/memory"
	"healthanchor/pkg/domainerrors"
	"healthanchor/pkg/requestcontext"
)

type StreakServiceSuite struct {
	suite.Suite
	svc *Service
}

func TestStreakServiceSuite(t *testing.T) {
	suite.Run(t, new(StreakServiceSuite))
}

func (s *StreakServiceSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.svc = NewService(memory.New(), nil, nil, logger)
}

// onDay pins the request clock to noon UTC of the given date.
func onDay(date string) context.Context {
	t, _ := time.Parse("2006-01-02", date)
	return requestcontext.WithTime(context.Background(), t.Add(12*time.Hour))
}

func (s *StreakServiceSuite) TestRecordActivity() {
	s.Run("first activity yields streak 1 and 12 points", func() {
		snap, err := s.svc.RecordActivity(onDay("2026-08-30"), "doctor-1")
		s.Require().NoError(err)
		s.Equal(1, snap.CurrentStreak)
		s.Equal("2026-08-30", snap.LastActivityDate)
		s.Equal(1, snap.TotalActivities)
		s.Equal(12, snap.RewardPoints)
	})

	s.Run("consecutive days build the streak", func() {
		_, err := s.svc.RecordActivity(onDay("2026-08-29"), "doctor-2")
		s.Require().NoError(err)
		snap, err := s.svc.RecordActivity(onDay("2026-08-30"), "doctor-2")
		s.Require().NoError(err)
		s.Equal(2, snap.CurrentStreak)
		s.Equal(14, snap.RewardPoints)
	})

	s.Run("same day repeat keeps counters but still pays points", func() {
		_, err := s.svc.RecordActivity(onDay("2026-08-30"), "doctor-3")
		s.Require().NoError(err)
		snap, err := s.svc.RecordActivity(onDay("2026-08-30"), "doctor-3")
		s.Require().NoError(err)
		s.Equal(1, snap.CurrentStreak)
		s.Equal(1, snap.TotalActivities, "same-day repeat does not double-count")
		s.Equal(12, snap.RewardPoints)
	})

	s.Run("a gap resets to 1", func() {
		_, err := s.svc.RecordActivity(onDay("2026-08-25"), "doctor-4")
		s.Require().NoError(err)
		snap, err := s.svc.RecordActivity(onDay("2026-08-30"), "doctor-4")
		s.Require().NoError(err)
		s.Equal(1, snap.CurrentStreak)
		s.Equal(2, snap.TotalActivities)
	})

	s.Run("empty actor id fails invalid_argument", func() {
		_, err := s.svc.RecordActivity(context.Background(), "")
		s.True(domainerrors.Is(err, domainerrors.CodeInvalidArgument))
	})
}

func (s *StreakServiceSuite) TestGetStreak() {
	s.Run("unknown actor gets zero-valued defaults", func() {
		snap, err := s.svc.GetStreak(context.Background(), "doctor-new")
		s.Require().NoError(err)
		s.Equal(0, snap.CurrentStreak)
		s.Equal("", snap.LastActivityDate)
		s.Equal(0, snap.TotalActivities)
	})

	s.Run("reflects recorded activity without paying points", func() {
		_, err := s.svc.RecordActivity(onDay("2026-08-30"), "doctor-5")
		s.Require().NoError(err)

		snap, err := s.svc.GetStreak(context.Background(), "doctor-5")
		s.Require().NoError(err)
		s.Equal(1, snap.CurrentStreak)
		s.Equal("2026-08-30", snap.LastActivityDate)
		s.Equal(0, snap.RewardPoints, "queries do not pay rewards")
	})
}
