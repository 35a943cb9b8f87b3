package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"healthanchor/internal/streak"
	"healthanchor/pkg/platform/sentinel"
)

type StreakMemoryStoreSuite struct {
	suite.Suite
	store *Store
}

func (s *StreakMemoryStoreSuite) SetupTest() {
	s.store = New()
}

func TestStreakMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(StreakMemoryStoreSuite))
}

func (s *StreakMemoryStoreSuite) TestFind() {
	ctx := context.Background()

	s.Run("unknown actor returns ErrNotFound", func() {
		_, err := s.store.Find(ctx, "doctor-unknown")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns the persisted state", func() {
		day, err := streak.ParseDate("2026-08-30")
		s.Require().NoError(err)

		_, err = s.store.Update(ctx, "doctor-1", func(st streak.State) (streak.State, error) {
			next, _ := streak.Advance(st, day)
			return next, nil
		})
		s.Require().NoError(err)

		state, err := s.store.Find(ctx, "doctor-1")
		s.Require().NoError(err)
		s.Equal(1, state.CurrentStreak)
		s.Equal("doctor-1", state.ActorID)
	})
}

func (s *StreakMemoryStoreSuite) TestUpdateSerializesPerActor() {
	ctx := context.Background()
	day, err := streak.ParseDate("2026-08-30")
	s.Require().NoError(err)

	// All goroutines record activity for the same actor on the same day.
	// Serialized updates must collapse the repeats into SameDay no-ops.
	const workers = 32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.store.Update(ctx, "doctor-race", func(st streak.State) (streak.State, error) {
				next, _ := streak.Advance(st, day)
				return next, nil
			})
		}()
	}
	wg.Wait()

	state, err := s.store.Find(ctx, "doctor-race")
	s.Require().NoError(err)
	s.Equal(1, state.CurrentStreak)
	s.Equal(1, state.TotalActivities, "same-day repeats must not double-count")
}

func (s *StreakMemoryStoreSuite) TestUpdatePropagatesFnError() {
	ctx := context.Background()
	wantErr := sentinel.ErrUnavailable

	_, err := s.store.Update(ctx, "doctor-1", func(streak.State) (streak.State, error) {
		return streak.State{}, wantErr
	})
	s.Require().ErrorIs(err, wantErr)

	_, err = s.store.Find(ctx, "doctor-1")
	s.Require().ErrorIs(err, sentinel.ErrNotFound, "failed update must not persist")
}
