//go:build integration

package redis_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"healthanchor/internal/streak"
	redisstore "healthanchor/internal/streak/store/redis"
	"healthanchor/pkg/platform/sentinel"
	"healthanchor/pkg/testutil/containers"
)

type RedisStreakStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *redisstore.Store
}

func TestRedisStreakStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStreakStoreSuite))
}

func (s *RedisStreakStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = redisstore.New(s.redis.Client)
}

func (s *RedisStreakStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.Client.FlushAll(context.Background()).Err())
}

func (s *RedisStreakStoreSuite) advance(actorID, date string) streak.State {
	day, err := streak.ParseDate(date)
	s.Require().NoError(err)
	state, err := s.store.Update(context.Background(), actorID, func(st streak.State) (streak.State, error) {
		next, _ := streak.Advance(st, day)
		return next, nil
	})
	s.Require().NoError(err)
	return state
}

func (s *RedisStreakStoreSuite) TestRoundTrip() {
	state := s.advance("doctor-1", "2026-08-29")
	s.Equal(1, state.CurrentStreak)

	state = s.advance("doctor-1", "2026-08-30")
	s.Equal(2, state.CurrentStreak)
	s.Equal(2, state.TotalActivities)

	found, err := s.store.Find(context.Background(), "doctor-1")
	s.Require().NoError(err)
	s.Equal(state, found)
}

func (s *RedisStreakStoreSuite) TestFindUnknownActor() {
	_, err := s.store.Find(context.Background(), "doctor-unknown")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStreakStoreSuite) TestConcurrentSameDayUpdates() {
	day, err := streak.ParseDate("2026-08-30")
	s.Require().NoError(err)

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.store.Update(context.Background(), "doctor-race", func(st streak.State) (streak.State, error) {
				next, _ := streak.Advance(st, day)
				return next, nil
			})
		}()
	}
	wg.Wait()

	state, err := s.store.Find(context.Background(), "doctor-race")
	s.Require().NoError(err)
	s.Equal(1, state.CurrentStreak)
	s.Equal(1, state.TotalActivities, "same-day repeats must not double-count")
}
