package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"healthanchor/internal/streak"
	"healthanchor/pkg/platform/sentinel"
)

const (
	// Redis key prefix for streak states.
	streakKeyPrefix = "streak:actor:"

	// maxTxRetries bounds the optimistic WATCH retry loop. Contention on a
	// single actor key is rare (one doctor, one device), so a handful of
	// retries is plenty.
	maxTxRetries = 5
)

// Store is a Redis-backed streak store for distributed deployments where
// multiple instances share streak state. Per-key serialization uses WATCH:
// a concurrent write to the same actor key fails the transaction and the
// read-modify-write is retried against the fresh state.
type Store struct {
	client *redis.Client
}

// New constructs a Redis-backed streak store.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// persistedState is the JSON document stored per actor.
type persistedState struct {
	CurrentStreak    int    `json:"currentStreak"`
	LastActivityDate string `json:"lastActivityDate,omitempty"`
	TotalActivities  int    `json:"totalActivities"`
}

func (s *Store) Find(ctx context.Context, actorID string) (streak.State, error) {
	raw, err := s.client.Get(ctx, streakKeyPrefix+actorID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return streak.State{}, fmt.Errorf("streak for %s: %w", actorID, sentinel.ErrNotFound)
		}
		return streak.State{}, fmt.Errorf("find streak: %w", err)
	}
	return decodeState(actorID, []byte(raw))
}

func (s *Store) Update(ctx context.Context, actorID string, fn func(streak.State) (streak.State, error)) (streak.State, error) {
	key := streakKeyPrefix + actorID
	var result streak.State

	txf := func(tx *redis.Tx) error {
		current := streak.State{ActorID: actorID}
		raw, err := tx.Get(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("read streak: %w", err)
		}
		if err == nil {
			if current, err = decodeState(actorID, []byte(raw)); err != nil {
				return err
			}
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		next.ActorID = actorID

		payload, err := json.Marshal(persistedState{
			CurrentStreak:    next.CurrentStreak,
			LastActivityDate: next.LastActivityDate.String(),
			TotalActivities:  next.TotalActivities,
		})
		if err != nil {
			return fmt.Errorf("marshal streak: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		if err != nil {
			return err
		}
		result = next
		return nil
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return streak.State{}, err
	}
	return streak.State{}, fmt.Errorf("streak update contention for %s: %w", actorID, sentinel.ErrUnavailable)
}

func decodeState(actorID string, raw []byte) (streak.State, error) {
	var p persistedState
	if err := json.Unmarshal(raw, &p); err != nil {
		return streak.State{}, fmt.Errorf("decode streak state: %w", err)
	}
	state := streak.State{
		ActorID:         actorID,
		CurrentStreak:   p.CurrentStreak,
		TotalActivities: p.TotalActivities,
	}
	if p.LastActivityDate != "" {
		day, err := streak.ParseDate(p.LastActivityDate)
		if err != nil {
			return streak.State{}, err
		}
		state.LastActivityDate = day
	}
	return state, nil
}
