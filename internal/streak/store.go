package streak

import "context"

// Store persists one State per actor.
//
// Error contract:
// - Find returns sentinel.ErrNotFound (wrapped) for actors with no activity.
// - Update runs fn inside the store's per-key critical section: fn sees the
//   current state (zero-valued with ActorID set for new actors) and returns
//   the successor to persist. Two concurrent updates for the same actor are
//   serialized, so a same-day race cannot double-count.
type Store interface {
	Find(ctx context.Context, actorID string) (State, error)
	Update(ctx context.Context, actorID string, fn func(State) (State, error)) (State, error)
}
