// Package streak implements the per-actor daily streak state machine and the
// derived reward score. The engine is pure: the caller supplies the activity
// date, so there are no hidden clock reads and tests need no time mocking.
package streak

// Reward formula constants.
const (
	RewardBase      = 10
	RewardPerStreak = 2
)

// State is the persisted streak record for one actor.
// Invariant: CurrentStreak == 0 iff LastActivityDate is zero.
type State struct {
	ActorID          string
	CurrentStreak    int
	LastActivityDate Date
	TotalActivities  int
}

// Transition labels the relationship between an activity date and the prior
// state.
type Transition string

const (
	// TransitionFirstActivity: no prior activity recorded.
	TransitionFirstActivity Transition = "first_activity"
	// TransitionSameDay: repeat activity on the already-counted day; a no-op
	// for counters (documented policy, see DESIGN.md).
	TransitionSameDay Transition = "same_day"
	// TransitionConsecutiveDay: activity exactly one day after the last.
	TransitionConsecutiveDay Transition = "consecutive_day"
	// TransitionReset: a gap, or an out-of-order/backdated activity date.
	TransitionReset Transition = "reset"
)

// Advance computes the successor state for an activity on day. It is a pure
// function of (prior, day); persistence and locking belong to the store.
//
// SameDay leaves both LastActivityDate and TotalActivities untouched: the
// caller still gets reward points for the current streak, but a same-day
// repeat never double-counts.
func Advance(prior State, day Date) (State, Transition) {
	next := prior

	switch {
	case prior.LastActivityDate.IsZero():
		next.CurrentStreak = 1
		next.LastActivityDate = day
		next.TotalActivities++
		return next, TransitionFirstActivity

	case prior.LastActivityDate.Equal(day):
		return next, TransitionSameDay

	case prior.LastActivityDate.Next().Equal(day):
		next.CurrentStreak++
		next.LastActivityDate = day
		next.TotalActivities++
		return next, TransitionConsecutiveDay

	default:
		next.CurrentStreak = 1
		next.LastActivityDate = day
		next.TotalActivities++
		return next, TransitionReset
	}
}

// RewardPoints computes the score for the post-transition streak value.
func RewardPoints(currentStreak int) int {
	return RewardBase + RewardPerStreak*currentStreak
}
