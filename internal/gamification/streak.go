package gamification

import "time"

// StreakState is the per-user consecutive-day state carried between
// completion events.
type StreakState struct {
	Current      int
	Max          int
	LastTestDate *time.Time
}

// civilDay truncates a timestamp to its UTC calendar day. All streak
// comparisons happen on civil days in a single reference zone so a test at
// 23:59 in one offset and 00:01 in another cannot split a day in two.
func civilDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole civil days from a to b (negative if b is
// before a).
func daysBetween(a, b time.Time) int {
	return int(civilDay(b).Sub(civilDay(a)).Hours() / 24)
}

// ApplyCompletion advances the streak state for a test completed at the
// given time. Same-day repeats leave the counters alone, a next-day test
// extends the streak, and any other gap resets it to 1. A backdated test
// (negative gap) is treated like a gap: the event stream is out of order
// and the transition stays total rather than special-casing it. The last
// test date is always overwritten.
//
// This must run exactly once per completion event, before the XP
// calculator reads Current: the streak bonus uses the updated value, so a
// qualifying day's own test is rewarded immediately.
func ApplyCompletion(st StreakState, at time.Time) StreakState {
	if st.LastTestDate == nil {
		// First test ever
		st.Current = 1
		st.Max = 1
	} else {
		switch gap := daysBetween(*st.LastTestDate, at); {
		case gap == 0:
			// Same day, no streak change
		case gap == 1:
			st.Current++
			if st.Current > st.Max {
				st.Max = st.Current
			}
		default:
			st.Current = 1
		}
	}

	d := at
	st.LastTestDate = &d
	return st
}
