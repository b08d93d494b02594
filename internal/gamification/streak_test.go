package gamification

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestApplyCompletionFirstTest(t *testing.T) {
	at := day(2026, 3, 10)
	got := ApplyCompletion(StreakState{}, at)

	if got.Current != 1 || got.Max != 1 {
		t.Errorf("first test: streak = (%d, %d), want (1, 1)", got.Current, got.Max)
	}
	if got.LastTestDate == nil || !got.LastTestDate.Equal(at) {
		t.Errorf("first test: LastTestDate = %v, want %v", got.LastTestDate, at)
	}
}

func TestApplyCompletionSameDay(t *testing.T) {
	morning := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 10, 22, 30, 0, 0, time.UTC)

	st := StreakState{Current: 4, Max: 6, LastTestDate: &morning}
	got := ApplyCompletion(st, evening)

	if got.Current != 4 || got.Max != 6 {
		t.Errorf("same day: streak = (%d, %d), want (4, 6)", got.Current, got.Max)
	}
	if !got.LastTestDate.Equal(evening) {
		t.Errorf("same day: LastTestDate not advanced to %v", evening)
	}
}

func TestApplyCompletionConsecutiveDay(t *testing.T) {
	yesterday := day(2026, 3, 10)

	st := StreakState{Current: 4, Max: 6, LastTestDate: &yesterday}
	got := ApplyCompletion(st, day(2026, 3, 11))

	if got.Current != 5 {
		t.Errorf("consecutive day: Current = %d, want 5", got.Current)
	}
	if got.Max != 6 {
		t.Errorf("consecutive day: Max = %d, want 6", got.Max)
	}

	// Extending past the old max raises the watermark too
	st = StreakState{Current: 6, Max: 6, LastTestDate: &yesterday}
	got = ApplyCompletion(st, day(2026, 3, 11))

	if got.Current != 7 || got.Max != 7 {
		t.Errorf("new record: streak = (%d, %d), want (7, 7)", got.Current, got.Max)
	}
}

func TestApplyCompletionGapResets(t *testing.T) {
	lastWeek := day(2026, 3, 3)

	st := StreakState{Current: 9, Max: 9, LastTestDate: &lastWeek}
	got := ApplyCompletion(st, day(2026, 3, 10))

	if got.Current != 1 {
		t.Errorf("gap: Current = %d, want 1", got.Current)
	}
	if got.Max != 9 {
		t.Errorf("gap: Max = %d, want 9", got.Max)
	}
}

func TestApplyCompletionBackdatedResets(t *testing.T) {
	// A timestamp before the last test is treated like a gap
	today := day(2026, 3, 10)

	st := StreakState{Current: 5, Max: 5, LastTestDate: &today}
	got := ApplyCompletion(st, day(2026, 3, 8))

	if got.Current != 1 {
		t.Errorf("backdated: Current = %d, want 1", got.Current)
	}
	if got.Max != 5 {
		t.Errorf("backdated: Max = %d, want 5", got.Max)
	}
	if !got.LastTestDate.Equal(day(2026, 3, 8)) {
		t.Errorf("backdated: LastTestDate = %v, want the backdated time", got.LastTestDate)
	}
}

func TestApplyCompletionCivilDayBoundary(t *testing.T) {
	// 23:59 and 00:01 the next day are consecutive civil days
	lateNight := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	justAfterMidnight := time.Date(2026, 3, 11, 0, 1, 0, 0, time.UTC)

	st := StreakState{Current: 2, Max: 2, LastTestDate: &lateNight}
	got := ApplyCompletion(st, justAfterMidnight)

	if got.Current != 3 {
		t.Errorf("midnight boundary: Current = %d, want 3", got.Current)
	}

	// Non-UTC offsets are normalized before comparison
	est := time.FixedZone("EST", -5*3600)
	sameDayInUTC := time.Date(2026, 3, 10, 20, 0, 0, 0, est) // 01:00 Mar 11 UTC

	st = StreakState{Current: 2, Max: 2, LastTestDate: &lateNight}
	got = ApplyCompletion(st, sameDayInUTC)

	if got.Current != 3 {
		t.Errorf("offset normalization: Current = %d, want 3", got.Current)
	}
}

func TestApplyCompletionSequence(t *testing.T) {
	// Three consecutive days, a repeat, then a gap
	st := ApplyCompletion(StreakState{}, day(2026, 4, 1))
	st = ApplyCompletion(st, day(2026, 4, 2))
	st = ApplyCompletion(st, day(2026, 4, 3))

	if st.Current != 3 || st.Max != 3 {
		t.Fatalf("after three days: streak = (%d, %d), want (3, 3)", st.Current, st.Max)
	}

	st = ApplyCompletion(st, day(2026, 4, 3))
	if st.Current != 3 {
		t.Errorf("repeat day: Current = %d, want 3", st.Current)
	}

	st = ApplyCompletion(st, day(2026, 4, 10))
	if st.Current != 1 || st.Max != 3 {
		t.Errorf("after gap: streak = (%d, %d), want (1, 3)", st.Current, st.Max)
	}
}
