package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/reelkit/reelkit-backend/internal/pkg/apierr"
)

func pinnedStreakService(t *testing.T, e *testEnv, at *time.Time) *streakService {
	t.Helper()
	svc := NewStreakService(e.db, e.log, e.streakRepo).(*streakService)
	svc.now = func() time.Time { return *at }
	return svc
}

func TestRecordActivityFirstEver(t *testing.T) {
	e := newTestEnv(t)
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := pinnedStreakService(t, e, &now)
	accountID := uuid.New()

	result, err := svc.RecordActivity(context.Background(), accountID, ActionCheckin)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if result.Streak.Current != 1 || result.Streak.Longest != 1 {
		t.Fatalf("want streak 1/1, got %d/%d", result.Streak.Current, result.Streak.Longest)
	}
	if result.XPGained != 5 {
		t.Fatalf("first checkin should earn base XP only, got %d", result.XPGained)
	}
	if !result.IsNewDay {
		t.Fatalf("first activity must count as a new day")
	}
	if result.Streak.XP != 5 {
		t.Fatalf("want total XP 5, got %d", result.Streak.XP)
	}
}

func TestRecordActivitySameDayNoStreakChange(t *testing.T) {
	e := newTestEnv(t)
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := pinnedStreakService(t, e, &now)
	accountID := uuid.New()

	if _, err := svc.RecordActivity(context.Background(), accountID, ActionCheckin); err != nil {
		t.Fatalf("first checkin: %v", err)
	}

	now = time.Date(2025, 3, 10, 22, 30, 0, 0, time.UTC)
	result, err := svc.RecordActivity(context.Background(), accountID, ActionCheckin)
	if err != nil {
		t.Fatalf("second checkin: %v", err)
	}
	if result.Streak.Current != 1 {
		t.Fatalf("same-day activity must not advance the streak, got %d", result.Streak.Current)
	}
	if result.IsNewDay {
		t.Fatalf("same calendar day must not be flagged as new")
	}
	if result.XPGained != 5 {
		t.Fatalf("same-day checkin earns base XP without bonus, got %d", result.XPGained)
	}
	if result.Streak.XP != 10 {
		t.Fatalf("two checkins total 10 XP, got %d", result.Streak.XP)
	}
}

func TestRecordActivityNextDayBonus(t *testing.T) {
	e := newTestEnv(t)
	now := time.Date(2025, 3, 10, 23, 50, 0, 0, time.UTC)
	svc := pinnedStreakService(t, e, &now)
	accountID := uuid.New()

	if _, err := svc.RecordActivity(context.Background(), accountID, ActionPost); err != nil {
		t.Fatalf("day one: %v", err)
	}

	// Ten minutes later by the clock, but the calendar date flipped.
	now = time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	result, err := svc.RecordActivity(context.Background(), accountID, ActionCheckin)
	if err != nil {
		t.Fatalf("day two: %v", err)
	}
	if result.Streak.Current != 2 {
		t.Fatalf("want streak 2, got %d", result.Streak.Current)
	}
	if result.XPGained != 5+10 {
		t.Fatalf("next-day checkin earns base plus bonus, got %d", result.XPGained)
	}
	if result.Streak.Longest != 2 {
		t.Fatalf("longest should track the new maximum, got %d", result.Streak.Longest)
	}
}

func TestRecordActivityGapResets(t *testing.T) {
	e := newTestEnv(t)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := pinnedStreakService(t, e, &now)
	accountID := uuid.New()

	for day := 0; day < 3; day++ {
		now = time.Date(2025, 3, 10+day, 12, 0, 0, 0, time.UTC)
		if _, err := svc.RecordActivity(context.Background(), accountID, ActionCheckin); err != nil {
			t.Fatalf("day %d: %v", day, err)
		}
	}

	// Skip two days.
	now = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	result, err := svc.RecordActivity(context.Background(), accountID, ActionCheckin)
	if err != nil {
		t.Fatalf("after gap: %v", err)
	}
	if result.Streak.Current != 1 {
		t.Fatalf("gap must reset current streak to 1, got %d", result.Streak.Current)
	}
	if result.Streak.Longest != 3 {
		t.Fatalf("longest must survive the reset, got %d", result.Streak.Longest)
	}
	if result.XPGained != 5 {
		t.Fatalf("reset day earns no continuation bonus, got %d", result.XPGained)
	}
}

func TestRecordActivityXPTable(t *testing.T) {
	cases := []struct {
		action string
		want   int
	}{
		{ActionCheckin, 5},
		{ActionPost, 50},
		{ActionMetrics, 20},
		{"something_else", 10},
	}
	for _, tc := range cases {
		if got := BaseXP(tc.action); got != tc.want {
			t.Fatalf("BaseXP(%q) = %d, want %d", tc.action, got, tc.want)
		}
	}
}

func TestRecordActivityStaleWriteConflicts(t *testing.T) {
	e := newTestEnv(t)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := pinnedStreakService(t, e, &now)
	accountID := uuid.New()

	first, err := svc.RecordActivity(context.Background(), accountID, ActionCheckin)
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}

	// A conditional write keyed on an outdated last_activity_at must not
	// touch the row: this is the cross-process guard the retry loop leans on.
	stale := *first.Streak
	stale.Current = 99
	past := now.Add(-48 * time.Hour)
	rows, err := e.streakRepo.UpdateIfUnchanged(context.Background(), nil, &stale, &past)
	if err != nil {
		t.Fatalf("conditional update: %v", err)
	}
	if rows != 0 {
		t.Fatalf("stale conditional write must match zero rows, got %d", rows)
	}

	current, err := svc.Get(context.Background(), accountID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if current.Current != 1 {
		t.Fatalf("stale write leaked through, streak is %d", current.Current)
	}
}

func TestRecordActivityConcurrentSameDay(t *testing.T) {
	e := newTestEnv(t)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := pinnedStreakService(t, e, &now)
	accountID := uuid.New()

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordActivity(context.Background(), accountID, ActionCheckin)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent checkin: %v", err)
		}
	}

	streak, err := svc.Get(context.Background(), accountID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if streak.Current != 1 {
		t.Fatalf("same-day pileup must leave the streak at 1, got %d", streak.Current)
	}
	if streak.XP != callers*5 {
		t.Fatalf("every caller earns base XP exactly once, want %d got %d", callers*5, streak.XP)
	}
}

func TestRecordActivityValidation(t *testing.T) {
	e := newTestEnv(t)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := pinnedStreakService(t, e, &now)

	if _, err := svc.RecordActivity(context.Background(), uuid.Nil, ActionCheckin); !apierr.IsValidation(err) {
		t.Fatalf("want validation error for nil account id, got %v", err)
	}
}

func TestMilestoneFor(t *testing.T) {
	if m := MilestoneFor(7); m == nil || m.Days != 7 {
		t.Fatalf("day 7 should hit a milestone, got %+v", m)
	}
	if m := MilestoneFor(8); m != nil {
		t.Fatalf("day 8 is not a milestone, got %+v", m)
	}
}

func TestStreakGetLazilyCreates(t *testing.T) {
	e := newTestEnv(t)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := pinnedStreakService(t, e, &now)
	accountID := uuid.New()

	streak, err := svc.Get(context.Background(), accountID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if streak.Current != 0 || streak.Longest != 0 || streak.XP != 0 {
		t.Fatalf("fresh streak must be zero-valued, got %+v", streak)
	}
	if streak.LastActivityAt != nil {
		t.Fatalf("fresh streak must have no activity timestamp")
	}
}
