package timeutil

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", now, before, after)
	}
}

func TestRealClock_Since(t *testing.T) {
	clock := RealClock{}
	past := time.Now().Add(-time.Second)
	d := clock.Since(past)

	if d < time.Second {
		t.Errorf("Since() returned %v, expected >= 1s", d)
	}
}

func TestMockClock_SleepAdvances(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	clock.Sleep(2 * time.Millisecond)
	clock.Sleep(0)
	clock.Sleep(-time.Second)
	clock.Sleep(3 * time.Millisecond)

	if got := clock.Since(start); got != 5*time.Millisecond {
		t.Errorf("Since(start) = %v, want 5ms", got)
	}
	sleeps := clock.Sleeps()
	if len(sleeps) != 4 {
		t.Fatalf("recorded %d sleeps, want 4", len(sleeps))
	}
	if sleeps[0] != 2*time.Millisecond || sleeps[3] != 3*time.Millisecond {
		t.Errorf("unexpected sleeps %v", sleeps)
	}
}

func TestMockClock_Advance(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)
	clock.Advance(time.Minute)

	if !clock.Now().Equal(start.Add(time.Minute)) {
		t.Errorf("Now() = %v, want %v", clock.Now(), start.Add(time.Minute))
	}
	if len(clock.Sleeps()) != 0 {
		t.Error("Advance should not record a sleep")
	}
}

func TestMockClock_SleepsIsACopy(t *testing.T) {
	clock := NewMockClock(time.Time{})
	clock.Sleep(time.Second)
	s := clock.Sleeps()
	s[0] = 0
	if clock.Sleeps()[0] != time.Second {
		t.Error("Sleeps() should return a copy")
	}
}
