package session

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerRunsOncePerQuietPeriod(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var runs int32
	for i := 0; i < 10; i++ {
		d.Schedule(func() { atomic.AddInt32(&runs, 1) })
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&runs); got != 1 {
		t.Errorf("expected one run after the burst, got %d", got)
	}
}

func TestDebouncerSchedulesAgainAfterFiring(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	var runs int32
	d.Schedule(func() { atomic.AddInt32(&runs, 1) })
	time.Sleep(50 * time.Millisecond)
	d.Schedule(func() { atomic.AddInt32(&runs, 1) })
	time.Sleep(50 * time.Millisecond)

	if got := atomic.LoadInt32(&runs); got != 2 {
		t.Errorf("expected two separated runs, got %d", got)
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var runs int32
	d.Schedule(func() { atomic.AddInt32(&runs, 1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	if got := atomic.LoadInt32(&runs); got != 0 {
		t.Errorf("stopped task must not run, got %d", got)
	}
}
