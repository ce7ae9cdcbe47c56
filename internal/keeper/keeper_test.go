package keeper

import (
	"errors"
	"testing"
	"time"
)

// fakeTimer records registrations and fires them only when told to.
type fakeTimer struct {
	next      TimerID
	fns       map[TimerID]func()
	delays    []time.Duration
	cleared   []TimerID
	intervals map[TimerID]bool
	failAfter int // fail registrations once this many succeeded; 0 = never
}

func newFakeTimer() *fakeTimer {
	return &fakeTimer{fns: map[TimerID]func(){}, intervals: map[TimerID]bool{}}
}

func (f *fakeTimer) register(fn func(), d time.Duration, interval bool) (TimerID, error) {
	if f.failAfter > 0 && len(f.delays) >= f.failAfter {
		return 0, errors.New("timer unavailable")
	}
	f.next++
	f.fns[f.next] = fn
	f.delays = append(f.delays, d)
	f.intervals[f.next] = interval
	return f.next, nil
}

func (f *fakeTimer) SetTimeout(fn func(), d time.Duration) (TimerID, error) {
	return f.register(fn, d, false)
}

func (f *fakeTimer) SetInterval(fn func(), d time.Duration) (TimerID, error) {
	return f.register(fn, d, true)
}

func (f *fakeTimer) ClearTimeout(id TimerID) {
	if f.intervals[id] {
		panic("ClearTimeout used on interval")
	}
	delete(f.fns, id)
	f.cleared = append(f.cleared, id)
}

func (f *fakeTimer) ClearInterval(id TimerID) {
	if !f.intervals[id] {
		panic("ClearInterval used on timeout")
	}
	delete(f.fns, id)
	f.cleared = append(f.cleared, id)
}

func (f *fakeTimer) fire(id TimerID) {
	fn, ok := f.fns[id]
	if !ok {
		return
	}
	if !f.intervals[id] {
		delete(f.fns, id)
	}
	fn()
}

func TestSchedule_FiresOnceAndLeavesRegistry(t *testing.T) {
	ft := newFakeTimer()
	k := New(ft)

	calls := 0
	if _, err := k.Schedule(func() { calls++ }, 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if k.Pending() != 1 {
		t.Fatalf("pending: got %d", k.Pending())
	}

	ft.fire(1)
	ft.fire(1)
	if calls != 1 {
		t.Errorf("calls: got %d, want 1", calls)
	}
	if k.Pending() != 0 {
		t.Errorf("pending after fire: got %d", k.Pending())
	}
	if ft.delays[0] != 10*time.Millisecond {
		t.Errorf("delay: got %v", ft.delays[0])
	}
}

func TestCancel(t *testing.T) {
	ft := newFakeTimer()
	k := New(ft)

	called := false
	h, _ := k.Schedule(func() { called = true }, time.Second)
	if !k.Cancel(h) {
		t.Fatal("cancel of pending task returned false")
	}
	if k.Cancel(h) {
		t.Error("second cancel returned true")
	}
	ft.fire(1)
	if called {
		t.Error("cancelled task fired")
	}
	if len(ft.cleared) != 1 {
		t.Errorf("cleared: got %v", ft.cleared)
	}
}

func TestClose_ClearsByKind(t *testing.T) {
	ft := newFakeTimer()
	k := New(ft)

	fired := 0
	k.Schedule(func() { fired++ }, time.Second)
	k.Repeat(func() { fired++ }, time.Second)
	k.Schedule(func() { fired++ }, 2*time.Second)

	// The fake panics if the wrong clear primitive is used.
	k.Close()
	k.Close()

	if k.Pending() != 0 {
		t.Errorf("pending after close: %d", k.Pending())
	}
	if len(ft.cleared) != 3 {
		t.Errorf("cleared %d registrations, want 3", len(ft.cleared))
	}
	for id := TimerID(1); id <= 3; id++ {
		ft.fire(id)
	}
	if fired != 0 {
		t.Errorf("%d tasks fired after close", fired)
	}

	if _, err := k.Schedule(func() {}, 0); !errors.Is(err, ErrClosed) {
		t.Errorf("schedule after close: got %v", err)
	}
	if _, err := k.Repeat(func() {}, time.Second); !errors.Is(err, ErrClosed) {
		t.Errorf("repeat after close: got %v", err)
	}
}

func TestRepeat_StaysPending(t *testing.T) {
	ft := newFakeTimer()
	k := New(ft)

	ticks := 0
	h, err := k.Repeat(func() { ticks++ }, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	ft.fire(1)
	ft.fire(1)
	ft.fire(1)
	if ticks != 3 || k.Pending() != 1 {
		t.Errorf("ticks=%d pending=%d", ticks, k.Pending())
	}
	k.Cancel(h)
	ft.fire(1)
	if ticks != 3 {
		t.Errorf("ticked after cancel: %d", ticks)
	}
}

func TestSchedule_TimerFailure(t *testing.T) {
	ft := newFakeTimer()
	ft.failAfter = 1
	k := New(ft)

	if _, err := k.Schedule(func() {}, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := k.Schedule(func() {}, 0); err == nil {
		t.Fatal("expected registration failure")
	}
	if k.Pending() != 1 {
		t.Errorf("failed registration left in registry: pending=%d", k.Pending())
	}
}
