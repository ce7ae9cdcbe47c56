package loop

import (
	"context"
	"errors"
	"testing"
	"time"
)

func runLoop(t *testing.T, l *Loop) <-chan error {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- l.Run(context.Background()) }()
	t.Cleanup(l.Stop)
	return errc
}

func TestPost_RunsInOrder(t *testing.T) {
	l := New()
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}
	l.Post(l.Stop)

	if err := l.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("order: got %v", got)
		}
	}
	if len(got) != 5 {
		t.Fatalf("ran %d callbacks, want 5", len(got))
	}
}

func TestSetTimeout_FiresOnLoop(t *testing.T) {
	l := New()
	fired := make(chan struct{})
	l.Post(func() {
		if _, err := l.SetTimeout(func() { close(fired) }, time.Millisecond); err != nil {
			t.Error(err)
		}
	})
	runLoop(t, l)

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout never fired")
	}
	if l.Pending() != 0 {
		t.Errorf("pending after fire: %d", l.Pending())
	}
}

func TestClearTimeout(t *testing.T) {
	l := New()
	fired := make(chan struct{}, 1)
	id, err := l.SetTimeout(func() { fired <- struct{}{} }, 20*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	l.ClearTimeout(id)
	runLoop(t, l)

	select {
	case <-fired:
		t.Fatal("cleared timeout fired")
	case <-time.After(80 * time.Millisecond):
	}
}

func TestSetInterval_RepeatsUntilCleared(t *testing.T) {
	l := New()
	ticks := make(chan struct{}, 16)
	id, err := l.SetInterval(func() { ticks <- struct{}{} }, 2*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	runLoop(t, l)

	for i := 0; i < 3; i++ {
		select {
		case <-ticks:
		case <-time.After(2 * time.Second):
			t.Fatalf("tick %d never arrived", i)
		}
	}
	l.ClearInterval(id)
	if l.Pending() != 0 {
		t.Errorf("pending after clear: %d", l.Pending())
	}
}

func TestStop_RejectsTimers(t *testing.T) {
	l := New()
	l.Stop()
	l.Stop()
	if _, err := l.SetTimeout(func() {}, 0); !errors.Is(err, ErrStopped) {
		t.Errorf("timeout after stop: got %v", err)
	}
	if _, err := l.SetInterval(func() {}, time.Second); !errors.Is(err, ErrStopped) {
		t.Errorf("interval after stop: got %v", err)
	}
}

func TestRun_ContextCancel(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	select {
	case <-l.Done():
	default:
		t.Error("loop not stopped after context cancel")
	}
}
