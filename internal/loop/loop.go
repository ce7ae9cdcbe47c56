// Package loop is a minimal single-goroutine event loop. Posted callbacks
// and timer callbacks all run one at a time on the goroutine that called
// Run, which gives the staged scheduler the single-threaded host it
// expects.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AnyUserName/asciisketch/internal/keeper"
)

// ErrStopped is returned when registering a timer on a stopped loop.
var ErrStopped = errors.New("event loop stopped")

type timer struct {
	stop func() bool
}

// Loop runs callbacks serially. It implements keeper.Timer.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	done    chan struct{}
	stopped bool
	timers  map[keeper.TimerID]timer
	next    keeper.TimerID
}

// New returns a loop that is ready to accept posts. Nothing runs until Run
// is called.
func New() *Loop {
	return &Loop{
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		timers: make(map[keeper.TimerID]timer),
	}
}

// Post queues fn to run on the loop goroutine. Posts after Stop are
// dropped. Safe for concurrent use.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run processes callbacks until Stop is called or ctx is done. It returns
// ctx.Err() in the latter case.
func (l *Loop) Run(ctx context.Context) error {
	for {
		for {
			fn := l.pop()
			if fn == nil {
				break
			}
			fn()
		}

		select {
		case <-l.done:
			return nil
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) pop() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped || len(l.queue) == 0 {
		return nil
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn
}

// Stop ends Run, drops queued callbacks and cancels every timer. Safe to
// call more than once and from any goroutine.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	l.queue = nil
	for id, t := range l.timers {
		t.stop()
		delete(l.timers, id)
	}
	close(l.done)
}

// Done is closed once Stop has been called.
func (l *Loop) Done() <-chan struct{} { return l.done }

// SetTimeout runs fn on the loop after delay.
func (l *Loop) SetTimeout(fn func(), delay time.Duration) (keeper.TimerID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return 0, ErrStopped
	}
	l.next++
	id := l.next

	t := time.AfterFunc(delay, func() {
		l.Post(func() {
			if l.release(id) {
				fn()
			}
		})
	})
	l.timers[id] = timer{stop: t.Stop}
	return id, nil
}

// ClearTimeout cancels a pending timeout. Unknown ids are ignored.
func (l *Loop) ClearTimeout(id keeper.TimerID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.timers[id]; ok {
		t.stop()
		delete(l.timers, id)
	}
}

// SetInterval runs fn on the loop every interval until cleared.
func (l *Loop) SetInterval(fn func(), every time.Duration) (keeper.TimerID, error) {
	if every <= 0 {
		return 0, errors.New("interval must be positive")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return 0, ErrStopped
	}
	l.next++
	id := l.next

	ticker := time.NewTicker(every)
	quit := make(chan struct{})
	go func() {
		for {
			select {
			case <-quit:
				return
			case <-ticker.C:
				l.Post(func() {
					if l.active(id) {
						fn()
					}
				})
			}
		}
	}()

	var once sync.Once
	l.timers[id] = timer{stop: func() bool {
		once.Do(func() {
			ticker.Stop()
			close(quit)
		})
		return true
	}}
	return id, nil
}

// ClearInterval stops a repeating timer. Unknown ids are ignored.
func (l *Loop) ClearInterval(id keeper.TimerID) {
	l.ClearTimeout(id)
}

// Pending returns the number of live timers.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// release removes a fired timeout and reports whether it was still live.
func (l *Loop) release(id keeper.TimerID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.timers[id]; !ok {
		return false
	}
	delete(l.timers, id)
	return true
}

func (l *Loop) active(id keeper.TimerID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.timers[id]
	return ok
}

var _ keeper.Timer = (*Loop)(nil)
