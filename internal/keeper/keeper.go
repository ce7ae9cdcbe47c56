// Package keeper tracks deferred tasks registered with a host timer and
// clears every one of them when the keeper is closed.
//
// A Keeper is not safe for concurrent use. It is meant to be driven from
// the host's single event-loop goroutine, which is also where the host
// timer runs task callbacks.
package keeper

import (
	"errors"
	"fmt"
	"time"

	"github.com/AnyUserName/asciisketch/internal/logging"
)

// ErrClosed is returned when scheduling on a closed keeper.
var ErrClosed = errors.New("keeper closed")

// TimerID identifies a registration with the host timer.
type TimerID int

// Timer is the host capability for deferred execution. One-shot and
// repeating registrations are cleared through different primitives.
type Timer interface {
	SetTimeout(fn func(), delay time.Duration) (TimerID, error)
	ClearTimeout(id TimerID)
	SetInterval(fn func(), every time.Duration) (TimerID, error)
	ClearInterval(id TimerID)
}

// Kind tells one-shot tasks from repeating ones.
type Kind int

const (
	OneShot Kind = iota
	Repeating
)

func (k Kind) String() string {
	if k == Repeating {
		return "repeating"
	}
	return "one-shot"
}

// Handle is an opaque reference to a scheduled task.
type Handle uint64

type task struct {
	id   TimerID
	kind Kind
}

// Keeper owns a registry of pending tasks.
type Keeper struct {
	timer  Timer
	tasks  map[Handle]task
	next   Handle
	closed bool
}

// New returns an empty keeper bound to timer.
func New(timer Timer) *Keeper {
	return &Keeper{
		timer: timer,
		tasks: make(map[Handle]task),
	}
}

// Schedule runs fn once after delay. The task leaves the registry just
// before fn is invoked.
func (k *Keeper) Schedule(fn func(), delay time.Duration) (Handle, error) {
	if k.closed {
		return 0, ErrClosed
	}
	k.next++
	h := k.next

	id, err := k.timer.SetTimeout(func() {
		if _, ok := k.tasks[h]; !ok {
			return
		}
		delete(k.tasks, h)
		fn()
	}, delay)
	if err != nil {
		return 0, fmt.Errorf("set timeout: %w", err)
	}

	k.tasks[h] = task{id: id, kind: OneShot}
	logging.Logger().Debug("task scheduled", "handle", h, "kind", OneShot, "delay", delay)
	return h, nil
}

// Repeat runs fn every interval until the task is cancelled or the keeper
// is closed.
func (k *Keeper) Repeat(fn func(), every time.Duration) (Handle, error) {
	if k.closed {
		return 0, ErrClosed
	}
	k.next++
	h := k.next

	id, err := k.timer.SetInterval(func() {
		if _, ok := k.tasks[h]; ok {
			fn()
		}
	}, every)
	if err != nil {
		return 0, fmt.Errorf("set interval: %w", err)
	}

	k.tasks[h] = task{id: id, kind: Repeating}
	logging.Logger().Debug("task scheduled", "handle", h, "kind", Repeating, "every", every)
	return h, nil
}

// Cancel clears one pending task. It reports whether the task was still
// pending.
func (k *Keeper) Cancel(h Handle) bool {
	t, ok := k.tasks[h]
	if !ok {
		return false
	}
	delete(k.tasks, h)
	k.clear(t)
	return true
}

// Pending returns the number of tasks that have not fired or been
// cancelled. Repeating tasks stay pending until cancelled.
func (k *Keeper) Pending() int { return len(k.tasks) }

// Closed reports whether Close has been called.
func (k *Keeper) Closed() bool { return k.closed }

// Close clears every pending task and refuses new ones. Calling it more
// than once is harmless.
func (k *Keeper) Close() {
	if k.closed {
		return
	}
	k.closed = true
	n := len(k.tasks)
	for h, t := range k.tasks {
		delete(k.tasks, h)
		k.clear(t)
	}
	if n > 0 {
		logging.Logger().Debug("keeper closed", "cleared", n)
	}
}

func (k *Keeper) clear(t task) {
	if t.kind == Repeating {
		k.timer.ClearInterval(t.id)
	} else {
		k.timer.ClearTimeout(t.id)
	}
}
