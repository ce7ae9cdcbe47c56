package stage

import (
	"errors"
	"fmt"
)

var (
	// ErrScheduling means the host timer refused a registration.
	ErrScheduling = errors.New("scheduling failed")
	// ErrPresentation means an observer, the final callback or the sink
	// failed while consuming a stage's output.
	ErrPresentation = errors.New("presentation failed")
	// ErrCanceled means the run was released before it finished.
	ErrCanceled = errors.New("run canceled")
	// ErrAlreadyDrawn is returned by a draw action invoked twice.
	ErrAlreadyDrawn = errors.New("art already drawn")
)

// Error reports the state a run was in when it stopped, the kind of
// failure and its cause. errors.Is matches both Kind and Err.
type Error struct {
	Stage Stage
	Kind  error
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s at %s", e.Kind, e.Stage)
	}
	return fmt.Sprintf("%s at %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
