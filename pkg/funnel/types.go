package funnel

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/seniormoment/seniormoment/pkg/worker"
)

var (
	// ErrInvalidArgument is returned for a nil action or a nil item.
	ErrInvalidArgument = errors.New("funnel: invalid argument")

	// ErrInvalidState marks an operation that does not fit the current state.
	// A broken single-run invariant is raised as a panic wrapping it.
	ErrInvalidState = errors.New("funnel: invalid state")

	// ErrQueueFull is returned when the pending cap is reached.
	ErrQueueFull = errors.New("funnel: queue is full")

	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("funnel: closed")

	// ErrRunTimeout is attached to the completion event of a run that was
	// released because it exceeded the run timeout.
	ErrRunTimeout = errors.New("funnel: run timed out")
)

// Dispatcher runs a started action outside the funnel's lock.
// *worker.Pool satisfies it.
type Dispatcher interface {
	AddWork(ctx context.Context, w worker.Work[any]) *worker.Future[worker.Result[any]]
}

// BusyGate reports whether the shared resource is held by something that
// does not go through the funnel. It must not call back into the funnel.
type BusyGate func() bool

type EventKind int

const (
	EventSubmitted EventKind = iota
	EventStarted
	// EventEnded fires when the action body returns. Err carries the body error.
	EventEnded
	// EventCompleted fires when the running slot is released by a completion
	// signal, a synchronous completion or a run timeout.
	EventCompleted
	EventRemoved
)

func (k EventKind) String() string {
	switch k {
	case EventSubmitted:
		return "submitted"
	case EventStarted:
		return "started"
	case EventEnded:
		return "ended"
	case EventCompleted:
		return "completed"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

type Event struct {
	Kind EventKind
	Item *WorkItem
	Err  error
	At   time.Time
}

// ItemInfo is a read-only view of a work item.
type ItemInfo struct {
	ID       uuid.UUID
	Name     string
	Priority int
	Age      float64
	SortKey  float64
}

type RunInfo struct {
	ItemInfo
	StartedAt time.Time
}

// Status is a snapshot of the funnel. Pending is in start order.
type Status struct {
	Running *RunInfo
	Pending []ItemInfo
	Closed  bool
}

func infoOf(w *WorkItem) ItemInfo {
	return ItemInfo{
		ID:       w.id,
		Name:     w.name,
		Priority: w.Priority(),
		Age:      w.age,
		SortKey:  w.SortKey(),
	}
}
