package funnel

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultPriority is the priority given to items created without WithPriority.
	DefaultPriority = 100
	// PriorityFloor is the value LowerPriority never goes below.
	PriorityFloor = 30
	// PriorityStep is the amount Requeue lowers the priority value by.
	PriorityStep = 5

	sortKeyScale = float64(math.MaxInt32)
)

var (
	// epoch is the process-wide origin for item ages.
	epoch = time.Now()

	arrivalSeq atomic.Uint64
)

// Action is the unit of work carried by a WorkItem. ctx is derived from the
// item's context and is cancelled once the action returns; effects that outlive
// the body, like a sound still playing, should watch item.Context() instead.
type Action func(ctx context.Context, item *WorkItem) error

// WorkItem describes one unit of serialized work.
//
// Everything except the priority is fixed at construction. The priority only
// changes through LowerPriority; the owning Funnel re-positions a pending item
// after lowering it.
type WorkItem struct {
	id     uuid.UUID
	name   string
	action Action
	params []any

	age     float64
	seq     uint64
	created time.Time

	onStarted      func()
	onEnded        func()
	syncCompletion bool

	ctx    context.Context
	cancel context.CancelFunc

	priority atomic.Int32

	// index is the position in the pending heap, -1 when not pending.
	// Guarded by the owning Funnel's mutex.
	index int
}

type itemOptions struct {
	priority       int
	onStarted      func()
	onEnded        func()
	parent         context.Context
	syncCompletion bool
}

// ItemOption configures a WorkItem.
type ItemOption func(*itemOptions)

func WithPriority(p int) ItemOption {
	return func(o *itemOptions) { o.priority = p }
}

// WithOnStarted sets a callback fired right before the action is dispatched.
func WithOnStarted(fn func()) ItemOption {
	return func(o *itemOptions) { o.onStarted = fn }
}

// WithOnEnded sets a callback fired when the action body returns.
func WithOnEnded(fn func()) ItemOption {
	return func(o *itemOptions) { o.onEnded = fn }
}

// WithParent derives the item's cancellation context from ctx.
func WithParent(ctx context.Context) ItemOption {
	return func(o *itemOptions) { o.parent = ctx }
}

// WithSyncCompletion marks an item whose effect is over when its body returns.
// The funnel treats the return as a completion signal instead of waiting for
// NotifyCompleted.
func WithSyncCompletion() ItemOption {
	return func(o *itemOptions) { o.syncCompletion = true }
}

// NewWorkItem creates a WorkItem stamped with its age relative to the process
// epoch. It returns ErrInvalidArgument when action is nil.
func NewWorkItem(action Action, params []any, name string, opts ...ItemOption) (*WorkItem, error) {
	if action == nil {
		return nil, fmt.Errorf("%w: action is nil", ErrInvalidArgument)
	}

	o := itemOptions{priority: DefaultPriority, parent: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.parent == nil {
		o.parent = context.Background()
	}
	if params == nil {
		params = []any{}
	}

	now := time.Now()
	ctx, cancel := context.WithCancel(o.parent)
	it := &WorkItem{
		id:             uuid.New(),
		name:           name,
		action:         action,
		params:         params,
		age:            float64(now.Sub(epoch)) / float64(time.Millisecond),
		seq:            arrivalSeq.Add(1),
		created:        now,
		onStarted:      o.onStarted,
		onEnded:        o.onEnded,
		syncCompletion: o.syncCompletion,
		ctx:            ctx,
		cancel:         cancel,
		index:          -1,
	}
	it.priority.Store(int32(o.priority))
	if it.name == "" {
		it.name = it.id.String()
	}
	return it, nil
}

func (w *WorkItem) ID() uuid.UUID        { return w.id }
func (w *WorkItem) Name() string         { return w.name }
func (w *WorkItem) Params() []any        { return w.params }
func (w *WorkItem) Priority() int        { return int(w.priority.Load()) }
func (w *WorkItem) CreatedAt() time.Time { return w.created }

// Age is the number of milliseconds between the process epoch and the item's
// construction.
func (w *WorkItem) Age() float64 { return w.age }

// SortKey orders items by priority first and age second in a single scalar.
func (w *WorkItem) SortKey() float64 {
	return float64(w.priority.Load())*sortKeyScale + w.age
}

// LowerPriority decreases the priority value by step without going below
// PriorityFloor. Items already at or below the floor are left alone.
// It returns the resulting priority.
func (w *WorkItem) LowerPriority(step int) int {
	for {
		cur := w.priority.Load()
		if cur <= PriorityFloor || step <= 0 {
			return int(cur)
		}
		next := cur - int32(step)
		if next < PriorityFloor {
			next = PriorityFloor
		}
		if w.priority.CompareAndSwap(cur, next) {
			return int(next)
		}
	}
}

// Context returns the item's cancellation context.
func (w *WorkItem) Context() context.Context { return w.ctx }

// Cancel requests cooperative cancellation. The funnel never polls it; the
// action is expected to watch its context.
func (w *WorkItem) Cancel() { w.cancel() }

func (w *WorkItem) String() string {
	return fmt.Sprintf("%s priority:%d age:%dms", w.name, w.Priority(), int64(w.age))
}

// before reports whether w should start before o.
func (w *WorkItem) before(o *WorkItem) bool {
	kw, ko := w.SortKey(), o.SortKey()
	if kw != ko {
		return kw < ko
	}
	return w.seq < o.seq
}
