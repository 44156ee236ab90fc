package funnel

import (
	"container/heap"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seniormoment/seniormoment/pkg/worker"
)

// run is the bookkeeping for the item holding the running slot.
type run struct {
	item      *WorkItem
	gen       uint64
	startedAt time.Time

	// requeue is set when the item re-submits itself from inside its action.
	// The item goes back to pending once the body returns.
	requeue bool
}

// Funnel serializes work items so that at most one is running at a time.
//
// Pending items start in ascending SortKey order. An item holds the running
// slot from the moment it is started until its effect is reported finished
// through NotifyCompleted (or NotifyItemCompleted), its body fails, or it was
// built WithSyncCompletion and its body returned.
//
// All methods are safe for concurrent use. A WorkItem must only ever be
// submitted to one Funnel.
type Funnel struct {
	mu      sync.Mutex
	pending pendingHeap
	byID    map[uuid.UUID]*WorkItem
	running *run
	gen     uint64
	closed  bool

	maxPending        int
	gate              BusyGate
	dispatcher        Dispatcher
	ownedPool         *worker.Pool
	metrics           Metrics
	runTimeout        time.Duration
	advanceOnComplete bool
	log               *zap.SugaredLogger

	subMu   sync.RWMutex
	subs    map[uint64]func(Event)
	nextSub uint64
}

type Option func(*Funnel)

// WithMaxPending caps the number of pending items. Zero means unbounded.
func WithMaxPending(n int) Option {
	return func(f *Funnel) { f.maxPending = n }
}

func WithBusyGate(g BusyGate) Option {
	return func(f *Funnel) { f.gate = g }
}

// WithDispatcher replaces the default single-slot worker pool.
func WithDispatcher(d Dispatcher) Option {
	return func(f *Funnel) { f.dispatcher = d }
}

func WithMetrics(m Metrics) Option {
	return func(f *Funnel) { f.metrics = m }
}

// WithRunTimeout releases a running slot held for longer than d the next time
// TryStartNext runs. Zero disables the timeout.
func WithRunTimeout(d time.Duration) Option {
	return func(f *Funnel) { f.runTimeout = d }
}

// WithAdvanceOnComplete makes NotifyCompleted start the next item right away
// instead of leaving it to the next heartbeat or submission.
func WithAdvanceOnComplete(v bool) Option {
	return func(f *Funnel) { f.advanceOnComplete = v }
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(f *Funnel) { f.log = l }
}

func New(opts ...Option) *Funnel {
	f := &Funnel{
		pending: make(pendingHeap, 0, 16),
		byID:    make(map[uuid.UUID]*WorkItem),
		subs:    make(map[uint64]func(Event)),
		metrics: NoopMetrics{},
	}
	for _, o := range opts {
		o(f)
	}
	if f.dispatcher == nil {
		f.ownedPool = worker.NewPool(1)
		f.dispatcher = f.ownedPool
	}
	if f.metrics == nil {
		f.metrics = NoopMetrics{}
	}
	heap.Init(&f.pending)
	return f
}

func (f *Funnel) logger() *zap.SugaredLogger {
	if f.log != nil {
		return f.log
	}
	return zap.S().Named("funnel")
}

// Submit adds item to the pending set and tries to start the next item.
//
// Submitting an item that is already pending refreshes its position.
// Submitting the item that is currently running, which is what an action does
// when it finds the resource busy, is deferred: the item returns to pending
// when its body returns and is picked up by the next TryStartNext.
func (f *Funnel) Submit(item *WorkItem) error {
	return f.submit(item, 0)
}

// Requeue lowers the item's priority value by PriorityStep and submits it.
func (f *Funnel) Requeue(item *WorkItem) error {
	if err := f.submit(item, PriorityStep); err != nil {
		return err
	}
	f.metrics.IncRequeued()
	return nil
}

func (f *Funnel) submit(item *WorkItem, lower int) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidArgument)
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}

	deferred := false
	switch {
	case f.running != nil && f.running.item == item:
		item.LowerPriority(lower)
		f.running.requeue = true
		deferred = true
	case item.index >= 0:
		item.LowerPriority(lower)
		heap.Fix(&f.pending, item.index)
	default:
		if f.maxPending > 0 && f.pending.Len() >= f.maxPending {
			f.mu.Unlock()
			f.logger().Warnw("pending queue full", "item", item.name, "max", f.maxPending)
			return ErrQueueFull
		}
		item.LowerPriority(lower)
		f.pushLocked(item)
	}
	n := f.pending.Len()
	f.mu.Unlock()

	f.metrics.IncSubmitted()
	f.metrics.SetPending(n)
	f.logger().Debugw("item submitted", "item", item.name, "priority", item.Priority(), "pending", n, "deferred", deferred)
	f.emit(Event{Kind: EventSubmitted, Item: item})

	if !deferred {
		f.TryStartNext()
	}
	return nil
}

// TryStartNext starts the pending item with the lowest SortKey when nothing is
// running. It returns the started item, or nil when the funnel is busy, the
// busy gate reports the resource held, or nothing is pending. A run past the
// run timeout is released first, whatever the gate says.
func (f *Funnel) TryStartNext() *WorkItem {
	f.mu.Lock()
	expired := f.expireLocked(time.Now())
	idle := f.running == nil && !f.closed && f.pending.Len() > 0
	f.mu.Unlock()
	f.reportExpired(expired)

	if !idle {
		return nil
	}
	if f.gate != nil && f.gate() {
		f.logger().Debugw("resource busy, not starting")
		return nil
	}

	f.mu.Lock()
	if f.running != nil || f.closed || f.pending.Len() == 0 {
		f.mu.Unlock()
		return nil
	}
	item := heap.Pop(&f.pending).(*WorkItem)
	delete(f.byID, item.id)
	r := f.markRunningLocked(item)
	n := f.pending.Len()
	f.mu.Unlock()

	f.metrics.IncStarted()
	f.metrics.SetPending(n)
	f.logger().Infow("starting item", "item", item.name, "priority", item.Priority(), "pending", n)

	if err := f.callback(item, "onStarted", item.onStarted); err != nil {
		f.mu.Lock()
		released := f.running == r
		if released {
			r.requeue = false
			f.releaseLocked(r)
		}
		f.mu.Unlock()

		item.Cancel()
		f.metrics.IncFailed()
		if released {
			f.finish(r, err)
		}
		return nil
	}
	f.emit(Event{Kind: EventStarted, Item: item})

	future := f.dispatcher.AddWork(item.ctx, func(ctx context.Context) (any, error) {
		return nil, item.action(ctx, item)
	})
	go func() {
		res := <-future.C()
		f.onBodyReturned(r, res.Err)
	}()

	return item
}

// Tick lets the funnel be driven by a Heartbeat.
func (f *Funnel) Tick(time.Time) {
	f.TryStartNext()
}

// NotifyCompleted reports that the effect of the running item has finished and
// releases the running slot. With nothing running it only logs.
func (f *Funnel) NotifyCompleted() {
	f.complete(nil)
}

// NotifyItemCompleted is NotifyCompleted restricted to item. A late signal from
// an item that no longer holds the slot is ignored.
func (f *Funnel) NotifyItemCompleted(item *WorkItem) {
	if item == nil {
		return
	}
	f.complete(item)
}

func (f *Funnel) complete(item *WorkItem) {
	f.mu.Lock()
	r := f.running
	if r == nil || (item != nil && r.item != item) {
		f.mu.Unlock()
		if item != nil {
			f.logger().Debugw("completion signal for item not running", "item", item.name)
		} else {
			f.logger().Debugw("completion signal with nothing running")
		}
		return
	}
	_, dropErr := f.releaseLocked(r)
	f.mu.Unlock()

	if dropErr != nil {
		r.item.Cancel()
	}
	f.finish(r, dropErr)

	if f.advanceOnComplete {
		f.TryStartNext()
	}
}

// onBodyReturned is the bookkeeping run when an action body returns. It never
// starts the next item.
func (f *Funnel) onBodyReturned(r *run, err error) {
	item := r.item
	_ = f.callback(item, "onEnded", item.onEnded)
	f.emit(Event{Kind: EventEnded, Item: item, Err: err})

	f.mu.Lock()
	current := f.running != nil && f.running.gen == r.gen
	released := false
	requeued := false
	var dropErr error
	if current && (r.requeue || err != nil || item.syncCompletion) {
		requeued, dropErr = f.releaseLocked(r)
		released = true
	}
	n := f.pending.Len()
	f.mu.Unlock()

	if dropErr != nil {
		item.Cancel()
		if err == nil {
			err = dropErr
		}
	}

	if err != nil {
		f.metrics.IncFailed()
		f.logger().Errorw("action failed", "item", item.name, "error", err)
	}

	switch {
	case !released:
		f.logger().Debugw("action body returned", "item", item.name, "holding", current)
	case requeued:
		f.metrics.SetPending(n)
		f.logger().Debugw("action re-queued itself", "item", item.name, "priority", item.Priority())
	default:
		f.finish(r, err)
	}
}

// Remove drops a pending item and cancels it. It returns false when no pending
// item has the given id.
func (f *Funnel) Remove(id uuid.UUID) bool {
	f.mu.Lock()
	item, ok := f.byID[id]
	if ok {
		f.pending.remove(item)
		delete(f.byID, id)
	}
	n := f.pending.Len()
	f.mu.Unlock()

	if !ok {
		return false
	}
	item.Cancel()
	f.metrics.SetPending(n)
	f.logger().Debugw("item removed", "item", item.name)
	f.emit(Event{Kind: EventRemoved, Item: item})
	return true
}

// Subscribe registers fn for every funnel event. fn is called synchronously
// from whichever goroutine produced the event and must not block.
func (f *Funnel) Subscribe(fn func(Event)) (unsubscribe func()) {
	f.subMu.Lock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	f.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.subMu.Lock()
			delete(f.subs, id)
			f.subMu.Unlock()
		})
	}
}

func (f *Funnel) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()

	st := Status{Closed: f.closed}
	if f.running != nil {
		st.Running = &RunInfo{ItemInfo: infoOf(f.running.item), StartedAt: f.running.startedAt}
	}
	sorted := f.pending.sorted()
	st.Pending = make([]ItemInfo, 0, len(sorted))
	for _, it := range sorted {
		st.Pending = append(st.Pending, infoOf(it))
	}
	return st
}

// Busy reports whether an item holds the running slot.
func (f *Funnel) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running != nil
}

func (f *Funnel) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending.Len()
}

// Close rejects further submissions and cancels every pending item. A running
// item is left to finish; when the funnel owns its worker pool, Close waits
// for the running body to return.
func (f *Funnel) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	dropped := make([]*WorkItem, 0, f.pending.Len())
	for f.pending.Len() > 0 {
		it := heap.Pop(&f.pending).(*WorkItem)
		delete(f.byID, it.id)
		dropped = append(dropped, it)
	}
	f.mu.Unlock()

	for _, it := range dropped {
		it.Cancel()
	}
	f.metrics.SetPending(0)
	f.logger().Infow("funnel closed", "dropped", len(dropped))

	if f.ownedPool != nil {
		f.ownedPool.Close()
	}
}

func (f *Funnel) pushLocked(item *WorkItem) {
	heap.Push(&f.pending, item)
	f.byID[item.id] = item
}

func (f *Funnel) markRunningLocked(item *WorkItem) *run {
	if f.running != nil {
		panic(fmt.Errorf("%w: starting %q while %q is running", ErrInvalidState, item.name, f.running.item.name))
	}
	f.gen++
	r := &run{item: item, gen: f.gen, startedAt: time.Now()}
	f.running = r
	return r
}

// releaseLocked frees the running slot. It reports whether the item went back
// to pending because it re-submitted itself, and ErrQueueFull when the
// re-submission was dropped because pending is at its cap.
func (f *Funnel) releaseLocked(r *run) (bool, error) {
	if f.running != r {
		panic(fmt.Errorf("%w: releasing %q which is not running", ErrInvalidState, r.item.name))
	}
	f.running = nil
	if !r.requeue {
		return false, nil
	}
	r.requeue = false
	if f.closed || r.item.ctx.Err() != nil {
		return false, nil
	}
	if f.maxPending > 0 && f.pending.Len() >= f.maxPending {
		f.logger().Warnw("pending queue full, dropping re-queued item", "item", r.item.name, "max", f.maxPending)
		return false, ErrQueueFull
	}
	f.pushLocked(r.item)
	return true, nil
}

// expireLocked releases a run that exceeded the run timeout. A timed out item
// never goes back to pending.
func (f *Funnel) expireLocked(now time.Time) *run {
	r := f.running
	if r == nil || f.runTimeout <= 0 || now.Sub(r.startedAt) <= f.runTimeout {
		return nil
	}
	r.requeue = false
	f.releaseLocked(r)
	return r
}

func (f *Funnel) reportExpired(r *run) {
	if r == nil {
		return
	}
	f.logger().Warnw("run timed out, releasing slot", "item", r.item.name, "held", time.Since(r.startedAt).String())
	r.item.Cancel()
	f.finish(r, ErrRunTimeout)
}

func (f *Funnel) finish(r *run, err error) {
	d := time.Since(r.startedAt)
	f.metrics.ObserveRun(d)
	if err == nil {
		f.metrics.IncCompleted()
	}
	f.logger().Infow("item completed", "item", r.item.name, "held", d.String(), "error", err)
	f.emit(Event{Kind: EventCompleted, Item: r.item, Err: err})
}

func (f *Funnel) emit(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	f.subMu.RLock()
	fns := make([]func(Event), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.subMu.RUnlock()

	for _, fn := range fns {
		f.notify(fn, e)
	}
}

func (f *Funnel) notify(fn func(Event), e Event) {
	defer func() {
		if rec := recover(); rec != nil {
			f.logger().Errorw("subscriber panicked", "event", e.Kind.String(), "item", e.Item.name, "panic", rec)
		}
	}()
	fn(e)
}

// callback runs an item callback and turns a panic into an error.
func (f *Funnel) callback(item *WorkItem, name string, fn func()) (err error) {
	if fn == nil {
		return nil
	}
	defer func() {
		if rec := recover(); rec != nil {
			f.logger().Errorw("item callback panicked", "item", item.name, "callback", name, "panic", rec)
			err = fmt.Errorf("%s callback panicked: %v", name, rec)
		}
	}()
	fn()
	return nil
}
