package worker

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type queue[T any] []T

func (q *queue[T]) Len() int { return len(*q) }

func (q *queue[T]) Pop() T {
	old := *q
	x := old[0]
	var zero T
	old[0] = zero
	*q = old[1:]
	return x
}

func (q *queue[T]) Push(t T) {
	*q = append(*q, t)
}

type request struct {
	fn     Work[any]
	c      chan Result[any]
	ctx    context.Context
	cancel context.CancelFunc
}

type slot struct {
	id   int
	done chan int
	wg   *sync.WaitGroup
}

func (s slot) run(r request) {
	defer func() {
		if rec := recover(); rec != nil {
			zap.S().Named("worker").Errorw("work panicked", "slot", s.id, "panic", rec)
			r.c <- Result[any]{Err: fmt.Errorf("worker panicked: %v", rec)}
		}
		r.cancel()
		s.done <- s.id
		s.wg.Done()
	}()

	v, err := r.fn(r.ctx)
	r.c <- Result[any]{Data: v, Err: err}
}

// Pool runs submitted work on a fixed number of goroutine slots. Work beyond
// the slot count waits in FIFO order.
type Pool struct {
	idle       *queue[slot]
	pending    *queue[request]
	closeCh    chan struct{}
	done       chan int
	exited     chan struct{}
	work       chan request
	mainCtx    context.Context
	mainCancel context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
	size       int
}

func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		idle:       &queue[slot]{},
		pending:    &queue[request]{},
		closeCh:    make(chan struct{}),
		done:       make(chan int, size),
		exited:     make(chan struct{}),
		work:       make(chan request),
		mainCtx:    ctx,
		mainCancel: cancel,
		size:       size,
	}
	for i := range size {
		p.idle.Push(slot{id: i, done: p.done, wg: &p.wg})
	}
	go p.run()
	return p
}

// AddWork queues w and returns its future. The context passed to w is derived
// from ctx and is also cancelled when the pool closes.
func (p *Pool) AddWork(ctx context.Context, w Work[any]) *Future[Result[any]] {
	if ctx == nil {
		ctx = context.Background()
	}
	c := make(chan Result[any], 1)
	wctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(p.mainCtx, cancel)
	release := func() {
		stop()
		cancel()
	}

	select {
	case <-p.mainCtx.Done():
		release()
		c <- Result[any]{Err: context.Canceled}
	case p.work <- request{fn: w, c: c, ctx: wctx, cancel: release}:
	}

	return NewFuture(c, release)
}

// Size returns the number of worker slots.
func (p *Pool) Size() int { return p.size }

// Close cancels all work and blocks until in-flight work has returned.
// It is safe to call more than once.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.mainCancel()
		close(p.closeCh)
		<-p.exited
	})
}

func (p *Pool) run() {
	defer close(p.exited)
	for {
		select {
		case r := <-p.work:
			p.pending.Push(r)
			p.dispatch()
		case id := <-p.done:
			p.idle.Push(slot{id: id, done: p.done, wg: &p.wg})
			p.dispatch()
		case <-p.closeCh:
			for p.pending.Len() > 0 {
				r := p.pending.Pop()
				r.cancel()
				r.c <- Result[any]{Err: context.Canceled}
			}
			// Finished slots still report on done; keep draining so they never block.
			finished := make(chan struct{})
			go func() {
				p.wg.Wait()
				close(finished)
			}()
			for {
				select {
				case <-p.done:
				case <-finished:
					return
				}
			}
		}
	}
}

// dispatch pairs idle slots with pending work.
func (p *Pool) dispatch() {
	for p.idle.Len() > 0 && p.pending.Len() > 0 {
		r := p.pending.Pop()
		s := p.idle.Pop()
		p.wg.Add(1)
		go s.run(r)
	}
}
