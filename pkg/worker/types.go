package worker

import (
	"context"
)

// Work is a function executed by a pool worker.
type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

// Future delivers exactly one Result for a piece of submitted work.
type Future[T any] struct {
	input  chan T
	cancel context.CancelFunc
}

func NewFuture[T any](input chan T, cancel context.CancelFunc) *Future[T] {
	return &Future[T]{
		input:  input,
		cancel: cancel,
	}
}

func (f *Future[T]) C() <-chan T {
	return f.input
}

// Stop cancels the context handed to the work.
func (f *Future[T]) Stop() {
	f.cancel()
}
