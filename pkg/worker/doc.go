// Package worker implements a small goroutine pool for executing work with futures.
//
// A Pool owns a fixed number of worker slots. Work is submitted via AddWork and
// returns a Future that receives exactly one Result. The funnel uses a pool of
// size one as the place where a started action actually runs, outside the
// funnel's lock.
//
// # Architecture Overview
//
//	┌──────────────────────────────────────────────────────────────┐
//	│                            Pool                              │
//	│                                                              │
//	│   ┌──────────┐     ┌──────────┐          ┌──────────┐        │
//	│   │  Slot 0  │     │  Slot 1  │   ...    │  Slot N  │        │
//	│   └──────────┘     └──────────┘          └──────────┘        │
//	│         ▲                ▲                     ▲             │
//	│         └────────────────┼─────────────────────┘             │
//	│                   ┌──────┴──────┐                            │
//	│                   │ dispatch()  │                            │
//	│                   └──────┬──────┘                            │
//	│   ┌──────────────────────┴───────────────────────────┐       │
//	│   │  Pending work  [req1] [req2] [req3] ...          │       │
//	│   └──────────────────────────────────────────────────┘       │
//	│                          ▲                                   │
//	│                   AddWork(ctx, fn)                           │
//	└──────────────────────────────────────────────────────────────┘
//
// # Event Loop
//
// The pool runs a single goroutine that owns both queues:
//
//	for {
//	    select {
//	    case r := <-p.work:    // new work
//	        p.pending.Push(r)
//	        p.dispatch()
//	    case id := <-p.done:   // a slot finished
//	        p.idle.Push(slot{id: id})
//	        p.dispatch()
//	    case <-p.closeCh:      // shutdown
//	        ...
//	    }
//	}
//
// Because the queues are only touched by the loop goroutine, they need no lock.
//
// # Panic Recovery
//
// A panic inside work is recovered, logged and delivered to the future as an
// error ("worker panicked: ..."). The slot returns to the idle queue.
//
// # Cancellation
//
// The context handed to work is derived from the ctx given to AddWork and is
// additionally cancelled by Close:
//
//   - future.Stop() cancels that one piece of work
//   - pool.Close() cancels everything, fails queued work with context.Canceled
//     and waits for running work to return
//
// # Usage Example
//
//	p := worker.NewPool(1)
//	defer p.Close()
//
//	future := p.AddWork(ctx, func(ctx context.Context) (any, error) {
//	    return "done", nil
//	})
//	res := <-future.C()
package worker
