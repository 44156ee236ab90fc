// Package funnel implements a single-concurrency task scheduler.
//
// A Funnel guarantees that at most one WorkItem is running at any time across
// any number of independent callers. In the alarm application every sound
// operation (play, say, record) goes through one Funnel because there is one
// speaker and one microphone.
//
// # Architecture Overview
//
//	  callers (alarms, HTTP, CLI)
//	        │ Submit / Requeue
//	        ▼
//	┌───────────────────────────────────────────────────────────────┐
//	│                            Funnel                             │
//	│                                                               │
//	│   pending (min-heap on SortKey, then arrival)                 │
//	│   [alarm p:110] [say p:100] [say p:100] ...                   │
//	│          │                                                    │
//	│          │ TryStartNext()  ◄── Submit / Heartbeat.Tick        │
//	│          ▼                                                    │
//	│   running slot (0 or 1 item) ──► Dispatcher (worker.Pool)     │
//	│          ▲                                                    │
//	│          │ NotifyCompleted()  ◄── device "finished" callback  │
//	└───────────────────────────────────────────────────────────────┘
//
// # Ordering
//
// Every item carries a priority (lower is more urgent, default 100) and an
// age, the milliseconds between the process epoch and its construction:
//
//	SortKey = priority * math.MaxInt32 + age
//
// so ordering is strictly priority first and oldest first within a priority.
// Items built in the same millisecond fall back to construction order.
//
// # Two-phase completion
//
// Starting an item hands its action to the Dispatcher and returns at once.
// Two separate signals follow:
//
//   - body returned: internal bookkeeping. onEnded fires and an EventEnded is
//     published. The running slot is released only if the body failed
//     (returned an error or panicked), if the item re-submitted itself, or if
//     it was built WithSyncCompletion.
//   - NotifyCompleted: the externally visible effect is over (the sound
//     stopped). This releases the running slot.
//
// Neither signal starts the next item by default. The next item starts on the
// next Submit or Heartbeat tick, or right away when WithAdvanceOnComplete is
// set.
//
// # Back-off
//
// An action that finds the resource busy calls Requeue on its own item and
// returns. Requeue lowers the priority value by PriorityStep, never below
// PriorityFloor, and the item re-enters pending when its body returns. Since
// its age is fixed at construction, a retried item keeps winning ties against
// newer arrivals and eventually runs.
//
// # Usage Example
//
//	f := funnel.New(funnel.WithRunTimeout(2 * time.Minute))
//	defer f.Close()
//
//	hb := funnel.NewHeartbeat(time.Second, f)
//	_ = hb.Start(ctx)
//	defer hb.Stop()
//
//	item, _ := funnel.NewWorkItem(func(ctx context.Context, it *funnel.WorkItem) error {
//	    if speaker.Busy() {
//	        return f.Requeue(it)
//	    }
//	    speaker.Play(clip, func(error) { f.NotifyItemCompleted(it) })
//	    return nil
//	}, nil, "alarm", funnel.WithPriority(110))
//
//	_ = f.Submit(item)
package funnel
