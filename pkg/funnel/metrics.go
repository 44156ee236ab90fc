package funnel

import "time"

// Metrics receives funnel activity.
//
// Implementations must be safe for concurrent use and must not block.
type Metrics interface {
	IncSubmitted()
	IncStarted()
	IncCompleted()

	// IncFailed counts action bodies that returned an error or panicked.
	IncFailed()

	// IncRequeued counts items re-submitted through Requeue.
	IncRequeued()

	SetPending(n int)

	// ObserveRun records how long the running slot was held.
	ObserveRun(d time.Duration)
}

// NoopMetrics discards all updates.
type NoopMetrics struct{}

func (NoopMetrics) IncSubmitted()            {}
func (NoopMetrics) IncStarted()              {}
func (NoopMetrics) IncCompleted()            {}
func (NoopMetrics) IncFailed()               {}
func (NoopMetrics) IncRequeued()             {}
func (NoopMetrics) SetPending(int)           {}
func (NoopMetrics) ObserveRun(time.Duration) {}
