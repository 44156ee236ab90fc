package funnel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultHeartbeatInterval is how often the heartbeat drives its tickers.
const DefaultHeartbeatInterval = time.Second

// Ticker is anything driven by a Heartbeat.
type Ticker interface {
	Tick(now time.Time)
}

type TickerFunc func(now time.Time)

func (fn TickerFunc) Tick(now time.Time) { fn(now) }

// Heartbeat calls its tickers once per interval. For the funnel it is a
// safety net against missed wake-ups, not a timing source.
type Heartbeat struct {
	interval time.Duration

	mu      sync.Mutex
	tickers []Ticker
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewHeartbeat(interval time.Duration, tickers ...Ticker) *Heartbeat {
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	return &Heartbeat{
		interval: interval,
		tickers:  tickers,
	}
}

func (h *Heartbeat) Interval() time.Duration { return h.interval }

// Add registers another ticker. It may be called while the heartbeat runs.
func (h *Heartbeat) Add(t Ticker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tickers = append(h.tickers, t)
}

// Start launches the tick goroutine. It stops when ctx is cancelled or Stop is
// called. Starting a running heartbeat returns ErrInvalidState.
func (h *Heartbeat) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		return fmt.Errorf("%w: heartbeat already started", ErrInvalidState)
	}

	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	h.wg.Add(1)
	go h.run(ctx)
	return nil
}

// Stop halts the tick goroutine and waits for it to exit.
func (h *Heartbeat) Stop() {
	h.mu.Lock()
	cancel := h.cancel
	h.cancel = nil
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	h.wg.Wait()
}

// Beat runs every ticker once. A panicking ticker is logged and does not stop
// the others.
func (h *Heartbeat) Beat(now time.Time) {
	h.mu.Lock()
	tickers := make([]Ticker, len(h.tickers))
	copy(tickers, h.tickers)
	h.mu.Unlock()

	for _, t := range tickers {
		h.tick(t, now)
	}
}

func (h *Heartbeat) tick(t Ticker, now time.Time) {
	defer func() {
		if rec := recover(); rec != nil {
			zap.S().Named("heartbeat").Errorw("ticker panicked", "ticker", fmt.Sprintf("%T", t), "panic", rec)
		}
	}()
	t.Tick(now)
}

func (h *Heartbeat) run(ctx context.Context) {
	defer h.wg.Done()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			h.Beat(now)
		}
	}
}
