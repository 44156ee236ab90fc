package sound

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seniormoment/seniormoment/internal/models"
	"github.com/seniormoment/seniormoment/pkg/funnel"
)

// Default priorities. Lower values start first: a recording follows a user
// gesture, speech comes next and alarms wait for both.
const (
	PriorityRecord = 90
	PrioritySay    = 100
	PriorityAlarm  = 110
)

// Player routes every operation on the audio device through one funnel, so
// at most one sound is playing or recording at a time.
type Player struct {
	funnel *funnel.Funnel
	device Device
}

func NewPlayer(f *funnel.Funnel, d Device) *Player {
	return &Player{funnel: f, device: d}
}

// Play queues clip. onDone is called once the clip stopped playing.
func (p *Player) Play(clip Clip, onDone func(error), opts ...funnel.ItemOption) (*funnel.WorkItem, error) {
	return p.submit("play "+clip.Name, PriorityAlarm, []any{clip}, func(ctx context.Context, done func(error)) error {
		return p.device.Play(ctx, clip, done)
	}, onDone, opts)
}

// Say queues text to be spoken.
func (p *Player) Say(text string, onDone func(error), opts ...funnel.ItemOption) (*funnel.WorkItem, error) {
	return p.submit("say", PrioritySay, []any{text}, func(ctx context.Context, done func(error)) error {
		return p.device.Say(ctx, text, done)
	}, onDone, opts)
}

// Record queues a recording of length d.
func (p *Player) Record(d time.Duration, onDone func(error), opts ...funnel.ItemOption) (*funnel.WorkItem, error) {
	return p.submit("record", PriorityRecord, []any{d}, func(ctx context.Context, done func(error)) error {
		return p.device.Record(ctx, d, done)
	}, onDone, opts)
}

// Submit queues req. A zero priority keeps the default for its kind.
func (p *Player) Submit(req models.SoundRequest, onDone func(error)) (*funnel.WorkItem, error) {
	var opts []funnel.ItemOption
	if req.Priority > 0 {
		opts = append(opts, funnel.WithPriority(req.Priority))
	}

	switch req.Kind {
	case models.SoundKindPlay:
		return p.Play(LookupClip(req.Clip), onDone, opts...)
	case models.SoundKindSay:
		if req.Text == "" {
			return nil, fmt.Errorf("%w: nothing to say", funnel.ErrInvalidArgument)
		}
		return p.Say(req.Text, onDone, opts...)
	case models.SoundKindRecord:
		if req.Duration <= 0 {
			return nil, fmt.Errorf("%w: recording length must be positive", funnel.ErrInvalidArgument)
		}
		return p.Record(req.Duration, onDone, opts...)
	default:
		return nil, fmt.Errorf("%w: unknown sound kind %q", funnel.ErrInvalidArgument, req.Kind)
	}
}

// Cancel drops a queued operation, or stops it if it is already playing.
// It reports whether the operation was still queued.
func (p *Player) Cancel(item *funnel.WorkItem) bool {
	if item == nil {
		return false
	}
	if p.funnel.Remove(item.ID()) {
		return true
	}
	item.Cancel()
	return false
}

func (p *Player) submit(
	name string,
	priority int,
	params []any,
	op func(ctx context.Context, done func(error)) error,
	onDone func(error),
	opts []funnel.ItemOption,
) (*funnel.WorkItem, error) {
	opts = append([]funnel.ItemOption{funnel.WithPriority(priority)}, opts...)

	item, err := funnel.NewWorkItem(func(_ context.Context, it *funnel.WorkItem) error {
		if p.device.Busy() {
			zap.S().Named("player").Debugw("device busy, backing off", "item", it.Name(), "priority", it.Priority())
			return p.funnel.Requeue(it)
		}

		// The sound outlives the action body, so it follows the item's context.
		err := op(it.Context(), func(err error) {
			if err != nil {
				zap.S().Named("player").Warnw("sound ended with error", "item", it.Name(), "error", err)
			}
			p.funnel.NotifyItemCompleted(it)
			if onDone != nil {
				onDone(err)
			}
		})
		if errors.Is(err, ErrDeviceBusy) {
			return p.funnel.Requeue(it)
		}
		return err
	}, params, name, opts...)
	if err != nil {
		return nil, err
	}

	if err := p.funnel.Submit(item); err != nil {
		return nil, err
	}
	return item, nil
}
