package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seniormoment/seniormoment/internal/models"
	"github.com/seniormoment/seniormoment/internal/sound"
	srvErrors "github.com/seniormoment/seniormoment/pkg/errors"
	"github.com/seniormoment/seniormoment/pkg/funnel"
)

const (
	defaultReRingInitial = 30 * time.Second
	defaultReRingMax     = 5 * time.Minute
	defaultMaxRings      = 10
)

// Ringer plays alarm clips. *sound.Player satisfies it.
type Ringer interface {
	Play(clip sound.Clip, onDone func(error), opts ...funnel.ItemOption) (*funnel.WorkItem, error)
	Cancel(item *funnel.WorkItem) bool
}

type CreateAlarmParams struct {
	Name     string
	Duration time.Duration
	Clip     string
}

type alarm struct {
	models.Alarm

	deadline time.Time
	nextRing time.Time
	ringSeq  uint64
	ring     *funnel.WorkItem
	backoff  *backoff.ExponentialBackOff
}

// AlarmService keeps countdown alarms and rings them through the Ringer when
// they elapse. It is driven by a Heartbeat through Tick.
type AlarmService struct {
	ringer Ringer
	now    func() time.Time

	reRingInitial time.Duration
	reRingMax     time.Duration
	maxRings      int

	mu     sync.Mutex
	alarms map[uuid.UUID]*alarm
}

type AlarmServiceOption func(*AlarmService)

// WithReRing sets the exponential schedule between rings of an alarm that is
// not dismissed.
func WithReRing(initial, max time.Duration) AlarmServiceOption {
	return func(s *AlarmService) {
		if initial > 0 {
			s.reRingInitial = initial
		}
		if max > 0 {
			s.reRingMax = max
		}
	}
}

// WithMaxRings dismisses an alarm on its own after n rings. Zero rings forever.
func WithMaxRings(n int) AlarmServiceOption {
	return func(s *AlarmService) { s.maxRings = n }
}

func WithClock(now func() time.Time) AlarmServiceOption {
	return func(s *AlarmService) { s.now = now }
}

func NewAlarmService(r Ringer, opts ...AlarmServiceOption) *AlarmService {
	s := &AlarmService{
		ringer:        r,
		now:           time.Now,
		reRingInitial: defaultReRingInitial,
		reRingMax:     defaultReRingMax,
		maxRings:      defaultMaxRings,
		alarms:        make(map[uuid.UUID]*alarm),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *AlarmService) Create(ctx context.Context, params CreateAlarmParams) (models.Alarm, error) {
	if params.Duration <= 0 {
		return models.Alarm{}, srvErrors.NewValidationError("duration", errors.New("must be positive"))
	}
	if params.Clip == "" {
		params.Clip = sound.DefaultClip
	}
	if !sound.KnownClip(params.Clip) {
		return models.Alarm{}, srvErrors.NewValidationError("clip", fmt.Errorf("unknown clip %q", params.Clip))
	}

	now := s.now()
	a := &alarm{
		Alarm: models.Alarm{
			ID:        uuid.New(),
			Name:      params.Name,
			Clip:      params.Clip,
			Duration:  params.Duration,
			Remaining: params.Duration,
			State:     models.AlarmStateCounting,
			CreatedAt: now,
		},
		deadline: now.Add(params.Duration),
	}
	if a.Name == "" {
		a.Name = a.ID.String()
	}

	s.mu.Lock()
	s.alarms[a.ID] = a
	s.mu.Unlock()

	zap.S().Named("alarm_service").Infow("alarm created", "id", a.ID, "name", a.Name, "duration", a.Duration.String())
	return s.snapshot(a, now), nil
}

// List returns every alarm, oldest first.
func (s *AlarmService) List(ctx context.Context) []models.Alarm {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make([]models.Alarm, 0, len(s.alarms))
	for _, a := range s.alarms {
		out = append(out, s.snapshot(a, now))
	}
	slices.SortFunc(out, func(a, b models.Alarm) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out
}

func (s *AlarmService) Get(ctx context.Context, id uuid.UUID) (models.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.alarms[id]
	if !ok {
		return models.Alarm{}, srvErrors.NewAlarmNotFoundError(id.String())
	}
	return s.snapshot(a, s.now()), nil
}

// Pause freezes a counting alarm.
func (s *AlarmService) Pause(ctx context.Context, id uuid.UUID) (models.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.alarms[id]
	if !ok {
		return models.Alarm{}, srvErrors.NewAlarmNotFoundError(id.String())
	}
	now := s.now()
	switch a.State {
	case models.AlarmStatePaused:
	case models.AlarmStateCounting:
		a.Remaining = max(a.deadline.Sub(now), 0)
		a.State = models.AlarmStatePaused
		zap.S().Named("alarm_service").Infow("alarm paused", "id", a.ID, "remaining", a.Remaining.String())
	default:
		return models.Alarm{}, srvErrors.NewInvalidStateError("alarm", a.State.Value(), "pause")
	}
	return s.snapshot(a, now), nil
}

// Resume restarts the countdown of a paused alarm.
func (s *AlarmService) Resume(ctx context.Context, id uuid.UUID) (models.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.alarms[id]
	if !ok {
		return models.Alarm{}, srvErrors.NewAlarmNotFoundError(id.String())
	}
	now := s.now()
	switch a.State {
	case models.AlarmStateCounting:
	case models.AlarmStatePaused:
		a.deadline = now.Add(a.Remaining)
		a.State = models.AlarmStateCounting
		zap.S().Named("alarm_service").Infow("alarm resumed", "id", a.ID, "remaining", a.Remaining.String())
	default:
		return models.Alarm{}, srvErrors.NewInvalidStateError("alarm", a.State.Value(), "resume")
	}
	return s.snapshot(a, now), nil
}

// Dismiss stops an alarm for good. A queued ring is dropped and a ring that
// is playing is cut short.
// Dismissing a dismissed alarm is a no-op.
func (s *AlarmService) Dismiss(ctx context.Context, id uuid.UUID) (models.Alarm, error) {
	s.mu.Lock()
	a, ok := s.alarms[id]
	if !ok {
		s.mu.Unlock()
		return models.Alarm{}, srvErrors.NewAlarmNotFoundError(id.String())
	}
	ring := s.dismissLocked(a)
	now := s.now()
	out := s.snapshot(a, now)
	s.mu.Unlock()

	if ring != nil && s.ringer.Cancel(ring) {
		zap.S().Named("alarm_service").Debugw("queued ring dropped", "id", a.ID)
	}
	return out, nil
}

// Delete dismisses an alarm and forgets it.
func (s *AlarmService) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	a, ok := s.alarms[id]
	if !ok {
		s.mu.Unlock()
		return srvErrors.NewAlarmNotFoundError(id.String())
	}
	ring := s.dismissLocked(a)
	delete(s.alarms, id)
	s.mu.Unlock()

	if ring != nil {
		s.ringer.Cancel(ring)
	}
	zap.S().Named("alarm_service").Infow("alarm deleted", "id", id)
	return nil
}

// Tick rings the alarms whose countdown or re-ring delay elapsed.
func (s *AlarmService) Tick(now time.Time) {
	type due struct {
		a   *alarm
		seq uint64
	}

	s.mu.Lock()
	var rings []due
	for _, a := range s.alarms {
		switch a.State {
		case models.AlarmStateCounting:
			if now.Before(a.deadline) {
				continue
			}
			a.State = models.AlarmStateRinging
			a.Remaining = 0
			a.backoff = s.newBackOff()
			zap.S().Named("alarm_service").Infow("alarm elapsed", "id", a.ID, "name", a.Name)
		case models.AlarmStateRinging:
			if a.ring != nil || now.Before(a.nextRing) {
				continue
			}
		default:
			continue
		}
		a.ringSeq++
		a.nextRing = time.Time{}
		rings = append(rings, due{a: a, seq: a.ringSeq})
	}
	s.mu.Unlock()

	for _, r := range rings {
		s.ring(r.a, r.seq)
	}
}

func (s *AlarmService) ring(a *alarm, seq uint64) {
	item, err := s.ringer.Play(sound.LookupClip(a.Clip), func(err error) {
		s.onRingDone(a, seq, err)
	}, funnel.WithPriority(sound.PriorityAlarm))
	if err != nil {
		zap.S().Named("alarm_service").Errorw("failed to queue ring", "id", a.ID, "error", err)
	}

	if !s.trackRing(a, seq, item, err) {
		s.ringer.Cancel(item)
	}
}

// trackRing records a queued ring. It returns false when the alarm moved on
// while the ring was being queued and the ring must be cancelled.
func (s *AlarmService) trackRing(a *alarm, seq uint64, item *funnel.WorkItem, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := a.State == models.AlarmStateRinging && a.ringSeq == seq
	if err != nil {
		if current {
			a.nextRing = s.now().Add(a.backoff.NextBackOff())
		}
		return true
	}
	if !current {
		return false
	}
	// The ring may already have ended and scheduled the next one.
	if a.nextRing.IsZero() {
		a.ring = item
	}
	return true
}

func (s *AlarmService) onRingDone(a *alarm, seq uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.State != models.AlarmStateRinging || a.ringSeq != seq {
		return
	}
	a.ring = nil
	a.Rings++
	if err != nil {
		zap.S().Named("alarm_service").Warnw("ring ended with error", "id", a.ID, "error", err)
	}

	next := a.backoff.NextBackOff()
	if (s.maxRings > 0 && a.Rings >= s.maxRings) || next == backoff.Stop {
		a.State = models.AlarmStateDismissed
		zap.S().Named("alarm_service").Infow("alarm gave up ringing", "id", a.ID, "rings", a.Rings)
		return
	}
	a.nextRing = s.now().Add(next)
	zap.S().Named("alarm_service").Debugw("ring finished", "id", a.ID, "rings", a.Rings, "next_in", next.String())
}

func (s *AlarmService) dismissLocked(a *alarm) *funnel.WorkItem {
	if a.State == models.AlarmStateDismissed {
		return nil
	}
	if a.State == models.AlarmStateCounting {
		a.Remaining = max(a.deadline.Sub(s.now()), 0)
	}
	a.State = models.AlarmStateDismissed
	a.nextRing = time.Time{}
	ring := a.ring
	a.ring = nil
	zap.S().Named("alarm_service").Infow("alarm dismissed", "id", a.ID, "rings", a.Rings)
	return ring
}

func (s *AlarmService) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.reRingInitial
	b.MaxInterval = s.reRingMax
	b.Reset()
	return b
}

func (s *AlarmService) snapshot(a *alarm, now time.Time) models.Alarm {
	out := a.Alarm
	if a.State == models.AlarmStateCounting {
		out.Remaining = max(a.deadline.Sub(now), 0)
	}
	if !a.nextRing.IsZero() {
		next := a.nextRing
		out.NextRingAt = &next
	}
	return out
}
