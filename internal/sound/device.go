package sound

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrDeviceBusy is returned when an operation is started on a busy device.
var ErrDeviceBusy = errors.New("sound: device busy")

const defaultWordDuration = 350 * time.Millisecond

// Clip is a named sound of fixed length.
type Clip struct {
	Name   string
	Length time.Duration
}

var clips = map[string]Clip{
	"bell":   {Name: "bell", Length: 3 * time.Second},
	"chime":  {Name: "chime", Length: 2 * time.Second},
	"buzzer": {Name: "buzzer", Length: 4 * time.Second},
	"beep":   {Name: "beep", Length: 500 * time.Millisecond},
}

// DefaultClip is rung for alarms that do not name a known clip.
const DefaultClip = "bell"

// LookupClip returns the built-in clip with the given name, or the default
// clip when the name is unknown.
func LookupClip(name string) Clip {
	if c, ok := clips[name]; ok {
		return c
	}
	return clips[DefaultClip]
}

// KnownClip reports whether name is a built-in clip.
func KnownClip(name string) bool {
	_, ok := clips[name]
	return ok
}

// Device is the single shared audio resource. Operations return immediately
// and report the end of the sound through done.
type Device interface {
	Busy() bool
	Play(ctx context.Context, clip Clip, done func(error)) error
	Record(ctx context.Context, d time.Duration, done func(error)) error
	Say(ctx context.Context, text string, done func(error)) error
}

// SimulatedDevice is a Device that plays sounds by waiting for their length.
type SimulatedDevice struct {
	wordDuration time.Duration

	mu      sync.Mutex
	active  string
	held    int
	history []string
}

type DeviceOption func(*SimulatedDevice)

// WithWordDuration sets how long Say takes per word.
func WithWordDuration(d time.Duration) DeviceOption {
	return func(s *SimulatedDevice) {
		if d > 0 {
			s.wordDuration = d
		}
	}
}

func NewSimulatedDevice(opts ...DeviceOption) *SimulatedDevice {
	s := &SimulatedDevice{wordDuration: defaultWordDuration}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Busy reports whether an operation is playing or the device is held.
func (s *SimulatedDevice) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != "" || s.held > 0
}

// Hold marks the device busy on behalf of something outside the funnel,
// like another application using the microphone. Calls nest.
func (s *SimulatedDevice) Hold() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held++
}

func (s *SimulatedDevice) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held > 0 {
		s.held--
	}
}

// History returns the operations started so far, oldest first.
func (s *SimulatedDevice) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

func (s *SimulatedDevice) Play(ctx context.Context, clip Clip, done func(error)) error {
	return s.start(ctx, "play:"+clip.Name, clip.Length, done)
}

func (s *SimulatedDevice) Record(ctx context.Context, d time.Duration, done func(error)) error {
	return s.start(ctx, "record:"+d.String(), d, done)
}

func (s *SimulatedDevice) Say(ctx context.Context, text string, done func(error)) error {
	words := len(strings.Fields(text))
	if words == 0 {
		words = 1
	}
	return s.start(ctx, "say:"+text, time.Duration(words)*s.wordDuration, done)
}

func (s *SimulatedDevice) start(ctx context.Context, op string, length time.Duration, done func(error)) error {
	s.mu.Lock()
	if s.active != "" || s.held > 0 {
		s.mu.Unlock()
		return ErrDeviceBusy
	}
	s.active = op
	s.history = append(s.history, op)
	s.mu.Unlock()

	zap.S().Named("sound").Debugw("device started", "op", op, "length", length.String())

	var once sync.Once
	finish := func(err error) {
		once.Do(func() {
			s.mu.Lock()
			s.active = ""
			s.mu.Unlock()
			zap.S().Named("sound").Debugw("device finished", "op", op, "error", err)
			if done != nil {
				done(err)
			}
		})
	}

	timer := time.AfterFunc(length, func() { finish(nil) })
	context.AfterFunc(ctx, func() {
		if timer.Stop() {
			finish(ctx.Err())
		}
	})
	return nil
}
