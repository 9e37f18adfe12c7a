package sim

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/orbsim/internal/orb"
)

// ErrStopped is returned by Post once the scheduler has stopped.
var ErrStopped = errors.New("sim: scheduler stopped")

// Scheduler ticks a controller at a fixed frame rate in real time. Events
// posted from any goroutine are applied by the loop goroutine, which is the
// only one that touches the controller.
type Scheduler struct {
	ctrl     *orb.Controller
	interval time.Duration
	events   chan orb.Event
	done     chan struct{}
	stopOnce sync.Once
	start    time.Time
	onFrame  func(orb.State)
	logger   *slog.Logger
}

type SchedulerOption func(*Scheduler)

// OnFrame registers a callback run on the loop goroutine after every tick.
func OnFrame(fn func(orb.State)) SchedulerOption {
	return func(s *Scheduler) { s.onFrame = fn }
}

func WithSchedulerLogger(l *slog.Logger) SchedulerOption {
	return func(s *Scheduler) { s.logger = l }
}

// WithBuffer sets the event queue length.
func WithBuffer(n int) SchedulerOption {
	return func(s *Scheduler) { s.events = make(chan orb.Event, n) }
}

func NewScheduler(ctrl *orb.Controller, fps int, opts ...SchedulerOption) *Scheduler {
	if fps <= 0 {
		fps = 60
	}
	s := &Scheduler{
		ctrl:     ctrl,
		interval: time.Second / time.Duration(fps),
		events:   make(chan orb.Event, 256),
		done:     make(chan struct{}),
		start:    time.Now(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now is the session clock shared by the loop and event producers.
func (s *Scheduler) Now() time.Duration { return time.Since(s.start) }

// Post queues an event for the next tick. It blocks while the queue is
// full and fails once the scheduler has stopped.
func (s *Scheduler) Post(ev orb.Event) error {
	select {
	case <-s.done:
		return ErrStopped
	default:
	}
	select {
	case s.events <- ev:
		return nil
	case <-s.done:
		return ErrStopped
	}
}

// Stop ends Run. It is safe to call more than once and from any goroutine.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Run ticks until ctx is cancelled or Stop is called, then flushes the
// position to the controller's store before returning. Cancellation is a
// normal shutdown; only a failed save is reported.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer s.Stop()

	for {
		select {
		case <-ctx.Done():
			return s.shutdown()
		case <-s.done:
			return s.shutdown()
		case ev := <-s.events:
			s.ctrl.Apply(ev)
		case <-ticker.C:
			s.drain()
			st := s.ctrl.Tick(s.Now())
			if s.onFrame != nil {
				s.onFrame(st)
			}
		}
	}
}

func (s *Scheduler) drain() {
	for {
		select {
		case ev := <-s.events:
			s.ctrl.Apply(ev)
		default:
			return
		}
	}
}

func (s *Scheduler) shutdown() error {
	s.drain()
	if err := s.ctrl.Persist(); err != nil {
		s.logger.Warn("position not saved", "err", err)
		return err
	}
	return nil
}
