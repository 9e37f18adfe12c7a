package sim

import (
	"context"
	"log/slog"
	"time"

	"github.com/san-kum/orbsim/internal/orb"
)

// RunRealtime plays the script against the wall clock through a Scheduler
// instead of the simulated clock. Script events are posted from a separate
// goroutine, so frames record the newest trail sample as the pointer and
// never report a press. The run is not reproducible.
func (r *Runner) RunRealtime(ctx context.Context, cfg Config, logger *slog.Logger) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	rec := &Recorder{}
	opts := append([]orb.Option{orb.WithSeed(cfg.Seed)}, r.opts...)
	ctrl, err := orb.New(r.settings, rec, opts...)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Script: r.script.Name(),
		Config: cfg,
		Start:  ctrl.State().Position,
	}
	onFrame := func(st orb.State) {
		f := Frame{
			Time:     st.Time,
			Position: st.Position,
			Scale:    st.Scale,
			Opacity:  st.Opacity,
			Hue:      st.Hue,
			ThemeHue: st.ThemeHue,
			Emissive: st.EmissiveIntensity,
			Idle:     st.Idle,
			Pointer:  ctrl.Trail().Lagged(0, orb.Vec2{}),
		}
		result.Frames = append(result.Frames, f)
		for _, o := range r.observers {
			o.OnFrame(f)
		}
		result.StepsTaken++
	}

	sched := NewScheduler(ctrl, cfg.FPS, OnFrame(onFrame), WithSchedulerLogger(logger))
	runCtx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	go r.feed(runCtx, sched, cfg.Step())

	if err := sched.Run(runCtx); err != nil {
		return result, err
	}
	result.End = ctrl.State().Position
	return result, ctx.Err()
}

// feed posts script events once per frame until ctx ends or the scheduler
// stops accepting them.
func (r *Runner) feed(ctx context.Context, sched *Scheduler, step time.Duration) {
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	prev := -step
	for {
		now := sched.Now()
		for _, ev := range r.script.Events(prev, now) {
			if err := sched.Post(ev); err != nil {
				return
			}
		}
		prev = now

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
