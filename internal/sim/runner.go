package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/orbsim/internal/orb"
)

// Runner drives a controller through a script on a simulated clock, so a
// run is fully determined by its settings, script and seed.
type Runner struct {
	settings  orb.Settings
	script    Script
	opts      []orb.Option
	observers []Observer
}

// Observer is notified after every recorded frame.
type Observer interface {
	OnFrame(f Frame)
}

func NewRunner(settings orb.Settings, script Script, opts ...orb.Option) *Runner {
	return &Runner{settings: settings, script: script, opts: opts}
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	rec := &Recorder{}
	opts := append([]orb.Option{orb.WithSeed(cfg.Seed)}, r.opts...)
	ctrl, err := orb.New(r.settings, rec, opts...)
	if err != nil {
		return nil, err
	}

	step := cfg.Step()
	steps := int(cfg.Duration / step)
	result := &Result{
		Script: r.script.Name(),
		Config: cfg,
		Frames: make([]Frame, 0, steps+1),
		Start:  ctrl.State().Position,
	}

	var pointer orb.Vec2
	pressed := false
	prev := -step
	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		now := time.Duration(i) * step
		events := r.script.Events(prev, now)
		for _, ev := range events {
			switch ev.Kind {
			case orb.EventMove:
				pointer = ev.Point
			case orb.EventDown:
				pressed = true
			case orb.EventUp:
				pressed = false
			}
		}

		st := ctrl.Tick(now, events...)
		f := Frame{
			Time:     now,
			Position: rec.Position,
			Scale:    rec.Scale,
			Opacity:  rec.Opacity,
			Hue:      rec.Hue,
			ThemeHue: st.ThemeHue,
			Emissive: rec.Emissive,
			Idle:     st.Idle,
			Pointer:  pointer,
			Pressed:  pressed,
		}
		result.Frames = append(result.Frames, f)
		for _, o := range r.observers {
			o.OnFrame(f)
		}
		result.StepsTaken++
		prev = now
	}

	result.End = ctrl.State().Position
	if err := ctrl.Persist(); err != nil {
		return result, err
	}
	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", cfg.FPS)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %s", cfg.Duration)
	}
	return nil
}
