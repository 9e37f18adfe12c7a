package sim

import (
	"context"
	"testing"
	"time"

	"github.com/san-kum/orbsim/internal/orb"
)

func TestRunnerFrameCount(t *testing.T) {
	r := NewRunner(orb.DefaultSettings(), Still())
	result, err := r.Run(context.Background(), Config{FPS: 60, Duration: time.Second, Seed: 1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Frames) != 61 {
		t.Errorf("expected 61 frames, got %d", len(result.Frames))
	}
	if result.StepsTaken != len(result.Frames) {
		t.Errorf("steps %d != frames %d", result.StepsTaken, len(result.Frames))
	}
	if result.Script != "still" {
		t.Errorf("expected script still, got %s", result.Script)
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	r := NewRunner(orb.DefaultSettings(), Still())

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero fps", Config{FPS: 0, Duration: time.Second}},
		{"negative fps", Config{FPS: -1, Duration: time.Second}},
		{"zero duration", Config{FPS: 60, Duration: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunnerStillGoesIdleOnce(t *testing.T) {
	s := orb.DefaultSettings()
	r := NewRunner(s, Still())
	result, err := r.Run(context.Background(), Config{FPS: 60, Duration: 5 * time.Second, Seed: 3})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	transitions := 0
	for i, f := range result.Frames {
		if f.Idle && (i == 0 || !result.Frames[i-1].Idle) {
			transitions++
			if f.Opacity != 0 {
				t.Errorf("expected opacity 0 on the idle frame, got %f", f.Opacity)
			}
			if f.Time <= s.IdleThreshold {
				t.Errorf("went idle too early at %s", f.Time)
			}
		}
	}
	if transitions != 1 {
		t.Errorf("expected exactly one idle transition, got %d", transitions)
	}
}

func TestRunnerCircleStaysActive(t *testing.T) {
	s := orb.DefaultSettings()
	r := NewRunner(s, Circle(s, 6*time.Second))
	result, err := r.Run(context.Background(), Config{FPS: 30, Duration: 10 * time.Second, Seed: 3})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, f := range result.Frames {
		if f.Idle {
			t.Fatalf("circle script went idle at %s", f.Time)
		}
	}
	last := result.Frames[len(result.Frames)-1]
	if last.Opacity < 0.99 {
		t.Errorf("expected fully faded in, got %f", last.Opacity)
	}
}

func TestRunnerDeterministic(t *testing.T) {
	s := orb.DefaultSettings()
	cfg := Config{FPS: 60, Duration: 8 * time.Second, Seed: 42}

	a, err := NewRunner(s, Wander(s, 42, 5*time.Second, 2*time.Second)).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRunner(s, Wander(s, 42, 5*time.Second, 2*time.Second)).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Frames) != len(b.Frames) {
		t.Fatalf("frame counts differ: %d vs %d", len(a.Frames), len(b.Frames))
	}
	for i := range a.Frames {
		if a.Frames[i] != b.Frames[i] {
			t.Fatalf("frame %d differs: %+v vs %+v", i, a.Frames[i], b.Frames[i])
		}
	}
}

func TestRunnerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(orb.DefaultSettings(), Still())
	if _, err := r.Run(ctx, Config{FPS: 60, Duration: time.Second}); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type countingObserver struct{ n int }

func (c *countingObserver) OnFrame(Frame) { c.n++ }

func TestRunnerObserver(t *testing.T) {
	obs := &countingObserver{}
	r := NewRunner(orb.DefaultSettings(), Still())
	r.AddObserver(obs)
	result, err := r.Run(context.Background(), Config{FPS: 10, Duration: time.Second})
	if err != nil {
		t.Fatal(err)
	}
	if obs.n != len(result.Frames) {
		t.Errorf("observer saw %d frames, expected %d", obs.n, len(result.Frames))
	}
}

func TestEnsemble(t *testing.T) {
	s := orb.DefaultSettings()
	e := NewEnsemble(s, func(seed int64) Script { return Still() }, 4, 10)
	results, err := e.Run(context.Background(), Config{FPS: 30, Duration: 2 * time.Second})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Config.Seed != int64(10+i) {
			t.Errorf("run %d: expected seed %d, got %d", i, 10+i, r.Config.Seed)
		}
	}
	if results[0].End == results[1].End {
		t.Error("different seeds should teleport to different points")
	}
}

func TestFrameValuesRoundTrip(t *testing.T) {
	f := Frame{
		Time:     time.Second,
		Position: orb.Vec2{X: 1, Y: -2},
		Scale:    orb.Vec3{X: 0.3, Y: 0.2, Z: 0.25},
		Opacity:  0.5,
		Hue:      0.25,
		ThemeHue: 90,
		Emissive: 1.2,
		Idle:     true,
		Pointer:  orb.Vec2{X: 3, Y: 1},
		Pressed:  true,
	}
	if len(f.Values()) != len(Columns) {
		t.Fatalf("values/columns mismatch: %d vs %d", len(f.Values()), len(Columns))
	}
	if got := FrameFromValues(f.Time, f.Values()); got != f {
		t.Errorf("expected %+v, got %+v", f, got)
	}
}
