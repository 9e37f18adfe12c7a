package sim

import (
	"testing"
	"time"

	"github.com/san-kum/orbsim/internal/orb"
)

func TestCrossed(t *testing.T) {
	tests := []struct {
		name      string
		prev, now time.Duration
		want      time.Duration
		ok        bool
	}{
		{"first frame hits zero", -16 * time.Millisecond, 0, 0, true},
		{"between edges", 100 * time.Millisecond, 116 * time.Millisecond, 0, false},
		{"edge inside frame", 990 * time.Millisecond, 1006 * time.Millisecond, time.Second, true},
		{"edge on frame end", 984 * time.Millisecond, time.Second, time.Second, true},
		{"edge on frame start", time.Second, 1016 * time.Millisecond, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := crossed(tt.prev, tt.now, time.Second, 0)
			if ok != tt.ok || got != tt.want {
				t.Errorf("crossed(%s, %s) = %s, %v; want %s, %v", tt.prev, tt.now, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestClicksPressAndRelease(t *testing.T) {
	sc := Clicks(Still(), time.Second, 150*time.Millisecond)
	step := 10 * time.Millisecond
	downs, ups := 0, 0
	for now := time.Duration(0); now < 3*time.Second; now += step {
		for _, ev := range sc.Events(now-step, now) {
			switch ev.Kind {
			case orb.EventDown:
				downs++
			case orb.EventUp:
				ups++
			}
		}
	}
	if downs != 3 || ups != 3 {
		t.Errorf("expected 3 presses and releases, got %d/%d", downs, ups)
	}
}

func TestScriptsStayInBounds(t *testing.T) {
	s := orb.DefaultSettings()
	for _, name := range ListScripts() {
		sc, err := GetScript(name, s, 1)
		if err != nil {
			t.Fatalf("get %s: %v", name, err)
		}
		step := 16 * time.Millisecond
		for now := time.Duration(0); now < 20*time.Second; now += step {
			for _, ev := range sc.Events(now-step, now) {
				if ev.Kind != orb.EventMove {
					continue
				}
				if ev.Point.X < -s.WorldMaxX-1e-9 || ev.Point.X > s.WorldMaxX+1e-9 ||
					ev.Point.Y < -s.WorldTopY-1e-9 || ev.Point.Y > s.WorldTopY+1e-9 {
					t.Fatalf("%s: pointer %v out of bounds at %s", name, ev.Point, now)
				}
			}
		}
	}
}

func TestGetScriptUnknown(t *testing.T) {
	if _, err := GetScript("nope", orb.DefaultSettings(), 0); err == nil {
		t.Error("expected error for unknown script")
	}
}
