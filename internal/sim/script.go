package sim

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/san-kum/orbsim/internal/orb"
)

// Script produces the pointer events that happen during the frame ending
// at now. prev is the time of the previous frame.
type Script interface {
	Name() string
	Events(prev, now time.Duration) []orb.Event
}

type scriptFunc struct {
	name string
	fn   func(prev, now time.Duration) []orb.Event
}

func (s scriptFunc) Name() string { return s.name }

func (s scriptFunc) Events(prev, now time.Duration) []orb.Event { return s.fn(prev, now) }

var scripts = map[string]func(s orb.Settings, seed int64) Script{
	"still":  func(orb.Settings, int64) Script { return Still() },
	"circle": func(s orb.Settings, _ int64) Script { return Circle(s, 6*time.Second) },
	"zigzag": func(s orb.Settings, _ int64) Script { return Zigzag(s, 4*time.Second) },
	"clicks": func(s orb.Settings, _ int64) Script { return Clicks(Circle(s, 6*time.Second), time.Second, 150*time.Millisecond) },
	"wander": func(s orb.Settings, seed int64) Script { return Wander(s, seed, 5*time.Second, 2*time.Second) },
}

// GetScript returns the named script bound to the given settings.
func GetScript(name string, s orb.Settings, seed int64) (Script, error) {
	build, ok := scripts[name]
	if !ok {
		return nil, fmt.Errorf("unknown script: %s (available: %v)", name, ListScripts())
	}
	return build(s, seed), nil
}

func ListScripts() []string {
	names := make([]string, 0, len(scripts))
	for name := range scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Still never moves the pointer.
func Still() Script {
	return scriptFunc{name: "still", fn: func(prev, now time.Duration) []orb.Event { return nil }}
}

// Circle moves the pointer once per frame around an ellipse at half the
// world bounds.
func Circle(s orb.Settings, period time.Duration) Script {
	return scriptFunc{name: "circle", fn: func(prev, now time.Duration) []orb.Event {
		phase := 2 * math.Pi * float64(now) / float64(period)
		p := orb.Vec2{X: math.Cos(phase) * s.WorldMaxX / 2, Y: math.Sin(phase) * s.WorldTopY / 2}
		return []orb.Event{orb.Move(now, p)}
	}}
}

// Zigzag sweeps the pointer back and forth across the full width.
func Zigzag(s orb.Settings, period time.Duration) Script {
	return scriptFunc{name: "zigzag", fn: func(prev, now time.Duration) []orb.Event {
		frac := math.Mod(float64(now)/float64(period), 1)
		tri := 1 - math.Abs(2*frac-1)
		p := orb.Vec2{X: (2*tri - 1) * s.WorldMaxX, Y: (2*tri - 1) * s.WorldTopY * 0.25}
		return []orb.Event{orb.Move(now, p)}
	}}
}

// Clicks wraps base with a press every interval, released after hold.
func Clicks(base Script, interval, hold time.Duration) Script {
	return scriptFunc{name: "clicks", fn: func(prev, now time.Duration) []orb.Event {
		events := base.Events(prev, now)
		for _, edge := range []struct {
			offset time.Duration
			kind   orb.EventKind
		}{{0, orb.EventDown}, {hold, orb.EventUp}} {
			if at, ok := crossed(prev, now, interval, edge.offset); ok {
				events = append(events, orb.Event{Kind: edge.kind, At: at})
			}
		}
		return events
	}}
}

// Wander is a seeded random walk that pauses for pause out of every
// cycle, long enough to trigger the idle teleport with default settings.
func Wander(s orb.Settings, seed int64, cycle, pause time.Duration) Script {
	rng := rand.New(rand.NewSource(seed))
	var p orb.Vec2
	return scriptFunc{name: "wander", fn: func(prev, now time.Duration) []orb.Event {
		if now%cycle >= cycle-pause {
			return nil
		}
		p.X = clampAbs(p.X+(rng.Float64()-0.5)*0.3, s.WorldMaxX)
		p.Y = clampAbs(p.Y+(rng.Float64()-0.5)*0.2, s.WorldTopY)
		return []orb.Event{orb.Move(now, p)}
	}}
}

// crossed reports whether a periodic instant k*interval+offset falls in
// (prev, now].
func crossed(prev, now, interval, offset time.Duration) (time.Duration, bool) {
	if interval <= 0 || now < offset {
		return 0, false
	}
	k := (now - offset) / interval
	at := k*interval + offset
	if at > prev && at <= now {
		return at, true
	}
	return 0, false
}

func clampAbs(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}
