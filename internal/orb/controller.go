package orb

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// initialOpacity matches the material opacity before the first fade-in.
const initialOpacity = 0.8

// Controller owns all per-session orb state and composes it once per frame.
type Controller struct {
	settings   Settings
	appearance Appearance
	light      Light
	theme      Theme
	store      PositionStore
	rng        *rand.Rand
	logger     *slog.Logger

	trail    *Trail
	idle     *IdleDetector
	stretch  *Stretch
	follower *Follower

	state State
}

type Option func(*Controller)

func WithLight(l Light) Option {
	return func(c *Controller) { c.light = l }
}

func WithTheme(t Theme) Option {
	return func(c *Controller) { c.theme = t }
}

// WithStore seeds the start position from s and enables Persist.
func WithStore(s PositionStore) Option {
	return func(c *Controller) { c.store = s }
}

func WithRand(r *rand.Rand) Option {
	return func(c *Controller) { c.rng = r }
}

func WithSeed(seed int64) Option {
	return func(c *Controller) { c.rng = rand.New(rand.NewSource(seed)) }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithPosition sets the start position. A position restored from the store
// takes precedence.
func WithPosition(p Vec2) Option {
	return func(c *Controller) { c.state.Position = p }
}

func New(settings Settings, appearance Appearance, opts ...Option) (*Controller, error) {
	if appearance == nil {
		return nil, ErrNoAppearance
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		settings:   settings,
		appearance: appearance,
		trail:      NewTrail(settings.TrailMax),
		idle:       NewIdleDetector(settings.IdleThreshold, 0),
		stretch:    NewStretch(settings.ClickDuration),
		follower:   NewFollower(settings),
		state: State{
			Opacity:       initialOpacity,
			TargetOpacity: 1,
			Scale:         Vec3{X: settings.MinScale, Y: settings.MinScale, Z: settings.MinScale},
			Saturation:    settings.Saturation,
			Lightness:     settings.Lightness,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	c.restore()

	return c, nil
}

func (c *Controller) restore() {
	if c.store == nil {
		return
	}
	p, ok := c.store.Load()
	if !ok || !p.IsValid() {
		c.logger.Debug("no saved position, starting at default", "x", c.state.Position.X, "y", c.state.Position.Y)
		return
	}
	c.state.Position = p
	c.logger.Debug("restored position", "x", p.X, "y", p.Y)
}

func (c *Controller) Settings() Settings { return c.settings }
func (c *Controller) Trail() *Trail      { return c.trail }
func (c *Controller) State() State       { return c.state }
func (c *Controller) Idle() bool         { return c.idle.Idle() }

// PointerMove records a world-space pointer sample. Waking from Idle forces
// the opacity to zero so the orb fades in at its teleported location.
func (c *Controller) PointerMove(now time.Duration, p Vec2) {
	c.trail.Push(p)
	if c.idle.Move(now) {
		c.state.Opacity = 0
		c.state.Idle = false
		c.logger.Debug("idle -> active", "at", now)
	}
}

func (c *Controller) PointerDown(now time.Duration) { c.stretch.Press(now) }
func (c *Controller) PointerUp(now time.Duration)   { c.stretch.Release(now) }

// Apply dispatches events in order.
func (c *Controller) Apply(events ...Event) {
	for _, ev := range events {
		switch ev.Kind {
		case EventMove:
			c.PointerMove(ev.At, ev.Point)
		case EventDown:
			c.PointerDown(ev.At)
		case EventUp:
			c.PointerUp(ev.At)
		}
	}
}

// Tick applies events, advances every behavior for now and pushes the
// composed state to the sinks. The order is fixed: the idle teleport
// overrides the followed position, and the fade target depends on the idle
// decision of the same tick.
func (c *Controller) Tick(now time.Duration, events ...Event) State {
	c.Apply(events...)

	s := c.settings
	t := now.Seconds()
	st := &c.state
	st.Time = now

	st.Scale = Shape(t, c.stretch.Fraction(now), s)

	st.Position, _ = c.follower.Step(st.Position, c.trail, c.idle.Idle())

	if c.idle.Check(now) {
		st.Opacity = 0
		st.Position = TeleportPoint(c.rng, s.WorldMaxX, s.WorldTopY)
		c.logger.Debug("active -> idle", "at", now, "x", st.Position.X, "y", st.Position.Y)
	}
	st.Idle = c.idle.Idle()
	if st.Idle {
		st.TargetOpacity = 0
	} else {
		st.TargetOpacity = 1
	}
	st.Opacity = FadeOpacity(st.Opacity, st.TargetOpacity, s.FadeRate)

	col := CycleColor(t, s)
	st.Hue = col.Hue
	st.ThemeHue = col.ThemeHue
	st.Saturation = col.Saturation
	st.Lightness = col.Lightness
	st.EmissiveIntensity = col.Emissive

	st.Rotation.X += s.RotationX
	st.Rotation.Y += s.RotationY

	c.publish()
	return c.state
}

func (c *Controller) publish() {
	st := c.state
	c.appearance.SetScale(st.Scale.X, st.Scale.Y, st.Scale.Z)
	c.appearance.SetPosition(st.Position.X, st.Position.Y)
	c.appearance.SetColor(st.Hue, st.Saturation, st.Lightness)
	c.appearance.SetEmissive(st.Hue, st.Saturation, st.Lightness, st.EmissiveIntensity)
	c.appearance.SetOpacity(st.Opacity)
	c.appearance.SetRotation(st.Rotation.X, st.Rotation.Y)
	if c.light != nil {
		c.light.SetPosition(st.Position.X, st.Position.Y)
	}
	if c.theme != nil {
		c.theme.SetHue(st.ThemeHue)
	}
}

// Persist writes the current position to the store, if any.
func (c *Controller) Persist() error {
	if c.store == nil {
		return nil
	}
	p := c.state.Position
	if err := c.store.Save(p); err != nil {
		return fmt.Errorf("orb: save position: %w", err)
	}
	c.logger.Debug("saved position", "x", p.X, "y", p.Y)
	return nil
}
