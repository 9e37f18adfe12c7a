package orb

import (
	"fmt"
	"time"
)

const (
	DefaultPeriod          = 4.0
	DefaultMinScale        = 0.2
	DefaultMaxScale        = 0.68
	DefaultWobbleAmp       = 0.2
	DefaultWobbleFreq      = 1.5
	DefaultRepulseRadius   = 0.02
	DefaultRepulseStrength = 0.05
	DefaultUpwardBias      = 0.15
	DefaultWorldTopY       = 3.0
	DefaultWorldMaxX       = 5.0
	DefaultIdleThreshold   = 1331 * time.Millisecond
	DefaultTrailMax        = 60
	DefaultTrailLag        = 10
	DefaultClickDuration   = 300 * time.Millisecond
	DefaultFollowRateX     = 0.02
	DefaultFollowRateY     = 0.03
	DefaultFadeRate        = 0.03
	DefaultHueSpeed        = 0.6
	DefaultSaturation      = 0.9
	DefaultLightness       = 0.6
	DefaultRotationX       = 0.0008
	DefaultRotationY       = 0.0012
)

// Settings holds every tunable of the controller. It is read once at
// construction and never mutated afterwards.
type Settings struct {
	Period          float64       `yaml:"period"`
	MinScale        float64       `yaml:"min_scale"`
	MaxScale        float64       `yaml:"max_scale"`
	WobbleAmp       float64       `yaml:"wobble_amp"`
	WobbleFreq      float64       `yaml:"wobble_freq"`
	RepulseRadius   float64       `yaml:"repulse_radius"`
	RepulseStrength float64       `yaml:"repulse_strength"`
	UpwardBias      float64       `yaml:"upward_bias"`
	WorldTopY       float64       `yaml:"world_top_y"`
	WorldMaxX       float64       `yaml:"world_max_x"`
	IdleThreshold   time.Duration `yaml:"idle_threshold"`
	TrailMax        int           `yaml:"trail_max"`
	TrailLag        int           `yaml:"trail_lag"`
	ClickDuration   time.Duration `yaml:"click_duration"`
	FollowRateX     float64       `yaml:"follow_rate_x"`
	FollowRateY     float64       `yaml:"follow_rate_y"`
	FadeRate        float64       `yaml:"fade_rate"`
	HueSpeed        float64       `yaml:"hue_speed"`
	Saturation      float64       `yaml:"saturation"`
	Lightness       float64       `yaml:"lightness"`
	RotationX       float64       `yaml:"rotation_x"`
	RotationY       float64       `yaml:"rotation_y"`
}

func DefaultSettings() Settings {
	return Settings{
		Period:          DefaultPeriod,
		MinScale:        DefaultMinScale,
		MaxScale:        DefaultMaxScale,
		WobbleAmp:       DefaultWobbleAmp,
		WobbleFreq:      DefaultWobbleFreq,
		RepulseRadius:   DefaultRepulseRadius,
		RepulseStrength: DefaultRepulseStrength,
		UpwardBias:      DefaultUpwardBias,
		WorldTopY:       DefaultWorldTopY,
		WorldMaxX:       DefaultWorldMaxX,
		IdleThreshold:   DefaultIdleThreshold,
		TrailMax:        DefaultTrailMax,
		TrailLag:        DefaultTrailLag,
		ClickDuration:   DefaultClickDuration,
		FollowRateX:     DefaultFollowRateX,
		FollowRateY:     DefaultFollowRateY,
		FadeRate:        DefaultFadeRate,
		HueSpeed:        DefaultHueSpeed,
		Saturation:      DefaultSaturation,
		Lightness:       DefaultLightness,
		RotationX:       DefaultRotationX,
		RotationY:       DefaultRotationY,
	}
}

// Validate returns an error wrapping ErrInvalidSettings for the first
// out-of-range field.
func (s Settings) Validate() error {
	switch {
	case !(s.Period > 0):
		return fmt.Errorf("%w: period must be positive, got %f", ErrInvalidSettings, s.Period)
	case s.MinScale < 0 || s.MinScale > s.MaxScale:
		return fmt.Errorf("%w: need 0 <= min_scale <= max_scale, got %f/%f", ErrInvalidSettings, s.MinScale, s.MaxScale)
	case s.WobbleAmp < 0:
		return fmt.Errorf("%w: wobble_amp must not be negative, got %f", ErrInvalidSettings, s.WobbleAmp)
	case s.RepulseRadius < 0 || s.RepulseStrength < 0:
		return fmt.Errorf("%w: repulsion must not be negative", ErrInvalidSettings)
	case s.UpwardBias < 0 || s.UpwardBias > 1:
		return fmt.Errorf("%w: upward_bias must be in [0,1], got %f", ErrInvalidSettings, s.UpwardBias)
	case !(s.WorldTopY > 0) || !(s.WorldMaxX > 0):
		return fmt.Errorf("%w: world bounds must be positive, got %f/%f", ErrInvalidSettings, s.WorldMaxX, s.WorldTopY)
	case s.IdleThreshold <= 0:
		return fmt.Errorf("%w: idle_threshold must be positive, got %s", ErrInvalidSettings, s.IdleThreshold)
	case s.TrailMax <= 0:
		return fmt.Errorf("%w: trail_max must be positive, got %d", ErrInvalidSettings, s.TrailMax)
	case s.TrailLag < 0:
		return fmt.Errorf("%w: trail_lag must not be negative, got %d", ErrInvalidSettings, s.TrailLag)
	case s.ClickDuration <= 0:
		return fmt.Errorf("%w: click_duration must be positive, got %s", ErrInvalidSettings, s.ClickDuration)
	case !validRate(s.FollowRateX) || !validRate(s.FollowRateY):
		return fmt.Errorf("%w: follow rates must be in (0,1], got %f/%f", ErrInvalidSettings, s.FollowRateX, s.FollowRateY)
	case !validRate(s.FadeRate):
		return fmt.Errorf("%w: fade_rate must be in (0,1], got %f", ErrInvalidSettings, s.FadeRate)
	case s.Saturation < 0 || s.Saturation > 1 || s.Lightness < 0 || s.Lightness > 1:
		return fmt.Errorf("%w: saturation and lightness must be in [0,1]", ErrInvalidSettings)
	}
	return nil
}

func validRate(r float64) bool {
	return r > 0 && r <= 1
}
