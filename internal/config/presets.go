package config

import (
	"sort"
	"time"

	"github.com/san-kum/orbsim/internal/orb"
)

const DefaultPreset = "default"

// Presets adjust the default settings. DefaultPreset leaves them untouched.
var Presets = map[string]func(s *orb.Settings){
	"calm": func(s *orb.Settings) {
		s.Period = 8
		s.WobbleAmp = 0.1
		s.HueSpeed = 0.15
		s.FollowRateX = 0.01
		s.FollowRateY = 0.015
		s.IdleThreshold = 4 * time.Second
	},
	"restless": func(s *orb.Settings) {
		s.Period = 1.5
		s.WobbleAmp = 0.4
		s.WobbleFreq = 4
		s.RepulseRadius = 0.6
		s.RepulseStrength = 0.4
		s.FollowRateX = 0.06
		s.FollowRateY = 0.08
		s.IdleThreshold = 800 * time.Millisecond
	},
	"sluggish": func(s *orb.Settings) {
		s.TrailLag = 40
		s.FollowRateX = 0.005
		s.FollowRateY = 0.008
		s.FadeRate = 0.01
		s.ClickDuration = time.Second
	},
}

// GetPreset returns a config with the named preset applied over the
// defaults, or nil if no such preset exists.
func GetPreset(name string) *Config {
	if name == DefaultPreset {
		return DefaultConfig()
	}
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(&cfg.Orb)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets)+1)
	names = append(names, DefaultPreset)
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
