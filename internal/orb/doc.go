// Package orb implements the per-frame controller for a single animated orb.
//
// The controller composes independent procedural behaviors into one
// visual state each frame:
//
//   - [Trail]: bounded pointer history used for lagged pursuit
//   - [IdleDetector]: Active/Idle mode driven by input recency
//   - [Stretch]: press/release squash fraction
//   - [Shape]: base oscillation, stretch and wobble
//   - [Follower]: trail-lag target, upward bias, repulsion and smoothing
//   - [CycleColor]: hue rotation and emissive pulse
//
// # Example
//
//	c, err := orb.New(orb.DefaultSettings(), sink, orb.WithStore(store))
//	if err != nil {
//		return err
//	}
//	c.PointerMove(now, orb.NormalizePointer(px, py, w, h, settings))
//	state := c.Tick(now)
//
// # Thread Safety
//
// A Controller is NOT safe for concurrent use. All event methods and Tick
// must be called from the goroutine that owns it; [sim.Scheduler] provides
// a channel-based loop that satisfies this.
package orb
