package orb

import (
	"math"
	"math/rand"
	"time"
)

// IdleDetector tracks input recency and flips between Active and Idle.
// It starts Active.
type IdleDetector struct {
	threshold time.Duration
	lastMove  time.Duration
	idle      bool
}

func NewIdleDetector(threshold time.Duration, start time.Duration) *IdleDetector {
	return &IdleDetector{threshold: threshold, lastMove: start}
}

func (d *IdleDetector) Idle() bool              { return d.idle }
func (d *IdleDetector) LastMove() time.Duration { return d.lastMove }

// Move records pointer activity. It reports true when this call woke the
// detector from Idle.
func (d *IdleDetector) Move(now time.Duration) bool {
	d.lastMove = now
	if d.idle {
		d.idle = false
		return true
	}
	return false
}

// Check reports true exactly once per idle period, on the first call where
// the time since the last move exceeds the threshold.
func (d *IdleDetector) Check(now time.Duration) bool {
	if d.idle || now-d.lastMove <= d.threshold {
		return false
	}
	d.idle = true
	return true
}

// TeleportPoint samples a point over a disk scaled independently by maxX
// and maxY. The square-root radius keeps the density uniform over the disk;
// with maxX != maxY the region is an ellipse.
func TeleportPoint(rng *rand.Rand, maxX, maxY float64) Vec2 {
	angle := rng.Float64() * 2 * math.Pi
	radius := math.Sqrt(rng.Float64())
	return Vec2{
		X: math.Cos(angle) * radius * maxX,
		Y: math.Sin(angle) * radius * maxY,
	}
}
