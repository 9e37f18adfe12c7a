package orb

import "time"

type EventKind int

const (
	EventMove EventKind = iota
	EventDown
	EventUp
)

func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventDown:
		return "down"
	case EventUp:
		return "up"
	default:
		return "unknown"
	}
}

// Event is one pointer input. Point is only meaningful for EventMove and is
// already in world coordinates.
type Event struct {
	Kind  EventKind
	At    time.Duration
	Point Vec2
}

func Move(at time.Duration, p Vec2) Event { return Event{Kind: EventMove, At: at, Point: p} }
func Down(at time.Duration) Event         { return Event{Kind: EventDown, At: at} }
func Up(at time.Duration) Event           { return Event{Kind: EventUp, At: at} }

// NormalizePointer maps viewport pixels to world coordinates: x spans
// [-WorldMaxX, WorldMaxX] left to right and y spans [-WorldTopY, WorldTopY]
// bottom to top.
func NormalizePointer(px, py, width, height float64, s Settings) Vec2 {
	if width <= 0 || height <= 0 {
		return Vec2{}
	}
	x := (px/width)*2 - 1
	y := -(py/height)*2 + 1
	return Vec2{X: x * s.WorldMaxX, Y: y * s.WorldTopY}
}
