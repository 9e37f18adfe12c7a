package orb_test

import (
	"errors"

	"github.com/san-kum/orbsim/internal/orb"
)

type fakeSink struct {
	calls    int
	pos      orb.Vec2
	scale    orb.Vec3
	hue      float64
	emissive float64
	opacity  float64
	rotX     float64
	rotY     float64
}

func (f *fakeSink) SetPosition(x, y float64) {
	f.calls++
	f.pos = orb.Vec2{X: x, Y: y}
}

func (f *fakeSink) SetScale(sx, sy, sz float64) {
	f.scale = orb.Vec3{X: sx, Y: sy, Z: sz}
}

func (f *fakeSink) SetColor(h, s, l float64) { f.hue = h }

func (f *fakeSink) SetEmissive(h, s, l, i float64) { f.emissive = i }

func (f *fakeSink) SetOpacity(o float64) { f.opacity = o }

func (f *fakeSink) SetRotation(rx, ry float64) { f.rotX, f.rotY = rx, ry }

type fakeLight struct{ pos orb.Vec2 }

func (l *fakeLight) SetPosition(x, y float64) { l.pos = orb.Vec2{X: x, Y: y} }

type fakeTheme struct{ hues []int }

func (t *fakeTheme) SetHue(deg int) { t.hues = append(t.hues, deg) }

type memStore struct {
	pos     orb.Vec2
	ok      bool
	saved   []orb.Vec2
	saveErr error
}

func (m *memStore) Load() (orb.Vec2, bool) { return m.pos, m.ok }

func (m *memStore) Save(p orb.Vec2) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, p)
	return nil
}

var errDiskFull = errors.New("disk full")
