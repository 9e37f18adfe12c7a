package orb_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbsim/internal/orb"
)

const ms = time.Millisecond

var _ = Describe("Controller", func() {
	var (
		settings orb.Settings
		sink     *fakeSink
		ctrl     *orb.Controller
	)

	BeforeEach(func() {
		settings = orb.DefaultSettings()
		sink = &fakeSink{}
		var err error
		ctrl, err = orb.New(settings, sink, orb.WithSeed(7))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("rejects a missing appearance sink", func() {
			_, err := orb.New(settings, nil)
			Expect(err).To(MatchError(orb.ErrNoAppearance))
		})

		It("rejects invalid settings", func() {
			settings.Period = 0
			_, err := orb.New(settings, sink)
			Expect(err).To(MatchError(orb.ErrInvalidSettings))
		})

		It("starts active at the origin", func() {
			st := ctrl.State()
			Expect(st.Position).To(Equal(orb.Vec2{}))
			Expect(ctrl.Idle()).To(BeFalse())
		})
	})

	Describe("restoring position", func() {
		It("restores a saved position exactly", func() {
			store := &memStore{pos: orb.Vec2{X: 2.5, Y: -1.0}, ok: true}
			c, err := orb.New(settings, sink, orb.WithStore(store))
			Expect(err).NotTo(HaveOccurred())
			Expect(c.State().Position).To(Equal(orb.Vec2{X: 2.5, Y: -1.0}))
		})

		It("keeps the default when nothing is saved", func() {
			c, err := orb.New(settings, sink, orb.WithStore(&memStore{}))
			Expect(err).NotTo(HaveOccurred())
			Expect(c.State().Position).To(Equal(orb.Vec2{}))
		})

		It("ignores non-finite values", func() {
			store := &memStore{pos: orb.Vec2{X: math.NaN(), Y: 1}, ok: true}
			c, err := orb.New(settings, sink, orb.WithStore(store), orb.WithPosition(orb.Vec2{X: 1, Y: 1}))
			Expect(err).NotTo(HaveOccurred())
			Expect(c.State().Position).To(Equal(orb.Vec2{X: 1, Y: 1}))
		})

		It("persists the current position", func() {
			store := &memStore{pos: orb.Vec2{X: 1, Y: 2}, ok: true}
			c, err := orb.New(settings, sink, orb.WithStore(store))
			Expect(err).NotTo(HaveOccurred())
			c.Tick(16 * ms)
			Expect(c.Persist()).To(Succeed())
			Expect(store.saved).To(HaveLen(1))
			Expect(store.saved[0]).To(Equal(c.State().Position))
		})

		It("wraps save failures", func() {
			store := &memStore{saveErr: errDiskFull}
			c, err := orb.New(settings, sink, orb.WithStore(store))
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Persist()).To(MatchError(errDiskFull))
		})

		It("skips persistence without a store", func() {
			Expect(ctrl.Persist()).To(Succeed())
		})
	})

	Describe("idle detection", func() {
		It("does not go idle at exactly the threshold", func() {
			ctrl.Tick(settings.IdleThreshold)
			Expect(ctrl.Idle()).To(BeFalse())
		})

		It("goes idle once the threshold is exceeded and zeroes the fade target on the same tick", func() {
			st := ctrl.Tick(settings.IdleThreshold + ms)
			Expect(st.Idle).To(BeTrue())
			Expect(st.TargetOpacity).To(BeZero())
			Expect(st.Opacity).To(BeZero())
			Expect(sink.opacity).To(BeZero())
		})

		It("teleports inside the world ellipse", func() {
			st := ctrl.Tick(settings.IdleThreshold + ms)
			p := st.Position
			r := p.X*p.X/(settings.WorldMaxX*settings.WorldMaxX) + p.Y*p.Y/(settings.WorldTopY*settings.WorldTopY)
			Expect(r).To(BeNumerically("<=", 1.0))
		})

		It("stays idle and invisible without input", func() {
			ctrl.Tick(settings.IdleThreshold + ms)
			for now := settings.IdleThreshold + 20*ms; now < 5*time.Second; now += 16 * ms {
				st := ctrl.Tick(now)
				Expect(st.Idle).To(BeTrue())
				Expect(st.Opacity).To(BeZero())
			}
		})

		It("wakes on movement with opacity forced to zero", func() {
			ctrl.Tick(settings.IdleThreshold + ms)
			ctrl.PointerMove(2*time.Second, orb.Vec2{X: 1, Y: 1})
			Expect(ctrl.Idle()).To(BeFalse())
			Expect(ctrl.State().Opacity).To(BeZero())

			st := ctrl.Tick(2*time.Second + 16*ms)
			Expect(st.TargetOpacity).To(Equal(1.0))
			Expect(st.Opacity).To(BeNumerically("~", settings.FadeRate, 1e-12))
		})

		It("keeps movement from going idle", func() {
			for now := time.Duration(0); now < 10*time.Second; now += 16 * ms {
				ctrl.Tick(now, orb.Move(now, orb.Vec2{X: 1}))
				Expect(ctrl.Idle()).To(BeFalse())
			}
		})
	})

	Describe("click stretch", func() {
		It("squashes while pressed and recovers after release", func() {
			now := 200 * ms
			ctrl.PointerMove(now, orb.Vec2{})
			ctrl.PointerDown(now)
			st := ctrl.Tick(now)
			base := orb.BaseScale(now.Seconds(), settings)
			w := orb.Wobble(now.Seconds(), settings)
			Expect(st.Scale.X).To(BeNumerically("~", base*1.5+w.X, 1e-12))
			Expect(st.Scale.Y).To(BeNumerically("~", base*0.5+w.Y, 1e-12))
			Expect(st.Scale.Z).To(BeNumerically("~", base+w.Z, 1e-12))

			ctrl.Tick(now, orb.Up(now))
			later := now + settings.ClickDuration
			st = ctrl.Tick(later)
			base = orb.BaseScale(later.Seconds(), settings)
			w = orb.Wobble(later.Seconds(), settings)
			Expect(st.Scale.X).To(BeNumerically("~", base+w.X, 1e-12))
			Expect(st.Scale.Y).To(BeNumerically("~", base+w.Y, 1e-12))
		})
	})

	Describe("sinks", func() {
		It("pushes every frame and mirrors the light and theme", func() {
			light := &fakeLight{}
			theme := &fakeTheme{}
			c, err := orb.New(settings, sink, orb.WithLight(light), orb.WithTheme(theme), orb.WithSeed(1))
			Expect(err).NotTo(HaveOccurred())

			var st orb.State
			for i := 1; i <= 10; i++ {
				now := time.Duration(i) * 16 * ms
				st = c.Tick(now, orb.Move(now, orb.Vec2{X: 2, Y: 1}))
			}
			Expect(sink.calls).To(Equal(10))
			Expect(sink.pos).To(Equal(st.Position))
			Expect(light.pos).To(Equal(st.Position))
			Expect(theme.hues).To(HaveLen(10))
			Expect(theme.hues[9]).To(Equal(int(math.Floor(st.Hue * 360))))
			Expect(sink.rotX).To(BeNumerically("~", 10*settings.RotationX, 1e-12))
			Expect(sink.rotY).To(BeNumerically("~", 10*settings.RotationY, 1e-12))
		})

		It("keeps the trail bounded", func() {
			for i := 0; i < 500; i++ {
				now := time.Duration(i) * ms
				ctrl.PointerMove(now, orb.Vec2{X: float64(i)})
				Expect(ctrl.Trail().Len()).To(BeNumerically("<=", settings.TrailMax))
			}
			samples := ctrl.Trail().Samples()
			Expect(samples[len(samples)-1].X).To(Equal(499.0))
			Expect(samples[0].X).To(Equal(float64(500 - settings.TrailMax)))
		})

		It("follows the lagged pointer upward", func() {
			var st orb.State
			for i := 0; i < 600; i++ {
				now := time.Duration(i) * 16 * ms
				st = ctrl.Tick(now, orb.Move(now, orb.Vec2{X: 2, Y: 0}))
			}
			wantY := settings.WorldTopY * settings.UpwardBias
			// Repulsion keeps the orb hovering near, not on, the target.
			Expect(st.Position.X).To(BeNumerically("~", 2, 5e-2))
			Expect(st.Position.Y).To(BeNumerically("~", wantY, 5e-2))
		})
	})
})

var _ = Describe("IdleDetector", func() {
	It("transitions exactly once per idle period", func() {
		d := orb.NewIdleDetector(1331*ms, 0)
		transitions := 0
		for now := time.Duration(0); now < 10*time.Second; now += 10 * ms {
			if d.Check(now) {
				transitions++
			}
		}
		Expect(transitions).To(Equal(1))

		Expect(d.Move(10 * time.Second)).To(BeTrue())
		Expect(d.Move(10*time.Second + ms)).To(BeFalse())
		Expect(d.Check(11 * time.Second)).To(BeFalse())
		Expect(d.Check(12 * time.Second)).To(BeTrue())
	})
})

var _ = Describe("Follower", func() {
	var (
		settings orb.Settings
		trail    *orb.Trail
	)

	BeforeEach(func() {
		settings = orb.DefaultSettings()
		trail = orb.NewTrail(settings.TrailMax)
	})

	It("falls back to the current position with an empty trail", func() {
		f := orb.NewFollower(settings)
		pos := orb.Vec2{X: 1, Y: 0}
		Expect(f.Target(pos, trail)).To(Equal(orb.Vec2{X: 1, Y: 3 * settings.UpwardBias}))
	})

	It("does not mutate trail samples", func() {
		f := orb.NewFollower(settings)
		trail.Push(orb.Vec2{X: 2, Y: 1})
		for i := 0; i < 5; i++ {
			f.Step(orb.Vec2{}, trail, false)
		}
		Expect(trail.Samples()[0]).To(Equal(orb.Vec2{X: 2, Y: 1}))
	})

	It("uses the bias-adjusted target outside the repulse radius", func() {
		f := orb.NewFollower(settings)
		trail.Push(orb.Vec2{X: 2, Y: 1})
		Expect(f.Desired(orb.Vec2{}, trail, false)).To(Equal(orb.Vec2{X: 2, Y: 1 + (3-1)*settings.UpwardBias}))
	})

	Context("within the repulse radius", func() {
		BeforeEach(func() {
			settings.RepulseRadius = 0.5
			settings.UpwardBias = 0
			trail.Push(orb.Vec2{X: 0.1, Y: 0})
		})

		It("pushes away from the target while active", func() {
			f := orb.NewFollower(settings)
			got := f.Desired(orb.Vec2{}, trail, false)
			Expect(got.X).To(BeNumerically("~", -settings.RepulseStrength, 1e-12))
			Expect(got.Y).To(BeNumerically("~", 0, 1e-12))
		})

		It("is disabled while idle", func() {
			f := orb.NewFollower(settings)
			Expect(f.Desired(orb.Vec2{}, trail, true)).To(Equal(orb.Vec2{X: 0.1, Y: 0}))
		})

		It("treats zero distance as one", func() {
			settings.RepulseRadius = 2
			trail.Reset()
			trail.Push(orb.Vec2{X: 0, Y: 0})
			f := orb.NewFollower(settings)
			got := f.Desired(orb.Vec2{}, trail, false)
			Expect(got.IsValid()).To(BeTrue())
			Expect(got).To(Equal(orb.Vec2{}))
		})
	})

	It("never overshoots a fixed target", func() {
		pos := orb.Vec2{}
		target := orb.Vec2{X: 4, Y: -2}
		prev := pos.Sub(target).Len()
		for i := 0; i < 1000; i++ {
			pos = orb.Smooth(pos, target, settings.FollowRateX, settings.FollowRateY)
			Expect(pos.X).To(BeNumerically("<=", target.X))
			Expect(pos.Y).To(BeNumerically(">=", target.Y))
			d := pos.Sub(target).Len()
			Expect(d).To(BeNumerically("<", prev))
			prev = d
		}
		Expect(prev).To(BeNumerically("<", 1e-6))
	})
})

var _ = Describe("NormalizePointer", func() {
	It("maps the viewport onto the world bounds", func() {
		s := orb.DefaultSettings()
		Expect(orb.NormalizePointer(0, 0, 800, 600, s)).To(Equal(orb.Vec2{X: -5, Y: 3}))
		Expect(orb.NormalizePointer(400, 300, 800, 600, s)).To(Equal(orb.Vec2{X: 0, Y: 0}))
		Expect(orb.NormalizePointer(800, 600, 800, 600, s)).To(Equal(orb.Vec2{X: 5, Y: -3}))
		Expect(orb.NormalizePointer(10, 10, 0, 600, s)).To(Equal(orb.Vec2{}))
	})
})
