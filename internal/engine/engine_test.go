package engine_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/planetary/internal/engine"
	"github.com/san-kum/planetary/internal/scenario"
	"github.com/san-kum/planetary/internal/units"
)

func body(px, py, vx, vy, mass float64) scenario.Body {
	return scenario.Body{
		Position: []float64{px, py},
		Velocity: []float64{vx, vy},
		Mass:     mass,
	}
}

var _ = Describe("System construction", func() {
	var opt engine.Options

	BeforeEach(func() {
		opt = engine.DefaultOptions()
	})

	It("indexes bodies by sorted label across all arrays", func() {
		rec := scenario.Record{
			"zeta":  body(1, 2, 3, 4, 5),
			"alpha": body(6, 7, 8, 9, 10),
		}
		sys, err := engine.New(rec, opt)
		Expect(err).NotTo(HaveOccurred())

		Expect(sys.Labels).To(Equal([]string{"alpha", "zeta"}))
		Expect(sys.Pos[0]).To(Equal(engine.Vec2{X: 6, Y: 7}))
		Expect(sys.Vel[0]).To(Equal(engine.Vec2{X: 8, Y: 9}))
		Expect(sys.Mass).To(Equal([]float64{10, 5}))
		Expect(sys.Acc).To(Equal([]engine.Vec2{{}, {}}))
	})

	It("seeds the history with the initial snapshot", func() {
		sys, err := engine.New(scenario.Record{"a": body(1, 2, 0, 0, 1)}, opt)
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.History).To(HaveLen(1))
		Expect(sys.History[0]).To(Equal([]engine.Vec2{{X: 1, Y: 2}}))

		// Snapshot must not alias the live positions.
		sys.Pos[0] = engine.Vec2{X: 99, Y: 99}
		Expect(sys.History[0][0]).To(Equal(engine.Vec2{X: 1, Y: 2}))
	})

	It("keeps no history when tracking is disabled", func() {
		opt.TrackHistory = false
		sys, err := engine.New(scenario.Record{"a": body(0, 0, 0, 0, 1)}, opt)
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.History).To(BeNil())
	})

	It("rejects a body with no velocity", func() {
		rec := scenario.Record{"a": {Position: []float64{0, 0}, Mass: 1}}
		_, err := engine.New(rec, opt)
		Expect(err).To(MatchError(engine.ErrInvalidRecord))
	})

	It("rejects zero mass", func() {
		_, err := engine.New(scenario.Record{"a": body(0, 0, 0, 0, 0)}, opt)
		Expect(err).To(MatchError(engine.ErrInvalidRecord))
	})

	It("rejects a position that is not two components", func() {
		rec := scenario.Record{"a": {
			Position: []float64{1, 2, 3},
			Velocity: []float64{0, 0},
			Mass:     1,
		}}
		_, err := engine.New(rec, opt)
		Expect(err).To(MatchError(engine.ErrInvalidRecord))
	})

	It("rejects unit names outside the recognized sets", func() {
		opt.SpaceUnits = "furlongs"
		_, err := engine.New(scenario.Record{"a": body(0, 0, 0, 0, 1)}, opt)
		Expect(err).To(MatchError(units.ErrUnknownUnit))
	})

	It("rejects a non-positive step size and limit", func() {
		opt.Dt = 0
		_, err := engine.New(scenario.Record{"a": body(0, 0, 0, 0, 1)}, opt)
		Expect(err).To(MatchError(engine.ErrBadStep))

		opt = engine.DefaultOptions()
		opt.Limit = 0
		_, err = engine.New(scenario.Record{"a": body(0, 0, 0, 0, 1)}, opt)
		Expect(err).To(MatchError(engine.ErrBadLimit))
	})
})

var _ = Describe("Force assembly", func() {
	It("conserves momentum across any valid configuration", func() {
		rec := scenario.Record{
			"a": body(0, 0, 0, 0, 7e11),
			"b": body(12, -3, 0, 0, 5e11),
			"c": body(-8, 21, 0, 0, 9e12),
			"d": body(3, 3, 0, 0, 4e10),
			"e": body(-15, -15, 0, 0, 2e13),
		}
		sys, err := engine.New(rec, engine.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.UpdateAccelerations()).To(Succeed())

		var total engine.Vec2
		scale := 0.0
		for i := range sys.Mass {
			total = total.Add(sys.Acc[i].Scale(sys.Mass[i]))
			scale += sys.Acc[i].Scale(sys.Mass[i]).Norm()
		}
		Expect(scale).To(BeNumerically(">", 0))
		Expect(total.Norm()).To(BeNumerically("<=", scale*1e-12))
	})

	It("pulls a symmetric pair along the axis between them", func() {
		rec := scenario.Record{
			"a": body(0, 0, 0, 0, 7e11),
			"b": body(0, 10, 0, 0, 5e11),
		}
		sys, err := engine.New(rec, engine.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.UpdateAccelerations()).To(Succeed())

		accA, accB := sys.Acc[0], sys.Acc[1]
		Expect(accA.X).To(BeZero())
		Expect(accB.X).To(BeZero())
		Expect(accA.Y).To(BeNumerically(">", 0))
		Expect(accB.Y).To(BeNumerically("<", 0))

		// a = G*m_other*r / |r|^3 with r = 10.
		Expect(accA.Y).To(BeNumerically("~", engine.G*5e11/100, 1e-9))
		Expect(accB.Y).To(BeNumerically("~", -engine.G*7e11/100, 1e-9))

		// Newton's third law, mass-weighted.
		Expect(7e11 * accA.Y).To(BeNumerically("~", -5e11*accB.Y, 1e-3))
	})

	It("fails deterministically when two bodies coincide", func() {
		rec := scenario.Record{
			"a": body(5, 5, 0, 0, 1e12),
			"b": body(5, 5, 0, 0, 2e12),
			"c": body(0, 0, 0, 0, 3e12),
		}
		sys, err := engine.New(rec, engine.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		pos := append([]engine.Vec2(nil), sys.Pos...)
		vel := append([]engine.Vec2(nil), sys.Vel...)

		for i := 0; i < 3; i++ {
			Expect(sys.Step()).To(MatchError(engine.ErrCoincidentBodies))
		}

		// A failed step must leave the pre-step state intact.
		Expect(sys.Pos).To(Equal(pos))
		Expect(sys.Vel).To(Equal(vel))
	})

	It("produces the same physical accelerations in meters and kilometers", func() {
		meters := scenario.Record{
			"a": body(0, 0, 0, 0, 7e11),
			"b": body(0, 10000, 0, 0, 5e11),
		}
		kilometers := scenario.Record{
			"a": body(0, 0, 0, 0, 7e11),
			"b": body(0, 10, 0, 0, 5e11),
		}

		optM := engine.DefaultOptions()
		optK := engine.DefaultOptions()
		optK.SpaceUnits = "km"

		sysM, err := engine.New(meters, optM)
		Expect(err).NotTo(HaveOccurred())
		sysK, err := engine.New(kilometers, optK)
		Expect(err).NotTo(HaveOccurred())

		Expect(sysM.UpdateAccelerations()).To(Succeed())
		Expect(sysK.UpdateAccelerations()).To(Succeed())

		// km/s^2 scaled back to m/s^2 must match the meter run.
		for i := range sysM.Acc {
			Expect(sysK.Acc[i].Y * 1000).To(BeNumerically("~", sysM.Acc[i].Y, 1e-15))
			Expect(sysK.Acc[i].X * 1000).To(BeNumerically("~", sysM.Acc[i].X, 1e-15))
		}
	})
})

var _ = Describe("Integration triad", func() {
	It("moves an isolated body inertially", func() {
		rec := scenario.Record{"solo": body(0, 0, 2, 3, 1)}
		opt := engine.DefaultOptions()
		opt.Dt = 0.5
		sys, err := engine.New(rec, opt)
		Expect(err).NotTo(HaveOccurred())

		Expect(sys.Step()).To(Succeed())

		Expect(sys.Acc[0]).To(Equal(engine.Vec2{}))
		Expect(sys.Pos[0]).To(Equal(engine.Vec2{X: 1, Y: 1.5}))
		Expect(sys.Vel[0]).To(Equal(engine.Vec2{X: 2, Y: 3}))
	})

	It("applies the start-of-step acceleration to both updates", func() {
		rec := scenario.Record{
			"a": body(0, 0, 0, 0, 7e11),
			"b": body(0, 10, 0, 0, 5e11),
		}
		opt := engine.DefaultOptions()
		opt.Dt = 2
		sys, err := engine.New(rec, opt)
		Expect(err).NotTo(HaveOccurred())

		Expect(sys.UpdateAccelerations()).To(Succeed())
		acc := append([]engine.Vec2(nil), sys.Acc...)
		sys.UpdatePositions()
		sys.UpdateVelocities()

		// From rest: dp = 0.5*a*dt^2, dv = a*dt, with the same a.
		for i := range acc {
			Expect(sys.Pos[i].Y - [2]float64{0, 10}[i]).To(BeNumerically("~", 0.5*acc[i].Y*4, 1e-12))
			Expect(sys.Vel[i].Y).To(BeNumerically("~", acc[i].Y*2, 1e-12))
		}
	})
})

var _ = Describe("StepSequence", func() {
	newBinary := func(limit int) *engine.System {
		rec := scenario.Record{
			"a": body(0, 0, 0, 5, 7e11),
			"b": body(100, 0, 0, -5, 5e11),
		}
		opt := engine.DefaultOptions()
		opt.Limit = limit
		sys, err := engine.New(rec, opt)
		Expect(err).NotTo(HaveOccurred())
		return sys
	}

	It("yields exactly the configured number of advances", func() {
		sys := newBinary(5)
		seq := engine.NewSequence(sys)
		Expect(seq.Len()).To(Equal(5))

		advances := 0
		for {
			_, err := seq.Next()
			if errors.Is(err, engine.ErrEndOfSequence) {
				break
			}
			Expect(err).NotTo(HaveOccurred())
			advances++
		}
		Expect(advances).To(Equal(5))
		Expect(seq.Exhausted()).To(BeTrue())

		// Exhaustion is stable.
		_, err := seq.Next()
		Expect(err).To(MatchError(engine.ErrEndOfSequence))
	})

	It("records one snapshot per step plus the initial one", func() {
		sys := newBinary(5)
		seq := engine.NewSequence(sys)

		var last *engine.System
		for {
			s, err := seq.Next()
			if err != nil {
				break
			}
			last = s
		}
		Expect(last.History).To(HaveLen(6))
	})

	It("owns an independent copy and returns the same borrowed view", func() {
		sys := newBinary(3)
		seq := engine.NewSequence(sys)

		first, err := seq.Next()
		Expect(err).NotTo(HaveOccurred())
		second, err := seq.Next()
		Expect(err).NotTo(HaveOccurred())

		Expect(first).To(BeIdenticalTo(second))
		Expect(first).NotTo(BeIdenticalTo(sys))

		// The source system never moves.
		Expect(sys.Pos[0]).To(Equal(engine.Vec2{}))
		Expect(sys.History).To(HaveLen(1))
	})
})
