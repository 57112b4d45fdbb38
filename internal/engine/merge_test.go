package engine

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMergeSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Merge Suite")
}

var _ = Describe("inelastic merge", func() {
	var e *Engine

	BeforeEach(func() {
		e = New(1.0, 0.1, 1000, 1000)
		e.Softening = 0.0
	})

	It("conserves momentum", func() {
		a := NewBody(Vec2{500, 500}, Vec2{2, -1}, 1, 1)
		b := NewBody(Vec2{500.5, 500}, Vec2{0, 3}, 3, 1)
		Expect(e.Add(a)).To(Succeed())
		Expect(e.Add(b)).To(Succeed())

		px := a.Mass*a.Vel.X + b.Mass*b.Vel.X
		py := a.Mass*a.Vel.Y + b.Mass*b.Vel.Y

		e.resolveCollisions()

		Expect(b.Active).To(BeFalse())
		Expect(a.Mass * a.Vel.X).To(BeNumerically("~", px, 1e-10))
		Expect(a.Mass * a.Vel.Y).To(BeNumerically("~", py, 1e-10))
	})

	It("conserves mass exactly", func() {
		a := NewBody(Vec2{500, 500}, Vec2{}, 1.5, 1)
		b := NewBody(Vec2{501, 500}, Vec2{}, 2.25, 1)
		Expect(e.Add(a)).To(Succeed())
		Expect(e.Add(b)).To(Succeed())

		e.resolveCollisions()

		Expect(a.Mass).To(Equal(1.5 + 2.25))
	})

	It("conserves volume through the merged radius", func() {
		a := NewBody(Vec2{500, 500}, Vec2{}, 1, 3)
		b := NewBody(Vec2{502, 500}, Vec2{}, 1, 4)
		Expect(e.Add(a)).To(Succeed())
		Expect(e.Add(b)).To(Succeed())

		e.resolveCollisions()

		cubed := a.Radius * a.Radius * a.Radius
		Expect(cubed).To(BeNumerically("~", 3*3*3+4*4*4, 1e-10))
	})

	It("places the survivor at the center of mass", func() {
		a := NewBody(Vec2{500, 500}, Vec2{}, 1, 2)
		b := NewBody(Vec2{503, 500}, Vec2{}, 3, 2)
		Expect(e.Add(a)).To(Succeed())
		Expect(e.Add(b)).To(Succeed())

		e.resolveCollisions()

		Expect(a.Pos.X).To(BeNumerically("~", (1*500.0+3*503.0)/4.0, 1e-10))
		Expect(a.Pos.Y).To(BeNumerically("~", 500.0, 1e-10))
	})

	It("is a no-op when either body is inactive", func() {
		a := NewBody(Vec2{500, 500}, Vec2{1, 0}, 1, 2)
		b := NewBody(Vec2{501, 500}, Vec2{-1, 0}, 2, 2)
		Expect(e.Add(a)).To(Succeed())
		Expect(e.Add(b)).To(Succeed())
		b.Active = false

		before := *a
		e.resolveCollisions()

		Expect(a.Mass).To(Equal(before.Mass))
		Expect(a.Vel).To(Equal(before.Vel))
		Expect(a.Pos).To(Equal(before.Pos))
		Expect(b.Active).To(BeFalse())
	})

	It("processes each overlapping pair at most once per step", func() {
		// Three mutually overlapping bodies: exactly two merges, one
		// survivor, regardless of scan order.
		a := NewBody(Vec2{500, 500}, Vec2{}, 1, 5)
		b := NewBody(Vec2{502, 500}, Vec2{}, 1, 5)
		c := NewBody(Vec2{501, 502}, Vec2{}, 1, 5)
		Expect(e.Add(a)).To(Succeed())
		Expect(e.Add(b)).To(Succeed())
		Expect(e.Add(c)).To(Succeed())

		e.resolveCollisions()

		Expect(e.ActiveCount()).To(Equal(1))
		Expect(len(e.Bodies())).To(Equal(3), "merging must not remove bodies")

		var survivor *Body
		for _, body := range e.Bodies() {
			if body.Active {
				survivor = body
			}
		}
		Expect(survivor.Mass).To(BeNumerically("~", 3.0, 1e-10))
	})
})
