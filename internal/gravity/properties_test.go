package gravity_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravmod/internal/gravity"
)

var _ = Describe("Field properties", func() {
	observers := []mgl64.Vec3{{3, 2, 1}, {-7, 4, 0}, {0.5, -0.5, 2}, {12, -9, 0.3}}

	DescribeTable("the gradient tensor is traceless outside the body",
		func(b gravity.Body) {
			for _, p := range observers {
				gg := b.Gradient(p)
				scale := math.Max(math.Abs(gg.XX), math.Max(math.Abs(gg.YY), math.Abs(gg.ZZ)))
				Expect(math.Abs(gg.Trace())).To(BeNumerically("<=", 1e-9*scale), "at %v", p)
			}
		},
		Entry("cuboid", gravity.Cuboid{XLength: 10, YLength: 10, ZLength: 10, ZCentroid: -5.5, Density: 2000}),
		Entry("sphere", gravity.Sphere{XCentroid: 1, ZCentroid: -3, Radius: 1.5, Density: -1800}),
		Entry("rotated cuboid", gravity.Cuboid{
			XLength: 4, YLength: 2, ZLength: 1, XCentroid: 1, ZCentroid: -3, Density: 1000,
			XRotation: 0.3, YRotation: -0.2, ZRotation: 0.5,
		}),
	)

	DescribeTable("vertical attraction follows the sign of the mass",
		func(b gravity.Body) {
			above := b.Centre().Add(mgl64.Vec3{0, 0, 20})
			gz := b.Gz(above)
			Expect(math.Signbit(gz)).To(Equal(b.Mass() > 0))
		},
		Entry("dense cuboid", gravity.Cuboid{XLength: 2, YLength: 3, ZLength: 4, ZCentroid: -10, Density: 2670}),
		Entry("void cuboid", gravity.Cuboid{XLength: 2, YLength: 3, ZLength: 4, ZCentroid: -10, Density: -2670}),
		Entry("dense sphere", gravity.Sphere{ZCentroid: -10, Radius: 2, Density: 500}),
		Entry("void sphere", gravity.Sphere{ZCentroid: -10, Radius: 2, Density: -500}),
	)

	Describe("rotation", func() {
		p := mgl64.Vec3{3, 2, 1}

		It("is unchanged by a full turn about any axis", func() {
			c := gravity.Cuboid{XLength: 4, YLength: 2, ZLength: 1, ZCentroid: -3, Density: 1000}
			turns := []gravity.Cuboid{c, c, c}
			turns[0].XRotation = 2 * math.Pi
			turns[1].YRotation = 2 * math.Pi
			turns[2].ZRotation = 2 * math.Pi
			for _, turned := range turns {
				for _, comp := range gravity.Components() {
					want := gravity.ComponentAt(c, comp, p)
					Expect(gravity.ComponentAt(turned, comp, p)).To(BeNumerically("~", want, 1e-6*math.Abs(want)+1e-20), "%s", comp)
				}
			}
		})

		It("matches the box with swapped lengths after a quarter turn", func() {
			rotated := gravity.Cuboid{XLength: 4, YLength: 2, ZLength: 1, ZCentroid: -3, ZRotation: math.Pi / 2, Density: 1000}
			swapped := gravity.Cuboid{XLength: 2, YLength: 4, ZLength: 1, ZCentroid: -3, Density: 1000}
			for _, comp := range gravity.Components() {
				want := gravity.ComponentAt(swapped, comp, p)
				Expect(gravity.ComponentAt(rotated, comp, p)).To(BeNumerically("~", want, 1e-5*math.Abs(want)+1e-20), "%s", comp)
			}
		})
	})

	It("decays to the point-mass value far from the body", func() {
		c := gravity.Cuboid{XLength: 10, YLength: 10, ZLength: 10, ZCentroid: -5.5, Density: 2000}
		d := 100.0
		want := -gravity.G * c.Mass() / (d * d)
		Expect(c.Gz(mgl64.Vec3{0, 0, d - 5.5})).To(BeNumerically("~", want, 0.01*math.Abs(want)))
	})

	Describe("aggregation", func() {
		It("scales summed vector and tensor components once", func() {
			bodies := []gravity.Body{
				gravity.Cuboid{XLength: 10, YLength: 10, ZLength: 10, ZCentroid: -5.5, Density: 2000},
				gravity.Sphere{ZCentroid: -1, Radius: 1, Density: -1800},
			}
			pts := []mgl64.Vec3{{}, {4, 1, 0}}

			gz := gravity.EvaluateAll(bodies, gravity.Gz, pts)
			gzz := gravity.EvaluateAll(bodies, gravity.Gzz, pts)
			for i, p := range pts {
				rawGz := bodies[0].Gz(p) + bodies[1].Gz(p)
				rawGzz := bodies[0].Gzz(p) + bodies[1].Gzz(p)
				Expect(gz[i]).To(BeNumerically("~", -1e8*rawGz, 1e-9))
				Expect(gzz[i]).To(BeNumerically("~", 1e9*rawGzz, 1e-9))
			}
		})

		It("reproduces the reference cube and sphere", func() {
			cube, err := gravity.NewCuboid(mgl64.Vec3{10, 10, 10}, mgl64.Vec3{0, 0, -5.5}, mgl64.Vec3{}, 2000)
			Expect(err).NotTo(HaveOccurred())
			ball, err := gravity.NewSphere(mgl64.Vec3{0, 0, -1}, 1, -1800)
			Expect(err).NotTo(HaveOccurred())

			// Display scaling flips vector signs, so the dense cube reads
			// positive Gz and the void reads negative Gzz.
			Expect(gravity.EvaluateAll([]gravity.Body{cube}, gravity.Gz, []mgl64.Vec3{{}})[0]).
				To(BeNumerically("~", 311.7489883362193, 1e-7))
			Expect(gravity.EvaluateAll([]gravity.Body{ball}, gravity.Gzz, []mgl64.Vec3{{}})[0]).
				To(BeNumerically("~", -1006.4154897627974, 1e-7))
			Expect(ball.Volume()).To(BeNumerically("~", 4.18879, 1e-5))
			Expect(ball.Mass()).To(BeNumerically("~", -7539.82, 1e-2))
		})

		It("returns NaN instead of panicking at a vertex", func() {
			corner := gravity.Cuboid{XLength: 2, YLength: 2, ZLength: 2, XCentroid: 1, YCentroid: 1, ZCentroid: 1, Density: 1}
			Expect(func() {
				out := gravity.EvaluateAll([]gravity.Body{corner}, gravity.Gxx, []mgl64.Vec3{{}})
				Expect(math.IsNaN(out[0])).To(BeTrue())
			}).NotTo(Panic())
		})
	})
})
