package survey

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Geometry produces the ordered observation points of a survey.
type Geometry interface {
	Points() ([]mgl64.Vec3, error)
}

// Profile is N evenly spaced points from Start to End inclusive.
type Profile struct {
	Start mgl64.Vec3 `yaml:"start" json:"start"`
	End   mgl64.Vec3 `yaml:"end" json:"end"`
	N     int        `yaml:"n" json:"n"`
}

func (p Profile) validate() error {
	if p.N < 2 {
		return fmt.Errorf("%w: profile n = %d", ErrTooFewPoints, p.N)
	}
	if p.Start == p.End {
		return fmt.Errorf("%w: profile start equals end", ErrEmptyExtent)
	}
	return nil
}

func (p Profile) Points() ([]mgl64.Vec3, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	step := p.End.Sub(p.Start).Mul(1 / float64(p.N-1))
	pts := make([]mgl64.Vec3, p.N)
	for i := range pts {
		pts[i] = p.Start.Add(step.Mul(float64(i)))
	}
	pts[p.N-1] = p.End
	return pts, nil
}

// Length is the distance from Start to End.
func (p Profile) Length() float64 {
	return p.End.Sub(p.Start).Len()
}

// Spacing is the distance between consecutive samples.
func (p Profile) Spacing() float64 {
	if p.N < 2 {
		return 0
	}
	return p.Length() / float64(p.N-1)
}

// Distances returns the along-profile distance of each sample.
func (p Profile) Distances() []float64 {
	if p.N < 1 {
		return nil
	}
	d := make([]float64, p.N)
	dx := p.Spacing()
	for i := range d {
		d[i] = float64(i) * dx
	}
	return d
}

// Grid is an NX by NY lattice over [XMin, XMax]×[YMin, YMax] at height Z.
// Points run along x first, then y.
type Grid struct {
	XMin float64 `yaml:"x_min" json:"x_min"`
	XMax float64 `yaml:"x_max" json:"x_max"`
	YMin float64 `yaml:"y_min" json:"y_min"`
	YMax float64 `yaml:"y_max" json:"y_max"`
	Z    float64 `yaml:"z" json:"z"`
	NX   int     `yaml:"nx" json:"nx"`
	NY   int     `yaml:"ny" json:"ny"`
}

func (g Grid) validate() error {
	if g.NX < 2 || g.NY < 2 {
		return fmt.Errorf("%w: grid %dx%d", ErrTooFewPoints, g.NX, g.NY)
	}
	if !(g.XMax > g.XMin) || !(g.YMax > g.YMin) {
		return fmt.Errorf("%w: grid x [%g, %g] y [%g, %g]", ErrEmptyExtent, g.XMin, g.XMax, g.YMin, g.YMax)
	}
	return nil
}

func (g Grid) Points() ([]mgl64.Vec3, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	dx := (g.XMax - g.XMin) / float64(g.NX-1)
	dy := (g.YMax - g.YMin) / float64(g.NY-1)
	pts := make([]mgl64.Vec3, 0, g.NX*g.NY)
	for j := 0; j < g.NY; j++ {
		for i := 0; i < g.NX; i++ {
			pts = append(pts, mgl64.Vec3{g.XMin + float64(i)*dx, g.YMin + float64(j)*dy, g.Z})
		}
	}
	return pts, nil
}

// Rows reshapes a grid-ordered sample slice into NY rows of NX values.
func (g Grid) Rows(values []float64) [][]float64 {
	rows := make([][]float64, 0, g.NY)
	for j := 0; j < g.NY && (j+1)*g.NX <= len(values); j++ {
		rows = append(rows, values[j*g.NX:(j+1)*g.NX])
	}
	return rows
}
