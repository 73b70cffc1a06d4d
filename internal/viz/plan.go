package viz

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/gravmod/internal/gravity"
)

// SphereSegments is the number of chords used to draw a sphere outline.
const SphereSegments = 48

// outline returns the projected edges of b on pl.
func outline(b gravity.Body, pl gravity.Plane) ([][2]mgl64.Vec2, error) {
	switch v := b.(type) {
	case gravity.Cuboid:
		edges := v.Edges(pl)
		return edges[:], nil
	case *gravity.Cuboid:
		return outline(*v, pl)
	case gravity.Sphere:
		loop := v.Silhouette(pl, SphereSegments)
		out := make([][2]mgl64.Vec2, len(loop))
		for i := range loop {
			out[i] = [2]mgl64.Vec2{loop[i], loop[(i+1)%len(loop)]}
		}
		return out, nil
	case *gravity.Sphere:
		return outline(*v, pl)
	default:
		return nil, fmt.Errorf("%w: %T", gravity.ErrUnknownKind, b)
	}
}

// DrawPlan draws every body and observation point projected onto pl, framing
// the view to fit them all. Points are marked with a 3x3 cross.
func DrawPlan(c *Canvas, bodies []gravity.Body, pl gravity.Plane, points []mgl64.Vec3) (Viewport, error) {
	var segs [][2]mgl64.Vec2
	for _, b := range bodies {
		e, err := outline(b, pl)
		if err != nil {
			return Viewport{}, err
		}
		segs = append(segs, e...)
	}

	extent := make([]mgl64.Vec2, 0, 2*len(segs)+len(points))
	for _, s := range segs {
		extent = append(extent, s[0], s[1])
	}
	marks := make([]mgl64.Vec2, len(points))
	for i, p := range points {
		marks[i] = pl.Project(p)
	}
	extent = append(extent, marks...)

	view := Fit(extent, 0.05)
	for _, s := range segs {
		c.DrawSegment(view, s[0], s[1])
	}
	for _, m := range marks {
		x, y := view.ToPixel(c, m)
		c.Set(x, y)
		c.Set(x-1, y)
		c.Set(x+1, y)
		c.Set(x, y-1)
		c.Set(x, y+1)
	}
	return view, nil
}

// PlanView renders bodies on pl into a titled box of the given size in
// characters.
func PlanView(bodies []gravity.Body, pl gravity.Plane, points []mgl64.Vec3, width, height int) (string, error) {
	c := NewCanvas(width, height)
	view, err := DrawPlan(c, bodies, pl, points)
	if err != nil {
		return "", err
	}
	axes := pl.String()
	footer := Subtle.Render(fmt.Sprintf("%c: %.4g .. %.4g   %c: %.4g .. %.4g",
		axes[0], view.Min[0], view.Max[0], axes[1], view.Min[1], view.Max[1]))
	return BoxWithTitle("plane "+axes, CanvasStyle.Render(c.String())+footer, width+2), nil
}
