package viz

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/gravmod/internal/gravity"
	"github.com/san-kum/gravmod/internal/rotation"
)

// Camera orbits a target point and projects the scene onto the canvas.
type Camera struct {
	Target   mgl64.Vec3
	Distance float64
	// Pitch tilts the view down from horizontal; Yaw turns it about z.
	Pitch, Yaw float64
	Zoom       float64
	Near       float64
}

// NewCamera looks at target from distance, tilted 30° and turned 30° so that
// all three axes are visible.
func NewCamera(target mgl64.Vec3, distance float64) *Camera {
	return &Camera{
		Target:   target,
		Distance: distance,
		Pitch:    math.Pi / 6,
		Yaw:      math.Pi / 6,
		Zoom:     1,
		Near:     0.1,
	}
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// View returns p in camera space: x right, y up, z towards the viewer.
func (c *Camera) View(p mgl64.Vec3) mgl64.Vec3 {
	// World z is up; swing it to screen y before tilting.
	r := rotation.Compose(-math.Pi/2+c.Pitch, 0, c.Yaw)
	return rotation.ApplyRow(p.Sub(c.Target), r.Transpose())
}

// Project converts a world point to sub-pixel coordinates on a canvas of
// sw by sh sub-pixels. It returns the view depth and whether the point lies
// on screen. Points behind the near plane report an infinite depth.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	v := c.View(p).Mul(c.Zoom)
	if v[2] >= c.Distance-c.Near {
		return 0, 0, math.Inf(1), false
	}
	scale := c.Distance / (c.Distance - v[2])
	pScale := float64(min(sw, sh)) / 2
	extent := c.Distance / 2
	sx := int(v[0]/extent*scale*pScale) + sw/2
	sy := int(-v[1]/extent*scale*pScale) + sh/2
	return sx, sy, v[2], sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// Edge is a world-space segment.
type Edge struct {
	Start, End mgl64.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe              { return &Wireframe{} }
func (w *Wireframe) AddEdge(s, e mgl64.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) Clear()                  { w.Edges = w.Edges[:0] }

// AddLoop adds the closed polygon through pts.
func (w *Wireframe) AddLoop(pts []mgl64.Vec3) {
	for i := range pts {
		w.AddEdge(pts[i], pts[(i+1)%len(pts)])
	}
}

// AddBody adds the edges of a cuboid, or three orthogonal great circles of a
// sphere.
func (w *Wireframe) AddBody(b gravity.Body) error {
	switch v := b.(type) {
	case gravity.Cuboid:
		for _, e := range v.Wireframe() {
			w.AddEdge(e[0], e[1])
		}
	case *gravity.Cuboid:
		return w.AddBody(*v)
	case gravity.Sphere:
		centre := v.Centre()
		for axis := 0; axis < 3; axis++ {
			loop := make([]mgl64.Vec3, SphereSegments)
			for i := range loop {
				sin, cos := math.Sincos(2 * math.Pi * float64(i) / SphereSegments)
				var off mgl64.Vec3
				off[(axis+1)%3] = v.Radius * cos
				off[(axis+2)%3] = v.Radius * sin
				loop[i] = centre.Add(off)
			}
			w.AddLoop(loop)
		}
	case *gravity.Sphere:
		return w.AddBody(*v)
	default:
		return fmt.Errorf("%w: %T", gravity.ErrUnknownKind, b)
	}
	return nil
}

// AddAxes adds the three world axes of length l from origin.
func (w *Wireframe) AddAxes(origin mgl64.Vec3, l float64) {
	w.AddEdge(origin, origin.Add(mgl64.Vec3{l, 0, 0}))
	w.AddEdge(origin, origin.Add(mgl64.Vec3{0, l, 0}))
	w.AddEdge(origin, origin.Add(mgl64.Vec3{0, 0, l}))
}

// Bounds returns the centre of the wireframe's bounding box and the length of
// its diagonal.
func (w *Wireframe) Bounds() (mgl64.Vec3, float64) {
	if len(w.Edges) == 0 {
		return mgl64.Vec3{}, 0
	}
	lo := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, e := range w.Edges {
		for _, p := range []mgl64.Vec3{e.Start, e.End} {
			for i := 0; i < 3; i++ {
				lo[i] = math.Min(lo[i], p[i])
				hi[i] = math.Max(hi[i], p[i])
			}
		}
	}
	return lo.Add(hi).Mul(0.5), hi.Sub(lo).Len()
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe far to near. Edges with either end behind the
// camera are skipped.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.PixelSize()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, sw, sh)
		x2, y2, d2, v2 := cam.Project(e.End, sw, sh)
		if (v1 || v2) && !math.IsInf(d1, 1) && !math.IsInf(d2, 1) {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
}

// PerspectiveView renders bodies in perspective, framed to fit, into a titled
// box of the given size in characters.
func PerspectiveView(bodies []gravity.Body, width, height int) (string, error) {
	c, err := PerspectiveCanvas(bodies, width, height)
	if err != nil {
		return "", err
	}
	return BoxWithTitle("perspective", CanvasStyle.Render(c.String()), width+2), nil
}

// PerspectiveCanvas draws bodies and a set of axes from a camera framing
// all of them.
func PerspectiveCanvas(bodies []gravity.Body, width, height int) (*Canvas, error) {
	w := NewWireframe()
	for _, b := range bodies {
		if err := w.AddBody(b); err != nil {
			return nil, err
		}
	}
	centre, diag := w.Bounds()
	if diag == 0 {
		diag = 1
	}
	w.AddAxes(centre, diag/4)

	c := NewCanvas(width, height)
	Render3D(c, w, NewCamera(centre, 2*diag))
	return c, nil
}
