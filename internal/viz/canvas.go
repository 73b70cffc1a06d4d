package viz

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// PixelSize is the canvas size in sub-pixels.
func (c *Canvas) PixelSize() (w, h int) {
	return c.Width * 2, c.Height * 4
}

// Set sets a pixel at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the sub-pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// Empty reports whether no pixel is set.
func (c *Canvas) Empty() bool {
	for _, row := range c.Grid {
		for _, r := range row {
			if r != brailleBlank {
				return false
			}
		}
	}
	return true
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Viewport maps a world-space rectangle onto a canvas. World up is screen up.
type Viewport struct {
	Min, Max mgl64.Vec2
}

// Fit returns the smallest viewport holding every point, padded by margin
// (a fraction of the larger extent) and squared up so that shapes keep their
// aspect ratio on a canvas with square sub-pixels.
func Fit(points []mgl64.Vec2, margin float64) Viewport {
	if len(points) == 0 {
		return Viewport{Min: mgl64.Vec2{-1, -1}, Max: mgl64.Vec2{1, 1}}
	}
	lo := mgl64.Vec2{math.Inf(1), math.Inf(1)}
	hi := mgl64.Vec2{math.Inf(-1), math.Inf(-1)}
	for _, p := range points {
		for i := 0; i < 2; i++ {
			lo[i] = math.Min(lo[i], p[i])
			hi[i] = math.Max(hi[i], p[i])
		}
	}
	span := math.Max(hi[0]-lo[0], hi[1]-lo[1])
	if span == 0 {
		span = 1
	}
	half := span * (1 + 2*margin) / 2
	mid := lo.Add(hi).Mul(0.5)
	return Viewport{
		Min: mgl64.Vec2{mid[0] - half, mid[1] - half},
		Max: mgl64.Vec2{mid[0] + half, mid[1] + half},
	}
}

// ToPixel converts a world point to sub-pixel coordinates on c.
func (v Viewport) ToPixel(c *Canvas, p mgl64.Vec2) (int, int) {
	pw, ph := c.PixelSize()
	sx := (p[0] - v.Min[0]) / (v.Max[0] - v.Min[0])
	sy := (v.Max[1] - p[1]) / (v.Max[1] - v.Min[1])
	return int(math.Round(sx * float64(pw-1))), int(math.Round(sy * float64(ph-1)))
}

// DrawSegment draws the world-space segment a-b.
func (c *Canvas) DrawSegment(v Viewport, a, b mgl64.Vec2) {
	x0, y0 := v.ToPixel(c, a)
	x1, y1 := v.ToPixel(c, b)
	c.DrawLine(x0, y0, x1, y1)
}

// DrawPolygon draws the closed loop through pts.
func (c *Canvas) DrawPolygon(v Viewport, pts []mgl64.Vec2) {
	for i := range pts {
		c.DrawSegment(v, pts[i], pts[(i+1)%len(pts)])
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
