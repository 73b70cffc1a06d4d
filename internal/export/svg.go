// Package export writes models, canvases and profiles as standalone SVG.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/gravmod/internal/gravity"
	"github.com/san-kum/gravmod/internal/model"
	"github.com/san-kum/gravmod/internal/viz"
)

const background = "#0a0a0a"

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// CanvasToSVG converts a Braille canvas to SVG, one dot per lit sub-pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	pw, ph := canvas.PixelSize()
	var sb strings.Builder
	header(&sb, float64(pw)*scale, float64(ph)*scale)
	sb.WriteString(`<g fill="#00ffff">` + "\n")

	dotRadius := scale * 0.4
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", cx, cy, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func colourAttr(c model.Colour) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// polygons returns the closed outlines of b on pl: one loop for a sphere,
// the six faces for a cuboid.
func polygons(b gravity.Body, pl gravity.Plane) ([][]mgl64.Vec2, error) {
	switch v := b.(type) {
	case gravity.Cuboid:
		pts := v.Outline(pl)
		var out [][]mgl64.Vec2
		for _, face := range cuboidFaces {
			loop := make([]mgl64.Vec2, len(face))
			for i, idx := range face {
				loop[i] = pts[idx]
			}
			out = append(out, loop)
		}
		return out, nil
	case *gravity.Cuboid:
		return polygons(*v, pl)
	case gravity.Sphere:
		return [][]mgl64.Vec2{v.Silhouette(pl, viz.SphereSegments)}, nil
	case *gravity.Sphere:
		return polygons(*v, pl)
	default:
		return nil, fmt.Errorf("%w: %T", gravity.ErrUnknownKind, b)
	}
}

// cuboidFaces indexes the vertex order of gravity.Cuboid.Vertices.
var cuboidFaces = [6][4]int{
	{0, 1, 2, 3}, // x0
	{4, 5, 6, 7}, // x1
	{0, 1, 7, 4}, // y0
	{3, 2, 6, 5}, // y1
	{0, 3, 5, 4}, // z0
	{1, 2, 6, 7}, // z1
}

// ModelToSVG draws every object of doc projected onto pl in its own colour,
// scaled to fit width by height pixels. Selected objects get a white
// outline.
func ModelToSVG(doc *model.Document, pl gravity.Plane, width, height int) (string, error) {
	type shape struct {
		loops [][]mgl64.Vec2
		obj   *model.Object
	}
	var shapes []shape
	var all []mgl64.Vec2
	for _, o := range doc.Objects() {
		loops, err := polygons(o.Body, pl)
		if err != nil {
			return "", fmt.Errorf("object %d: %w", o.ID, err)
		}
		for _, l := range loops {
			all = append(all, l...)
		}
		shapes = append(shapes, shape{loops, o})
	}

	view := viz.Fit(all, 0.1)
	sx := float64(width) / (view.Max[0] - view.Min[0])
	sy := float64(height) / (view.Max[1] - view.Min[1])
	s := math.Min(sx, sy)
	toScreen := func(p mgl64.Vec2) (float64, float64) {
		return (p[0] - view.Min[0]) * s, float64(height) - (p[1]-view.Min[1])*s
	}

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	for _, sh := range shapes {
		stroke := colourAttr(sh.obj.Colour)
		if sh.obj.IsSelected {
			stroke = "#ffffff"
		}
		opacity := float64(sh.obj.Colour[3]) / 255 * 0.35
		fmt.Fprintf(&sb, `<g id="object-%d" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="1.5">`+"\n",
			sh.obj.ID, colourAttr(sh.obj.Colour), opacity, stroke)
		fmt.Fprintf(&sb, "<title>%s</title>\n", xmlEscape(sh.obj.Name))
		for _, loop := range sh.loops {
			sb.WriteString(`<polygon points="`)
			for i, p := range loop {
				x, y := toScreen(p)
				if i > 0 {
					sb.WriteByte(' ')
				}
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			}
			sb.WriteString(`"/>` + "\n")
		}
		sb.WriteString("</g>\n")
	}
	sb.WriteString("</svg>")
	return sb.String(), nil
}

// ProfileToSVG draws values against distance as a polyline. NaN samples
// break the line.
func ProfileToSVG(distances, values []float64, width, height int, strokeColor string) string {
	n := min(len(distances), len(values))
	if n < 2 {
		return ""
	}

	minX, maxX := distances[0], distances[n-1]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, v := range values[:n] {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}
	if math.IsInf(minY, 1) {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, strokeColor)

	pen := false
	for i := 0; i < n; i++ {
		v := values[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			pen = false
			continue
		}
		x := (distances[i] - minX) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if pen {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " M%.1f,%.1f", x, y)
			pen = true
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

var xmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func xmlEscape(s string) string { return xmlReplacer.Replace(s) }
