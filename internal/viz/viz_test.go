package viz

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/gravmod/internal/gravity"
)

func TestCanvasSetAndLine(t *testing.T) {
	c := NewCanvas(4, 2)
	if !c.Empty() {
		t.Fatal("new canvas should be empty")
	}
	c.Set(-1, 0)
	c.Set(100, 100)
	if !c.Empty() {
		t.Error("out of range pixels should be ignored")
	}

	c.DrawLine(0, 0, 7, 7)
	for i := 0; i < 8; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("diagonal pixel %d not set", i)
		}
	}
	if c.IsSet(7, 0) {
		t.Error("off-line pixel set")
	}

	if got := strings.Count(c.String(), "\n"); got != 2 {
		t.Errorf("expected 2 rows, got %d", got)
	}
	c.Clear()
	if !c.Empty() {
		t.Error("Clear left pixels set")
	}
}

func TestFitIsSquare(t *testing.T) {
	v := Fit([]mgl64.Vec2{{0, 0}, {10, 2}}, 0)
	w, h := v.Max[0]-v.Min[0], v.Max[1]-v.Min[1]
	if math.Abs(w-10) > 1e-12 || math.Abs(h-10) > 1e-12 {
		t.Errorf("expected a 10x10 view, got %gx%g", w, h)
	}
	if mid := v.Min.Add(v.Max).Mul(0.5); mid != (mgl64.Vec2{5, 1}) {
		t.Errorf("view should centre on the points, got %v", mid)
	}

	c := NewCanvas(10, 5)
	if x, y := v.ToPixel(c, mgl64.Vec2{v.Min[0], v.Max[1]}); x != 0 || y != 0 {
		t.Errorf("top left maps to (%d, %d)", x, y)
	}
	if x, y := v.ToPixel(c, mgl64.Vec2{v.Max[0], v.Min[1]}); x != 19 || y != 19 {
		t.Errorf("bottom right maps to (%d, %d)", x, y)
	}
}

func TestDrawPlanCube(t *testing.T) {
	cube := gravity.Cuboid{XLength: 2, YLength: 2, ZLength: 2, Density: 1}
	c := NewCanvas(20, 10)
	view, err := DrawPlan(c, []gravity.Body{cube}, gravity.PlaneXY, nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, corner := range []mgl64.Vec2{{-1, -1}, {1, 1}, {-1, 1}, {1, -1}} {
		x, y := view.ToPixel(c, corner)
		if !c.IsSet(x, y) {
			t.Errorf("corner %v not drawn", corner)
		}
	}
	x, y := view.ToPixel(c, mgl64.Vec2{0, 0})
	if c.IsSet(x, y) {
		t.Error("interior of the outline should be empty")
	}
}

func TestDrawPlanSphereAndStations(t *testing.T) {
	s := gravity.Sphere{ZCentroid: -10, Radius: 2, Density: 1}
	stations := []mgl64.Vec3{{-20, 0, 0}, {20, 0, 0}}
	c := NewCanvas(30, 10)
	view, err := DrawPlan(c, []gravity.Body{s}, gravity.PlaneXZ, stations)
	if err != nil {
		t.Fatal(err)
	}
	if view.Min[0] > -20 || view.Max[0] < 20 {
		t.Errorf("view %v should include the stations", view)
	}
	for _, p := range stations {
		x, y := view.ToPixel(c, gravity.PlaneXZ.Project(p))
		if !c.IsSet(x, y) {
			t.Errorf("station %v not marked", p)
		}
	}
	x, y := view.ToPixel(c, mgl64.Vec2{0, -8})
	if !c.IsSet(x, y) {
		t.Error("top of the sphere outline not drawn")
	}
}

type blob struct{ gravity.Sphere }

func TestDrawPlanUnknownBody(t *testing.T) {
	_, err := DrawPlan(NewCanvas(4, 4), []gravity.Body{blob{}}, gravity.PlaneXY, nil)
	if !errors.Is(err, gravity.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestPlanView(t *testing.T) {
	out, err := PlanView([]gravity.Body{gravity.DefaultCuboid()}, gravity.PlaneYZ, nil, 20, 8)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "plane yz") {
		t.Errorf("missing title:\n%s", out)
	}
}

func TestSeriesRejectsNonFinite(t *testing.T) {
	_, err := Series([]float64{math.NaN(), math.Inf(1)}, "x", DefaultPlotOptions)
	if !errors.Is(err, ErrNothingToPlot) {
		t.Errorf("expected ErrNothingToPlot, got %v", err)
	}
	if _, err := Series(nil, "x", DefaultPlotOptions); !errors.Is(err, ErrNothingToPlot) {
		t.Errorf("expected ErrNothingToPlot for no samples, got %v", err)
	}
}

func TestProfilePlot(t *testing.T) {
	values := make([]float64, 21)
	for i := range values {
		x := float64(i - 10)
		values[i] = 100 / (1 + x*x)
	}
	values[3] = math.NaN()

	out, err := ProfilePlot(values, gravity.Gz, -50, 50, PlotOptions{Width: 40, Height: 6})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "gz (µGal)") {
		t.Errorf("caption missing:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines < 6 {
		t.Errorf("expected at least 6 lines, got %d", lines)
	}
}

func TestSparklineChart(t *testing.T) {
	out := SparklineChart([]float64{1, math.NaN(), 3}, 3)
	for _, r := range []rune{'▁', ' ', '█'} {
		if !strings.ContainsRune(out, r) {
			t.Errorf("expected %q in %q", r, out)
		}
	}
	if got := SparklineChart(nil, 5); got != "─────" {
		t.Errorf("empty sparkline: %q", got)
	}
}

func TestMetricsTable(t *testing.T) {
	comps := []gravity.Component{gravity.Gz, gravity.Gzz}
	metrics := map[gravity.Component]map[string]float64{
		gravity.Gz:  {"max": 311.7489883362193, "min": -2},
		gravity.Gzz: {"max": math.NaN()},
	}
	out := MetricsTable(comps, metrics, []string{"min", "max"})
	for _, want := range []string{"component", "gz", "gzz", "µGal", "311.749", "-2", "NaN"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestTensorTable(t *testing.T) {
	out := TensorTable(gravity.Tensor{XX: 1, XY: 2, XZ: 3, YY: 4, YZ: 5, ZZ: -5}, "E")
	if strings.Count(out, "2") < 2 || strings.Count(out, "3") < 2 {
		t.Errorf("off-diagonal terms should appear twice:\n%s", out)
	}
}

func TestFormatValue(t *testing.T) {
	cases := map[float64]string{
		1.5:          "1.5",
		math.Inf(-1): "-Inf",
		math.Inf(1):  "+Inf",
	}
	for v, want := range cases {
		if got := FormatValue(v); got != want {
			t.Errorf("FormatValue(%v) = %q, expected %q", v, got, want)
		}
	}
	if got := FormatValue(math.NaN()); got != "NaN" {
		t.Errorf("got %q", got)
	}
}

func TestCameraCentresTarget(t *testing.T) {
	target := mgl64.Vec3{3, -2, -7}
	cam := NewCamera(target, 20)
	x, y, depth, ok := cam.Project(target, 80, 40)
	if !ok || x != 40 || y != 20 || depth != 0 {
		t.Errorf("target projected to (%d, %d, %g, %v)", x, y, depth, ok)
	}

	cam.Distance = 0.05
	if _, _, d, ok := cam.Project(target, 80, 40); ok || !math.IsInf(d, 1) {
		t.Errorf("point inside the near plane should be culled, got depth %g", d)
	}
}

func TestRender3DDrawsBodies(t *testing.T) {
	w := NewWireframe()
	if err := w.AddBody(gravity.DefaultCuboid()); err != nil {
		t.Fatal(err)
	}
	if len(w.Edges) != 12 {
		t.Fatalf("expected 12 cuboid edges, got %d", len(w.Edges))
	}
	if err := w.AddBody(gravity.DefaultSphere()); err != nil {
		t.Fatal(err)
	}
	if len(w.Edges) != 12+3*SphereSegments {
		t.Fatalf("expected %d edges, got %d", 12+3*SphereSegments, len(w.Edges))
	}

	centre, diag := w.Bounds()
	c := NewCanvas(40, 20)
	Render3D(c, w, NewCamera(centre, 2*diag))
	if c.Empty() {
		t.Error("nothing rendered")
	}

	out, err := PerspectiveView([]gravity.Body{gravity.DefaultCuboid()}, 30, 12)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "perspective") {
		t.Errorf("missing title:\n%s", out)
	}
}

func TestPerspectiveCanvas(t *testing.T) {
	c, err := PerspectiveCanvas([]gravity.Body{gravity.DefaultSphere()}, 20, 10)
	if err != nil {
		t.Fatal(err)
	}
	if c.Empty() {
		t.Error("nothing rendered")
	}
	if _, err := PerspectiveCanvas([]gravity.Body{blob{}}, 20, 10); !errors.Is(err, gravity.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestSetTheme(t *testing.T) {
	defer SetTheme(ThemeSurvey.Name)

	SetTheme("retro")
	if CurrentTheme.Name != "retro" {
		t.Errorf("got theme %q", CurrentTheme.Name)
	}
	SetTheme("no-such-theme")
	if CurrentTheme.Name != ThemeSurvey.Name {
		t.Errorf("unknown theme should fall back, got %q", CurrentTheme.Name)
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("ThemeNames length mismatch")
	}
}
