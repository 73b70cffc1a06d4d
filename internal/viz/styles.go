package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Rounded panel around tables and plots
	Panel lipgloss.Style

	Title lipgloss.Style

	// Subtle muted text
	Subtle lipgloss.Style

	CanvasStyle lipgloss.Style

	MetricValue lipgloss.Style
	MetricLabel lipgloss.Style

	// Header with decorative line
	HeaderStyle lipgloss.Style

	// Signed values
	PositiveValue lipgloss.Style
	NegativeValue lipgloss.Style

	// Sparkline bar colors
	SparkHigh lipgloss.Style
	SparkMid  lipgloss.Style
	SparkLow  lipgloss.Style
)

func init() {
	applyTheme(CurrentTheme)
}

func applyTheme(t Theme) {
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	Title = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	CanvasStyle = lipgloss.NewStyle().Foreground(t.Secondary)
	MetricValue = lipgloss.NewStyle().Bold(true).Foreground(t.Secondary)
	MetricLabel = lipgloss.NewStyle().Foreground(t.Muted)
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Text).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Border)
	PositiveValue = lipgloss.NewStyle().Foreground(t.Positive)
	NegativeValue = lipgloss.NewStyle().Foreground(t.Negative)
	SparkHigh = lipgloss.NewStyle().Foreground(t.Positive)
	SparkMid = lipgloss.NewStyle().Foreground(t.Accent)
	SparkLow = lipgloss.NewStyle().Foreground(t.Negative)
}

// Signed renders v in the positive or negative colour.
func Signed(s string, v float64) string {
	if v < 0 {
		return NegativeValue.Render(s)
	}
	return PositiveValue.Render(s)
}

// sparkChars run from low to high.
var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// SparklineChart renders a one-line sparkline of values resampled to width
// characters. NaN samples are drawn as blanks.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	rng := hi - lo
	if rng == 0 || math.IsInf(rng, 0) {
		rng = 1
	}

	step := float64(len(values)) / float64(width)
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		v := values[int(float64(i)*step)]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			result.WriteRune(' ')
			continue
		}
		norm := (v - lo) / rng
		idx := int(norm * float64(len(sparkChars)-1))
		idx = min(max(idx, 0), len(sparkChars)-1)

		c := string(sparkChars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(SparkMid.Render(c))
		default:
			result.WriteString(SparkLow.Render(c))
		}
	}

	return result.String()
}

// BoxWithTitle renders a titled box
func BoxWithTitle(title, content string, width int) string {
	header := "╭─ " + Title.Render(title) + " " + strings.Repeat("─", max(width-lipgloss.Width(title)-4, 0)) + "╮"
	return header + "\n" + Panel.Width(width).Render(content)
}

// Separator is a decorative rule of the given width.
func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return Subtle.Render(left + " ◆ " + right)
}
