package viz

import (
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/gravmod/internal/gravity"
)

// FormatValue prints v compactly, with NaN and infinities spelled out.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(CurrentTheme.Border))
}

// MetricsTable renders one row per component and one column per metric
// name, in the order given.
func MetricsTable(comps []gravity.Component, metrics map[gravity.Component]map[string]float64, names []string) string {
	headers := append([]string{"component", "unit"}, names...)
	t := newTable().Headers(headers...)

	values := make([][]float64, 0, len(comps))
	for _, c := range comps {
		row := []string{c.String(), c.Unit()}
		vals := make([]float64, len(names))
		for i, n := range names {
			v, ok := metrics[c][n]
			if !ok {
				v = math.NaN()
			}
			vals[i] = v
			row = append(row, FormatValue(v))
		}
		values = append(values, vals)
		t.Row(row...)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		cell := lipgloss.NewStyle().Padding(0, 1)
		switch {
		case row == table.HeaderRow:
			return cell.Inherit(Title)
		case col < 2:
			return cell.Inherit(MetricLabel)
		case row >= len(values):
			return cell.Inherit(MetricValue)
		}
		if v := values[row][col-2]; v < 0 {
			return cell.Inherit(NegativeValue)
		}
		return cell.Inherit(MetricValue)
	})
	return t.Render()
}

// TensorTable renders the full symmetric gradient tensor as a 3x3 grid.
func TensorTable(t gravity.Tensor, unit string) string {
	m := t.Mat3()
	tbl := newTable().Headers(unit, "x", "y", "z")
	for i, axis := range []string{"x", "y", "z"} {
		row := []string{axis}
		for j := 0; j < 3; j++ {
			row = append(row, FormatValue(m.At(i, j)))
		}
		tbl.Row(row...)
	}
	tbl.StyleFunc(func(row, col int) lipgloss.Style {
		cell := lipgloss.NewStyle().Padding(0, 1)
		if row == table.HeaderRow || col == 0 {
			return cell.Inherit(Title)
		}
		return cell.Inherit(MetricValue)
	})
	return tbl.Render()
}
