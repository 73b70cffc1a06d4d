package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/gravmod/internal/gravity"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes one row per point: x, y, z and then each component in
// display units.
func WriteCSV(w io.Writer, points []mgl64.Vec3, components []gravity.Component, fields map[gravity.Component][]float64) error {
	cw := csv.NewWriter(w)

	header := []string{"x", "y", "z"}
	for _, c := range components {
		header = append(header, c.String())
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, p := range points {
		row[0], row[1], row[2] = formatFloat(p[0]), formatFloat(p[1]), formatFloat(p[2])
		for j, c := range components {
			vals := fields[c]
			if i >= len(vals) {
				return fmt.Errorf("storage: component %s has %d samples for %d points", c, len(vals), len(points))
			}
			row[3+j] = formatFloat(vals[i])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFieldCSV writes a field read back from the store.
func WriteFieldCSV(w io.Writer, f *Field) error {
	comps, err := gravity.ParseComponents(f.Components)
	if err != nil {
		return err
	}
	fields := make(map[gravity.Component][]float64, len(comps))
	for i, c := range comps {
		fields[c] = f.Values[f.Components[i]]
	}
	return WriteCSV(w, f.Points, comps, fields)
}

type ExportData struct {
	Run     *RunMetadata        `json:"run,omitempty"`
	Points  [][3]float64        `json:"points"`
	Units   map[string]string   `json:"units"`
	Samples map[string][]Number `json:"samples"`
}

// ExportJSON writes the metadata and samples of a run as one indented JSON
// document. NaN samples become null.
func ExportJSON(w io.Writer, meta *RunMetadata, f *Field) error {
	data := ExportData{
		Run:     meta,
		Points:  make([][3]float64, len(f.Points)),
		Units:   make(map[string]string, len(f.Components)),
		Samples: make(map[string][]Number, len(f.Components)),
	}
	for i, p := range f.Points {
		data.Points[i] = p
	}
	for _, name := range f.Components {
		c, err := gravity.ParseComponent(name)
		if err != nil {
			return err
		}
		data.Units[name] = c.Unit()
		data.Samples[name] = numbers(f.Values[name])
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ReadExportJSON decodes a document written by ExportJSON.
func ReadExportJSON(r io.Reader) (*RunMetadata, *Field, error) {
	var data ExportData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, nil, err
	}
	f := &Field{
		Points: make([]mgl64.Vec3, len(data.Points)),
		Values: make(map[string][]float64, len(data.Samples)),
	}
	for i, p := range data.Points {
		f.Points[i] = p
	}
	if data.Run != nil {
		f.Components = data.Run.Components
	} else {
		for name := range data.Samples {
			f.Components = append(f.Components, name)
		}
		slices.Sort(f.Components)
	}
	for name, vals := range data.Samples {
		f.Values[name] = floats64(vals)
	}
	return data.Run, f, nil
}
