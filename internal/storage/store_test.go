package storage

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/gravmod/internal/gravity"
	"github.com/san-kum/gravmod/internal/model"
	"github.com/san-kum/gravmod/internal/survey"
)

func sampleRun(t *testing.T) (*model.Document, *survey.Result) {
	t.Helper()
	doc := model.New("Buried Cube")
	_, err := doc.Add("cube", gravity.Cuboid{XLength: 10, YLength: 10, ZLength: 10, ZCentroid: -5.5, Density: 2000})
	require.NoError(t, err)

	geo := survey.Profile{Start: mgl64.Vec3{-20, 0, 0}, End: mgl64.Vec3{20, 0, 0}, N: 9}
	res, err := survey.RunGeometry(context.Background(), doc.Bodies(),
		[]gravity.Component{gravity.Gz, gravity.Gzz}, geo, survey.DefaultConfig())
	require.NoError(t, err)
	return doc, res
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	doc, res := sampleRun(t)
	runID, err := st.Save(RunInfo{Model: doc.Name, Survey: "profile", Workers: 2}, doc, res)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "buried_cube_"), runID)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "Buried Cube", meta.Model)
	assert.Equal(t, []string{"gz", "gzz"}, meta.Components)
	assert.Equal(t, 9, meta.Points)
	assert.Equal(t, 1, meta.Bodies)
	assert.InDelta(t, res.Metrics[gravity.Gz]["peak"], float64(meta.Metrics["gz"]["peak"]), 1e-9)

	field, err := st.LoadField(runID)
	require.NoError(t, err)
	assert.Equal(t, res.Points, field.Points)
	assert.Equal(t, res.Fields[gravity.Gz], field.Values["gz"])
	assert.Equal(t, res.Fields[gravity.Gzz], field.Values["gzz"])

	back, err := st.LoadModel(runID)
	require.NoError(t, err)
	assert.Equal(t, doc.Bodies(), back.Bodies())
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())

	doc, res := sampleRun(t)
	first, err := st.Save(RunInfo{Model: "a"}, doc, res)
	require.NoError(t, err)
	second, err := st.Save(RunInfo{Model: "b"}, doc, res)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "junk"), 0755))
	_, err = st.SaveModel(doc)
	require.NoError(t, err)

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].ID)
	assert.Equal(t, second, runs[1].ID)
}

func TestStoreMissing(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, err = st.Load("nope")
	assert.ErrorIs(t, err, ErrNoRun)
	_, err = st.LoadField("nope")
	assert.ErrorIs(t, err, ErrNoRun)
}

func TestSaveModelFile(t *testing.T) {
	st := New(t.TempDir())
	doc, _ := sampleRun(t)

	path, err := st.SaveModel(doc)
	require.NoError(t, err)
	assert.Equal(t, "buried_cube.json", filepath.Base(path))

	back, err := LoadModelFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Name, back.Name)
	assert.Equal(t, doc.Bodies(), back.Bodies())
}

func TestExportJSONKeepsNaN(t *testing.T) {
	f := &Field{
		Points:     []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}},
		Components: []string{"gz"},
		Values:     map[string][]float64{"gz": {math.NaN(), 12.5}},
	}
	meta := &RunMetadata{ID: "r1", Components: []string{"gz"},
		Metrics: map[string]map[string]Number{"gz": {"min": Number(math.NaN())}}}

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, meta, f))
	assert.Contains(t, buf.String(), `"µGal"`)

	backMeta, back, err := ReadExportJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, "r1", backMeta.ID)
	assert.True(t, math.IsNaN(back.Values["gz"][0]))
	assert.Equal(t, 12.5, back.Values["gz"][1])
	assert.True(t, math.IsNaN(float64(backMeta.Metrics["gz"]["min"])))
	assert.Equal(t, f.Points, back.Points)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	pts := []mgl64.Vec3{{0, 0, 0}, {0.5, 0, 1}}
	fields := map[gravity.Component][]float64{gravity.Gxz: {1.25, math.NaN()}}
	require.NoError(t, WriteCSV(&buf, pts, []gravity.Component{gravity.Gxz}, fields))
	assert.Equal(t, "x,y,z,gxz\n0,0,0,1.25\n0.5,0,1,NaN\n", buf.String())

	err := WriteCSV(&bytes.Buffer{}, pts, []gravity.Component{gravity.Gz}, map[gravity.Component][]float64{})
	assert.Error(t, err)
}
