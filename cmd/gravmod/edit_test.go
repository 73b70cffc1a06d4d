package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/gravmod/internal/gravity"
	"github.com/san-kum/gravmod/internal/model"
	"github.com/san-kum/gravmod/internal/storage"
)

func writeDoc(t *testing.T) string {
	t.Helper()
	doc := model.New("ridge")
	if _, err := doc.Add("block", gravity.Cuboid{XLength: 4, YLength: 4, ZLength: 2, ZCentroid: -3, Density: 400}); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.Add("ball", gravity.Sphere{XCentroid: 5, ZCentroid: -2, Radius: 1, Density: 900}); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "ridge.json")
	if err := storage.SaveModelFile(path, doc); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEditDocument(t *testing.T) {
	path := writeDoc(t)
	modelCmd := newModelCmd()

	modelCmd.SetArgs([]string{"duplicate", path, "1"})
	if err := modelCmd.Execute(); err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	modelCmd.SetArgs([]string{"group", path, "pair", "1", "2"})
	if err := modelCmd.Execute(); err != nil {
		t.Fatalf("group: %v", err)
	}
	modelCmd.SetArgs([]string{"remove", path, "0"})
	if err := modelCmd.Execute(); err != nil {
		t.Fatalf("remove: %v", err)
	}

	doc, err := storage.LoadModelFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Len() != 2 {
		t.Fatalf("expected 2 objects, got %d", doc.Len())
	}
	cp, err := doc.Get(2)
	if err != nil {
		t.Fatal(err)
	}
	if cp.Name != "ball copy" || cp.Body.Centre()[2] != -1 {
		t.Errorf("copy: %s at %v", cp.Name, cp.Body.Centre())
	}
	pair, err := doc.GroupBodies("pair")
	if err != nil || len(pair) != 2 {
		t.Errorf("group pair: %v, %v", pair, err)
	}
}

func TestEditDocumentRejects(t *testing.T) {
	path := writeDoc(t)
	noop := func(*model.Document, []uint64) error { return nil }

	if err := editDocument(path, []string{"x"}, noop); err == nil {
		t.Error("expected error for a non-numeric id")
	}
	err := editDocument(path, []string{"7"}, func(d *model.Document, ids []uint64) error {
		return d.Remove(ids[0])
	})
	if !errors.Is(err, model.ErrNoObject) {
		t.Errorf("expected ErrNoObject, got %v", err)
	}
	if err := editDocument(filepath.Join(t.TempDir(), "missing.json"), nil, noop); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestSaveFitted(t *testing.T) {
	dataDir = t.TempDir()
	defer func() { dataDir = ".gravmod" }()

	doc, err := storage.LoadModelFile(writeDoc(t))
	if err != nil {
		t.Fatal(err)
	}
	path, err := saveFitted(doc, 1, map[string]float64{"density": 1500, "radius": 2})
	if err != nil {
		t.Fatal(err)
	}

	saved, err := storage.LoadModelFile(path)
	if err != nil {
		t.Fatal(err)
	}
	ball, err := saved.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	s := ball.Body.(gravity.Sphere)
	if s.Density != 1500 || s.Radius != 2 || s.XCentroid != 5 {
		t.Errorf("fitted sphere: %+v", s)
	}
	if saved.Name != "ridge fit" {
		t.Errorf("name %q", saved.Name)
	}

	if _, err := saveFitted(doc, 1, map[string]float64{"radius": -1}); err == nil {
		t.Error("expected a degenerate fit to be rejected")
	}
}
