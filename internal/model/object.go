package model

import (
	"encoding/json"
	"fmt"

	"github.com/san-kum/gravmod/internal/gravity"
)

// Colour is an sRGBA colour stored as [r, g, b, a].
type Colour [4]uint8

// Palette cycles through distinguishable colours for new objects.
var Palette = []Colour{
	{31, 119, 180, 255},
	{255, 127, 14, 255},
	{44, 160, 44, 255},
	{214, 39, 40, 255},
	{148, 103, 189, 255},
	{140, 86, 75, 255},
	{227, 119, 194, 255},
	{127, 127, 127, 255},
	{188, 189, 34, 255},
	{23, 190, 207, 255},
}

// Object wraps a body with the presentation fields stored alongside it.
type Object struct {
	Body       gravity.Body
	Name       string
	ID         uint64
	Colour     Colour
	IsSelected bool
}

type objectJSON struct {
	Object     taggedBody `json:"object"`
	Name       string     `json:"name"`
	ID         uint64     `json:"id"`
	Colour     Colour     `json:"colour"`
	IsSelected bool       `json:"is_selected"`
}

// taggedBody is the externally tagged form {"Cuboid": {...}} or
// {"Sphere": {...}}.
type taggedBody struct {
	Cuboid *gravity.Cuboid `json:"Cuboid,omitempty"`
	Sphere *gravity.Sphere `json:"Sphere,omitempty"`
}

func tag(b gravity.Body) (taggedBody, error) {
	switch v := b.(type) {
	case gravity.Cuboid:
		return taggedBody{Cuboid: &v}, nil
	case *gravity.Cuboid:
		return taggedBody{Cuboid: v}, nil
	case gravity.Sphere:
		return taggedBody{Sphere: &v}, nil
	case *gravity.Sphere:
		return taggedBody{Sphere: v}, nil
	default:
		return taggedBody{}, fmt.Errorf("%w: %T", gravity.ErrUnknownKind, b)
	}
}

func (t taggedBody) body() (gravity.Body, error) {
	switch {
	case t.Cuboid != nil && t.Sphere == nil:
		return *t.Cuboid, nil
	case t.Sphere != nil && t.Cuboid == nil:
		return *t.Sphere, nil
	default:
		return nil, ErrBadObject
	}
}

func (o Object) MarshalJSON() ([]byte, error) {
	tb, err := tag(o.Body)
	if err != nil {
		return nil, err
	}
	return json.Marshal(objectJSON{
		Object:     tb,
		Name:       o.Name,
		ID:         o.ID,
		Colour:     o.Colour,
		IsSelected: o.IsSelected,
	})
}

func (o *Object) UnmarshalJSON(data []byte) error {
	var raw objectJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b, err := raw.Object.body()
	if err != nil {
		return fmt.Errorf("object %d: %w", raw.ID, err)
	}
	if err := b.Validate(); err != nil {
		return fmt.Errorf("object %d: %w", raw.ID, err)
	}
	*o = Object{
		Body:       b,
		Name:       raw.Name,
		ID:         raw.ID,
		Colour:     raw.Colour,
		IsSelected: raw.IsSelected,
	}
	return nil
}

// Translated returns a copy of o with its body moved by (dx, dy, dz).
func (o Object) Translated(dx, dy, dz float64) Object {
	switch b := o.Body.(type) {
	case gravity.Cuboid:
		b.XCentroid += dx
		b.YCentroid += dy
		b.ZCentroid += dz
		o.Body = b
	case gravity.Sphere:
		b.XCentroid += dx
		b.YCentroid += dy
		b.ZCentroid += dz
		o.Body = b
	}
	return o
}
