// Package model holds a named collection of bodies as saved to disk.
//
// The JSON layout keeps objects keyed by their decimal id, each carrying an
// externally tagged body ({"Cuboid": {...}} or {"Sphere": {...}}) plus a
// display name, an RGBA colour and a selection flag. A "None" key mapping
// to null is written into both objects and groups for compatibility with
// existing model files and ignored on read.
package model

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/san-kum/gravmod/internal/gravity"
)

// MaxObjects bounds the number of bodies in one model.
const MaxObjects = 10

const placeholderKey = "None"

// Document is a model: bodies with presentation data, and named groups of
// body ids.
type Document struct {
	Name          string
	objects       map[uint64]*Object
	groups        map[string][]uint64
	ObjectCounter uint64
}

func New(name string) *Document {
	return &Document{
		Name:    name,
		objects: make(map[uint64]*Object),
		groups:  make(map[string][]uint64),
	}
}

// Len is the number of objects.
func (d *Document) Len() int { return len(d.objects) }

// Add validates b and stores it under the next id. The object is named
// name, or "<kind> <id>" if name is empty, and coloured from Palette.
func (d *Document) Add(name string, b gravity.Body) (*Object, error) {
	if len(d.objects) >= MaxObjects {
		slog.Warn("model full, object rejected", "model", d.Name, "limit", MaxObjects)
		return nil, fmt.Errorf("%w: %d", ErrModelFull, MaxObjects)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	id := d.ObjectCounter
	if name == "" {
		name = fmt.Sprintf("%s %d", b.Kind(), id)
	}
	obj := &Object{
		Body:   b,
		Name:   name,
		ID:     id,
		Colour: Palette[int(id%uint64(len(Palette)))],
	}
	d.objects[id] = obj
	d.ObjectCounter++
	return obj, nil
}

// Get returns the object with the given id.
func (d *Document) Get(id uint64) (*Object, error) {
	obj, ok := d.objects[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNoObject, id)
	}
	return obj, nil
}

// Replace swaps the body of object id for b.
func (d *Document) Replace(id uint64, b gravity.Body) error {
	obj, err := d.Get(id)
	if err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	obj.Body = b
	return nil
}

// Remove deletes object id and drops it from every group.
func (d *Document) Remove(id uint64) error {
	if _, ok := d.objects[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNoObject, id)
	}
	delete(d.objects, id)
	for name, ids := range d.groups {
		d.groups[name] = slices.DeleteFunc(ids, func(v uint64) bool { return v == id })
	}
	return nil
}

// Duplicate copies object id one metre above the original under a new id.
func (d *Document) Duplicate(id uint64) (*Object, error) {
	src, err := d.Get(id)
	if err != nil {
		return nil, err
	}
	cp := src.Translated(0, 0, 1)
	obj, err := d.Add(src.Name+" copy", cp.Body)
	if err != nil {
		return nil, err
	}
	obj.Colour = src.Colour
	return obj, nil
}

// Selected returns the ids of objects flagged as selected, ascending.
func (d *Document) Selected() []uint64 {
	var ids []uint64
	for _, obj := range d.Objects() {
		if obj.IsSelected {
			ids = append(ids, obj.ID)
		}
	}
	return ids
}

// Objects returns every object in ascending id order.
func (d *Document) Objects() []*Object {
	ids := make([]uint64, 0, len(d.objects))
	for id := range d.objects {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]*Object, len(ids))
	for i, id := range ids {
		out[i] = d.objects[id]
	}
	return out
}

// Bodies returns the geometry of every object in ascending id order.
func (d *Document) Bodies() []gravity.Body {
	objs := d.Objects()
	out := make([]gravity.Body, len(objs))
	for i, obj := range objs {
		out[i] = obj.Body
	}
	return out
}

// Group adds ids to the named group, creating it if needed. Unknown ids are
// rejected and leave the group unchanged.
func (d *Document) Group(name string, ids ...uint64) error {
	for _, id := range ids {
		if _, ok := d.objects[id]; !ok {
			return fmt.Errorf("%w: %d", ErrNoObject, id)
		}
	}
	members := d.groups[name]
	for _, id := range ids {
		if !slices.Contains(members, id) {
			members = append(members, id)
		}
	}
	slices.Sort(members)
	d.groups[name] = members
	return nil
}

// Groups returns the group names, sorted.
func (d *Document) Groups() []string {
	names := make([]string, 0, len(d.groups))
	for name := range d.groups {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GroupBodies returns the bodies of the named group in id order.
func (d *Document) GroupBodies(name string) ([]gravity.Body, error) {
	ids, ok := d.groups[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoGroup, name)
	}
	out := make([]gravity.Body, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.objects[id].Body)
	}
	return out, nil
}

type documentJSON struct {
	Name          string               `json:"name"`
	Objects       map[string]*Object   `json:"objects"`
	Groups        map[string]*[]string `json:"groups"`
	ObjectCounter uint64               `json:"object_counter"`
}

func (d *Document) MarshalJSON() ([]byte, error) {
	out := documentJSON{
		Name:          d.Name,
		Objects:       map[string]*Object{placeholderKey: nil},
		Groups:        map[string]*[]string{placeholderKey: nil},
		ObjectCounter: d.ObjectCounter,
	}
	for id, obj := range d.objects {
		out.Objects[strconv.FormatUint(id, 10)] = obj
	}
	for name, ids := range d.groups {
		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = strconv.FormatUint(id, 10)
		}
		out.Groups[name] = &keys
	}
	return json.Marshal(out)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	doc := New(raw.Name)
	doc.ObjectCounter = raw.ObjectCounter
	for key, obj := range raw.Objects {
		if obj == nil {
			continue
		}
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return fmt.Errorf("model: object key %q: %w", key, err)
		}
		obj.ID = id
		doc.objects[id] = obj
		if id >= doc.ObjectCounter {
			doc.ObjectCounter = id + 1
		}
	}
	if len(doc.objects) > MaxObjects {
		return fmt.Errorf("%w: file holds %d objects", ErrModelFull, len(doc.objects))
	}
	for name, keys := range raw.Groups {
		if keys == nil {
			continue
		}
		ids := make([]uint64, 0, len(*keys))
		for _, key := range *keys {
			id, err := strconv.ParseUint(key, 10, 64)
			if err != nil {
				return fmt.Errorf("model: group %q member %q: %w", name, key, err)
			}
			if _, ok := doc.objects[id]; !ok {
				slog.Debug("dropping dangling group member", "group", name, "id", id)
				continue
			}
			ids = append(ids, id)
		}
		slices.Sort(ids)
		doc.groups[name] = ids
	}

	*d = *doc
	return nil
}
