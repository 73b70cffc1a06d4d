package model

import "errors"

var (
	// ErrModelFull indicates an addition beyond MaxObjects.
	ErrModelFull = errors.New("model: object limit reached")

	// ErrNoObject indicates an id that is not in the model.
	ErrNoObject = errors.New("model: no such object")

	// ErrNoGroup indicates a group name that is not in the model.
	ErrNoGroup = errors.New("model: no such group")

	// ErrBadObject indicates an object entry that is not exactly one of
	// {"Cuboid": ...} or {"Sphere": ...}.
	ErrBadObject = errors.New("model: object must hold exactly one Cuboid or Sphere")
)
