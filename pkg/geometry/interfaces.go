package geometry

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hit reports the nearest intersection whose t lies strictly inside interval.
type Shape interface {
	Hit(ray core.Ray, interval core.Interval) (*material.HitRecord, bool)
}
