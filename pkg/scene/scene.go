package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// Background is the vertical gradient returned for rays that escape the scene.
// Bottom is used for rays pointing straight down, Top for rays pointing straight up.
type Background struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// DefaultBackground returns the white to sky-blue gradient
func DefaultBackground() Background {
	return Background{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Scene contains all the elements needed for rendering.
// It is read-only once rendering starts.
type Scene struct {
	Name         string
	Shapes       []geometry.Shape      // Objects in the scene, tested in order
	Background   Background            // Sky gradient for escaping rays
	CameraConfig geometry.CameraConfig // Recommended camera for this scene
}

// NewScene creates an empty scene with the default background and camera
func NewScene(name string, cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		Shapes:       make([]geometry.Shape, 0),
		Background:   DefaultBackground(),
		CameraConfig: cameraConfig,
	}
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddSphere appends a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.Add(geometry.NewSphere(center, radius, mat))
}

// Hit returns the nearest intersection across all shapes within interval.
// Each shape is only asked for hits closer than the best found so far.
func (s *Scene) Hit(ray core.Ray, interval core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := interval.Max

	for _, shape := range s.Shapes {
		if hit, isHit := shape.Hit(ray, core.NewInterval(interval.Min, closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
