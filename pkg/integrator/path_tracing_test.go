package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// createTestScene creates a simple scene with a sphere for testing
func createTestScene(mat material.Material) *scene.Scene {
	s := scene.NewScene("test", geometry.DefaultCameraConfig(20, 10))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, mat)
	return s
}

func TestPathTracingDepthTermination(t *testing.T) {
	sc := createTestScene(material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	sampler := core.NewSeededSampler(42)
	integrator := NewPathTracingIntegrator(10)

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), // at the sphere
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),  // at the sky
	}

	for _, ray := range rays {
		if c := integrator.rayColor(ray, sc, sampler, 0); c != (core.Vec3{}) {
			t.Errorf("Expected black color for depth 0, got %v", c)
		}
	}

	zeroDepth := NewPathTracingIntegrator(0)
	if c := zeroDepth.RayColor(rays[1], sc, sampler); c != (core.Vec3{}) {
		t.Errorf("Integrator with max depth 0 should return black, got %v", c)
	}
}

func TestPathTracingBackgroundGradient(t *testing.T) {
	sc := scene.NewScene("empty", geometry.DefaultCameraConfig(20, 10))
	sampler := core.NewSeededSampler(42)
	integrator := NewPathTracingIntegrator(10)

	up := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), sc, sampler)
	down := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0)), sc, sampler)

	if up == down {
		t.Fatalf("Up and down background colors should differ, both %v", up)
	}

	bg := sc.Background
	if up.Subtract(bg.Top).Length() > 1e-12 {
		t.Errorf("Straight up should be the top color %v, got %v", bg.Top, up)
	}
	if down.Subtract(bg.Bottom).Length() > 1e-12 {
		t.Errorf("Straight down should be the bottom color %v, got %v", bg.Bottom, down)
	}

	// A horizontal ray sits halfway along the gradient
	side := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), sc, sampler)
	expected := bg.Bottom.Lerp(bg.Top, 0.5)
	if side.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Horizontal ray expected %v, got %v", expected, side)
	}
}

func TestBackgroundGradient_IgnoresDirectionLength(t *testing.T) {
	bg := scene.DefaultBackground()
	a := BackgroundGradient(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 0)), bg)
	b := BackgroundGradient(core.NewRay(core.NewVec3(5, 5, 5), core.NewVec3(10, 10, 0)), bg)

	if a.Subtract(b).Length() > 1e-12 {
		t.Errorf("Gradient should depend only on direction: %v vs %v", a, b)
	}
}

func TestPathTracingAbsorption(t *testing.T) {
	// A fully fuzzy metal hit at grazing incidence absorbs some rays; absorbed rays are black
	sc := createTestScene(material.NewMetal(core.NewVec3(1, 1, 1), 1.0))
	integrator := NewPathTracingIntegrator(10)
	ray := core.NewRay(core.NewVec3(-2, 0.499, -1), core.NewVec3(1, 0, 0))

	blacks := 0
	for seed := int64(0); seed < 200; seed++ {
		c := integrator.RayColor(ray, sc, core.NewSeededSampler(seed))
		if c == (core.Vec3{}) {
			blacks++
		}
	}

	if blacks == 0 {
		t.Error("Expected some grazing fuzzy reflections to be absorbed")
	}
}

func TestPathTracingAttenuation(t *testing.T) {
	// A mirror reflects straight back at normal incidence, so the result is albedo * background
	albedo := core.NewVec3(0.5, 0.25, 1.0)
	sc := createTestScene(material.NewMetal(albedo, 0.0))
	integrator := NewPathTracingIntegrator(10)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	c := integrator.RayColor(ray, sc, core.NewSeededSampler(1))

	// Reflected ray travels along +z: horizontal, so the background is halfway
	bg := sc.Background.Bottom.Lerp(sc.Background.Top, 0.5)
	expected := albedo.MultiplyVec(bg)
	if c.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, c)
	}

	// With one bounce of budget the reflected ray is cut off
	shallow := NewPathTracingIntegrator(1)
	if c := shallow.RayColor(ray, sc, core.NewSeededSampler(1)); c != (core.Vec3{}) {
		t.Errorf("Expected black when the bounce budget runs out, got %v", c)
	}
}

func TestPathTracingDiffuseEnergy(t *testing.T) {
	sc := createTestScene(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	integrator := NewPathTracingIntegrator(10)
	sampler := core.NewSeededSampler(42)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	for i := 0; i < 100; i++ {
		c := integrator.RayColor(ray, sc, sampler)
		for _, v := range []float64{c.X, c.Y, c.Z} {
			if math.IsNaN(v) || v < 0 || v > 1 {
				t.Fatalf("Radiance %v outside [0,1]", c)
			}
		}
	}
}
