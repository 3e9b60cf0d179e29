package scene

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

var rayInterval = core.NewInterval(0.001, math.Inf(1))

func TestScene_HitReturnsNearest(t *testing.T) {
	red := material.NewLambertian(core.NewVec3(1, 0, 0))
	green := material.NewLambertian(core.NewVec3(0, 1, 0))
	blue := material.NewLambertian(core.NewVec3(0, 0, 1))

	tests := []struct {
		name     string
		order    []material.Material
		centers  []float64
		expected material.Material
	}{
		{"nearest first", []material.Material{red, green, blue}, []float64{-2, -5, -8}, red},
		{"nearest last", []material.Material{blue, green, red}, []float64{-8, -5, -2}, red},
		{"nearest middle", []material.Material{blue, red, green}, []float64{-8, -2, -5}, red},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene("test", geometry.DefaultCameraConfig(20, 10))
			for i, m := range tt.order {
				s.AddSphere(core.NewVec3(0, 0, tt.centers[i]), 0.5, m)
			}

			ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
			hit, isHit := s.Hit(ray, rayInterval)
			if !isHit {
				t.Fatal("Expected hit")
			}

			if hit.Material != tt.expected {
				t.Errorf("Expected nearest material %v, got %v", tt.expected, hit.Material)
			}
			if math.Abs(hit.T-1.5) > 1e-9 {
				t.Errorf("Expected t=1.5, got %f", hit.T)
			}
		})
	}
}

func TestScene_HitRespectsIntervalMax(t *testing.T) {
	s := NewScene("test", geometry.DefaultCameraConfig(20, 10))
	s.AddSphere(core.NewVec3(0, 0, -5), 1, material.NewLambertian(core.NewVec3(1, 1, 1)))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, isHit := s.Hit(ray, core.NewInterval(0.001, 3)); isHit {
		t.Error("Hit beyond interval max should be ignored")
	}
}

func TestScene_EmptySceneNeverHits(t *testing.T) {
	s := NewScene("empty", geometry.DefaultCameraConfig(20, 10))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, isHit := s.Hit(ray, rayInterval)
	if isHit || hit != nil {
		t.Errorf("Empty scene should not report hits, got %+v", hit)
	}
}

func TestNewDefaultScene(t *testing.T) {
	s := NewDefaultScene()

	if s.GetPrimitiveCount() != 4 {
		t.Errorf("Expected 4 spheres, got %d", s.GetPrimitiveCount())
	}
	if err := s.CameraConfig.Validate(); err != nil {
		t.Errorf("Default scene camera should be valid: %v", err)
	}

	overridden := NewDefaultScene(geometry.CameraConfig{Width: 20, Height: 10})
	if overridden.CameraConfig.Width != 20 || overridden.CameraConfig.Height != 10 {
		t.Errorf("Camera override not applied: %+v", overridden.CameraConfig)
	}
	if overridden.CameraConfig.VFov != s.CameraConfig.VFov {
		t.Errorf("Unset override fields should keep scene defaults")
	}
}

func TestNewFinalScene_Deterministic(t *testing.T) {
	a := NewFinalScene(42)
	b := NewFinalScene(42)

	if a.GetPrimitiveCount() != b.GetPrimitiveCount() {
		t.Fatalf("Same seed produced %d and %d spheres", a.GetPrimitiveCount(), b.GetPrimitiveCount())
	}

	for i := range a.Shapes {
		sa := a.Shapes[i].(*geometry.Sphere)
		sb := b.Shapes[i].(*geometry.Sphere)
		if *sa != *sb {
			t.Fatalf("Sphere %d differs: %+v vs %+v", i, sa, sb)
		}
	}
}

func TestNewFinalScene_Layout(t *testing.T) {
	s := NewFinalScene(7)

	// Ground + at most 22x22 small spheres + 3 large spheres
	count := s.GetPrimitiveCount()
	if count < 4 || count > 1+22*22+3 {
		t.Fatalf("Unexpected sphere count %d", count)
	}

	ground := s.Shapes[0].(*geometry.Sphere)
	if ground.Radius != 1000 || ground.Center != core.NewVec3(0, -1000, 0) {
		t.Errorf("Unexpected ground sphere %+v", ground)
	}

	clearing := core.NewVec3(4, 0.2, 0)
	for _, shape := range s.Shapes[1 : count-3] {
		sphere := shape.(*geometry.Sphere)
		if sphere.Radius != 0.2 {
			t.Errorf("Small sphere has radius %f", sphere.Radius)
		}
		if sphere.Center.Subtract(clearing).Length() <= 0.9 {
			t.Errorf("Small sphere at %v intrudes on the clearing", sphere.Center)
		}
		if sphere.Material.Kind == material.KindLambertian {
			albedo := sphere.Material.Albedo
			for _, c := range []float64{albedo.X, albedo.Y, albedo.Z} {
				if c < 0 || c > 1 {
					t.Errorf("Random albedo %v out of range", albedo)
				}
			}
		}
	}

	large := s.Shapes[count-3:]
	kinds := []material.Kind{material.KindDielectric, material.KindLambertian, material.KindMetal}
	for i, shape := range large {
		sphere := shape.(*geometry.Sphere)
		if sphere.Radius != 1.0 || sphere.Material.Kind != kinds[i] {
			t.Errorf("Large sphere %d: unexpected %+v", i, sphere)
		}
	}

	if err := s.CameraConfig.Validate(); err != nil {
		t.Errorf("Final scene camera should be valid: %v", err)
	}
}

func TestDefaultBackground(t *testing.T) {
	bg := DefaultBackground()
	if bg.Bottom != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected white bottom, got %v", bg.Bottom)
	}
	if bg.Top != core.NewVec3(0.5, 0.7, 1.0) {
		t.Errorf("Expected sky blue top, got %v", bg.Top)
	}
}
