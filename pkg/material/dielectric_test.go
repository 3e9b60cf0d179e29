package material

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

func TestDielectric_IndexOneLeavesDirectionUnchanged(t *testing.T) {
	air := NewDielectric(1.0)
	sampler := core.NewSeededSampler(42)

	directions := []core.Vec3{
		core.NewVec3(0, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0.3, -0.2, 0.9),
	}

	for _, dir := range directions {
		ray := core.NewRay(core.NewVec3(0, 1, 0), dir)
		hit := HitRecord{
			Point:     core.NewVec3(0, 0, 0),
			Normal:    core.NewVec3(0, 1, 0),
			FrontFace: true,
		}

		scatter, didScatter := air.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Dielectric should always scatter")
		}

		expected := dir.Normalize()
		if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-9 {
			t.Errorf("Index 1.0 bent %v into %v", expected, scatter.Scattered.Direction)
		}
	}
}

func TestDielectric_RefractionBendsTowardNormal(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewSeededSampler(42)

	rayDirection := core.NewVec3(1, -1, 0).Normalize() // 45-degree angle
	ray := core.NewRay(core.NewVec3(-1, 1, 0), rayDirection)
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
	}

	scatter, didScatter := glass.Scatter(ray, hit, sampler)
	if !didScatter {
		t.Fatal("Dielectric should always scatter")
	}

	// Snell: sin(θt) = sin(45°) / 1.5
	expectedSin := math.Sin(math.Pi/4) / 1.5
	dir := scatter.Scattered.Direction.Normalize()
	if math.Abs(dir.X-expectedSin) > 1e-9 {
		t.Errorf("Expected refracted sin %f, got %f", expectedSin, dir.X)
	}
	if dir.Y >= 0 {
		t.Errorf("Refracted ray should continue into the surface, got %v", dir)
	}

	expectedAttenuation := core.NewVec3(1.0, 1.0, 1.0)
	if scatter.Attenuation != expectedAttenuation {
		t.Errorf("Expected attenuation %v, got %v", expectedAttenuation, scatter.Attenuation)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewSeededSampler(42)

	// Exiting glass at 60° from the normal: 1.5 * sin(60°) > 1
	incoming := core.NewVec3(math.Sin(math.Pi/3), math.Cos(math.Pi/3), 0)
	ray := core.NewRay(core.NewVec3(0, -1, 0), incoming)
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, -1, 0), // flipped against the ray
		FrontFace: false,
	}

	scatter, didScatter := glass.Scatter(ray, hit, sampler)
	if !didScatter {
		t.Fatal("Dielectric should always scatter")
	}

	expected := core.Reflect(incoming, hit.Normal)
	if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected mirror reflection %v, got %v", expected, scatter.Scattered.Direction)
	}
}

func TestDielectric_Tint(t *testing.T) {
	tint := core.NewVec3(0.9, 0.5, 0.5)
	glass := NewTintedDielectric(1.5, tint)

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	scatter, _ := glass.Scatter(ray, hit, core.NewSeededSampler(1))
	if scatter.Attenuation != tint {
		t.Errorf("Expected tint %v, got %v", tint, scatter.Attenuation)
	}
}
