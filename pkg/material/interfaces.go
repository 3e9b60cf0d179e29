package material

import (
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Kind selects which scattering model a Material uses
type Kind int

const (
	KindLambertian Kind = iota // Perfectly diffuse
	KindMetal                  // Specular reflection with optional fuzz
	KindDielectric             // Refractive glass-like material
)

// String returns the lowercase name used in scene files
func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a scene file material name to its Kind
func ParseKind(name string) (Kind, error) {
	switch name {
	case "lambertian", "diffuse":
		return KindLambertian, nil
	case "metal":
		return KindMetal, nil
	case "dielectric", "glass":
		return KindDielectric, nil
	}
	return 0, fmt.Errorf("unknown material type %q", name)
}

// Material is a closed set of surface models. Only the fields used by Kind are meaningful.
// It is a small value type, so hit records carry their own copy.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Lambertian and Metal reflectance
	Fuzz            float64   // Metal: 0.0 = perfect mirror, 1.0 = very fuzzy
	RefractiveIndex float64   // Dielectric index of refraction
	Tint            core.Vec3 // Dielectric transmission color
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// Scatter produces an outgoing ray and attenuation for a ray striking the surface.
// A false return means the ray was absorbed.
func (m Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(hit, sampler)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, sampler)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit)
	}
	return ScatterResult{}, false
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit surface normal, always facing against the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
