package material

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// NewDielectric creates a clear dielectric material
func NewDielectric(refractiveIndex float64) Material {
	return NewTintedDielectric(refractiveIndex, core.NewVec3(1.0, 1.0, 1.0))
}

// NewTintedDielectric creates a dielectric that attenuates transmitted light by tint
func NewTintedDielectric(refractiveIndex float64, tint core.Vec3) Material {
	return Material{Kind: KindDielectric, RefractiveIndex: refractiveIndex, Tint: tint}
}

// scatterDielectric refracts the ray, or reflects it under total internal reflection.
// There is no Fresnel term: the choice is made by the TIR test alone.
func (m Material) scatterDielectric(rayIn core.Ray, hit HitRecord) (ScatterResult, bool) {
	var refractionRatio float64
	if hit.FrontFace {
		refractionRatio = 1.0 / m.RefractiveIndex // entering the material
	} else {
		refractionRatio = m.RefractiveIndex // exiting the material
	}

	unitDirection := rayIn.Direction.Normalize()

	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	var direction core.Vec3
	if refractionRatio*sinTheta > 1.0 {
		direction = core.Reflect(unitDirection, hit.Normal)
	} else {
		direction = refract(unitDirection, hit.Normal, refractionRatio)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: m.Tint,
	}, true
}

// refract calculates the refraction of a unit vector using Snell's law
func refract(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(uv.Negate().Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}
