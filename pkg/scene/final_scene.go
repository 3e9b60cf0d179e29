package scene

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// FinalSceneCameraConfig is the recommended camera for NewFinalScene
func FinalSceneCameraConfig() geometry.CameraConfig {
	config := geometry.DefaultCameraConfig(1200, 675)
	config.LookFrom = core.NewVec3(13, 2, 3)
	config.LookAt = core.NewVec3(0, 0, 0)
	config.VFov = 20
	config.DefocusAngle = 0.6
	config.FocusDistance = 10
	config.SamplesPerPixel = 10
	return config
}

// NewFinalScene creates a field of small random spheres around three large ones.
// The same seed always produces the same scene.
func NewFinalScene(seed int64, cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := FinalSceneCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := NewScene("final", cameraConfig)
	random := rand.New(rand.NewSource(seed))

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	// Keep the small spheres clear of the large metal sphere
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				0.2,
				float64(b)+0.9*random.Float64(),
			)

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				s.AddSphere(center, 0.2, material.NewLambertian(randomColor(random)))
			case chooseMat < 0.95:
				albedo := core.NewVec3(
					0.5*random.Float64()+0.5,
					0.5*random.Float64()+0.5,
					0.5*random.Float64()+0.5,
				)
				fuzz := 0.5*random.Float64() + 0.5
				s.AddSphere(center, 0.2, material.NewMetal(albedo, fuzz))
			default:
				s.AddSphere(center, 0.2, material.NewDielectric(1.5))
			}
		}
	}

	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	return s
}

// randomColor picks a saturated color with a uniformly random hue
func randomColor(random *rand.Rand) core.Vec3 {
	hue := random.Float64() * 360.0
	saturation := 0.5 + 0.5*random.Float64()
	lightness := 0.2 + 0.6*random.Float64()

	c := colorful.Hsl(hue, saturation, lightness)
	return core.NewVec3(c.R, c.G, c.B)
}
