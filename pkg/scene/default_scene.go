package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// NewDefaultScene creates a small scene showing each material on a ground sphere
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.DefaultCameraConfig(400, 225)
	cameraConfig.LookFrom = core.NewVec3(-2, 2, 1)
	cameraConfig.LookAt = core.NewVec3(0, 0, -1)
	cameraConfig.VFov = 20
	cameraConfig.DefocusAngle = 10.0
	cameraConfig.FocusDistance = 3.4
	cameraConfig.MaxDepth = 50

	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := NewScene("default", cameraConfig)

	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialLeft := material.NewDielectric(1.5)
	materialRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, materialGround)
	s.AddSphere(core.NewVec3(0, 0, -1.2), 0.5, materialCenter)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, materialLeft)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, materialRight)

	return s
}
