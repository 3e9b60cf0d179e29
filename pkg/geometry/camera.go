package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// ErrInvalidCameraConfig is wrapped by every camera validation error
var ErrInvalidCameraConfig = errors.New("invalid camera config")

// CameraConfig contains all camera and sampling parameters
type CameraConfig struct {
	Width           int       // Image width in pixels
	Height          int       // Image height in pixels
	VFov            float64   // Vertical field of view in degrees
	LookFrom        core.Vec3 // Camera position
	LookAt          core.Vec3 // Point the camera looks at
	Up              core.Vec3 // Camera-relative "up" direction
	FocusDistance   float64   // Distance from LookFrom to the plane of perfect focus
	DefocusAngle    float64   // Cone angle in degrees through each pixel (0 = pinhole)
	SamplesPerPixel int       // Number of rays per pixel
	MaxDepth        int       // Maximum ray bounce depth
}

// DefaultCameraConfig returns the documented defaults for an image of the given size
func DefaultCameraConfig(width, height int) CameraConfig {
	return CameraConfig{
		Width:           width,
		Height:          height,
		VFov:            60.0,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		FocusDistance:   10.0,
		DefocusAngle:    0.0,
		SamplesPerPixel: 100,
		MaxDepth:        10,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied.
// Zero means unset for every field, vectors included: a (0,0,0) LookFrom, LookAt
// or Up in override keeps the base value. Set such values on the result directly.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}

	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.LookFrom != zero {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}

	return result
}

// Validate rejects configurations that would produce NaN or infinite pixels
func (c CameraConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidCameraConfig, c.Width, c.Height)
	}
	if c.VFov <= 0 || c.VFov >= 180 {
		return fmt.Errorf("%w: vertical fov must be in (0, 180), got %g", ErrInvalidCameraConfig, c.VFov)
	}
	viewDir := c.LookFrom.Subtract(c.LookAt)
	if viewDir.LengthSquared() == 0 {
		return fmt.Errorf("%w: look from and look at coincide at %v", ErrInvalidCameraConfig, c.LookFrom)
	}
	if c.Up.Cross(viewDir).LengthSquared() == 0 {
		return fmt.Errorf("%w: up vector %v is zero or parallel to the view direction", ErrInvalidCameraConfig, c.Up)
	}
	if c.FocusDistance <= 0 {
		return fmt.Errorf("%w: focus distance must be positive, got %g", ErrInvalidCameraConfig, c.FocusDistance)
	}
	if c.DefocusAngle < 0 {
		return fmt.Errorf("%w: defocus angle must not be negative, got %g", ErrInvalidCameraConfig, c.DefocusAngle)
	}
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("%w: samples per pixel must be at least 1, got %d", ErrInvalidCameraConfig, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidCameraConfig, c.MaxDepth)
	}
	return nil
}

// Camera generates rays for rendering. All derived geometry is computed once
// in NewCamera and never mutated, so a Camera can be shared across workers.
type Camera struct {
	config CameraConfig

	u, v, w        core.Vec3 // Orthonormal view basis
	viewportWidth  float64
	viewportHeight float64
	pixelDeltaU    core.Vec3 // Offset to the pixel to the right
	pixelDeltaV    core.Vec3 // Offset to the pixel below
	pixel00        core.Vec3 // Center of pixel (0, 0)
	defocusDiskU   core.Vec3 // Defocus disk horizontal radius
	defocusDiskV   core.Vec3 // Defocus disk vertical radius
}

// NewCamera validates config and precomputes the viewport geometry
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	theta := degreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDistance
	viewportWidth := viewportHeight * float64(config.Width) / float64(config.Height)

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	pixelDeltaU := viewportU.Multiply(1.0 / float64(config.Width))
	pixelDeltaV := viewportV.Multiply(1.0 / float64(config.Height))

	viewportUpperLeft := config.LookFrom.
		Subtract(w.Multiply(config.FocusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00 := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDistance * math.Tan(degreesToRadians(config.DefocusAngle/2))

	return &Camera{
		config:         config,
		u:              u,
		v:              v,
		w:              w,
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
		pixelDeltaU:    pixelDeltaU,
		pixelDeltaV:    pixelDeltaV,
		pixel00:        pixel00,
		defocusDiskU:   u.Multiply(defocusRadius),
		defocusDiskV:   v.Multiply(defocusRadius),
	}, nil
}

// GetRay returns a ray through a random point in pixel (i, j), originating
// from the defocus disk when depth of field is enabled
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	// Box filter jitter in [-0.5, 0.5)
	offset := sampler.Get2D()
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X - 0.5)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y - 0.5))

	origin := c.config.LookFrom
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(origin, pixelSample.Subtract(origin))
}

// defocusDiskSample returns a random point on the camera's defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.SamplePointInUnitDisk(sampler.Get2D())
	return c.config.LookFrom.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// Config returns the validated configuration this camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Basis returns the orthonormal view basis (u right, v up, w backwards)
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// Viewport returns the viewport extent in world units at the focus distance
func (c *Camera) Viewport() (width, height float64) {
	return c.viewportWidth, c.viewportHeight
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
