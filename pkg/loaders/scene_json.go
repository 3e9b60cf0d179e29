package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// Vec3 is a JSON [x, y, z] triple
type Vec3 [3]float64

// UnmarshalJSON requires exactly three elements
func (v *Vec3) UnmarshalJSON(data []byte) error {
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	if len(values) != 3 {
		return fmt.Errorf("expected 3 components, got %d in %s", len(values), data)
	}
	copy(v[:], values)
	return nil
}

// checkColor rejects components outside [0, 1]
func (v *Vec3) checkColor(field string) error {
	for _, c := range v {
		if c < 0 || c > 1 {
			return fmt.Errorf("%s %v: components must be in [0, 1]", field, *v)
		}
	}
	return nil
}

func (v *Vec3) toCore() core.Vec3 {
	if v == nil {
		return core.Vec3{}
	}
	return core.NewVec3(v[0], v[1], v[2])
}

// SceneFile is the on-disk JSON scene description
type SceneFile struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Camera      CameraFile     `json:"camera"`
	Background  *BackgroundCfg `json:"background,omitempty"`
	Spheres     []SphereCfg    `json:"spheres"`
}

// CameraFile holds camera options. Omitted fields take the camera defaults.
type CameraFile struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	VFov            float64 `json:"vfov,omitempty"`
	LookFrom        *Vec3   `json:"lookFrom,omitempty"`
	LookAt          *Vec3   `json:"lookAt,omitempty"`
	Up              *Vec3   `json:"up,omitempty"`
	FocusDistance   float64 `json:"focusDistance,omitempty"`
	DefocusAngle    float64 `json:"defocusAngle,omitempty"`
	SamplesPerPixel int     `json:"samplesPerPixel,omitempty"`
	MaxDepth        *int    `json:"maxDepth,omitempty"`
}

// BackgroundCfg overrides the sky gradient endpoints
type BackgroundCfg struct {
	Top    Vec3 `json:"top"`
	Bottom Vec3 `json:"bottom"`
}

// SphereCfg describes one sphere
type SphereCfg struct {
	Center   Vec3        `json:"center"`
	Radius   float64     `json:"radius"`
	Material MaterialCfg `json:"material"`
}

// MaterialCfg selects a material kind and its parameters
type MaterialCfg struct {
	Type            string  `json:"type"`
	Albedo          *Vec3   `json:"albedo,omitempty"`
	Fuzz            float64 `json:"fuzz,omitempty"`
	RefractiveIndex float64 `json:"refractiveIndex,omitempty"`
	Tint            *Vec3   `json:"tint,omitempty"`
}

// LoadSceneJSON reads and builds a scene from a JSON file
func LoadSceneJSON(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	s, err := ReadSceneJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ReadSceneJSON decodes a JSON scene description and builds the scene.
// Unknown fields are rejected so that typos do not silently fall back to defaults.
func ReadSceneJSON(r io.Reader) (*scene.Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var file SceneFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	return file.Build()
}

// Build validates the description and constructs the scene
func (f *SceneFile) Build() (*scene.Scene, error) {
	cameraConfig := f.Camera.toConfig()
	if err := cameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	name := f.Name
	if name == "" {
		name = "json"
	}
	s := scene.NewScene(name, cameraConfig)

	if f.Background != nil {
		if err := f.Background.Top.checkColor("background top"); err != nil {
			return nil, err
		}
		if err := f.Background.Bottom.checkColor("background bottom"); err != nil {
			return nil, err
		}
		s.Background = scene.Background{
			Top:    f.Background.Top.toCore(),
			Bottom: f.Background.Bottom.toCore(),
		}
	}

	for i, sphere := range f.Spheres {
		if sphere.Radius <= 0 {
			return nil, fmt.Errorf("sphere %d: radius must be positive, got %g", i, sphere.Radius)
		}
		mat, err := sphere.Material.toMaterial()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.AddSphere(sphere.Center.toCore(), sphere.Radius, mat)
	}

	return s, nil
}

func (c CameraFile) toConfig() geometry.CameraConfig {
	config := geometry.DefaultCameraConfig(c.Width, c.Height)
	if c.VFov != 0 {
		config.VFov = c.VFov
	}
	if c.LookFrom != nil {
		config.LookFrom = c.LookFrom.toCore()
	}
	if c.LookAt != nil {
		config.LookAt = c.LookAt.toCore()
	}
	if c.Up != nil {
		config.Up = c.Up.toCore()
	}
	if c.FocusDistance != 0 {
		config.FocusDistance = c.FocusDistance
	}
	if c.DefocusAngle != 0 {
		config.DefocusAngle = c.DefocusAngle
	}
	if c.SamplesPerPixel != 0 {
		config.SamplesPerPixel = c.SamplesPerPixel
	}
	if c.MaxDepth != nil {
		config.MaxDepth = *c.MaxDepth
	}
	return config
}

func (m MaterialCfg) toMaterial() (material.Material, error) {
	kind, err := material.ParseKind(m.Type)
	if err != nil {
		return material.Material{}, fmt.Errorf("material: %w", err)
	}

	switch kind {
	case material.KindLambertian:
		if m.Albedo == nil {
			return material.Material{}, fmt.Errorf("material: lambertian requires albedo")
		}
		if err := m.Albedo.checkColor("material: albedo"); err != nil {
			return material.Material{}, err
		}
		return material.NewLambertian(m.Albedo.toCore()), nil
	case material.KindMetal:
		if m.Albedo == nil {
			return material.Material{}, fmt.Errorf("material: metal requires albedo")
		}
		if err := m.Albedo.checkColor("material: albedo"); err != nil {
			return material.Material{}, err
		}
		return material.NewMetal(m.Albedo.toCore(), m.Fuzz), nil
	case material.KindDielectric:
		if m.RefractiveIndex <= 0 {
			return material.Material{}, fmt.Errorf("material: dielectric requires a positive refractiveIndex, got %g", m.RefractiveIndex)
		}
		if m.Tint != nil {
			if err := m.Tint.checkColor("material: tint"); err != nil {
				return material.Material{}, err
			}
			return material.NewTintedDielectric(m.RefractiveIndex, m.Tint.toCore()), nil
		}
		return material.NewDielectric(m.RefractiveIndex), nil
	}

	return material.Material{}, fmt.Errorf("material: unsupported kind %v", kind)
}
