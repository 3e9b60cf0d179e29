package renderer

import (
	"image"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// TileRenderer renders individual tiles using an integrator.
// It holds no mutable state and is shared by all workers.
type TileRenderer struct {
	scene      *scene.Scene
	camera     *geometry.Camera
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene, camera and integrator
func NewTileRenderer(s *scene.Scene, camera *geometry.Camera, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		camera:     camera,
		integrator: integratorInst,
	}
}

// RenderTileBounds takes samplesPerPixel samples for every pixel within bounds.
// Tiles have disjoint bounds, so concurrent calls write disjoint pixelStats entries.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, samplesPerPixel int) int {
	samples := 0
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &pixelStats[j][i]
			for s := 0; s < samplesPerPixel; s++ {
				ray := tr.camera.GetRay(i, j, sampler)
				ps.AddSample(tr.integrator.RayColor(ray, tr.scene, sampler))
			}
			samples += samplesPerPixel
		}
	}
	return samples
}
