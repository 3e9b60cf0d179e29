package renderer

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// displayGamma is the exponent inverted when encoding linear radiance to 8-bit
const displayGamma = 2.2

// intensity is the range channels are clamped to before scaling by 256
var intensity = core.NewInterval(0.0, 0.999)

// Config contains rendering configuration
type Config struct {
	TileSize   int   // Size of each square tile in pixels
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed; tile i draws from Seed+i
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   32,
		NumWorkers: 0,
		Seed:       42,
	}
}

// ProgressUpdate reports how many tiles have completed
type ProgressUpdate struct {
	TilesCompleted int
	TotalTiles     int
}

// Raytracer renders a scene through a camera
type Raytracer struct {
	scene      *scene.Scene
	camera     *geometry.Camera
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
}

// NewRaytracer creates a new raytracer using path tracing bounded by the camera's max depth
func NewRaytracer(s *scene.Scene, camera *geometry.Camera, config Config, logger core.Logger) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &Raytracer{
		scene:      s,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(camera.Config().MaxDepth),
		config:     config,
		logger:     logger,
	}
}

// Render renders every pixel in parallel and returns the finished image.
// The same seed always produces the same image, regardless of worker count.
// progress, if non-nil, is called from the calling goroutine after each tile.
func (rt *Raytracer) Render(progress func(ProgressUpdate)) (*image.RGBA, RenderStats, error) {
	startTime := time.Now()

	cameraConfig := rt.camera.Config()
	width, height := cameraConfig.Width, cameraConfig.Height
	samplesPerPixel := cameraConfig.SamplesPerPixel

	tiles := NewTileGrid(width, height, rt.config.TileSize, rt.config.Seed)

	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}

	tileRenderer := NewTileRenderer(rt.scene, rt.camera, rt.integrator)
	workerPool := NewWorkerPool(tileRenderer, rt.config.NumWorkers, len(tiles))

	rt.logger.Printf("Rendering %dx%d, %d samples per pixel, max depth %d, %d tiles on %d workers...\n",
		width, height, samplesPerPixel, cameraConfig.MaxDepth, len(tiles), workerPool.GetNumWorkers())

	workerPool.Start()
	for taskID, tile := range tiles {
		workerPool.SubmitTask(TileTask{
			Tile:            tile,
			SamplesPerPixel: samplesPerPixel,
			TaskID:          taskID,
			PixelStats:      pixelStats,
		})
	}

	stats := RenderStats{
		TotalPixels:     width * height,
		SamplesPerPixel: samplesPerPixel,
		TotalTiles:      len(tiles),
		NumWorkers:      workerPool.GetNumWorkers(),
	}

	var renderErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil && renderErr == nil {
			renderErr = result.Error
		}
		stats.TotalSamples += result.Samples

		if progress != nil {
			progress(ProgressUpdate{TilesCompleted: i + 1, TotalTiles: len(tiles)})
		}
	}
	workerPool.Stop()

	if renderErr != nil {
		return nil, stats, renderErr
	}

	img := rt.assembleImage(pixelStats, width, height)
	stats.Duration = time.Since(startTime)

	rt.logger.Printf("Render completed in %v (%d samples, average luminance %.3f)\n",
		stats.Duration, stats.TotalSamples, CalculateAverageLuminance(img))

	return img, stats, nil
}

// assembleImage tone maps the accumulated pixel colors into an 8-bit image
func (rt *Raytracer) assembleImage(pixelStats [][]PixelStats, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, Vec3ToColor(pixelStats[y][x].GetColor()))
		}
	}
	return img
}

// Vec3ToColor converts a linear color to RGBA with gamma correction and clamping.
// Negative and NaN channels encode as 0.
func Vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = core.NewVec3(nonNegative(colorVec.X), nonNegative(colorVec.Y), nonNegative(colorVec.Z))
	colorVec = colorVec.GammaCorrect(displayGamma)

	return color.RGBA{
		R: uint8(256 * intensity.Clamp(colorVec.X)),
		G: uint8(256 * intensity.Clamp(colorVec.Y)),
		B: uint8(256 * intensity.Clamp(colorVec.Z)),
		A: 255,
	}
}

func nonNegative(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}
