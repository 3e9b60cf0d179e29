package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/loaders"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

const scenesDir = "scenes"

// Orbit parameters for animations: a circle through (13, 2, 3) around the origin
var (
	orbitRadius = math.Sqrt(178)
	orbitHeight = 2.0
	orbitPhase  = math.Asin(3 / math.Sqrt(178))
)

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene: 'default', 'final', a name from scenes/ or a path to a .json file")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	height := flag.Int("height", 0, "Image height in pixels (0 = scene default)")
	samples := flag.Int("samples", 0, "Samples per pixel (0 = scene default)")
	depth := flag.Int("depth", 0, "Maximum ray bounce depth (0 = scene default)")
	seed := flag.Int64("seed", renderer.DefaultConfig().Seed, "Random seed for scene generation and sampling")
	frames := flag.Int("frames", 1, "Number of frames; more than one renders a camera orbit")
	outputRoot := flag.String("output", "output", "Root directory for rendered images")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = CPU count)")
	tileSize := flag.Int("tile", renderer.DefaultConfig().TileSize, "Tile size in pixels")
	list := flag.Bool("list", false, "List available scenes and exit")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Sphere Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		printScenes()
		fmt.Println()
		fmt.Println("Output will be saved to <output>/<scene>/render_<timestamp>.png")
		return
	}

	if *list {
		printScenes()
		return
	}

	if err := run(options{
		sceneType:  *sceneType,
		overrides:  geometry.CameraConfig{Width: *width, Height: *height, SamplesPerPixel: *samples, MaxDepth: *depth},
		frames:     *frames,
		outputRoot: *outputRoot,
		config:     renderer.Config{TileSize: *tileSize, NumWorkers: *workers, Seed: *seed},
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	sceneType  string
	overrides  geometry.CameraConfig
	frames     int
	outputRoot string
	config     renderer.Config
}

func run(opts options) error {
	if opts.frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", opts.frames)
	}

	selectedScene, err := createScene(opts.sceneType, opts.config.Seed)
	if err != nil {
		return err
	}

	cameraConfig := geometry.MergeCameraConfig(selectedScene.CameraConfig, opts.overrides)
	fmt.Printf("Resolution = %dx%d, aspect ratio = %s\n",
		cameraConfig.Width, cameraConfig.Height, formatAspectRatio(cameraConfig.Width, cameraConfig.Height))

	outputDir := filepath.Join(opts.outputRoot, outputName(opts.sceneType))
	timestamp := time.Now().Format("20060102_150405")

	for frame := 0; frame < opts.frames; frame++ {
		frameConfig := cameraConfig
		filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
		if opts.frames > 1 {
			frameConfig = orbitCameraConfig(cameraConfig, frame, opts.frames)
			filename = filepath.Join(outputDir, fmt.Sprintf("frame_%d.png", frame+1))
			fmt.Printf("Frame %d/%d, camera at %.3f\n", frame+1, opts.frames, frameConfig.LookFrom)
		}

		if err := renderFrame(selectedScene, frameConfig, opts.config, filename); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
	}

	return nil
}

// renderFrame renders one image with the given camera and writes it as PNG
func renderFrame(s *scene.Scene, cameraConfig geometry.CameraConfig, config renderer.Config, filename string) error {
	camera, err := geometry.NewCamera(cameraConfig)
	if err != nil {
		return err
	}

	raytracer := renderer.NewRaytracer(s, camera, config, renderer.NewDefaultLogger())
	img, _, err := raytracer.Render(func(p renderer.ProgressUpdate) {
		fmt.Printf("\rTiles: %d/%d", p.TilesCompleted, p.TotalTiles)
		if p.TilesCompleted == p.TotalTiles {
			fmt.Println()
		}
	})
	if err != nil {
		return err
	}

	if err := loaders.SavePNG(filename, img); err != nil {
		return err
	}

	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene builds a built-in scene or loads a JSON scene by name or path
func createScene(sceneType string, seed int64) (*scene.Scene, error) {
	switch sceneType {
	case "":
		return nil, fmt.Errorf("scene name must not be empty")
	case "default", "materials":
		return scene.NewDefaultScene(), nil
	case "final":
		return scene.NewFinalScene(seed), nil
	}

	if s, err := tryLoadJSONScene(sceneType); s != nil || err != nil {
		return s, err
	}

	return nil, fmt.Errorf("unknown scene %q (use -list to see available scenes)", sceneType)
}

// tryLoadJSONScene resolves sceneType as a .json path or as a file in the scenes directory.
// It returns nil without error when no such file exists.
func tryLoadJSONScene(sceneType string) (*scene.Scene, error) {
	path := sceneType
	if !strings.HasSuffix(path, ".json") {
		path = filepath.Join(scenesDir, sceneType+".json")
	}

	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}

	return loaders.LoadSceneJSON(path)
}

// outputName derives the output subdirectory name from the scene selection
func outputName(sceneType string) string {
	base := filepath.Base(sceneType)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// formatAspectRatio formats width/height with at most four decimals
func formatAspectRatio(width, height int) string {
	ratio := fmt.Sprintf("%.4f", float64(width)/float64(height))
	ratio = strings.TrimRight(ratio, "0")
	return strings.TrimSuffix(ratio, ".")
}

// orbitCameraConfig places the camera for one frame of an orbit around the origin
func orbitCameraConfig(base geometry.CameraConfig, frame, frames int) geometry.CameraConfig {
	config := base
	config.LookFrom = orbitLookFrom(frame, frames)
	config.LookAt = core.NewVec3(0, 0, 0)
	config.VFov = 20
	config.DefocusAngle = 0.6
	config.FocusDistance = 10
	return config
}

// orbitLookFrom returns the camera position for frame out of frames
func orbitLookFrom(frame, frames int) core.Vec3 {
	theta := orbitPhase + 2*math.Pi*float64(frame)/float64(frames)
	return core.NewVec3(orbitRadius*math.Cos(theta), orbitHeight, orbitRadius*math.Sin(theta))
}

func printScenes() {
	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		fmt.Printf("Error listing scenes: %v\n", err)
		return
	}

	fmt.Println("Available scenes:")
	for _, info := range scenes {
		if info.Description != "" {
			fmt.Printf("  %-28s %s - %s\n", info.ID, info.Name, info.Description)
		} else {
			fmt.Printf("  %-28s %s\n", info.ID, info.Name)
		}
	}
}
