package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene: built-in ID, json:<name>, or path to a .json file")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	bounces := flag.Int("bounces", cfg.BounceLimit, "Reflection bounce limit (-1 = scene default)")
	workers := flag.Int("workers", cfg.NumWorkers, "Number of parallel workers (0 = CPU count)")
	tileSize := flag.Int("tile", renderer.DefaultConfig().TileSize, "Tile size in pixels")
	gamma := flag.Float64("gamma", cfg.Gamma, "Output gamma (1 = linear)")
	outputDir := flag.String("output", cfg.OutputDir, "Base output directory")
	scenesDir := flag.String("scenes", cfg.ScenesDir, "Directory holding JSON scenes")
	thumbnail := flag.Uint("thumbnail", 0, "Also write a thumbnail with this maximum edge (0 = none)")
	mask := flag.Bool("mask", false, "Also write the coverage mask")
	upload := flag.Bool("upload", false, "Upload the render to S3 (requires S3_* settings)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Whitted Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, info := range scene.BuiltInScenes() {
			fmt.Printf("  %-12s %s\n", info.ID, info.Description)
		}
		if jsonScenes, err := scene.ListJSONScenes(*scenesDir); err == nil {
			for _, info := range jsonScenes {
				fmt.Printf("  %-12s %s\n", info.ID, info.Description)
			}
		}
		fmt.Println()
		fmt.Println("Output will be saved to <output>/<scene>/render_<timestamp>.png")
		return
	}

	fmt.Println("Starting Whitted Raytracer...")
	if info, err := renderer.GetSystemInfo(); err == nil {
		fmt.Printf("System: %s\n", info)
	}

	selectedScene, err := createScene(*sceneType, *scenesDir, *width, *bounces)
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		os.Exit(1)
	}

	rendererConfig := renderer.DefaultConfig()
	rendererConfig.NumWorkers = *workers
	rendererConfig.TileSize = *tileSize
	rendererConfig.Gamma = *gamma

	r, err := renderer.NewRenderer(selectedScene, rendererConfig, renderer.NewDefaultLogger())
	if err != nil {
		fmt.Printf("Error creating renderer: %v\n", err)
		os.Exit(1)
	}

	// Ctrl-C stops the render between pixels
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := r.Render(ctx)
	if err != nil {
		fmt.Printf("Render failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render completed in %v\n", result.Stats.Duration)
	fmt.Printf("Coverage: %.1f%% (%d of %d pixels hit geometry)\n",
		result.Stats.Coverage()*100, result.Stats.HitPixels, result.Stats.TotalPixels)

	opts := output.FileOptions{ThumbnailSize: *thumbnail}
	if *mask {
		opts.Mask = result.Mask
	}
	sceneDir := createOutputDir(*outputDir, *sceneType)
	base := output.TimestampedName(time.Now())
	files, err := output.WriteRender(sceneDir, base, result.Image, opts)
	if err != nil {
		fmt.Printf("Error saving render: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", files.Image)
	if files.Mask != "" {
		fmt.Printf("Mask saved as %s\n", files.Mask)
	}
	if files.Thumbnail != "" {
		fmt.Printf("Thumbnail saved as %s\n", files.Thumbnail)
	}

	if *upload {
		url, err := uploadRender(ctx, cfg.S3, filepath.Base(sceneDir), base, result)
		if err != nil {
			fmt.Printf("Upload failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Uploaded to %s\n", url)
	}
}

// createScene builds the named scene and applies width and bounce overrides
func createScene(sceneType, scenesDir string, width, bounces int) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("scene name must not be empty")
	}

	s, err := scene.Create(sceneType, scenesDir, geometry.CameraConfig{Width: width})
	if err != nil {
		return nil, err
	}
	if bounces >= 0 {
		s = s.WithBounceLimit(bounces)
	}
	return s, nil
}

// createOutputDir returns <baseDir>/<scene> using the file stem for JSON scenes
func createOutputDir(baseDir, sceneType string) string {
	name := strings.TrimPrefix(sceneType, "json:")
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if name == "" || name == "." {
		name = "scene"
	}
	return filepath.Join(baseDir, name)
}

// uploadRender publishes the image under renders/<scene>/<base>.png
func uploadRender(ctx context.Context, cfg output.S3Config, sceneName, base string, result *renderer.Result) (string, error) {
	uploader, err := output.NewS3Uploader(cfg)
	if err != nil {
		return "", err
	}
	return uploader.UploadPNG(ctx, fmt.Sprintf("renders/%s/%s.png", sceneName, base), result.Image)
}
