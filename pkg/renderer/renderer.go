package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains configuration for tiled rendering
type Config struct {
	TileSize   int                   // Size of each tile in pixels
	NumWorkers int                   // Number of parallel workers (0 = use CPU count)
	Gamma      float64               // Output gamma; values <= 1 keep colors linear
	Integrator integrator.Integrator // nil uses the Whitted integrator
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   32,
		NumWorkers: 0,
		Gamma:      1.0,
	}
}

// Result is a finished render
type Result struct {
	Frame *Frame
	Image *image.RGBA
	Mask  *image.Alpha
	Stats RenderStats
}

// TileCompletionResult contains information about a completed tile
type TileCompletionResult struct {
	TileX     int // Tile coordinates (not pixel coordinates)
	TileY     int
	Bounds    image.Rectangle
	TileImage *image.RGBA // Image data for just this tile

	// Progress information
	TileNumber int // Completed tile count so far (1-based)
	TotalTiles int
}

// Renderer renders a scene in parallel tiles
type Renderer struct {
	scene      *scene.Scene
	camera     *geometry.Camera
	integrator integrator.Integrator
	config     Config
	tiles      []*Tile
	logger     core.Logger
}

// NewRenderer validates the scene and prepares its camera and tiles
func NewRenderer(s *scene.Scene, config Config, logger core.Logger) (*Renderer, error) {
	if s == nil {
		return nil, fmt.Errorf("scene is nil")
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene %q: %w", s.Name, err)
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	integratorInst := config.Integrator
	if integratorInst == nil {
		integratorInst = integrator.NewWhittedIntegrator()
	}

	camera := geometry.NewCamera(s.CameraConfig)

	return &Renderer{
		scene:      s,
		camera:     camera,
		integrator: integratorInst,
		config:     config,
		tiles:      NewTileGrid(camera.Width(), camera.Height(), config.TileSize),
		logger:     logger,
	}, nil
}

// Width returns the output width in pixels
func (r *Renderer) Width() int {
	return r.camera.Width()
}

// Height returns the output height in pixels
func (r *Renderer) Height() int {
	return r.camera.Height()
}

// TileCount returns the number of tiles a render produces
func (r *Renderer) TileCount() int {
	return len(r.tiles)
}

// Render traces every pixel and returns the finished image
func (r *Renderer) Render(ctx context.Context) (*Result, error) {
	return r.render(ctx, nil)
}

// RenderTiles renders with channel-based communication.
// Tiles are delivered as they finish; the result channel receives the finished render.
// Both data channels are closed when rendering ends; errChan receives at most one error.
func (r *Renderer) RenderTiles(ctx context.Context) (<-chan TileCompletionResult, <-chan *Result, <-chan error) {
	tileChan := make(chan TileCompletionResult, len(r.tiles))
	resultChan := make(chan *Result, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(tileChan)
		defer close(resultChan)
		defer close(errChan)

		result, err := r.render(ctx, func(tile TileCompletionResult) {
			select {
			case tileChan <- tile:
			case <-ctx.Done():
			}
		})
		if err != nil {
			errChan <- err
			return
		}
		resultChan <- result
	}()

	return tileChan, resultChan, errChan
}

func (r *Renderer) render(ctx context.Context, tileCallback func(TileCompletionResult)) (*Result, error) {
	// Check if the caller gave up before any work starts
	if err := ctx.Err(); err != nil {
		r.logger.Printf("Rendering of %s cancelled before start\n", r.scene.Name)
		return nil, err
	}

	startTime := time.Now()
	width, height := r.Width(), r.Height()
	frame := NewFrame(width, height)

	pool := NewWorkerPool(NewTileRenderer(r.scene, r.camera, r.integrator), r.config.NumWorkers, len(r.tiles))
	pool.Start()
	defer pool.Stop()

	r.logger.Printf("Rendering %s at %dx%d (%d tiles, %d workers, bounce limit %d)...\n",
		r.scene.Name, width, height, len(r.tiles), pool.GetNumWorkers(), r.scene.BounceLimit)

	for taskID, tile := range r.tiles {
		pool.SubmitTask(TileTask{
			Ctx:    ctx,
			Tile:   tile,
			TaskID: taskID,
			Frame:  frame,
		})
	}

	var stats RenderStats
	var renderErr error
	for i := 0; i < len(r.tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			return nil, fmt.Errorf("worker pool closed unexpectedly")
		}
		stats.Add(result.Stats)
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}

		if tileCallback != nil && renderErr == nil {
			tile := r.tiles[result.TaskID]
			tileCallback(TileCompletionResult{
				TileX:      tile.Bounds.Min.X / r.config.TileSize,
				TileY:      tile.Bounds.Min.Y / r.config.TileSize,
				Bounds:     tile.Bounds,
				TileImage:  frame.RegionImage(tile.Bounds, r.config.Gamma),
				TileNumber: stats.TilesCompleted,
				TotalTiles: len(r.tiles),
			})
		}
	}

	if renderErr != nil {
		r.logger.Printf("Rendering of %s stopped after %d/%d tiles: %v\n",
			r.scene.Name, stats.TilesCompleted, len(r.tiles), renderErr)
		return nil, renderErr
	}

	stats.Duration = time.Since(startTime)
	img := frame.Image(r.config.Gamma)

	r.logger.Printf("Rendered %s in %v (%d pixels, %.1f%% coverage, average luminance %.3f)\n",
		r.scene.Name, stats.Duration, stats.TotalPixels, 100*stats.Coverage(), CalculateAverageLuminance(img))

	return &Result{
		Frame: frame,
		Image: img,
		Mask:  frame.Mask(),
		Stats: stats,
	}, nil
}
