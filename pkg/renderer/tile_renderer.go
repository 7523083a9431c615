package renderer

import (
	"context"
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
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

// RenderTileBounds traces one ray per pixel inside bounds and writes the results to frame.
// Cancellation is checked between pixels; a cancelled tile returns ctx.Err() and partial stats.
func (tr *TileRenderer) RenderTileBounds(ctx context.Context, bounds image.Rectangle, frame *Frame) (RenderStats, error) {
	var stats RenderStats

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			if err := ctx.Err(); err != nil {
				return stats, err
			}

			ray := tr.camera.GetRay(i, j)
			color, hit := tr.integrator.RayColor(ray, tr.scene)
			frame.Set(i, j, color, hit)

			stats.TotalPixels++
			if hit {
				stats.HitPixels++
			} else {
				stats.BackgroundPixels++
			}
		}
	}

	stats.TilesCompleted = 1
	return stats, nil
}
