package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels traced
	HitPixels        int           // Pixels whose camera ray hit a sphere
	BackgroundPixels int           // Pixels showing the environment
	TilesCompleted   int           // Number of tiles finished
	Duration         time.Duration // Wall-clock render time
}

// Add accumulates the pixel and tile counts of other into stats
func (rs *RenderStats) Add(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.HitPixels += other.HitPixels
	rs.BackgroundPixels += other.BackgroundPixels
	rs.TilesCompleted += other.TilesCompleted
}

// Coverage returns the fraction of pixels that hit geometry
func (rs RenderStats) Coverage() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.HitPixels) / float64(rs.TotalPixels)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += 0.2126*float64(r)/65535.0 + 0.7152*float64(g)/65535.0 + 0.0722*float64(b)/65535.0
		}
	}
	return total / float64(pixels)
}
