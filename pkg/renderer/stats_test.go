package renderer

import (
	"image"
	"image/color"
	"testing"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Create a 2x2 image
	// Top-left: Red (1, 0, 0) -> Lum = 0.2126
	// Top-right: Green (0, 1, 0) -> Lum = 0.7152
	// Bottom-left: Blue (0, 0, 1) -> Lum = 0.0722
	// Bottom-right: Black (0, 0, 0) -> Lum = 0.0

	// Expected average: (0.2126 + 0.7152 + 0.0722 + 0.0) / 4 = 1.0 / 4 = 0.25

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_Empty(t *testing.T) {
	if lum := CalculateAverageLuminance(image.NewRGBA(image.Rect(0, 0, 0, 0))); lum != 0 {
		t.Errorf("Expected 0 for empty image, got %f", lum)
	}
}

func TestRenderStatsAddAndCoverage(t *testing.T) {
	var stats RenderStats
	stats.Add(RenderStats{TotalPixels: 10, HitPixels: 3, BackgroundPixels: 7, TilesCompleted: 1})
	stats.Add(RenderStats{TotalPixels: 10, HitPixels: 5, BackgroundPixels: 5, TilesCompleted: 1})

	if stats.TotalPixels != 20 || stats.HitPixels != 8 || stats.BackgroundPixels != 12 || stats.TilesCompleted != 2 {
		t.Errorf("Unexpected accumulated stats %+v", stats)
	}
	if stats.Coverage() != 0.4 {
		t.Errorf("Expected coverage 0.4, got %f", stats.Coverage())
	}
	if (RenderStats{}).Coverage() != 0 {
		t.Error("Expected zero coverage for empty stats")
	}
}
