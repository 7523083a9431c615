package renderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestVec3ToColor(t *testing.T) {
	tests := []struct {
		name     string
		input    core.Vec3
		gamma    float64
		expected color.RGBA
	}{
		{"black", core.NewVec3(0, 0, 0), 1, color.RGBA{0, 0, 0, 255}},
		{"white", core.NewVec3(1, 1, 1), 1, color.RGBA{255, 255, 255, 255}},
		{"overexposed clamps", core.NewVec3(3, 1.5, 0.5), 1, color.RGBA{255, 255, 128, 255}},
		{"gamma 2", core.NewVec3(0.25, 0, 1), 2, color.RGBA{128, 0, 255, 255}},
		{"gamma below one stays linear", core.NewVec3(0.25, 0.25, 0.25), 0, color.RGBA{64, 64, 64, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := vec3ToColor(tt.input, tt.gamma)
			if got != tt.expected {
				t.Errorf("vec3ToColor(%v, %f) = %v, want %v", tt.input, tt.gamma, got, tt.expected)
			}
		})
	}
}

func TestFrameSetAndMask(t *testing.T) {
	frame := NewFrame(3, 2)
	frame.Set(0, 0, core.NewVec3(1, 0, 0), true)
	frame.Set(2, 1, core.NewVec3(0, 0, 1), true)
	frame.Set(1, 1, core.NewVec3(0, 1, 0), false)

	c, hit := frame.At(2, 1)
	if c != core.NewVec3(0, 0, 1) || !hit {
		t.Errorf("At(2,1) = (%v, %v), want blue hit", c, hit)
	}

	mask := frame.Mask()
	if mask.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("Unexpected mask bounds %v", mask.Bounds())
	}
	expected := map[image.Point]uint8{
		{0, 0}: 255, {1, 0}: 0, {2, 0}: 0,
		{0, 1}: 0, {1, 1}: 0, {2, 1}: 255,
	}
	for p, alpha := range expected {
		if got := mask.AlphaAt(p.X, p.Y).A; got != alpha {
			t.Errorf("Mask at %v = %d, want %d", p, got, alpha)
		}
	}
}

func TestFrameRegionImage(t *testing.T) {
	frame := NewFrame(4, 4)
	frame.Set(2, 3, core.NewVec3(1, 1, 1), true)

	region := frame.RegionImage(image.Rect(2, 2, 4, 4), 1)
	if region.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("Expected 2x2 region anchored at origin, got %v", region.Bounds())
	}
	if got := region.RGBAAt(0, 1); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Expected white at region (0,1), got %v", got)
	}
	if got := region.RGBAAt(1, 1); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("Expected black at region (1,1), got %v", got)
	}
}

func TestNewTileGrid(t *testing.T) {
	tiles := NewTileGrid(100, 50, 32)
	// 4 columns (32,32,32,4) x 2 rows (32,18)
	if len(tiles) != 8 {
		t.Fatalf("Expected 8 tiles, got %d", len(tiles))
	}

	covered := 0
	for i, tile := range tiles {
		if tile.ID != i {
			t.Errorf("Tile %d has ID %d", i, tile.ID)
		}
		covered += tile.Bounds.Dx() * tile.Bounds.Dy()
	}
	if covered != 100*50 {
		t.Errorf("Tiles cover %d pixels, want %d", covered, 100*50)
	}

	last := tiles[len(tiles)-1].Bounds
	if last != image.Rect(96, 32, 100, 50) {
		t.Errorf("Unexpected last tile bounds %v", last)
	}
}
