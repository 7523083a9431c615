package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func testCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       101,
		AspectRatio: 1.0,
		VFov:        90,
	}
}

func TestCamera_CenterRay(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	// 101x101 image: pixel (50, 50) is the exact center
	ray := camera.GetRay(50, 50)
	if ray.Origin != core.NewVec3(0, 0, 5) {
		t.Errorf("Expected origin at camera center, got %v", ray.Origin)
	}

	dir := ray.Direction.Normalize()
	if dir.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
		t.Errorf("Expected center ray along -Z, got %v", dir)
	}
}

func TestCamera_Orientation(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	topLeft := camera.GetRay(0, 0).Direction
	bottomRight := camera.GetRay(100, 100).Direction

	if !(topLeft.X < 0 && topLeft.Y > 0) {
		t.Errorf("Expected top-left ray to point left and up, got %v", topLeft)
	}
	if !(bottomRight.X > 0 && bottomRight.Y < 0) {
		t.Errorf("Expected bottom-right ray to point right and down, got %v", bottomRight)
	}

	// 90 degree vfov: tan(45°) = 1, so the top row center sits just inside slope 1
	edge := camera.GetRay(50, 0).Direction
	if math.Abs(edge.Y/-edge.Z-100.0/101.0) > 1e-9 {
		t.Errorf("Unexpected top edge slope: %v", edge)
	}
}

func TestCamera_LookAtArbitraryDirection(t *testing.T) {
	config := testCameraConfig()
	config.Center = core.NewVec3(10, 0, 0)
	config.LookAt = core.NewVec3(0, 0, 0)
	camera := NewCamera(config)

	dir := camera.GetRay(50, 50).Direction.Normalize()
	if dir.Subtract(core.NewVec3(-1, 0, 0)).Length() > 1e-9 {
		t.Errorf("Expected center ray toward origin, got %v", dir)
	}
}

func TestCameraConfig_Height(t *testing.T) {
	config := testCameraConfig()
	config.Width = 400
	config.AspectRatio = 16.0 / 9.0
	if h := config.Height(); h != 225 {
		t.Errorf("Expected height 225, got %d", h)
	}
}

func TestCameraConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CameraConfig)
	}{
		{"zero width", func(c *CameraConfig) { c.Width = 0 }},
		{"zero aspect", func(c *CameraConfig) { c.AspectRatio = 0 }},
		{"vfov too large", func(c *CameraConfig) { c.VFov = 180 }},
		{"look at self", func(c *CameraConfig) { c.LookAt = c.Center }},
		{"parallel up", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 1) }},
	}

	if err := testCameraConfig().Validate(); err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testCameraConfig()
			tt.modify(&config)
			if err := config.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := testCameraConfig()
	merged := MergeCameraConfig(base, CameraConfig{Width: 640, VFov: 30})

	if merged.Width != 640 || merged.VFov != 30 {
		t.Errorf("Expected overrides applied, got width=%d vfov=%f", merged.Width, merged.VFov)
	}
	if merged.Center != base.Center || merged.AspectRatio != base.AspectRatio {
		t.Error("Expected unset fields to keep base values")
	}
}
