package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center      core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera is looking at
	Up          core.Vec3 // Up direction (usually (0,1,0))
	Width       int       // Image width in pixels
	AspectRatio float64   // Width / height
	VFov        float64   // Vertical field of view in degrees
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if !override.Center.IsZero() {
		result.Center = override.Center
	}
	if !override.LookAt.IsZero() {
		result.LookAt = override.LookAt
	}
	if !override.Up.IsZero() {
		result.Up = override.Up
	}
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.AspectRatio > 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov > 0 {
		result.VFov = override.VFov
	}
	return result
}

// Height returns the image height implied by width and aspect ratio
func (cc CameraConfig) Height() int {
	return max(1, int(float64(cc.Width)/cc.AspectRatio))
}

// Validate checks that the configuration describes a usable camera
func (cc CameraConfig) Validate() error {
	if cc.Width <= 0 {
		return fmt.Errorf("camera width must be positive, got %d", cc.Width)
	}
	if !(cc.AspectRatio > 0) {
		return fmt.Errorf("camera aspect ratio must be positive, got %f", cc.AspectRatio)
	}
	if !(cc.VFov > 0 && cc.VFov < 180) {
		return fmt.Errorf("camera vfov must be in (0, 180), got %f", cc.VFov)
	}
	forward := cc.LookAt.Subtract(cc.Center)
	if forward.IsZero() {
		return fmt.Errorf("camera center and look-at point coincide at %v", cc.Center)
	}
	if forward.Cross(cc.Up).LengthSquared() == 0 {
		return fmt.Errorf("camera up vector %v is parallel to the view direction", cc.Up)
	}
	return nil
}

// Camera generates one primary ray per pixel center
type Camera struct {
	config        CameraConfig
	height        int
	origin        core.Vec3
	cameraToWorld mgl64.Mat4
	halfHeight    float64 // Half viewport height at unit distance
	halfWidth     float64
}

// NewCamera creates a look-at camera. The config should pass Validate.
func NewCamera(config CameraConfig) *Camera {
	eye := toMgl(config.Center)
	view := mgl64.LookAtV(eye, toMgl(config.LookAt), toMgl(config.Up))

	halfHeight := math.Tan(mgl64.DegToRad(config.VFov) / 2)
	return &Camera{
		config:        config,
		height:        config.Height(),
		origin:        config.Center,
		cameraToWorld: view.Inv(),
		halfHeight:    halfHeight,
		halfWidth:     halfHeight * config.AspectRatio,
	}
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.config.Width
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.height
}

// GetRay returns the ray through the center of pixel (i, j); j = 0 is the top row
func (c *Camera) GetRay(i, j int) core.Ray {
	s := (float64(i) + 0.5) / float64(c.config.Width)
	t := (float64(j) + 0.5) / float64(c.height)

	x := (2*s - 1) * c.halfWidth
	y := (1 - 2*t) * c.halfHeight

	d := c.cameraToWorld.Mul4x1(mgl64.Vec4{x, y, -1, 0})
	return core.NewRay(c.origin, core.NewVec3(d[0], d[1], d[2]))
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}
