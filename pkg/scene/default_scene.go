package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/environment"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres resting on a large ground sphere
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	// Default camera configuration
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:      core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:          core.NewVec3(0, 1, 0),    // Standard up direction
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Name:         "default",
		Spheres:      make([]*geometry.Sphere, 0),
		Lights:       make([]*lights.PointLight, 0),
		BounceLimit:  DefaultBounceLimit,
		CameraConfig: cameraConfig,
		Environment: environment.NewGradient(
			core.NewVec3(0.5, 0.7, 1.0), // top (blue sky)
			core.NewVec3(1.0, 1.0, 1.0), // bottom (white ground)
		),
	}

	// Create materials
	groundGreen := material.NewMaterial(core.NewVec3(0.48, 0.48, 0.0), core.NewVec3(0.05, 0.05, 0.05), 10)
	glossyRed := material.NewMaterial(core.NewVec3(0.65, 0.25, 0.2), core.NewVec3(0.2, 0.2, 0.2), 80)
	silver := material.NewMirror(core.NewVec3(0.8, 0.8, 0.8))
	gold := material.NewMaterial(core.NewVec3(0.2, 0.15, 0.05), core.NewVec3(0.8, 0.6, 0.2), 200)
	matteBlue := material.NewMatte(core.NewVec3(0.1, 0.2, 0.5))

	s.AddSphere(core.NewVec3(0, 0.5, -1), 0.5, glossyRed)
	s.AddSphere(core.NewVec3(-1, 0.5, -1), 0.5, silver)
	s.AddSphere(core.NewVec3(1, 0.5, -1), 0.5, gold)
	s.AddSphere(core.NewVec3(-0.5, 0.2, -0.4), 0.2, matteBlue)

	// Ground as a huge sphere instead of a plane
	s.AddSphere(core.NewVec3(0, -1000, -1), 1000, groundGreen)

	s.AddPointLight(core.NewVec3(5, 8, 4), core.NewVec3(0.8, 0.78, 0.75))
	s.AddPointLight(core.NewVec3(-6, 4, 2), core.NewVec3(0.3, 0.3, 0.35))

	return s
}
