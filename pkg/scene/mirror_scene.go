package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/environment"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewMirrorScene creates two facing mirror spheres around a glossy centerpiece.
// Rays bounce between the mirrors, so the bounce limit visibly changes the image.
func NewMirrorScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 1.2, 6),
		LookAt:      core.NewVec3(0, 0.8, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 4.0 / 3.0,
		VFov:        45.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Name:         "mirrors",
		BounceLimit:  8,
		CameraConfig: cameraConfig,
		Environment: environment.NewGradient(
			core.NewVec3(0.9, 0.5, 0.2), // warm sunset overhead
			core.NewVec3(0.1, 0.1, 0.2),
		),
	}

	mirror := material.NewMirror(core.NewVec3(0.9, 0.9, 0.9))
	tintedMirror := material.NewMaterial(core.NewVec3(0.05, 0.05, 0.1), core.NewVec3(0.6, 0.7, 0.9), 500)
	centerpiece := material.NewMaterial(core.NewVec3(0.7, 0.1, 0.1), core.NewVec3(0.3, 0.3, 0.3), 60)
	floor := material.NewMaterial(core.NewVec3(0.4, 0.4, 0.4), core.NewVec3(0.2, 0.2, 0.2), 20)

	s.AddSphere(core.NewVec3(-2.2, 1.2, 0), 1.2, mirror)
	s.AddSphere(core.NewVec3(2.2, 1.2, 0), 1.2, tintedMirror)
	s.AddSphere(core.NewVec3(0, 0.6, 0.5), 0.6, centerpiece)
	s.AddSphere(core.NewVec3(0, -500, 0), 500, floor)

	s.AddPointLight(core.NewVec3(0, 10, 6), core.NewVec3(0.9, 0.9, 0.9))
	s.AddPointLight(core.NewVec3(-5, 3, 8), core.NewVec3(0.2, 0.2, 0.25))

	return s
}
