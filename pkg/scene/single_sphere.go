package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/environment"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewSingleSphereScene creates a unit matte sphere at the origin lit from above,
// viewed from (0,0,5). Useful as a reference image.
func NewSingleSphereScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       256,
		AspectRatio: 1.0,
		VFov:        30.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Name:         "single",
		BounceLimit:  DefaultBounceLimit,
		CameraConfig: cameraConfig,
		Environment:  environment.NewUniform(core.NewVec3(0.05, 0.05, 0.08)),
	}

	s.AddSphere(core.NewVec3(0, 0, 0), 1, material.NewMatte(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1))

	return s
}
