package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

// defaultJSONCamera fills in whatever a scene file leaves out of its camera block
var defaultJSONCamera = geometry.CameraConfig{
	Center:      core.NewVec3(0, 0, 5),
	LookAt:      core.NewVec3(0, 0, 0),
	Up:          core.NewVec3(0, 1, 0),
	Width:       400,
	AspectRatio: 16.0 / 9.0,
	VFov:        40.0,
}

// NewJSONScene creates a scene from a JSON scene file
func NewJSONScene(filepath string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	desc, err := loaders.LoadSceneFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to load JSON scene: %w", err)
	}

	cameraConfig := geometry.MergeCameraConfig(defaultJSONCamera, desc.Camera)
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Name:         desc.Name,
		Spheres:      desc.Spheres,
		Lights:       desc.Lights,
		Environment:  desc.Environment,
		BounceLimit:  DefaultBounceLimit,
		CameraConfig: cameraConfig,
	}
	if desc.BounceLimit != nil {
		s.BounceLimit = *desc.BounceLimit
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene %s: %w", filepath, err)
	}
	return s, nil
}
