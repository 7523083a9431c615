package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/environment"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering.
// A scene must not be modified while any trace is running against it.
type Scene struct {
	Name         string
	Spheres      []*geometry.Sphere     // Ordered; order breaks intersection ties
	Lights       []*lights.PointLight   // Point lights
	Environment  environment.Environment // Background for escaping rays
	BounceLimit  int                     // Maximum reflection rays per camera ray
	CameraConfig geometry.CameraConfig
}

// DefaultBounceLimit is used by built-in scenes unless overridden
const DefaultBounceLimit = 5

// AddSphere appends a sphere and returns it
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, mat)
	s.Spheres = append(s.Spheres, sphere)
	return sphere
}

// AddPointLight appends a point light and returns it
func (s *Scene) AddPointLight(position, intensity core.Vec3) *lights.PointLight {
	light := lights.NewPointLight(position, intensity)
	s.Lights = append(s.Lights, light)
	return light
}

// Intersect finds the nearest sphere hit along the ray, or nil on a miss
func (s *Scene) Intersect(ray core.Ray) *geometry.HitInfo {
	return geometry.Intersect(ray, s.Spheres)
}

// Validate checks the scene is safe to trace
func (s *Scene) Validate() error {
	var errs []error
	if s.BounceLimit < 0 {
		errs = append(errs, fmt.Errorf("bounce limit must be non-negative, got %d", s.BounceLimit))
	}
	if s.Environment == nil {
		errs = append(errs, errors.New("scene has no environment"))
	}
	for i, sphere := range s.Spheres {
		if sphere == nil {
			errs = append(errs, fmt.Errorf("sphere %d is nil", i))
			continue
		}
		if err := sphere.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("sphere %d: %w", i, err))
		}
	}
	for i, light := range s.Lights {
		if light == nil {
			errs = append(errs, fmt.Errorf("light %d is nil", i))
			continue
		}
		if err := light.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("light %d: %w", i, err))
		}
	}
	if err := s.CameraConfig.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// WithBounceLimit returns a shallow copy of the scene using a different bounce limit
func (s *Scene) WithBounceLimit(limit int) *Scene {
	copied := *s
	copied.BounceLimit = limit
	return &copied
}
