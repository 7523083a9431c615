package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color seen along a camera ray.
	// The bool reports whether the ray hit any geometry.
	RayColor(ray core.Ray, scene *scene.Scene) (core.Vec3, bool)
}
