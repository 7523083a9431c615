package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape. Spheres are immutable once placed in a scene.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Validate checks the radius and material of the sphere
func (s *Sphere) Validate() error {
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return fmt.Errorf("sphere radius must be positive, got %f", s.Radius)
	}
	if err := s.Material.Validate(); err != nil {
		return fmt.Errorf("sphere material: %w", err)
	}
	return nil
}

// Hit returns the smallest root of the ray-sphere quadratic that is strictly
// greater than tMin. Both roots are tested against the same threshold.
func (s *Sphere) Hit(ray core.Ray, tMin float64) (float64, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)

	// a > 0, so near <= far
	near := (-b - sqrtD) / (2 * a)
	if near > tMin {
		return near, true
	}
	far := (-b + sqrtD) / (2 * a)
	if far > tMin {
		return far, true
	}
	return 0, false
}

// Normal returns the unit outward normal at a point on the surface
func (s *Sphere) Normal(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}
