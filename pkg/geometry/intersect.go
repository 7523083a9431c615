package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// TieTolerance is the distance below which two hits are treated as equal.
// Equal hits resolve to the sphere that appears first in scene order.
const TieTolerance = 1e-9

// HitInfo describes the nearest intersection of a ray with the scene.
// It is produced and consumed within a single trace.
type HitInfo struct {
	T        float64           // Distance along the ray, always > core.Epsilon
	Position core.Vec3         // Point of intersection
	Normal   core.Vec3         // Unit outward normal
	Material material.Material // Copy of the sphere's material
	Index    int               // Index of the sphere in scene order
}

// Intersect returns the nearest hit across all spheres, or nil on a miss.
func Intersect(ray core.Ray, spheres []*Sphere) *HitInfo {
	bestIndex := -1
	bestT := 0.0

	for i, sphere := range spheres {
		t, ok := sphere.Hit(ray, core.Epsilon)
		if !ok {
			continue
		}
		if bestIndex < 0 || t < bestT-TieTolerance {
			bestIndex = i
			bestT = t
		}
	}

	if bestIndex < 0 {
		return nil
	}

	sphere := spheres[bestIndex]
	position := ray.At(bestT)
	return &HitInfo{
		T:        bestT,
		Position: position,
		Normal:   sphere.Normal(position),
		Material: sphere.Material,
		Index:    bestIndex,
	}
}

// Occluded reports whether any sphere blocks the ray before maxDistance.
// maxDistance is measured in units of the ray's direction length.
func Occluded(ray core.Ray, spheres []*Sphere, maxDistance float64) bool {
	hit := Intersect(ray, spheres)
	return hit != nil && hit.T < maxDistance
}
