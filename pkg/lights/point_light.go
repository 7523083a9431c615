package lights

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight emits Intensity from Position with no distance falloff
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

// Validate checks that the intensity is non-negative
func (pl *PointLight) Validate() error {
	if pl.Intensity.AnyNegative() {
		return fmt.Errorf("light intensity must be non-negative, got %v", pl.Intensity)
	}
	return nil
}

// Illuminate returns the unit direction from point toward the light and the distance to it
func (pl *PointLight) Illuminate(point core.Vec3) (core.Vec3, float64) {
	toLight := pl.Position.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return core.Vec3{}, 0
	}
	return toLight.Multiply(1 / distance), distance
}
