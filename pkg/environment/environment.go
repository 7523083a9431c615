// Package environment provides background colors for rays that escape the scene.
package environment

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Environment maps a ray direction to a background color.
// Implementations must be pure and safe for concurrent use.
type Environment interface {
	Lookup(direction core.Vec3) core.Vec3
}

// Uniform returns the same color in every direction
type Uniform struct {
	Color core.Vec3
}

// NewUniform creates a uniform environment
func NewUniform(color core.Vec3) *Uniform {
	return &Uniform{Color: color}
}

// Lookup implements Environment
func (u *Uniform) Lookup(direction core.Vec3) core.Vec3 {
	return u.Color
}

// Gradient blends from Bottom to Top along the Y axis
type Gradient struct {
	Top    core.Vec3 // Color looking straight up
	Bottom core.Vec3 // Color looking straight down
}

// NewGradient creates a new gradient sky
func NewGradient(top, bottom core.Vec3) *Gradient {
	return &Gradient{Top: top, Bottom: bottom}
}

// Lookup implements Environment
func (g *Gradient) Lookup(direction core.Vec3) core.Vec3 {
	unit := direction.Normalize()
	t := 0.5 * (unit.Y + 1.0) // Map Y from [-1,1] to [0,1]
	return g.Bottom.Multiply(1.0 - t).Add(g.Top.Multiply(t))
}
