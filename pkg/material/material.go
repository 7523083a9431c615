package material

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material holds Blinn-Phong coefficients for a surface
type Material struct {
	Diffuse   core.Vec3 // k_d, per channel >= 0
	Specular  core.Vec3 // k_s, per channel >= 0; also the mirror reflectance
	Shininess float64   // Specular exponent n >= 0
}

// NewMaterial creates a Blinn-Phong material
func NewMaterial(diffuse, specular core.Vec3, shininess float64) Material {
	return Material{Diffuse: diffuse, Specular: specular, Shininess: shininess}
}

// NewMatte creates a purely diffuse material that never spawns reflection rays
func NewMatte(diffuse core.Vec3) Material {
	return Material{Diffuse: diffuse}
}

// NewMirror creates a tinted mirror with a tight highlight
func NewMirror(tint core.Vec3) Material {
	return Material{Specular: tint, Shininess: 1000}
}

// Validate checks that all coefficients are non-negative and finite
func (m Material) Validate() error {
	if m.Diffuse.AnyNegative() {
		return fmt.Errorf("diffuse coefficient must be non-negative, got %v", m.Diffuse)
	}
	if m.Specular.AnyNegative() {
		return fmt.Errorf("specular coefficient must be non-negative, got %v", m.Specular)
	}
	if m.Shininess < 0 || math.IsNaN(m.Shininess) || math.IsInf(m.Shininess, 0) {
		return fmt.Errorf("shininess must be a non-negative number, got %f", m.Shininess)
	}
	return nil
}

// IsReflective reports whether the material contributes reflection bounces
func (m Material) IsReflective() bool {
	return !m.Specular.AllNonPositive()
}

// Evaluate returns the Blinn-Phong response for unit normal, light and view directions.
// The result is per unit of light intensity.
func (m Material) Evaluate(normal, lightDir, viewDir core.Vec3) core.Vec3 {
	cosTheta := math.Max(0, normal.Dot(lightDir))
	diffuse := m.Diffuse.Multiply(cosTheta)

	halfVector := lightDir.Add(viewDir).Normalize()
	cosAlpha := math.Max(0, normal.Dot(halfVector))
	specular := m.Specular.Multiply(math.Pow(cosAlpha, m.Shininess))

	return diffuse.Add(specular)
}
