package environment

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestUniform_Lookup(t *testing.T) {
	color := core.NewVec3(0.2, 0.3, 0.4)
	env := NewUniform(color)

	for _, dir := range []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(1, -1, 0.5),
		core.NewVec3(0, 0, -3),
	} {
		if got := env.Lookup(dir); got != color {
			t.Errorf("Lookup(%v) = %v, want %v", dir, got, color)
		}
	}
}

func TestGradient_Lookup(t *testing.T) {
	top := core.NewVec3(0.5, 0.7, 1.0)
	bottom := core.NewVec3(1.0, 1.0, 1.0)
	env := NewGradient(top, bottom)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"Straight up", core.NewVec3(0, 1, 0), top},
		{"Straight down", core.NewVec3(0, -1, 0), bottom},
		{"Horizon", core.NewVec3(1, 0, 0), top.Add(bottom).Multiply(0.5)},
		{"Unnormalized up", core.NewVec3(0, 10, 0), top},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := env.Lookup(tt.direction)
			if result.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}
