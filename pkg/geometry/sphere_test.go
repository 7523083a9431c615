package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var testMaterial = material.NewMatte(core.NewVec3(0.5, 0.5, 0.5))

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if tHit, isHit := sphere.Hit(ray, core.Epsilon); isHit {
		t.Errorf("Expected miss, but got hit at t=%f", tHit)
	}
}

func TestSphere_Hit_Roots(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)

	tests := []struct {
		name         string
		rayOrigin    core.Vec3
		rayDirection core.Vec3
		expectedT    float64
	}{
		{
			name:         "outside picks near root",
			rayOrigin:    core.NewVec3(0, 0, 2),
			rayDirection: core.NewVec3(0, 0, -1),
			expectedT:    1.0,
		},
		{
			name:         "inside picks far root",
			rayOrigin:    core.NewVec3(0, 0, 0),
			rayDirection: core.NewVec3(0, 0, 1),
			expectedT:    1.0,
		},
		{
			name:         "unnormalized direction scales t",
			rayOrigin:    core.NewVec3(0, 0, 5),
			rayDirection: core.NewVec3(0, 0, -2),
			expectedT:    2.0,
		},
		{
			name:         "origin on surface skips the self hit",
			rayOrigin:    core.NewVec3(0, 0, 1),
			rayDirection: core.NewVec3(0, 0, -1),
			expectedT:    2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			tHit, isHit := sphere.Hit(ray, core.Epsilon)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(tHit-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, tHit)
			}
		})
	}
}

func TestSphere_Hit_BehindOrigin(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, 1))

	if tHit, isHit := sphere.Hit(ray, core.Epsilon); isHit {
		t.Errorf("Expected miss for sphere behind the ray, got t=%f", tHit)
	}
}

func TestSphere_Hit_GlancingHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	tHit, isHit := sphere.Hit(ray, core.Epsilon)
	if !isHit {
		t.Fatal("Expected glancing hit, but got miss")
	}

	point := ray.At(tHit)
	expectedPoint := core.NewVec3(1, 0, 0)
	if point.Subtract(expectedPoint).Length() > 1e-9 {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, point)
	}
}

func TestSphere_Normal(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 2.0, testMaterial)
	normal := sphere.Normal(core.NewVec3(1, 4, 3))

	if normal.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-12 {
		t.Errorf("Expected (0,1,0), got %v", normal)
	}
}

func TestSphere_Validate(t *testing.T) {
	tests := []struct {
		name      string
		sphere    *Sphere
		expectErr bool
	}{
		{"valid", NewSphere(core.Vec3{}, 1, testMaterial), false},
		{"zero radius", NewSphere(core.Vec3{}, 0, testMaterial), true},
		{"negative radius", NewSphere(core.Vec3{}, -1, testMaterial), true},
		{"NaN radius", NewSphere(core.Vec3{}, math.NaN(), testMaterial), true},
		{"bad material", NewSphere(core.Vec3{}, 1, material.NewMatte(core.NewVec3(-1, 0, 0))), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sphere.Validate()
			if (err != nil) != tt.expectErr {
				t.Errorf("Expected error=%t, got %v", tt.expectErr, err)
			}
		})
	}
}
