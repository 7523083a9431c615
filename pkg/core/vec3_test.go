package core

import (
	"errors"
	"math"
	"testing"
)

func TestVec3_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		incoming Vec3
		normal   Vec3
		expected Vec3
	}{
		{
			name:     "Head-on reflection",
			incoming: NewVec3(0, 0, -1),
			normal:   NewVec3(0, 0, 1),
			expected: NewVec3(0, 0, 1),
		},
		{
			name:     "45 degree reflection",
			incoming: NewVec3(1, -1, 0),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(1, 1, 0),
		},
		{
			name:     "Grazing direction is unchanged",
			incoming: NewVec3(1, 0, 0),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.incoming.Reflect(tt.normal)

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0).Normalize()
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}

	zero := Vec3{}.Normalize()
	if !zero.IsZero() {
		t.Errorf("Expected zero vector to normalize to zero, got %v", zero)
	}
}

func TestVec3_ChannelPredicates(t *testing.T) {
	if !NewVec3(0, 0, 0).AllNonPositive() {
		t.Error("Expected black to be all non-positive")
	}
	if NewVec3(0, 0.1, 0).AllNonPositive() {
		t.Error("Expected (0,0.1,0) to have a positive channel")
	}
	if !NewVec3(0, -0.1, 1).AnyNegative() {
		t.Error("Expected negative channel to be detected")
	}
	if NewVec3(0, 0, 1).AnyNegative() {
		t.Error("Expected no negative channel")
	}
}

func TestVec3_MultiplyVec(t *testing.T) {
	result := NewVec3(1, 2, 3).MultiplyVec(NewVec3(0.5, 0, 2))
	expected := NewVec3(0.5, 0, 6)
	if result != expected {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -2))
	p := ray.At(2)
	if p != NewVec3(0, 0, 1) {
		t.Errorf("Expected (0,0,1), got %v", p)
	}
}

func TestRay_Validate(t *testing.T) {
	if err := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 0)).Validate(); !errors.Is(err, ErrZeroDirection) {
		t.Errorf("Expected ErrZeroDirection, got %v", err)
	}
	if err := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1)).Validate(); err != nil {
		t.Errorf("Expected valid ray, got %v", err)
	}
	if err := NewRay(NewVec3(math.NaN(), 0, 0), NewVec3(0, 0, 1)).Validate(); err == nil {
		t.Error("Expected NaN origin to be rejected")
	}
}
