package graph

import "testing"

func TestValueScalarVectorViews(t *testing.T) {
	s := Scalar(2.5)
	if s.Float() != 2.5 {
		t.Errorf("Float = %v, want 2.5", s.Float())
	}
	if s.IsVector() {
		t.Error("scalar reports IsVector")
	}
	// Scalars broadcast to all three components.
	if got := s.Vec3(); got != (Vec3{X: 2.5, Y: 2.5, Z: 2.5}) {
		t.Errorf("Vec3 = %+v, want (2.5, 2.5, 2.5)", got)
	}

	v := Vector(1, 2, 3)
	if !v.IsVector() {
		t.Error("vector reports !IsVector")
	}
	if got := v.Vec3(); got != (Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Vec3 = %+v, want (1, 2, 3)", got)
	}
	// Vector→scalar wiring reads the X component.
	if v.Float() != 1 {
		t.Errorf("Float = %v, want 1", v.Float())
	}
}

func TestValueZeroIsNeutral(t *testing.T) {
	var zero Value
	if zero.Float() != 0 || zero.Vec3() != (Vec3{}) || zero.High() {
		t.Errorf("zero Value is not neutral: %v %v %v", zero.Float(), zero.Vec3(), zero.High())
	}
}

func TestValueHigh(t *testing.T) {
	cases := []struct {
		in   float64
		want bool
	}{
		{0, false},
		{0.49, false},
		{0.5, true},
		{1, true},
	}
	for _, tc := range cases {
		if got := Scalar(tc.in).High(); got != tc.want {
			t.Errorf("High(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
