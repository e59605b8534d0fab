// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package labels

import "testing"

func TestAABBIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b AABB
		want bool
	}{
		{"overlapping", AABB{0, 0, 10, 10, 0}, AABB{5, 5, 15, 15, 0}, true},
		{"touching edge", AABB{0, 0, 10, 10, 0}, AABB{10, 0, 20, 10, 0}, true},
		{"disjoint", AABB{0, 0, 10, 10, 0}, AABB{20, 20, 30, 30, 0}, false},
		{"contained", AABB{0, 0, 100, 100, 0}, AABB{10, 10, 20, 20, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("Intersects() (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOBBIntersectAxisAligned(t *testing.T) {
	a := NewOBB(Vec2{0, 0}, Vec2{1, 0}, 10, 5)
	b := NewOBB(Vec2{15, 0}, Vec2{1, 0}, 10, 5)
	if !Intersect(a, b) {
		t.Error("expected overlapping axis-aligned boxes to intersect")
	}

	c := NewOBB(Vec2{100, 100}, Vec2{1, 0}, 10, 5)
	if Intersect(a, c) {
		t.Error("expected far-apart boxes not to intersect")
	}
}

func TestOBBIntersectRotated(t *testing.T) {
	// A box rotated 45 degrees straddling the origin, and an axis-aligned
	// box positioned so it only overlaps the rotated box's corner region
	// once the rotation is accounted for.
	diag := Vec2{0.70710678, 0.70710678}
	rotated := NewOBB(Vec2{0, 0}, diag, 10, 10)
	probe := NewOBB(Vec2{13, 0}, Vec2{1, 0}, 2, 2)

	if !Intersect(rotated, probe) {
		t.Error("expected probe within the rotated box's diagonal extent to intersect")
	}

	farProbe := NewOBB(Vec2{13, 13}, Vec2{1, 0}, 1, 1)
	if Intersect(rotated, farProbe) {
		t.Error("expected probe outside the rotated box's corner to miss")
	}
}

func TestOBBExtentMatchesCorners(t *testing.T) {
	o := NewOBB(Vec2{10, 10}, Vec2{0, 1}, 5, 2)
	ext := o.Extent()

	// Rotated 90 degrees: half-width becomes the vertical extent and vice
	// versa.
	if ext.MinX != 8 || ext.MaxX != 12 {
		t.Errorf("unexpected X extent: [%v, %v]", ext.MinX, ext.MaxX)
	}
	if ext.MinY != 5 || ext.MaxY != 15 {
		t.Errorf("unexpected Y extent: [%v, %v]", ext.MinY, ext.MaxY)
	}
}

func TestRotateBy(t *testing.T) {
	// Rotating (1,0) by (0,1) (a 90 degree rotation encoded as cos=0,
	// -sin=1) should yield (0,1).
	got := RotateBy(Vec2{1, 0}, Vec2{0, 1})
	if !almostEqual(got.X, 0) || !almostEqual(got.Y, 1) {
		t.Errorf("RotateBy = %+v, want (0,1)", got)
	}
}

func almostEqual(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-5
}
