// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package labels

// Mat4 is a column-major 4x4 matrix, matching the MVP matrices tiles and
// markers provide. Camera/view matrix computation itself is out of
// scope; the engine only multiplies with matrices it is handed.
type Mat4 [16]float32

// MulVec4 multiplies the matrix by a homogeneous vector.
func (m Mat4) MulVec4(x, y, z, w float32) (rx, ry, rz, rw float32) {
	rx = m[0]*x + m[4]*y + m[8]*z + m[12]*w
	ry = m[1]*x + m[5]*y + m[9]*z + m[13]*w
	rz = m[2]*x + m[6]*y + m[10]*z + m[14]*w
	rw = m[3]*x + m[7]*y + m[11]*z + m[15]*w
	return
}

// WorldTransform holds the world-space (tile mercator) geometry a label
// is anchored to. Point labels use only P0; line labels use both P0 and
// P2 as the segment endpoints.
type WorldTransform struct {
	P0, P2 Vec2
}

// WorldToScreen performs the standard perspective divide and viewport
// scale. clipped is true when the point is behind the camera (w <= 0);
// callers must abort the label for this frame without changing its
// state when clipped (spec.md §4.2, §7).
func WorldToScreen(mvp Mat4, worldX, worldY float32, viewport Vec2) (screen Vec2, clipped bool) {
	cx, cy, _, cw := mvp.MulVec4(worldX, worldY, 0, 1)
	if cw <= 0 {
		return Vec2{}, true
	}
	ndcX := cx / cw
	ndcY := cy / cw
	screen = Vec2{
		X: (ndcX*0.5 + 0.5) * viewport.X,
		Y: (1 - (ndcY*0.5 + 0.5)) * viewport.Y,
	}
	return screen, false
}
