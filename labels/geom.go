// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package labels

import "math"

// Vec2 is a 2D screen-space vector or point. Labels work entirely in
// float32 screen space, matching the precision of the GPU vertex data
// they ultimately feed.
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Y + w.Y} }

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Y - w.Y} }

// Scale returns the vector scaled by s.
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Length2 returns the squared length of the vector. Preferred over
// Length when only comparing magnitudes, to avoid a sqrt.
func (v Vec2) Length2() float32 { return v.X*v.X + v.Y*v.Y }

// Length returns the length of the vector.
func (v Vec2) Length() float32 { return float32(math.Sqrt(float64(v.Length2()))) }

// Distance2 returns the squared distance between two points.
func Distance2(a, b Vec2) float32 { return a.Sub(b).Length2() }

// RotateBy rotates v by the rotation encoded in rot, where rot is a unit
// vector (cos, -sin) as produced by the label's screen-space axis. This
// mirrors the original engine's convention: callers pass rotation as
// (rx, ry) such that RotateBy((x,y),(rx,ry)) = (x*rx - y*ry, x*ry + y*rx).
func RotateBy(v, rot Vec2) Vec2 {
	return Vec2{
		X: v.X*rot.X - v.Y*rot.Y,
		Y: v.X*rot.Y + v.Y*rot.X,
	}
}

// AABB is an axis-aligned bounding box with an opaque user tag, used as
// the broadphase extent stored in the spatial index. The tag holds the
// index of the OBB this extent was derived from.
type AABB struct {
	MinX, MinY, MaxX, MaxY float32
	Tag                    int
}

// Intersects reports whether two AABBs overlap.
func (a AABB) Intersects(b AABB) bool {
	return a.MinX <= b.MaxX && a.MaxX >= b.MinX &&
		a.MinY <= b.MaxY && a.MaxY >= b.MinY
}

// OBB is an oriented bounding box: a rectangle with arbitrary rotation,
// tested exactly via the Separating Axis Theorem. Corners and the
// axis-aligned extent are cached at construction time since both the
// resolver and the spatial index need them repeatedly within a frame.
type OBB struct {
	Center          Vec2
	AxisX           Vec2 // unit vector along the box's local X axis
	HalfW, HalfH    float32
	corners         [4]Vec2
	extent          AABB
}

// NewOBB builds an oriented bounding box centered at center, with local X
// axis axisX (a unit vector) and half-extents halfW/halfH along the local
// X/Y axes respectively. Corners and the AABB extent are computed eagerly
// since every OBB inserted into the arena is immediately tested or
// indexed.
func NewOBB(center, axisX Vec2, halfW, halfH float32) OBB {
	o := OBB{Center: center, AxisX: axisX, HalfW: halfW, HalfH: halfH}
	o.computeCorners()
	return o
}

// axisY returns the local Y axis, perpendicular to AxisX.
func (o OBB) axisY() Vec2 { return Vec2{-o.AxisX.Y, o.AxisX.X} }

func (o *OBB) computeCorners() {
	ax := o.AxisX.Scale(o.HalfW)
	ay := o.axisY().Scale(o.HalfH)

	o.corners[0] = o.Center.Sub(ax).Sub(ay)
	o.corners[1] = o.Center.Add(ax).Sub(ay)
	o.corners[2] = o.Center.Add(ax).Add(ay)
	o.corners[3] = o.Center.Sub(ax).Add(ay)

	minX, minY := o.corners[0].X, o.corners[0].Y
	maxX, maxY := minX, minY
	for _, c := range o.corners[1:] {
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
		maxX = max(maxX, c.X)
		maxY = max(maxY, c.Y)
	}
	o.extent = AABB{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// Quad returns the four corners of the box, in the order
// (bottom-left, bottom-right, top-right, top-left) relative to its local
// axes.
func (o OBB) Quad() [4]Vec2 { return o.corners }

// Extent returns the axis-aligned bounding box of the oriented box. It is
// the broadphase candidate inserted into and queried against the spatial
// index.
func (o OBB) Extent() AABB { return o.extent }

// Intersect performs an exact SAT test between two oriented boxes over
// the four candidate separating axes (the local X/Y axis of each box).
func Intersect(a, b OBB) bool {
	axes := [4]Vec2{a.AxisX, a.axisY(), b.AxisX, b.axisY()}
	for _, axis := range axes {
		if separatedOnAxis(a, b, axis) {
			return false
		}
	}
	return true
}

func separatedOnAxis(a, b OBB, axis Vec2) bool {
	aMin, aMax := projectOBB(a, axis)
	bMin, bMax := projectOBB(b, axis)
	return aMax < bMin || bMax < aMin
}

func projectOBB(o OBB, axis Vec2) (minP, maxP float32) {
	minP = dot(o.corners[0], axis)
	maxP = minP
	for _, c := range o.corners[1:] {
		p := dot(c, axis)
		minP = min(minP, p)
		maxP = max(maxP, p)
	}
	return
}

func dot(a, b Vec2) float32 { return a.X*b.X + a.Y*b.Y }
