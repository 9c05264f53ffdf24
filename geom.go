package sparsegrid

// Vec2 is a 2D point in world coordinates.
type Vec2 struct {
	X float64
	Y float64
}

// AABB is an axis-aligned bounding box defined by its min and max corners.
// A zero-area box (Min == Max) is valid and behaves like a point.
type AABB struct {
	Min Vec2
	Max Vec2
}

// AABBAround returns the box extending half units out from center on both axes
func AABBAround(center Vec2, half float64) AABB {
	return AABB{
		Min: Vec2{X: center.X - half, Y: center.Y - half},
		Max: Vec2{X: center.X + half, Y: center.Y + half},
	}
}

// Contains reports whether p lies inside the box (edges inclusive)
func (b AABB) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Overlaps reports whether the two boxes share any area or edge
func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y
}

// inverted reports whether max is less than min on either axis
func (b AABB) inverted() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y
}
