package activate

import "math"

// Vec2 is a 2D point or offset.
type Vec2 struct {
	X, Y float64
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// InverseDistance builds a Score function that rates index i by 1/dist(i)
// when dist(i) is within maxDist and by 0 (not admitted) otherwise. A
// distance of zero scores +Inf, ahead of everything else.
func InverseDistance(maxDist float64, dist func(i int) float64) func(i int) float64 {
	return func(i int) float64 {
		d := dist(i)
		if math.IsNaN(d) || d > maxDist {
			return 0
		}
		return 1 / d
	}
}

// Nearest scores points by inverse distance to *focus. The focus is read on
// every call, so moving it between updates moves the active set with it.
func Nearest(points []Vec2, focus *Vec2, maxDist float64) func(i int) float64 {
	return InverseDistance(maxDist, func(i int) float64 {
		return points[i].Dist(*focus)
	})
}
