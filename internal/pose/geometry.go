package pose

import "math"

// AngleAt computes the angle in degrees at vertex b formed by the rays b->a
// and b->c, using the difference of atan2 bearings. The result is always in
// [0, 180]; values above 180 are folded back. Working in angles rather than
// raw coordinates keeps joint flexion invariant to camera rotation and scale.
func AngleAt(a, b, c Landmark) float64 {
	rad := math.Atan2(c.Y-b.Y, c.X-b.X) - math.Atan2(a.Y-b.Y, a.X-b.X)
	deg := math.Abs(rad * 180 / math.Pi)
	if deg > 180 {
		deg = 360 - deg
	}
	return deg
}
