package ibvs

import (
	"math"

	"github.com/pkg/errors"
)

// Point is a tracked image feature in normalized image coordinates.
// The camera frame convention is: origin at the image center, +x to the
// right, +y downwards, +z into the scene. X and Y are expected in the open
// interval (-1.0, 1.0). Depth is the metric distance along the optical axis
// and is optional: construct with Pt when the depth is known and with PtXY
// when it is not. A missing depth is tolerated only on the point set whose
// depths the active interaction mode does not consume.
type Point struct {
	X float64
	Y float64

	depth    float64
	hasDepth bool
}

// Pt creates a point with a known depth in meters.
func Pt(x, y, depth float64) Point {
	return Point{
		X:        x,
		Y:        y,
		depth:    depth,
		hasDepth: true,
	}
}

// PtXY creates a point with an unknown ("don't care") depth.
func PtXY(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

// Depth returns the metric depth of the point and whether it is present.
func (p Point) Depth() (float64, bool) {
	return p.depth, p.hasDepth
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// validatePoints checks a point set against the numeric domain. Depth
// presence and positivity are enforced only when needDepth is set.
func validatePoints(pts []Point, needDepth bool) error {
	for i, p := range pts {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return errors.Wrapf(ErrDomain, "point %d has non-finite coordinates (%f, %f)", i, p.X, p.Y)
		}
		if !needDepth {
			continue
		}
		z, ok := p.Depth()
		if !ok {
			return errors.Wrapf(ErrDomain, "point %d has no depth but the interaction mode requires it", i)
		}
		if !isFinite(z) || z <= 0 {
			return errors.Wrapf(ErrDomain, "point %d must have positive finite depth, got %f", i, z)
		}
	}
	return nil
}
