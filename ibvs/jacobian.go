package ibvs

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// jacobianRows returns the canonical 2x6 point-feature image Jacobian of a
// pinhole camera for one normalized point, columns ordered
// (vx, vy, vz, wx, wy, wz):
//
//	row_x = [-1/Z, 0, x/Z, x*y, -(1+x^2), y]
//	row_y = [0, -1/Z, y/Z, 1+y^2, -x*y, -x]
func jacobianRows(p Point) (*mat.Dense, error) {
	z, ok := p.Depth()
	if !ok {
		return nil, errors.Wrap(ErrDomain, "depth is required but absent")
	}
	if !isFinite(z) || z <= 0 {
		return nil, errors.Wrapf(ErrDomain, "depth must be positive and finite, got %f", z)
	}
	x := p.X
	y := p.Y
	return mat.NewDense(2, 6, []float64{
		-1.0 / z, 0, x / z, x * y, -(1 + x*x), y,
		0, -1.0 / z, y / z, 1 + y*y, -x * y, -x,
	}), nil
}

// interactionMatrix stacks the column-restricted Jacobian rows of every point
// in order into the 2p x d interaction matrix: the 2xd block of point i
// occupies rows 2i and 2i+1.
func interactionMatrix(pts []Point, cols []int) (*mat.Dense, error) {
	l := mat.NewDense(2*len(pts), len(cols), nil)
	for i, p := range pts {
		rows, err := jacobianRows(p)
		if err != nil {
			return nil, errors.Wrapf(err, "can't evaluate Jacobian for point %d", i)
		}
		for j, c := range cols {
			l.Set(2*i, j, rows.At(0, c))
			l.Set(2*i+1, j, rows.At(1, c))
		}
	}
	return l, nil
}
