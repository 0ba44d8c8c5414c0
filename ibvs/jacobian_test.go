package ibvs

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestJacobianRowsClosedForm(t *testing.T) {
	cases := []struct {
		x, y, z float64
	}{
		{0.0, 0.0, 1.0},
		{-0.5, -0.5, 1.0},
		{0.2, -0.2, 5.0},
		{0.75, 0.5, 2.0},
	}
	tolerance := 1e-12
	for _, c := range cases {
		rows, err := jacobianRows(Pt(c.x, c.y, c.z))
		if err != nil {
			t.Errorf("unexpected error for (%f, %f, %f): %v", c.x, c.y, c.z, err)
			continue
		}
		wantX := []float64{-1.0 / c.z, 0, c.x / c.z, c.x * c.y, -(1 + c.x*c.x), c.y}
		wantY := []float64{0, -1.0 / c.z, c.y / c.z, 1 + c.y*c.y, -c.x * c.y, -c.x}
		for j := 0; j < 6; j++ {
			if math.Abs(rows.At(0, j)-wantX[j]) > tolerance {
				t.Errorf("row_x[%d] for (%f, %f, %f): got %f, want %f", j, c.x, c.y, c.z, rows.At(0, j), wantX[j])
			}
			if math.Abs(rows.At(1, j)-wantY[j]) > tolerance {
				t.Errorf("row_y[%d] for (%f, %f, %f): got %f, want %f", j, c.x, c.y, c.z, rows.At(1, j), wantY[j])
			}
		}
	}
}

func TestJacobianRowsDepthDomain(t *testing.T) {
	badPoints := []Point{
		PtXY(0.1, 0.1),
		Pt(0.1, 0.1, 0.0),
		Pt(0.1, 0.1, -2.0),
		Pt(0.1, 0.1, math.NaN()),
		Pt(0.1, 0.1, math.Inf(1)),
	}
	for i, p := range badPoints {
		_, err := jacobianRows(p)
		if !errors.Is(err, ErrDomain) {
			t.Errorf("point %d: expected domain error, got %v", i, err)
		}
	}
}

func TestInteractionMatrixStacking(t *testing.T) {
	pts := []Point{
		Pt(-0.2, -0.2, 5.0),
		Pt(0.2, 0.2, 5.0),
	}
	l, err := interactionMatrix(pts, ControlMode2XZ.Columns())
	if err != nil {
		t.Fatal(err)
	}
	rows, cols := l.Dims()
	if rows != 4 || cols != 2 {
		t.Fatalf("incorrect dimensions: %d x %d, expected 4 x 2", rows, cols)
	}
	// Per point: row_x restricted to (vx, vz) is [-1/z, x/z], row_y is [0, y/z].
	want := [][]float64{
		{-0.2, -0.04},
		{0.0, -0.04},
		{-0.2, 0.04},
		{0.0, 0.04},
	}
	tolerance := 1e-12
	for i := range want {
		for j := range want[i] {
			if math.Abs(l.At(i, j)-want[i][j]) > tolerance {
				t.Errorf("L[%d][%d]: got %f, want %f", i, j, l.At(i, j), want[i][j])
			}
		}
	}
}

func TestInteractionMatrixColumnOrder(t *testing.T) {
	pts := []Point{Pt(0.5, -0.25, 2.0)}
	l, err := interactionMatrix(pts, ControlMode2ZY.Columns())
	if err != nil {
		t.Fatal(err)
	}
	// (vz, wy) columns: row_x = [x/z, -(1+x^2)], row_y = [y/z, -x*y].
	want := [][]float64{
		{0.25, -1.25},
		{-0.125, 0.125},
	}
	tolerance := 1e-12
	for i := range want {
		for j := range want[i] {
			if math.Abs(l.At(i, j)-want[i][j]) > tolerance {
				t.Errorf("L[%d][%d]: got %f, want %f", i, j, l.At(i, j), want[i][j])
			}
		}
	}
}

func TestInteractionMatrixPropagatesDepthError(t *testing.T) {
	pts := []Point{
		Pt(-0.2, -0.2, 5.0),
		PtXY(0.2, 0.2),
	}
	_, err := interactionMatrix(pts, ControlMode2XZ.Columns())
	if !errors.Is(err, ErrDomain) {
		t.Errorf("expected domain error for missing depth, got %v", err)
	}
}
