package ibvs

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Controller implements an image-based visual servoing (IBVS) control law.
// It drives a fixed set of tracked image points toward desired positions by
// estimating the interaction matrix between camera motion and point motion,
// pseudoinverting it and scaling the stacked point error by the feedback
// gains: vels = -lambda * pinv(L_est) * errs.
//
// The controller is a plain synchronous state holder meant to be driven once
// per control-loop tick by a single caller. It performs no I/O and spawns no
// goroutines; concurrent use of one instance requires external locking.
type Controller struct {
	controlMode     ControlMode
	interactionMode InteractionMode
	numPts          int

	lambda     *mat.DiagDense
	currPts    []Point
	desiredPts []Point

	// Derived state. errs is recomputed eagerly whenever a point set is
	// assigned and both sets are present; pinvEst and vels only on request.
	errs    *mat.VecDense
	pinvEst *mat.Dense
	vels    *mat.VecDense
}

// NewController creates a controller for the given control mode, interaction
// mode and number of points supplied per cycle. All three are fixed for the
// lifetime of the controller.
func NewController(controlMode ControlMode, interactionMode InteractionMode, numPts int) (*Controller, error) {
	if !controlMode.valid() {
		return nil, errors.Wrapf(ErrConfig, "'%s' is not a valid control mode", controlMode)
	}
	if !interactionMode.valid() {
		return nil, errors.Wrapf(ErrConfig, "'%s' is not a valid interaction mode", interactionMode)
	}
	if numPts <= 0 {
		return nil, errors.Wrapf(ErrConfig, "number of points must be positive, got %d", numPts)
	}
	return &Controller{
		controlMode:     controlMode,
		interactionMode: interactionMode,
		numPts:          numPts,
	}, nil
}

// ControlMode returns the fixed control mode of the controller.
func (c *Controller) ControlMode() ControlMode {
	return c.controlMode
}

// InteractionMode returns the fixed interaction mode of the controller.
func (c *Controller) InteractionMode() InteractionMode {
	return c.interactionMode
}

// DOF returns the number of velocity components the controller outputs.
func (c *Controller) DOF() int {
	return c.controlMode.DOF()
}

// NumPoints returns the fixed number of points supplied per cycle.
func (c *Controller) NumPoints() int {
	return c.numPts
}

// SetLambda sets the diagonal feedback gain matrix from the given scalars.
// One scalar per degree of freedom, in the control mode's velocity order.
func (c *Controller) SetLambda(lambdas []float64) error {
	d := c.DOF()
	if len(lambdas) != d {
		return errors.Wrapf(ErrConfig, "need %d lambda scalars, got %d", d, len(lambdas))
	}
	diag := make([]float64, d)
	copy(diag, lambdas)
	c.lambda = mat.NewDiagDense(d, diag)
	return nil
}

// SetCurrentPoints sets the current positions of the tracked points. Index i
// must refer to the same physical feature as index i of the desired set.
// Depth is validated only when the interaction mode consumes current depths.
// The error vector is recomputed when the desired set is already present.
func (c *Controller) SetCurrentPoints(pts []Point) error {
	if len(pts) != c.numPts {
		return errors.Wrapf(ErrConfig, "need %d current points, got %d", c.numPts, len(pts))
	}
	if err := validatePoints(pts, c.interactionMode.usesCurrentDepth()); err != nil {
		return errors.Wrap(err, "can't accept current points")
	}
	c.currPts = append(c.currPts[:0:0], pts...)
	if c.desiredPts != nil {
		c.recomputeErrs()
	}
	return nil
}

// SetDesiredPoints sets the target positions of the tracked points.
// Depth is validated only when the interaction mode consumes desired depths.
// The error vector is recomputed when the current set is already present.
func (c *Controller) SetDesiredPoints(pts []Point) error {
	if len(pts) != c.numPts {
		return errors.Wrapf(ErrConfig, "need %d desired points, got %d", c.numPts, len(pts))
	}
	if err := validatePoints(pts, c.interactionMode.usesDesiredDepth()); err != nil {
		return errors.Wrap(err, "can't accept desired points")
	}
	c.desiredPts = append(c.desiredPts[:0:0], pts...)
	if c.currPts != nil {
		c.recomputeErrs()
	}
	return nil
}

// recomputeErrs rebuilds the stacked 2p x 1 error vector
// (x_curr - x_desired, y_curr - y_desired) per point. Depths are ignored.
func (c *Controller) recomputeErrs() {
	errs := mat.NewVecDense(2*c.numPts, nil)
	for i := range c.currPts {
		errs.SetVec(2*i, c.currPts[i].X-c.desiredPts[i].X)
		errs.SetVec(2*i+1, c.currPts[i].Y-c.desiredPts[i].Y)
	}
	c.errs = errs
}

// Errs returns a copy of the stacked error vector. It fails until both point
// sets have been supplied.
func (c *Controller) Errs() ([]float64, error) {
	if c.errs == nil {
		return nil, errors.Wrap(ErrState, "error vector needs both current and desired points")
	}
	out := make([]float64, c.errs.Len())
	for i := range out {
		out[i] = c.errs.AtVec(i)
	}
	return out, nil
}

// ErrorNorm returns the Euclidean norm of the error vector, the usual
// caller-side convergence check. It fails until both point sets are present.
func (c *Controller) ErrorNorm() (float64, error) {
	if c.errs == nil {
		return 0, errors.Wrap(ErrState, "error vector needs both current and desired points")
	}
	return mat.Norm(c.errs, 2), nil
}

// CalculateInteractionMatrix computes the Moore-Penrose pseudoinverse of the
// interaction matrix estimate for this cycle, according to the interaction
// mode:
//
//	curr:    pinv(L built from the current points)
//	desired: pinv(L built from the desired points)
//	mean:    pinv(0.5 * (L_current + L_desired))
//
// Note the mean mode pseudoinverts the matrix average, not the other way
// around; the two differ for rank-deficient input.
func (c *Controller) CalculateInteractionMatrix() error {
	if c.currPts == nil || c.desiredPts == nil {
		return errors.Wrap(ErrState, "interaction matrix needs both current and desired points")
	}
	cols := c.controlMode.Columns()

	var est *mat.Dense
	switch c.interactionMode {
	case InteractionModeCurrent:
		l, err := interactionMatrix(c.currPts, cols)
		if err != nil {
			return errors.Wrap(err, "can't build interaction matrix from current points")
		}
		est = l
	case InteractionModeDesired:
		l, err := interactionMatrix(c.desiredPts, cols)
		if err != nil {
			return errors.Wrap(err, "can't build interaction matrix from desired points")
		}
		est = l
	case InteractionModeMean:
		l, err := interactionMatrix(c.currPts, cols)
		if err != nil {
			return errors.Wrap(err, "can't build interaction matrix from current points")
		}
		lDesired, err := interactionMatrix(c.desiredPts, cols)
		if err != nil {
			return errors.Wrap(err, "can't build interaction matrix from desired points")
		}
		est = mat.NewDense(2*c.numPts, len(cols), nil)
		est.Add(l, lDesired)
		est.Scale(0.5, est)
	}

	pinv, err := pseudoInverse(est)
	if err != nil {
		return errors.Wrap(err, "can't pseudoinvert interaction matrix estimate")
	}
	c.pinvEst = pinv
	return nil
}

// InteractionPinv returns a copy of the d x 2p pseudoinverse of the
// interaction matrix estimate. It fails until CalculateInteractionMatrix has
// completed at least once.
func (c *Controller) InteractionPinv() (*mat.Dense, error) {
	if c.pinvEst == nil {
		return nil, errors.Wrap(ErrState, "interaction matrix has not been calculated")
	}
	return mat.DenseCopyOf(c.pinvEst), nil
}

// CalculateVelocities computes the camera-frame velocity command
// vels = -lambda * pinv(L_est) * errs and returns it ordered per the control
// mode's velocity order. It fails until the gains, the interaction matrix
// estimate and the error vector are all available.
func (c *Controller) CalculateVelocities() ([]float64, error) {
	if c.lambda == nil {
		return nil, errors.Wrap(ErrState, "lambda matrix has not been set")
	}
	if c.pinvEst == nil {
		return nil, errors.Wrap(ErrState, "interaction matrix has not been calculated")
	}
	if c.errs == nil {
		return nil, errors.Wrap(ErrState, "error vector needs both current and desired points")
	}

	d := c.DOF()
	var le mat.VecDense
	le.MulVec(c.pinvEst, c.errs)
	vels := mat.NewVecDense(d, nil)
	vels.MulVec(c.lambda, &le)
	vels.ScaleVec(-1.0, vels)
	c.vels = vels

	out := make([]float64, d)
	for i := range out {
		out[i] = vels.AtVec(i)
	}
	return out, nil
}

// Velocities returns a copy of the last computed velocity command. It fails
// until CalculateVelocities has completed at least once.
func (c *Controller) Velocities() ([]float64, error) {
	if c.vels == nil {
		return nil, errors.Wrap(ErrState, "velocities have not been calculated")
	}
	out := make([]float64, c.vels.Len())
	for i := range out {
		out[i] = c.vels.AtVec(i)
	}
	return out, nil
}
