package ibvs

// ControlMode selects which camera velocity components the controller drives.
type ControlMode string

const (
	// ControlMode2XZ drives two degrees of freedom: x velocity and z velocity
	ControlMode2XZ ControlMode = "2xz"
	// ControlMode2ZY drives two degrees of freedom: z velocity and y angular velocity
	ControlMode2ZY ControlMode = "2zy"
	// ControlMode4XYZY drives four degrees of freedom: x, y and z velocities and y angular velocity
	ControlMode4XYZY ControlMode = "4xyzy"
)

// Canonical velocity column indices of the full 2x6 image Jacobian,
// ordered (vx, vy, vz, wx, wy, wz).
const (
	colVX = iota
	colVY
	colVZ
	colWX
	colWY
	colWZ
)

// Columns returns the ordered canonical Jacobian column indices exposed by
// the mode. The order defines the order of the output velocity vector.
// Returns nil for an unknown mode.
func (m ControlMode) Columns() []int {
	switch m {
	case ControlMode2XZ:
		return []int{colVX, colVZ}
	case ControlMode2ZY:
		return []int{colVZ, colWY}
	case ControlMode4XYZY:
		return []int{colVX, colVY, colVZ, colWY}
	}
	return nil
}

// DOF returns the number of degrees of freedom exposed by the mode.
func (m ControlMode) DOF() int {
	return len(m.Columns())
}

func (m ControlMode) valid() bool {
	return m.Columns() != nil
}

// InteractionMode selects which point set(s) parameterize the interaction
// matrix estimate used for control.
type InteractionMode string

const (
	// InteractionModeCurrent estimates from the current point positions only
	InteractionModeCurrent InteractionMode = "curr"
	// InteractionModeDesired estimates from the desired point positions only
	InteractionModeDesired InteractionMode = "desired"
	// InteractionModeMean estimates from the matrix average of the current-based and desired-based interaction matrices
	InteractionModeMean InteractionMode = "mean"
)

func (m InteractionMode) valid() bool {
	switch m {
	case InteractionModeCurrent, InteractionModeDesired, InteractionModeMean:
		return true
	}
	return false
}

// usesCurrentDepth reports whether the mode consumes depths of the current point set.
func (m InteractionMode) usesCurrentDepth() bool {
	return m == InteractionModeCurrent || m == InteractionModeMean
}

// usesDesiredDepth reports whether the mode consumes depths of the desired point set.
func (m InteractionMode) usesDesiredDepth() bool {
	return m == InteractionModeDesired || m == InteractionModeMean
}
