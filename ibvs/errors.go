package ibvs

import "github.com/pkg/errors"

var (
	// ErrConfig indicates an invalid configuration: unknown mode token,
	// non-positive point count or a gain/point list of the wrong length.
	ErrConfig = errors.New("ibvs: invalid configuration")
	// ErrDomain indicates a point outside the numeric domain required by the
	// active interaction mode, e.g. a missing or non-positive depth.
	ErrDomain = errors.New("ibvs: point outside numeric domain")
	// ErrState indicates an operation invoked before its prerequisite state
	// was established, e.g. velocities before the interaction matrix.
	ErrState = errors.New("ibvs: prerequisite state missing")
)
