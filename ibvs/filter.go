package ibvs

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

/* Kalman filter props for normalized image coordinates */
const (
	// No commanded acceleration: the features drift with the camera, nothing forces them
	smootherUX = 0.0
	smootherUY = 0.0
	// Process/measurement noise tuned for coordinates in (-1.0, 1.0)
	smootherStdDevA = 0.5
	smootherStdDevM = 0.05
)

// smootherChannel is one constant-velocity Kalman channel for a single
// tracked feature.
type smootherChannel struct {
	id      uuid.UUID
	tracker *kalman_filter.Kalman2D
}

// PointSmoother de-noises the per-cycle current point measurements fed into
// a Controller. It keeps one Kalman channel per tracked feature, correlated
// by index with the controller's point sets, and smooths the normalized x/y
// coordinates across cycles. Depth values pass through untouched.
//
// Channels are primed from the first measurement set; the first call returns
// its input unchanged. Smoothing is optional: callers with clean measurements
// can feed the controller directly.
type PointSmoother struct {
	numPts   int
	dt       float64
	channels []*smootherChannel
}

// NewPointSmoother creates a smoother for numPts features sampled every dt
// seconds (the control-loop tick period).
func NewPointSmoother(numPts int, dt float64) (*PointSmoother, error) {
	if numPts <= 0 {
		return nil, errors.Wrapf(ErrConfig, "number of points must be positive, got %d", numPts)
	}
	if dt <= 0 {
		return nil, errors.Wrapf(ErrConfig, "tick period must be positive, got %f", dt)
	}
	return &PointSmoother{
		numPts: numPts,
		dt:     dt,
	}, nil
}

// Smooth runs one predict/update cycle per feature and returns the point set
// with smoothed coordinates. The input is never modified.
func (s *PointSmoother) Smooth(pts []Point) ([]Point, error) {
	if len(pts) != s.numPts {
		return nil, errors.Wrapf(ErrConfig, "need %d points, got %d", s.numPts, len(pts))
	}
	if err := validatePoints(pts, false); err != nil {
		return nil, errors.Wrap(err, "can't smooth points")
	}
	if s.channels == nil {
		s.prime(pts)
		return append(pts[:0:0], pts...), nil
	}

	out := make([]Point, len(pts))
	for i, p := range pts {
		channel := s.channels[i]
		channel.tracker.Predict()
		err := channel.tracker.Update(p.X, p.Y)
		if err != nil {
			return nil, errors.Wrapf(err, "can't update smoother channel %s", channel.id.String())
		}
		stateX, stateY := channel.tracker.GetState()
		out[i] = p
		out[i].X = stateX
		out[i].Y = stateY
	}
	return out, nil
}

// prime creates the per-feature channels with the first measurements as
// initial state.
func (s *PointSmoother) prime(pts []Point) {
	s.channels = make([]*smootherChannel, len(pts))
	for i, p := range pts {
		kf := kalman_filter.NewKalman2D(s.dt, smootherUX, smootherUY, smootherStdDevA, smootherStdDevM, smootherStdDevM,
			kalman_filter.WithState2D(p.X, p.Y))
		s.channels[i] = &smootherChannel{
			id:      uuid.New(),
			tracker: kf,
		}
	}
}

// ChannelIDs returns the identifiers of the per-feature channels, in point
// order. Empty until the first Smooth call primes the channels.
func (s *PointSmoother) ChannelIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(s.channels))
	for i, channel := range s.channels {
		ids[i] = channel.id
	}
	return ids
}

// Reset drops all channels so the next Smooth call primes them again, e.g.
// after the tracked features were re-acquired.
func (s *PointSmoother) Reset() {
	s.channels = nil
}
