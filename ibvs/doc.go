// Package ibvs implements an image-based visual servoing controller: a
// feedback law that converts the error between current and desired positions
// of tracked image points into a camera velocity command.
//
// # Camera frame
//
// The camera frame is assumed to be: origin at the center of the image,
// +x to the right, +y downwards and +z into the image. All output velocities
// are relative to this frame (a positive x velocity means move right).
// Mapping the command into a robot frame is the caller's concern.
//
// # Point format
//
// Points are given in normalized image coordinates, x and y in the open
// interval (-1.0, 1.0), with an optional metric depth along the optical axis.
// Depth is required only on the point set(s) the chosen interaction mode
// consumes. The point sets are ordered: index i of the current set must be
// the same physical feature as index i of the desired set.
//
// # Controller loop
//
// Construct the controller once with a control mode, an interaction mode and
// the number of points, then per tick:
//
//	controller, _ := ibvs.NewController(ibvs.ControlMode2XZ, ibvs.InteractionModeCurrent, 2)
//	controller.SetLambda([]float64{2.0, 5.0})
//	controller.SetDesiredPoints(desired)
//	for {
//		controller.SetCurrentPoints(current)
//		if norm, _ := controller.ErrorNorm(); norm < 0.1 {
//			break
//		}
//		controller.CalculateInteractionMatrix()
//		vels, _ := controller.CalculateVelocities()
//		// apply vels to the robot (mind the frame conversion)
//	}
//
// The velocity vector is ordered per the control mode, e.g. (vx, vz) for
// ControlMode2XZ.
package ibvs
