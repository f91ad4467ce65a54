// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"math"

	"cogentcore.org/core/math32"
)

// State contains the basic physical state of a body: position,
// orientation and velocities. Position and orientation are relative
// to the parent frame when the body is parented.
type State struct {

	// position of center of mass of object
	Pos math32.Vector3

	// rotation specified as a Quat
	Quat math32.Quat

	// linear velocity
	LinVel math32.Vector3

	// angular velocity
	AngVel math32.Vector3
}

// Defaults sets defaults only if current values are nil
func (ps *State) Defaults() {
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

// Pose returns the position and rotation as a unit-scale [Pose].
func (ps *State) Pose() Pose {
	return NewPose(ps.Pos, ps.Quat)
}

// ResetVelocity zeroes the linear and angular velocities.
func (ps *State) ResetVelocity() {
	ps.LinVel = math32.Vector3{}
	ps.AngVel = math32.Vector3{}
}

// AtRest returns true if both velocities are zero.
func (ps *State) AtRest() bool {
	return ps.LinVel == (math32.Vector3{}) && ps.AngVel == (math32.Vector3{})
}

//////// 	State updates

// AngMotionMax is maximum angular motion that can be taken per update
const AngMotionMax = math.Pi / 4

// StepByAngVel steps the Quat rotation from angular velocity
func (ps *State) StepByAngVel(step float32) {
	ang := math32.Sqrt(ps.AngVel.Dot(ps.AngVel))
	if ang == 0 {
		return
	}

	// limit the angular motion
	if ang*step > AngMotionMax {
		ang = AngMotionMax / step
	}
	axis := ps.AngVel.DivScalar(math32.Sqrt(ps.AngVel.Dot(ps.AngVel)))
	var dq math32.Quat
	dq.SetFromAxisAngle(axis, ang*step)
	ps.Quat = dq.Mul(ps.Quat)
	ps.Quat.Normalize()
}

// StepByLinVel steps the Pos from the linear velocity
func (ps *State) StepByLinVel(step float32) {
	ps.Pos = ps.Pos.Add(ps.LinVel.MulScalar(step))
}

// Step steps both position and rotation by the current velocities.
func (ps *State) Step(step float32) {
	ps.StepByLinVel(step)
	ps.StepByAngVel(step)
}

// EulerRotation returns the current rotation in Euler angles (degrees).
func (ps *State) EulerRotation() math32.Vector3 {
	return ps.Quat.ToEuler().MulScalar(math32.RadToDegFactor)
}
