// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Pose contains the full specification of position, orientation and scale,
// relative to the parent element (or the world for root elements).
type Pose struct {

	// position of center of element
	Pos math32.Vector3

	// rotation specified as a Quat
	Quat math32.Quat

	// scale
	Scale math32.Vector3
}

// NewPose returns a pose at the given position and rotation, with unit scale.
func NewPose(pos math32.Vector3, quat math32.Quat) Pose {
	return Pose{Pos: pos, Quat: quat, Scale: math32.Vec3(1, 1, 1)}
}

// Identity returns a pose at the origin with no rotation and unit scale.
func Identity() Pose {
	ps := Pose{}
	ps.Defaults()
	return ps
}

// Defaults sets defaults only if current values are nil
func (ps *Pose) Defaults() {
	if ps.Scale == (math32.Vector3{}) {
		ps.Scale.Set(1, 1, 1)
	}
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

func (ps Pose) String() string {
	eu := ps.EulerRotation()
	return fmt.Sprintf("pos: (%.3g, %.3g, %.3g) rot: (%.3g, %.3g, %.3g) scale: (%.3g, %.3g, %.3g)",
		ps.Pos.X, ps.Pos.Y, ps.Pos.Z, eu.X, eu.Y, eu.Z, ps.Scale.X, ps.Scale.Y, ps.Scale.Z)
}

// SetEulerRotation sets the rotation in Euler angles (degrees).
func (ps *Pose) SetEulerRotation(x, y, z float32) {
	ps.Quat.SetFromEuler(math32.Vec3(x, y, z).MulScalar(math32.DegToRadFactor))
}

// EulerRotation returns the current rotation in Euler angles (degrees).
func (ps *Pose) EulerRotation() math32.Vector3 {
	return ps.Quat.ToEuler().MulScalar(math32.RadToDegFactor)
}

// MulPoint transforms a point from the local space of this pose
// into the parent space: scale, then rotate, then translate.
func (ps *Pose) MulPoint(local math32.Vector3) math32.Vector3 {
	return ps.Quat.MulVector(local.Mul(ps.Scale)).Add(ps.Pos)
}

// InversePoint transforms a point from the parent space
// into the local space of this pose. Zero scale components
// are treated as unit scale.
func (ps *Pose) InversePoint(pt math32.Vector3) math32.Vector3 {
	iq := ps.Quat.Inverse()
	lp := iq.MulVector(pt.Sub(ps.Pos))
	return lp.Div(safeScale(ps.Scale))
}

// Compose returns the pose in parent space of an element with the
// given local pose under this pose. Rotations compose exactly;
// scale is composed per component.
func (ps *Pose) Compose(local Pose) Pose {
	np := Pose{}
	np.Pos = ps.MulPoint(local.Pos)
	np.Quat = ps.Quat.Mul(local.Quat)
	np.Scale = local.Scale.Mul(ps.Scale)
	return np
}

// Relative returns the local pose, under this pose, of an element
// whose pose in parent space is given: the inverse of [Pose.Compose].
func (ps *Pose) Relative(world Pose) Pose {
	np := Pose{}
	np.Pos = ps.InversePoint(world.Pos)
	iq := ps.Quat.Inverse()
	np.Quat = iq.Mul(world.Quat)
	np.Scale = world.Scale.Div(safeScale(ps.Scale))
	return np
}

func safeScale(sc math32.Vector3) math32.Vector3 {
	if sc.X == 0 {
		sc.X = 1
	}
	if sc.Y == 0 {
		sc.Y = 1
	}
	if sc.Z == 0 {
		sc.Z = 1
	}
	return sc
}
