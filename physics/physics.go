// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package physics defines the contracts between the snapping mechanic
and the physics / scene engine: rigid bodies, trigger regions, the
container frame, parent constraints and collision filtering, along with
the [Pose] and [State] value types shared by all implementations.

The mechanic never integrates motion or detects collisions itself: it
only sets kinematic flags, velocities, poses, parents and constraints,
and consumes trigger overlap events. See package world for a headless
in-memory implementation.
*/
package physics

import "cogentcore.org/core/math32"

// Body is a rigid body handle, owned by the physics engine.
type Body interface {

	// Name returns the unique name of the body.
	Name() string

	// Pose returns the world pose of the body.
	Pose() Pose

	// LocalPos returns the position relative to the parent frame,
	// or the world position when the body has no parent.
	LocalPos() math32.Vector3

	// MoveTo moves the body to the given world position and rotation,
	// preserving physical continuity.
	MoveTo(pos math32.Vector3, quat math32.Quat)

	// SetKinematic sets whether the body is driven by the engine (false)
	// or only moved explicitly (true).
	SetKinematic(on bool)

	// Kinematic returns whether the body is kinematic.
	Kinematic() bool

	// ResetVelocity zeroes the linear and angular velocity.
	ResetVelocity()

	// Velocity returns the linear and angular velocity.
	Velocity() (lin, ang math32.Vector3)

	// SetColliderEnabled enables or disables the main (solid) collider.
	SetColliderEnabled(on bool)

	// ColliderEnabled returns whether the main collider is enabled.
	ColliderEnabled() bool

	// SetParent parents the body under the given frame, or to the world
	// for a nil frame, preserving its world pose.
	SetParent(fr Frame)

	// Parent returns the current parent frame, nil for the world.
	Parent() Frame

	// Constraint returns the parent constraint component of the body.
	Constraint() Constraint
}

// Trigger is a non-solid overlap region attached to a body.
// The engine reports overlap begin and end between enabled triggers.
type Trigger interface {

	// ID returns the unique identity of the trigger collider.
	ID() string

	// SetEnabled enables or disables overlap detection.
	SetEnabled(on bool)

	// Enabled returns whether overlap detection is enabled.
	Enabled() bool
}

// Frame is a scene node that bodies can be parented under, with
// a non-uniform scale. The container is a Frame.
type Frame interface {

	// Name returns the name of the frame.
	Name() string

	// Pose returns the world pose of the frame, including scale.
	Pose() Pose

	// SetPose sets the world position and rotation. Children move along.
	SetPose(pos math32.Vector3, quat math32.Quat)

	// SetScale sets the local scale. Children scale along.
	SetScale(sc math32.Vector3)

	// SetActive toggles participation in the scene: visibility,
	// grabbing and collision.
	SetActive(on bool)

	// Active returns whether the frame participates in the scene.
	Active() bool

	// SetVisible toggles only the visual representation.
	SetVisible(on bool)

	// Visible returns whether the frame is visible.
	Visible() bool
}

// Constraint pins a body to a source body with translation and
// rotation offsets expressed in the source frame.
type Constraint interface {

	// SetSource sets the source body with the given weight.
	SetSource(src Body, weight float32)

	// Source returns the source body, nil if none.
	Source() Body

	// RemoveSource removes the source, deactivating the constraint.
	RemoveSource()

	// SetTranslationOffset sets the position offset in the source frame.
	SetTranslationOffset(off math32.Vector3)

	// SetRotationOffset sets the rotation offset as Euler angles in degrees.
	SetRotationOffset(euler math32.Vector3)

	// SetActive activates or deactivates the constraint.
	SetActive(on bool)

	// Active returns whether the constraint is active.
	Active() bool
}

// Collisions controls pairwise collision filtering.
type Collisions interface {

	// IgnoreCollision sets whether collisions between the two bodies
	// (including all of their colliders) are ignored.
	IgnoreCollision(a, b Body, ignore bool)
}
