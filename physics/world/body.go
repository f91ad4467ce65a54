// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import (
	"log/slog"

	"cogentcore.org/core/math32"
	"cogentcore.org/cubesnap/physics"
)

// Body is a box-shaped rigid body. Its State is relative to the
// parent frame when parented, and in world coordinates otherwise.
type Body struct {

	// State is the physical state of the body.
	State physics.State

	name      string
	world     *World
	size      math32.Vector3
	kinematic bool
	collider  bool
	parent    *Frame
	triggers  []*Trigger

	constraint *Constraint
}

var _ physics.Body = (*Body)(nil)

// NewBody adds a new dynamic body with the given unique name and
// full box size, at the origin with no rotation.
func (w *World) NewBody(name string, size math32.Vector3) *Body {
	if w.BodyByName(name) != nil {
		slog.Error("world.NewBody: duplicate body name", "name", name)
	}
	b := &Body{name: name, world: w, size: size, collider: true}
	b.State.Defaults()
	b.constraint = &Constraint{body: b}
	w.bodies = append(w.bodies, b)
	return b
}

func (b *Body) Name() string { return b.name }

// Size returns the full box size of the body.
func (b *Body) Size() math32.Vector3 { return b.size }

// Pose returns the world pose of the body. Bodies always have unit
// scale: the scale of a parent frame does not propagate to them.
func (b *Body) Pose() physics.Pose {
	local := b.State.Pose()
	if b.parent == nil {
		return local
	}
	fp := b.parent.placement()
	return fp.Compose(local)
}

func (b *Body) LocalPos() math32.Vector3 { return b.State.Pos }

func (b *Body) MoveTo(pos math32.Vector3, quat math32.Quat) {
	if b.parent == nil {
		b.State.Pos = pos
		b.State.Quat = quat
		return
	}
	fp := b.parent.placement()
	local := fp.Relative(physics.NewPose(pos, quat))
	b.State.Pos = local.Pos
	b.State.Quat = local.Quat
}

func (b *Body) SetKinematic(on bool) { b.kinematic = on }

func (b *Body) Kinematic() bool { return b.kinematic }

func (b *Body) ResetVelocity() { b.State.ResetVelocity() }

// SetVelocity sets the linear and angular velocity.
func (b *Body) SetVelocity(lin, ang math32.Vector3) {
	b.State.LinVel = lin
	b.State.AngVel = ang
}

func (b *Body) Velocity() (lin, ang math32.Vector3) {
	return b.State.LinVel, b.State.AngVel
}

func (b *Body) SetColliderEnabled(on bool) { b.collider = on }

func (b *Body) ColliderEnabled() bool { return b.collider }

func (b *Body) SetParent(fr physics.Frame) {
	wp := b.Pose()
	var nf *Frame
	if fr != nil {
		f, ok := fr.(*Frame)
		if !ok {
			slog.Error("world.Body.SetParent: frame is not a world frame", "body", b.name)
			return
		}
		nf = f
	}
	b.parent = nf
	b.MoveTo(wp.Pos, wp.Quat)
}

func (b *Body) Parent() physics.Frame {
	if b.parent == nil {
		return nil
	}
	return b.parent
}

func (b *Body) Constraint() physics.Constraint { return b.constraint }

// Triggers returns the triggers attached to the body.
func (b *Body) Triggers() []*Trigger { return b.triggers }

// BBox returns the world-space bounding box of the body.
func (b *Body) BBox() math32.Box3 {
	ps := b.Pose()
	hs := b.size.MulScalar(0.5)
	bb := math32.Box3{Min: hs.Negate(), Max: hs}
	return bb.MulQuat(ps.Quat).Translate(ps.Pos)
}
