// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import (
	"log/slog"

	"cogentcore.org/core/math32"
	"cogentcore.org/cubesnap/physics"
)

// Constraint pins its body to a source body on every world step.
type Constraint struct {
	body     *Body
	source   *Body
	weight   float32
	trans    math32.Vector3
	rot      math32.Vector3
	rotQuat  math32.Quat
	isActive bool
}

var _ physics.Constraint = (*Constraint)(nil)

func (c *Constraint) SetSource(src physics.Body, weight float32) {
	sb, ok := src.(*Body)
	if !ok || sb == nil {
		slog.Error("world.Constraint.SetSource: source is not a world body", "body", c.body.name)
		return
	}
	if sb == c.body {
		slog.Error("world.Constraint.SetSource: body cannot constrain itself", "body", c.body.name)
		return
	}
	c.source = sb
	c.weight = math32.Clamp(weight, 0, 1)
}

func (c *Constraint) Source() physics.Body {
	if c.source == nil {
		return nil
	}
	return c.source
}

func (c *Constraint) RemoveSource() {
	c.source = nil
	c.isActive = false
}

func (c *Constraint) SetTranslationOffset(off math32.Vector3) { c.trans = off }

// TranslationOffset returns the position offset in the source frame.
func (c *Constraint) TranslationOffset() math32.Vector3 { return c.trans }

func (c *Constraint) SetRotationOffset(euler math32.Vector3) {
	c.rot = euler
	c.rotQuat.SetFromEuler(euler.MulScalar(math32.DegToRadFactor))
}

// RotationOffset returns the rotation offset as Euler angles in degrees.
func (c *Constraint) RotationOffset() math32.Vector3 { return c.rot }

func (c *Constraint) SetActive(on bool) { c.isActive = on }

func (c *Constraint) Active() bool { return c.isActive && c.source != nil }

// Target returns the world pose the constraint drives its body to
// at full weight.
func (c *Constraint) Target() physics.Pose {
	sp := c.source.Pose()
	pos := sp.Pos.Add(sp.Quat.MulVector(c.trans))
	rq := c.rotQuat
	if rq.IsNil() {
		rq.SetIdentity()
	}
	return physics.NewPose(pos, sp.Quat.Mul(rq))
}

func (c *Constraint) apply() {
	if !c.Active() || c.weight == 0 {
		return
	}
	tp := c.Target()
	if c.weight < 1 {
		cp := c.body.Pose()
		tp.Pos = cp.Pos.Lerp(tp.Pos, c.weight)
		q := cp.Quat
		q.Slerp(tp.Quat, c.weight)
		tp.Quat = q
	}
	c.body.MoveTo(tp.Pos, tp.Quat)
	c.body.ResetVelocity()
}
