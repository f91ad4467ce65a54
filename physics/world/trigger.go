// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import (
	"log/slog"

	"cogentcore.org/core/math32"
	"cogentcore.org/cubesnap/physics"
)

// Trigger is a box-shaped overlap region attached to a body.
// Center and HalfSize are in units of the body size.
type Trigger struct {
	Center   math32.Vector3
	HalfSize math32.Vector3

	id      string
	body    *Body
	enabled bool
}

var _ physics.Trigger = (*Trigger)(nil)

// AddTrigger attaches a new enabled trigger with the given unique id.
func (b *Body) AddTrigger(id string, center, halfSize math32.Vector3) *Trigger {
	for _, t := range b.world.triggers {
		if t.id == id {
			slog.Error("world.AddTrigger: duplicate trigger id", "id", id)
		}
	}
	t := &Trigger{Center: center, HalfSize: halfSize, id: id, body: b, enabled: true}
	b.triggers = append(b.triggers, t)
	b.world.triggers = append(b.world.triggers, t)
	return t
}

func (t *Trigger) ID() string { return t.id }

// Body returns the body the trigger is attached to.
func (t *Trigger) Body() *Body { return t.body }

func (t *Trigger) SetEnabled(on bool) { t.enabled = on }

func (t *Trigger) Enabled() bool { return t.enabled }

// BBox returns the world-space bounding box of the trigger.
func (t *Trigger) BBox() math32.Box3 {
	ps := t.body.Pose()
	hs := t.HalfSize.Mul(t.body.size)
	c := ps.Pos.Add(ps.Quat.MulVector(t.Center.Mul(t.body.size)))
	bb := math32.Box3{Min: hs.Negate(), Max: hs}
	return bb.MulQuat(ps.Quat).Translate(c)
}
