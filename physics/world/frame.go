// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/cubesnap/physics"
)

// Frame is a root scene node that bodies can be parented under.
// Its scale sizes its own visual extent only; children keep their
// size and follow its position and rotation.
type Frame struct {
	name    string
	world   *World
	pose    physics.Pose
	active  bool
	visible bool
}

var _ physics.Frame = (*Frame)(nil)

// NewFrame adds a new active, visible frame at the origin.
func (w *World) NewFrame(name string) *Frame {
	f := &Frame{name: name, world: w, pose: physics.Identity(), active: true, visible: true}
	w.frames = append(w.frames, f)
	return f
}

func (f *Frame) Name() string { return f.name }

func (f *Frame) Pose() physics.Pose { return f.pose }

// placement is the pose without scale, applied to children.
func (f *Frame) placement() physics.Pose {
	return physics.NewPose(f.pose.Pos, f.pose.Quat)
}

func (f *Frame) SetPose(pos math32.Vector3, quat math32.Quat) {
	f.pose.Pos = pos
	f.pose.Quat = quat
}

func (f *Frame) SetScale(sc math32.Vector3) { f.pose.Scale = sc }

func (f *Frame) SetActive(on bool) {
	f.active = on
	f.visible = on
}

func (f *Frame) Active() bool { return f.active }

func (f *Frame) SetVisible(on bool) { f.visible = on }

func (f *Frame) Visible() bool { return f.visible }

// Children returns the bodies parented under this frame, in creation order.
func (f *Frame) Children() []*Body {
	var cs []*Body
	for _, b := range f.world.bodies {
		if b.parent == f {
			cs = append(cs, b)
		}
	}
	return cs
}
