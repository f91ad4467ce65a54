// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package piece

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/cubesnap/physics"
)

// Grip keeps a grabbed object at a fixed pose relative to the hand.
// The offset is captured when the grab begins.
type Grip struct {

	// offset of the hand from the object, in object space
	pos math32.Vector3

	// rotation of the object relative to the hand
	quat math32.Quat

	active bool
}

// Begin captures the pose of the object relative to the hand.
func (g *Grip) Begin(object, hand physics.Pose) {
	iq := object.Quat.Inverse()
	g.pos = iq.MulVector(hand.Pos.Sub(object.Pos))
	ih := hand.Quat.Inverse()
	g.quat = ih.Mul(object.Quat)
	g.active = true
}

// End stops the grip.
func (g *Grip) End() {
	g.active = false
}

// Active returns whether the grip is in effect.
func (g *Grip) Active() bool {
	return g.active
}

// Target returns the object pose for the hand at the given pose.
func (g *Grip) Target(hand physics.Pose) (pos math32.Vector3, quat math32.Quat) {
	quat = hand.Quat.Mul(g.quat)
	pos = hand.Pos.Sub(quat.MulVector(g.pos))
	return
}
