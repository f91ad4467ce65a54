// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package box provides the [Container] that holds joined pieces and
// sizes itself around them, and the [Manager] that drives its lifecycle
// from join and unstuck events.
package box

//go:generate core generate

import (
	"fmt"
	"log/slog"
	"slices"

	"cogentcore.org/core/base/keylist"
	"cogentcore.org/core/math32"
	"cogentcore.org/cubesnap/config"
	"cogentcore.org/cubesnap/physics"
	"cogentcore.org/cubesnap/piece"
	"cogentcore.org/cubesnap/sched"
)

// Side is the container axis a member extends the container along.
type Side int32 //enums:enum

const (
	// None is the side of the reference member, and of members sharing its slot.
	None Side = iota

	// X is the X axis of the container.
	X

	// Y is the Y axis of the container.
	Y

	// Z is the Z axis of the container.
	Z
)

// Dim returns the axis dimension of the side, which must not be [None].
func (s Side) Dim() math32.Dims {
	return math32.Dims(s - 1)
}

// Class is the side classification of a member.
type Class struct {

	// Side is the axis the member was classified to.
	Side Side

	// Offset is the signed distance from the reference member along Side.
	Offset float32

	// Shared is set when the member sits in a slot already taken on Side,
	// and so does not extend the container.
	Shared bool
}

func (cl Class) String() string {
	if cl.Side == None {
		return "None"
	}
	s := fmt.Sprintf("%v %.3g", cl.Side, cl.Offset)
	if cl.Shared {
		s += " (shared)"
	}
	return s
}

// Container is the box that joined pieces are parented under. Its
// first member is the reference for the side classification of the
// others, and its scale grows with the number of distinct slots
// along each axis.
type Container struct {

	// Config has the sizing parameters.
	Config *config.Config

	// Frame is the scene node of the container.
	Frame physics.Frame

	// Collisions is used to ignore collisions between members.
	Collisions physics.Collisions

	// members in join order, with their classification
	members keylist.List[*piece.Piece, Class]

	// start is the inert pose of the frame
	start physics.Pose
}

// NewContainer returns a new empty container using the given frame,
// whose current pose becomes the inert start pose. The frame is disabled.
func NewContainer(cfg *config.Config, fr physics.Frame, cl physics.Collisions) (*Container, error) {
	if fr == nil {
		return nil, fmt.Errorf("box.NewContainer: nil frame")
	}
	if cl == nil {
		return nil, fmt.Errorf("box.NewContainer: nil collisions")
	}
	c := &Container{Config: cfg, Frame: fr, Collisions: cl, start: fr.Pose()}
	fr.SetActive(false)
	return c, nil
}

// Len returns the number of members.
func (c *Container) Len() int {
	return c.members.Len()
}

// Has returns whether the piece is a member.
func (c *Container) Has(p *piece.Piece) bool {
	return c.members.IndexByKey(p) >= 0
}

// Members returns the members in join order.
func (c *Container) Members() []*piece.Piece {
	return slices.Clone(c.members.Keys)
}

// Class returns the classification of the given member.
func (c *Container) Class(p *piece.Piece) (Class, bool) {
	return c.members.AtTry(p)
}

// Pose returns the pose of the frame, including scale.
func (c *Container) Pose() physics.Pose {
	return c.Frame.Pose()
}

// Scale returns the current scale of the frame.
func (c *Container) Scale() math32.Vector3 {
	return c.Frame.Pose().Scale
}

// StartPose returns the inert pose the container returns to on [Container.Reset].
func (c *Container) StartPose() physics.Pose {
	return c.start
}

// MoveTo moves the frame to the given pose with the members detached,
// so that they stay in place.
func (c *Container) MoveTo(pos math32.Vector3, quat math32.Quat) {
	c.detachAll()
	c.Frame.SetPose(pos, quat)
	c.attachAll()
}

// AddMember returns a routine adding the piece to the container and
// recomputing the extent. The piece is inserted immediately; adding a
// piece that is already a member is logged and does nothing.
func (c *Container) AddMember(p *piece.Piece) *sched.Routine {
	r := sched.New("add member " + p.Name)
	if c.Has(p) {
		slog.Warn("box: piece is already in the container", "piece", p.Name)
		return r
	}
	for _, o := range c.members.Keys {
		c.Collisions.IgnoreCollision(p.Body, o.Body, true)
	}
	c.members.Add(p, Class{})
	return r.Then(func() {
		c.Frame.SetVisible(false)
		c.detachAll()
		c.Frame.SetScale(math32.Vec3(1, 1, 1))
		c.attachAll()
	}).Yield().Then(func() {
		if idx := c.members.IndexByKey(p); idx >= 0 {
			c.members.Values[idx] = c.classify(idx)
		}
		c.detachAll()
	}).Yield().Then(func() {
		c.applyExtent(nil)
		c.attachAll()
		c.Frame.SetVisible(true)
		cl, _ := c.Class(p)
		slog.Debug("box: member added", "piece", p.Name, "class", cl, "members", c.Len(), "scale", c.Scale())
	})
}

// RemoveMember removes the piece from the container, restoring its
// collisions with the remaining members. When two or more remain, the
// remaining members are classified again and the extent is recomputed,
// without growing on any axis. It returns whether exactly one member remains.
func (c *Container) RemoveMember(p *piece.Piece) (last bool) {
	if !c.Has(p) {
		slog.Warn("box: piece is not in the container", "piece", p.Name)
		return false
	}
	c.members.DeleteByKey(p)
	p.Body.SetParent(nil)
	for _, o := range c.members.Keys {
		c.Collisions.IgnoreCollision(p.Body, o.Body, false)
	}
	n := c.members.Len()
	if n >= 2 {
		limit := c.Scale()
		for i := range c.members.Values {
			c.members.Values[i] = c.classify(i)
		}
		c.detachAll()
		c.applyExtent(&limit)
		c.attachAll()
	}
	slog.Debug("box: member removed", "piece", p.Name, "members", n, "scale", c.Scale())
	return n == 1
}

// Reset detaches all members and returns the frame to its inert
// start pose and scale, disabled.
func (c *Container) Reset() {
	c.detachAll()
	c.members.Reset()
	c.Frame.SetPose(c.start.Pos, c.start.Quat)
	c.Frame.SetScale(c.start.Scale)
	c.Frame.SetActive(false)
}

func (c *Container) detachAll() {
	for _, p := range c.members.Keys {
		p.Body.SetParent(nil)
	}
}

func (c *Container) attachAll() {
	for _, p := range c.members.Keys {
		p.Body.SetParent(c.Frame)
	}
}

// placement is the frame pose without scale.
func (c *Container) placement() physics.Pose {
	fp := c.Frame.Pose()
	return physics.NewPose(fp.Pos, fp.Quat)
}

// classify returns the class of the member at the given index, against
// the reference member and the records of the members before it.
// Members must be attached.
func (c *Container) classify(idx int) Class {
	if idx == 0 {
		return Class{}
	}
	ref := c.members.Keys[0].Body.LocalPos()
	d := c.members.Keys[idx].Body.LocalPos().Sub(ref)
	shared := Class{}
	for _, sd := range []Side{X, Y, Z} {
		v := d.Dim(sd.Dim())
		if math32.Abs(v) <= c.Config.SeparationThreshold {
			continue
		}
		if c.slotTaken(sd, v, idx) {
			if shared.Side == None {
				shared = Class{Side: sd, Offset: v, Shared: true}
			}
			continue
		}
		return Class{Side: sd, Offset: v}
	}
	return shared
}

// slotTaken returns whether one of the first n members already
// extends the container along the side at the given offset.
func (c *Container) slotTaken(sd Side, offset float32, n int) bool {
	tol := c.Config.Tolerance()
	for _, cl := range c.members.Values[:n] {
		if cl.Side == sd && !cl.Shared && math32.Abs(cl.Offset-offset) < tol {
			return true
		}
	}
	return false
}

// count returns the number of distinct slots along the side,
// including the reference member.
func (c *Container) count(sd Side) int {
	n := 1
	for _, cl := range c.members.Values {
		if cl.Side == sd && !cl.Shared {
			n++
		}
	}
	return n
}

// SideScale returns the scale of the container along the side,
// which must not be [None].
func (c *Container) SideScale(sd Side) float32 {
	cfg := c.Config
	s := cfg.PieceSize*float32(c.count(sd)) + cfg.BoxMargin + cfg.PieceSize
	return max(s, cfg.MinBoxScale)
}

// extent returns the world position and scale of the container: the
// centroid of the distinct member positions per axis in the frame,
// and the side scales.
func (c *Container) extent() (pos, scale math32.Vector3) {
	pl := c.placement()
	tol := c.Config.Tolerance()
	var clusters [3][]float32
	for _, p := range c.members.Keys {
		lp := pl.InversePoint(p.Body.Pose().Pos)
		for d := math32.X; d <= math32.Z; d++ {
			v := lp.Dim(d)
			if !slices.ContainsFunc(clusters[d], func(x float32) bool { return math32.Abs(x-v) < tol }) {
				clusters[d] = append(clusters[d], v)
			}
		}
	}
	var ctr math32.Vector3
	for d, cs := range clusters {
		if len(cs) == 0 {
			continue
		}
		sum := float32(0)
		for _, v := range cs {
			sum += v
		}
		ctr.SetDim(math32.Dims(d), sum/float32(len(cs)))
	}
	pos = pl.MulPoint(ctr)
	scale = math32.Vec3(c.SideScale(X), c.SideScale(Y), c.SideScale(Z))
	return
}

// applyExtent moves and scales the frame to the current extent,
// with the scale capped by limit if non-nil. Members must be detached.
func (c *Container) applyExtent(limit *math32.Vector3) {
	pos, sc := c.extent()
	if limit != nil {
		sc = sc.Min(*limit)
	}
	c.Frame.SetPose(pos, c.Frame.Pose().Quat)
	c.Frame.SetScale(sc)
}
