// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package piece provides the cube [Piece] with its six [Anchor] faces,
// its attachment [State] machine, and the grab handling that moves it
// with the hand.
package piece

import (
	"errors"
	"fmt"
	"log/slog"

	"cogentcore.org/cubesnap/events"
	"cogentcore.org/cubesnap/physics"
	"github.com/google/uuid"
)

// Env gives a piece read access to the container state it branches on.
type Env interface {

	// Created returns whether the container exists.
	Created() bool

	// Held returns whether the container is being held.
	Held() bool
}

// Piece is a cube that can be grabbed, paired with another piece
// face to face, and joined into the container.
type Piece struct {

	// Name is the unique identity of the piece.
	Name string

	// Weight is the priority of the piece. Higher is more important.
	Weight int

	// Body is the rigid body of the piece.
	Body physics.Body

	// Anchors are the six faces, indexed by [Face].
	Anchors [FaceN]*Anchor

	// Grip moves the body with the hand while grabbed.
	Grip Grip

	state     State
	grabbed   bool
	grabbable bool
	env       Env

	readyRelease events.Listeners[*Piece]
	unstuck      events.Listeners[*Piece]
}

// NewName returns a new unique piece name.
func NewName() string {
	return uuid.NewString()
}

// New returns a new free piece with the given name, body and anchor
// point triggers for each face. An empty name is replaced with [NewName].
// A missing body or face is an error.
func New(name string, body physics.Body, points map[Face][]physics.Trigger) (*Piece, error) {
	if body == nil {
		return nil, fmt.Errorf("piece.New %q: nil body", name)
	}
	if name == "" {
		name = NewName()
	}
	p := &Piece{Name: name, Weight: 1, Body: body, grabbable: true}
	var errs []error
	for _, f := range FaceValues() {
		trs := points[f]
		if len(trs) == 0 {
			errs = append(errs, fmt.Errorf("piece.New %q: no triggers for face %v", name, f))
			continue
		}
		p.Anchors[f] = &Anchor{Piece: p, Face: f, Points: trs, id: name + f.String()}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Piece) String() string {
	return p.Name
}

// SetEnv sets the container state the piece consults on grab.
func (p *Piece) SetEnv(env Env) {
	p.env = env
}

// State returns the attachment state.
func (p *Piece) State() State {
	return p.state
}

// IsGrabbed returns whether the piece is currently held.
func (p *Piece) IsGrabbed() bool {
	return p.grabbed
}

// IsGrabbable returns whether the input layer may grab the piece.
func (p *Piece) IsGrabbable() bool {
	return p.grabbable
}

// Anchor returns the anchor for the given face.
func (p *Piece) Anchor(f Face) *Anchor {
	return p.Anchors[f]
}

// AnchorByTrigger returns the anchor owning the trigger with the given id, or nil.
func (p *Piece) AnchorByTrigger(id string) *Anchor {
	for _, an := range p.Anchors {
		for _, t := range an.Points {
			if t.ID() == id {
				return an
			}
		}
	}
	return nil
}

// OnReadyRelease registers a function called when the piece is
// released while [ReadyToAttach].
func (p *Piece) OnReadyRelease(fun func(p *Piece)) (remove func()) {
	return p.readyRelease.Add(fun)
}

// OnUnstuck registers a function called when the piece is pulled
// out of the container.
func (p *Piece) OnUnstuck(fun func(p *Piece)) (remove func()) {
	return p.unstuck.Add(fun)
}

// SetReady sets or clears the [ReadyToAttach] state.
// Attached pieces are not affected.
func (p *Piece) SetReady(on bool) {
	switch {
	case on && p.state == Free:
		p.state = ReadyToAttach
	case !on && p.state == ReadyToAttach:
		p.state = Free
	default:
		return
	}
	slog.Debug("piece state", "piece", p.Name, "state", p.state)
}

// SetStuck sets the physical state for being in the container or not.
// Stuck pieces are kinematic at rest with the main collider disabled,
// and stop following the hand.
func (p *Piece) SetStuck(stuck bool) {
	p.Body.SetKinematic(stuck)
	p.Body.SetColliderEnabled(!stuck)
	if stuck {
		p.state = Attached
		p.Body.ResetVelocity()
		p.grabbed = false
		p.Grip.End()
		p.ToggleAnchors(true)
	} else {
		p.state = Free
	}
	slog.Debug("piece state", "piece", p.Name, "state", p.state)
}

// SetGrabbable toggles the main collider and whether the piece can be grabbed.
func (p *Piece) SetGrabbable(on bool) {
	p.grabbable = on
	p.Body.SetColliderEnabled(on)
}

// MaskAnchors disables every anchor except the given one.
func (p *Piece) MaskAnchors(except *Anchor) {
	for _, an := range p.Anchors {
		if an.ID() == except.ID() {
			continue
		}
		an.SetEnabled(false)
	}
}

// ToggleAnchors enables or disables all anchors.
func (p *Piece) ToggleAnchors(on bool) {
	for _, an := range p.Anchors {
		an.SetEnabled(on)
	}
}

// Grabbed handles the start of a grab by a hand at the given pose.
// It returns false if the piece cannot be grabbed. Grabbing an
// attached piece while the container is held pulls it out.
func (p *Piece) Grabbed(hand physics.Pose) bool {
	if !p.grabbable {
		return false
	}
	p.grabbed = true
	p.Body.SetKinematic(true)
	p.Body.ResetVelocity()
	p.Grip.Begin(p.Body.Pose(), hand)
	p.checkUnstuck()
	return true
}

func (p *Piece) checkUnstuck() {
	if p.env == nil || !p.env.Created() || !p.env.Held() || p.state != Attached {
		return
	}
	slog.Debug("piece unstuck", "piece", p.Name)
	p.SetStuck(false)
	p.Body.SetKinematic(true)
	p.unstuck.Call(p)
}

// Released handles the end of a grab. Releasing a piece that is
// ready to attach commits the join, and a free piece is handed back
// to the physics engine.
func (p *Piece) Released() {
	if !p.grabbed {
		return
	}
	p.grabbed = false
	p.Grip.End()
	switch p.state {
	case ReadyToAttach:
		p.readyRelease.Call(p)
	case Free:
		p.Body.SetKinematic(false)
	}
}

// FollowHand moves the body to the hand at the given pose, when grabbed.
// Attached pieces move only with the container.
func (p *Piece) FollowHand(hand physics.Pose) {
	if !p.grabbed || !p.Grip.Active() || p.state == Attached {
		return
	}
	pos, q := p.Grip.Target(hand)
	p.Body.MoveTo(pos, q)
}
