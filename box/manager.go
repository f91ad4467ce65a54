// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package box

import (
	"log/slog"

	"cogentcore.org/cubesnap/config"
	"cogentcore.org/cubesnap/events"
	"cogentcore.org/cubesnap/pairing"
	"cogentcore.org/cubesnap/physics"
	"cogentcore.org/cubesnap/piece"
	"cogentcore.org/cubesnap/sched"
	"cogentcore.org/cubesnap/stats"
)

// Manager creates, grows, shrinks and tears down the container as
// pieces are joined and pulled out. It implements [piece.Env].
type Manager struct {

	// Config has the sizing parameters.
	Config *config.Config

	// Box is the container.
	Box *Container

	// Sched runs the container update routines.
	Sched *sched.Scheduler

	// Stats records container events. It may be nil.
	Stats *stats.Stats

	// Grip moves the container with the hand while held.
	Grip piece.Grip

	created bool
	held    bool

	// anchor is the piece the container is posed at on each join.
	anchor *piece.Piece

	teardown events.Listeners[*Manager]
	removes  []func()
}

var _ piece.Env = (*Manager)(nil)

// NewManager returns a new [Manager] for the given container,
// subscribed to the joins of the given coordinator.
func NewManager(cfg *config.Config, co *pairing.Coordinator, bx *Container, sc *sched.Scheduler, st *stats.Stats) *Manager {
	m := &Manager{Config: cfg, Box: bx, Sched: sc, Stats: st}
	if co != nil {
		m.removes = append(m.removes, co.OnJoined(func(j *pairing.Joined) {
			j.Await(m.absorb(j.Parent, j.Child))
		}))
	}
	return m
}

// Track makes the piece consult this manager for the container state,
// and subscribes to its unstuck event.
func (m *Manager) Track(p *piece.Piece) {
	p.SetEnv(m)
	m.removes = append(m.removes, p.OnUnstuck(m.PieceUnstuck))
}

// Close unsubscribes from the coordinator and all tracked pieces.
func (m *Manager) Close() {
	for _, rm := range m.removes {
		rm()
	}
	m.removes = nil
}

// OnTeardown registers a function called when the container is torn down.
func (m *Manager) OnTeardown(fun func(m *Manager)) (remove func()) {
	return m.teardown.Add(fun)
}

// Created returns whether the container exists.
func (m *Manager) Created() bool {
	return m.created
}

// Held returns whether the container is being held.
func (m *Manager) Held() bool {
	return m.held
}

// Anchor returns the piece the container is posed at, nil before creation.
func (m *Manager) Anchor() *piece.Piece {
	return m.anchor
}

// PiecesJoined starts and returns the routine that absorbs a join into
// the container, creating it on the first join.
func (m *Manager) PiecesJoined(parent, child *piece.Piece) *sched.Routine {
	r := m.absorb(parent, child)
	m.Sched.Start(r)
	return r
}

// absorb returns the routine for [Manager.PiecesJoined], not started.
func (m *Manager) absorb(parent, child *piece.Piece) *sched.Routine {
	slog.Debug("box: pieces joined", "parent", parent, "child", child)
	return sched.New("pieces joined "+child.Name).
		Then(m.deactivate).
		Yield().
		Await(func() *sched.Routine {
			add := sched.New("add pieces")
			if !m.created {
				m.created = true
				m.anchor = parent
			}
			m.poseAtAnchor()
			if !m.Box.Has(parent) {
				add.Await(func() *sched.Routine { return m.Box.AddMember(parent) })
			}
			return add.Await(func() *sched.Routine { return m.Box.AddMember(child) })
		}).
		Yield().
		Then(func() {
			cons := child.Body.Constraint()
			cons.SetActive(false)
			cons.RemoveSource()
		}).
		Yield().
		Then(func() {
			for _, p := range m.Box.Members() {
				p.SetGrabbable(m.held)
			}
			m.Box.Frame.SetActive(true)
			m.Stats.SetMembers(m.Box.Len())
		})
}

// deactivate takes the container out of the scene, releasing it if held.
func (m *Manager) deactivate() {
	if m.held {
		m.ReleaseBox()
	}
	m.Box.Frame.SetActive(false)
}

// poseAtAnchor moves the container to the anchor piece. When the anchor
// has left the container, the first member becomes the anchor.
func (m *Manager) poseAtAnchor() {
	if !m.Box.Has(m.anchor) && m.Box.Len() > 0 {
		m.anchor = m.Box.Members()[0]
	}
	if m.anchor == nil {
		return
	}
	ps := m.anchor.Body.Pose()
	m.Box.MoveTo(ps.Pos, ps.Quat)
}

// PieceUnstuck removes a piece pulled out of the container, tearing
// the container down when one member remains.
func (m *Manager) PieceUnstuck(p *piece.Piece) {
	if !m.Box.Has(p) {
		slog.Warn("box: unstuck piece is not in the container", "piece", p.Name)
		return
	}
	m.Stats.Unstick()
	if m.Box.RemoveMember(p) {
		m.tearDown()
	}
	m.Stats.SetMembers(m.Box.Len())
}

// tearDown frees the last member and returns the container to its start state.
func (m *Manager) tearDown() {
	for _, p := range m.Box.Members() {
		m.Box.RemoveMember(p)
		p.SetStuck(false)
		p.SetGrabbable(true)
	}
	m.Box.Reset()
	m.created = false
	m.held = false
	m.anchor = nil
	m.Grip.End()
	m.Stats.Teardown()
	slog.Info("box: container torn down")
	m.teardown.Call(m)
}

// SetHeld records whether the container is held, and toggles grabbing
// of every member accordingly.
func (m *Manager) SetHeld(on bool) {
	m.held = on
	for _, p := range m.Box.Members() {
		p.SetGrabbable(on)
	}
}

// GrabBox starts holding the container with a hand at the given pose.
// It returns false when there is no active container.
func (m *Manager) GrabBox(hand physics.Pose) bool {
	if !m.created || !m.Box.Frame.Active() {
		return false
	}
	m.SetHeld(true)
	m.Grip.Begin(m.Box.Pose(), hand)
	return true
}

// ReleaseBox stops holding the container.
func (m *Manager) ReleaseBox() {
	if !m.held {
		return
	}
	m.SetHeld(false)
	m.Grip.End()
}

// FollowHand moves the container with the hand at the given pose, when held.
func (m *Manager) FollowHand(hand physics.Pose) {
	if !m.held || !m.Grip.Active() {
		return
	}
	pos, q := m.Grip.Target(hand)
	m.Box.Frame.SetPose(pos, q)
}
