// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim assembles the snapping mechanic on top of the headless
// world: pieces with anchor triggers, the pairing coordinator, the
// container and its manager, and two hands (one for pieces, one for
// the container) driven tick by tick.
package sim

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/base/keylist"
	"cogentcore.org/core/math32"
	"cogentcore.org/cubesnap/box"
	"cogentcore.org/cubesnap/config"
	"cogentcore.org/cubesnap/feedback"
	"cogentcore.org/cubesnap/pairing"
	"cogentcore.org/cubesnap/physics"
	"cogentcore.org/cubesnap/physics/world"
	"cogentcore.org/cubesnap/piece"
	"cogentcore.org/cubesnap/sched"
	"cogentcore.org/cubesnap/stats"
	"github.com/prometheus/client_golang/prometheus"
)

// BoxStart is the inert position of the container, out of the way.
var BoxStart = math32.Vec3(0, -10, 0)

// Sim is a complete snapping simulation.
type Sim struct {

	// Config has the mechanic parameters.
	Config *config.Config

	// World is the headless physics world.
	World *world.World

	// Sched runs the multi-tick routines.
	Sched *sched.Scheduler

	// Signal is the ready to attach feedback channel.
	Signal *feedback.Log

	// Stats has the metrics.
	Stats *stats.Stats

	// Pairing is the pairing coordinator.
	Pairing *pairing.Coordinator

	// Box is the container.
	Box *box.Container

	// Manager is the container lifecycle manager.
	Manager *box.Manager

	pieces keylist.List[string, *piece.Piece]

	// anchors by trigger id
	anchors map[string]*piece.Anchor

	hand    physics.Pose
	held    *piece.Piece
	boxHand physics.Pose

	removes []func()
}

// New returns a new empty simulation. Metrics are registered
// with reg when it is non-nil.
func New(cfg *config.Config, reg prometheus.Registerer) (*Sim, error) {
	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Sim{Config: cfg, World: world.New(), Sched: &sched.Scheduler{}, anchors: map[string]*piece.Anchor{}}
	s.Signal = &feedback.Log{Name: "controller"}
	s.Stats = stats.New(reg)
	s.Pairing = pairing.New(cfg, s.Sched, s.Signal, s.Stats)

	fr := s.World.NewFrame("box")
	fr.SetPose(BoxStart, physics.Identity().Quat)
	fr.SetScale(math32.Vec3(cfg.MinBoxScale, cfg.MinBoxScale, cfg.MinBoxScale))
	bx, err := box.NewContainer(cfg, fr, s.World)
	if err != nil {
		return nil, err
	}
	s.Box = bx
	s.Manager = box.NewManager(cfg, s.Pairing, bx, s.Sched, s.Stats)

	s.hand = physics.Identity()
	s.boxHand = physics.Identity()
	s.removes = append(s.removes,
		s.World.OnOverlapBegin(func(ov world.Overlap) {
			s.Pairing.OverlapBegin(s.anchors[ov.Self.ID()], s.anchors[ov.Other.ID()])
		}),
		s.World.OnOverlapEnd(func(ov world.Overlap) {
			s.Pairing.OverlapEnd(s.anchors[ov.Self.ID()], s.anchors[ov.Other.ID()])
		}))
	return s, nil
}

// Close disconnects all event subscriptions.
func (s *Sim) Close() {
	for _, rm := range s.removes {
		rm()
	}
	s.removes = nil
	s.Pairing.Close()
	s.Manager.Close()
}

// AddPiece adds a new free piece at the given position and rotation
// (Euler angles in degrees). An empty name gets a generated one.
func (s *Sim) AddPiece(name string, pos, euler math32.Vector3) (*piece.Piece, error) {
	if name == "" {
		name = piece.NewName()
	}
	if s.pieces.IndexByKey(name) >= 0 {
		return nil, fmt.Errorf("sim.AddPiece: duplicate piece %q", name)
	}
	sz := s.Config.PieceSize
	b := s.World.NewBody(name, math32.Vec3(sz, sz, sz))
	ps := physics.Identity()
	ps.SetEulerRotation(euler.X, euler.Y, euler.Z)
	b.MoveTo(pos, ps.Quat)

	points := map[piece.Face][]physics.Trigger{}
	for _, f := range piece.FaceValues() {
		centers, half := f.Points(s.Config.TriggerDepth)
		for i, c := range centers {
			id := fmt.Sprintf("%s%v/%d", name, f, i)
			points[f] = append(points[f], b.AddTrigger(id, c, half))
		}
	}
	p, err := piece.New(name, b, points)
	if err != nil {
		return nil, err
	}
	for _, an := range p.Anchors {
		for _, tr := range an.Points {
			s.anchors[tr.ID()] = an
		}
	}
	s.Pairing.Track(p)
	s.Manager.Track(p)
	s.pieces.Add(name, p)
	slog.Debug("sim: piece added", "piece", name, "pos", pos, "rot", euler)
	return p, nil
}

// Piece returns the piece with the given name, or nil.
func (s *Sim) Piece(name string) *piece.Piece {
	p, _ := s.pieces.AtTry(name)
	return p
}

// Pieces returns all pieces in creation order.
func (s *Sim) Pieces() []*piece.Piece {
	return s.pieces.Values
}

// Held returns the piece in the hand, or nil.
func (s *Sim) Held() *piece.Piece {
	return s.held
}

// Grab grabs the named piece with the piece hand, moving the hand
// onto the piece.
func (s *Sim) Grab(name string) error {
	p := s.Piece(name)
	if p == nil {
		return fmt.Errorf("sim.Grab: no piece %q", name)
	}
	if s.held != nil {
		return fmt.Errorf("sim.Grab: already holding %q", s.held.Name)
	}
	s.hand = p.Body.Pose()
	if !p.Grabbed(s.hand) {
		return fmt.Errorf("sim.Grab: piece %q cannot be grabbed", name)
	}
	s.held = p
	return nil
}

// Hand returns the position of the piece hand.
func (s *Sim) Hand() math32.Vector3 {
	return s.hand.Pos
}

// MoveHand moves the piece hand to the given position.
// The held piece follows on the next tick.
func (s *Sim) MoveHand(pos math32.Vector3) {
	s.hand.Pos = pos
}

// Release releases the held piece, if any.
func (s *Sim) Release() {
	if s.held == nil {
		return
	}
	p := s.held
	s.held = nil
	p.Released()
}

// GrabBox grabs the container with the box hand, moving the hand
// onto the container.
func (s *Sim) GrabBox() error {
	bp := s.Box.Pose()
	s.boxHand = physics.NewPose(bp.Pos, bp.Quat)
	if !s.Manager.GrabBox(s.boxHand) {
		return fmt.Errorf("sim.GrabBox: no active container")
	}
	return nil
}

// BoxHand returns the position of the box hand.
func (s *Sim) BoxHand() math32.Vector3 {
	return s.boxHand.Pos
}

// MoveBoxHand moves the box hand to the given position.
func (s *Sim) MoveBoxHand(pos math32.Vector3) {
	s.boxHand.Pos = pos
}

// ReleaseBox releases the container.
func (s *Sim) ReleaseBox() {
	s.Manager.ReleaseBox()
}

// Tick advances the simulation by one tick: held objects follow the
// hands, the world steps and delivers overlap events, and the
// scheduled routines advance.
func (s *Sim) Tick() {
	if s.held != nil {
		s.held.FollowHand(s.hand)
	}
	s.Manager.FollowHand(s.boxHand)
	s.World.Step(s.Config.TickStep())
	s.Sched.Tick()
}

// Ticks runs n ticks.
func (s *Sim) Ticks(n int) {
	for range n {
		s.Tick()
	}
}
