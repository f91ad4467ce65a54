// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cogentcore.org/core/math32"
	"gopkg.in/yaml.v3"
)

// Vec is a 3D vector written as a [x, y, z] sequence.
type Vec [3]float32

// V returns the vector as a [math32.Vector3].
func (v Vec) V() math32.Vector3 {
	return math32.Vec3(v[0], v[1], v[2])
}

// PieceSpec is the initial placement of a piece.
type PieceSpec struct {

	// Name of the piece; generated if empty.
	Name string `yaml:"name"`

	// Pos is the world position.
	Pos Vec `yaml:"pos"`

	// Rot is the rotation as Euler angles in degrees.
	Rot Vec `yaml:"rot"`
}

// Move moves a hand in a straight line over a number of ticks.
type Move struct {

	// To is the target position of the hand.
	To Vec `yaml:"to"`

	// Ticks is the number of ticks the move takes, at least 1.
	Ticks int `yaml:"ticks"`
}

// Step is one scenario action. Exactly one field must be set.
type Step struct {
	Grab       string `yaml:"grab,omitempty"`
	Release    bool   `yaml:"release,omitempty"`
	Move       *Move  `yaml:"move,omitempty"`
	GrabBox    bool   `yaml:"grab_box,omitempty"`
	MoveBox    *Move  `yaml:"move_box,omitempty"`
	ReleaseBox bool   `yaml:"release_box,omitempty"`
	Wait       int    `yaml:"wait,omitempty"`
}

// actions returns the number of actions set on the step.
func (st *Step) actions() int {
	n := 0
	for _, on := range []bool{st.Grab != "", st.Release, st.Move != nil, st.GrabBox, st.MoveBox != nil, st.ReleaseBox, st.Wait > 0} {
		if on {
			n++
		}
	}
	return n
}

// Scenario is a scripted sequence of hand actions over a set of pieces.
type Scenario struct {

	// Name is used in log messages.
	Name string `yaml:"name"`

	// Pieces are created in order before the steps run.
	Pieces []PieceSpec `yaml:"pieces"`

	// Steps are run in order.
	Steps []Step `yaml:"steps"`
}

// OpenScenario reads a scenario from the given YAML file.
func OpenScenario(filename string) (*Scenario, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	sc, err := ParseScenario(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("sim: scenario %q: %w", filename, err)
	}
	if sc.Name == "" {
		sc.Name = filename
	}
	return sc, nil
}

// ParseScenario reads a scenario in YAML format. Unknown fields
// are an error.
func ParseScenario(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	sc := &Scenario{}
	if err := dec.Decode(sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Validate checks that every step has exactly one action and every
// move has a positive duration.
func (sc *Scenario) Validate() error {
	var errs []error
	for i := range sc.Steps {
		st := &sc.Steps[i]
		if n := st.actions(); n != 1 {
			errs = append(errs, fmt.Errorf("step %d: has %d actions, must have 1", i, n))
			continue
		}
		for _, mv := range []*Move{st.Move, st.MoveBox} {
			if mv != nil && mv.Ticks < 1 {
				errs = append(errs, fmt.Errorf("step %d: move ticks must be >= 1, got %d", i, mv.Ticks))
			}
		}
	}
	return errors.Join(errs...)
}

// Run creates the pieces of the scenario and runs its steps.
func (s *Sim) Run(sc *Scenario) error {
	for _, ps := range sc.Pieces {
		if _, err := s.AddPiece(ps.Name, ps.Pos.V(), ps.Rot.V()); err != nil {
			return err
		}
	}
	for i := range sc.Steps {
		if err := s.RunStep(&sc.Steps[i]); err != nil {
			return fmt.Errorf("sim: scenario %q step %d: %w", sc.Name, i, err)
		}
	}
	slog.Info("sim: scenario done", "scenario", sc.Name, "ticks", s.Sched.Ticks())
	return nil
}

// RunStep runs one scenario step.
func (s *Sim) RunStep(st *Step) error {
	switch {
	case st.Grab != "":
		return s.Grab(st.Grab)
	case st.Release:
		s.Release()
	case st.Move != nil:
		s.move(st.Move, s.Hand(), s.MoveHand)
	case st.GrabBox:
		return s.GrabBox()
	case st.MoveBox != nil:
		s.move(st.MoveBox, s.BoxHand(), s.MoveBoxHand)
	case st.ReleaseBox:
		s.ReleaseBox()
	case st.Wait > 0:
		s.Ticks(st.Wait)
	}
	return nil
}

// move interpolates a hand from the given position to the move target,
// ticking after each increment. The last increment lands exactly on the target.
func (s *Sim) move(mv *Move, from math32.Vector3, set func(pos math32.Vector3)) {
	to := mv.To.V()
	n := max(mv.Ticks, 1)
	for i := 1; i < n; i++ {
		set(from.Lerp(to, float32(i)/float32(n)))
		s.Tick()
	}
	set(to)
	s.Tick()
}
