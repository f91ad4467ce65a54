// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"cogentcore.org/core/math32"
	"gopkg.in/yaml.v3"
)

// PieceReport is the state of one piece.
type PieceReport struct {
	Name  string `yaml:"name"`
	State string `yaml:"state"`
	Pos   Vec    `yaml:"pos"`
	Rot   Vec    `yaml:"rot"`

	// Parent is the name of the parent frame, empty for the world.
	Parent string `yaml:"parent,omitempty"`
}

// BoxReport is the state of the container.
type BoxReport struct {
	Created bool     `yaml:"created"`
	Held    bool     `yaml:"held"`
	Active  bool     `yaml:"active"`
	Members []string `yaml:"members,omitempty"`
	Classes []string `yaml:"classes,omitempty"`
	Pos     Vec      `yaml:"pos"`
	Scale   Vec      `yaml:"scale"`
}

// Report is a snapshot of the simulation.
type Report struct {
	Ticks  int           `yaml:"ticks"`
	Pieces []PieceReport `yaml:"pieces"`
	Box    BoxReport     `yaml:"box"`
}

// Report returns a snapshot of the current state.
func (s *Sim) Report() *Report {
	rp := &Report{Ticks: s.Sched.Ticks()}
	for _, p := range s.Pieces() {
		ps := p.Body.Pose()
		pr := PieceReport{Name: p.Name, State: p.State().String(), Pos: vec(ps.Pos), Rot: vec(ps.EulerRotation())}
		if fr := p.Body.Parent(); fr != nil {
			pr.Parent = fr.Name()
		}
		rp.Pieces = append(rp.Pieces, pr)
	}
	bp := s.Box.Pose()
	rp.Box = BoxReport{Created: s.Manager.Created(), Held: s.Manager.Held(), Active: s.Box.Frame.Active(), Pos: vec(bp.Pos), Scale: vec(bp.Scale)}
	for _, p := range s.Box.Members() {
		cl, _ := s.Box.Class(p)
		rp.Box.Members = append(rp.Box.Members, p.Name)
		rp.Box.Classes = append(rp.Box.Classes, cl.String())
	}
	return rp
}

// String returns the report in YAML format.
func (rp *Report) String() string {
	b, err := yaml.Marshal(rp)
	if err != nil {
		return err.Error()
	}
	return string(b)
}

// vec rounds to 4 decimals to keep reports stable.
func vec(v math32.Vector3) Vec {
	r := func(x float32) float32 {
		x = math32.Round(x*1e4) / 1e4
		if x == 0 {
			return 0
		}
		return x
	}
	return Vec{r(v.X), r(v.Y), r(v.Z)}
}
