// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package world is a headless in-memory implementation of the
// physics contracts: bodies with trigger regions, frames that
// bodies can be parented under, parent constraints, collision
// filtering, and trigger overlap detection based on bounding boxes.
// It integrates velocities but does no collision response.
package world

import (
	"log/slog"

	"cogentcore.org/core/math32"
	"cogentcore.org/cubesnap/events"
	"cogentcore.org/cubesnap/physics"
)

// Overlap is a trigger overlap event, delivered once for each side:
// Self is the trigger receiving the event.
type Overlap struct {
	Self  *Trigger
	Other *Trigger
}

// World is the root of a headless virtual world.
type World struct {
	bodies   []*Body
	frames   []*Frame
	triggers []*Trigger

	// ignored body pairs, keyed by ordered names
	ignored map[pairKey]bool

	// trigger pairs currently overlapping, keyed by ordered ids
	overlaps map[pairKey]bool

	begin events.Listeners[Overlap]
	end   events.Listeners[Overlap]
}

type pairKey struct {
	a, b string
}

func makeKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

// New returns a new empty [World].
func New() *World {
	return &World{ignored: map[pairKey]bool{}, overlaps: map[pairKey]bool{}}
}

// OnOverlapBegin registers a function called when two enabled
// triggers of different bodies begin overlapping.
func (w *World) OnOverlapBegin(fun func(ov Overlap)) (remove func()) {
	return w.begin.Add(fun)
}

// OnOverlapEnd registers a function called when two triggers
// that were overlapping stop overlapping.
func (w *World) OnOverlapEnd(fun func(ov Overlap)) (remove func()) {
	return w.end.Add(fun)
}

// Bodies returns all bodies in creation order.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// BodyByName returns the body with the given name, or nil.
func (w *World) BodyByName(name string) *Body {
	for _, b := range w.bodies {
		if b.name == name {
			return b
		}
	}
	return nil
}

// IgnoreCollision sets whether collisions between the two bodies are ignored.
func (w *World) IgnoreCollision(a, b physics.Body, ignore bool) {
	if a == nil || b == nil {
		slog.Error("world.IgnoreCollision: nil body")
		return
	}
	k := makeKey(a.Name(), b.Name())
	if ignore {
		w.ignored[k] = true
	} else {
		delete(w.ignored, k)
	}
}

// CollisionIgnored returns whether collisions between the two bodies are ignored.
func (w *World) CollisionIgnored(a, b physics.Body) bool {
	return w.ignored[makeKey(a.Name(), b.Name())]
}

// Overlapping returns whether the two triggers are currently overlapping.
func (w *World) Overlapping(a, b *Trigger) bool {
	return w.overlaps[makeKey(a.id, b.id)]
}

// Contacts returns pairs of bodies whose enabled colliders intersect
// and whose collisions are not ignored.
func (w *World) Contacts() [][2]*Body {
	var cts [][2]*Body
	for i, a := range w.bodies {
		if !a.collider {
			continue
		}
		ab := a.BBox()
		for _, b := range w.bodies[i+1:] {
			if !b.collider || w.CollisionIgnored(a, b) {
				continue
			}
			if ab.IntersectsBox(b.BBox()) {
				cts = append(cts, [2]*Body{a, b})
			}
		}
	}
	return cts
}

// Step advances the world by the given time step: integrates free
// dynamic bodies, applies active constraints, then detects trigger
// overlap changes and delivers the events.
func (w *World) Step(step float32) {
	for _, b := range w.bodies {
		if b.kinematic || b.parent != nil {
			continue
		}
		b.State.Step(step)
	}
	for _, b := range w.bodies {
		b.constraint.apply()
	}
	w.DetectOverlaps()
}

// DetectOverlaps computes trigger overlaps and delivers begin and
// end events, each to both triggers of the pair. Pairs involving a
// disabled trigger are dropped without an end event.
func (w *World) DetectOverlaps() {
	var begins, ends []Overlap
	boxes := make([]math32.Box3, len(w.triggers))
	for i, t := range w.triggers {
		boxes[i] = t.BBox()
	}
	for i, a := range w.triggers {
		for j := i + 1; j < len(w.triggers); j++ {
			b := w.triggers[j]
			if a.body == b.body {
				continue
			}
			k := makeKey(a.id, b.id)
			was := w.overlaps[k]
			if !a.enabled || !b.enabled {
				delete(w.overlaps, k)
				continue
			}
			is := boxes[i].IntersectsBox(boxes[j])
			switch {
			case is && !was:
				w.overlaps[k] = true
				begins = append(begins, Overlap{a, b}, Overlap{b, a})
			case !is && was:
				delete(w.overlaps, k)
				ends = append(ends, Overlap{a, b}, Overlap{b, a})
			}
		}
	}
	for _, ov := range ends {
		w.end.Call(ov)
	}
	for _, ov := range begins {
		// earlier events may have disabled this pair
		if !ov.Self.enabled || !ov.Other.enabled {
			continue
		}
		w.begin.Call(ov)
	}
}
