// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package pairing decides, from anchor overlap events, when two pieces
should join, which one is the parent, and how the child is aligned.

The [Coordinator] keeps two candidate slots. A face to face approach
fills both slots with the same pair of anchors (in either order), which
validates the pair: the child becomes ready to attach and a feedback
signal starts. The join itself is committed only when the user releases
the child, after which the join listeners are notified a few ticks later.
*/
package pairing

import (
	"log/slog"

	"cogentcore.org/core/math32"
	"cogentcore.org/cubesnap/config"
	"cogentcore.org/cubesnap/events"
	"cogentcore.org/cubesnap/feedback"
	"cogentcore.org/cubesnap/piece"
	"cogentcore.org/cubesnap/sched"
	"cogentcore.org/cubesnap/stats"
)

// Joined is the event sent when two pieces have been rigidly joined.
type Joined struct {
	Parent *piece.Piece
	Child  *piece.Piece

	// follow are the routines listeners asked to run before
	// the coordinator accepts new pairs.
	follow []*sched.Routine
}

// Await makes the coordinator run r to completion before any new pair
// is accepted. r must not be started by the caller.
func (j *Joined) Await(r *sched.Routine) {
	if r != nil {
		j.follow = append(j.follow, r)
	}
}

// routine returns a routine running the awaited routines in order,
// or nil when there are none.
func (j *Joined) routine() *sched.Routine {
	if len(j.follow) == 0 {
		return nil
	}
	r := sched.New("joined " + j.Child.Name)
	for _, fr := range j.follow {
		r.Await(func() *sched.Routine { return fr })
	}
	return r
}

// slot holds either no anchors or exactly two.
type slot struct {
	first, second *piece.Anchor
}

func (s *slot) empty() bool {
	return s.first == nil
}

func (s *slot) set(a, b *piece.Anchor) {
	s.first, s.second = a, b
}

func (s *slot) clear() {
	s.first, s.second = nil, nil
}

// matches returns whether the slot holds the given unordered pair.
func (s *slot) matches(a, b *piece.Anchor) bool {
	if s.empty() {
		return false
	}
	return (s.first.Is(a) && s.second.Is(b)) || (s.first.Is(b) && s.second.Is(a))
}

// pending is a validated pair waiting for the child to be released.
type pending struct {
	parent, child *piece.Piece
	first, second *piece.Anchor

	// target is the parent side face position, in unit piece coordinates.
	target math32.Vector3
}

// Coordinator pairs anchors from overlap events and executes joins.
// All methods must be called from the simulation tick thread.
type Coordinator struct {

	// Config has the join and feedback parameters.
	Config *config.Config

	// Sched runs the join settle routine.
	Sched *sched.Scheduler

	// Signal is the ready to attach feedback.
	Signal feedback.Signal

	// Stats records pairing outcomes. It may be nil.
	Stats *stats.Stats

	slots   [2]slot
	pending *pending

	// joining is set from a committed join until the routines
	// awaited by the join listeners have completed.
	joining bool

	joined  events.Listeners[*Joined]
	removes []func()
}

// New returns a new [Coordinator].
func New(cfg *config.Config, sc *sched.Scheduler, sig feedback.Signal, st *stats.Stats) *Coordinator {
	return &Coordinator{Config: cfg, Sched: sc, Signal: sig, Stats: st}
}

// OnJoined registers a function called when two pieces are joined.
// Listeners that need several ticks to absorb the join pass their
// routine to [Joined.Await].
func (co *Coordinator) OnJoined(fun func(j *Joined)) (remove func()) {
	return co.joined.Add(fun)
}

// Track subscribes to the release of the given piece, so that releasing
// it while it is ready to attach commits the join.
func (co *Coordinator) Track(p *piece.Piece) {
	rm := p.OnReadyRelease(func(p *piece.Piece) {
		if co.pending == nil || co.pending.child != p {
			slog.Warn("pairing: released piece has no pending join", "piece", p.Name)
			return
		}
		co.Connect()
	})
	co.removes = append(co.removes, rm)
}

// Close unsubscribes from all tracked pieces.
func (co *Coordinator) Close() {
	for _, rm := range co.removes {
		rm()
	}
	co.removes = nil
}

// Slots returns a snapshot of the two candidate slots:
// each is either nil or a pair of anchors.
func (co *Coordinator) Slots() [2][]*piece.Anchor {
	var ss [2][]*piece.Anchor
	for i := range co.slots {
		s := &co.slots[i]
		if !s.empty() {
			ss[i] = []*piece.Anchor{s.first, s.second}
		}
	}
	return ss
}

// Pending returns the pair waiting for the child to be released.
func (co *Coordinator) Pending() (parent, child *piece.Piece, ok bool) {
	if co.pending == nil {
		return nil, nil, false
	}
	return co.pending.parent, co.pending.child, true
}

// Joining returns whether a committed join is still being absorbed.
func (co *Coordinator) Joining() bool {
	return co.joining
}

// OverlapBegin handles anchor a starting to overlap anchor b.
func (co *Coordinator) OverlapBegin(a, b *piece.Anchor) {
	if a == nil || b == nil || a.Piece == b.Piece {
		return
	}
	for i := range co.slots {
		s := &co.slots[i]
		if !s.empty() && s.first.Is(b) {
			return
		}
	}
	if a.Piece.State() == piece.Attached && b.Piece.State() == piece.Attached {
		co.clearSlots()
		co.Stats.Reject(stats.ReasonSameBox)
		return
	}
	if co.pending != nil || co.joining {
		return
	}
	for i := range co.slots {
		s := &co.slots[i]
		if s.empty() {
			s.set(a, b)
			a.Piece.MaskAnchors(a)
			b.Piece.MaskAnchors(b)
			slog.Debug("pairing: slot filled", "slot", i, "first", a, "second", b)
			break
		}
	}
	if !co.slots[0].empty() && !co.slots[1].empty() {
		co.validate()
	}
}

// OverlapEnd handles anchor a no longer overlapping anchor b.
// A matching slot is cleared, and a matching pending join is cancelled.
func (co *Coordinator) OverlapEnd(a, b *piece.Anchor) {
	if a == nil || b == nil {
		return
	}
	matched := false
	for i := range co.slots {
		s := &co.slots[i]
		if s.matches(a, b) {
			s.clear()
			matched = true
			break
		}
	}
	if pd := co.pending; pd != nil && ((pd.first.Is(a) && pd.second.Is(b)) || (pd.first.Is(b) && pd.second.Is(a))) {
		co.pending = nil
		co.Stats.Cancel()
		slog.Debug("pairing: pending join cancelled", "parent", pd.parent, "child", pd.child)
		matched = true
	}
	if !matched {
		return
	}
	for _, p := range []*piece.Piece{a.Piece, b.Piece} {
		p.ToggleAnchors(true)
		p.SetReady(false)
	}
	co.Signal.Stop()
}

// clearSlots clears both slots, restoring the anchors of their owners.
func (co *Coordinator) clearSlots() {
	for i := range co.slots {
		s := &co.slots[i]
		if s.empty() {
			continue
		}
		s.first.Piece.ToggleAnchors(true)
		s.second.Piece.ToggleAnchors(true)
		s.clear()
	}
}

func (co *Coordinator) reject(reason string) {
	slog.Debug("pairing: rejected", "reason", reason, "slotA", co.slots[0].first, "slotB", co.slots[1].first)
	co.clearSlots()
	co.Stats.Reject(reason)
}

// validate runs when both slots are filled.
func (co *Coordinator) validate() {
	sa, sb := &co.slots[0], &co.slots[1]
	if !sa.matches(sb.first, sb.second) {
		co.reject(stats.ReasonMismatch)
		return
	}
	p1, p2 := sa.first.Piece, sa.second.Piece
	if p1.State() == piece.Attached && p2.State() == piece.Attached {
		co.reject(stats.ReasonAttached)
		return
	}
	// An attached piece is always the parent. Between two free pieces
	// the one in the hand is the child.
	firstIsParent := p1.State() == piece.Attached
	if p1.State() != piece.Attached && p2.State() != piece.Attached {
		firstIsParent = p2.IsGrabbed() && !p1.IsGrabbed()
	}
	pd := &pending{first: sa.first, second: sa.second}
	if firstIsParent {
		pd.parent, pd.child = p1, p2
		pd.target = sa.first.LocalPos()
	} else {
		pd.parent, pd.child = p2, p1
		pd.target = sa.second.LocalPos()
	}
	pd.child.SetReady(true)
	co.pending = pd
	sa.clear()
	sb.clear()
	co.Signal.Start(co.Config.HapticFrequency, co.Config.HapticIntensity)
	co.Stats.Pair()
	slog.Debug("pairing: ready to attach", "parent", pd.parent, "child", pd.child, "target", pd.target)
}

// Connect commits the pending join: both pieces become attached and
// the child is constrained to the parent, face aligned. The join
// listeners are notified after [config.Config.JoinSettleTicks] ticks,
// and no new pair is accepted until the routines they await complete.
func (co *Coordinator) Connect() {
	pd := co.pending
	if pd == nil {
		slog.Warn("pairing: connect with no pending join")
		return
	}
	co.pending = nil
	co.joining = true
	co.Signal.Stop()
	parent, child := pd.parent, pd.child
	slog.Info("pairing: joining", "child", child, "parent", parent)

	pd.parent.SetStuck(true)
	pd.child.SetStuck(true)

	ppose := parent.Body.Pose()
	cpose := child.Body.Pose()
	euler := AlignedRotation(ppose.Quat, cpose.Quat)

	cons := child.Body.Constraint()
	cons.SetSource(parent.Body, 1)
	cons.SetTranslationOffset(pd.target.DivScalar(co.Config.JoinOffsetDivisor))
	cons.SetRotationOffset(euler)
	cons.SetActive(true)
	co.Stats.Join()

	j := &Joined{Parent: parent, Child: child}
	r := sched.New("join " + child.Name).
		Wait(co.Config.JoinSettleTicks).
		Then(func() {
			co.joined.Call(j)
		}).
		Await(j.routine).
		Then(func() {
			co.joining = false
			slog.Debug("pairing: join absorbed", "child", child, "parent", parent)
		})
	co.Sched.Start(r)
}

// AlignedRotation returns the rotation of the child relative to the
// parent as Euler angles in degrees, quantized with [QuantizeEuler].
func AlignedRotation(parent, child math32.Quat) math32.Vector3 {
	iq := parent.Inverse()
	rel := iq.Mul(child)
	return QuantizeEuler(rel.ToEuler().MulScalar(math32.RadToDegFactor))
}

// QuantizeEuler rounds each Euler angle (degrees) to the nearest
// multiple of 90.
func QuantizeEuler(euler math32.Vector3) math32.Vector3 {
	return math32.Vec3(quantize(euler.X), quantize(euler.Y), quantize(euler.Z))
}

func quantize(deg float32) float32 {
	q := math32.Round(deg/90) * 90
	if q == 0 {
		return 0 // no negative zero
	}
	return q
}
