// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pairing

import (
	"fmt"
	"math/rand"
	"testing"

	"cogentcore.org/core/base/tolassert"
	"cogentcore.org/core/math32"
	"cogentcore.org/cubesnap/config"
	"cogentcore.org/cubesnap/feedback"
	"cogentcore.org/cubesnap/physics"
	"cogentcore.org/cubesnap/physics/world"
	"cogentcore.org/cubesnap/piece"
	"cogentcore.org/cubesnap/sched"
	"cogentcore.org/cubesnap/stats"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	w   *world.World
	sc  *sched.Scheduler
	sig *feedback.Log
	st  *stats.Stats
	co  *Coordinator
}

func newFixture() *fixture {
	f := &fixture{w: world.New(), sc: &sched.Scheduler{}, sig: &feedback.Log{Name: "test"}, st: stats.New(nil)}
	f.co = New(config.New(), f.sc, f.sig, f.st)
	return f
}

func (f *fixture) piece(t *testing.T, name string, pos math32.Vector3) *piece.Piece {
	t.Helper()
	b := f.w.NewBody(name, math32.Vec3(0.1, 0.1, 0.1))
	b.MoveTo(pos, physics.Identity().Quat)
	points := map[piece.Face][]physics.Trigger{}
	for _, fc := range piece.FaceValues() {
		cs, half := fc.Points(0.2)
		for i, c := range cs {
			points[fc] = append(points[fc], b.AddTrigger(fmt.Sprintf("%s%v/%d", name, fc, i), c, half))
		}
	}
	p, err := piece.New(name, b, points)
	require.NoError(t, err)
	f.co.Track(p)
	return p
}

// approach delivers the overlap events of two faces pressed together
// at two anchor points: the second point fills the second slot.
func approach(co *Coordinator, a, b *piece.Anchor) {
	co.OverlapBegin(a, b)
	co.OverlapBegin(b, a)
	co.OverlapBegin(a, b)
	co.OverlapBegin(b, a)
}

func assertSlotsValid(t *testing.T, co *Coordinator) {
	t.Helper()
	for _, s := range co.Slots() {
		if s != nil {
			assert.Len(t, s, 2)
			assert.NotNil(t, s[0])
			assert.NotNil(t, s[1])
		}
	}
}

func TestReadyToAttach(t *testing.T) {
	f := newFixture()
	a := f.piece(t, "a", math32.Vec3(0, 0, 0))
	b := f.piece(t, "b", math32.Vec3(0.1, 0, 0))

	f.co.OverlapBegin(a.Anchor(piece.Right), b.Anchor(piece.Left))
	assert.NotNil(t, f.co.Slots()[0])
	assert.Nil(t, f.co.Slots()[1])
	assert.False(t, a.Anchor(piece.Top).Enabled())
	assert.True(t, a.Anchor(piece.Right).Enabled())
	assert.False(t, b.Anchor(piece.Right).Enabled())

	// reverse order redelivery is ignored
	f.co.OverlapBegin(b.Anchor(piece.Left), a.Anchor(piece.Right))
	assert.Nil(t, f.co.Slots()[1])

	f.co.OverlapBegin(a.Anchor(piece.Right), b.Anchor(piece.Left))
	assert.Equal(t, [2][]*piece.Anchor{}, f.co.Slots())

	parent, child, ok := f.co.Pending()
	require.True(t, ok)
	assert.Equal(t, b, parent)
	assert.Equal(t, a, child)
	assert.Equal(t, piece.ReadyToAttach, a.State())
	assert.Equal(t, piece.Free, b.State())
	assert.True(t, f.sig.On())
	assert.Equal(t, float32(0.5), f.sig.Intensity)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.st.Pairs))
}

func TestAttachedIsParent(t *testing.T) {
	f := newFixture()
	a := f.piece(t, "a", math32.Vec3(0, 0, 0))
	b := f.piece(t, "b", math32.Vec3(0.1, 0, 0))
	a.SetStuck(true)

	approach(f.co, a.Anchor(piece.Right), b.Anchor(piece.Left))
	parent, child, ok := f.co.Pending()
	require.True(t, ok)
	assert.Equal(t, a, parent)
	assert.Equal(t, b, child)
	assert.Equal(t, math32.Vec3(0.5, 0, 0), f.co.pending.target)
	assert.Equal(t, piece.Attached, a.State())
}

func TestGrabbedIsChild(t *testing.T) {
	f := newFixture()
	a := f.piece(t, "a", math32.Vec3(0, 0, 0))
	b := f.piece(t, "b", math32.Vec3(0.1, 0, 0))
	require.True(t, b.Grabbed(b.Body.Pose()))

	approach(f.co, a.Anchor(piece.Right), b.Anchor(piece.Left))
	parent, child, ok := f.co.Pending()
	require.True(t, ok)
	assert.Equal(t, a, parent)
	assert.Equal(t, b, child)
	assert.Equal(t, piece.ReadyToAttach, b.State())
	assert.Equal(t, piece.Free, a.State())

	// releasing the piece in the hand commits the join
	b.Released()
	assert.Equal(t, piece.Attached, a.State())
	assert.Equal(t, piece.Attached, b.State())
	assert.False(t, f.sig.On())
	cons := b.Body.Constraint().(*world.Constraint)
	assert.Equal(t, a.Body, cons.Source())
	tolassert.EqualTol(t, float32(0.1), cons.TranslationOffset().X, 1.0e-6)
}

func TestMismatchRejected(t *testing.T) {
	f := newFixture()
	a := f.piece(t, "a", math32.Vec3(0, 0, 0))
	b := f.piece(t, "b", math32.Vec3(0.1, 0, 0))
	c := f.piece(t, "c", math32.Vec3(1, 0, 0))
	d := f.piece(t, "d", math32.Vec3(1.1, 0, 0))

	assert.NotPanics(t, func() {
		f.co.OverlapBegin(a.Anchor(piece.Right), b.Anchor(piece.Left))
		f.co.OverlapBegin(c.Anchor(piece.Right), d.Anchor(piece.Left))
	})
	assert.Equal(t, [2][]*piece.Anchor{}, f.co.Slots())
	_, _, ok := f.co.Pending()
	assert.False(t, ok)
	for _, p := range []*piece.Piece{a, b, c, d} {
		assert.Equal(t, piece.Free, p.State())
		assert.True(t, p.Anchor(piece.Top).Enabled())
	}
	assert.False(t, f.sig.On())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.st.Rejections.WithLabelValues(stats.ReasonMismatch)))
}

func TestBothAttachedRejected(t *testing.T) {
	f := newFixture()
	a := f.piece(t, "a", math32.Vec3(0, 0, 0))
	b := f.piece(t, "b", math32.Vec3(0.1, 0, 0))
	a.SetStuck(true)
	b.SetStuck(true)

	approach(f.co, a.Anchor(piece.Right), b.Anchor(piece.Left))
	assert.Equal(t, [2][]*piece.Anchor{}, f.co.Slots())
	_, _, ok := f.co.Pending()
	assert.False(t, ok)
	assert.False(t, f.sig.On())
}

func TestReadyThenEndCancels(t *testing.T) {
	f := newFixture()
	a := f.piece(t, "a", math32.Vec3(0, 0, 0))
	b := f.piece(t, "b", math32.Vec3(0.1, 0, 0))
	approach(f.co, a.Anchor(piece.Right), b.Anchor(piece.Left))
	require.Equal(t, piece.ReadyToAttach, a.State())

	f.co.OverlapEnd(b.Anchor(piece.Left), a.Anchor(piece.Right))
	assert.Equal(t, piece.Free, a.State())
	assert.Equal(t, piece.Free, b.State())
	assert.False(t, f.sig.On())
	assert.True(t, a.Anchor(piece.Top).Enabled())
	_, _, ok := f.co.Pending()
	assert.False(t, ok)

	// releasing afterwards joins nothing
	a.Grabbed(physics.Identity())
	a.Released()
	assert.Equal(t, piece.Free, a.State())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.st.Cancels))
}

func TestEndClearsSlot(t *testing.T) {
	f := newFixture()
	a := f.piece(t, "a", math32.Vec3(0, 0, 0))
	b := f.piece(t, "b", math32.Vec3(0.1, 0, 0))
	f.co.OverlapBegin(a.Anchor(piece.Right), b.Anchor(piece.Left))
	require.NotNil(t, f.co.Slots()[0])

	// unrelated pair does nothing
	f.co.OverlapEnd(a.Anchor(piece.Top), b.Anchor(piece.Top))
	assert.NotNil(t, f.co.Slots()[0])

	f.co.OverlapEnd(b.Anchor(piece.Left), a.Anchor(piece.Right))
	assert.Nil(t, f.co.Slots()[0])
	assert.True(t, a.Anchor(piece.Left).Enabled())
	assert.True(t, b.Anchor(piece.Right).Enabled())
}

func TestPendingLock(t *testing.T) {
	f := newFixture()
	a := f.piece(t, "a", math32.Vec3(0, 0, 0))
	b := f.piece(t, "b", math32.Vec3(0.1, 0, 0))
	c := f.piece(t, "c", math32.Vec3(0.2, 0, 0))
	approach(f.co, a.Anchor(piece.Right), b.Anchor(piece.Left))
	require.Equal(t, piece.ReadyToAttach, a.State())

	approach(f.co, b.Anchor(piece.Right), c.Anchor(piece.Left))
	assert.Equal(t, [2][]*piece.Anchor{}, f.co.Slots())
	assert.Equal(t, piece.Free, c.State())
	_, child, _ := f.co.Pending()
	assert.Equal(t, a, child)
}

func TestConnect(t *testing.T) {
	f := newFixture()
	a := f.piece(t, "a", math32.Vec3(0, 0, 0))
	b := f.piece(t, "b", math32.Vec3(0.1, 0.01, 0))
	b.Body.MoveTo(math32.Vec3(0.1, 0.01, 0), eulerQuat(0, 10, 80))
	var joins []Joined
	rm := f.co.OnJoined(func(j *Joined) { joins = append(joins, Joined{Parent: j.Parent, Child: j.Child}) })
	defer rm()

	approach(f.co, a.Anchor(piece.Right), b.Anchor(piece.Left))
	require.Equal(t, piece.ReadyToAttach, a.State())

	a.Grabbed(physics.Identity())
	a.Released()
	assert.Equal(t, piece.Attached, a.State())
	assert.Equal(t, piece.Attached, b.State())
	assert.False(t, f.sig.On())
	_, _, ok := f.co.Pending()
	assert.False(t, ok)

	cons := a.Body.Constraint().(*world.Constraint)
	assert.True(t, cons.Active())
	assert.Equal(t, b.Body, cons.Source())
	tolassert.EqualTol(t, float32(-0.1), cons.TranslationOffset().X, 1.0e-6)
	assert.Equal(t, math32.Vec3(0, 0, -90), cons.RotationOffset())

	// listeners are notified after the settle ticks
	assert.Empty(t, joins)
	f.sc.Tick()
	assert.Empty(t, joins)
	f.sc.Tick()
	assert.Equal(t, []Joined{{Parent: b, Child: a}}, joins)
	assert.True(t, f.sc.Idle())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.st.Joins))

	// the child is pinned face to face with the parent
	f.w.Step(0.01)
	pp := b.Body.Pose()
	want := pp.Pos.Add(pp.Quat.MulVector(math32.Vec3(-0.1, 0, 0)))
	got := a.Body.Pose().Pos
	tolassert.EqualTol(t, want.X, got.X, 1.0e-5)
	tolassert.EqualTol(t, want.Y, got.Y, 1.0e-5)
	tolassert.EqualTol(t, want.Z, got.Z, 1.0e-5)
}

func TestJoiningLock(t *testing.T) {
	f := newFixture()
	a := f.piece(t, "a", math32.Vec3(0, 0, 0))
	b := f.piece(t, "b", math32.Vec3(0.1, 0, 0))
	c := f.piece(t, "c", math32.Vec3(0.2, 0, 0))
	var absorb *sched.Routine
	f.co.OnJoined(func(j *Joined) {
		absorb = sched.New("absorb").Wait(3)
		j.Await(absorb)
	})

	approach(f.co, a.Anchor(piece.Right), b.Anchor(piece.Left))
	a.Grabbed(physics.Identity())
	a.Released()
	assert.True(t, f.co.Joining())
	f.sc.Tick()
	f.sc.Tick()
	require.NotNil(t, absorb)
	assert.False(t, absorb.Done())

	// no new pair while the join is being absorbed
	approach(f.co, b.Anchor(piece.Right), c.Anchor(piece.Left))
	assert.Equal(t, [2][]*piece.Anchor{}, f.co.Slots())
	_, _, ok := f.co.Pending()
	assert.False(t, ok)
	assert.Equal(t, piece.Free, c.State())

	f.sc.RunUntilIdle(10)
	assert.True(t, absorb.Done())
	assert.False(t, f.co.Joining())

	approach(f.co, b.Anchor(piece.Right), c.Anchor(piece.Left))
	parent, child, ok := f.co.Pending()
	require.True(t, ok)
	assert.Equal(t, b, parent)
	assert.Equal(t, c, child)
}

func TestConnectWithoutPending(t *testing.T) {
	f := newFixture()
	assert.NotPanics(t, f.co.Connect)
	assert.True(t, f.sc.Idle())
}

func TestClose(t *testing.T) {
	f := newFixture()
	a := f.piece(t, "a", math32.Vec3(0, 0, 0))
	b := f.piece(t, "b", math32.Vec3(0.1, 0, 0))
	approach(f.co, a.Anchor(piece.Right), b.Anchor(piece.Left))
	f.co.Close()
	a.Grabbed(physics.Identity())
	a.Released()
	assert.Equal(t, piece.ReadyToAttach, a.State())
}

func eulerQuat(x, y, z float32) math32.Quat {
	q := math32.Quat{}
	q.SetFromEuler(math32.Vec3(x, y, z).MulScalar(math32.DegToRadFactor))
	return q
}

func TestQuantizeEuler(t *testing.T) {
	assert.Equal(t, math32.Vec3(0, 90, -90), QuantizeEuler(math32.Vec3(44, 46, -50)))
	assert.Equal(t, math32.Vec3(180, 0, 0), QuantizeEuler(math32.Vec3(179, -20, 20)))

	rnd := rand.New(rand.NewSource(1))
	for range 200 {
		p := eulerQuat(rnd.Float32()*360-180, rnd.Float32()*180-90, rnd.Float32()*360-180)
		c := eulerQuat(rnd.Float32()*360-180, rnd.Float32()*180-90, rnd.Float32()*360-180)
		eu := AlignedRotation(p, c)
		for _, v := range []float32{eu.X, eu.Y, eu.Z} {
			r := math32.Mod(math32.Abs(v), 90)
			assert.True(t, r < 1.0e-3 || 90-r < 1.0e-3, "angle %v", v)
		}
	}
}

func TestSlotInvariant(t *testing.T) {
	f := newFixture()
	ps := []*piece.Piece{
		f.piece(t, "a", math32.Vec3(0, 0, 0)),
		f.piece(t, "b", math32.Vec3(0.1, 0, 0)),
		f.piece(t, "c", math32.Vec3(0.2, 0, 0)),
	}
	var anchors []*piece.Anchor
	for _, p := range ps {
		for _, an := range p.Anchors {
			anchors = append(anchors, an)
		}
	}
	rnd := rand.New(rand.NewSource(2))
	for range 2000 {
		a := anchors[rnd.Intn(len(anchors))]
		b := anchors[rnd.Intn(len(anchors))]
		switch rnd.Intn(5) {
		case 0:
			f.co.OverlapEnd(a, b)
		case 1:
			if _, _, ok := f.co.Pending(); ok {
				f.co.Connect()
			}
		default:
			f.co.OverlapBegin(a, b)
		}
		assertSlotsValid(t, f.co)
		f.sc.Tick()
	}
}
