// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import (
	"testing"

	"cogentcore.org/core/base/tolassert"
	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standardTol = float32(1.0e-5)

func assertVec(t *testing.T, want, got math32.Vector3) {
	t.Helper()
	tolassert.EqualTol(t, want.X, got.X, standardTol)
	tolassert.EqualTol(t, want.Y, got.Y, standardTol)
	tolassert.EqualTol(t, want.Z, got.Z, standardTol)
}

func quatY(deg float32) math32.Quat {
	q := math32.Quat{}
	q.SetFromEuler(math32.Vec3(0, deg*math32.DegToRadFactor, 0))
	return q
}

func identity() math32.Quat {
	q := math32.Quat{}
	q.SetIdentity()
	return q
}

type recorder struct {
	begins, ends []string
}

func (r *recorder) listen(w *World) {
	w.OnOverlapBegin(func(ov Overlap) { r.begins = append(r.begins, ov.Self.ID()+">"+ov.Other.ID()) })
	w.OnOverlapEnd(func(ov Overlap) { r.ends = append(r.ends, ov.Self.ID()+">"+ov.Other.ID()) })
}

func twoBodies(w *World) (a, b *Body, ta, tb *Trigger) {
	sz := math32.Vec3(0.1, 0.1, 0.1)
	a = w.NewBody("a", sz)
	b = w.NewBody("b", sz)
	ta = a.AddTrigger("a+x", math32.Vec3(0.5, 0, 0), math32.Vec3(0.1, 0.4, 0.4))
	tb = b.AddTrigger("b-x", math32.Vec3(-0.5, 0, 0), math32.Vec3(0.1, 0.4, 0.4))
	a.SetKinematic(true)
	b.SetKinematic(true)
	return
}

func TestOverlapEvents(t *testing.T) {
	w := New()
	rec := &recorder{}
	rec.listen(w)
	a, b, ta, tb := twoBodies(w)
	_ = a

	b.MoveTo(math32.Vec3(0.5, 0, 0), identity())
	w.Step(0.01)
	assert.Empty(t, rec.begins)

	b.MoveTo(math32.Vec3(0.11, 0, 0), identity())
	w.Step(0.01)
	assert.Equal(t, []string{"a+x>b-x", "b-x>a+x"}, rec.begins)
	assert.True(t, w.Overlapping(ta, tb))

	// no repeat while overlap persists
	w.Step(0.01)
	assert.Len(t, rec.begins, 2)

	b.MoveTo(math32.Vec3(0.5, 0, 0), identity())
	w.Step(0.01)
	assert.Equal(t, []string{"a+x>b-x", "b-x>a+x"}, rec.ends)
	assert.False(t, w.Overlapping(ta, tb))
}

func TestOverlapDisabledTrigger(t *testing.T) {
	w := New()
	rec := &recorder{}
	rec.listen(w)
	_, b, ta, tb := twoBodies(w)

	b.MoveTo(math32.Vec3(0.11, 0, 0), identity())
	w.Step(0.01)
	require.Len(t, rec.begins, 2)

	ta.SetEnabled(false)
	w.Step(0.01)
	assert.Empty(t, rec.ends)
	assert.False(t, w.Overlapping(ta, tb))

	ta.SetEnabled(true)
	w.Step(0.01)
	assert.Len(t, rec.begins, 4)
}

func TestOverlapSameBody(t *testing.T) {
	w := New()
	rec := &recorder{}
	rec.listen(w)
	a := w.NewBody("a", math32.Vec3(0.1, 0.1, 0.1))
	a.AddTrigger("a+x", math32.Vec3(0.5, 0, 0), math32.Vec3(0.5, 0.5, 0.5))
	a.AddTrigger("a-x", math32.Vec3(-0.5, 0, 0), math32.Vec3(0.5, 0.5, 0.5))
	w.Step(0.01)
	assert.Empty(t, rec.begins)
}

func TestTriggerRotated(t *testing.T) {
	w := New()
	a := w.NewBody("a", math32.Vec3(0.1, 0.1, 0.1))
	ta := a.AddTrigger("a+x", math32.Vec3(0.5, 0, 0), math32.Vec3(0.1, 0.4, 0.4))
	a.MoveTo(math32.Vec3(1, 0, 0), quatY(90))
	bb := ta.BBox()
	// +x face rotated 90 deg about y points to -z
	assertVec(t, math32.Vec3(1, 0, -0.05), bb.Center())
	assertVec(t, math32.Vec3(0.08, 0.08, 0.02), bb.Size())
}

func TestParenting(t *testing.T) {
	w := New()
	fr := w.NewFrame("box")
	fr.SetPose(math32.Vec3(1, 0, 0), quatY(90))
	fr.SetScale(math32.Vec3(3, 3, 3))

	b := w.NewBody("b", math32.Vec3(0.1, 0.1, 0.1))
	b.MoveTo(math32.Vec3(1, 0, -0.5), identity())
	b.SetParent(fr)
	assert.Equal(t, fr, b.Parent())
	assertVec(t, math32.Vec3(1, 0, -0.5), b.Pose().Pos)
	// local x of the frame is world -z
	assertVec(t, math32.Vec3(0.5, 0, 0), b.LocalPos())
	assert.Equal(t, []*Body{b}, fr.Children())

	fr.SetPose(math32.Vec3(2, 0, 0), quatY(90))
	fr.SetScale(math32.Vec3(1, 1, 1))
	assertVec(t, math32.Vec3(2, 0, -0.5), b.Pose().Pos)

	b.SetParent(nil)
	assert.Nil(t, b.Parent())
	assertVec(t, math32.Vec3(2, 0, -0.5), b.Pose().Pos)
	assertVec(t, math32.Vec3(2, 0, -0.5), b.LocalPos())
	assert.Empty(t, fr.Children())
}

func TestConstraint(t *testing.T) {
	w := New()
	src := w.NewBody("src", math32.Vec3(0.1, 0.1, 0.1))
	src.SetKinematic(true)
	src.MoveTo(math32.Vec3(1, 0, 0), quatY(90))
	b := w.NewBody("b", math32.Vec3(0.1, 0.1, 0.1))
	b.SetVelocity(math32.Vec3(1, 0, 0), math32.Vector3{})

	c := b.Constraint()
	c.SetSource(src, 1)
	c.SetTranslationOffset(math32.Vec3(0.1, 0, 0))
	c.SetRotationOffset(math32.Vec3(0, 90, 0))
	assert.False(t, c.Active())
	c.SetActive(true)
	assert.True(t, c.Active())

	w.Step(0.01)
	ps := b.Pose()
	assertVec(t, math32.Vec3(1, 0, -0.1), ps.Pos)
	want := quatY(180)
	tolassert.EqualTol(t, float32(1), math32.Abs(want.Dot(ps.Quat)), standardTol)
	lin, _ := b.Velocity()
	assert.Equal(t, math32.Vector3{}, lin)

	// constraint follows the source
	src.MoveTo(math32.Vec3(2, 0, 0), quatY(90))
	w.Step(0.01)
	assertVec(t, math32.Vec3(2, 0, -0.1), b.Pose().Pos)

	c.RemoveSource()
	assert.False(t, c.Active())
	assert.Nil(t, c.Source())
	src.MoveTo(math32.Vec3(3, 0, 0), quatY(90))
	w.Step(0.01)
	assertVec(t, math32.Vec3(2, 0, -0.1), b.Pose().Pos)
}

func TestStepIntegration(t *testing.T) {
	w := New()
	dyn := w.NewBody("dyn", math32.Vec3(0.1, 0.1, 0.1))
	dyn.SetVelocity(math32.Vec3(0, -1, 0), math32.Vector3{})
	kin := w.NewBody("kin", math32.Vec3(0.1, 0.1, 0.1))
	kin.SetVelocity(math32.Vec3(0, -1, 0), math32.Vector3{})
	kin.SetKinematic(true)

	w.Step(0.5)
	assertVec(t, math32.Vec3(0, -0.5, 0), dyn.Pose().Pos)
	assertVec(t, math32.Vector3{}, kin.Pose().Pos)
}

func TestContacts(t *testing.T) {
	w := New()
	a := w.NewBody("a", math32.Vec3(0.1, 0.1, 0.1))
	b := w.NewBody("b", math32.Vec3(0.1, 0.1, 0.1))
	b.MoveTo(math32.Vec3(0.05, 0, 0), identity())
	assert.Len(t, w.Contacts(), 1)

	w.IgnoreCollision(a, b, true)
	assert.True(t, w.CollisionIgnored(b, a))
	assert.Empty(t, w.Contacts())

	w.IgnoreCollision(b, a, false)
	assert.Len(t, w.Contacts(), 1)
	a.SetColliderEnabled(false)
	assert.Empty(t, w.Contacts())
}
