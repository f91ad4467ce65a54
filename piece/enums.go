// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package piece

//go:generate core generate

import "cogentcore.org/core/math32"

// Face identifies one of the six faces of a cube piece.
type Face int32 //enums:enum

const (
	// Front is the +Z face.
	Front Face = iota

	// Back is the -Z face.
	Back

	// Left is the -X face.
	Left

	// Right is the +X face.
	Right

	// Top is the +Y face.
	Top

	// Bottom is the -Y face.
	Bottom
)

// Normal returns the outward unit normal of the face in piece coordinates.
func (f Face) Normal() math32.Vector3 {
	switch f {
	case Front:
		return math32.Vec3(0, 0, 1)
	case Back:
		return math32.Vec3(0, 0, -1)
	case Left:
		return math32.Vec3(-1, 0, 0)
	case Right:
		return math32.Vec3(1, 0, 0)
	case Top:
		return math32.Vec3(0, 1, 0)
	case Bottom:
		return math32.Vec3(0, -1, 0)
	}
	return math32.Vector3{}
}

// Dim returns the axis the face is perpendicular to.
func (f Face) Dim() math32.Dims {
	switch f {
	case Left, Right:
		return math32.X
	case Top, Bottom:
		return math32.Y
	}
	return math32.Z
}

// PointsPerFace is the number of anchor point triggers on each face.
const PointsPerFace = 4

// Points returns the centers of the anchor point triggers of the face,
// one per face quadrant, and their common half size, in unit piece
// coordinates. depth is the full thickness of the trigger regions.
// Points of two faces pressed together overlap pairwise, quadrant
// by quadrant, and never across quadrants. Points stay clear of the
// face edges, so aligned neighbors only overlap on facing faces.
func (f Face) Points(depth float32) (centers []math32.Vector3, half math32.Vector3) {
	dim := f.Dim()
	nrm := f.Normal().MulScalar(0.5)
	u, v := (dim+1)%3, (dim+2)%3
	half.SetDim(dim, depth/2)
	half.SetDim(u, 0.12)
	half.SetDim(v, 0.12)
	for _, su := range []float32{-0.25, 0.25} {
		for _, sv := range []float32{-0.25, 0.25} {
			c := nrm
			c.SetDim(u, su)
			c.SetDim(v, sv)
			centers = append(centers, c)
		}
	}
	return
}

// State is the attachment state of a piece.
type State int32 //enums:enum

const (
	// Free pieces float independently and can be grabbed.
	Free State = iota

	// ReadyToAttach pieces have been paired and join on release.
	ReadyToAttach

	// Attached pieces are rigidly held in the container.
	Attached
)
