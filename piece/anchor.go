// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package piece

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/cubesnap/physics"
)

// Anchor is one face of a piece, detected through a set of anchor
// point triggers. All anchor equality is by [Anchor.ID], since
// overlap events can redeliver the same logical face.
type Anchor struct {

	// Piece is the owning piece.
	Piece *Piece

	// Face is the face of the piece.
	Face Face

	// Points are the anchor point triggers of the face.
	Points []physics.Trigger

	id string
}

// ID returns the piece name followed by the face name.
func (an *Anchor) ID() string {
	return an.id
}

func (an *Anchor) String() string {
	return an.id
}

// Is returns whether the two anchors are the same face of the same piece.
func (an *Anchor) Is(other *Anchor) bool {
	return an != nil && other != nil && an.id == other.id
}

// LocalPos returns the center of the face in unit piece coordinates.
func (an *Anchor) LocalPos() math32.Vector3 {
	return an.Face.Normal().MulScalar(0.5)
}

// SetEnabled enables or disables overlap detection on all points.
func (an *Anchor) SetEnabled(on bool) {
	for _, t := range an.Points {
		t.SetEnabled(on)
	}
}

// Enabled returns whether any point detects overlaps.
func (an *Anchor) Enabled() bool {
	for _, t := range an.Points {
		if t.Enabled() {
			return true
		}
	}
	return false
}
