// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	l := &Log{Name: "right"}
	assert.False(t, l.On())
	l.Stop()

	l.Start(1, 0.5)
	assert.True(t, l.On())
	assert.Equal(t, float32(0.5), l.Intensity)

	l.Start(2, 0.25)
	assert.Equal(t, 2, l.Starts)
	assert.Equal(t, float32(2), l.Frequency)

	l.Stop()
	assert.False(t, l.On())
	assert.Zero(t, l.Intensity)
}
