// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListeners(t *testing.T) {
	var ls Listeners[int]
	var got []string
	rmA := ls.Add(func(ev int) { got = append(got, "a") })
	ls.Add(func(ev int) { got = append(got, "b") })
	assert.Equal(t, 2, ls.Len())

	ls.Call(1)
	assert.Equal(t, []string{"b", "a"}, got)

	rmA()
	rmA()
	assert.Equal(t, 1, ls.Len())
	got = nil
	ls.Call(2)
	assert.Equal(t, []string{"b"}, got)
}

func TestListenersRemoveDuringCall(t *testing.T) {
	var ls Listeners[string]
	n := 0
	var rm func()
	rm = ls.Add(func(ev string) {
		n++
		rm()
	})
	ls.Call("x")
	ls.Call("y")
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, ls.Len())
}
