// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events provides typed observer lists used to pass
// notifications between pieces, the pairing coordinator and the
// container manager. Subscriptions return a remove function so
// that subscribers can unsubscribe when they are closed.
package events

// Listeners is a list of listener functions receiving events of type E.
// Listeners are closures with all context captured, registered on
// specific objects. The zero value is ready to use.
type Listeners[E any] struct {
	funcs []listener[E]
	next  int
}

type listener[E any] struct {
	id  int
	fun func(ev E)
}

// Add adds a function to the list, returning a function that removes it.
// Calling the returned function more than once is a no-op.
func (ls *Listeners[E]) Add(fun func(ev E)) (remove func()) {
	ls.next++
	id := ls.next
	ls.funcs = append(ls.funcs, listener[E]{id: id, fun: fun})
	return func() { ls.remove(id) }
}

func (ls *Listeners[E]) remove(id int) {
	for i, l := range ls.funcs {
		if l.id == id {
			ls.funcs = append(ls.funcs[:i:i], ls.funcs[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered listeners.
func (ls *Listeners[E]) Len() int {
	return len(ls.funcs)
}

// Call calls all functions with the given event.
// It goes in _reverse_ order so the last functions added are the first called,
// matching the override order of other listener lists.
// The list is copied first so listeners may remove themselves.
func (ls *Listeners[E]) Call(ev E) {
	n := len(ls.funcs)
	if n == 0 {
		return
	}
	funcs := make([]listener[E], n)
	copy(funcs, ls.funcs)
	for i := n - 1; i >= 0; i-- {
		funcs[i].fun(ev)
	}
}
