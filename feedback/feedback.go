// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package feedback provides the continuous haptic-style signal that
// tells the user a pair of pieces is ready to join.
package feedback

import "log/slog"

// Signal is a continuous feedback channel, such as controller vibration.
// Start replaces any signal already running.
type Signal interface {
	Start(frequency, intensity float32)
	Stop()
}

// Log is a [Signal] that records its state and logs transitions.
// The zero value is ready to use.
type Log struct {

	// Name identifies the channel in log messages.
	Name string

	// Frequency and Intensity of the running signal, zero when stopped.
	Frequency, Intensity float32

	// Starts counts the number of times the signal was started.
	Starts int

	on bool
}

var _ Signal = (*Log)(nil)

func (l *Log) Start(frequency, intensity float32) {
	l.on = true
	l.Frequency = frequency
	l.Intensity = intensity
	l.Starts++
	slog.Debug("feedback start", "channel", l.Name, "frequency", frequency, "intensity", intensity)
}

func (l *Log) Stop() {
	if !l.on {
		return
	}
	l.on = false
	l.Frequency = 0
	l.Intensity = 0
	slog.Debug("feedback stop", "channel", l.Name)
}

// On returns whether the signal is running.
func (l *Log) On() bool { return l.on }
