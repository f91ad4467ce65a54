// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats instruments pairing and container events with
// prometheus metrics. All methods are safe to call on a nil *Stats.
package stats

import "github.com/prometheus/client_golang/prometheus"

// Rejection reasons.
const (
	ReasonMismatch = "mismatch"
	ReasonAttached = "attached"
	ReasonSameBox  = "same_container"
)

// Stats holds the metrics.
type Stats struct {
	Pairs      prometheus.Counter
	Rejections *prometheus.CounterVec
	Cancels    prometheus.Counter
	Joins      prometheus.Counter
	Unstuck    prometheus.Counter
	Teardowns  prometheus.Counter
	Members    prometheus.Gauge
}

// New returns new metrics, registered with reg when it is non-nil.
func New(reg prometheus.Registerer) *Stats {
	st := &Stats{
		Pairs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cubesnap", Name: "pairs_ready_total",
			Help: "Validated candidate pairs that became ready to attach.",
		}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cubesnap", Name: "pairs_rejected_total",
			Help: "Candidate pairs rejected, by reason.",
		}, []string{"reason"}),
		Cancels: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cubesnap", Name: "pairs_cancelled_total",
			Help: "Ready pairs cancelled by separation before release.",
		}),
		Joins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cubesnap", Name: "joins_total",
			Help: "Committed joins.",
		}),
		Unstuck: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cubesnap", Name: "unstuck_total",
			Help: "Pieces pulled out of the container.",
		}),
		Teardowns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cubesnap", Name: "container_teardowns_total",
			Help: "Containers torn down after dropping to one member.",
		}),
		Members: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cubesnap", Name: "container_members",
			Help: "Current number of container members.",
		}),
	}
	if reg != nil {
		reg.MustRegister(st.Pairs, st.Rejections, st.Cancels, st.Joins, st.Unstuck, st.Teardowns, st.Members)
	}
	return st
}

func (st *Stats) Pair() {
	if st != nil {
		st.Pairs.Inc()
	}
}

func (st *Stats) Reject(reason string) {
	if st != nil {
		st.Rejections.WithLabelValues(reason).Inc()
	}
}

func (st *Stats) Cancel() {
	if st != nil {
		st.Cancels.Inc()
	}
}

func (st *Stats) Join() {
	if st != nil {
		st.Joins.Inc()
	}
}

func (st *Stats) Unstick() {
	if st != nil {
		st.Unstuck.Inc()
	}
}

func (st *Stats) Teardown() {
	if st != nil {
		st.Teardowns.Inc()
	}
}

// SetMembers sets the current container member count.
func (st *Stats) SetMembers(n int) {
	if st != nil {
		st.Members.Set(float64(n))
	}
}
